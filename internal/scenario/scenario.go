// Package scenario manages named parameter sets: YAML scenario files and
// the SQLite scenario store.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gowst/internal/wellbore"
)

var (
	ErrNotFound      = errors.New("scenario not found")
	ErrDuplicateName = errors.New("scenario name already exists")
	ErrMissingName   = errors.New("scenario name is required")
)

// Scenario is a named, stored parameter set
type Scenario struct {
	ID          string          `json:"id" yaml:"id,omitempty"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Params      wellbore.Params `json:"params" yaml:"params"`
	CreatedAt   time.Time       `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time       `json:"updated_at" yaml:"-"`
}

// New returns an unsaved scenario holding the default parameters
func New(name string) *Scenario {
	return &Scenario{Name: name, Params: wellbore.DefaultParams()}
}

// Validate checks the name and the parameters
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrMissingName
	}
	return s.Params.Validate()
}

// Parse decodes a YAML scenario. Parameters missing from the document
// keep their default values.
func Parse(data []byte) (*Scenario, error) {
	s := New("")
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return s, nil
}

// LoadFromFile loads and validates a scenario definition from a YAML file
func LoadFromFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := s.Params.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Marshal encodes the scenario as YAML
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// WriteFile writes the scenario as YAML to path
func (s *Scenario) WriteFile(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
