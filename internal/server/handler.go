package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alexiusacademia/gowst/internal/failure"
	"github.com/alexiusacademia/gowst/internal/scenario"
	"github.com/alexiusacademia/gowst/internal/stress"
	"github.com/alexiusacademia/gowst/internal/sweep"
	"github.com/alexiusacademia/gowst/internal/wellbore"
)

// ScenarioStore persists named parameter sets
type ScenarioStore interface {
	Create(ctx context.Context, sc *scenario.Scenario) error
	Update(ctx context.Context, sc *scenario.Scenario) error
	Get(ctx context.Context, id string) (*scenario.Scenario, error)
	List(ctx context.Context) ([]*scenario.Scenario, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Handler serves the analysis and scenario endpoints
type Handler struct {
	store   ScenarioStore
	metrics *Metrics
	logger  *slog.Logger
	workers int
}

// Option configures a Handler
type Option func(*Handler)

// WithSweepWorkers bounds the goroutines used by one orientation sweep
func WithSweepWorkers(n int) Option {
	return func(h *Handler) { h.workers = n }
}

// New builds a Handler
func New(store ScenarioStore, metrics *Metrics, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{store: store, metrics: metrics, logger: logger}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Register mounts the API routes on r
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analysis/stress", h.handleStress)
		r.Post("/analysis/polar/{mode}", h.handlePolar)

		r.Get("/scenarios", h.handleListScenarios)
		r.Post("/scenarios", h.handleCreateScenario)
		r.Get("/scenarios/{id}", h.handleGetScenario)
		r.Put("/scenarios/{id}", h.handleUpdateScenario)
		r.Delete("/scenarios/{id}", h.handleDeleteScenario)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "health check failed", "error", err)
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ProfileResponse is the wall stress profile in parallel arrays
type ProfileResponse struct {
	Theta         []float64 `json:"theta"`
	Axial         []float64 `json:"axial"`
	Tangential    []float64 `json:"tangential"`
	Shear         []float64 `json:"shear"`
	MaxTangential []float64 `json:"max_tangential"`
	MinTangential []float64 `json:"min_tangential"`
}

func newProfileResponse(p *stress.WallProfile) ProfileResponse {
	return ProfileResponse{
		Theta:         p.Theta,
		Axial:         p.Axial,
		Tangential:    p.Tangential,
		Shear:         p.Shear,
		MaxTangential: p.MaxTangential,
		MinTangential: p.MinTangential,
	}
}

// EnvelopeResponse describes the Mohr-Coulomb evaluation
type EnvelopeResponse struct {
	Friction           float64          `json:"friction"`
	FrictionAngle      float64          `json:"friction_angle"`
	Intercept          float64          `json:"intercept"`
	UCS                float64          `json:"ucs"`
	MaxStress          float64          `json:"max_stress"`
	IntermediateStress float64          `json:"intermediate_stress"`
	MinStress          float64          `json:"min_stress"`
	Circles            []CircleResponse `json:"circles"`
	Line               LineResponse     `json:"line"`
}

// CircleResponse is one sampled Mohr circle
type CircleResponse struct {
	Center float64   `json:"center"`
	Radius float64   `json:"radius"`
	Normal []float64 `json:"normal"`
	Shear  []float64 `json:"shear"`
}

// LineResponse is the sampled failure envelope
type LineResponse struct {
	Normal []float64 `json:"normal"`
	Shear  []float64 `json:"shear"`
}

// StressResponse is the reply of POST /v1/analysis/stress
type StressResponse struct {
	Params                 wellbore.Params  `json:"params"`
	EffectiveStresses      [3]float64       `json:"effective_stresses"`
	PressureDifferential   float64          `json:"pressure_differential"`
	BoreholeTensor         stress.Tensor    `json:"borehole_tensor"`
	Normalized             bool             `json:"normalized"`
	Profile                ProfileResponse  `json:"profile"`
	Envelope               EnvelopeResponse `json:"envelope"`
	TensileFailurePressure float64          `json:"tensile_failure_pressure"`
	BreakoutUCS            float64          `json:"breakout_ucs"`
	Warnings               []string         `json:"warnings,omitempty"`
}

func newStressResponse(a *wellbore.Analysis, normalize bool) StressResponse {
	normalize = normalize && a.CanNormalize()
	profile := a.Profile
	if normalize {
		profile = a.Normalized()
	}

	env := a.Envelope
	σn, τ := a.EnvelopeLine(failure.DefaultEnvelopePoints)
	circles := make([]CircleResponse, 0, 3)
	for _, c := range a.Circles(failure.DefaultCirclePoints) {
		circles = append(circles, CircleResponse{Center: c.Center, Radius: c.Radius, Normal: c.Normal, Shear: c.Shear})
	}

	return StressResponse{
		Params:               a.Params,
		EffectiveStresses:    [3]float64{a.EffectiveS1, a.EffectiveS2, a.EffectiveS3},
		PressureDifferential: a.PressureDifferential,
		BoreholeTensor:       a.Borehole,
		Normalized:           normalize,
		Profile:              newProfileResponse(profile),
		Envelope: EnvelopeResponse{
			Friction:           env.Friction,
			FrictionAngle:      failure.FrictionAngle(env.Friction),
			Intercept:          env.Intercept,
			UCS:                env.UCS,
			MaxStress:          env.MaxStress,
			IntermediateStress: env.IntermediateStress,
			MinStress:          env.MinStress,
			Circles:            circles,
			Line:               LineResponse{Normal: σn, Shear: τ},
		},
		TensileFailurePressure: a.TensileFailurePressure,
		BreakoutUCS:            a.BreakoutUCS,
		Warnings:               a.Warnings,
	}
}

// handleStress runs the single-orientation analysis. Missing parameters
// take their defaults; ?normalize=true divides the profile by effective S1.
func (h *Handler) handleStress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	p := wellbore.DefaultParams()
	if err := decode(w, r, &p); err != nil {
		WriteError(w, err)
		return
	}
	normalize, _ := strconv.ParseBool(r.URL.Query().Get("normalize"))

	a, err := wellbore.Analyze(p)
	h.metrics.ObserveAnalysis(kindStress, start, err)
	if err != nil {
		h.logger.InfoContext(ctx, "stress analysis rejected", "error", err)
		WriteError(w, err)
		return
	}
	for _, warning := range a.Warnings {
		h.logger.WarnContext(ctx, "stress analysis warning", "warning", warning)
	}

	WriteJSON(w, http.StatusOK, newStressResponse(a, normalize))
}

// PolarRequest is the body of POST /v1/analysis/polar/{mode}. Zero steps
// take the default grid resolution.
type PolarRequest struct {
	Params          wellbore.Params `json:"params"`
	AzimuthStep     float64         `json:"azimuth_step,omitempty"`
	InclinationStep float64         `json:"inclination_step,omitempty"`
	ThetaStep       float64         `json:"theta_step,omitempty"`
}

// PolarResponse is the orientation grid, values indexed [inclination][azimuth]
type PolarResponse struct {
	Mode          sweep.Mode  `json:"mode"`
	Azimuths      []float64   `json:"azimuths"`
	Inclinations  []float64   `json:"inclinations"`
	Values        [][]float64 `json:"values"`
	MaxTangential [][]float64 `json:"max_tangential,omitempty"`
	MinTangential [][]float64 `json:"min_tangential,omitempty"`
	Min           float64     `json:"min"`
	Max           float64     `json:"max"`
}

func (h *Handler) handlePolar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	mode, err := sweep.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		WriteError(w, err)
		return
	}

	req := PolarRequest{Params: wellbore.DefaultParams()}
	if err := decode(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	spec := sweep.DefaultSpec(mode)
	spec.Workers = h.workers
	if req.AzimuthStep != 0 {
		spec.AzimuthStep = req.AzimuthStep
	}
	if req.InclinationStep != 0 {
		spec.InclinationStep = req.InclinationStep
	}
	if req.ThetaStep != 0 {
		spec.ThetaStep = req.ThetaStep
	}

	g, err := wellbore.Polar(ctx, req.Params, spec)
	h.metrics.ObserveAnalysis(sweepKind(mode), start, err)
	if err != nil {
		h.logger.InfoContext(ctx, "polar analysis failed", "mode", mode, "error", err)
		WriteError(w, err)
		return
	}
	h.metrics.AddSweepCells(g.Len())
	h.logger.DebugContext(ctx, "polar analysis done", "mode", mode, "cells", g.Len(), "duration", time.Since(start))

	lo, hi := g.Range()
	WriteJSON(w, http.StatusOK, PolarResponse{
		Mode:          g.Mode,
		Azimuths:      g.Azimuths,
		Inclinations:  g.Inclinations,
		Values:        g.Values,
		MaxTangential: g.MaxTangential,
		MinTangential: g.MinTangential,
		Min:           lo,
		Max:           hi,
	})
}

// ScenarioRequest is the body of scenario create and update requests
type ScenarioRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Params      wellbore.Params `json:"params"`
}

func (h *Handler) decodeScenario(w http.ResponseWriter, r *http.Request) (*scenario.Scenario, error) {
	req := ScenarioRequest{Params: wellbore.DefaultParams()}
	if err := decode(w, r, &req); err != nil {
		return nil, err
	}
	return &scenario.Scenario{Name: req.Name, Description: req.Description, Params: req.Params}, nil
}

func (h *Handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list scenarios", "error", err)
		WriteError(w, err)
		return
	}
	if list == nil {
		list = []*scenario.Scenario{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"scenarios": list})
}

func (h *Handler) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sc, err := h.decodeScenario(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := h.store.Create(ctx, sc); err != nil {
		h.logger.InfoContext(ctx, "create scenario failed", "name", sc.Name, "error", err)
		WriteError(w, err)
		return
	}
	h.metrics.ScenariosCreated.Inc()
	h.logger.InfoContext(ctx, "scenario created", "id", sc.ID, "name", sc.Name)
	WriteJSON(w, http.StatusCreated, sc)
}

func (h *Handler) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, sc)
}

func (h *Handler) handleUpdateScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sc, err := h.decodeScenario(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}
	sc.ID = chi.URLParam(r, "id")
	if err := h.store.Update(ctx, sc); err != nil {
		h.logger.InfoContext(ctx, "update scenario failed", "id", sc.ID, "error", err)
		WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "scenario updated", "id", sc.ID)
	WriteJSON(w, http.StatusOK, sc)
}

func (h *Handler) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(ctx, id); err != nil {
		WriteError(w, err)
		return
	}
	h.metrics.ScenariosDeleted.Inc()
	h.logger.InfoContext(ctx, "scenario deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
