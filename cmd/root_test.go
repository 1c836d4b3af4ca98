package cmd

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gowst/internal/version"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf)
	out := buf.String()

	assert.Contains(t, out, "Copyright © "+version.Year+" "+version.Author)
	assert.NotContains(t, out, "All rights reserved")
	assert.Contains(t, out, "gowst v"+version.Version)

	var top string
	var box []string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "  ╔"):
			top = line
		case strings.HasPrefix(line, "  ║"), strings.HasPrefix(line, "  ╚"):
			box = append(box, line)
		}
	}
	require.NotEmpty(t, top)
	require.NotEmpty(t, box)
	width := utf8.RuneCountInString(top)
	for _, line := range box {
		assert.Equal(t, width, utf8.RuneCountInString(line), "misaligned banner line %q", line)
	}
}
