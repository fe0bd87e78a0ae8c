package config

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llap/llap/internal/diag"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.EnableValidation)
	assert.Equal(t, []string{KhronosValidation}, cfg.ValidationLayers)
	assert.Equal(t, diag.PolicyFatal, cfg.MissingLayers)
	assert.Equal(t, diag.PolicyWarn, cfg.MissingExtensions)
	assert.Equal(t, 2, cfg.FramesInFlight)
	assert.Equal(t, filepath.Join("shaders", "vert.spv"), cfg.VertexShaderPath())
	assert.Equal(t, filepath.Join("shaders", "frag.spv"), cfg.FragmentShaderPath())
}

func TestParseOptions(t *testing.T) {
	cfg, err := Parse([]string{
		"--no-validation",
		"--missing-layers=warn",
		"--missing-extensions=fatal",
		"--shaders=build/spv",
		"--width=1024",
		"--height=768",
		"--stats=5s",
	})
	require.NoError(t, err)

	assert.False(t, cfg.EnableValidation)
	assert.Equal(t, diag.PolicyWarn, cfg.MissingLayers)
	assert.Equal(t, diag.PolicyFatal, cfg.MissingExtensions)
	assert.Equal(t, filepath.Join("build/spv", "frag.spv"), cfg.FragmentShaderPath())
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.Equal(t, 5*time.Second, cfg.StatsInterval)
}

func TestParseHelp(t *testing.T) {
	_, err := Parse([]string{"--width=10", "-h"})
	assert.True(t, errors.Is(err, ErrHelp))
}

func TestParseErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown option": {"--fullscreen"},
		"bad policy":     {"--missing-layers=ignore"},
		"bad width":      {"--width=wide"},
		"missing value":  {"--shaders"},
		"zero height":    {"--height=0"},
		"bad duration":   {"--stats=often"},
		"negative stats": {"--stats=-1s"},
		"negative width": {"--width=-5"},
	}

	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(args)
			assert.Error(t, err)
			assert.False(t, errors.Is(err, ErrHelp))
		})
	}
}

func TestValidateFramesInFlight(t *testing.T) {
	cfg := Default()
	cfg.FramesInFlight = 0
	assert.Error(t, cfg.Validate())
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)
	assert.Contains(t, buf.String(), "--no-validation")
	assert.Contains(t, buf.String(), "--missing-extensions=fatal|warn")
}
