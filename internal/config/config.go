// Package config holds the explicit configuration value the program is
// constructed with, and its command-line parsing.
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/llap/llap/internal/diag"
)

// ErrHelp is returned by Parse when usage was requested.
var ErrHelp = errors.New("help requested")

const KhronosValidation = "VK_LAYER_KHRONOS_validation"

type Config struct {
	Title  string
	Width  int
	Height int

	EnableValidation  bool
	ValidationLayers  []string
	MissingLayers     diag.Policy
	MissingExtensions diag.Policy

	ShaderDir      string
	VertexShader   string
	FragmentShader string

	ClearColor     mgl32.Vec4
	FramesInFlight int
	StatsInterval  time.Duration
}

func Default() Config {
	return Config{
		Title:  "Vulkan",
		Width:  800,
		Height: 600,

		EnableValidation:  true,
		ValidationLayers:  []string{KhronosValidation},
		MissingLayers:     diag.PolicyFatal,
		MissingExtensions: diag.PolicyWarn,

		ShaderDir:      "shaders",
		VertexShader:   "vert.spv",
		FragmentShader: "frag.spv",

		ClearColor:     mgl32.Vec4{0, 0, 0, 1},
		FramesInFlight: 2,
	}
}

func (c Config) VertexShaderPath() string {
	return filepath.Join(c.ShaderDir, c.VertexShader)
}

func (c Config) FragmentShaderPath() string {
	return filepath.Join(c.ShaderDir, c.FragmentShader)
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Newf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FramesInFlight < 1 {
		return errors.Newf("frames in flight must be at least 1, got %d", c.FramesInFlight)
	}
	if c.VertexShader == "" || c.FragmentShader == "" {
		return errors.New("both shader file names are required")
	}
	if c.StatsInterval < 0 {
		return errors.Newf("stats interval must not be negative, got %s", c.StatsInterval)
	}
	return nil
}

// Parse applies command-line options on top of Default. args excludes the
// program name.
func Parse(args []string) (Config, error) {
	cfg := Default()

	for _, arg := range args {
		name, value, hasValue := strings.Cut(arg, "=")
		if !hasValue && takesValue(name) {
			return cfg, errors.Newf("option %s requires a value", name)
		}

		var err error
		switch name {
		case "--help", "-h":
			return cfg, ErrHelp
		case "--no-validation":
			cfg.EnableValidation = false
		case "--missing-layers":
			cfg.MissingLayers, err = diag.ParsePolicy(value)
		case "--missing-extensions":
			cfg.MissingExtensions, err = diag.ParsePolicy(value)
		case "--shaders":
			cfg.ShaderDir = value
		case "--width":
			cfg.Width, err = strconv.Atoi(value)
		case "--height":
			cfg.Height, err = strconv.Atoi(value)
		case "--stats":
			cfg.StatsInterval, err = time.ParseDuration(value)
		default:
			return cfg, errors.Newf("unrecognized option: %s", arg)
		}

		if err != nil {
			return cfg, errors.Wrapf(err, "option %s", name)
		}
	}

	return cfg, cfg.Validate()
}

func takesValue(name string) bool {
	switch name {
	case "--missing-layers", "--missing-extensions", "--shaders", "--width", "--height", "--stats":
		return true
	}
	return false
}

func Usage(w io.Writer) {
	fmt.Fprintln(w, "\nOptions")
	fmt.Fprintln(w, "\t--no-validation")
	fmt.Fprintln(w, "\t\tDo not enable the Khronos validation layer or the debug messenger")
	fmt.Fprintln(w, "\t--missing-layers=fatal|warn")
	fmt.Fprintln(w, "\t\tWhat a missing validation layer does (default fatal)")
	fmt.Fprintln(w, "\t--missing-extensions=fatal|warn")
	fmt.Fprintln(w, "\t\tWhat a missing window-system instance extension does (default warn)")
	fmt.Fprintln(w, "\t--shaders=DIR")
	fmt.Fprintln(w, "\t\tDirectory holding vert.spv and frag.spv (default shaders)")
	fmt.Fprintln(w, "\t--width=N, --height=N")
	fmt.Fprintln(w, "\t\tRequested window size (default 800x600)")
	fmt.Fprintln(w, "\t--stats=DURATION")
	fmt.Fprintln(w, "\t\tLog the frame rate at this interval, e.g. 5s (default off)")
}
