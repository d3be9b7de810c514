// Package config provides configuration loading for linstory.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/linstory/engine"
	"github.com/katalvlaran/linstory/matrix"
)

// Config contains all linstory configuration settings.
type Config struct {
	// Numeric holds tolerances and iteration caps of the kernels.
	Numeric NumericConfig `json:"numeric" yaml:"numeric"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Render contains chart output settings.
	Render RenderConfig `json:"render" yaml:"render"`
}

// NumericConfig mirrors the engine options.
type NumericConfig struct {
	// PivotScale multiplies n·ε·max|a_ij| to form the singularity threshold.
	PivotScale float64 `json:"pivot_scale" yaml:"pivot_scale"`

	// ImagTol is the relative imaginary part above which an eigenvalue is dropped.
	ImagTol float64 `json:"imag_tol" yaml:"imag_tol"`

	// EigenMaxIter is the shifted-QR step budget per eigenvalue.
	EigenMaxIter int `json:"eigen_max_iter" yaml:"eigen_max_iter"`

	// InverseIterSteps caps inverse-iteration refinement per eigenvector.
	InverseIterSteps int `json:"inverse_iter_steps" yaml:"inverse_iter_steps"`

	// SVDMaxSweeps caps one-sided Jacobi sweeps.
	SVDMaxSweeps int `json:"svd_max_sweeps" yaml:"svd_max_sweeps"`
}

// LoggingConfig configures the host logger.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level"`
}

// RenderConfig configures charts written by `linstory plot`.
type RenderConfig struct {
	// WidthCm and HeightCm are the canvas size in centimetres.
	WidthCm  float64 `json:"width_cm" yaml:"width_cm"`
	HeightCm float64 `json:"height_cm" yaml:"height_cm"`

	// Format is the default image format when the output name has no
	// extension: "png" or "svg".
	Format string `json:"format" yaml:"format"`
}

// Default returns a Config with the matrix package defaults.
func Default() *Config {
	return &Config{
		Numeric: NumericConfig{
			PivotScale:       matrix.DefaultPivotScale,
			ImagTol:          matrix.DefaultImagTol,
			EigenMaxIter:     matrix.DefaultQRIterPerEigen,
			InverseIterSteps: matrix.DefaultInverseIterSteps,
			SVDMaxSweeps:     matrix.DefaultSVDMaxSweeps,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Render: RenderConfig{
			WidthCm:  12,
			HeightCm: 9,
			Format:   "png",
		},
	}
}

// Path returns the default config file location, ~/.linstory/config.yaml.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".linstory", "config.yaml"), nil
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.linstory/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	// Try to load from default config file
	if configPath, err := Path(); err == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys missing
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// LoadFrom loads path (or the default locations when path is empty) and
// then applies environment variable overrides.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		return Load()
	}
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(config)

	return config, nil
}

// Validate checks that the configuration is valid. A valid configuration
// never makes an engine option panic.
func (c *Config) Validate() error {
	n := c.Numeric
	if math.IsNaN(n.PivotScale) || math.IsInf(n.PivotScale, 0) || n.PivotScale < 1 {
		return fmt.Errorf("pivot_scale must be finite and >= 1, got %v", n.PivotScale)
	}
	if math.IsNaN(n.ImagTol) || math.IsInf(n.ImagTol, 0) || n.ImagTol < 0 {
		return fmt.Errorf("imag_tol must be finite and non-negative, got %v", n.ImagTol)
	}
	if n.EigenMaxIter <= 0 {
		return fmt.Errorf("eigen_max_iter must be positive, got %d", n.EigenMaxIter)
	}
	if n.InverseIterSteps <= 0 {
		return fmt.Errorf("inverse_iter_steps must be positive, got %d", n.InverseIterSteps)
	}
	if n.SVDMaxSweeps <= 0 {
		return fmt.Errorf("svd_max_sweeps must be positive, got %d", n.SVDMaxSweeps)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	if c.Render.WidthCm <= 0 || c.Render.HeightCm <= 0 {
		return fmt.Errorf("render size must be positive, got %vx%v cm", c.Render.WidthCm, c.Render.HeightCm)
	}
	if c.Render.Format != "png" && c.Render.Format != "svg" {
		return fmt.Errorf("invalid render format: %s (valid: png, svg)", c.Render.Format)
	}

	return nil
}

// EngineOptions converts the numeric settings into engine options.
// Call Validate first; invalid values make the options panic.
func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithPivotScale(c.Numeric.PivotScale),
		engine.WithImagTol(c.Numeric.ImagTol),
		engine.WithMaxEigenIter(c.Numeric.EigenMaxIter),
		engine.WithInverseIterSteps(c.Numeric.InverseIterSteps),
		engine.WithSVDMaxSweeps(c.Numeric.SVDMaxSweeps),
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
// Unparsable numbers are ignored.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("LINSTORY_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("LINSTORY_PIVOT_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Numeric.PivotScale = f
		}
	}

	if v := os.Getenv("LINSTORY_IMAG_TOL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Numeric.ImagTol = f
		}
	}

	if v := os.Getenv("LINSTORY_EIGEN_MAX_ITER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Numeric.EigenMaxIter = n
		}
	}

	if v := os.Getenv("LINSTORY_INVERSE_ITER_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Numeric.InverseIterSteps = n
		}
	}

	if v := os.Getenv("LINSTORY_SVD_MAX_SWEEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Numeric.SVDMaxSweeps = n
		}
	}
}
