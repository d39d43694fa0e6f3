package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// Fallback values used by the Get* methods when a field is omitted.
const (
	DefaultMaxDiff        = 1.0
	DefaultMaxPathDepth   = 80
	DefaultMinColSpan     = 2
	DefaultSteerThreshold = 0.5
	DefaultFrameStride    = 1
)

// TuningConfig represents the root configuration for scan tuning parameters.
// Every field is optional so a partial JSON file only overrides what it names.
type TuningConfig struct {
	// Region growing
	MaxDiff      *float64 `json:"max_diff,omitempty"`       // depth tolerance between neighbouring cells (grid units)
	MaxPathDepth *int     `json:"max_path_depth,omitempty"` // exploration cap along a single path

	// Scanning
	MinColSpan    *int  `json:"min_col_span,omitempty"` // colMax-colMin below this is noise
	PreserveInput *bool `json:"preserve_input,omitempty"`

	// Steering. FrameHalfWidth of 0 means "half the grid width".
	FrameHalfWidth *float64 `json:"frame_half_width,omitempty"`
	SteerThreshold *float64 `json:"steer_threshold,omitempty"`

	// Sequencing: process every Nth frame of a run.
	FrameStride *int `json:"frame_stride,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated from
// the compiled-in defaults. It matches config/tuning.defaults.json.
func DefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		MaxDiff:        ptrFloat64(DefaultMaxDiff),
		MaxPathDepth:   ptrInt(DefaultMaxPathDepth),
		MinColSpan:     ptrInt(DefaultMinColSpan),
		PreserveInput:  ptrBool(false),
		FrameHalfWidth: ptrFloat64(0),
		SteerThreshold: ptrFloat64(DefaultSteerThreshold),
		FrameStride:    ptrInt(DefaultFrameStride),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/depth/pipeline/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.MaxDiff != nil {
		if *c.MaxDiff < 0 || math.IsNaN(*c.MaxDiff) || math.IsInf(*c.MaxDiff, 0) {
			return fmt.Errorf("max_diff must be a finite non-negative number, got %f", *c.MaxDiff)
		}
	}

	if c.MaxPathDepth != nil && *c.MaxPathDepth < 1 {
		return fmt.Errorf("max_path_depth must be at least 1, got %d", *c.MaxPathDepth)
	}

	if c.MinColSpan != nil && *c.MinColSpan < 0 {
		return fmt.Errorf("min_col_span must be non-negative, got %d", *c.MinColSpan)
	}

	if c.FrameHalfWidth != nil {
		if *c.FrameHalfWidth < 0 || math.IsNaN(*c.FrameHalfWidth) || math.IsInf(*c.FrameHalfWidth, 0) {
			return fmt.Errorf("frame_half_width must be a finite non-negative number, got %f", *c.FrameHalfWidth)
		}
	}

	if c.SteerThreshold != nil {
		if *c.SteerThreshold < 0 || *c.SteerThreshold > 1 {
			return fmt.Errorf("steer_threshold must be between 0 and 1, got %f", *c.SteerThreshold)
		}
	}

	if c.FrameStride != nil && *c.FrameStride < 1 {
		return fmt.Errorf("frame_stride must be at least 1, got %d", *c.FrameStride)
	}

	return nil
}

// GetMaxDiff returns the max_diff value or the default.
func (c *TuningConfig) GetMaxDiff() float64 {
	if c.MaxDiff == nil {
		return DefaultMaxDiff
	}
	return *c.MaxDiff
}

// GetMaxPathDepth returns the max_path_depth value or the default.
func (c *TuningConfig) GetMaxPathDepth() int {
	if c.MaxPathDepth == nil {
		return DefaultMaxPathDepth
	}
	return *c.MaxPathDepth
}

// GetMinColSpan returns the min_col_span value or the default.
func (c *TuningConfig) GetMinColSpan() int {
	if c.MinColSpan == nil {
		return DefaultMinColSpan
	}
	return *c.MinColSpan
}

// GetPreserveInput returns the preserve_input value or the default.
func (c *TuningConfig) GetPreserveInput() bool {
	if c.PreserveInput == nil {
		return false
	}
	return *c.PreserveInput
}

// GetFrameHalfWidth returns the configured half width, or half of gridWidth
// when the field is unset or zero.
func (c *TuningConfig) GetFrameHalfWidth(gridWidth int) float64 {
	if c.FrameHalfWidth == nil || *c.FrameHalfWidth == 0 {
		return float64(gridWidth) / 2
	}
	return *c.FrameHalfWidth
}

// GetSteerThreshold returns the steer_threshold value or the default.
func (c *TuningConfig) GetSteerThreshold() float64 {
	if c.SteerThreshold == nil {
		return DefaultSteerThreshold
	}
	return *c.SteerThreshold
}

// GetFrameStride returns the frame_stride value or the default.
func (c *TuningConfig) GetFrameStride() int {
	if c.FrameStride == nil {
		return DefaultFrameStride
	}
	return *c.FrameStride
}

// Merge overlays every non-nil field of other onto c. Used by the CLI to
// apply flag overrides on top of a loaded file.
func (c *TuningConfig) Merge(other *TuningConfig) {
	if other == nil {
		return
	}
	if other.MaxDiff != nil {
		c.MaxDiff = other.MaxDiff
	}
	if other.MaxPathDepth != nil {
		c.MaxPathDepth = other.MaxPathDepth
	}
	if other.MinColSpan != nil {
		c.MinColSpan = other.MinColSpan
	}
	if other.PreserveInput != nil {
		c.PreserveInput = other.PreserveInput
	}
	if other.FrameHalfWidth != nil {
		c.FrameHalfWidth = other.FrameHalfWidth
	}
	if other.SteerThreshold != nil {
		c.SteerThreshold = other.SteerThreshold
	}
	if other.FrameStride != nil {
		c.FrameStride = other.FrameStride
	}
}
