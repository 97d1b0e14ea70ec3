// Package config provides configuration types and helpers for compsup.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
)

// Config holds the application-wide configuration.
type Config struct {
	Format      string            `mapstructure:"format"`
	Verbose     bool              `mapstructure:"verbose"`
	Delimiter   string            `mapstructure:"delimiter"`
	Suppression SuppressionConfig `mapstructure:"suppression"`
	Prepare     PrepareConfig     `mapstructure:"prepare"`
}

// SuppressionConfig holds the settings of a suppression run.
type SuppressionConfig struct {
	// CellBound is the inclusive threshold for primary suppression.
	CellBound int64 `mapstructure:"cell_bound"`

	// Columns lists the sensitive count columns in order.
	Columns []string `mapstructure:"columns"`

	// MaskSymbol replaces masked counts in the output, e.g. "*" or "<11".
	MaskSymbol string `mapstructure:"mask_symbol"`

	// Seed makes tie-breaks reproducible. 0 picks a random seed per run.
	Seed uint64 `mapstructure:"seed"`

	MaxIterations int    `mapstructure:"max_iterations"` // 0 derives the cap from the table size
	Timeout       string `mapstructure:"timeout"`        // e.g. "30s", "2m"; empty means none
}

// PrepareConfig holds preprocessing applied before suppression.
type PrepareConfig struct {
	Pivot  PivotConfig   `mapstructure:"pivot"`
	Total  string        `mapstructure:"total"` // name of a row-total column to append
	Ratios []RatioConfig `mapstructure:"ratios"`
}

// PivotConfig describes a long to wide reshape. It is active when Names is set.
type PivotConfig struct {
	IDs    []string `mapstructure:"ids"`
	Names  string   `mapstructure:"names"`
	Values string   `mapstructure:"values"`
}

// Enabled reports whether a pivot was configured.
func (p PivotConfig) Enabled() bool {
	return p.Names != ""
}

// RatioConfig describes a derived percentage column.
type RatioConfig struct {
	Name        string `mapstructure:"name"`
	Numerator   string `mapstructure:"numerator"`
	Denominator string `mapstructure:"denominator"`
}

// Validate checks the suppression settings that do not depend on the input.
func (s SuppressionConfig) Validate() error {
	if s.CellBound < 0 {
		return fmt.Errorf("cell_bound must be zero or greater, got %d", s.CellBound)
	}
	if strings.TrimSpace(s.MaskSymbol) == "" {
		return fmt.Errorf("mask_symbol must not be empty")
	}
	if s.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must be zero or greater, got %d", s.MaxIterations)
	}
	if _, err := s.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout. It returns 0 when no timeout is set.
func (s SuppressionConfig) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(s.Timeout) == "" {
		return 0, nil
	}
	d, err := ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	return d, nil
}

// NewRand returns the tie-break source for a run. A zero Seed draws a
// random seed, which is returned so the run can be reproduced.
func (s SuppressionConfig) NewRand() (*rand.Rand, uint64) {
	seed := s.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed)), seed
}

// NewLogger returns the stderr logger used by commands.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
