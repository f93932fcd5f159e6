// Package config defines the layout pipeline's tunable surface:
// separation constants, rank direction, and the two algorithmic
// toggles (network simplex, order sweep cap).
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// RankDir is the direction ranks flow in the final drawing.
type RankDir string

const (
	TopToBottom RankDir = "TB"
	BottomToTop RankDir = "BT"
	LeftToRight RankDir = "LR"
	RightToLeft RankDir = "RL"
)

// Config is the layout pipeline's tunable surface. Every field has a
// zero-value-safe default applied by Default/Normalize so a caller can
// construct a partial Config and still get sane behavior.
type Config struct {
	NodeSep        float64 `toml:"node_sep"`
	EdgeSep        float64 `toml:"edge_sep"`
	UniversalSep   float64 `toml:"universal_sep"`
	RankSep        float64 `toml:"rank_sep"`
	RankDir        RankDir `toml:"rank_dir"`
	DebugLevel     int     `toml:"debug_level"`
	OrderMaxSweeps int     `toml:"order_max_sweeps"`

	// DisableSimplex turns off the network-simplex rank refinement,
	// falling back to the feasible tree's initial ranking. Phrased as a
	// negative so the zero-value Config (and a TOML file silent on the
	// key) both mean "simplex on", matching Default's intent without a
	// bool/unset ambiguity.
	DisableSimplex bool `toml:"disable_simplex"`
}

// UseSimplex reports whether network-simplex rank refinement runs.
func (c Config) UseSimplex() bool {
	return !c.DisableSimplex
}

// Default returns the baseline configuration: 50-unit node and rank
// separations, 10-unit edge and 20-unit universal separations,
// top-to-bottom flow, simplex on, 24 order sweeps (alternating down and
// up passes).
func Default() Config {
	return Config{
		NodeSep:        50,
		EdgeSep:        10,
		UniversalSep:   20,
		RankSep:        50,
		RankDir:        TopToBottom,
		DebugLevel:     0,
		OrderMaxSweeps: 24,
	}
}

// Normalize fills in zero-valued fields from Default() and validates
// rankDir, returning an InvalidInput-flavored error for an unknown
// value.
func (c Config) Normalize() (Config, error) {
	d := Default()
	if c.NodeSep == 0 {
		c.NodeSep = d.NodeSep
	}
	if c.EdgeSep == 0 {
		c.EdgeSep = d.EdgeSep
	}
	if c.UniversalSep == 0 {
		c.UniversalSep = d.UniversalSep
	}
	if c.RankSep == 0 {
		c.RankSep = d.RankSep
	}
	if c.RankDir == "" {
		c.RankDir = d.RankDir
	}
	if c.OrderMaxSweeps == 0 {
		c.OrderMaxSweeps = d.OrderMaxSweeps
	}
	switch c.RankDir {
	case TopToBottom, BottomToTop, LeftToRight, RightToLeft:
	default:
		return c, fmt.Errorf("config: unknown rank_dir %q", c.RankDir)
	}
	return c, nil
}

// Load reads a Config from a TOML file, applying Normalize before
// returning it.
func Load(path string) (Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return c.Normalize()
}
