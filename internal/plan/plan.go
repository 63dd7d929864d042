// Package plan reads benchmark plans written in HCL:
//
//	iterations = 1000
//	workers    = 4
//	seed       = 42
//	policies   = ["random", "cheating", "logic"]
//
//	preset "beginner" {
//	  width  = 9
//	  height = 9
//	  mines  = 10
//	}
//
// Without any preset block the plan uses [stats.Presets].
package plan

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/vancomm/minesweeper-bench/internal/policy"
	"github.com/vancomm/minesweeper-bench/internal/stats"
)

type presetBlock struct {
	Name   string `hcl:"name,label"`
	Width  int    `hcl:"width"`
	Height int    `hcl:"height"`
	Mines  int    `hcl:"mines"`
}

type planFile struct {
	Iterations int           `hcl:"iterations"`
	Workers    int           `hcl:"workers,optional"`
	Seed       int64         `hcl:"seed,optional"`
	Policies   []string      `hcl:"policies"`
	Presets    []presetBlock `hcl:"preset,block"`
}

type Plan struct {
	Iterations int
	Workers    int
	Seed       uint64
	Policies   []policy.Policy
	Presets    []stats.Preset
}

var (
	ErrNoIterations = errors.New("iterations must be positive")
	ErrNoPolicies   = errors.New("at least one policy is required")
)

func Load(path string) (*Plan, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read plan: %w", err)
	}
	return Parse(path, src)
}

// Parse decodes a plan. filename picks the syntax: native HCL for .hcl and
// JSON for .json.
func Parse(filename string, src []byte) (*Plan, error) {
	var f planFile
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, fmt.Errorf("unable to decode plan %s: %w", filename, err)
	}

	if f.Iterations <= 0 {
		return nil, ErrNoIterations
	}
	if len(f.Policies) == 0 {
		return nil, ErrNoPolicies
	}

	p := &Plan{
		Iterations: f.Iterations,
		Workers:    max(1, f.Workers),
		Seed:       uint64(f.Seed),
	}

	for _, name := range f.Policies {
		pol, err := policy.ByName(name)
		if err != nil {
			return nil, err
		}
		p.Policies = append(p.Policies, pol)
	}

	for _, b := range f.Presets {
		if b.Width <= 0 || b.Height <= 0 || b.Mines < 0 {
			return nil, fmt.Errorf("invalid preset %q: %dx%d(%d)", b.Name, b.Width, b.Height, b.Mines)
		}
		p.Presets = append(p.Presets, stats.Preset{
			Name:      b.Name,
			Width:     b.Width,
			Height:    b.Height,
			MineCount: b.Mines,
		})
	}
	if len(p.Presets) == 0 {
		p.Presets = stats.Presets()
	}

	return p, nil
}
