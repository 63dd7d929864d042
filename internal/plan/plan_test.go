package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vancomm/minesweeper-bench/internal/stats"
)

const fullPlan = `
iterations = 500
workers    = 4
seed       = 42
policies   = ["random", "logic"]

preset "tiny" {
  width  = 5
  height = 5
  mines  = 3
}

preset "expert" {
  width  = 30
  height = 16
  mines  = 99
}
`

func TestParse(t *testing.T) {
	p, err := Parse("plan.hcl", []byte(fullPlan))
	if err != nil {
		t.Fatal(err)
	}
	if p.Iterations != 500 || p.Workers != 4 || p.Seed != 42 {
		t.Fatalf("have iterations=%d workers=%d seed=%d", p.Iterations, p.Workers, p.Seed)
	}
	names := make([]string, len(p.Policies))
	for i, pol := range p.Policies {
		names[i] = pol.Name()
	}
	if diff := cmp.Diff([]string{"random", "logic"}, names); diff != "" {
		t.Fatalf("policies mismatch (-want +have):\n%s", diff)
	}
	want := []stats.Preset{
		{Name: "tiny", Width: 5, Height: 5, MineCount: 3},
		{Name: "expert", Width: 30, Height: 16, MineCount: 99},
	}
	if diff := cmp.Diff(want, p.Presets); diff != "" {
		t.Fatalf("presets mismatch (-want +have):\n%s", diff)
	}
}

func TestParseDefaults(t *testing.T) {
	p, err := Parse("plan.hcl", []byte(`
iterations = 10
policies   = ["cheating"]
`))
	if err != nil {
		t.Fatal(err)
	}
	if p.Workers != 1 || p.Seed != 0 {
		t.Fatalf("have workers=%d seed=%d", p.Workers, p.Seed)
	}
	if diff := cmp.Diff(stats.Presets(), p.Presets); diff != "" {
		t.Fatalf("presets mismatch (-want +have):\n%s", diff)
	}
}

func TestParseJSON(t *testing.T) {
	p, err := Parse("plan.json", []byte(`{"iterations": 3, "policies": ["random"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if p.Iterations != 3 || len(p.Policies) != 1 {
		t.Fatalf("have %+v", p)
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		err  error
	}{
		{"no iterations", `
iterations = 0
policies   = ["random"]
`, ErrNoIterations},
		{"no policies", `
iterations = 1
policies   = []
`, ErrNoPolicies},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse("plan.hcl", []byte(tc.src)); !errors.Is(err, tc.err) {
				t.Fatalf("have %v, want %v", err, tc.err)
			}
		})
	}

	for name, src := range map[string]string{
		"unknown policy": "iterations = 1\npolicies = [\"pytorch\"]\n",
		"bad preset":     "iterations = 1\npolicies = [\"random\"]\npreset \"x\" {\n  width = 0\n  height = 1\n  mines = 0\n}\n",
		"syntax":         "iterations = \n",
		"missing field":  "policies = [\"random\"]\n",
	} {
		if _, err := Parse("plan.hcl", []byte(src)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.hcl")
	if err := os.WriteFile(path, []byte(fullPlan), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Presets) != 2 {
		t.Fatalf("have %d presets, want 2", len(p.Presets))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.hcl")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
