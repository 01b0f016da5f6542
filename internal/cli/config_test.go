package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "structmc.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[model]
variables = ["A", "B", "C"]
fan_in = 2
score_file = "scores.json"

[chain]
iterations = 10000
burn_in = 1000
thin = 5
seed = 42

[moves]
add_delete = 0.9
reversal = 0.1

[store]
backend = "file"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got := len(cfg.Model.Variables); got != 3 {
		t.Errorf("Variables count = %d, want 3", got)
	}
	if cfg.Model.FanIn != 2 {
		t.Errorf("FanIn = %d, want 2", cfg.Model.FanIn)
	}
	if cfg.Chain.Iterations != 10000 || cfg.Chain.BurnIn != 1000 || cfg.Chain.Thin != 5 {
		t.Errorf("chain = %+v, want 10000/1000/5", cfg.Chain)
	}
	if cfg.Chain.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Chain.Seed)
	}
	if cfg.Moves.AddDelete != 0.9 || cfg.Moves.Reversal != 0.1 {
		t.Errorf("moves = %+v, want 0.9/0.1", cfg.Moves)
	}
	if cfg.Store.Path != ".structmc/runs" {
		t.Errorf("Store.Path = %q, want default run directory", cfg.Store.Path)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
[model]
variables = ["A", "B"]
fan_in = 1
score_file = "scores.json"

[chain]
iterations = 100
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Chain.Thin != 1 {
		t.Errorf("Thin = %d, want 1", cfg.Chain.Thin)
	}
	if cfg.Moves.AddDelete <= 0 || cfg.Moves.Reversal <= 0 {
		t.Errorf("default move weights = %+v, want positive", cfg.Moves)
	}
	if cfg.Store.Backend != "none" {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, "none")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "no variables",
			body: `
[model]
fan_in = 2
score_file = "scores.json"
[chain]
iterations = 100
`,
			wantErr: "model.variables",
		},
		{
			name: "zero fan-in",
			body: `
[model]
variables = ["A"]
score_file = "scores.json"
[chain]
iterations = 100
`,
			wantErr: "model.fan_in",
		},
		{
			name: "missing score file",
			body: `
[model]
variables = ["A"]
fan_in = 1
[chain]
iterations = 100
`,
			wantErr: "model.score_file",
		},
		{
			name: "zero iterations",
			body: `
[model]
variables = ["A"]
fan_in = 1
score_file = "scores.json"
`,
			wantErr: "chain.iterations",
		},
		{
			name: "negative move weight",
			body: `
[model]
variables = ["A"]
fan_in = 1
score_file = "scores.json"
[chain]
iterations = 100
[moves]
add_delete = -1.0
`,
			wantErr: "move weights",
		},
		{
			name: "unknown backend",
			body: `
[model]
variables = ["A"]
fan_in = 1
score_file = "scores.json"
[chain]
iterations = 100
[store]
backend = "cassandra"
`,
			wantErr: "unknown store backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("LoadConfig() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("LoadConfig() error = nil, want error")
	}
}
