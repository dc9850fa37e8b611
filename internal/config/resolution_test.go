package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveConfig_PriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		cliFlags CliFlags
		envVars  map[string]string
		check    func(t *testing.T, got *ResolvedConfig)
	}{
		{
			name: "defaults when nothing is set",
			check: func(t *testing.T, got *ResolvedConfig) {
				if got.Format != DefaultFormat || got.FormatSource != SourceDefault {
					t.Errorf("format = %s (%s)", got.Format, got.FormatSource)
				}
				if got.Parallel != DefaultParallel || got.ParallelSource != SourceDefault {
					t.Errorf("parallel = %d (%s)", got.Parallel, got.ParallelSource)
				}
			},
		},
		{
			name: "file has priority over defaults",
			file: "format: llm\n",
			check: func(t *testing.T, got *ResolvedConfig) {
				if got.Format != "llm" || got.FormatSource != SourceFile {
					t.Errorf("format = %s (%s)", got.Format, got.FormatSource)
				}
			},
		},
		{
			name:    "env has priority over file",
			file:    "theme: orca\n",
			envVars: map[string]string{"TCK_THEME": "mono"},
			check: func(t *testing.T, got *ResolvedConfig) {
				if got.Theme != "mono" || got.ThemeSource != SourceEnv {
					t.Errorf("theme = %s (%s)", got.Theme, got.ThemeSource)
				}
			},
		},
		{
			name:     "CLI has priority over env",
			cliFlags: CliFlags{Parallel: 8, ParallelSet: true, Format: "json"},
			envVars:  map[string]string{"TCK_PARALLEL": "2", "TCK_FORMAT": "llm"},
			check: func(t *testing.T, got *ResolvedConfig) {
				if got.Parallel != 8 || got.ParallelSource != SourceCLI {
					t.Errorf("parallel = %d (%s)", got.Parallel, got.ParallelSource)
				}
				if got.Format != "json" || got.FormatSource != SourceCLI {
					t.Errorf("format = %s (%s)", got.Format, got.FormatSource)
				}
			},
		},
		{
			name:     "CLI strict=false overrides env strict",
			cliFlags: CliFlags{Strict: false, StrictSet: true},
			envVars:  map[string]string{"TCK_STRICT": "true"},
			check: func(t *testing.T, got *ResolvedConfig) {
				if got.Strict || got.StrictSource != SourceCLI {
					t.Errorf("strict = %t (%s)", got.Strict, got.StrictSource)
				}
			},
		},
		{
			name:    "NO_COLOR forces the mono theme",
			file:    "theme: orca\n",
			envVars: map[string]string{"NO_COLOR": "1"},
			check: func(t *testing.T, got *ResolvedConfig) {
				if !got.NoColor || got.NoColorSource != SourceEnv || got.Theme != "mono" {
					t.Errorf("no_color = %t (%s), theme %s", got.NoColor, got.NoColorSource, got.Theme)
				}
			},
		},
		{
			name:     "CLI instantiators replace file list",
			file:     "instantiators: [std]\n",
			cliFlags: CliFlags{Instantiators: []string{"serializer", "constructor"}},
			check: func(t *testing.T, got *ResolvedConfig) {
				if strings.Join(got.Instantiators, ",") != "serializer,constructor" {
					t.Errorf("instantiators = %v", got.Instantiators)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.file != "" {
				if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tt.file), 0o600); err != nil {
					t.Fatalf("failed to write config: %v", err)
				}
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			got, err := ResolveConfig(tt.cliFlags, nil)
			if err != nil {
				t.Fatalf("ResolveConfig: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestResolveConfig_Validation(t *testing.T) {
	tests := []struct {
		name     string
		cliFlags CliFlags
		envVars  map[string]string
		wantErr  string
	}{
		{name: "unknown format", cliFlags: CliFlags{Format: "xml"}, wantErr: "invalid format"},
		{name: "unknown theme", cliFlags: CliFlags{ThemeName: "neon"}, wantErr: "invalid theme"},
		{name: "negative parallel", cliFlags: CliFlags{Parallel: -1, ParallelSet: true}, wantErr: "must not be negative"},
		{name: "non-numeric env parallel", envVars: map[string]string{"TCK_PARALLEL": "lots"}, wantErr: "TCK_PARALLEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			_, err := ResolveConfig(tt.cliFlags, nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
