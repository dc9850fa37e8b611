package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// isolate moves the test into an empty directory with no user config and
// no TCK_* environment.
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tempDir, "home"))
	for _, k := range []string{"TCK_FORMAT", "TCK_THEME", "TCK_PARALLEL", "TCK_STRICT", "TCK_NO_COLOR", "NO_COLOR"} {
		t.Setenv(k, "")
	}
	return tempDir
}

func TestGetConfigPath_ReturnsLocalConfig_When_FileExists(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("format: llm\n"), 0o600); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}

	if got := getConfigPath(); got != FileName {
		t.Fatalf("expected local config path, got %q", got)
	}
}

func TestGetConfigPath_UsesXDGPath_When_LocalMissing(t *testing.T) {
	dir := isolate(t)
	configHome := filepath.Join(dir, "xdg", "tck")
	if err := os.MkdirAll(configHome, 0o755); err != nil {
		t.Fatalf("failed to create XDG config directory: %v", err)
	}
	configPath := filepath.Join(configHome, FileName)
	if err := os.WriteFile(configPath, []byte("format: json\n"), 0o600); err != nil {
		t.Fatalf("failed to write XDG config: %v", err)
	}

	if got := getConfigPath(); got != configPath {
		t.Fatalf("expected XDG config path %q, got %q", configPath, got)
	}
}

func TestGetConfigPath_ReturnsEmpty_When_NoConfigAvailable(t *testing.T) {
	isolate(t)
	if got := getConfigPath(); got != "" {
		t.Fatalf("expected no config path, got %q", got)
	}
}

func TestLoadConfig_MergesFileOverDefaults(t *testing.T) {
	dir := isolate(t)
	yaml := "theme: orca\nparallel: 4\nstrict: true\ninstantiators: [serializer]\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	got := LoadConfig(nil)
	want := &AppConfig{
		Format:        DefaultFormat,
		Theme:         "orca",
		Parallel:      4,
		Strict:        true,
		List:          DefaultList,
		Instantiators: []string{"serializer"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_IgnoresMalformedFile(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("parallel: [not a number\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if diff := cmp.Diff(Defaults(), LoadConfig(nil)); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TCK_THEME", "mono")
	t.Setenv("TCK_TEST_DOTENV_ONLY", "")
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("TCK_THEME=orca\nTCK_TEST_DOTENV_ONLY=yes\n"), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	// t.Setenv restores the variable afterwards; unset it so the .env value applies.
	if err := os.Unsetenv("TCK_TEST_DOTENV_ONLY"); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("TCK_THEME"); got != "mono" {
		t.Errorf("TCK_THEME = %q, want existing value mono", got)
	}
	if got := os.Getenv("TCK_TEST_DOTENV_ONLY"); got != "yes" {
		t.Errorf("TCK_TEST_DOTENV_ONLY = %q, want yes", got)
	}
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	dir := isolate(t)
	if err := LoadDotEnv(filepath.Join(dir, "absent.env")); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
