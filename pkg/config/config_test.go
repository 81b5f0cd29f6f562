package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	URL            string        `split_words:"true" required:"true"`
	MaxConcurrency int           `split_words:"true" default:"8"`
	Timeout        time.Duration `split_words:"true" default:"10s"`
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestNewReadsEnvFile(t *testing.T) {
	path := writeEnvFile(t, "CFGTEST_URL=http://localhost:2024\nCFGTEST_MAX_CONCURRENCY=3\n")
	t.Cleanup(func() {
		os.Unsetenv("CFGTEST_URL")
		os.Unsetenv("CFGTEST_MAX_CONCURRENCY")
	})

	conf, err := New[testConfig]("CFGTEST", WithEnvFile(path))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.URL != "http://localhost:2024" {
		t.Fatalf("URL = %q, want %q", conf.URL, "http://localhost:2024")
	}
	if conf.MaxConcurrency != 3 {
		t.Fatalf("MaxConcurrency = %d, want 3", conf.MaxConcurrency)
	}
	if conf.Timeout != 10*time.Second {
		t.Fatalf("Timeout = %s, want 10s", conf.Timeout)
	}
}

func TestNewKeepsProcessEnvironment(t *testing.T) {
	path := writeEnvFile(t, "CFGKEEP_URL=http://from-file\n")
	t.Setenv("CFGKEEP_URL", "http://from-env")

	conf, err := New[testConfig]("CFGKEEP", WithEnvFile(path))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.URL != "http://from-env" {
		t.Fatalf("URL = %q, want %q", conf.URL, "http://from-env")
	}
}

func TestNewMissingRequired(t *testing.T) {
	path := writeEnvFile(t, "UNRELATED=1\n")
	t.Cleanup(func() { os.Unsetenv("UNRELATED") })

	if _, err := New[testConfig]("CFGMISSING", WithEnvFile(path)); err == nil {
		t.Fatal("expected error for missing required URL")
	}
}
