package main

import (
	"os"
	"testing"
)

func TestResolveLayoutsRoot_UsesEnv(t *testing.T) {
	t.Setenv("COOKLINE_LAYOUTS_DIR", "/tmp/custom-layouts")
	if got := resolveLayoutsRoot(); got != "/tmp/custom-layouts" {
		t.Fatalf("resolveLayoutsRoot()=%q want %q", got, "/tmp/custom-layouts")
	}
}

func TestResolveLayoutsRoot_DefaultsToLocalDir(t *testing.T) {
	t.Setenv("COOKLINE_LAYOUTS_DIR", "")
	if got := resolveLayoutsRoot(); got != "./layouts" {
		t.Fatalf("resolveLayoutsRoot()=%q want %q", got, "./layouts")
	}
}

func TestResolveMigrationsDir_UsesEnv(t *testing.T) {
	t.Setenv("COOKLINE_MIGRATIONS_DIR", "/tmp/custom-migrations")
	if got := resolveMigrationsDir(); got != "/tmp/custom-migrations" {
		t.Fatalf("resolveMigrationsDir()=%q want %q", got, "/tmp/custom-migrations")
	}
}

func TestResolveMigrationsDir_FindsLocalDir(t *testing.T) {
	t.Setenv("COOKLINE_MIGRATIONS_DIR", "")

	dir := t.TempDir()
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer func() {
		_ = os.Chdir(prevWD)
	}()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	if got := resolveMigrationsDir(); got != "" {
		t.Fatalf("expected empty dir without ./migrations, got %q", got)
	}
	if err := os.Mkdir("migrations", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if got := resolveMigrationsDir(); got != "./migrations" {
		t.Fatalf("resolveMigrationsDir()=%q want %q", got, "./migrations")
	}
}

func TestIntEnv(t *testing.T) {
	t.Setenv("COOKLINE_MAX_ENVS", "")
	if got := intEnv("COOKLINE_MAX_ENVS", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	t.Setenv("COOKLINE_MAX_ENVS", "32")
	if got := intEnv("COOKLINE_MAX_ENVS", 7); got != 32 {
		t.Fatalf("expected 32, got %d", got)
	}
	t.Setenv("COOKLINE_MAX_ENVS", "not-a-number")
	if got := intEnv("COOKLINE_MAX_ENVS", 7); got != 7 {
		t.Fatalf("expected fallback on parse error, got %d", got)
	}
}
