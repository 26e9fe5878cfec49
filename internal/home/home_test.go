package home

import (
	"path/filepath"
	"testing"
)

func TestNew_ExplicitPath(t *testing.T) {
	d, err := New("/tmp/formscan-test")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if d.Path() != "/tmp/formscan-test" {
		t.Errorf("unexpected path: %s", d.Path())
	}
	if d.ConfigPath() != filepath.Join("/tmp/formscan-test", ConfigFileName) {
		t.Errorf("unexpected config path: %s", d.ConfigPath())
	}
}

func TestEnsureExists(t *testing.T) {
	root := t.TempDir()
	d, err := New(filepath.Join(root, DefaultDirName))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if d.Exists() {
		t.Fatal("directory should not exist yet")
	}
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	if !d.Exists() {
		t.Error("directory should exist after EnsureExists")
	}
	if d.ConfigExists() {
		t.Error("no config file should exist yet")
	}
}
