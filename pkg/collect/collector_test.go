package collect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/gengold/pkg/storage"
)

func newBaselineTree(t *testing.T, files map[string]string) *storage.Local {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create parent dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	backend, err := storage.NewLocal(root)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	return backend
}

func TestCollect_FlatTree(t *testing.T) {
	backend := newBaselineTree(t, map[string]string{
		"service.go.baseline": "package service",
		"client.go.baseline":  "package client",
	})

	collector := NewCollector(".baseline")
	registry, err := collector.Collect(context.Background(), backend)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if registry.Len() != 2 {
		t.Errorf("Len = %d, want 2", registry.Len())
	}
	if !registry.Contains("service.go") {
		t.Error("registry should contain service.go")
	}
	if !registry.Contains("client.go") {
		t.Error("registry should contain client.go")
	}
}

func TestCollect_NestedTree(t *testing.T) {
	backend := newBaselineTree(t, map[string]string{
		"api/v1/service.go.baseline":        "a",
		"api/v1/types/messages.go.baseline": "b",
		"api/v2/service.go.baseline":        "c",
		"docs/readme.md.baseline":           "d",
	})

	collector := NewCollector(".baseline")
	registry, err := collector.Collect(context.Background(), backend)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	want := []string{
		"api/v1/service.go",
		"api/v1/types/messages.go",
		"api/v2/service.go",
		"docs/readme.md",
	}
	if registry.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", registry.Len(), len(want))
	}
	for _, path := range want {
		if !registry.Contains(path) {
			t.Errorf("registry should contain %s", path)
		}
	}
}

func TestCollect_IgnoresIncidentalFiles(t *testing.T) {
	backend := newBaselineTree(t, map[string]string{
		"service.go.baseline": "a",
		"README.md":           "incidental",
		"notes/todo.txt":      "incidental",
	})

	collector := NewCollector(".baseline")
	registry, err := collector.Collect(context.Background(), backend)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if registry.Len() != 1 {
		t.Errorf("Len = %d, want 1 (only marker-suffixed files)", registry.Len())
	}
	if registry.Contains("README.md") {
		t.Error("registry should not contain incidental files")
	}
}

func TestCollect_EmptyBaseline(t *testing.T) {
	backend := newBaselineTree(t, nil)

	collector := NewCollector(".baseline")
	registry, err := collector.Collect(context.Background(), backend)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if registry.Len() != 0 {
		t.Errorf("Len = %d, want 0", registry.Len())
	}
}

func TestCollect_CancelledContext(t *testing.T) {
	backend := newBaselineTree(t, map[string]string{
		"service.go.baseline": "a",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	collector := NewCollector(".baseline")
	if _, err := collector.Collect(ctx, backend); err == nil {
		t.Error("Collect should fail with a cancelled context")
	}
}

func TestRegistry_RemoveAndPaths(t *testing.T) {
	registry := NewRegistry()
	registry.Add("b.go", "b.go.baseline")
	registry.Add("a.go", "a.go.baseline")
	registry.Add("c.go", "c.go.baseline")

	registry.Remove("b.go")
	// Removing an absent key is a no-op
	registry.Remove("missing.go")

	paths := registry.Paths()
	if len(paths) != 2 {
		t.Fatalf("Paths = %d entries, want 2", len(paths))
	}
	if paths[0] != "a.go" || paths[1] != "c.go" {
		t.Errorf("Paths = %v, want sorted [a.go c.go]", paths)
	}
}

func TestRegistry_BaselinePath(t *testing.T) {
	registry := NewRegistry()
	registry.Add("api/service.go", "api/service.go.baseline")

	if got := registry.BaselinePath("api/service.go"); got != "api/service.go.baseline" {
		t.Errorf("BaselinePath = %s, want api/service.go.baseline", got)
	}
	if got := registry.BaselinePath("unknown"); got != "" {
		t.Errorf("BaselinePath for unknown entry = %s, want empty", got)
	}
}
