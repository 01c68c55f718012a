package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/taigrr/modelindex/internal/config"
	"github.com/taigrr/modelindex/internal/filesystem"
	"github.com/taigrr/modelindex/internal/manifest"
)

func setupServer(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	models := filepath.Join(root, "models")
	if err := os.Mkdir(models, 0o755); err != nil {
		t.Fatalf("Failed to create models dir: %v", err)
	}
	for _, name := range []string{"b.glb", "a.glb", "notes.txt"} {
		os.WriteFile(filepath.Join(models, name), []byte("glTF"), 0o644)
	}

	generator = manifest.New(filesystem.New(root), nil)
	baseConfig = config.Defaults()
	return root
}

func TestHandleGenerate(t *testing.T) {
	t.Run("writes with server config", func(t *testing.T) {
		root := setupServer(t)

		result, out, err := handleGenerate(context.Background(), nil, GenerateInput{})
		if err != nil {
			t.Fatalf("handleGenerate() error = %v", err)
		}
		if result != nil && result.IsError {
			t.Error("result.IsError = true, want false")
		}
		if !out.Success || out.Count != 2 {
			t.Errorf("output = %+v, want success with 2 files", out)
		}

		data, _ := os.ReadFile(filepath.Join(root, "models.json"))
		if string(data) != "[\n  \"a.glb\",\n  \"b.glb\"\n]" {
			t.Errorf("manifest = %q", data)
		}
	})

	t.Run("tool arguments override config", func(t *testing.T) {
		root := setupServer(t)

		_, out, err := handleGenerate(context.Background(), nil, GenerateInput{
			Suffix:     ".txt",
			OutputFile: "public.json",
		})
		if err != nil {
			t.Fatalf("handleGenerate() error = %v", err)
		}
		if diff := cmp.Diff([]string{"notes.txt"}, out.Files); diff != "" {
			t.Errorf("Files mismatch (-want +got):\n%s", diff)
		}
		if out.OutputFile != filepath.Join(root, "public.json") {
			t.Errorf("OutputFile = %q", out.OutputFile)
		}
	})

	t.Run("rejects paths outside root", func(t *testing.T) {
		setupServer(t)

		result, out, err := handleGenerate(context.Background(), nil, GenerateInput{OutputFile: "../escape.json"})
		if !errors.Is(err, filesystem.ErrPathTraversal) {
			t.Errorf("handleGenerate() error = %v, want ErrPathTraversal", err)
		}
		if result == nil || !result.IsError {
			t.Error("result.IsError = false, want true")
		}
		if out.Success {
			t.Error("Success = true, want false")
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		setupServer(t)

		_, _, err := handleGenerate(context.Background(), nil, GenerateInput{Format: "xml"})
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("handleGenerate() error = %v, want ErrInvalidConfig", err)
		}
	})
}

func TestHandleListModels(t *testing.T) {
	t.Run("lists without writing", func(t *testing.T) {
		root := setupServer(t)

		_, out, err := handleListModels(context.Background(), nil, ListInput{})
		if err != nil {
			t.Fatalf("handleListModels() error = %v", err)
		}
		if diff := cmp.Diff([]string{"a.glb", "b.glb"}, out.Files); diff != "" {
			t.Errorf("Files mismatch (-want +got):\n%s", diff)
		}
		if out.Count != 2 {
			t.Errorf("Count = %d, want 2", out.Count)
		}
		if _, err := os.Stat(filepath.Join(root, "models.json")); !os.IsNotExist(err) {
			t.Errorf("manifest should not be written, stat error = %v", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		setupServer(t)

		result, _, err := handleListModels(context.Background(), nil, ListInput{InputDir: "missing"})
		if !errors.Is(err, filesystem.ErrDirNotFound) {
			t.Errorf("handleListModels() error = %v, want ErrDirNotFound", err)
		}
		if result == nil || !result.IsError {
			t.Error("result.IsError = false, want true")
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		root := setupServer(t)
		os.Mkdir(filepath.Join(root, "empty"), 0o755)

		_, out, err := handleListModels(context.Background(), nil, ListInput{InputDir: "empty"})
		if err != nil {
			t.Fatalf("handleListModels() error = %v", err)
		}
		if out.Files == nil || out.Count != 0 {
			t.Errorf("output = %+v, want empty non-nil files", out)
		}
	})
}
