package compose

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testCompose = `services:
  whisper-api:
    image: voxstack-whisper-api
    ports:
      - "8000:8000"
  prometheus:
    image: prom/prometheus:latest
    ports:
      - "9090:9090"
`

func writeCompose(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(testCompose), 0644); err != nil {
		t.Fatalf("Failed to write compose file: %v", err)
	}
	return path
}

func TestResolve(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		dir := t.TempDir()
		path := writeCompose(t, dir, "my-stack.yml")

		resolved, err := Resolve(dir, path)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if resolved != path {
			t.Errorf("Expected %s, got %s", path, resolved)
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		if _, err := Resolve(t.TempDir(), "does-not-exist.yml"); err == nil {
			t.Error("Expected error for missing explicit compose file")
		}
	})

	t.Run("discovers default filename", func(t *testing.T) {
		dir := t.TempDir()
		writeCompose(t, dir, "docker-compose.yml")

		resolved, err := Resolve(dir, "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if filepath.Base(resolved) != "docker-compose.yml" {
			t.Errorf("Expected docker-compose.yml, got %s", resolved)
		}
	})

	t.Run("prefers compose.yaml over docker-compose.yml", func(t *testing.T) {
		dir := t.TempDir()
		writeCompose(t, dir, "docker-compose.yml")
		want := writeCompose(t, dir, "compose.yaml")

		resolved, err := Resolve(dir, "")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if resolved != want {
			t.Errorf("Expected %s, got %s", want, resolved)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		if _, err := Resolve(t.TempDir(), ""); err == nil {
			t.Error("Expected error for directory without compose file")
		}
	})
}

func TestServices(t *testing.T) {
	dir := t.TempDir()
	path := writeCompose(t, dir, "compose.yaml")

	services, err := Services(context.Background(), path, "voxstack")
	if err != nil {
		t.Fatalf("Services failed: %v", err)
	}

	if len(services) != 2 {
		t.Fatalf("Expected 2 services, got %d", len(services))
	}

	// Sorted by name
	if services[0].Name != "prometheus" || services[1].Name != "whisper-api" {
		t.Errorf("Unexpected service order: %s, %s", services[0].Name, services[1].Name)
	}

	api := services[1]
	if api.Image != "voxstack-whisper-api" {
		t.Errorf("Expected image voxstack-whisper-api, got %s", api.Image)
	}
	if api.Status != "not created" {
		t.Errorf("Expected status 'not created', got %s", api.Status)
	}
	if len(api.Ports) != 1 || api.Ports[0] != "8000:8000/tcp" {
		t.Errorf("Unexpected ports: %v", api.Ports)
	}
}
