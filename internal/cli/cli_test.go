package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mvollbrecht/pageflow/pkg/cache"
)

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRootCommand(t *testing.T) {
	root := newTestCLI().RootCommand()

	if root.Use != "pageflow" {
		t.Errorf("Use = %q, want pageflow", root.Use)
	}

	want := map[string]bool{
		"layout":     false,
		"preview":    false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing %q subcommand", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,png,json", []string{"svg", "png", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg:1": []byte("<svg/>"),
		"svg:2": []byte("<svg/>"),
		"json":  []byte("[]"),
	}

	files, err := writeArtifacts(dir, "mypaper", artifacts)
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("wrote %d files, want 3", len(files))
	}

	for _, name := range []string{"mypaper.pages.json", "mypaper-page1.svg", "mypaper-page2.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing expected file %s: %v", name, err)
		}
	}
}

func TestServeKeyer(t *testing.T) {
	t.Run("file cache uses default keys", func(t *testing.T) {
		if k := serveKeyer(ServerConfig{}); k != nil {
			t.Errorf("keyer = %v, want nil", k)
		}
	})

	t.Run("redis keys scoped by app name", func(t *testing.T) {
		k := serveKeyer(ServerConfig{RedisURL: "redis://localhost:6379"})
		if k == nil {
			t.Fatal("expected a scoped keyer for redis")
		}
		key := k.PagesKey("abc", cache.PagesKeyOpts{Estimator: "analytic"})
		if !strings.HasPrefix(key, appName+":") {
			t.Errorf("key %q not scoped under %q", key, appName+":")
		}
	})
}
