package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  from-file\n"), 0600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	got, err := Load(Source{Name: "GEMINI_API_KEY", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected file value, got %q", got)
	}
}

func TestLoadInlineValue(t *testing.T) {
	got, err := Load(Source{Value: "  inline  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "inline" {
		t.Fatalf("expected trimmed inline value, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	emptyFile := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(emptyFile, []byte("   "), 0600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	tests := []struct {
		name          string
		src           Source
		notConfigured bool
		contains      string
	}{
		{
			name:          "nothing configured",
			src:           Source{Name: "GEMINI_API_KEY"},
			notConfigured: true,
			contains:      "GEMINI_API_KEY",
		},
		{
			name:     "missing file",
			src:      Source{Name: "GEMINI_API_KEY", File: filepath.Join(t.TempDir(), "nope")},
			contains: "reading GEMINI_API_KEY from file",
		},
		{
			name:     "empty file",
			src:      Source{File: emptyFile},
			contains: "is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrNotConfigured) != tt.notConfigured {
				t.Fatalf("unexpected ErrNotConfigured match for %v", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Fatalf("expected %q in %q", tt.contains, err.Error())
			}
		})
	}
}
