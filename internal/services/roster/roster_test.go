package roster

import (
	"os"
	"path/filepath"
	"testing"

	"classwatch/internal/core/vision"
	perr "classwatch/internal/platform/errors"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.json")
	data := `{"subjects":[{"name":"carol","uniform":"other"},{"name":"alice"},{"name":"bob"}]}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.Count() != 3 {
		t.Fatalf("count %d", r.Count())
	}
	names := r.Names()
	if names[0] != "alice" || names[1] != "bob" || names[2] != "carol" {
		t.Fatalf("names not sorted: %v", names)
	}
	if !r.Known("alice") || r.Known("mallory") {
		t.Fatal("Known lookup wrong")
	}
	if got := r.ExpectedUniform("carol"); got != vision.ColorOther {
		t.Fatalf("carol override: %q", got)
	}
	if got := r.ExpectedUniform("alice"); got != "" {
		t.Fatalf("alice must have no override, got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestLoadBadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want json error, got %v", err)
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		subjects []Subject
	}{
		{"empty name", []Subject{{Name: "  "}}},
		{"reserved label", []Subject{{Name: vision.Unknown}}},
		{"duplicate", []Subject{{Name: "alice"}, {Name: "alice"}}},
	}
	for _, c := range cases {
		if _, err := New(c.subjects); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Errorf("%s: want invalid argument, got %v", c.name, err)
		}
	}
}
