// Package roster loads the known-subject metadata used to decide who is
// expected in frame and what uniform they should wear. The file is read once
// at startup; the roster is immutable after load
package roster

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"classwatch/internal/core/vision"
	perr "classwatch/internal/platform/errors"
)

// Subject is one enrolled person
type Subject struct {
	Name string `json:"name"`

	// Uniform overrides the default expected color; empty means use the default
	Uniform vision.ColorLabel `json:"uniform,omitempty"`
}

type fileFormat struct {
	Subjects []Subject `json:"subjects"`
}

// Roster is the immutable enrolled-subject set
type Roster struct {
	names    []string
	uniforms map[string]vision.ColorLabel
}

// Load reads and validates the roster file
func Load(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Unavailablef("roster: read %s: %v", path, err)
	}
	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, perr.JSONErrf("roster: parse %s: %v", path, err)
	}
	return New(f.Subjects)
}

// New builds a roster from an explicit subject list
func New(subjects []Subject) (*Roster, error) {
	r := &Roster{uniforms: make(map[string]vision.ColorLabel, len(subjects))}
	for _, s := range subjects {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, perr.InvalidArgf("roster: subject with empty name")
		}
		if name == vision.Unknown {
			return nil, perr.InvalidArgf("roster: %q is reserved", vision.Unknown)
		}
		if _, dup := r.uniforms[name]; dup {
			return nil, perr.InvalidArgf("roster: duplicate subject %q", name)
		}
		r.names = append(r.names, name)
		r.uniforms[name] = s.Uniform
	}
	sort.Strings(r.names)
	return r, nil
}

// Names returns the enrolled subjects in sorted order
func (r *Roster) Names() []string { return append([]string(nil), r.names...) }

// Count returns the enrolled-subject count
func (r *Roster) Count() int { return len(r.names) }

// Known reports whether name is enrolled
func (r *Roster) Known(name string) bool {
	_, ok := r.uniforms[name]
	return ok
}

// ExpectedUniform returns the subject's uniform override, or the zero label
// when none is stored. Satisfies the rules evaluator's lookup seam
func (r *Roster) ExpectedUniform(subject string) vision.ColorLabel {
	return r.uniforms[subject]
}
