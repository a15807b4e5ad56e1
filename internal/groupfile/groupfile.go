// Package groupfile loads group definitions from YAML or CUE files and turns
// them into a domain.Seed ready for store.Seed.
//
// A definition names the group, its participants and their exclusions.
// Exclusions refer to participants by id or by display name.
package groupfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is a parsed group definition.
type File struct {
	Group        GroupDef         `yaml:"group" json:"group"`
	Participants []ParticipantDef `yaml:"participants" json:"participants"`
	Exclusions   []ExclusionDef   `yaml:"exclusions,omitempty" json:"exclusions,omitempty"`
}

// GroupDef describes the group itself. ID is generated when empty.
type GroupDef struct {
	ID    string `yaml:"id,omitempty" json:"id,omitempty"`
	Title string `yaml:"title" json:"title" validate:"required"`
	Owner string `yaml:"owner" json:"owner" validate:"required"`
}

// ParticipantDef describes one participant. User is the linked account id
// and must be empty exactly when Proxy is set.
type ParticipantDef struct {
	ID    string `yaml:"id,omitempty" json:"id,omitempty"`
	Name  string `yaml:"name" json:"name" validate:"required"`
	User  string `yaml:"user,omitempty" json:"user,omitempty"`
	Proxy bool   `yaml:"proxy,omitempty" json:"proxy,omitempty"`
}

// ExclusionDef forbids Who giving to Whom, and the reverse when Mutual.
type ExclusionDef struct {
	Who    string `yaml:"who" json:"who" validate:"required"`
	Whom   string `yaml:"whom" json:"whom" validate:"required"`
	Mutual bool   `yaml:"mutual,omitempty" json:"mutual,omitempty"`
}

// Load reads a definition, choosing the format by extension: .cue for CUE,
// .yaml or .yml for YAML.
func Load(path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return LoadCUE(path)
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read group file: %w", err)
		}
		return DecodeYAML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported group file extension %q (want .yaml, .yml or .cue)", filepath.Ext(path))
	}
}

// DecodeYAML parses a YAML definition. Unknown fields are rejected.
func DecodeYAML(r io.Reader) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &f, nil
}
