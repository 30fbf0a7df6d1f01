package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/heimdex/shotmanager/internal/frames"
)

// Manifest is the YAML document listing the sequences of an edit.
type Manifest struct {
	FrameRate float64    `yaml:"frame_rate,omitempty"`
	Sequences []Sequence `yaml:"sequences"`
}

func clipRange(c Clip) frames.Range {
	return frames.Range{Start: c.Start, End: c.End}
}

// WriteManifest writes the manifest to a YAML file.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest reads a manifest from a YAML file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Sequence returns the sequence called name. An empty name selects the
// first sequence.
func (m *Manifest) Sequence(name string) (Sequence, error) {
	for _, s := range m.Sequences {
		if name == "" || s.Name == name {
			return s, nil
		}
	}
	return Sequence{}, fmt.Errorf("%w: %q", ErrSequenceMissing, name)
}
