// Package ingest is the boundary through which edit decision lists enter the
// timeline. Parsers produce Sequences of Clip records; the Importer turns
// them into shots through the timeline model only.
package ingest

import (
	"errors"

	"github.com/heimdex/shotmanager/internal/frames"
	"github.com/heimdex/shotmanager/internal/timeline"
)

var (
	ErrNoTake          = errors.New("target take not found")
	ErrSequenceMissing = errors.New("sequence not found in manifest")
)

// Clip is one event of a sequence. Start and End are inclusive frames on
// the sequence's record timeline.
type Clip struct {
	Name     string `json:"name" yaml:"name"`
	Start    int    `json:"start" yaml:"start"`
	End      int    `json:"end" yaml:"end"`
	Camera   string `json:"camera,omitempty" yaml:"camera,omitempty"`
	Media    string `json:"media,omitempty" yaml:"media,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Sequence is an ordered group of clips.
type Sequence struct {
	Name  string `json:"name" yaml:"name"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Clips []Clip `json:"clips" yaml:"clips"`
}

// Options control how a sequence is laid into a take.
type Options struct {
	Take timeline.TakeRef

	// OffsetTime places the sequence start at ImportAtFrame.
	OffsetTime    bool
	ImportAtFrame int

	// TimeRange keeps only the clips overlapping it. Nil keeps every clip.
	TimeRange *frames.Range

	// ReformatShotNames keeps the part of a clip name after its last
	// underscore, without file extension.
	ReformatShotNames bool

	// CreateCameras gives each shot its own camera, named after the shot.
	CreateCameras bool

	// MediaHaveHandles tells that clip media carry HandlesDuration extra
	// frames on each side.
	MediaHaveHandles bool
	HandlesDuration  int
}

func DefaultOptions() Options {
	return Options{
		Take:            timeline.ActiveTake,
		ImportAtFrame:   25,
		HandlesDuration: 10,
	}
}

// ImportedShot describes a shot created by an import.
type ImportedShot struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Camera string `json:"camera,omitempty"`
	Media  string `json:"media,omitempty"`
	// MediaOffset is the first frame of the media used by the shot.
	MediaOffset int `json:"media_offset"`
}

// Result summarises an import.
type Result struct {
	TakeIndex int            `json:"take_index"`
	Shots     []ImportedShot `json:"shots"`
	Skipped   []string       `json:"skipped,omitempty"`
}
