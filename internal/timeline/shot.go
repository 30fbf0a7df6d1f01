// Package timeline holds the take/shot data model and the mapping between
// scene time and edit time.
//
// The model is not safe for concurrent use. Callers that share a Model
// between goroutines serialise access themselves (see internal/session).
package timeline

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heimdex/shotmanager/internal/frames"
)

// Color is a display-only RGBA color.
type Color struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}

var DefaultShotColor = Color{R: 0.2, G: 0.6, B: 0.8, A: 1}

// CameraRef names a camera owned by the host scene. It is resolved lazily
// and may dangle at any time; an empty ref means "no camera".
type CameraRef string

const NoCamera CameraRef = ""

// Shot is a named, inclusive range of scene frames. Fields are only written
// by Model methods so that start <= end holds after every mutation.
type Shot struct {
	id              string
	name            string
	start           int
	end             int
	enabled         bool
	camera          CameraRef
	color           Color
	parentTakeIndex int
}

// ShotParams carries the visible fields of a shot to create.
type ShotParams struct {
	Name    string
	Start   int
	End     int
	Camera  CameraRef
	Color   Color
	Enabled bool
}

func newShot(p ShotParams, takeIndex int) *Shot {
	return &Shot{
		id:              uuid.NewString(),
		name:            p.Name,
		start:           p.Start,
		end:             p.End,
		enabled:         p.Enabled,
		camera:          p.Camera,
		color:           p.Color,
		parentTakeIndex: takeIndex,
	}
}

func (s *Shot) ID() string           { return s.id }
func (s *Shot) Name() string         { return s.name }
func (s *Shot) Start() int           { return s.start }
func (s *Shot) End() int             { return s.end }
func (s *Shot) Enabled() bool        { return s.enabled }
func (s *Shot) Camera() CameraRef    { return s.camera }
func (s *Shot) Color() Color         { return s.color }
func (s *Shot) ParentTakeIndex() int { return s.parentTakeIndex }

func (s *Shot) Range() frames.Range {
	return frames.Range{Start: s.start, End: s.end}
}

// Duration returns the number of frames of the shot. The end frame is
// rendered, so a shot from 10 to 19 lasts 10 frames.
func (s *Shot) Duration() int {
	return s.end - s.start + 1
}

// NamePathCompliant returns the shot name with spaces replaced by underscores.
func (s *Shot) NamePathCompliant() string {
	return strings.ReplaceAll(s.name, " ", "_")
}

// Params returns the visible fields of the shot, as used by copies.
func (s *Shot) Params() ShotParams {
	return ShotParams{
		Name:    s.name,
		Start:   s.start,
		End:     s.end,
		Camera:  s.camera,
		Color:   s.color,
		Enabled: s.enabled,
	}
}
