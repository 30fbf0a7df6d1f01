// Package retime turns drag gestures on the shots stack overlay into shot
// range changes.
package retime

import (
	"errors"
	"fmt"

	"github.com/heimdex/shotmanager/internal/timeline"
)

// Handle identifies the part of a shot clip under the pointer.
type Handle int

const (
	Start Handle = -1
	Body  Handle = 0
	End   Handle = 1
)

var ErrUnknownHandle = errors.New("unknown retime handle")

func (h Handle) String() string {
	switch h {
	case Start:
		return "start"
	case Body:
		return "body"
	case End:
		return "end"
	}
	return fmt.Sprintf("Handle(%d)", int(h))
}

// ParseHandle reads the names produced by Handle.String.
func ParseHandle(s string) (Handle, error) {
	switch s {
	case "start":
		return Start, nil
	case "body", "move":
		return Body, nil
	case "end":
		return End, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHandle, s)
}

// Overlay lane geometry, in view units. Lanes stack downward under the
// timeline ruler.
const (
	LaneHeight  = 18
	rulerOffset = 39
)

// LaneOriginY returns the bottom edge of lane.
func LaneOriginY(lane int) float64 {
	return float64(-LaneHeight*lane - rulerOffset)
}

// HandleAt returns the handle of shot under the view point (x, y), where x
// is in frames and shot is drawn in lane. ok is false when the point is
// outside the clip. When start and end share a frame the end handle wins.
func HandleAt(shot *timeline.Shot, lane int, x, y float64) (h Handle, ok bool) {
	if shot == nil {
		return 0, false
	}
	start, end := float64(shot.Start()), float64(shot.End())
	originY := LaneOriginY(lane)

	if x < start || x >= end+1 || y < originY || y >= originY+LaneHeight {
		return 0, false
	}
	switch {
	case x >= end:
		return End, true
	case x < start+1:
		return Start, true
	default:
		return Body, true
	}
}

// Apply moves the given handle of shot by delta frames and returns the delta
// actually applied. Start and end drags are clamped so the shot keeps at
// least one frame. Body moves shift both ends in a single update.
func Apply(m *timeline.Model, shot *timeline.Shot, h Handle, delta int) (int, error) {
	if shot == nil || delta == 0 {
		return 0, nil
	}

	start, end := shot.Start(), shot.End()
	switch h {
	case Start:
		if start+delta > end {
			delta = end - start
		}
		start += delta
	case End:
		if end+delta < start {
			delta = start - end
		}
		end += delta
	case Body:
		start += delta
		end += delta
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownHandle, int(h))
	}

	if err := m.SetShotRange(shot, start, end); err != nil {
		return 0, fmt.Errorf("retime %s: %w", h, err)
	}
	return delta, nil
}
