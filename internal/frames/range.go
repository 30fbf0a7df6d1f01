// Package frames provides inclusive integer frame ranges as used by the
// scene clock and the shot model.
package frames

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidRange = errors.New("invalid frame range format")
	ErrInverted     = errors.New("frame range start is after end")
)

// Range is an inclusive range of frames. End is part of the range.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func (r Range) Duration() int {
	return r.End - r.Start + 1
}

func (r Range) Contains(frame int) bool {
	return r.Start <= frame && frame <= r.End
}

func (r Range) Overlaps(o Range) bool {
	return r.Start <= o.End && o.Start <= r.End
}

func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// ParseRange parses "start-end" or a single frame "n". Negative frames are
// written with a leading minus, e.g. "-10--5".
func ParseRange(spec string) (Range, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Range{}, ErrInvalidRange
	}

	sep := strings.Index(spec[1:], "-")
	if sep == -1 {
		n, err := strconv.Atoi(spec)
		if err != nil {
			return Range{}, ErrInvalidRange
		}
		return Range{Start: n, End: n}, nil
	}
	sep++

	start, err := strconv.Atoi(strings.TrimSpace(spec[:sep]))
	if err != nil {
		return Range{}, ErrInvalidRange
	}
	end, err := strconv.Atoi(strings.TrimSpace(spec[sep+1:]))
	if err != nil {
		return Range{}, ErrInvalidRange
	}

	if start > end {
		return Range{}, ErrInverted
	}
	return Range{Start: start, End: end}, nil
}
