package timeline

import "github.com/heimdex/shotmanager/internal/frames"

// Duration returns the inclusive frame count of shot.
func Duration(shot *Shot) int {
	return shot.Duration()
}

// EditDuration returns the summed duration of the take's shots, -1 when the
// take cannot be resolved and 0 when the list is empty.
func (m *Model) EditDuration(ref TakeRef, ignoreDisabled bool) int {
	if m.ResolveTake(ref) == -1 {
		return -1
	}
	total := 0
	for _, s := range m.Shots(ref, ignoreDisabled) {
		total += s.Duration()
	}
	return total
}

// EditTime maps sceneFrame, read as a frame inside referenceShot, to its
// position in the edit of the shot's take: the edit start frame, plus the
// durations of the enabled shots before it, plus the offset inside the shot.
//
// It returns -1 when the shot is nil, disabled, not found in its parent take,
// or when sceneFrame lies outside the shot.
func (m *Model) EditTime(referenceShot *Shot, sceneFrame int) int {
	if referenceShot == nil || !referenceShot.enabled {
		return -1
	}
	if sceneFrame < referenceShot.start || sceneFrame > referenceShot.end {
		return -1
	}

	t := m.Take(TakeAt(referenceShot.parentTakeIndex))
	if t == nil {
		return -1
	}

	offset := 0
	for _, s := range t.shots {
		if s == referenceShot {
			return m.editStartFrame + offset + sceneFrame - referenceShot.start
		}
		if s.enabled {
			offset += s.Duration()
		}
	}
	return -1
}

// ShotEditStart returns the edit time of the shot's first frame.
func (m *Model) ShotEditStart(shot *Shot) int {
	if shot == nil {
		return -1
	}
	return m.EditTime(shot, shot.start)
}

// ShotEditEnd returns the edit time of the shot's last frame.
func (m *Model) ShotEditEnd(shot *Shot) int {
	if shot == nil {
		return -1
	}
	return m.EditTime(shot, shot.end)
}

// EditRange returns the scene range spanned by the take's enabled shots, from
// the first enabled shot's start to the last one's end. ok is false when the
// take has no enabled shot.
func (m *Model) EditRange(ref TakeRef) (r frames.Range, ok bool) {
	shots := m.Shots(ref, true)
	if len(shots) == 0 {
		return frames.Range{}, false
	}
	return frames.Range{Start: shots[0].start, End: shots[len(shots)-1].end}, true
}
