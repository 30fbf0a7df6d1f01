package timeline

// EnableMode selects how SetAllShotsEnabled changes the shots of a take.
type EnableMode int

const (
	EnableAll EnableMode = iota
	DisableAll
	InvertAll
)

// UniqueShotName returns candidate, or candidate + "_1" when a shot of the
// take already uses that name. Only one level of suffix is tried. When the
// take cannot be resolved candidate is returned unchanged.
func (m *Model) UniqueShotName(candidate string, ref TakeRef) string {
	t := m.Take(ref)
	if t == nil {
		return candidate
	}
	if t.hasShotNamed(candidate) {
		return candidate + "_1"
	}
	return candidate
}

// AddShot appends a new shot to the take and, when atIndex is not -1, moves
// it to atIndex. It returns nil when the take cannot be resolved or when
// p.Start > p.End. The name is used as given; callers wanting a unique name
// pass it through UniqueShotName first.
func (m *Model) AddShot(ref TakeRef, atIndex int, p ShotParams) *Shot {
	idx := m.ResolveTake(ref)
	if idx == -1 {
		return nil
	}
	if p.Start > p.End {
		return nil
	}

	shot := newShot(p, idx)
	m.takes[idx].insert(shot, atIndex)
	return shot
}

// CopyShot duplicates shot into its own take.
func (m *Model) CopyShot(shot *Shot, atIndex int) *Shot {
	if shot == nil {
		return nil
	}
	return m.CopyShotTo(shot, TakeAt(shot.parentTakeIndex), atIndex)
}

// CopyShotTo duplicates the visible fields of shot into the take ref
// designates. The copy's name is made unique within the destination take.
func (m *Model) CopyShotTo(shot *Shot, ref TakeRef, atIndex int) *Shot {
	if shot == nil {
		return nil
	}
	p := shot.Params()
	p.Name = m.UniqueShotName(p.Name, ref)
	return m.AddShot(ref, atIndex, p)
}

// RemoveShot deletes the shot at index in the take's full list.
func (m *Model) RemoveShot(ref TakeRef, index int) bool {
	t := m.Take(ref)
	if t == nil || index < 0 || index >= len(t.shots) {
		return false
	}
	t.shots = append(t.shots[:index], t.shots[index+1:]...)
	return true
}

// MoveShot relocates the shot at from to position to within its take.
func (m *Model) MoveShot(ref TakeRef, from, to int) bool {
	t := m.Take(ref)
	if t == nil || from < 0 || from >= len(t.shots) {
		return false
	}
	t.move(from, to)
	return true
}

// RenameShot gives shot a name unique within its take.
func (m *Model) RenameShot(shot *Shot, name string) {
	if shot == nil || shot.name == name {
		return
	}
	shot.name = m.UniqueShotName(name, TakeAt(shot.parentTakeIndex))
}

// SetShotRange replaces both ends of the shot in one step, so no reader can
// observe a state where start > end.
func (m *Model) SetShotRange(shot *Shot, start, end int) error {
	if start > end {
		return ErrInvalidRange
	}
	shot.start, shot.end = start, end
	return nil
}

func (m *Model) SetShotEnabled(shot *Shot, enabled bool) {
	shot.enabled = enabled
}

func (m *Model) SetShotCamera(shot *Shot, camera CameraRef) {
	shot.camera = camera
}

func (m *Model) SetShotColor(shot *Shot, color Color) {
	shot.color = color
}

// SetAllShotsEnabled enables, disables or inverts every shot of the take.
func (m *Model) SetAllShotsEnabled(ref TakeRef, mode EnableMode) {
	t := m.Take(ref)
	if t == nil {
		return
	}
	for _, s := range t.shots {
		switch mode {
		case EnableAll:
			s.enabled = true
		case DisableAll:
			s.enabled = false
		case InvertAll:
			s.enabled = !s.enabled
		}
	}
}
