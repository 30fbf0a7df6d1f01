package timeline

// Shots returns the take's shots in edit order. With ignoreDisabled the
// disabled shots are filtered out. An unresolved take yields an empty list.
func (m *Model) Shots(ref TakeRef, ignoreDisabled bool) []*Shot {
	t := m.Take(ref)
	if t == nil {
		return nil
	}
	out := make([]*Shot, 0, len(t.shots))
	for _, s := range t.shots {
		if !ignoreDisabled || s.enabled {
			out = append(out, s)
		}
	}
	return out
}

// Shot returns the shot at index in the (optionally filtered) list, nil when
// out of range.
func (m *Model) Shot(ref TakeRef, index int, ignoreDisabled bool) *Shot {
	shots := m.Shots(ref, ignoreDisabled)
	if index < 0 || index >= len(shots) {
		return nil
	}
	return shots[index]
}

func (m *Model) ShotByID(id string) *Shot {
	for _, t := range m.takes {
		for _, s := range t.shots {
			if s.id == id {
				return s
			}
		}
	}
	return nil
}

// ShotIndex returns the position of shot in the take's full list, compared
// by identity. It returns -1 when the shot is not in the take.
func (m *Model) ShotIndex(shot *Shot, ref TakeRef) int {
	t := m.Take(ref)
	if t == nil || shot == nil {
		return -1
	}
	for i, s := range t.shots {
		if s == shot {
			return i
		}
	}
	return -1
}

func (m *Model) FirstShotIndex(ref TakeRef, ignoreDisabled bool) int {
	if len(m.Shots(ref, ignoreDisabled)) == 0 {
		return -1
	}
	return 0
}

func (m *Model) LastShotIndex(ref TakeRef, ignoreDisabled bool) int {
	return len(m.Shots(ref, ignoreDisabled)) - 1
}

func (m *Model) FirstShot(ref TakeRef, ignoreDisabled bool) *Shot {
	return m.Shot(ref, m.FirstShotIndex(ref, ignoreDisabled), ignoreDisabled)
}

func (m *Model) LastShot(ref TakeRef, ignoreDisabled bool) *Shot {
	return m.Shot(ref, m.LastShotIndex(ref, ignoreDisabled), ignoreDisabled)
}

// PreviousEnabledShotIndex scans the full list backward from fromIndex
// (excluded) and returns the first enabled shot's index, -1 if none.
func (m *Model) PreviousEnabledShotIndex(fromIndex int, ref TakeRef) int {
	shots := m.Shots(ref, false)
	if fromIndex > len(shots) {
		fromIndex = len(shots)
	}
	for i := fromIndex - 1; i >= 0; i-- {
		if shots[i].enabled {
			return i
		}
	}
	return -1
}

// NextEnabledShotIndex scans the full list forward from fromIndex (excluded)
// and returns the first enabled shot's index, -1 if none.
func (m *Model) NextEnabledShotIndex(fromIndex int, ref TakeRef) int {
	shots := m.Shots(ref, false)
	if fromIndex < -1 {
		fromIndex = -1
	}
	for i := fromIndex + 1; i < len(shots); i++ {
		if shots[i].enabled {
			return i
		}
	}
	return -1
}
