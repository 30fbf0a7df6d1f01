package timeline

import "strings"

// Take is an ordered list of shots. The order defines the edit.
type Take struct {
	name  string
	shots []*Shot
}

func (t *Take) Name() string { return t.name }

// Shots returns a copy of the take's full shot list.
func (t *Take) Shots() []*Shot {
	out := make([]*Shot, len(t.shots))
	copy(out, t.shots)
	return out
}

func (t *Take) Len() int { return len(t.shots) }

func (t *Take) NamePathCompliant() string {
	return strings.ReplaceAll(t.name, " ", "_")
}

func (t *Take) hasShotNamed(name string) bool {
	for _, s := range t.shots {
		if s.name == name {
			return true
		}
	}
	return false
}

// insert appends shot and relocates it to atIndex when atIndex is not -1.
// Out of range indices are clamped to the list bounds.
func (t *Take) insert(shot *Shot, atIndex int) {
	t.shots = append(t.shots, shot)
	if atIndex == -1 {
		return
	}
	t.move(len(t.shots)-1, atIndex)
}

func (t *Take) move(from, to int) {
	if to < 0 {
		to = 0
	}
	if to > len(t.shots)-1 {
		to = len(t.shots) - 1
	}
	if from == to {
		return
	}
	s := t.shots[from]
	if from < to {
		copy(t.shots[from:to], t.shots[from+1:to+1])
	} else {
		copy(t.shots[to+1:from+1], t.shots[to:from])
	}
	t.shots[to] = s
}
