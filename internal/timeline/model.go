package timeline

import (
	"errors"
	"log/slog"
)

const DefaultTakeName = "Main Take"

var (
	ErrInvalidRange      = errors.New("shot start is after shot end")
	ErrNegativeEditStart = errors.New("edit start frame must not be negative")
)

// TakeRef selects the take an operation works on: either the active take or
// a specific take by index. Selecting a specific take never changes which
// take is active.
type TakeRef struct {
	index    int
	specific bool
}

// ActiveTake refers to whichever take is active when the ref is resolved.
var ActiveTake = TakeRef{}

func TakeAt(index int) TakeRef {
	return TakeRef{index: index, specific: true}
}

func (r TakeRef) IsActive() bool { return !r.specific }

// Index returns the explicit take index, or -1 for ActiveTake.
func (r TakeRef) Index() int {
	if !r.specific {
		return -1
	}
	return r.index
}

// Model owns the takes of a session and the active take selector.
type Model struct {
	takes          []*Take
	activeTakeName string
	editStartFrame int

	listeners []func(takeIndex int)
	logger    *slog.Logger
}

func NewModel(logger *slog.Logger) *Model {
	return &Model{logger: logger}
}

// Initialize creates the default take when the model has none.
func (m *Model) Initialize() *Take {
	if len(m.takes) > 0 {
		return m.takes[0]
	}
	t := &Take{name: DefaultTakeName}
	m.takes = append(m.takes, t)
	m.SetActiveTakeIndex(0)
	if m.logger != nil {
		m.logger.Info("default take created", "take", t.name)
	}
	return t
}

// OnActiveTakeChanged registers fn to be called after a take is activated.
// fn receives the new active take index, -1 when no take is active.
func (m *Model) OnActiveTakeChanged(fn func(takeIndex int)) {
	m.listeners = append(m.listeners, fn)
}

func (m *Model) notifyActiveTake() {
	idx := m.ActiveTakeIndex()
	for _, fn := range m.listeners {
		fn(idx)
	}
}

func (m *Model) EditStartFrame() int { return m.editStartFrame }

func (m *Model) SetEditStartFrame(frame int) error {
	if frame < 0 {
		return ErrNegativeEditStart
	}
	m.editStartFrame = frame
	return nil
}

func (m *Model) Takes() []*Take {
	out := make([]*Take, len(m.takes))
	copy(out, m.takes)
	return out
}

func (m *Model) TakeCount() int { return len(m.takes) }

// ActiveTakeIndex returns the index of the take whose name matches the
// active take name, -1 if none does.
func (m *Model) ActiveTakeIndex() int {
	for i, t := range m.takes {
		if t.name == m.activeTakeName {
			return i
		}
	}
	return -1
}

func (m *Model) ActiveTakeName() string { return m.activeTakeName }

func (m *Model) ActiveTake() *Take {
	return m.Take(ActiveTake)
}

// ResolveTake returns the take index ref designates, -1 when it resolves to
// no take.
func (m *Model) ResolveTake(ref TakeRef) int {
	if !ref.specific {
		return m.ActiveTakeIndex()
	}
	if ref.index < 0 || ref.index >= len(m.takes) {
		return -1
	}
	return ref.index
}

func (m *Model) Take(ref TakeRef) *Take {
	idx := m.ResolveTake(ref)
	if idx == -1 {
		return nil
	}
	return m.takes[idx]
}

func (m *Model) TakeIndex(take *Take) int {
	for i, t := range m.takes {
		if t == take {
			return i
		}
	}
	return -1
}

func (m *Model) TakeByName(name string) *Take {
	for _, t := range m.takes {
		if t.name == name {
			return t
		}
	}
	return nil
}

// SetActiveTake activates the take called name. An unknown name leaves no
// take active.
func (m *Model) SetActiveTake(name string) {
	m.activeTakeName = name
	m.notifyActiveTake()
}

// SetActiveTakeIndex activates the take at index; a negative index clears
// the active take.
func (m *Model) SetActiveTakeIndex(index int) {
	if index > len(m.takes)-1 {
		index = len(m.takes) - 1
	}
	if index < 0 {
		m.SetActiveTake("")
		return
	}
	m.SetActiveTake(m.takes[index].name)
}

// UniqueTakeName returns candidate, or candidate + "_1" when a take already
// uses that name. Only one level of suffix is tried.
func (m *Model) UniqueTakeName(candidate string) string {
	for _, t := range m.takes {
		if t.name == candidate {
			return candidate + "_1"
		}
	}
	return candidate
}

// AddTake appends a take with a unique name derived from name. The first take
// added to an empty model becomes active.
func (m *Model) AddTake(name string) *Take {
	t := &Take{name: m.UniqueTakeName(name)}
	m.takes = append(m.takes, t)
	if len(m.takes) == 1 && m.ActiveTakeIndex() == -1 {
		m.SetActiveTakeIndex(0)
	}
	return t
}

// RenameTake renames the take at index, keeping the active selector on it.
func (m *Model) RenameTake(index int, name string) bool {
	if index < 0 || index >= len(m.takes) {
		return false
	}
	t := m.takes[index]
	if t.name == name {
		return true
	}
	wasActive := m.ActiveTakeIndex() == index
	t.name = m.UniqueTakeName(name)
	if wasActive {
		m.activeTakeName = t.name
	}
	return true
}

// RemoveTake deletes the take at index. When the active take is removed the
// selector moves to the take now at that position, or the last take. The
// last remaining take is never removed.
func (m *Model) RemoveTake(index int) bool {
	if index < 0 || index >= len(m.takes) || len(m.takes) == 1 {
		return false
	}
	wasActive := m.ActiveTakeIndex() == index
	m.takes = append(m.takes[:index], m.takes[index+1:]...)
	m.FixShotsParent()

	if wasActive {
		m.SetActiveTakeIndex(index)
	}
	return true
}

// FixShotsParent recomputes every shot's parent take index from the
// take/shot containment.
func (m *Model) FixShotsParent() {
	for i, t := range m.takes {
		for _, s := range t.shots {
			s.parentTakeIndex = i
		}
	}
}
