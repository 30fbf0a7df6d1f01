package timeline

import (
	"testing"
)

func TestModel_AddShot(t *testing.T) {
	m := NewModel(nil)

	if s := m.AddShot(ActiveTake, -1, shotParams("Sh01", 0, 9, true)); s != nil {
		t.Fatal("AddShot() without takes should return nil")
	}

	m.Initialize()
	a := m.AddShot(ActiveTake, -1, shotParams("Sh01", 0, 9, true))
	b := m.AddShot(ActiveTake, -1, shotParams("Sh02", 10, 19, true))
	c := m.AddShot(ActiveTake, 0, shotParams("Sh00", 20, 29, true))

	if a == nil || b == nil || c == nil {
		t.Fatal("AddShot() returned nil")
	}
	if !equalNames(m.Shots(ActiveTake, false), "Sh00", "Sh01", "Sh02") {
		t.Errorf("shots = %v, want [Sh00 Sh01 Sh02]", shotNames(m.Shots(ActiveTake, false)))
	}
	if c.ParentTakeIndex() != 0 {
		t.Errorf("ParentTakeIndex() = %d, want 0", c.ParentTakeIndex())
	}
	if a.ID() == b.ID() {
		t.Error("shots should get distinct ids")
	}

	if s := m.AddShot(ActiveTake, -1, shotParams("bad", 10, 9, true)); s != nil {
		t.Error("AddShot() with start > end should return nil")
	}
	if s := m.AddShot(TakeAt(3), -1, shotParams("lost", 0, 1, true)); s != nil {
		t.Error("AddShot() on unknown take should return nil")
	}

	d := m.AddShot(ActiveTake, 99, shotParams("Tail", 30, 39, true))
	if got := m.ShotIndex(d, ActiveTake); got != 3 {
		t.Errorf("AddShot() at index past the end landed at %d, want 3", got)
	}
}

func TestModel_CopyShot(t *testing.T) {
	m, a, _, _ := newABCModel(t)
	m.SetShotCamera(a, "CamA")

	cp := m.CopyShot(a, 1)
	if cp == nil {
		t.Fatal("CopyShot() returned nil")
	}
	if cp == a || cp.ID() == a.ID() {
		t.Error("CopyShot() should create a distinct shot")
	}
	if cp.Name() != "A_1" {
		t.Errorf("copy name = %q, want A_1", cp.Name())
	}
	if cp.Start() != 10 || cp.End() != 19 || !cp.Enabled() || cp.Camera() != "CamA" {
		t.Errorf("copy fields = %d-%d enabled=%v camera=%q", cp.Start(), cp.End(), cp.Enabled(), cp.Camera())
	}
	if got := m.ShotIndex(cp, ActiveTake); got != 1 {
		t.Errorf("copy index = %d, want 1", got)
	}

	m.AddTake("Alt")
	other := m.CopyShotTo(a, TakeAt(1), -1)
	if other == nil || other.Name() != "A" || other.ParentTakeIndex() != 1 {
		t.Fatalf("CopyShotTo() = %+v", other)
	}
	if m.ActiveTakeIndex() != 0 {
		t.Error("CopyShotTo() changed the active take")
	}

	if m.CopyShot(nil, -1) != nil {
		t.Error("CopyShot(nil) should return nil")
	}
}

func TestModel_UniqueShotName(t *testing.T) {
	m := NewModel(nil)
	m.Initialize()

	if got := m.UniqueShotName("Sh01", ActiveTake); got != "Sh01" {
		t.Errorf("UniqueShotName() on empty take = %q, want Sh01", got)
	}

	m.AddShot(ActiveTake, -1, shotParams("Sh01", 0, 9, true))
	if got := m.UniqueShotName("Sh01", ActiveTake); got != "Sh01_1" {
		t.Errorf("UniqueShotName() = %q, want Sh01_1", got)
	}

	m.AddShot(ActiveTake, -1, shotParams("Sh01_1", 10, 19, true))
	if got := m.UniqueShotName("Sh01", ActiveTake); got != "Sh01_1" {
		t.Errorf("UniqueShotName() should not check the suffixed name, got %q", got)
	}

	m.AddTake("Alt")
	if got := m.UniqueShotName("Sh01", TakeAt(1)); got != "Sh01" {
		t.Errorf("UniqueShotName() in another take = %q, want Sh01", got)
	}
	if got := m.UniqueShotName("Sh01", TakeAt(7)); got != "Sh01" {
		t.Errorf("UniqueShotName() on unknown take = %q, want Sh01", got)
	}
}

func TestModel_RemoveAndMoveShot(t *testing.T) {
	m, a, b, c := newABCModel(t)

	if !m.MoveShot(ActiveTake, 0, 2) {
		t.Fatal("MoveShot(0, 2) = false")
	}
	if !equalNames(m.Shots(ActiveTake, false), "B", "C", "A") {
		t.Errorf("after move = %v", shotNames(m.Shots(ActiveTake, false)))
	}

	if !m.MoveShot(ActiveTake, 2, 0) {
		t.Fatal("MoveShot(2, 0) = false")
	}
	if m.ShotIndex(a, ActiveTake) != 0 || m.ShotIndex(b, ActiveTake) != 1 || m.ShotIndex(c, ActiveTake) != 2 {
		t.Errorf("after move back = %v", shotNames(m.Shots(ActiveTake, false)))
	}

	if !m.RemoveShot(ActiveTake, 1) {
		t.Fatal("RemoveShot(1) = false")
	}
	if m.ShotIndex(b, ActiveTake) != -1 {
		t.Error("removed shot is still indexed")
	}
	if m.RemoveShot(ActiveTake, 5) || m.MoveShot(ActiveTake, 5, 0) {
		t.Error("out of range remove/move should return false")
	}
}

func TestModel_SetShotRange(t *testing.T) {
	m, a, _, _ := newABCModel(t)

	if err := m.SetShotRange(a, 20, 10); err != ErrInvalidRange {
		t.Errorf("SetShotRange(20, 10) error = %v, want %v", err, ErrInvalidRange)
	}
	if a.Start() != 10 || a.End() != 19 {
		t.Errorf("rejected range modified shot to %d-%d", a.Start(), a.End())
	}

	if err := m.SetShotRange(a, 12, 12); err != nil {
		t.Fatalf("SetShotRange(12, 12) error = %v", err)
	}
	if a.Duration() != 1 {
		t.Errorf("Duration() = %d, want 1", a.Duration())
	}
}

func TestModel_RenameShot(t *testing.T) {
	m, a, b, _ := newABCModel(t)

	m.RenameShot(b, "A")
	if b.Name() != "A_1" {
		t.Errorf("RenameShot() to an existing name = %q, want A_1", b.Name())
	}

	m.RenameShot(a, "A")
	if a.Name() != "A" {
		t.Errorf("RenameShot() to its own name = %q, want A", a.Name())
	}
}

func TestModel_SetAllShotsEnabled(t *testing.T) {
	m, a, b, c := newABCModel(t)

	m.SetAllShotsEnabled(ActiveTake, InvertAll)
	if a.Enabled() || !b.Enabled() || c.Enabled() {
		t.Error("InvertAll did not invert every shot")
	}

	m.SetAllShotsEnabled(ActiveTake, DisableAll)
	if len(m.Shots(ActiveTake, true)) != 0 {
		t.Error("DisableAll left enabled shots")
	}

	m.SetAllShotsEnabled(ActiveTake, EnableAll)
	if len(m.Shots(ActiveTake, true)) != 3 {
		t.Error("EnableAll left disabled shots")
	}
}

func TestModel_FixShotsParent(t *testing.T) {
	m, a, _, _ := newABCModel(t)
	a.parentTakeIndex = 4

	m.FixShotsParent()
	if a.ParentTakeIndex() != 0 {
		t.Errorf("ParentTakeIndex() after repair = %d, want 0", a.ParentTakeIndex())
	}
}

func TestShot_NamePathCompliant(t *testing.T) {
	m := NewModel(nil)
	take := m.AddTake("My Take")
	s := m.AddShot(ActiveTake, -1, shotParams("Shot 01 a", 0, 0, true))

	if got := s.NamePathCompliant(); got != "Shot_01_a" {
		t.Errorf("NamePathCompliant() = %q", got)
	}
	if got := take.NamePathCompliant(); got != "My_Take" {
		t.Errorf("take NamePathCompliant() = %q", got)
	}
}
