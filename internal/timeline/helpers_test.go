package timeline

import "testing"

func shotParams(name string, start, end int, enabled bool) ShotParams {
	return ShotParams{Name: name, Start: start, End: end, Enabled: enabled, Color: DefaultShotColor}
}

// newABCModel builds the reference take: A(10-19) enabled, B(20-29)
// disabled, C(30-39) enabled.
func newABCModel(t *testing.T) (*Model, *Shot, *Shot, *Shot) {
	t.Helper()
	m := NewModel(nil)
	m.Initialize()
	a := m.AddShot(ActiveTake, -1, shotParams("A", 10, 19, true))
	b := m.AddShot(ActiveTake, -1, shotParams("B", 20, 29, false))
	c := m.AddShot(ActiveTake, -1, shotParams("C", 30, 39, true))
	if a == nil || b == nil || c == nil {
		t.Fatal("AddShot() returned nil on the default take")
	}
	return m, a, b, c
}

func shotNames(shots []*Shot) []string {
	names := make([]string, len(shots))
	for i, s := range shots {
		names[i] = s.Name()
	}
	return names
}

func equalNames(got []*Shot, want ...string) bool {
	names := shotNames(got)
	if len(names) != len(want) {
		return false
	}
	for i := range names {
		if names[i] != want[i] {
			return false
		}
	}
	return true
}
