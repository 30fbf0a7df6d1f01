package ingest

import (
	"errors"
	"testing"

	"github.com/heimdex/shotmanager/internal/frames"
	"github.com/heimdex/shotmanager/internal/host"
	"github.com/heimdex/shotmanager/internal/timeline"
)

func testSequence() Sequence {
	return Sequence{
		Name:  "Seq010",
		Start: 100,
		End:   159,
		Clips: []Clip{
			{Name: "Proj_Seq010_Sh0010.mov", Start: 100, End: 119, Camera: "CamA"},
			{Name: "Proj_Seq010_Sh0020.mov", Start: 120, End: 139},
			{Name: "Proj_Seq010_Sh0030.mov", Start: 140, End: 159, Disabled: true},
		},
	}
}

func newModel() *timeline.Model {
	m := timeline.NewModel(nil)
	m.Initialize()
	return m
}

func TestImporter_Import(t *testing.T) {
	m := newModel()
	h := host.NewMemory(25)
	im := NewImporter(m, h, nil)

	res, err := im.Import(testSequence(), Options{Take: timeline.ActiveTake})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(res.Shots) != 3 {
		t.Fatalf("Import() created %d shots, want 3", len(res.Shots))
	}

	shots := m.Shots(timeline.ActiveTake, false)
	if shots[0].Start() != 100 || shots[0].End() != 119 {
		t.Errorf("first shot = %d-%d, want 100-119", shots[0].Start(), shots[0].End())
	}
	if shots[0].Name() != "Proj_Seq010_Sh0010.mov" {
		t.Errorf("first shot name = %q", shots[0].Name())
	}
	if shots[0].Camera() != "CamA" || !h.HasCamera("CamA") {
		t.Error("clip camera not carried to the shot and the host")
	}
	if shots[2].Enabled() {
		t.Error("disabled clip imported as enabled shot")
	}
	if res.Shots[1].MediaOffset != 0 {
		t.Errorf("MediaOffset = %d, want 0 without handles", res.Shots[1].MediaOffset)
	}
}

func TestImporter_ImportOptions(t *testing.T) {
	m := newModel()
	h := host.NewMemory(25)
	im := NewImporter(m, h, nil)

	opts := DefaultOptions()
	opts.OffsetTime = true
	opts.ReformatShotNames = true
	opts.CreateCameras = true
	opts.MediaHaveHandles = true
	opts.TimeRange = &frames.Range{Start: 125, End: 200}

	res, err := im.Import(testSequence(), opts)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if len(res.Shots) != 2 {
		t.Fatalf("Import() created %d shots, want 2", len(res.Shots))
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "Proj_Seq010_Sh0010.mov" {
		t.Errorf("Skipped = %v", res.Skipped)
	}

	first := res.Shots[0]
	if first.Name != "Sh0020" {
		t.Errorf("Name = %q, want Sh0020", first.Name)
	}
	if first.Start != 45 || first.End != 64 {
		t.Errorf("range = %d-%d, want 45-64", first.Start, first.End)
	}
	if first.Camera != "Cam_Sh0020" || !h.HasCamera("Cam_Sh0020") {
		t.Errorf("Camera = %q, want Cam_Sh0020 registered on the host", first.Camera)
	}
	if first.MediaOffset != 10 {
		t.Errorf("MediaOffset = %d, want 10", first.MediaOffset)
	}
}

func TestImporter_ImportIntoOtherTake(t *testing.T) {
	m := newModel()
	m.AddTake("Edit B")
	im := NewImporter(m, nil, nil)

	res, err := im.Import(testSequence(), Options{Take: timeline.TakeAt(1), CreateCameras: true})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.TakeIndex != 1 {
		t.Errorf("TakeIndex = %d, want 1", res.TakeIndex)
	}
	if len(m.Shots(timeline.TakeAt(0), false)) != 0 {
		t.Error("import touched the active take")
	}
	if m.ActiveTakeIndex() != 0 {
		t.Error("import changed the active take")
	}
}

func TestImporter_UniqueNames(t *testing.T) {
	m := newModel()
	im := NewImporter(m, nil, nil)
	seq := Sequence{Clips: []Clip{
		{Name: "Sh01", Start: 0, End: 9},
		{Name: "Sh01", Start: 10, End: 19},
		{Name: "Sh02", Start: 20, End: 10},
	}}

	res, err := im.Import(seq, Options{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(res.Shots) != 2 || res.Shots[1].Name != "Sh01_1" {
		t.Errorf("shots = %+v", res.Shots)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "Sh02" {
		t.Errorf("Skipped = %v, want [Sh02]", res.Skipped)
	}
}

func TestImporter_NoTake(t *testing.T) {
	im := NewImporter(timeline.NewModel(nil), nil, nil)

	if _, err := im.Import(testSequence(), Options{}); !errors.Is(err, ErrNoTake) {
		t.Errorf("Import() error = %v, want %v", err, ErrNoTake)
	}
}

func TestReformatShotName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Proj_Seq010_Sh0040.mov", "Sh0040"},
		{"Sh0040.mp4", "Sh0040"},
		{"Sh0040", "Sh0040"},
		{"trailing_", "trailing_"},
		{"a_b_c", "c"},
	}
	for _, tt := range tests {
		if got := ReformatShotName(tt.in); got != tt.want {
			t.Errorf("ReformatShotName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSequenceFromTake_RoundTrip(t *testing.T) {
	src := newModel()
	src.AddShot(timeline.ActiveTake, -1, timeline.ShotParams{Name: "A", Start: 30, End: 39, Enabled: true, Camera: "CamA"})
	src.AddShot(timeline.ActiveTake, -1, timeline.ShotParams{Name: "B", Start: 5, End: 9, Enabled: false})

	seq, ok := SequenceFromTake(src, timeline.ActiveTake)
	if !ok {
		t.Fatal("SequenceFromTake() not ok")
	}
	if seq.Name != timeline.DefaultTakeName || seq.Start != 5 || seq.End != 39 {
		t.Errorf("sequence = %s %d-%d", seq.Name, seq.Start, seq.End)
	}

	dst := newModel()
	if _, err := NewImporter(dst, nil, nil).Import(seq, Options{}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	want := src.Shots(timeline.ActiveTake, false)
	got := dst.Shots(timeline.ActiveTake, false)
	if len(got) != len(want) {
		t.Fatalf("round trip has %d shots, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name() != want[i].Name() || got[i].Range() != want[i].Range() ||
			got[i].Enabled() != want[i].Enabled() || got[i].Camera() != want[i].Camera() {
			t.Errorf("shot %d = %+v, want %+v", i, got[i].Params(), want[i].Params())
		}
	}

	if _, ok := SequenceFromTake(src, timeline.TakeAt(5)); ok {
		t.Error("SequenceFromTake() on unknown take should not be ok")
	}
}
