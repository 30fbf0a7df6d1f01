package timeline

import "log/slog"

// ShotRecord is the persisted form of a shot.
type ShotRecord struct {
	ID      string    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Start   int       `json:"start" yaml:"start"`
	End     int       `json:"end" yaml:"end"`
	Enabled bool      `json:"enabled" yaml:"enabled"`
	Camera  CameraRef `json:"camera,omitempty" yaml:"camera,omitempty"`
	Color   Color     `json:"color" yaml:"color"`
}

type TakeRecord struct {
	Name  string       `json:"name" yaml:"name"`
	Shots []ShotRecord `json:"shots" yaml:"shots"`
}

// Snapshot is a detached copy of a model's state.
type Snapshot struct {
	Takes          []TakeRecord `json:"takes" yaml:"takes"`
	ActiveTakeName string       `json:"active_take_name" yaml:"active_take_name"`
	EditStartFrame int          `json:"edit_start_frame" yaml:"edit_start_frame"`
}

func (m *Model) Snapshot() Snapshot {
	snap := Snapshot{
		Takes:          make([]TakeRecord, 0, len(m.takes)),
		ActiveTakeName: m.activeTakeName,
		EditStartFrame: m.editStartFrame,
	}
	for _, t := range m.takes {
		tr := TakeRecord{Name: t.name, Shots: make([]ShotRecord, 0, len(t.shots))}
		for _, s := range t.shots {
			tr.Shots = append(tr.Shots, ShotRecord{
				ID:      s.id,
				Name:    s.name,
				Start:   s.start,
				End:     s.end,
				Enabled: s.enabled,
				Camera:  s.camera,
				Color:   s.color,
			})
		}
		snap.Takes = append(snap.Takes, tr)
	}
	return snap
}

// Restore builds a model from snap. Shots with start > end are dropped and a
// negative edit start frame is reset to 0. No listener is notified.
func Restore(snap Snapshot, logger *slog.Logger) *Model {
	m := NewModel(logger)
	if snap.EditStartFrame > 0 {
		m.editStartFrame = snap.EditStartFrame
	}
	for i, tr := range snap.Takes {
		t := &Take{name: tr.Name}
		for _, sr := range tr.Shots {
			if sr.Start > sr.End {
				if logger != nil {
					logger.Warn("dropping shot with inverted range", "shot", sr.Name, "start", sr.Start, "end", sr.End)
				}
				continue
			}
			s := newShot(ShotParams{
				Name:    sr.Name,
				Start:   sr.Start,
				End:     sr.End,
				Camera:  sr.Camera,
				Color:   sr.Color,
				Enabled: sr.Enabled,
			}, i)
			if sr.ID != "" {
				s.id = sr.ID
			}
			t.shots = append(t.shots, s)
		}
		m.takes = append(m.takes, t)
	}
	m.activeTakeName = snap.ActiveTakeName
	return m
}
