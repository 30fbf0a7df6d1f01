package ui

import (
	"context"
	"testing"

	"github.com/heimdex/shotmanager/internal/host"
	"github.com/heimdex/shotmanager/internal/session"
	"github.com/heimdex/shotmanager/internal/timeline"
)

func TestTrayState_Titles(t *testing.T) {
	tests := []struct {
		name     string
		st       trayState
		wantShot string
		wantTake string
	}{
		{
			name:     "no shot",
			st:       trayState{shotIndex: -1, editTime: -1},
			wantShot: "No current shot",
			wantTake: "Take: -",
		},
		{
			name:     "enabled shot in range",
			st:       trayState{takeName: "Main Take", shotName: "Sh01", shotIndex: 0, shotCount: 3, shotEnabled: true, editTime: 12},
			wantShot: "Shot 1/3: Sh01 @ 12",
			wantTake: "Take: Main Take",
		},
		{
			name:     "disabled shot",
			st:       trayState{takeName: "Alt", shotName: "Sh02", shotIndex: 1, shotCount: 3, editTime: -1},
			wantShot: "Shot 2/3: Sh02 (disabled)",
			wantTake: "Take: Alt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.st.statusTitle(); got != tt.wantShot {
				t.Errorf("statusTitle() = %q, want %q", got, tt.wantShot)
			}
			if got := tt.st.takeTitle(); got != tt.wantTake {
				t.Errorf("takeTitle() = %q, want %q", got, tt.wantTake)
			}
		})
	}
}

func TestReadTrayState(t *testing.T) {
	ctx := context.Background()
	h := host.NewMemory(25)
	s, err := session.Open(ctx, nil, h, session.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("session.Open() error = %v", err)
	}

	var st trayState
	s.Update(ctx, func(tx *session.Tx) error {
		tx.Model.AddShot(timeline.ActiveTake, -1, timeline.ShotParams{Name: "A", Start: 10, End: 19, Enabled: true})
		tx.Model.AddShot(timeline.ActiveTake, -1, timeline.ShotParams{Name: "B", Start: 30, End: 39, Enabled: true})
		tx.Nav.SetCurrentShotByIndex(1)
		h.SetCurrentFrame(32)
		st = readTrayState(tx)
		return nil
	})

	want := trayState{
		takeName:    timeline.DefaultTakeName,
		shotName:    "B",
		shotIndex:   1,
		shotCount:   2,
		shotEnabled: true,
		editTime:    12,
	}
	if st != want {
		t.Errorf("readTrayState() = %+v, want %+v", st, want)
	}
}

func TestTray_RefreshBeforeReady(t *testing.T) {
	s, err := session.Open(context.Background(), nil, host.NewMemory(25), session.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("session.Open() error = %v", err)
	}
	tray := NewTray(TrayConfig{Session: s})

	// Menu items do not exist until the tray is running.
	tray.refresh()
}
