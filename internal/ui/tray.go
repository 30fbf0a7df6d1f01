package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"

	"github.com/heimdex/shotmanager/internal/session"
	"github.com/heimdex/shotmanager/internal/timeline"
)

//go:embed icon.png
var iconBytes []byte

type Tray struct {
	session *session.Session
	logger  *slog.Logger

	statusItem   *systray.MenuItem
	takeItem     *systray.MenuItem
	playModeItem *systray.MenuItem

	mu    sync.Mutex
	ready bool

	onQuit func()
}

type TrayConfig struct {
	Session *session.Session
	Logger  *slog.Logger
	OnQuit  func()
}

func NewTray(cfg TrayConfig) *Tray {
	t := &Tray{
		session: cfg.Session,
		logger:  cfg.Logger,
		onQuit:  cfg.OnQuit,
	}
	cfg.Session.OnChange(t.refresh)
	return t
}

// Run blocks until the tray exits. It must be called from the main
// goroutine on macOS.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconBytes)
	systray.SetTitle("Shots")
	systray.SetTooltip("Shot Manager")

	t.statusItem = systray.AddMenuItem("No current shot", "Current shot")
	t.statusItem.Disable()

	t.takeItem = systray.AddMenuItem("Take: -", "Active take")
	t.takeItem.Disable()

	systray.AddSeparator()

	prevItem := systray.AddMenuItem("Previous Shot", "Go to the previous shot")
	nextItem := systray.AddMenuItem("Next Shot", "Go to the next shot")
	rangeItem := systray.AddMenuItem("Scene Range From Shot", "Set the preview range to the current shot")
	t.playModeItem = systray.AddMenuItemCheckbox("Shot Play Mode", "Step frames within shots", false)

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit Shot Manager")

	t.mu.Lock()
	t.ready = true
	t.mu.Unlock()
	t.refresh()

	go func() {
		for {
			select {
			case <-prevItem.ClickedCh:
				t.step(func(tx *session.Tx) { tx.Nav.GoToPreviousShot(tx.Host.CurrentFrame()) })
			case <-nextItem.ClickedCh:
				t.step(func(tx *session.Tx) { tx.Nav.GoToNextShot(tx.Host.CurrentFrame()) })
			case <-rangeItem.ClickedCh:
				t.sceneRangeFromShot()
			case <-t.playModeItem.ClickedCh:
				t.togglePlayMode()
			case <-quitItem.ClickedCh:
				t.logger.Info("quit requested from tray")
				if t.onQuit != nil {
					t.onQuit()
				}
				systray.Quit()
				return
			}
		}
	}()

	t.logger.Info("system tray ready")
}

func (t *Tray) onExit() {
	t.logger.Info("system tray exiting")
}

func (t *Tray) step(move func(tx *session.Tx)) {
	err := t.session.Update(context.Background(), func(tx *session.Tx) error {
		move(tx)
		return nil
	})
	if err != nil {
		t.logger.Error("failed to step from tray", "error", err)
	}
}

func (t *Tray) sceneRangeFromShot() {
	err := t.session.Update(context.Background(), func(tx *session.Tx) error {
		tx.Nav.SceneRangeFromCurrentShot()
		return nil
	})
	if err != nil {
		t.logger.Error("failed to set scene range from tray", "error", err)
	}
}

type playModeSetter interface {
	SetShotPlayMode(on bool)
}

func (t *Tray) togglePlayMode() {
	err := t.session.Update(context.Background(), func(tx *session.Tx) error {
		setter, ok := tx.Host.(playModeSetter)
		if !ok {
			return fmt.Errorf("host does not support shot play mode")
		}
		setter.SetShotPlayMode(!tx.Host.ShotPlayMode())
		return nil
	})
	if err != nil {
		t.logger.Warn("failed to toggle shot play mode", "error", err)
	}
}

// trayState is what the menu shows.
type trayState struct {
	takeName     string
	shotName     string
	shotIndex    int
	shotCount    int
	shotEnabled  bool
	editTime     int
	shotPlayMode bool
}

func readTrayState(tx *session.Tx) trayState {
	st := trayState{
		takeName:     tx.Model.ActiveTakeName(),
		shotIndex:    tx.Nav.CurrentShotIndex(),
		shotCount:    len(tx.Model.Shots(timeline.ActiveTake, false)),
		editTime:     tx.Nav.EditCurrentTime(),
		shotPlayMode: tx.Host.ShotPlayMode(),
	}
	if shot := tx.Nav.CurrentShot(); shot != nil {
		st.shotName = shot.Name()
		st.shotEnabled = shot.Enabled()
	}
	return st
}

func (st trayState) statusTitle() string {
	if st.shotName == "" {
		return "No current shot"
	}
	title := fmt.Sprintf("Shot %d/%d: %s", st.shotIndex+1, st.shotCount, st.shotName)
	if !st.shotEnabled {
		title += " (disabled)"
	}
	if st.editTime >= 0 {
		title += fmt.Sprintf(" @ %d", st.editTime)
	}
	return title
}

func (st trayState) takeTitle() string {
	if st.takeName == "" {
		return "Take: -"
	}
	return "Take: " + st.takeName
}

func (t *Tray) refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ready {
		return
	}

	var st trayState
	t.session.View(func(tx *session.Tx) error {
		st = readTrayState(tx)
		return nil
	})

	t.statusItem.SetTitle(st.statusTitle())
	t.takeItem.SetTitle(st.takeTitle())
	if st.shotPlayMode {
		t.playModeItem.Check()
	} else {
		t.playModeItem.Uncheck()
	}
}

func (t *Tray) Quit() {
	systray.Quit()
}
