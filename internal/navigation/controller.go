// Package navigation tracks the current and selected shot of the active take
// and steps through the edit shot by shot or frame by frame.
package navigation

import (
	"log/slog"

	"github.com/heimdex/shotmanager/internal/frames"
	"github.com/heimdex/shotmanager/internal/host"
	"github.com/heimdex/shotmanager/internal/logging"
	"github.com/heimdex/shotmanager/internal/timeline"
)

// Options tune side effects of shot switches.
type Options struct {
	// ChangeTimeOnShotSwitch moves the scene cursor to the start of a shot
	// when it becomes current.
	ChangeTimeOnShotSwitch bool
}

func DefaultOptions() Options {
	return Options{ChangeTimeOnShotSwitch: true}
}

// Controller owns the current and selected shot indices. Indices address
// the full shot list of the active take, disabled shots included. It is not
// safe for concurrent use.
type Controller struct {
	model  *timeline.Model
	host   host.Host
	opts   Options
	logger *slog.Logger

	current  int
	selected int
}

// New builds a controller over model and registers it for take activations:
// activating a take makes its first shot current and selected.
func New(model *timeline.Model, h host.Host, opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Controller{
		model:    model,
		host:     h,
		opts:     opts,
		logger:   logger,
		current:  -1,
		selected: -1,
	}
	model.OnActiveTakeChanged(c.onActiveTakeChanged)
	if model.ActiveTakeIndex() != -1 && len(model.Shots(timeline.ActiveTake, false)) > 0 {
		c.current, c.selected = 0, 0
	}
	return c
}

func (c *Controller) Options() Options { return c.opts }

func (c *Controller) SetOptions(opts Options) { c.opts = opts }

func (c *Controller) onActiveTakeChanged(takeIndex int) {
	c.logger.Debug("active take changed", "take_index", takeIndex)
	c.SetCurrentShotByIndex(0)
	c.SetSelectedShotByIndex(0)
}

// State returns the raw indices, for persistence.
func (c *Controller) State() (current, selected int) {
	return c.current, c.selected
}

// Restore sets both indices without touching the host. Indices are clamped
// to the active take.
func (c *Controller) Restore(current, selected int) {
	c.current = c.clamp(current)
	c.selected = c.clamp(selected)
}

func (c *Controller) shotCount() int {
	return len(c.model.Shots(timeline.ActiveTake, false))
}

func (c *Controller) clamp(i int) int {
	n := c.shotCount()
	if i > n-1 {
		i = n - 1
	}
	if i < -1 {
		i = -1
	}
	return i
}

// SetCurrentShotByIndex makes the shot at i current. When i addresses a
// shot, the scene cursor moves to its start (if ChangeTimeOnShotSwitch is
// set) and its camera, if it still exists, becomes the active camera.
func (c *Controller) SetCurrentShotByIndex(i int) {
	c.current = c.clamp(i)

	shot := c.model.Shot(timeline.ActiveTake, i, false)
	if shot == nil {
		return
	}
	if c.opts.ChangeTimeOnShotSwitch {
		c.host.SetCurrentFrame(shot.Start())
	}
	if cam := shot.Camera(); cam != timeline.NoCamera && c.host.HasCamera(string(cam)) {
		c.host.SetActiveCamera(string(cam))
		c.host.SetViewToCamera()
	}
	c.logger.Debug("current shot changed", "shot", shot.Name(), "index", c.current)
}

// SetSelectedShotByIndex changes the selection only.
func (c *Controller) SetSelectedShotByIndex(i int) {
	c.selected = c.clamp(i)
}

func (c *Controller) SetCurrentShot(shot *timeline.Shot) {
	c.SetCurrentShotByIndex(c.model.ShotIndex(shot, timeline.ActiveTake))
}

func (c *Controller) SetSelectedShot(shot *timeline.Shot) {
	c.SetSelectedShotByIndex(c.model.ShotIndex(shot, timeline.ActiveTake))
}

// CurrentShotIndex returns the current index in the full list of the active
// take, -1 when there is none. A stale index past the end of the list is
// pulled back to the last shot and kept.
func (c *Controller) CurrentShotIndex() int {
	if c.model.ActiveTakeIndex() == -1 {
		return -1
	}
	n := c.shotCount()
	if n == 0 {
		return -1
	}
	if c.current > n-1 {
		c.current = n - 1
	}
	return c.current
}

// CurrentShotIndexFor returns CurrentShotIndex when ref designates the
// active take. Other takes have no current shot.
func (c *Controller) CurrentShotIndexFor(ref timeline.TakeRef) int {
	idx := c.model.ResolveTake(ref)
	if idx == -1 || idx != c.model.ActiveTakeIndex() {
		return -1
	}
	return c.CurrentShotIndex()
}

// EnabledCurrentShotIndex returns the current index counted in the enabled
// shot list: the current index minus the disabled shots up to and including
// it. It can be -1 when every shot up to the current one is disabled.
func (c *Controller) EnabledCurrentShotIndex() int {
	cur := c.CurrentShotIndex()
	if cur == -1 {
		return -1
	}
	shots := c.model.Shots(timeline.ActiveTake, false)
	idx := cur
	for _, s := range shots[:cur+1] {
		if !s.Enabled() {
			idx--
		}
	}
	return idx
}

// SelectedShotIndex returns the selection, corrected to the active take
// without storing the correction.
func (c *Controller) SelectedShotIndex() int {
	if c.model.TakeCount() == 0 {
		return -1
	}
	n := c.shotCount()
	if n == 0 {
		return -1
	}
	if c.selected > n-1 {
		return n - 1
	}
	return c.selected
}

func (c *Controller) CurrentShot() *timeline.Shot {
	return c.model.Shot(timeline.ActiveTake, c.CurrentShotIndex(), false)
}

func (c *Controller) SelectedShot() *timeline.Shot {
	return c.model.Shot(timeline.ActiveTake, c.SelectedShotIndex(), false)
}

// EditCurrentTime maps the scene cursor, read inside the current shot, to
// edit time. It returns -1 when there is no current shot or when the
// cursor lies outside it.
func (c *Controller) EditCurrentTime() int {
	return c.model.EditTime(c.CurrentShot(), c.host.CurrentFrame())
}

// SceneRangeFromCurrentShot sets the host preview range to the current shot.
func (c *Controller) SceneRangeFromCurrentShot() (frames.Range, bool) {
	shot := c.CurrentShot()
	if shot == nil {
		return frames.Range{}, false
	}
	r := shot.Range()
	c.host.SetPreviewRange(r)
	return r, true
}

// SceneRangeFromEdit sets the host preview range to span the enabled shots
// of the active take.
func (c *Controller) SceneRangeFromEdit() (frames.Range, bool) {
	r, ok := c.model.EditRange(timeline.ActiveTake)
	if !ok {
		return frames.Range{}, false
	}
	c.host.SetPreviewRange(r)
	return r, true
}
