package session

import (
	"fmt"

	"github.com/heimdex/shotmanager/internal/timeline"
)

// NewShotParams returns the fields of a shot created without explicit
// values: a prefixed, numbered name and the configured duration starting at
// the scene cursor.
func (tx *Tx) NewShotParams(ref timeline.TakeRef) timeline.ShotParams {
	n := len(tx.Model.Shots(ref, false)) + 1
	name := tx.Model.UniqueShotName(fmt.Sprintf("%s%02d", tx.opts.NewShotPrefix, n), ref)
	start := tx.Host.CurrentFrame()
	duration := tx.opts.NewShotDuration
	if duration < 1 {
		duration = 1
	}
	return timeline.ShotParams{
		Name:    name,
		Start:   start,
		End:     start + duration - 1,
		Color:   timeline.DefaultShotColor,
		Enabled: true,
	}
}

// AddDefaultShot adds a shot with NewShotParams right after the selected
// shot of the active take, or at the end of another take, and makes it
// current and selected when it lands in the active take.
func (tx *Tx) AddDefaultShot(ref timeline.TakeRef) *timeline.Shot {
	at := -1
	active := tx.Model.ResolveTake(ref) == tx.Model.ActiveTakeIndex()
	if active {
		if sel := tx.Nav.SelectedShotIndex(); sel != -1 {
			at = sel + 1
		}
	}

	shot := tx.Model.AddShot(ref, at, tx.NewShotParams(ref))
	if shot != nil && active {
		tx.Nav.SetCurrentShot(shot)
		tx.Nav.SetSelectedShot(shot)
	}
	return shot
}
