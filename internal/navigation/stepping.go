package navigation

import "github.com/heimdex/shotmanager/internal/timeline"

type direction int

const (
	backward direction = -1
	forward  direction = 1
)

func (d direction) String() string {
	if d == backward {
		return "previous"
	}
	return "next"
}

// GoToPreviousShot moves to the start of the current shot, or, when the
// cursor already is on that start or the current shot is disabled, to the
// end of the previous enabled shot. At the first enabled shot it returns
// frame unchanged.
func (c *Controller) GoToPreviousShot(frame int) int {
	return c.step(frame, backward, false)
}

// GoToNextShot mirrors GoToPreviousShot towards the end of the edit.
func (c *Controller) GoToNextShot(frame int) int {
	return c.step(frame, forward, false)
}

// GoToPreviousFrame steps one frame back. In shot play mode the step is
// bounded by the current shot and leaving its start jumps to the end of the
// previous enabled shot.
func (c *Controller) GoToPreviousFrame(frame int) int {
	return c.stepFrame(frame, backward)
}

// GoToNextFrame mirrors GoToPreviousFrame.
func (c *Controller) GoToNextFrame(frame int) int {
	return c.stepFrame(frame, forward)
}

func (c *Controller) stepFrame(frame int, dir direction) int {
	if c.shotCount() == 0 {
		return frame
	}
	if !c.host.ShotPlayMode() {
		next := frame + int(dir)
		c.host.SetCurrentFrame(next)
		return next
	}
	return c.step(frame, dir, true)
}

// step runs one transition of the shot stepping state machine. byFrame
// selects a one-frame move inside the shot instead of a jump to its edge.
func (c *Controller) step(frame int, dir direction, byFrame bool) int {
	cur := c.CurrentShotIndex()
	shot := c.model.Shot(timeline.ActiveTake, cur, false)
	if shot == nil {
		return frame
	}

	edge := shot.End()
	if dir == backward {
		edge = shot.Start()
	}

	target, next := cur, frame
	switch {
	case !shot.Enabled() || frame == edge:
		if adj := c.adjacentEnabled(cur, dir); adj != -1 {
			target = adj
			next = entryFrame(c.model.Shot(timeline.ActiveTake, adj, false), dir)
		}
	case byFrame:
		next = frame + int(dir)
	default:
		next = edge
	}

	c.SetCurrentShotByIndex(target)
	c.SetSelectedShotByIndex(target)
	c.host.SetCurrentFrame(next)

	c.logger.Debug("navigation step",
		"direction", dir.String(),
		"by_frame", byFrame,
		"from_frame", frame,
		"to_frame", next,
		"shot_index", target,
	)
	return next
}

func (c *Controller) adjacentEnabled(from int, dir direction) int {
	if dir == backward {
		return c.model.PreviousEnabledShotIndex(from, timeline.ActiveTake)
	}
	return c.model.NextEnabledShotIndex(from, timeline.ActiveTake)
}

// entryFrame is the frame a step lands on when it enters shot: its end when
// moving backward, its start when moving forward.
func entryFrame(shot *timeline.Shot, dir direction) int {
	if dir == backward {
		return shot.End()
	}
	return shot.Start()
}
