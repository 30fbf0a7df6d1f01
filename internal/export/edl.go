// Package export writes the edit of a take as a CMX 3600 edit decision list.
package export

import (
	"fmt"
	"math"
	"strings"
)

const defaultFPS = 25

// GenerateEDL renders events as a CMX 3600 EDL. Timecodes are computed
// from frame numbers at the rounded frame rate.
func GenerateEDL(events []Event, title string, frameRate float64) string {
	fps := int(math.Round(frameRate))
	if fps <= 0 {
		fps = defaultFPS
	}

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if isDropFrame(frameRate) {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	for i, ev := range events {
		reel := ev.Reel
		if reel == "" {
			reel = "AX"
		}
		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, reel, "V",
				framesToTimecode(ev.SourceIn, fps), framesToTimecode(ev.SourceOut, fps),
				framesToTimecode(ev.RecordIn, fps), framesToTimecode(ev.RecordOut, fps)),
			fmt.Sprintf("* FROM CLIP NAME:  %s", ev.ShotName),
		)
		if ev.Camera != "" {
			lines = append(lines, fmt.Sprintf("* CAMERA:  %s", ev.Camera))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func isDropFrame(frameRate float64) bool {
	return math.Abs(frameRate-29.97) < 0.01 || math.Abs(frameRate-59.94) < 0.01
}

// framesToTimecode formats a frame count as HH:MM:SS:FF. Negative scene
// frames keep a leading minus.
func framesToTimecode(total int, fps int) string {
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	ff := total % fps
	totalSeconds := total / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%s%02d:%02d:%02d:%02d", sign, hours, minutes, seconds, ff)
}
