package export

import "github.com/heimdex/shotmanager/internal/timeline"

// EDLRequest asks for the EDL of one take.
type EDLRequest struct {
	// Take is "active" or a take index.
	Take      string  `json:"take"`
	Title     string  `json:"title"`
	FrameRate float64 `json:"frame_rate"`
	OutputDir string  `json:"output_dir"`
}

// Event is one edit of the EDL. Source frames are scene frames; record
// frames are edit frames. Out points are exclusive.
type Event struct {
	ShotName  string
	Reel      string
	Camera    string
	SourceIn  int
	SourceOut int
	RecordIn  int
	RecordOut int
}

type EDLResponse struct {
	Status     string `json:"status"`
	OutputPath string `json:"output_path"`
	EventCount int    `json:"event_count"`
	Duration   int    `json:"duration"`
}

// EventsFromTake lists the enabled shots of the take as EDL events, with
// record times taken from the edit time of each shot.
func EventsFromTake(m *timeline.Model, ref timeline.TakeRef) []Event {
	shots := m.Shots(ref, true)
	events := make([]Event, 0, len(shots))
	for _, s := range shots {
		recIn := m.ShotEditStart(s)
		if recIn == -1 {
			continue
		}
		reelSource := string(s.Camera())
		if reelSource == "" {
			reelSource = s.Name()
		}
		events = append(events, Event{
			ShotName:  s.Name(),
			Reel:      SanitizeReelName(reelSource),
			Camera:    string(s.Camera()),
			SourceIn:  s.Start(),
			SourceOut: s.End() + 1,
			RecordIn:  recIn,
			RecordOut: recIn + s.Duration(),
		})
	}
	return events
}
