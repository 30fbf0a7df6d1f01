package api

import (
	"github.com/heimdex/shotmanager/internal/frames"
	"github.com/heimdex/shotmanager/internal/ingest"
	"github.com/heimdex/shotmanager/internal/timeline"
)

type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	UptimeS    int64  `json:"uptime_s"`
	InstanceID string `json:"instance_id,omitempty"`
}

type StatusResponse struct {
	ActiveTake        string  `json:"active_take"`
	ActiveTakeIndex   int     `json:"active_take_index"`
	TakeCount         int     `json:"take_count"`
	ShotCount         int     `json:"shot_count"`
	EnabledShotCount  int     `json:"enabled_shot_count"`
	EditStartFrame    int     `json:"edit_start_frame"`
	EditDuration      int     `json:"edit_duration"`
	CurrentFrame      int     `json:"current_frame"`
	FrameRate         float64 `json:"frame_rate"`
	ShotPlayMode      bool    `json:"shot_play_mode"`
	CurrentShotIndex  int     `json:"current_shot_index"`
	SelectedShotIndex int     `json:"selected_shot_index"`
}

type TakeResponse struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Active       bool   `json:"active"`
	ShotCount    int    `json:"shot_count"`
	EditDuration int    `json:"edit_duration"`
}

type TakesResponse struct {
	Takes []TakeResponse `json:"takes"`
}

type CreateTakeRequest struct {
	Name     string `json:"name"`
	Activate bool   `json:"activate,omitempty"`
}

type RenameTakeRequest struct {
	Name string `json:"name"`
}

// SetActiveTakeRequest selects a take by name or by index.
type SetActiveTakeRequest struct {
	Name  *string `json:"name,omitempty"`
	Index *int    `json:"index,omitempty"`
}

type ShotResponse struct {
	ID        string         `json:"id"`
	Index     int            `json:"index"`
	Name      string         `json:"name"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	Duration  int            `json:"duration"`
	Enabled   bool           `json:"enabled"`
	Camera    string         `json:"camera,omitempty"`
	Color     timeline.Color `json:"color"`
	EditStart int            `json:"edit_start"`
	EditEnd   int            `json:"edit_end"`
}

type ShotsResponse struct {
	Take  TakeResponse   `json:"take"`
	Shots []ShotResponse `json:"shots"`
}

// CreateShotRequest adds a shot. Missing fields take the defaults of a new
// shot: a numbered name and the configured duration at the scene cursor.
type CreateShotRequest struct {
	Name    *string         `json:"name,omitempty"`
	Start   *int            `json:"start,omitempty"`
	End     *int            `json:"end,omitempty"`
	Camera  string          `json:"camera,omitempty"`
	Color   *timeline.Color `json:"color,omitempty"`
	Enabled *bool           `json:"enabled,omitempty"`
	AtIndex *int            `json:"at_index,omitempty"`
}

type UpdateShotRequest struct {
	Name    *string         `json:"name,omitempty"`
	Start   *int            `json:"start,omitempty"`
	End     *int            `json:"end,omitempty"`
	Enabled *bool           `json:"enabled,omitempty"`
	Camera  *string         `json:"camera,omitempty"`
	Color   *timeline.Color `json:"color,omitempty"`
	MoveTo  *int            `json:"move_to,omitempty"`
}

// CopyShotRequest copies a shot into Take ("active", an index, or empty for
// the take of the source shot).
type CopyShotRequest struct {
	Take    string `json:"take,omitempty"`
	AtIndex *int   `json:"at_index,omitempty"`
}

type RetimeRequest struct {
	Handle string `json:"handle"`
	Delta  int    `json:"delta"`
}

type RetimeResponse struct {
	Applied int          `json:"applied"`
	Shot    ShotResponse `json:"shot"`
}

type EditTimeResponse struct {
	Frame    int `json:"frame"`
	EditTime int `json:"edit_time"`
}

type EditResponse struct {
	Take           TakeResponse   `json:"take"`
	EditStartFrame int            `json:"edit_start_frame"`
	EditDuration   int            `json:"edit_duration"`
	TotalDuration  int            `json:"total_duration"`
	Range          *frames.Range  `json:"range,omitempty"`
	Shots          []ShotResponse `json:"shots"`
}

type EditStartRequest struct {
	Frame int `json:"frame"`
}

type EnableShotsRequest struct {
	Mode string `json:"mode"`
}

type NavigationResponse struct {
	CurrentShotIndex        int           `json:"current_shot_index"`
	SelectedShotIndex       int           `json:"selected_shot_index"`
	EnabledCurrentShotIndex int           `json:"enabled_current_shot_index"`
	CurrentFrame            int           `json:"current_frame"`
	EditCurrentTime         int           `json:"edit_current_time"`
	ShotPlayMode            bool          `json:"shot_play_mode"`
	ActiveCamera            string        `json:"active_camera,omitempty"`
	CurrentShot             *ShotResponse `json:"current_shot,omitempty"`
	SelectedShot            *ShotResponse `json:"selected_shot,omitempty"`
}

type SetIndexRequest struct {
	Index int `json:"index"`
}

type SetFrameRequest struct {
	Frame int `json:"frame"`
}

type PlayModeRequest struct {
	Enabled bool `json:"enabled"`
}

// NavigationActionRequest steps from Frame, or from the scene cursor when
// Frame is absent.
type NavigationActionRequest struct {
	Frame *int `json:"frame,omitempty"`
}

type NavigationActionResponse struct {
	Frame      int                `json:"frame"`
	Navigation NavigationResponse `json:"navigation"`
}

type SceneRangeRequest struct {
	// Source is "shot" or "edit".
	Source string `json:"source"`
}

type SceneRangeResponse struct {
	Range frames.Range `json:"range"`
}

// ImportRequest lays a sequence into a take. The sequence is given inline
// or read from a manifest file on this machine.
type ImportRequest struct {
	Sequence     *ingest.Sequence `json:"sequence,omitempty"`
	ManifestPath string           `json:"manifest_path,omitempty"`
	SequenceName string           `json:"sequence_name,omitempty"`

	Take              string `json:"take,omitempty"`
	OffsetTime        bool   `json:"offset_time,omitempty"`
	ImportAtFrame     *int   `json:"import_at_frame,omitempty"`
	TimeRange         string `json:"time_range,omitempty"`
	ReformatShotNames bool   `json:"reformat_shot_names,omitempty"`
	CreateCameras     bool   `json:"create_cameras,omitempty"`
	MediaHaveHandles  bool   `json:"media_have_handles,omitempty"`
	HandlesDuration   *int   `json:"handles_duration,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func ShotToResponse(m *timeline.Model, s *timeline.Shot, index int) ShotResponse {
	editStart := m.ShotEditStart(s)
	editEnd := -1
	if editStart != -1 {
		editEnd = m.ShotEditEnd(s)
	}
	return ShotResponse{
		ID:        s.ID(),
		Index:     index,
		Name:      s.Name(),
		Start:     s.Start(),
		End:       s.End(),
		Duration:  s.Duration(),
		Enabled:   s.Enabled(),
		Camera:    string(s.Camera()),
		Color:     s.Color(),
		EditStart: editStart,
		EditEnd:   editEnd,
	}
}

func TakeToResponse(m *timeline.Model, index int) TakeResponse {
	take := m.Take(timeline.TakeAt(index))
	return TakeResponse{
		Index:        index,
		Name:         take.Name(),
		Active:       index == m.ActiveTakeIndex(),
		ShotCount:    take.Len(),
		EditDuration: m.EditDuration(timeline.TakeAt(index), true),
	}
}
