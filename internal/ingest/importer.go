package ingest

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/heimdex/shotmanager/internal/host"
	"github.com/heimdex/shotmanager/internal/timeline"
)

// Importer lays sequences into takes. The host is optional; without one,
// camera creation only sets the camera refs on the shots.
type Importer struct {
	model  *timeline.Model
	host   host.Host
	logger *slog.Logger
}

func NewImporter(model *timeline.Model, h host.Host, logger *slog.Logger) *Importer {
	return &Importer{model: model, host: h, logger: logger}
}

// Import appends one shot per kept clip to the target take, in clip order.
func (im *Importer) Import(seq Sequence, opts Options) (Result, error) {
	takeIdx := im.model.ResolveTake(opts.Take)
	if takeIdx == -1 {
		return Result{}, ErrNoTake
	}
	ref := timeline.TakeAt(takeIdx)

	offset := 0
	if opts.OffsetTime {
		offset = opts.ImportAtFrame - seq.Start
	}

	res := Result{TakeIndex: takeIdx, Shots: []ImportedShot{}}
	for _, clip := range seq.Clips {
		if clip.Start > clip.End {
			res.Skipped = append(res.Skipped, clip.Name)
			if im.logger != nil {
				im.logger.Warn("skipping inverted clip", "clip", clip.Name, "start", clip.Start, "end", clip.End)
			}
			continue
		}
		if opts.TimeRange != nil && !opts.TimeRange.Overlaps(clipRange(clip)) {
			res.Skipped = append(res.Skipped, clip.Name)
			continue
		}

		name := clip.Name
		if opts.ReformatShotNames {
			name = ReformatShotName(name)
		}
		name = im.model.UniqueShotName(name, ref)

		camera := timeline.CameraRef(clip.Camera)
		if opts.CreateCameras {
			camera = timeline.CameraRef("Cam_" + name)
		}
		if camera != timeline.NoCamera && im.host != nil {
			im.host.EnsureCamera(string(camera))
		}

		shot := im.model.AddShot(ref, -1, timeline.ShotParams{
			Name:    name,
			Start:   clip.Start + offset,
			End:     clip.End + offset,
			Camera:  camera,
			Color:   timeline.DefaultShotColor,
			Enabled: !clip.Disabled,
		})
		if shot == nil {
			return res, fmt.Errorf("add shot %q: %w", name, ErrNoTake)
		}

		mediaOffset := 0
		if opts.MediaHaveHandles {
			mediaOffset = opts.HandlesDuration
		}
		res.Shots = append(res.Shots, ImportedShot{
			ID:          shot.ID(),
			Name:        shot.Name(),
			Start:       shot.Start(),
			End:         shot.End(),
			Camera:      string(shot.Camera()),
			Media:       clip.Media,
			MediaOffset: mediaOffset,
		})
	}

	if im.logger != nil {
		im.logger.Info("sequence imported",
			"sequence", seq.Name,
			"take_index", takeIdx,
			"shots", len(res.Shots),
			"skipped", len(res.Skipped),
		)
	}
	return res, nil
}

// ReformatShotName turns a media style clip name such as
// "Proj_Seq010_Sh0040.mov" into its shot part "Sh0040".
func ReformatShotName(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if i := strings.LastIndex(name, "_"); i != -1 && i < len(name)-1 {
		name = name[i+1:]
	}
	return name
}

// SequenceFromTake describes every shot of the take as a clip on the
// scene timeline, so that importing it without time offset rebuilds the take.
func SequenceFromTake(m *timeline.Model, ref timeline.TakeRef) (Sequence, bool) {
	take := m.Take(ref)
	if take == nil {
		return Sequence{}, false
	}

	seq := Sequence{Name: take.Name(), Clips: []Clip{}}
	for i, s := range take.Shots() {
		if i == 0 || s.Start() < seq.Start {
			seq.Start = s.Start()
		}
		if i == 0 || s.End() > seq.End {
			seq.End = s.End()
		}
		seq.Clips = append(seq.Clips, Clip{
			Name:     s.Name(),
			Start:    s.Start(),
			End:      s.End(),
			Camera:   string(s.Camera()),
			Disabled: !s.Enabled(),
		})
	}
	return seq, true
}
