package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/heimdex/shotmanager/internal/frames"
	"github.com/heimdex/shotmanager/internal/ingest"
)

// importOptions merges the request into the import defaults of the session.
func importOptions(cfg ServerConfig, req ImportRequest) (ingest.Options, error) {
	opts := cfg.Session.ImportOptions()

	ref, err := parseTakeRef(req.Take)
	if err != nil {
		return opts, err
	}
	opts.Take = ref
	opts.OffsetTime = req.OffsetTime
	if req.ImportAtFrame != nil {
		opts.ImportAtFrame = *req.ImportAtFrame
	}
	if req.TimeRange != "" {
		rng, err := frames.ParseRange(req.TimeRange)
		if err != nil {
			return opts, badRequest(err.Error())
		}
		opts.TimeRange = &rng
	}
	opts.ReformatShotNames = req.ReformatShotNames
	opts.CreateCameras = req.CreateCameras
	opts.MediaHaveHandles = req.MediaHaveHandles
	if req.HandlesDuration != nil {
		if *req.HandlesDuration < 0 {
			return opts, badRequest("handles_duration must not be negative")
		}
		opts.HandlesDuration = *req.HandlesDuration
	}
	return opts, nil
}

func importSequence(req ImportRequest) (ingest.Sequence, error) {
	switch {
	case req.Sequence != nil && req.ManifestPath != "":
		return ingest.Sequence{}, badRequest("give either sequence or manifest_path, not both")
	case req.Sequence != nil:
		return *req.Sequence, nil
	case req.ManifestPath != "":
		manifest, err := ingest.ReadManifest(req.ManifestPath)
		if errors.Is(err, os.ErrNotExist) {
			return ingest.Sequence{}, notFound("manifest not found")
		}
		if err != nil {
			return ingest.Sequence{}, badRequest(err.Error())
		}
		seq, err := manifest.Sequence(req.SequenceName)
		if err != nil {
			return ingest.Sequence{}, notFound(err.Error())
		}
		return seq, nil
	}
	return ingest.Sequence{}, badRequest("sequence or manifest_path is required")
}

func importHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ImportRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		opts, err := importOptions(cfg, req)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		seq, err := importSequence(req)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}

		res, err := cfg.Session.Import(r.Context(), seq, opts)
		if errors.Is(err, ingest.ErrNoTake) {
			WriteError(w, http.StatusNotFound, "take not found", "NOT_FOUND")
			return
		}
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusCreated, res)
	}
}
