package api

import (
	"net/http"

	"github.com/heimdex/shotmanager/internal/export"
	"github.com/heimdex/shotmanager/internal/logging"
	"github.com/heimdex/shotmanager/internal/session"
)

func exportEDLHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req export.EDLRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		ref, err := parseTakeRef(req.Take)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		if err := export.ValidateOutputDir(req.OutputDir); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		var (
			events   []export.Event
			takeName string
			duration int
			fps      = req.FrameRate
		)
		err = cfg.Session.View(func(tx *session.Tx) error {
			idx, err := resolveTake(tx.Model, ref)
			if err != nil {
				return err
			}
			takeName = tx.Model.Takes()[idx].Name()
			events = export.EventsFromTake(tx.Model, ref)
			duration = tx.Model.EditDuration(ref, true)
			if fps <= 0 {
				fps = tx.Host.FrameRate()
			}
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		if len(events) == 0 {
			WriteError(w, http.StatusUnprocessableEntity, "take has no enabled shots", "EMPTY_EDIT")
			return
		}

		title := export.SanitizeName(req.Title, 120)
		if title == "" {
			title = export.SanitizeName(takeName, 120)
		}

		edl := export.GenerateEDL(events, title, fps)
		logger := logging.WithTake(cfg.Logger, takeName)
		outputPath, err := export.WriteEDL(req.OutputDir, takeName, edl)
		if err != nil {
			logger.Error("failed to write edl", "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to write export file", "INTERNAL_ERROR")
			return
		}

		logger.Info("edl exported", "events", len(events), "path", logging.SanitizePath(outputPath))
		WriteJSON(w, http.StatusOK, export.EDLResponse{
			Status:     "ok",
			OutputPath: outputPath,
			EventCount: len(events),
			Duration:   duration,
		})
	}
}
