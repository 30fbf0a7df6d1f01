package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heimdex/shotmanager/internal/session"
	"github.com/heimdex/shotmanager/internal/timeline"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(LoopbackGuard())
	r.Use(CORSAllowlist())

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))
		r.Put("/edit/start", setEditStartHandler(cfg))

		r.Route("/takes", func(r chi.Router) {
			r.Get("/", listTakesHandler(cfg))
			r.Post("/", createTakeHandler(cfg))

			r.Route("/{take}", func(r chi.Router) {
				r.Put("/", setActiveTakeHandler(cfg))
				r.Patch("/", renameTakeHandler(cfg))
				r.Delete("/", deleteTakeHandler(cfg))
				r.Get("/edit", editHandler(cfg))
				r.Get("/shots", listShotsHandler(cfg))
				r.Post("/shots", createShotHandler(cfg))
				r.Post("/shots/enable", enableShotsHandler(cfg))

				r.Route("/shots/{index}", func(r chi.Router) {
					r.Patch("/", updateShotHandler(cfg))
					r.Delete("/", deleteShotHandler(cfg))
					r.Post("/copy", copyShotHandler(cfg))
					r.Post("/retime", retimeShotHandler(cfg))
					r.Get("/edit-time", editTimeHandler(cfg))
				})
			})
		})

		r.Route("/navigation", func(r chi.Router) {
			r.Get("/", navigationHandler(cfg))
			r.Put("/current", setCurrentShotHandler(cfg))
			r.Put("/selected", setSelectedShotHandler(cfg))
			r.Put("/frame", setFrameHandler(cfg))
			r.Put("/play-mode", setPlayModeHandler(cfg))
			r.Post("/scene-range", sceneRangeHandler(cfg))
			r.Post("/{action}", navigationActionHandler(cfg))
		})

		r.Post("/import", importHandler(cfg))
		r.Post("/export/edl", exportEDLHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		version := cfg.Version
		if version == "" {
			version = "dev"
		}
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:     "ok",
			Version:    version,
			UptimeS:    uptime,
			InstanceID: cfg.InstanceID,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp StatusResponse
		cfg.Session.View(func(tx *session.Tx) error {
			m := tx.Model
			resp = StatusResponse{
				ActiveTake:        m.ActiveTakeName(),
				ActiveTakeIndex:   m.ActiveTakeIndex(),
				TakeCount:         m.TakeCount(),
				ShotCount:         len(m.Shots(timeline.ActiveTake, false)),
				EnabledShotCount:  len(m.Shots(timeline.ActiveTake, true)),
				EditStartFrame:    m.EditStartFrame(),
				EditDuration:      m.EditDuration(timeline.ActiveTake, true),
				CurrentFrame:      tx.Host.CurrentFrame(),
				FrameRate:         tx.Host.FrameRate(),
				ShotPlayMode:      tx.Host.ShotPlayMode(),
				CurrentShotIndex:  tx.Nav.CurrentShotIndex(),
				SelectedShotIndex: tx.Nav.SelectedShotIndex(),
			}
			return nil
		})
		WriteJSON(w, http.StatusOK, resp)
	}
}

func setEditStartHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EditStartRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}

		err := cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			if err := tx.Model.SetEditStartFrame(req.Frame); err != nil {
				return badRequest(err.Error())
			}
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, req)
	}
}

// handlerError carries the HTTP status a handler callback failed with.
type handlerError struct {
	status  int
	message string
	code    string
}

func (e *handlerError) Error() string { return e.message }

func badRequest(msg string) error {
	return &handlerError{status: http.StatusBadRequest, message: msg, code: "BAD_REQUEST"}
}

func notFound(msg string) error {
	return &handlerError{status: http.StatusNotFound, message: msg, code: "NOT_FOUND"}
}

func writeHandlerError(w http.ResponseWriter, cfg ServerConfig, err error) {
	var he *handlerError
	if errors.As(err, &he) {
		WriteError(w, he.status, he.message, he.code)
		return
	}
	cfg.Logger.Error("request failed", "error", err)
	WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}

// decodeOptionalJSON accepts an empty body.
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return badRequest("invalid request body")
}

// parseTakeRef reads a take selector: "active" or a take index.
func parseTakeRef(s string) (timeline.TakeRef, error) {
	if s == "" || s == "active" {
		return timeline.ActiveTake, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return timeline.TakeRef{}, badRequest(`take must be "active" or a take index`)
	}
	return timeline.TakeAt(i), nil
}

func takeParam(r *http.Request) (timeline.TakeRef, error) {
	return parseTakeRef(chi.URLParam(r, "take"))
}

// resolveTake returns the index of the take ref designates.
func resolveTake(m *timeline.Model, ref timeline.TakeRef) (int, error) {
	idx := m.ResolveTake(ref)
	if idx == -1 {
		return -1, notFound("take not found")
	}
	return idx, nil
}

// shotParam resolves the {index} URL parameter against the full shot list
// of the take.
func shotParam(r *http.Request, m *timeline.Model, ref timeline.TakeRef) (*timeline.Shot, int, error) {
	if _, err := resolveTake(m, ref); err != nil {
		return nil, -1, err
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return nil, -1, badRequest("shot index must be an integer")
	}
	shot := m.Shot(ref, index, false)
	if shot == nil {
		return nil, -1, notFound("shot not found")
	}
	return shot, index, nil
}
