package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/heimdex/shotmanager/internal/frames"
	"github.com/heimdex/shotmanager/internal/session"
)

// playModeSetter is implemented by hosts whose shot play mode can be
// toggled from outside the scene.
type playModeSetter interface {
	SetShotPlayMode(on bool)
}

func navigationResponse(tx *session.Tx) NavigationResponse {
	m := tx.Model
	resp := NavigationResponse{
		CurrentShotIndex:        tx.Nav.CurrentShotIndex(),
		SelectedShotIndex:       tx.Nav.SelectedShotIndex(),
		EnabledCurrentShotIndex: tx.Nav.EnabledCurrentShotIndex(),
		CurrentFrame:            tx.Host.CurrentFrame(),
		EditCurrentTime:         tx.Nav.EditCurrentTime(),
		ShotPlayMode:            tx.Host.ShotPlayMode(),
		ActiveCamera:            tx.Host.ActiveCamera(),
	}
	if shot := tx.Nav.CurrentShot(); shot != nil {
		s := ShotToResponse(m, shot, resp.CurrentShotIndex)
		resp.CurrentShot = &s
	}
	if shot := tx.Nav.SelectedShot(); shot != nil {
		s := ShotToResponse(m, shot, resp.SelectedShotIndex)
		resp.SelectedShot = &s
	}
	return resp
}

func navigationHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp NavigationResponse
		cfg.Session.View(func(tx *session.Tx) error {
			resp = navigationResponse(tx)
			return nil
		})
		WriteJSON(w, http.StatusOK, resp)
	}
}

// navigationUpdate decodes a request body into req and runs apply under the
// session lock, answering with the resulting navigation state.
func navigationUpdate[T any](cfg ServerConfig, apply func(tx *session.Tx, req T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req T
		if err := decodeJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}

		var resp NavigationResponse
		err := cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			if err := apply(tx, req); err != nil {
				return err
			}
			resp = navigationResponse(tx)
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func setCurrentShotHandler(cfg ServerConfig) http.HandlerFunc {
	return navigationUpdate(cfg, func(tx *session.Tx, req SetIndexRequest) error {
		tx.Nav.SetCurrentShotByIndex(req.Index)
		return nil
	})
}

func setSelectedShotHandler(cfg ServerConfig) http.HandlerFunc {
	return navigationUpdate(cfg, func(tx *session.Tx, req SetIndexRequest) error {
		tx.Nav.SetSelectedShotByIndex(req.Index)
		return nil
	})
}

func setFrameHandler(cfg ServerConfig) http.HandlerFunc {
	return navigationUpdate(cfg, func(tx *session.Tx, req SetFrameRequest) error {
		tx.Host.SetCurrentFrame(req.Frame)
		return nil
	})
}

func setPlayModeHandler(cfg ServerConfig) http.HandlerFunc {
	return navigationUpdate(cfg, func(tx *session.Tx, req PlayModeRequest) error {
		setter, ok := tx.Host.(playModeSetter)
		if !ok {
			return &handlerError{
				status:  http.StatusNotImplemented,
				message: "host does not support changing shot play mode",
				code:    "NOT_IMPLEMENTED",
			}
		}
		setter.SetShotPlayMode(req.Enabled)
		return nil
	})
}

func navigationActionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := strings.ToLower(chi.URLParam(r, "action"))
		var req NavigationActionRequest
		if err := decodeOptionalJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}

		var resp NavigationActionResponse
		err := cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			frame := tx.Host.CurrentFrame()
			if req.Frame != nil {
				frame = *req.Frame
			}
			switch action {
			case "previous-shot":
				frame = tx.Nav.GoToPreviousShot(frame)
			case "next-shot":
				frame = tx.Nav.GoToNextShot(frame)
			case "previous-frame":
				frame = tx.Nav.GoToPreviousFrame(frame)
			case "next-frame":
				frame = tx.Nav.GoToNextFrame(frame)
			default:
				return notFound("unknown navigation action " + action)
			}
			resp = NavigationActionResponse{Frame: frame, Navigation: navigationResponse(tx)}
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func sceneRangeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SceneRangeRequest
		if err := decodeOptionalJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}

		var resp SceneRangeResponse
		err := cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			var (
				rng frames.Range
				ok  bool
			)
			switch strings.ToLower(req.Source) {
			case "", "shot":
				rng, ok = tx.Nav.SceneRangeFromCurrentShot()
			case "edit":
				rng, ok = tx.Nav.SceneRangeFromEdit()
			default:
				return badRequest(`source must be "shot" or "edit"`)
			}
			if !ok {
				return &handlerError{
					status:  http.StatusConflict,
					message: "no shot to take the scene range from",
					code:    "NO_SHOT",
				}
			}
			resp = SceneRangeResponse{Range: rng}
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
