package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/heimdex/shotmanager/internal/session"
	"github.com/heimdex/shotmanager/internal/timeline"
)

func listTakesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp TakesResponse
		cfg.Session.View(func(tx *session.Tx) error {
			resp.Takes = make([]TakeResponse, tx.Model.TakeCount())
			for i := range resp.Takes {
				resp.Takes[i] = TakeToResponse(tx.Model, i)
			}
			return nil
		})
		WriteJSON(w, http.StatusOK, resp)
	}
}

func createTakeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTakeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			WriteError(w, http.StatusBadRequest, "name is required", "BAD_REQUEST")
			return
		}

		var resp TakeResponse
		err := cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			take := tx.Model.AddTake(name)
			idx := tx.Model.TakeIndex(take)
			if req.Activate {
				tx.Model.SetActiveTakeIndex(idx)
			}
			resp = TakeToResponse(tx.Model, idx)
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusCreated, resp)
	}
}

func renameTakeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		var req RenameTakeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			WriteError(w, http.StatusBadRequest, "name is required", "BAD_REQUEST")
			return
		}

		var resp TakeResponse
		err = cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			idx, err := resolveTake(tx.Model, ref)
			if err != nil {
				return err
			}
			tx.Model.RenameTake(idx, name)
			resp = TakeToResponse(tx.Model, idx)
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func deleteTakeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}

		err = cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			idx, err := resolveTake(tx.Model, ref)
			if err != nil {
				return err
			}
			if !tx.Model.RemoveTake(idx) {
				return &handlerError{status: http.StatusConflict, message: "cannot delete the last take", code: "LAST_TAKE"}
			}
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// setActiveTakeHandler serves PUT /takes/active. Other take selectors
// cannot be replaced.
func setActiveTakeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "take") != "active" {
			WriteError(w, http.StatusMethodNotAllowed, "only the active take can be replaced", "METHOD_NOT_ALLOWED")
			return
		}
		var req SetActiveTakeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		if (req.Name == nil) == (req.Index == nil) {
			WriteError(w, http.StatusBadRequest, "exactly one of name or index is required", "BAD_REQUEST")
			return
		}

		var resp TakeResponse
		err := cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			idx := -1
			if req.Name != nil {
				if take := tx.Model.TakeByName(*req.Name); take != nil {
					idx = tx.Model.TakeIndex(take)
				}
			} else {
				idx = tx.Model.ResolveTake(timeline.TakeAt(*req.Index))
			}
			if idx == -1 {
				return notFound("take not found")
			}
			tx.Model.SetActiveTakeIndex(idx)
			resp = TakeToResponse(tx.Model, idx)
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
