package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/heimdex/shotmanager/internal/frames"
	"github.com/heimdex/shotmanager/internal/retime"
	"github.com/heimdex/shotmanager/internal/session"
	"github.com/heimdex/shotmanager/internal/timeline"
)

func listShotsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		enabledOnly := r.URL.Query().Get("enabled") == "true"

		var resp ShotsResponse
		err = cfg.Session.View(func(tx *session.Tx) error {
			idx, err := resolveTake(tx.Model, ref)
			if err != nil {
				return err
			}
			resp = shotsResponse(tx.Model, idx, enabledOnly)
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// shotsResponse lists the shots of a take. Index is the position in the
// full list even when only enabled shots are returned.
func shotsResponse(m *timeline.Model, takeIndex int, enabledOnly bool) ShotsResponse {
	ref := timeline.TakeAt(takeIndex)
	all := m.Shots(ref, false)
	resp := ShotsResponse{
		Take:  TakeToResponse(m, takeIndex),
		Shots: make([]ShotResponse, 0, len(all)),
	}
	for i, s := range all {
		if enabledOnly && !s.Enabled() {
			continue
		}
		resp.Shots = append(resp.Shots, ShotToResponse(m, s, i))
	}
	return resp
}

func createShotHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		var req CreateShotRequest
		if err := decodeOptionalJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}

		var resp ShotResponse
		err = cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			if _, err := resolveTake(tx.Model, ref); err != nil {
				return err
			}

			var shot *timeline.Shot
			if req == (CreateShotRequest{}) {
				shot = tx.AddDefaultShot(ref)
			} else {
				p := tx.NewShotParams(ref)
				if req.Name != nil {
					name := strings.TrimSpace(*req.Name)
					if name == "" {
						return badRequest("name must not be empty")
					}
					p.Name = tx.Model.UniqueShotName(name, ref)
				}
				if req.Start != nil {
					duration := p.End - p.Start
					p.Start = *req.Start
					p.End = p.Start + duration
				}
				if req.End != nil {
					p.End = *req.End
				}
				if p.Start > p.End {
					return badRequest(frames.ErrInverted.Error())
				}
				p.Camera = timeline.CameraRef(req.Camera)
				if req.Color != nil {
					p.Color = *req.Color
				}
				if req.Enabled != nil {
					p.Enabled = *req.Enabled
				}
				at := -1
				if req.AtIndex != nil {
					at = *req.AtIndex
				}
				shot = tx.Model.AddShot(ref, at, p)
			}
			if shot == nil {
				return badRequest("shot could not be created")
			}
			resp = ShotToResponse(tx.Model, shot, tx.Model.ShotIndex(shot, ref))
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusCreated, resp)
	}
}

func updateShotHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		var req UpdateShotRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			WriteError(w, http.StatusBadRequest, "name must not be empty", "BAD_REQUEST")
			return
		}

		var resp ShotResponse
		err = cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			m := tx.Model
			shot, index, err := shotParam(r, m, ref)
			if err != nil {
				return err
			}

			start, end := shot.Start(), shot.End()
			if req.Start != nil {
				start = *req.Start
			}
			if req.End != nil {
				end = *req.End
			}
			if start > end {
				return badRequest(frames.ErrInverted.Error())
			}
			if req.MoveTo != nil && (*req.MoveTo < 0 || *req.MoveTo >= len(m.Shots(ref, false))) {
				return badRequest("move_to is out of range")
			}

			if req.Name != nil {
				m.RenameShot(shot, strings.TrimSpace(*req.Name))
			}
			if err := m.SetShotRange(shot, start, end); err != nil {
				return badRequest(err.Error())
			}
			if req.Enabled != nil {
				m.SetShotEnabled(shot, *req.Enabled)
			}
			if req.Camera != nil {
				m.SetShotCamera(shot, timeline.CameraRef(*req.Camera))
			}
			if req.Color != nil {
				m.SetShotColor(shot, *req.Color)
			}
			if req.MoveTo != nil {
				m.MoveShot(ref, index, *req.MoveTo)
				index = m.ShotIndex(shot, ref)
			}
			resp = ShotToResponse(m, shot, index)
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func deleteShotHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}

		err = cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			_, index, err := shotParam(r, tx.Model, ref)
			if err != nil {
				return err
			}
			tx.Model.RemoveShot(ref, index)
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func copyShotHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		var req CopyShotRequest
		if err := decodeOptionalJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}

		var resp ShotResponse
		err = cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			m := tx.Model
			shot, _, err := shotParam(r, m, ref)
			if err != nil {
				return err
			}
			dest := timeline.TakeAt(shot.ParentTakeIndex())
			if req.Take != "" {
				if dest, err = parseTakeRef(req.Take); err != nil {
					return err
				}
				if _, err := resolveTake(m, dest); err != nil {
					return err
				}
			}
			at := -1
			if req.AtIndex != nil {
				at = *req.AtIndex
			}
			cp := m.CopyShotTo(shot, dest, at)
			if cp == nil {
				return badRequest("shot could not be copied")
			}
			resp = ShotToResponse(m, cp, m.ShotIndex(cp, dest))
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusCreated, resp)
	}
}

func retimeShotHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		var req RetimeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		handle, err := retime.ParseHandle(req.Handle)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		var resp RetimeResponse
		err = cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			shot, index, err := shotParam(r, tx.Model, ref)
			if err != nil {
				return err
			}
			applied, err := retime.Apply(tx.Model, shot, handle, req.Delta)
			if err != nil {
				return badRequest(err.Error())
			}
			resp = RetimeResponse{Applied: applied, Shot: ShotToResponse(tx.Model, shot, index)}
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func editTimeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		frame, err := strconv.Atoi(r.URL.Query().Get("frame"))
		if err != nil {
			WriteError(w, http.StatusBadRequest, "frame must be an integer", "BAD_REQUEST")
			return
		}

		var resp EditTimeResponse
		err = cfg.Session.View(func(tx *session.Tx) error {
			shot, _, err := shotParam(r, tx.Model, ref)
			if err != nil {
				return err
			}
			resp = EditTimeResponse{Frame: frame, EditTime: tx.Model.EditTime(shot, frame)}
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func editHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}

		var resp EditResponse
		err = cfg.Session.View(func(tx *session.Tx) error {
			m := tx.Model
			idx, err := resolveTake(m, ref)
			if err != nil {
				return err
			}
			shots := shotsResponse(m, idx, true)
			resp = EditResponse{
				Take:           shots.Take,
				EditStartFrame: m.EditStartFrame(),
				EditDuration:   m.EditDuration(ref, true),
				TotalDuration:  m.EditDuration(ref, false),
				Shots:          shots.Shots,
			}
			if rng, ok := m.EditRange(ref); ok {
				resp.Range = &rng
			}
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

var errUnknownEnableMode = errors.New(`mode must be "enable", "disable" or "invert"`)

func parseEnableMode(s string) (timeline.EnableMode, error) {
	switch strings.ToLower(s) {
	case "enable", "enable_all":
		return timeline.EnableAll, nil
	case "disable", "disable_all":
		return timeline.DisableAll, nil
	case "invert":
		return timeline.InvertAll, nil
	}
	return 0, errUnknownEnableMode
}

func enableShotsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, err := takeParam(r)
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		var req EnableShotsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		mode, err := parseEnableMode(req.Mode)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		var resp ShotsResponse
		err = cfg.Session.Update(r.Context(), func(tx *session.Tx) error {
			idx, err := resolveTake(tx.Model, ref)
			if err != nil {
				return err
			}
			tx.Model.SetAllShotsEnabled(ref, mode)
			resp = shotsResponse(tx.Model, idx, false)
			return nil
		})
		if err != nil {
			writeHandlerError(w, cfg, err)
			return
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
