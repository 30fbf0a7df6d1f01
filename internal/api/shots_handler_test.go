package api

import (
	"net/http"
	"testing"
)

func TestShots_List(t *testing.T) {
	env := newTestEnv(t)
	env.seedShots(t)

	rr := env.do(t, http.MethodGet, "/takes/active/shots", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp ShotsResponse
	decodeInto(t, rr, &resp)
	if len(resp.Shots) != 3 {
		t.Fatalf("shots = %d, want 3", len(resp.Shots))
	}
	c := resp.Shots[2]
	if c.Name != "C" || c.EditStart != 10 || c.EditEnd != 19 {
		t.Errorf("C = %+v, want edit 10..19", c)
	}
	if b := resp.Shots[1]; b.EditStart != -1 {
		t.Errorf("disabled B edit start = %d, want -1", b.EditStart)
	}

	rr = env.do(t, http.MethodGet, "/takes/0/shots?enabled=true", nil)
	decodeInto(t, rr, &resp)
	if len(resp.Shots) != 2 || resp.Shots[1].Index != 2 {
		t.Errorf("enabled shots = %+v", resp.Shots)
	}

	if rr := env.do(t, http.MethodGet, "/takes/4/shots", nil); rr.Code != http.StatusNotFound {
		t.Errorf("unknown take status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestShots_CreateDefault(t *testing.T) {
	env := newTestEnv(t)
	env.seedShots(t)
	env.host.SetCurrentFrame(100)

	rr := env.do(t, http.MethodPost, "/takes/active/shots", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var shot ShotResponse
	decodeInto(t, rr, &shot)
	if shot.Name != "Sh04" || shot.Start != 100 || shot.End != 149 {
		t.Errorf("shot = %+v, want Sh04 100..149", shot)
	}
	if shot.Index != 1 {
		t.Errorf("index = %d, want 1 (after selected shot)", shot.Index)
	}

	rr = env.do(t, http.MethodGet, "/navigation", nil)
	var nav NavigationResponse
	decodeInto(t, rr, &nav)
	if nav.CurrentShotIndex != 1 || nav.SelectedShotIndex != 1 {
		t.Errorf("nav = %d/%d, want 1/1", nav.CurrentShotIndex, nav.SelectedShotIndex)
	}
}

func TestShots_CreateExplicit(t *testing.T) {
	env := newTestEnv(t)
	env.seedShots(t)

	rr := env.do(t, http.MethodPost, "/takes/active/shots", CreateShotRequest{
		Name:    ptr("A"),
		Start:   ptr(200),
		End:     ptr(210),
		Camera:  "CamA",
		AtIndex: ptr(0),
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var shot ShotResponse
	decodeInto(t, rr, &shot)
	if shot.Name != "A_1" || shot.Index != 0 || shot.Duration != 11 || shot.Camera != "CamA" {
		t.Errorf("shot = %+v", shot)
	}

	rr = env.do(t, http.MethodPost, "/takes/active/shots", CreateShotRequest{Start: ptr(50), End: ptr(40)})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("inverted status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestShots_Update(t *testing.T) {
	env := newTestEnv(t)
	env.seedShots(t)

	rr := env.do(t, http.MethodPatch, "/takes/active/shots/1", UpdateShotRequest{
		Name:    ptr("Bee"),
		Enabled: ptr(true),
		Start:   ptr(22),
		MoveTo:  ptr(0),
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var shot ShotResponse
	decodeInto(t, rr, &shot)
	if shot.Name != "Bee" || !shot.Enabled || shot.Start != 22 || shot.End != 29 || shot.Index != 0 {
		t.Errorf("shot = %+v", shot)
	}
	if shot.EditStart != 0 {
		t.Errorf("edit start = %d, want 0", shot.EditStart)
	}

	tests := []struct {
		name string
		path string
		req  UpdateShotRequest
		want int
	}{
		{"inverted", "/takes/active/shots/0", UpdateShotRequest{End: ptr(0)}, http.StatusBadRequest},
		{"blank name", "/takes/active/shots/0", UpdateShotRequest{Name: ptr(" ")}, http.StatusBadRequest},
		{"move out of range", "/takes/active/shots/0", UpdateShotRequest{MoveTo: ptr(9)}, http.StatusBadRequest},
		{"unknown shot", "/takes/active/shots/9", UpdateShotRequest{}, http.StatusNotFound},
		{"bad index", "/takes/active/shots/x", UpdateShotRequest{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := env.do(t, http.MethodPatch, tt.path, tt.req); rr.Code != tt.want {
				t.Errorf("status = %d, want %d (body=%s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestShots_DeleteAndCopy(t *testing.T) {
	env := newTestEnv(t)
	env.seedShots(t)
	env.do(t, http.MethodPost, "/takes", CreateTakeRequest{Name: "Alt"})

	rr := env.do(t, http.MethodPost, "/takes/active/shots/0/copy", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("copy status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var cp ShotResponse
	decodeInto(t, rr, &cp)
	if cp.Name != "A_1" || cp.Index != 3 || cp.Start != 10 {
		t.Errorf("copy = %+v", cp)
	}

	rr = env.do(t, http.MethodPost, "/takes/active/shots/0/copy", CopyShotRequest{Take: "1"})
	decodeInto(t, rr, &cp)
	if cp.Name != "A" || cp.Index != 0 {
		t.Errorf("copy to other take = %+v", cp)
	}

	if rr := env.do(t, http.MethodPost, "/takes/active/shots/0/copy", CopyShotRequest{Take: "8"}); rr.Code != http.StatusNotFound {
		t.Errorf("copy to unknown take status = %d, want %d", rr.Code, http.StatusNotFound)
	}

	if rr := env.do(t, http.MethodDelete, "/takes/active/shots/3", nil); rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	rr = env.do(t, http.MethodGet, "/takes/active/shots", nil)
	var list ShotsResponse
	decodeInto(t, rr, &list)
	if len(list.Shots) != 3 {
		t.Errorf("shots after delete = %d, want 3", len(list.Shots))
	}
}

func TestShots_Retime(t *testing.T) {
	env := newTestEnv(t)
	env.seedShots(t)

	tests := []struct {
		name        string
		req         RetimeRequest
		wantApplied int
		wantStart   int
		wantEnd     int
	}{
		{"move body", RetimeRequest{Handle: "body", Delta: 5}, 5, 15, 24},
		{"end clamp", RetimeRequest{Handle: "end", Delta: -50}, -9, 15, 15},
		{"start back", RetimeRequest{Handle: "start", Delta: -5}, -5, 10, 15},
	}
	for _, tt := range tests {
		rr := env.do(t, http.MethodPost, "/takes/active/shots/0/retime", tt.req)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body = %s", tt.name, rr.Code, rr.Body.String())
		}
		var resp RetimeResponse
		decodeInto(t, rr, &resp)
		if resp.Applied != tt.wantApplied || resp.Shot.Start != tt.wantStart || resp.Shot.End != tt.wantEnd {
			t.Errorf("%s: applied %d range %d..%d, want %d %d..%d", tt.name,
				resp.Applied, resp.Shot.Start, resp.Shot.End, tt.wantApplied, tt.wantStart, tt.wantEnd)
		}
	}

	if rr := env.do(t, http.MethodPost, "/takes/active/shots/0/retime", RetimeRequest{Handle: "middle"}); rr.Code != http.StatusBadRequest {
		t.Errorf("bad handle status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestShots_EditTime(t *testing.T) {
	env := newTestEnv(t)
	env.seedShots(t)

	tests := []struct {
		path string
		want int
	}{
		{"/takes/active/shots/0/edit-time?frame=10", 0},
		{"/takes/active/shots/2/edit-time?frame=39", 19},
		{"/takes/active/shots/1/edit-time?frame=25", -1},
		{"/takes/active/shots/0/edit-time?frame=50", -1},
	}
	for _, tt := range tests {
		rr := env.do(t, http.MethodGet, tt.path, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tt.path, rr.Code)
		}
		var resp EditTimeResponse
		decodeInto(t, rr, &resp)
		if resp.EditTime != tt.want {
			t.Errorf("%s: edit_time = %d, want %d", tt.path, resp.EditTime, tt.want)
		}
	}

	if rr := env.do(t, http.MethodGet, "/takes/active/shots/0/edit-time", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("missing frame status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestShots_EditAndEnable(t *testing.T) {
	env := newTestEnv(t)
	env.seedShots(t)

	rr := env.do(t, http.MethodGet, "/takes/active/edit", nil)
	var edit EditResponse
	decodeInto(t, rr, &edit)
	if edit.EditDuration != 20 || edit.TotalDuration != 30 || len(edit.Shots) != 2 {
		t.Errorf("edit = %+v", edit)
	}
	if edit.Range == nil || edit.Range.Start != 10 || edit.Range.End != 39 {
		t.Errorf("range = %+v, want 10..39", edit.Range)
	}

	rr = env.do(t, http.MethodPost, "/takes/active/shots/enable", EnableShotsRequest{Mode: "invert"})
	if rr.Code != http.StatusOK {
		t.Fatalf("enable status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var shots ShotsResponse
	decodeInto(t, rr, &shots)
	want := []bool{false, true, false}
	for i, s := range shots.Shots {
		if s.Enabled != want[i] {
			t.Errorf("shot %d enabled = %v, want %v", i, s.Enabled, want[i])
		}
	}

	env.do(t, http.MethodPost, "/takes/active/shots/enable", EnableShotsRequest{Mode: "disable"})
	rr = env.do(t, http.MethodGet, "/takes/active/edit", nil)
	edit = EditResponse{}
	decodeInto(t, rr, &edit)
	if edit.EditDuration != 0 || edit.Range != nil || len(edit.Shots) != 0 {
		t.Errorf("all disabled edit = %+v", edit)
	}

	if rr := env.do(t, http.MethodPost, "/takes/active/shots/enable", EnableShotsRequest{Mode: "toggle"}); rr.Code != http.StatusBadRequest {
		t.Errorf("bad mode status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
