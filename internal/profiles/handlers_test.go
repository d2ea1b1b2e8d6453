package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fdg312/food-tracker/internal/storage/memory"
	"github.com/fdg312/food-tracker/internal/userctx"
)

func newTestHandler() *Handler {
	store := memory.New()
	return NewHandler(NewService(store.BodyProfiles()))
}

func putProfile(t *testing.T, h *Handler, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, "/v1/profile", bytes.NewReader(raw))
	req = req.WithContext(userctx.WithUserID(req.Context(), userID))
	w := httptest.NewRecorder()
	h.HandlePut(w, req)
	return w
}

func validRequest() UpsertProfileRequest {
	return UpsertProfileRequest{
		Gender:        "Male",
		Age:           30,
		HeightCm:      175,
		WeightKg:      70,
		Goal:          "Weight_Loss",
		ActivityLevel: "regular",
	}
}

func TestHandleGetNotFound(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	w := httptest.NewRecorder()
	h.HandleGet(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Code != "profile_not_found" {
		t.Errorf("expected profile_not_found, got %s", resp.Error.Code)
	}
}

func TestHandlePutCanonicalizesAndGetReturnsIt(t *testing.T) {
	h := newTestHandler()

	w := putProfile(t, h, "user-1", validRequest())
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var saved ProfileDTO
	if err := json.NewDecoder(w.Body).Decode(&saved); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if saved.Gender != "male" || saved.Goal != "weight-loss" || saved.ActivityLevel != "regular" {
		t.Errorf("expected canonical values, got gender=%s goal=%s activity=%s", saved.Gender, saved.Goal, saved.ActivityLevel)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req = req.WithContext(userctx.WithUserID(req.Context(), "user-1"))
	getW := httptest.NewRecorder()
	h.HandleGet(getW, req)

	if getW.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", getW.Code)
	}
	var got ProfileDTO
	json.NewDecoder(getW.Body).Decode(&got)
	if got.OwnerUserID != "user-1" || got.Age != 30 {
		t.Errorf("unexpected profile: %+v", got)
	}
}

func TestHandlePutIsOwnerScoped(t *testing.T) {
	h := newTestHandler()

	if w := putProfile(t, h, "user-1", validRequest()); w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req = req.WithContext(userctx.WithUserID(context.Background(), "user-2"))
	w := httptest.NewRecorder()
	h.HandleGet(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected another user to see 404, got %d", w.Code)
	}
}

func TestHandlePutValidation(t *testing.T) {
	bad := func(mut func(*UpsertProfileRequest)) UpsertProfileRequest {
		r := validRequest()
		mut(&r)
		return r
	}
	fat := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		req  UpsertProfileRequest
	}{
		{"empty gender", bad(func(r *UpsertProfileRequest) { r.Gender = "  " })},
		{"age zero", bad(func(r *UpsertProfileRequest) { r.Age = 0 })},
		{"age too high", bad(func(r *UpsertProfileRequest) { r.Age = 121 })},
		{"height too low", bad(func(r *UpsertProfileRequest) { r.HeightCm = 49 })},
		{"weight too high", bad(func(r *UpsertProfileRequest) { r.WeightKg = 401 })},
		{"body fat zero", bad(func(r *UpsertProfileRequest) { r.BodyFatPct = fat(0) })},
		{"body fat hundred", bad(func(r *UpsertProfileRequest) { r.BodyFatPct = fat(100) })},
		{"target weight too low", bad(func(r *UpsertProfileRequest) { r.TargetWeightKg = fat(5) })},
		{"unknown goal", bad(func(r *UpsertProfileRequest) { r.Goal = "bulk" })},
		{"unknown activity", bad(func(r *UpsertProfileRequest) { r.ActivityLevel = "daily" })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()
			w := putProfile(t, h, "user-1", tt.req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}
			var resp ErrorResponse
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.Error.Code != "invalid_profile" {
				t.Errorf("expected invalid_profile, got %s", resp.Error.Code)
			}
		})
	}
}

func TestHandlePutRangeMessage(t *testing.T) {
	h := newTestHandler()
	req := validRequest()
	req.WeightKg = -500

	w := putProfile(t, h, "user-1", req)
	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if w.Code != http.StatusBadRequest || resp.Error.Message != "weight_kg must be between 10 and 400" {
		t.Fatalf("unexpected response %d %+v", w.Code, resp.Error)
	}
}

func TestHandlePutInvalidJSON(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPut, "/v1/profile", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	h.HandlePut(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
