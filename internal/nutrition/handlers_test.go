package nutrition

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/fdg312/food-tracker/internal/storage/memory"
	"github.com/fdg312/food-tracker/internal/userctx"
)

func setupTestHandler(t *testing.T) (*Handler, *memory.MemoryStorage) {
	t.Helper()
	store := memory.New()
	return NewHandler(NewService(store.BodyProfiles())), store
}

func seedProfile(t *testing.T, store *memory.MemoryStorage, userID string) {
	t.Helper()
	_, err := store.BodyProfiles().UpsertBodyProfile(context.Background(), userID, storage.BodyProfileUpsert{
		Gender:        "male",
		Age:           30,
		HeightCm:      175,
		WeightKg:      70,
		Goal:          "weight-loss",
		ActivityLevel: "regular",
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(userctx.WithUserID(r.Context(), userID))
}

func TestHandleGetTargets(t *testing.T) {
	handler, store := setupTestHandler(t)
	seedProfile(t, store, "user-1")

	req := withUser(httptest.NewRequest(http.MethodGet, "/v1/nutrition/targets", nil), "user-1")
	w := httptest.NewRecorder()
	handler.HandleGetTargets(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp TargetsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := Targets{Calories: 2172, ProteinG: 140, FatG: 72, CarbsG: 240, FiberG: 30, SodiumMg: 2300}
	if resp.Targets != want {
		t.Errorf("expected %+v, got %+v", want, resp.Targets)
	}
	if resp.Inputs.Goal != "weight-loss" || resp.Inputs.ActivityLevel != "regular" {
		t.Errorf("unexpected echoed inputs: %+v", resp.Inputs)
	}
}

func TestHandleGetTargetsWithoutProfile(t *testing.T) {
	handler, _ := setupTestHandler(t)

	req := withUser(httptest.NewRequest(http.MethodGet, "/v1/nutrition/targets", nil), "nobody")
	w := httptest.NewRecorder()
	handler.HandleGetTargets(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error.Code != "profile_not_found" {
		t.Errorf("expected profile_not_found, got %s", resp.Error.Code)
	}
}

func TestHandlePreviewTargets(t *testing.T) {
	handler, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/nutrition/targets/preview?gender=MALE&age=30&height_cm=175&weight_kg=70&activity=regular&goal=Weight-Loss", nil)
	w := httptest.NewRecorder()
	handler.HandlePreviewTargets(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp TargetsResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Targets.Calories != 2172 {
		t.Errorf("expected 2172 kcal, got %d", resp.Targets.Calories)
	}
}

func TestHandlePreviewTargetsUnknownEnumsFallBack(t *testing.T) {
	handler, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/nutrition/targets/preview?gender=x&age=30&height_cm=175&weight_kg=70&activity=sometimes&goal=bulk", nil)
	w := httptest.NewRecorder()
	handler.HandlePreviewTargets(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp TargetsResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Inputs.ActivityLevel != "none" || resp.Inputs.Goal != "maintain" {
		t.Errorf("expected defaults, got %+v", resp.Inputs)
	}
}

func TestHandlePreviewTargetsBadNumber(t *testing.T) {
	handler, _ := setupTestHandler(t)

	tests := []struct {
		name  string
		query string
	}{
		{"age not a number", "age=abc&height_cm=175&weight_kg=70"},
		{"weight NaN", "age=30&height_cm=175&weight_kg=NaN"},
		{"height Inf", "age=30&height_cm=Inf&weight_kg=70"},
		{"body fat nan", "age=30&height_cm=175&weight_kg=70&body_fat_pct=nan"},
		{"negative weight", "age=30&height_cm=175&weight_kg=-500"},
		{"weight above range", "age=30&height_cm=175&weight_kg=401"},
		{"height below range", "age=30&height_cm=49&weight_kg=70"},
		{"age zero", "age=0&height_cm=175&weight_kg=70"},
		{"age above range", "age=121&height_cm=175&weight_kg=70"},
		{"body fat 100", "age=30&height_cm=175&weight_kg=70&body_fat_pct=100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/nutrition/targets/preview?"+tt.query, nil)
			w := httptest.NewRecorder()
			handler.HandlePreviewTargets(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("expected an error body: %v", err)
			}
			if resp.Error.Code != "invalid_request" {
				t.Errorf("expected invalid_request, got %s", resp.Error.Code)
			}
		})
	}
}

func TestHandleGetBMIRejectsNonFinite(t *testing.T) {
	handler, _ := setupTestHandler(t)

	for _, q := range []string{"height_cm=NaN&weight_kg=70", "height_cm=175&weight_kg=+Inf"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/nutrition/bmi?"+q, nil)
		w := httptest.NewRecorder()
		handler.HandleGetBMI(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", q, w.Code)
		}
	}
}

func TestHandleGetBMI(t *testing.T) {
	handler, store := setupTestHandler(t)
	seedProfile(t, store, "user-1")

	req := withUser(httptest.NewRequest(http.MethodGet, "/v1/nutrition/bmi", nil), "user-1")
	w := httptest.NewRecorder()
	handler.HandleGetBMI(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp BMIResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.BMI != 22.9 || resp.Category != "normal" {
		t.Errorf("unexpected bmi: %+v", resp)
	}

	// overrides only need the profile for the missing half
	req = withUser(httptest.NewRequest(http.MethodGet, "/v1/nutrition/bmi?weight_kg=95", nil), "user-1")
	w = httptest.NewRecorder()
	handler.HandleGetBMI(w, req)
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Category != "obese" || resp.HeightCm != 175 {
		t.Errorf("expected obese at 175cm/95kg, got %+v", resp)
	}
}

func TestHandleGetBMIOverridesWithoutProfile(t *testing.T) {
	handler, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/nutrition/bmi?height_cm=175&weight_kg=600", nil)
	w := httptest.NewRecorder()
	handler.HandleGetBMI(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for out of range weight, got %d", w.Code)
	}
}
