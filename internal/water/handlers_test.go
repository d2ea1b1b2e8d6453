package water

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fdg312/food-tracker/internal/storage/memory"
	"github.com/fdg312/food-tracker/internal/userctx"
)

func setupTestHandlers(maxMl int) *Handlers {
	store := memory.New()
	return NewHandlers(NewService(store.Water(), maxMl))
}

func doRequest(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req = req.WithContext(userctx.WithUserID(req.Context(), "user-1"))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestAddWaterDefaultsToOneGlass(t *testing.T) {
	h := setupTestHandlers(8000)

	w := doRequest(h.HandleAddWater, http.MethodPost, "/v1/water", `{"date":"2024-05-01"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp WaterDailyResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.TotalMl != 250 || resp.Glasses != 1 || resp.RemainingMl != 1750 || resp.TargetGlasses != 8 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAddWaterEmptyBody(t *testing.T) {
	h := setupTestHandlers(8000)

	w := doRequest(h.HandleAddWater, http.MethodPost, "/v1/water", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected empty body to add one glass, got %d", w.Code)
	}
}

func TestAddWaterGlassesAndAmount(t *testing.T) {
	h := setupTestHandlers(8000)

	doRequest(h.HandleAddWater, http.MethodPost, "/v1/water", `{"date":"2024-05-01","glasses":3}`)
	doRequest(h.HandleAddWater, http.MethodPost, "/v1/water", `{"date":"2024-05-01","amount_ml":100}`)

	w := doRequest(h.HandleGetWater, http.MethodGet, "/v1/water?date=2024-05-01", "")
	var resp WaterDailyResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.TotalMl != 850 || resp.Glasses != 3 {
		t.Errorf("expected 850 ml / 3 glasses, got %+v", resp)
	}
}

func TestAddWaterLimit(t *testing.T) {
	h := setupTestHandlers(500)

	doRequest(h.HandleAddWater, http.MethodPost, "/v1/water", `{"date":"2024-05-01","amount_ml":500}`)
	w := doRequest(h.HandleAddWater, http.MethodPost, "/v1/water", `{"date":"2024-05-01","amount_ml":1}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error.Code != "daily_water_limit_exceeded" {
		t.Errorf("expected daily_water_limit_exceeded, got %s", resp.Error.Code)
	}
}

func TestAddWaterValidation(t *testing.T) {
	h := setupTestHandlers(8000)

	tests := []struct {
		body string
		code string
	}{
		{`{"amount_ml":0}`, "invalid_request"},
		{`{"glasses":-1}`, "invalid_request"},
		{`{"glasses":0}`, "invalid_request"},
		{`{"glasses":-9223372036854775807}`, "invalid_request"},
		{`{"date":"yesterday"}`, "invalid_date"},
		{`{`, "invalid_request"},
	}
	for _, tt := range tests {
		w := doRequest(h.HandleAddWater, http.MethodPost, "/v1/water", tt.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected status 400, got %d", tt.body, w.Code)
			continue
		}
		var resp ErrorResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error.Code != tt.code {
			t.Errorf("body %s: expected %s, got %s", tt.body, tt.code, resp.Error.Code)
		}
	}
}

func TestAddWaterHugeGlassCountHitsLimit(t *testing.T) {
	h := setupTestHandlers(8000)

	w := doRequest(h.HandleAddWater, http.MethodPost, "/v1/water", `{"date":"2024-05-01","glasses":9223372036854775807}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}

	w = doRequest(h.HandleGetWater, http.MethodGet, "/v1/water?date=2024-05-01", "")
	var resp WaterDailyResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.TotalMl != 0 {
		t.Errorf("expected nothing recorded, got %d ml", resp.TotalMl)
	}
}

func TestAddWaterConcurrentRespectsLimit(t *testing.T) {
	store := memory.New()
	svc := NewService(store.Water(), 1000)
	ctx := userctx.WithUserID(context.Background(), "user-1")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddWater(ctx, AddWaterRequest{Date: "2024-05-01"})
			if err != nil && !errors.Is(err, ErrDailyLimitExceeded) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	resp, err := svc.GetDaily(ctx, "2024-05-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalMl != 1000 {
		t.Fatalf("expected total capped at 1000, got %d", resp.TotalMl)
	}
}

func TestResetWater(t *testing.T) {
	h := setupTestHandlers(8000)

	doRequest(h.HandleAddWater, http.MethodPost, "/v1/water", `{"date":"2024-05-01","glasses":2}`)
	w := doRequest(h.HandleResetWater, http.MethodDelete, "/v1/water?date=2024-05-01", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	w = doRequest(h.HandleGetWater, http.MethodGet, "/v1/water?date=2024-05-01", "")
	var resp WaterDailyResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.TotalMl != 0 || resp.RemainingMl != 2000 {
		t.Errorf("expected reset day, got %+v", resp)
	}
}
