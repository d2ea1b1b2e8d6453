package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/food-tracker/internal/blob"
	"github.com/fdg312/food-tracker/internal/diary"
	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/fdg312/food-tracker/internal/storage/memory"
	"github.com/fdg312/food-tracker/internal/userctx"
)

func f64(v float64) *float64 { return &v }

func setupTestService(t *testing.T, store blob.Store) *Service {
	t.Helper()
	st := memory.New()
	ctx := context.Background()

	_, _, err := st.Catalog().UpsertFoods(ctx, []storage.FoodUpsert{
		{Name: "Oatmeal", CaloriesKcal: f64(200), ProteinG: f64(10), FatG: f64(5), CarbsG: f64(20), FiberG: f64(2), SodiumMg: f64(50)},
	})
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	st.Entries().CreateEntry(ctx, &storage.Entry{OwnerUserID: "user-1", Date: "2024-05-01", MealType: "breakfast", FoodID: 1, QuantityG: 150})
	st.Entries().CreateEntry(ctx, &storage.Entry{OwnerUserID: "user-1", Date: "2024-05-03", MealType: "dinner", FoodID: 1, QuantityG: 100})
	st.Entries().CreateEntry(ctx, &storage.Entry{OwnerUserID: "user-2", Date: "2024-05-02", MealType: "lunch", FoodID: 1, QuantityG: 100})

	days := diary.NewService(st.Entries(), st.Catalog(), nil, 100)
	return NewService(days, store, 31)
}

func userRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(userctx.WithUserID(req.Context(), "user-1"))
}

func TestHandleDownloadCSV(t *testing.T) {
	h := NewHandlers(setupTestService(t, nil))

	w := httptest.NewRecorder()
	h.HandleDownload(w, userRequest(http.MethodGet, "/v1/reports/diary?from=2024-05-01&to=2024-05-07&format=csv", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "diary_2024-05-01_2024-05-07.csv") {
		t.Errorf("unexpected content disposition %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	want := []string{
		"date,calories_kcal,protein_g,fat_g,carbs_g,fiber_g,sodium_mg",
		"2024-05-01,300.0,15.0,7.5,30.0,3.0,75.0",
		"2024-05-03,200.0,10.0,5.0,20.0,2.0,50.0",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestHandleDownloadPDF(t *testing.T) {
	h := NewHandlers(setupTestService(t, nil))

	w := httptest.NewRecorder()
	h.HandleDownload(w, userRequest(http.MethodGet, "/v1/reports/diary?from=2024-05-01&to=2024-05-07", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf by default, got %s", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("expected body to start with %PDF")
	}
}

func TestHandleDownloadValidation(t *testing.T) {
	h := NewHandlers(setupTestService(t, nil))

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"bad format", "from=2024-05-01&to=2024-05-02&format=xlsx", "invalid_format"},
		{"bad date", "from=05/01/2024&to=2024-05-02", "invalid_date"},
		{"reversed", "from=2024-05-09&to=2024-05-02", "invalid_range"},
		{"too long", "from=2024-01-01&to=2024-05-02", "range_too_large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.HandleDownload(w, userRequest(http.MethodGet, "/v1/reports/diary?"+tt.query, nil))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}
			var resp ErrorResponse
			json.NewDecoder(w.Body).Decode(&resp)
			if resp.Error.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, resp.Error.Code)
			}
		})
	}
}

func TestHandleCreateUploadsToBlobStore(t *testing.T) {
	store := blob.NewMemoryStore()
	h := NewHandlers(setupTestService(t, store))

	body, _ := json.Marshal(ReportRequest{From: "2024-05-01", To: "2024-05-07", Format: "csv"})
	w := httptest.NewRecorder()
	h.HandleCreate(w, userRequest(http.MethodPost, "/v1/reports", body))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp UploadResponse
	json.NewDecoder(w.Body).Decode(&resp)

	if !strings.HasPrefix(resp.ObjectKey, "reports/user-1/") || !strings.HasSuffix(resp.ObjectKey, ".csv") {
		t.Errorf("unexpected object key %q", resp.ObjectKey)
	}
	if resp.URL != "memory://"+resp.ObjectKey {
		t.Errorf("unexpected url %q", resp.URL)
	}

	data, err := store.GetObject(context.Background(), resp.ObjectKey)
	if err != nil {
		t.Fatalf("expected uploaded object: %v", err)
	}
	if int64(len(data)) != resp.SizeBytes || store.ContentType(resp.ObjectKey) != "text/csv" {
		t.Errorf("unexpected stored object: size=%d content_type=%s", len(data), store.ContentType(resp.ObjectKey))
	}
}

func TestHandleCreateWithoutBlobStore(t *testing.T) {
	h := NewHandlers(setupTestService(t, nil))

	body, _ := json.Marshal(ReportRequest{From: "2024-05-01", To: "2024-05-07", Format: "pdf"})
	w := httptest.NewRecorder()
	h.HandleCreate(w, userRequest(http.MethodPost, "/v1/reports", body))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error.Code != "blob_store_not_configured" {
		t.Errorf("expected blob_store_not_configured, got %s", resp.Error.Code)
	}
}

func TestRenderEmptyRange(t *testing.T) {
	data, err := Render(DiaryReport{From: "2024-05-01", To: "2024-05-01"}, FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(data)) != strings.Join(csvHeader, ",") {
		t.Errorf("expected header only, got %q", data)
	}

	if avg := (DiaryReport{}).Averages(); avg != (diary.MealSummary{}) {
		t.Errorf("expected zero averages, got %+v", avg)
	}
}
