package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fdg312/food-tracker/internal/auth"
	"github.com/fdg312/food-tracker/internal/blob"
	"github.com/fdg312/food-tracker/internal/config"
	"github.com/fdg312/food-tracker/internal/diary"
	"github.com/fdg312/food-tracker/internal/foods"
	"github.com/fdg312/food-tracker/internal/logger"
	"github.com/fdg312/food-tracker/internal/nutrition"
	"github.com/fdg312/food-tracker/internal/profiles"
	"github.com/fdg312/food-tracker/internal/reports"
	"github.com/fdg312/food-tracker/internal/storage"
	"github.com/fdg312/food-tracker/internal/storage/memory"
	"github.com/fdg312/food-tracker/internal/storage/postgres"
	"github.com/fdg312/food-tracker/internal/water"
	"go.uber.org/zap"
)

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	storageKind    string
	blobStore      blob.Store
	blobMode       string
	authMiddleware *auth.Middleware
	httpServer     *http.Server
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) (*Server, error) {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	ctx := context.Background()
	s.initStorage(ctx)
	if err := s.initBlob(ctx); err != nil {
		s.storage.Close()
		return nil, err
	}

	s.routes()
	return s, nil
}

// NewWithStorage builds a server over an existing storage; blobStore may be nil.
func NewWithStorage(cfg *config.Config, st storage.Storage, blobStore blob.Store) *Server {
	s := &Server{
		config:      cfg,
		mux:         http.NewServeMux(),
		storage:     st,
		storageKind: "custom",
		blobStore:   blobStore,
		blobMode:    config.BlobModeLocal,
	}
	if blobStore != nil {
		s.blobMode = config.BlobModeS3
	}
	s.routes()
	return s
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage(ctx context.Context) {
	log := logger.L()

	if s.config.DatabaseURL == "" {
		log.Info("using in-memory storage")
		s.storage = memory.New()
		s.storageKind = "memory"
		return
	}

	log.Info("connecting to postgres")
	pgStorage, err := postgres.New(ctx, s.config.DatabaseURL)
	if err != nil {
		log.Error("postgres connect failed, fallback to in-memory storage", zap.Error(err))
		s.storage = memory.New()
		s.storageKind = "memory"
		return
	}

	log.Info("postgres connected")
	s.storage = pgStorage
	s.storageKind = "postgres"
}

func (s *Server) initBlob(ctx context.Context) error {
	store, mode, err := blob.NewBlobStore(ctx, s.config.Blob, logger.NewPrintfLogger(logger.L()))
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}
	s.blobStore = store
	s.blobMode = mode
	return nil
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)
	s.mux.HandleFunc("GET /v1/me", authHandler.HandleMe)

	// Body profile
	profileHandler := profiles.NewHandler(profiles.NewService(s.storage.BodyProfiles()))
	s.mux.HandleFunc("GET /v1/profile", profileHandler.HandleGet)
	s.mux.HandleFunc("PUT /v1/profile", profileHandler.HandlePut)

	// Nutrition targets / BMI
	nutritionService := nutrition.NewService(s.storage.BodyProfiles())
	nutritionHandler := nutrition.NewHandler(nutritionService)
	s.mux.HandleFunc("GET /v1/nutrition/targets", nutritionHandler.HandleGetTargets)
	s.mux.HandleFunc("GET /v1/nutrition/targets/preview", nutritionHandler.HandlePreviewTargets)
	s.mux.HandleFunc("GET /v1/nutrition/bmi", nutritionHandler.HandleGetBMI)

	// Diary
	diaryService := diary.NewService(s.storage.Entries(), s.storage.Catalog(), nutritionService, s.config.EntryDefaultQuantityG)
	diaryHandler := diary.NewHandler(diaryService)
	s.mux.HandleFunc("POST /v1/entries", diaryHandler.HandleCreateEntry)
	s.mux.HandleFunc("GET /v1/entries", diaryHandler.HandleListEntries)
	s.mux.HandleFunc("PUT /v1/entries/{id}", diaryHandler.HandleReplaceEntry)
	s.mux.HandleFunc("DELETE /v1/entries/{id}", diaryHandler.HandleDeleteEntry)
	s.mux.HandleFunc("GET /v1/diary/day", diaryHandler.HandleGetDay)
	s.mux.HandleFunc("GET /v1/diary/summary", diaryHandler.HandleGetSummary)

	// Food catalog
	foodsHandler := foods.NewHandler(foods.NewService(s.storage.Catalog(), s.config.FoodSearchMode))
	s.mux.HandleFunc("GET /v1/foods/search", foodsHandler.HandleSearch)
	s.mux.HandleFunc("GET /v1/foods/{id}", foodsHandler.HandleGetFood)

	// Water
	waterHandler := water.NewHandlers(water.NewService(s.storage.Water(), s.config.WaterMaxMlPerDay))
	s.mux.HandleFunc("POST /v1/water", waterHandler.HandleAddWater)
	s.mux.HandleFunc("GET /v1/water", waterHandler.HandleGetWater)
	s.mux.HandleFunc("DELETE /v1/water", waterHandler.HandleResetWater)

	// Reports
	reportsHandler := reports.NewHandlers(reports.NewService(diaryService, s.blobStore, s.config.ReportsMaxRangeDays))
	s.mux.HandleFunc("GET /v1/reports/diary", reportsHandler.HandleDownload)
	s.mux.HandleFunc("POST /v1/reports", reportsHandler.HandleCreate)
}

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Blob    string `json:"blob"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := healthResponse{Status: "ok", Storage: s.storageKind, Blob: s.blobMode}
	status := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.storage.Ping(ctx); err != nil {
		logger.L().Warn("healthz: storage ping failed", zap.Error(err))
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// Handler returns the router wrapped in the middleware chain.
// Outermost first: CORS → Rate Limit → Auth → Router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		handler = s.authMiddleware.Wrap(handler)
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start запускает HTTP сервер и блокируется до Shutdown
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.L().Info("server listening",
		zap.String("addr", addr),
		zap.String("storage", s.storageKind),
		zap.String("blob", s.blobMode),
		zap.String("auth_mode", s.config.AuthMode),
		zap.Bool("auth_required", s.config.AuthRequired),
	)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Close закрывает storage и освобождает ресурсы
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
