package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/food-tracker/internal/blob"
	"github.com/fdg312/food-tracker/internal/diary"
	"github.com/fdg312/food-tracker/internal/userctx"
	"github.com/google/uuid"
)

// DaySource yields aggregated diary days for a range.
type DaySource interface {
	DaySummaries(ctx context.Context, ownerUserID, from, to string) ([]diary.DaySummary, error)
}

// Service builds diary reports and optionally uploads them to object storage.
type Service struct {
	days         DaySource
	blobStore    blob.Store
	maxRangeDays int
}

// NewService: blobStore may be nil (BLOB_MODE=local), then Upload is unavailable.
func NewService(days DaySource, blobStore blob.Store, maxRangeDays int) *Service {
	return &Service{
		days:         days,
		blobStore:    blobStore,
		maxRangeDays: maxRangeDays,
	}
}

// Build renders the report for the current user.
func (s *Service) Build(ctx context.Context, req ReportRequest) (*File, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatPDF
	}
	if format != FormatPDF && format != FormatCSV {
		return nil, ErrInvalidFormat
	}

	fromDate, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if fromDate.After(toDate) {
		return nil, ErrInvalidDateRange
	}
	if int(toDate.Sub(fromDate).Hours()/24) > s.maxRangeDays {
		return nil, ErrRangeTooLarge
	}

	days, err := s.days.DaySummaries(ctx, userctx.OwnerID(ctx), req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate diary: %w", err)
	}

	data, err := Render(DiaryReport{From: req.From, To: req.To, Days: days}, format)
	if err != nil {
		return nil, err
	}

	contentType := "application/pdf"
	if format == FormatCSV {
		contentType = "text/csv"
	}
	return &File{
		Data:        data,
		Format:      format,
		ContentType: contentType,
		Filename:    fmt.Sprintf("diary_%s_%s.%s", req.From, req.To, format),
	}, nil
}

// Upload renders the report, stores it under reports/<owner>/<uuid>.<ext>
// and returns a download link.
func (s *Service) Upload(ctx context.Context, req ReportRequest) (*UploadResponse, error) {
	if s.blobStore == nil {
		return nil, ErrBlobStoreUnavailable
	}

	file, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/%s/%s.%s", userctx.OwnerID(ctx), uuid.New().String(), file.Format)
	size, err := s.blobStore.PutObject(ctx, key, file.Data, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}

	url, err := s.blobStore.ObjectURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to build report url: %w", err)
	}

	return &UploadResponse{
		ObjectKey: key,
		SizeBytes: size,
		URL:       url,
		Format:    file.Format,
		From:      req.From,
		To:        req.To,
	}, nil
}

func (s *Service) MaxRangeDays() int {
	return s.maxRangeDays
}
