package reports

import "errors"

const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

var (
	ErrInvalidFormat        = errors.New("invalid format")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidDateRange     = errors.New("from must not be after to")
	ErrRangeTooLarge        = errors.New("date range too large")
	ErrBlobStoreUnavailable = errors.New("blob store not configured")
)

// ReportRequest - параметры отчёта по дневнику
type ReportRequest struct {
	From   string `json:"from"`   // YYYY-MM-DD
	To     string `json:"to"`     // YYYY-MM-DD
	Format string `json:"format"` // "pdf" or "csv"
}

// File is a rendered report ready to stream or upload.
type File struct {
	Data        []byte
	Format      string
	ContentType string
	Filename    string
}

// UploadResponse is returned by POST /v1/reports
type UploadResponse struct {
	ObjectKey string `json:"object_key"`
	SizeBytes int64  `json:"size_bytes"`
	URL       string `json:"url"`
	Format    string `json:"format"`
	From      string `json:"from"`
	To        string `json:"to"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
