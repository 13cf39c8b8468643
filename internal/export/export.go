package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrUnsupportedFormat is returned for formats outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported export format")

var supportedFormats = map[string]bool{
	"xlsx": true,
	"csv":  true,
	"pdf":  true,
}

// Request describes an export job: the file format, a date-range token, and
// which datasets to include.
type Request struct {
	Format      string `json:"format" validate:"required"`
	DateRange   string `json:"dateRange" validate:"required"`
	IncludeData struct {
		Inventory bool `json:"inventory"`
		Orders    bool `json:"orders"`
		Suppliers bool `json:"suppliers"`
	} `json:"includeData"`
}

// Record is the synthetic completion record returned once the job "runs".
// Actual file generation is out of scope; the record stands in for it.
type Record struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Format      string    `json:"format"`
	DateRange   string    `json:"dateRange"`
	RequestedAt time.Time `json:"requestedAt"`
	CompletedAt time.Time `json:"completedAt"`
	DownloadURL string    `json:"downloadUrl"`
}

// Service produces synthetic export completion records after a fixed delay.
type Service struct {
	delay time.Duration
}

// NewService creates an export stub with the given simulated processing
// delay.
func NewService(delay time.Duration) *Service {
	return &Service{delay: delay}
}

// Run validates the request, waits out the fixed delay, and returns the
// completion record.
func (s *Service) Run(req Request) (Record, error) {
	if !supportedFormats[req.Format] {
		return Record{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}

	requestedAt := time.Now().UTC()
	time.Sleep(s.delay)

	id := uuid.NewString()
	return Record{
		ID:          id,
		Status:      "completed",
		Format:      req.Format,
		DateRange:   req.DateRange,
		RequestedAt: requestedAt,
		CompletedAt: time.Now().UTC(),
		DownloadURL: fmt.Sprintf("/exports/%s.%s", id, req.Format),
	}, nil
}
