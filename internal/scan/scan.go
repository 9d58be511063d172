// Package scan turns a photo or screenshot of a class schedule into class
// records placed on the weekly grid.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jy-crnz/SchedulerDesigner/internal/llm"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
)

// ErrUpstream wraps failures of the vision model.
var ErrUpstream = errors.New("schedule scan failed")

// ScheduledClass is one class of a scan response. CellIndex is the dense
// row-major index in a grid NumCols wide, -1 if the time could not be read.
type ScheduledClass struct {
	Subject   string `json:"subject"`
	Day       string `json:"day"`
	Time      string `json:"time"`
	Room      string `json:"room"`
	CellIndex int    `json:"cellIndex"`
}

// Response is the body returned by the scan endpoint.
type Response struct {
	Schedule []ScheduledClass `json:"schedule"`
	NumCols  int              `json:"numCols"`
}

// Entries returns the classes as reconciliation input. CellIndex is dropped.
func (r Response) Entries() []reconcile.Entry {
	out := make([]reconcile.Entry, len(r.Schedule))
	for i, c := range r.Schedule {
		out[i] = reconcile.Entry{Subject: c.Subject, Day: c.Day, Time: c.Time, Room: c.Room}
	}
	return out
}

// Extractor reads classes from an image.
type Extractor interface {
	Extract(ctx context.Context, img llm.Image) ([]llm.ExtractedClass, error)
}

// Scanner runs the scan pipeline: image preparation, extraction and layout
// hints.
type Scanner struct {
	extractor Extractor
	maxDim    int
	timeout   time.Duration
	log       *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxDimension bounds the longest image side sent upstream.
func WithMaxDimension(px int) Option {
	return func(s *Scanner) { s.maxDim = px }
}

// WithTimeout bounds the upstream call.
func WithTimeout(d time.Duration) Option {
	return func(s *Scanner) { s.timeout = d }
}

// WithLogger sets the scanner logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.log = l }
}

// NewScanner creates a scanner backed by extractor.
func NewScanner(extractor Extractor, opts ...Option) *Scanner {
	s := &Scanner{
		extractor: extractor,
		maxDim:    DefaultMaxDimension,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan extracts the classes shown in an uploaded image.
func (s *Scanner) Scan(ctx context.Context, data []byte) (Response, error) {
	img, err := PrepareImage(data, s.maxDim)
	if err != nil {
		return Response{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	classes, err := s.extractor.Extract(ctx, img)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	resp := BuildResponse(classes)
	s.log.Info("schedule scanned",
		"classes", len(resp.Schedule),
		"num_cols", resp.NumCols,
		"mime", img.MIMEType,
		"duration", time.Since(start))
	return resp, nil
}

// BuildResponse computes the column hint and cell indexes for classes.
func BuildResponse(classes []llm.ExtractedClass) Response {
	entries := make([]reconcile.Entry, len(classes))
	for i, c := range classes {
		entries[i] = reconcile.Entry{Subject: c.Subject, Day: c.Day, Time: c.Time, Room: c.Room}
	}
	cols := reconcile.HintColumns(entries)

	resp := Response{Schedule: make([]ScheduledClass, len(classes)), NumCols: cols}
	for i, c := range classes {
		resp.Schedule[i] = ScheduledClass{
			Subject:   c.Subject,
			Day:       c.Day,
			Time:      c.Time,
			Room:      c.Room,
			CellIndex: reconcile.CellIndex(c.Day, c.Time, cols),
		}
	}
	return resp
}
