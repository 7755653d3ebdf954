package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/printshop-console/internal/models"
	"github.com/noah-isme/printshop-console/pkg/export"
	"github.com/noah-isme/printshop-console/pkg/jobs"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
}

// ExportService renders list pages to files.
type ExportService struct {
	storage   fileStorage
	renderers map[export.Format]export.Renderer
	logger    *zap.Logger
	now       func() time.Time
	newTag    func() string
}

// NewExportService constructs an ExportService. CSV and PDF renderers are
// installed unless overridden through renderers.
func NewExportService(storage fileStorage, logger *zap.Logger, renderers ...export.Renderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExportService{
		storage: storage,
		renderers: map[export.Format]export.Renderer{
			export.FormatCSV: export.NewCSVExporter(),
			export.FormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
		now:    time.Now,
		newTag: func() string { return uuid.NewString()[:8] },
	}
	for _, r := range renderers {
		s.renderers[r.Format()] = r
	}
	return s
}

// Write renders data and stores it, returning the stored path. Every call
// gets its own file name, so exports within the same second do not collide.
func (s *ExportService) Write(format export.Format, subject string, data export.Dataset) (string, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return "", fmt.Errorf("unsupported export format %s", format)
	}
	payload, err := renderer.Render(data)
	if err != nil {
		return "", err
	}
	path, err := s.storage.Save(export.Filename(subject, format, s.now(), s.newTag()), payload)
	if err != nil {
		return "", err
	}
	s.logger.Info("export written", zap.String("path", path), zap.String("format", string(format)), zap.Int("rows", len(data.Rows)))
	return path, nil
}

// BuildDataset projects items through columns.
func BuildDataset[T any](title string, columns []Column[T], items []T) export.Dataset {
	data := export.Dataset{Title: title, Headers: make([]string, len(columns)), Rows: make([][]string, 0, len(items))}
	for i, c := range columns {
		data.Headers[i] = c.Header
	}
	for _, item := range items {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = c.Value(item)
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// ExportJob is a page snapshot waiting to be written.
type ExportJob struct {
	Format  export.Format
	Subject string
	Data    export.Dataset
}

// ExportQueue writes exports in the background and reports each outcome
// through the notifier.
type ExportQueue struct {
	exporter *ExportService
	notifier Notifier
	queue    *jobs.Queue[ExportJob]
}

// NewExportQueue builds a queue over exporter. Call Start before Enqueue.
func NewExportQueue(exporter *ExportService, notifier Notifier, logger *zap.Logger) *ExportQueue {
	q := &ExportQueue{exporter: exporter, notifier: notifier}
	q.queue = jobs.NewQueue("exports", q.handle, jobs.QueueConfig[ExportJob]{
		Workers:    1,
		MaxRetries: 2,
		RetryDelay: 500 * time.Millisecond,
		OnGiveUp:   q.giveUp,
		Logger:     logger,
	})
	return q
}

// Start launches the export worker.
func (q *ExportQueue) Start(ctx context.Context) { q.queue.Start(ctx) }

// Stop waits for the worker to exit.
func (q *ExportQueue) Stop() { q.queue.Stop() }

// Enqueue schedules job and returns its id.
func (q *ExportQueue) Enqueue(job ExportJob) (string, error) {
	return q.queue.Enqueue(jobs.Job[ExportJob]{Kind: string(job.Format), Payload: job})
}

func (q *ExportQueue) handle(_ context.Context, job jobs.Job[ExportJob]) error {
	path, err := q.exporter.Write(job.Payload.Format, job.Payload.Subject, job.Payload.Data)
	if err != nil {
		return err
	}
	q.notify(fmt.Sprintf("Exported %s to %s.", job.Payload.Subject, path), NotificationSuccess)
	return nil
}

func (q *ExportQueue) giveUp(job jobs.Job[ExportJob], _ error) {
	q.notify(fmt.Sprintf("Failed to export %s.", job.Payload.Subject), NotificationError)
}

func (q *ExportQueue) notify(message string, kind NotificationKind) {
	if q.notifier != nil {
		q.notifier.Notify(message, kind)
	}
}

// QueuePage snapshots the items of page and schedules their export.
func QueuePage[T any, P any](q *ExportQueue, format export.Format, resource Resource[T, P], page *models.Page[T]) (string, error) {
	if page == nil {
		return "", fmt.Errorf("no %s loaded", resource.Plural)
	}
	return q.Enqueue(ExportJob{
		Format:  format,
		Subject: resource.Plural,
		Data:    BuildDataset(capitalize(resource.Plural), resource.Columns, page.Items),
	})
}
