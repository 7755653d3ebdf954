package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/printshop-console/internal/models"
	"github.com/noah-isme/printshop-console/pkg/export"
)

type memoryStorage struct {
	files map[string][]byte
}

func (m *memoryStorage) Save(filename string, data []byte) (string, error) {
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[filename] = data
	return "/exports/" + filename, nil
}

func fixedExportService(store fileStorage) *ExportService {
	svc := NewExportService(store, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }
	svc.newTag = func() string { return "0a1b2c3d" }
	return svc
}

func TestExportServiceWritesCSV(t *testing.T) {
	store := &memoryStorage{}
	svc := fixedExportService(store)

	items := []models.Ink{
		{ID: 3, InkColorID: 11, BatchNumber: "INK-3", QuantityKg: 2.5, ReceivedDate: "2024-04-01", Status: models.InkActive, Machine: models.StringPtr("P5")},
	}
	res := InkResource()
	data := BuildDataset("Inks", res.Columns, items)
	assert.Equal(t, "Inks", data.Title)

	path, err := svc.Write(export.FormatCSV, res.Plural, data)
	require.NoError(t, err)
	assert.Equal(t, "/exports/inks_20240501_080000_0a1b2c3d.csv", path)
	assert.Equal(t,
		"ID,Color,Batch,Kg,Received,Status,Machine\n3,11,INK-3,2.5,2024-04-01,ACTIVE,P5\n",
		string(store.files["inks_20240501_080000_0a1b2c3d.csv"]))
}

func TestExportServiceKeepsExportsWithinSameSecond(t *testing.T) {
	store := &memoryStorage{}
	svc := NewExportService(store, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }

	first := export.Dataset{Headers: []string{"h"}, Rows: [][]string{{"page1"}}}
	second := export.Dataset{Headers: []string{"h"}, Rows: [][]string{{"page2"}}}
	p1, err := svc.Write(export.FormatCSV, "inks", first)
	require.NoError(t, err)
	p2, err := svc.Write(export.FormatCSV, "inks", second)
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
	require.Len(t, store.files, 2)
	assert.Equal(t, "h\npage1\n", string(store.files[strings.TrimPrefix(p1, "/exports/")]))
	assert.Equal(t, "h\npage2\n", string(store.files[strings.TrimPrefix(p2, "/exports/")]))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&memoryStorage{}, nil)
	_, err := svc.Write(export.Format("xlsx"), "inks", export.Dataset{Headers: []string{"ID"}})
	assert.Error(t, err)
}

type failingStorage struct{}

func (failingStorage) Save(string, []byte) (string, error) {
	return "", errors.New("disk full")
}

func TestExportQueueNotifiesWrittenPath(t *testing.T) {
	notifier := &recordingNotifier{}
	q := NewExportQueue(fixedExportService(&memoryStorage{}), notifier, nil)
	q.Start(context.Background())
	defer q.Stop()

	page := &models.Page[models.Ink]{Items: []models.Ink{{ID: 1, BatchNumber: "INK-1"}}, TotalItems: 1, TotalPages: 1}
	id, err := QueuePage(q, export.FormatCSV, InkResource(), page)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Eventually(t, func() bool { return notifier.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, "Exported inks to /exports/inks_20240501_080000_0a1b2c3d.csv.", notifier.messages[0])
	assert.Equal(t, NotificationSuccess, notifier.kinds[0])
}

func TestExportQueueGivesUpAfterRetries(t *testing.T) {
	notifier := &recordingNotifier{}
	q := NewExportQueue(NewExportService(failingStorage{}, nil), notifier, nil)
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(ExportJob{Format: export.FormatCSV, Subject: "inks", Data: export.Dataset{Headers: []string{"ID"}}})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return notifier.count() == 1 }, 3*time.Second, 20*time.Millisecond)
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, "Failed to export inks.", notifier.messages[0])
	assert.Equal(t, NotificationError, notifier.kinds[0])
}

func TestQueuePageWithoutPage(t *testing.T) {
	q := NewExportQueue(NewExportService(&memoryStorage{}, nil), nil, nil)
	_, err := QueuePage[models.Ink](q, export.FormatCSV, InkResource(), nil)
	assert.Error(t, err)
}
