package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationKind selects the toast style.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

const defaultNotificationTTL = 3 * time.Second

// Notifier surfaces a short user-visible message. Calls never block.
type Notifier interface {
	Notify(message string, kind NotificationKind)
}

// Notification is one visible toast.
type Notification struct {
	ID        string
	Kind      NotificationKind
	Message   string
	CreatedAt time.Time
}

// NotificationService keeps the list of visible toasts. Each toast is
// dismissed by its own timer after the configured TTL, so several can be
// visible at once.
type NotificationService struct {
	ttl     time.Duration
	sink    func(Notification)
	metrics *MetricsService
	logger  *zap.Logger

	mu     sync.Mutex
	toasts []Notification
	timers map[string]*time.Timer
}

// NewNotificationService builds a notifier. sink, when non-nil, is called for
// every new toast and is where a view renders it.
func NewNotificationService(ttl time.Duration, sink func(Notification), metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if ttl <= 0 {
		ttl = defaultNotificationTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		ttl:     ttl,
		sink:    sink,
		metrics: metrics,
		logger:  logger,
		timers:  map[string]*time.Timer{},
	}
}

// Notify queues a toast and schedules its dismissal.
func (s *NotificationService) Notify(message string, kind NotificationKind) {
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.toasts = append(s.toasts, n)
	s.timers[n.ID] = time.AfterFunc(s.ttl, func() { s.Dismiss(n.ID) })
	s.mu.Unlock()

	s.metrics.IncNotification(kind)
	s.logger.Debug("notification", zap.String("id", n.ID), zap.String("kind", string(kind)), zap.String("message", message))
	if s.sink != nil {
		s.sink(n)
	}
}

// Dismiss removes a toast before its timer fires.
func (s *NotificationService) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	for i, n := range s.toasts {
		if n.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// Active lists visible toasts, oldest first.
func (s *NotificationService) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Close stops all pending timers.
func (s *NotificationService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.toasts = nil
}
