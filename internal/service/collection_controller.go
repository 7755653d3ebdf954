package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/printshop-console/internal/models"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

const defaultPageSize = 20

// FilterKind constrains the values a filter field accepts.
type FilterKind int

const (
	FilterText FilterKind = iota
	FilterNumber
	FilterDate
)

// dateLayout is the wire format for date filter bounds.
const dateLayout = "2006-01-02"

// FilterField declares one filter criterion of a resource.
type FilterField struct {
	Name    string
	Label   string
	Kind    FilterKind
	Options []string
}

// ListFunc is the listing capability. It returns the raw backend body, which
// is either a page envelope or a bare JSON array.
type ListFunc func(ctx context.Context, query models.Query) (json.RawMessage, error)

// CollectionOptions configures a CollectionController.
type CollectionOptions struct {
	Resource    string
	Filters     []FilterField
	Sortable    []string
	DefaultSort *models.SortSpec
	PageSize    int
	Notifier    Notifier
	Metrics     *MetricsService
	Logger      *zap.Logger
	// FailureMessage is shown through the notifier when listing fails.
	FailureMessage string
}

// CollectionState is a read-only snapshot for rendering.
type CollectionState[T any] struct {
	Page    *models.Page[T]
	Query   models.Query
	Sort    *models.SortSpec
	Filters map[string]string
	Loading bool
	Errored bool
	Err     error
}

// CollectionController owns filter, sort and page state of one list screen,
// derives the outbound query and keeps the last good page.
//
// Every fetch is tagged with a sequence number; only the response to the most
// recently issued fetch is applied, older ones are dropped on arrival.
type CollectionController[T any] struct {
	list    ListFunc
	opts    CollectionOptions
	filters map[string]FilterField
	sorts   map[string]struct{}
	logger  *zap.Logger

	mu        sync.Mutex
	criteria  map[string]string
	sort      *models.SortSpec
	pageIndex int
	page      *models.Page[T]
	loading   bool
	errored   bool
	lastErr   error
	seq       uint64
}

// NewCollectionController builds a controller around a listing capability.
func NewCollectionController[T any](list ListFunc, opts CollectionOptions) *CollectionController[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.FailureMessage == "" {
		opts.FailureMessage = fmt.Sprintf("Failed to load %s.", opts.Resource)
	}
	filters := make(map[string]FilterField, len(opts.Filters))
	for _, f := range opts.Filters {
		filters[f.Name] = f
	}
	sorts := make(map[string]struct{}, len(opts.Sortable))
	for _, s := range opts.Sortable {
		sorts[s] = struct{}{}
	}
	c := &CollectionController[T]{
		list:     list,
		opts:     opts,
		filters:  filters,
		sorts:    sorts,
		logger:   opts.Logger.With(zap.String("resource", opts.Resource)),
		criteria: map[string]string{},
	}
	c.sort = copySort(opts.DefaultSort)
	return c
}

// Filters lists the declared filter fields in declaration order.
func (c *CollectionController[T]) Filters() []FilterField {
	out := make([]FilterField, len(c.opts.Filters))
	copy(out, c.opts.Filters)
	return out
}

// Sortable lists the sortable columns.
func (c *CollectionController[T]) Sortable() []string {
	out := make([]string, len(c.opts.Sortable))
	copy(out, c.opts.Sortable)
	return out
}

// Load issues the first fetch for a freshly mounted screen.
func (c *CollectionController[T]) Load(ctx context.Context) error {
	return c.Refresh(ctx)
}

// SetFilter sets or clears one criterion. A nil or empty value clears it.
// Any change returns the screen to the first page.
func (c *CollectionController[T]) SetFilter(ctx context.Context, field string, value any) error {
	def, ok := c.filters[field]
	if !ok {
		return appErrors.Clone(appErrors.ErrUnknownFilter, fmt.Sprintf("unknown filter %q", field))
	}
	normalized, err := normalizeFilterValue(def, value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if normalized == "" {
		delete(c.criteria, field)
	} else {
		c.criteria[field] = normalized
	}
	c.pageIndex = 0
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// ToggleSort advances field through none -> asc -> desc -> none and returns
// to the first page.
func (c *CollectionController[T]) ToggleSort(ctx context.Context, field string) error {
	if _, ok := c.sorts[field]; !ok {
		return appErrors.Clone(appErrors.ErrUnsortableField, fmt.Sprintf("column %q is not sortable", field))
	}

	c.mu.Lock()
	c.sort = models.NextSort(c.sort, field)
	c.pageIndex = 0
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// SetPage moves to index. Indexes outside the known page range are rejected
// without touching state. Before any page is known only index 0 is valid.
func (c *CollectionController[T]) SetPage(ctx context.Context, index int) error {
	c.mu.Lock()
	valid := index == 0 && c.page == nil || c.page.InRange(index)
	if !valid {
		total := 0
		if c.page != nil {
			total = c.page.TotalPages
		}
		c.mu.Unlock()
		return appErrors.Clone(appErrors.ErrPageOutOfRange, fmt.Sprintf("page %d is outside 1..%d", index+1, total))
	}
	c.pageIndex = index
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// NextPage advances one page when a following page exists.
func (c *CollectionController[T]) NextPage(ctx context.Context) error {
	c.mu.Lock()
	index := c.pageIndex + 1
	c.mu.Unlock()
	return c.SetPage(ctx, index)
}

// PrevPage goes back one page when a previous page exists.
func (c *CollectionController[T]) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	index := c.pageIndex - 1
	c.mu.Unlock()
	return c.SetPage(ctx, index)
}

// Clear restores filters, sort and page to their construction-time defaults.
func (c *CollectionController[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.criteria = map[string]string{}
	c.sort = copySort(c.opts.DefaultSort)
	c.pageIndex = 0
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Query derives the outbound query from the current state.
func (c *CollectionController[T]) Query() models.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queryLocked()
}

func (c *CollectionController[T]) queryLocked() models.Query {
	q := models.Query{
		models.QueryParamPage: strconv.Itoa(c.pageIndex),
		models.QueryParamSize: strconv.Itoa(c.opts.PageSize),
	}
	for k, v := range c.criteria {
		q[k] = v
	}
	if c.sort != nil {
		q[models.QueryParamSort] = c.sort.Token()
	}
	return q
}

// State returns a snapshot of the controller.
func (c *CollectionController[T]) State() CollectionState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	filters := make(map[string]string, len(c.criteria))
	for k, v := range c.criteria {
		filters[k] = v
	}
	return CollectionState[T]{
		Page:    c.page,
		Query:   c.queryLocked(),
		Sort:    copySort(c.sort),
		Filters: filters,
		Loading: c.loading,
		Errored: c.errored,
		Err:     c.lastErr,
	}
}

// Refresh re-issues the current query unchanged.
func (c *CollectionController[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	query := c.queryLocked()
	request := models.PageRequest{PageIndex: c.pageIndex, PageSize: c.opts.PageSize}
	c.loading = true
	c.mu.Unlock()

	start := time.Now()
	raw, err := c.list(ctx, query)
	var page *models.Page[T]
	if err == nil {
		page, err = NormalizePage[T](raw, request)
	}
	duration := time.Since(start)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug("discarding stale list response", zap.Uint64("seq", seq), zap.String("query", query.String()))
		c.opts.Metrics.IncStaleResponse(c.opts.Resource)
		return nil
	}
	c.loading = false
	if err != nil {
		c.errored = true
		c.lastErr = err
		c.mu.Unlock()

		c.opts.Metrics.ObserveFetch(c.opts.Resource, outcomeError, duration)
		c.logger.Warn("list request failed", zap.String("query", query.String()), zap.Error(err))
		if c.opts.Notifier != nil {
			c.opts.Notifier.Notify(c.opts.FailureMessage, NotificationError)
		}
		return err
	}
	c.page = page
	c.errored = false
	c.lastErr = nil
	c.mu.Unlock()

	c.opts.Metrics.ObserveFetch(c.opts.Resource, outcomeSuccess, duration)
	return nil
}

func normalizeFilterValue(def FilterField, value any) (string, error) {
	var raw string
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		raw = strings.TrimSpace(v)
	case *string:
		raw = strings.TrimSpace(models.StringValue(v))
	case int:
		raw = strconv.Itoa(v)
	case int64:
		raw = strconv.FormatInt(v, 10)
	case float64:
		raw = strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.IsZero() {
			return "", nil
		}
		raw = v.Format(dateLayout)
	default:
		return "", invalidFilter(def, "unsupported value type %T", value)
	}
	if raw == "" {
		return "", nil
	}

	switch def.Kind {
	case FilterNumber:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return "", invalidFilter(def, "%q is not a number", raw)
		}
	case FilterDate:
		if _, err := time.Parse(dateLayout, raw); err != nil {
			t, rfcErr := time.Parse(time.RFC3339, raw)
			if rfcErr != nil {
				return "", invalidFilter(def, "%q is not a date (YYYY-MM-DD)", raw)
			}
			raw = t.Format(dateLayout)
		}
	}
	if len(def.Options) > 0 && !containsString(def.Options, raw) {
		return "", invalidFilter(def, "%q is not one of %s", raw, strings.Join(def.Options, ", "))
	}
	return raw, nil
}

func invalidFilter(def FilterField, format string, args ...any) error {
	return appErrors.Clone(appErrors.ErrInvalidFilterValue, fmt.Sprintf("filter %s: %s", def.Name, fmt.Sprintf(format, args...)))
}

func copySort(s *models.SortSpec) *models.SortSpec {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
