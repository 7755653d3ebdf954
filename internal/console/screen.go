package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/noah-isme/printshop-console/internal/service"
	"github.com/noah-isme/printshop-console/pkg/export"
)

type screen interface {
	Name() string
	FilterNames() []string
	SortNames() []string
	Load(ctx context.Context) error
	Loaded() bool
	Render(w io.Writer)
	Filter(ctx context.Context, field, value string) error
	Sort(ctx context.Context, field string) error
	Page(ctx context.Context, index int) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Clear(ctx context.Context) error
	Refresh(ctx context.Context) error
	Show(ctx context.Context, id int64, w io.Writer) error
	Create() form
	Edit(ctx context.Context, id int64) (form, error)
	Delete(ctx context.Context, id int64) error
	Export(format export.Format) (string, error)
}

type form interface {
	Title() string
	FieldNames() []string
	Set(name, value string) error
	Render(w io.Writer)
	Save(ctx context.Context) error
	State() service.FormState
}

// ResourceScreen binds one resource service and its collection to the console.
type ResourceScreen[T any, P any] struct {
	name       string
	svc        *service.ResourceService[T, P]
	collection *service.CollectionController[T]
	exports    *service.ExportQueue
	loaded     bool
}

// NewResourceScreen mounts a collection over svc. exports may be nil, in
// which case export is refused.
func NewResourceScreen[T any, P any](svc *service.ResourceService[T, P], exports *service.ExportQueue) *ResourceScreen[T, P] {
	return &ResourceScreen[T, P]{
		name:       strings.ReplaceAll(svc.Resource().Plural, " ", "-"),
		svc:        svc,
		collection: svc.NewCollection(),
		exports:    exports,
	}
}

func (s *ResourceScreen[T, P]) Name() string { return s.name }

func (s *ResourceScreen[T, P]) FilterNames() []string {
	filters := s.collection.Filters()
	out := make([]string, 0, len(filters))
	for _, f := range filters {
		out = append(out, f.Name)
	}
	return out
}

func (s *ResourceScreen[T, P]) SortNames() []string { return s.collection.Sortable() }

func (s *ResourceScreen[T, P]) Loaded() bool { return s.loaded }

func (s *ResourceScreen[T, P]) Load(ctx context.Context) error {
	s.loaded = true
	return s.collection.Load(ctx)
}

func (s *ResourceScreen[T, P]) Render(w io.Writer) {
	renderCollection(w, s.svc.Resource(), s.collection.State())
}

func (s *ResourceScreen[T, P]) Filter(ctx context.Context, field, value string) error {
	return s.collection.SetFilter(ctx, field, value)
}

func (s *ResourceScreen[T, P]) Sort(ctx context.Context, field string) error {
	return s.collection.ToggleSort(ctx, field)
}

func (s *ResourceScreen[T, P]) Page(ctx context.Context, index int) error {
	return s.collection.SetPage(ctx, index)
}

func (s *ResourceScreen[T, P]) Next(ctx context.Context) error { return s.collection.NextPage(ctx) }

func (s *ResourceScreen[T, P]) Prev(ctx context.Context) error { return s.collection.PrevPage(ctx) }

func (s *ResourceScreen[T, P]) Clear(ctx context.Context) error { return s.collection.Clear(ctx) }

func (s *ResourceScreen[T, P]) Refresh(ctx context.Context) error {
	return s.collection.Refresh(ctx)
}

func (s *ResourceScreen[T, P]) Show(ctx context.Context, id int64, w io.Writer) error {
	record, err := s.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	renderRecord(w, s.svc.Resource(), *record)
	return nil
}

func (s *ResourceScreen[T, P]) Create() form {
	return &formView[T]{
		title: "new-" + strings.ReplaceAll(s.svc.Resource().Name, " ", "-"),
		ctl:   s.svc.NewCreateForm(),
	}
}

func (s *ResourceScreen[T, P]) Edit(ctx context.Context, id int64) (form, error) {
	ctl, err := s.svc.NewEditForm(ctx, id)
	if err != nil {
		return nil, err
	}
	return &formView[T]{
		title: fmt.Sprintf("%s#%d", strings.ReplaceAll(s.svc.Resource().Name, " ", "-"), id),
		ctl:   ctl,
	}, nil
}

func (s *ResourceScreen[T, P]) Delete(ctx context.Context, id int64) error {
	return s.svc.Delete(ctx, id, s.collection)
}

// Export queues the page on screen and returns the job id.
func (s *ResourceScreen[T, P]) Export(format export.Format) (string, error) {
	if s.exports == nil {
		return "", fmt.Errorf("export is not configured")
	}
	return service.QueuePage(s.exports, format, s.svc.Resource(), s.collection.State().Page)
}

// formView adapts a form controller to the console.
type formView[T any] struct {
	title string
	ctl   *service.FormController[*T]
}

func (f *formView[T]) Title() string { return f.title }

func (f *formView[T]) FieldNames() []string { return f.ctl.VisibleFields() }

func (f *formView[T]) Set(name, value string) error { return f.ctl.SetField(name, value) }

func (f *formView[T]) Render(w io.Writer) { renderForm(w, f.title, f.ctl) }

func (f *formView[T]) Save(ctx context.Context) error {
	_, err := f.ctl.Submit(ctx)
	return err
}

func (f *formView[T]) State() service.FormState { return f.ctl.State() }
