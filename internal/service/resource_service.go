package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/printshop-console/internal/models"
	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

// IdentityField carries the record id through form submissions.
const IdentityField = "id"

type resourceRepository[T any, P any] interface {
	List(ctx context.Context, query models.Query) (json.RawMessage, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, payload P) (*T, error)
	Update(ctx context.Context, id int64, payload P) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Column describes one rendered or exported column of a record.
type Column[T any] struct {
	Header string
	// Field is the sort key of the column, empty when not sortable.
	Field string
	Value func(T) string
}

// Resource declares everything screens need to know about a record type.
type Resource[T any, P any] struct {
	Name        string
	Plural      string
	Filters     []FilterField
	Sortable    []string
	DefaultSort *models.SortSpec
	Fields      []FormField
	Policy      PolicyTable
	Defaults    Values
	Columns     []Column[T]
	ID          func(T) int64
	ToValues    func(T) Values
	Bind        func(Values) P
}

// ResourceOptions carries the collaborators shared by every resource service.
type ResourceOptions struct {
	Validator    *validator.Validate
	Notifier     Notifier
	Confirmer    Confirmer
	ConfirmSaves bool
	PageSize     int
	Metrics      *MetricsService
	Logger       *zap.Logger
}

// ResourceService wires one record type to its REST capabilities and builds
// the controllers its screens use.
type ResourceService[T any, P any] struct {
	resource  Resource[T, P]
	repo      resourceRepository[T, P]
	validator *validator.Validate
	opts      ResourceOptions
	logger    *zap.Logger
}

// NewResourceService constructs a resource service.
func NewResourceService[T any, P any](resource Resource[T, P], repo resourceRepository[T, P], opts ResourceOptions) *ResourceService[T, P] {
	if opts.Validator == nil {
		opts.Validator = NewValidator()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Confirmer == nil {
		opts.Confirmer = AlwaysConfirm
	}
	return &ResourceService[T, P]{
		resource:  resource,
		repo:      repo,
		validator: opts.Validator,
		opts:      opts,
		logger:    opts.Logger.With(zap.String("resource", resource.Plural)),
	}
}

// Resource returns the declaration this service was built with.
func (s *ResourceService[T, P]) Resource() Resource[T, P] {
	return s.resource
}

// NewCollection mounts a collection controller over the list capability.
func (s *ResourceService[T, P]) NewCollection() *CollectionController[T] {
	return NewCollectionController[T](s.repo.List, CollectionOptions{
		Resource:       s.resource.Plural,
		Filters:        s.resource.Filters,
		Sortable:       s.resource.Sortable,
		DefaultSort:    s.resource.DefaultSort,
		PageSize:       s.opts.PageSize,
		Notifier:       s.opts.Notifier,
		Metrics:        s.opts.Metrics,
		Logger:         s.opts.Logger,
		FailureMessage: fmt.Sprintf("Failed to load %s.", s.resource.Plural),
	})
}

// Get fetches one record.
func (s *ResourceService[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.Warn("get failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return record, nil
}

// NewCreateForm opens an empty draft seeded with the resource defaults.
func (s *ResourceService[T, P]) NewCreateForm() *FormController[*T] {
	return NewFormController[*T](s.create, s.formOptions(s.resource.Defaults, nil,
		fmt.Sprintf("%s created.", capitalize(s.resource.Name)),
		fmt.Sprintf("Failed to create %s.", s.resource.Name)))
}

// NewEditForm loads the record and opens a draft over it.
func (s *ResourceService[T, P]) NewEditForm(ctx context.Context, id int64) (*FormController[*T], error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	identity := Values{IdentityField: formatInt(id)}
	return NewFormController[*T](s.update, s.formOptions(s.resource.ToValues(*record), identity,
		fmt.Sprintf("%s updated.", capitalize(s.resource.Name)),
		fmt.Sprintf("Failed to update %s.", s.resource.Name))), nil
}

func (s *ResourceService[T, P]) formOptions(initial, identity Values, success, failure string) FormOptions {
	opts := FormOptions{
		Resource:       s.resource.Name,
		Fields:         s.resource.Fields,
		Policy:         s.resource.Policy,
		Identity:       identity,
		Initial:        initial,
		Check:          s.check,
		Notifier:       s.opts.Notifier,
		SuccessMessage: success,
		FailureMessage: failure,
		Metrics:        s.opts.Metrics,
		Logger:         s.opts.Logger,
	}
	if s.opts.ConfirmSaves {
		opts.Confirmer = s.opts.Confirmer
		opts.ConfirmPrompt = fmt.Sprintf("Save %s?", s.resource.Name)
	}
	return opts
}

// check applies the payload constraints declared on the DTO.
func (s *ResourceService[T, P]) check(values Values) []appErrors.FieldError {
	return FieldErrors(s.validator.Struct(s.resource.Bind(values)))
}

func (s *ResourceService[T, P]) create(ctx context.Context, values Values) (*T, error) {
	return s.repo.Create(ctx, s.resource.Bind(values))
}

func (s *ResourceService[T, P]) update(ctx context.Context, values Values) (*T, error) {
	id := parseInt(values[IdentityField])
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrInternal, "update without record id")
	}
	return s.repo.Update(ctx, id, s.resource.Bind(values))
}

// Delete asks for confirmation, deletes the record, notifies the outcome and
// refreshes collection when given. A declined confirmation changes nothing
// and returns ErrCancelled.
func (s *ResourceService[T, P]) Delete(ctx context.Context, id int64, collection *CollectionController[T]) error {
	ok, err := s.opts.Confirmer.Confirm(ctx, fmt.Sprintf("Delete %s #%d?", s.resource.Name, id))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCancelled.Code, appErrors.ErrCancelled.Status, appErrors.ErrCancelled.Message)
	}
	if !ok {
		return appErrors.ErrCancelled
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete failed", zap.Int64("id", id), zap.Error(err))
		s.notify(fmt.Sprintf("Failed to delete %s.", s.resource.Name), NotificationError)
		return err
	}
	s.notify(fmt.Sprintf("%s deleted.", capitalize(s.resource.Name)), NotificationSuccess)

	if collection != nil {
		return collection.Refresh(ctx)
	}
	return nil
}

func (s *ResourceService[T, P]) notify(message string, kind NotificationKind) {
	if s.opts.Notifier != nil {
		s.opts.Notifier.Notify(message, kind)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
