package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

// FieldKind constrains what a form field accepts.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldInteger
	FieldNumber
	FieldDate
)

// FormField declares one editable field of a resource.
type FormField struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []string
}

// Values is a draft: field name to raw input. The empty string is the
// neutral value of every field.
type Values map[string]string

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// FormState is the lifecycle of one draft.
type FormState string

const (
	FormEditing          FormState = "editing"
	FormSubmitting       FormState = "submitting"
	FormSaved            FormState = "saved"
	FormEditingWithError FormState = "editing_with_error"
)

// SubmitFunc is the create or update capability. values holds the visible
// fields plus identity fields.
type SubmitFunc[T any] func(ctx context.Context, values Values) (T, error)

// FormOptions configures a FormController.
type FormOptions struct {
	Resource string
	Fields   []FormField
	Policy   PolicyTable
	// Identity fields (such as id) are passed to the capability untouched.
	Identity Values
	Initial  Values
	// Check runs resource specific constraints after the required checks.
	Check          func(Values) []appErrors.FieldError
	Confirmer      Confirmer
	ConfirmPrompt  string
	Notifier       Notifier
	SuccessMessage string
	FailureMessage string
	Metrics        *MetricsService
	Logger         *zap.Logger
}

// FormController keeps a draft record and derives, from the draft status
// alone, which fields are visible, which are required and which are wiped.
//
// State machine: editing -> submitting -> saved | editing_with_error. While
// submitting, edits and further submits are refused. Saved is terminal.
type FormController[T any] struct {
	submit      SubmitFunc[T]
	opts        FormOptions
	fields      map[string]FormField
	conditional map[string]struct{}
	logger      *zap.Logger

	mu       sync.Mutex
	draft    Values
	identity Values
	visible  map[string]bool
	required map[string]bool
	state    FormState
	lastErr  *appErrors.Error
	seq      uint64
}

// NewFormController builds a controller over submit with the initial draft
// taken from opts.Initial.
func NewFormController[T any](submit SubmitFunc[T], opts FormOptions) *FormController[T] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.SuccessMessage == "" {
		opts.SuccessMessage = fmt.Sprintf("%s saved.", opts.Resource)
	}
	if opts.FailureMessage == "" {
		opts.FailureMessage = fmt.Sprintf("Failed to save %s.", opts.Resource)
	}
	fields := make(map[string]FormField, len(opts.Fields))
	for _, f := range opts.Fields {
		fields[f.Name] = f
	}
	f := &FormController[T]{
		submit:      submit,
		opts:        opts,
		fields:      fields,
		conditional: opts.Policy.Conditional(),
		logger:      opts.Logger.With(zap.String("resource", opts.Resource)),
	}
	f.reset(opts.Initial, opts.Identity)
	return f
}

// Reset replaces the draft, e.g. with a freshly fetched record, and returns
// the form to editing. A submission still in flight is ignored on return.
func (f *FormController[T]) Reset(values Values, identity Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.reset(values, identity)
}

func (f *FormController[T]) reset(values Values, identity Values) {
	f.draft = Values{}
	for _, field := range f.opts.Fields {
		f.draft[field.Name] = strings.TrimSpace(values[field.Name])
	}
	f.identity = identity.clone()
	f.state = FormEditing
	f.lastErr = nil
	f.applyPolicy()
}

// applyPolicy recomputes visibility and wipes every hidden field.
func (f *FormController[T]) applyPolicy() {
	policy := f.opts.Policy.For(f.draft[StatusField])
	f.visible = map[string]bool{}
	f.required = map[string]bool{}
	for _, field := range f.opts.Fields {
		if _, conditional := f.conditional[field.Name]; conditional {
			continue
		}
		f.visible[field.Name] = true
		if field.Required {
			f.required[field.Name] = true
		}
	}
	for _, name := range policy.Visible {
		f.visible[name] = true
	}
	for _, name := range policy.Required {
		if f.visible[name] {
			f.required[name] = true
		}
	}
	for name := range f.draft {
		if !f.visible[name] {
			f.draft[name] = ""
		}
	}
}

// SetField updates one draft field. Changing the status re-evaluates the
// policy and clears every field the new status hides.
func (f *FormController[T]) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	if _, ok := f.fields[name]; !ok {
		return appErrors.Clone(appErrors.ErrUnknownField, fmt.Sprintf("unknown field %q", name))
	}
	f.draft[name] = strings.TrimSpace(value)
	if name == StatusField {
		f.applyPolicy()
	}
	return nil
}

func (f *FormController[T]) editableLocked() error {
	switch f.state {
	case FormSubmitting:
		return appErrors.ErrSubmitInProgress
	case FormSaved:
		return appErrors.ErrDraftSaved
	}
	return nil
}

// Value reads one draft field.
func (f *FormController[T]) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft[name]
}

// Values returns a copy of the whole draft.
func (f *FormController[T]) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.clone()
}

// Fields lists the declared fields in order.
func (f *FormController[T]) Fields() []FormField {
	out := make([]FormField, len(f.opts.Fields))
	copy(out, f.opts.Fields)
	return out
}

// VisibleFields lists visible fields in declaration order.
func (f *FormController[T]) VisibleFields() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderedLocked(f.visible)
}

// RequiredFields lists required fields in declaration order.
func (f *FormController[T]) RequiredFields() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderedLocked(f.required)
}

func (f *FormController[T]) orderedLocked(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for _, field := range f.opts.Fields {
		if set[field.Name] {
			out = append(out, field.Name)
		}
	}
	return out
}

// IsVisible reports whether name is shown for the current status.
func (f *FormController[T]) IsVisible(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible[name]
}

// IsRequired reports whether name must be filled for the current status.
func (f *FormController[T]) IsRequired(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.required[name]
}

// Advisory returns the read-only note of the current status, if any.
func (f *FormController[T]) Advisory() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opts.Policy.For(f.draft[StatusField]).Advisory
}

// State reports the lifecycle state.
func (f *FormController[T]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastError returns the error of the last failed submit, if any.
func (f *FormController[T]) LastError() *appErrors.Error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Validate reports every visible required field left empty and every value
// its field kind rejects.
func (f *FormController[T]) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *FormController[T]) validateLocked() error {
	var problems []appErrors.FieldError
	seen := map[string]bool{}
	add := func(fe appErrors.FieldError) {
		if seen[fe.Field] {
			return
		}
		seen[fe.Field] = true
		problems = append(problems, fe)
	}

	for _, field := range f.opts.Fields {
		if !f.visible[field.Name] {
			continue
		}
		value := f.draft[field.Name]
		if value == "" {
			if f.required[field.Name] {
				add(appErrors.FieldError{Field: field.Name, Message: "is required"})
			}
			continue
		}
		if msg := checkKind(field, value); msg != "" {
			add(appErrors.FieldError{Field: field.Name, Message: msg})
		}
	}
	if f.opts.Check != nil {
		for _, fe := range f.opts.Check(f.payloadLocked()) {
			add(fe)
		}
	}
	if len(problems) > 0 {
		return appErrors.Validation(problems)
	}
	return nil
}

func checkKind(field FormField, value string) string {
	switch field.Kind {
	case FieldInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return "must be a whole number"
		}
	case FieldNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "must be a number"
		}
	case FieldDate:
		if _, err := time.Parse(dateLayout, value); err != nil {
			return "must be a date (YYYY-MM-DD)"
		}
	}
	if len(field.Options) > 0 && !containsString(field.Options, value) {
		return "must be one of " + strings.Join(field.Options, ", ")
	}
	return ""
}

// payloadLocked is the visible subset of the draft plus identity fields.
func (f *FormController[T]) payloadLocked() Values {
	out := Values{}
	for name, value := range f.draft {
		if f.visible[name] {
			out[name] = value
		}
	}
	for name, value := range f.identity {
		out[name] = value
	}
	return out
}

// Submit validates the draft and hands the visible fields to the capability.
// Validation failures stay local; capability failures are notified and keep
// the draft so the user can correct and resubmit.
func (f *FormController[T]) Submit(ctx context.Context) (T, error) {
	var zero T

	f.mu.Lock()
	if err := f.editableLocked(); err != nil {
		f.mu.Unlock()
		return zero, err
	}
	if err := f.validateLocked(); err != nil {
		f.state = FormEditingWithError
		f.lastErr = appErrors.FromError(err)
		f.mu.Unlock()
		f.opts.Metrics.IncSubmit(f.opts.Resource, outcomeInvalid)
		return zero, err
	}
	previous := f.state
	f.state = FormSubmitting
	f.seq++
	seq := f.seq
	payload := f.payloadLocked()
	f.mu.Unlock()

	if f.opts.Confirmer != nil {
		ok, err := f.opts.Confirmer.Confirm(ctx, f.confirmPrompt())
		if err != nil || !ok {
			f.mu.Lock()
			if seq == f.seq {
				f.state = previous
			}
			f.mu.Unlock()
			f.opts.Metrics.IncSubmit(f.opts.Resource, outcomeCancelled)
			if err != nil {
				return zero, appErrors.Wrap(err, appErrors.ErrCancelled.Code, appErrors.ErrCancelled.Status, appErrors.ErrCancelled.Message)
			}
			return zero, appErrors.ErrCancelled
		}
	}

	record, err := f.submit(ctx, payload)

	f.mu.Lock()
	if seq != f.seq {
		f.mu.Unlock()
		f.logger.Debug("discarding stale submit result", zap.Uint64("seq", seq))
		return record, err
	}
	if err != nil {
		f.state = FormEditingWithError
		f.lastErr = appErrors.FromError(err)
		f.mu.Unlock()

		f.opts.Metrics.IncSubmit(f.opts.Resource, outcomeError)
		f.logger.Warn("submit failed", zap.Error(err))
		if f.opts.Notifier != nil {
			f.opts.Notifier.Notify(failureSummary(f.opts.FailureMessage, err), NotificationError)
		}
		return zero, err
	}
	f.state = FormSaved
	f.lastErr = nil
	f.mu.Unlock()

	f.opts.Metrics.IncSubmit(f.opts.Resource, outcomeSuccess)
	if f.opts.Notifier != nil {
		f.opts.Notifier.Notify(f.opts.SuccessMessage, NotificationSuccess)
	}
	return record, nil
}

func (f *FormController[T]) confirmPrompt() string {
	if f.opts.ConfirmPrompt != "" {
		return f.opts.ConfirmPrompt
	}
	return fmt.Sprintf("Save %s?", f.opts.Resource)
}

// failureSummary appends backend field messages to the notice.
func failureSummary(base string, err error) string {
	appErr := appErrors.FromError(err)
	if appErrors.IsServerValidation(err) && len(appErr.Fields) > 0 {
		parts := make([]string, 0, len(appErr.Fields))
		for _, fe := range appErr.Fields {
			parts = append(parts, fmt.Sprintf("%s %s", fe.Field, fe.Message))
		}
		return fmt.Sprintf("%s %s", base, strings.Join(parts, "; "))
	}
	if appErrors.IsTransport(err) && appErr.Message != "" {
		return fmt.Sprintf("%s (%s)", base, appErr.Message)
	}
	return base
}
