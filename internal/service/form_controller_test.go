package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/printshop-console/pkg/errors"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	payloads []Values
	gate     chan struct{}
	err      error
}

func (f *fakeSubmitter) Submit(ctx context.Context, values Values) (*row, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, values)
	gate := f.gate
	err := f.err
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &row{ID: 7, Name: values["dieNumber"]}, nil
}

func (f *fakeSubmitter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

func newDieCutForm(sub *fakeSubmitter, initial Values, opts FormOptions) *FormController[*row] {
	opts.Resource = "die cut"
	opts.Fields = DieCutResource().Fields
	opts.Policy = dieCutPolicy
	opts.Initial = initial
	return NewFormController[*row](sub.Submit, opts)
}

func TestFormStatusChangeClearsHiddenFields(t *testing.T) {
	form := newDieCutForm(&fakeSubmitter{}, Values{"status": "ACTIVE", "dieNumber": "DC-1"}, FormOptions{})

	require.True(t, form.IsVisible("machine"))
	require.True(t, form.IsRequired("machine"))
	require.NoError(t, form.SetField("machine", "P5"))
	assert.Equal(t, "P5", form.Value("machine"))

	require.NoError(t, form.SetField("status", "INACTIVE"))
	assert.Equal(t, "", form.Value("machine"))
	assert.False(t, form.IsVisible("machine"))
	assert.False(t, form.IsRequired("machine"))

	require.NoError(t, form.SetField("status", "ACTIVE"))
	assert.Equal(t, "", form.Value("machine"), "cleared values are not restored")
	assert.Equal(t, "DC-1", form.Value("dieNumber"))
}

func TestFormInitialDraftDropsHiddenValues(t *testing.T) {
	form := newDieCutForm(&fakeSubmitter{}, Values{"status": "AWAY", "machine": "P7"}, FormOptions{})

	assert.Equal(t, "", form.Value("machine"))
	assert.NotContains(t, form.VisibleFields(), "machine")
	assert.Equal(t, []string{"dieNumber", "status"}, form.RequiredFields())
}

func TestFormSetFieldRejectsUnknownField(t *testing.T) {
	form := newDieCutForm(&fakeSubmitter{}, nil, FormOptions{})
	assert.ErrorIs(t, form.SetField("color", "red"), appErrors.ErrUnknownField)
}

func TestFormSubmitMissingRequiredFieldNamesExactlyThatField(t *testing.T) {
	sub := &fakeSubmitter{}
	notifier := &recordingNotifier{}
	form := newDieCutForm(sub, Values{"status": "ACTIVE", "dieNumber": "DC-1"}, FormOptions{Notifier: notifier})

	_, err := form.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []string{"machine"}, appErr.FieldNames())
	assert.Zero(t, sub.calls())
	assert.Zero(t, notifier.count(), "local validation is not notified")
	assert.Equal(t, FormEditingWithError, form.State())
}

func TestFormValidateChecksFieldKinds(t *testing.T) {
	form := newDieCutForm(&fakeSubmitter{}, Values{"status": "INACTIVE", "dieNumber": "DC-1"}, FormOptions{})

	require.NoError(t, form.SetField("repeatTeeth", "many"))
	require.NoError(t, form.SetField("projectId", "12"))
	err := form.Validate()
	require.Error(t, err)
	assert.Equal(t, []string{"repeatTeeth"}, appErrors.FromError(err).FieldNames())

	require.NoError(t, form.SetField("status", "BROKEN"))
	assert.Equal(t, []string{"repeatTeeth", "status"}, appErrors.FromError(form.Validate()).FieldNames())
}

func TestFormSubmitSendsVisibleSubsetPlusIdentity(t *testing.T) {
	sub := &fakeSubmitter{}
	notifier := &recordingNotifier{}
	form := newDieCutForm(sub, Values{"status": "ACTIVE", "dieNumber": "DC-9", "machine": "E5"}, FormOptions{
		Identity:       Values{IdentityField: "7"},
		Notifier:       notifier,
		SuccessMessage: "Die cut updated.",
	})
	require.NoError(t, form.SetField("status", "ARCHIVED"))

	record, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), record.ID)

	require.Equal(t, 1, sub.calls())
	payload := sub.payloads[0]
	assert.NotContains(t, payload, "machine")
	assert.Equal(t, "7", payload[IdentityField])
	assert.Equal(t, "ARCHIVED", payload["status"])
	assert.Equal(t, FormSaved, form.State())
	assert.Equal(t, []string{"Die cut updated."}, notifier.messages)
	assert.Equal(t, []NotificationKind{NotificationSuccess}, notifier.kinds)
}

func TestFormSubmittingBlocksEditsAndSavedIsTerminal(t *testing.T) {
	sub := &fakeSubmitter{gate: make(chan struct{})}
	form := newDieCutForm(sub, Values{"status": "INACTIVE", "dieNumber": "DC-1"}, FormOptions{})

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return form.State() == FormSubmitting }, time.Second, time.Millisecond)

	assert.ErrorIs(t, form.SetField("notes", "late edit"), appErrors.ErrSubmitInProgress)
	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrSubmitInProgress)

	close(sub.gate)
	require.NoError(t, <-done)
	assert.Equal(t, FormSaved, form.State())
	assert.Equal(t, 1, sub.calls())

	assert.ErrorIs(t, form.SetField("notes", "after save"), appErrors.ErrDraftSaved)
	_, err = form.Submit(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrDraftSaved)
}

func TestFormServerValidationKeepsDraftAndNotifies(t *testing.T) {
	sub := &fakeSubmitter{err: appErrors.ServerValidation(400, "", []appErrors.FieldError{{Field: "dieNumber", Message: "already exists"}})}
	notifier := &recordingNotifier{}
	form := newDieCutForm(sub, Values{"status": "INACTIVE", "dieNumber": "DC-1"}, FormOptions{
		Notifier:       notifier,
		FailureMessage: "Failed to create die cut.",
	})

	_, err := form.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.IsServerValidation(err))
	assert.Equal(t, FormEditingWithError, form.State())
	assert.Equal(t, "DC-1", form.Value("dieNumber"))
	assert.Equal(t, []string{"dieNumber"}, form.LastError().FieldNames())
	assert.Equal(t, []string{"Failed to create die cut. dieNumber already exists"}, notifier.messages)

	sub.err = nil
	require.NoError(t, form.SetField("dieNumber", "DC-2"))
	assert.Equal(t, FormEditingWithError, form.State())
	_, err = form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FormSaved, form.State())
	assert.Nil(t, form.LastError())
}

func TestFormTransportFailureNotifies(t *testing.T) {
	sub := &fakeSubmitter{err: appErrors.Transport(errors.New("dial tcp"), 0, "backend unreachable")}
	notifier := &recordingNotifier{}
	form := newDieCutForm(sub, Values{"status": "INACTIVE", "dieNumber": "DC-1"}, FormOptions{Notifier: notifier})

	_, err := form.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"Failed to save die cut. (backend unreachable)"}, notifier.messages)
	assert.Equal(t, []NotificationKind{NotificationError}, notifier.kinds)
}

func TestFormConfirmDeclinedCancels(t *testing.T) {
	sub := &fakeSubmitter{}
	var prompt string
	form := newDieCutForm(sub, Values{"status": "INACTIVE", "dieNumber": "DC-1"}, FormOptions{
		Confirmer: ConfirmFunc(func(ctx context.Context, p string) (bool, error) {
			prompt = p
			return false, nil
		}),
	})

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrCancelled)
	assert.Equal(t, "Save die cut?", prompt)
	assert.Zero(t, sub.calls())
	assert.Equal(t, FormEditing, form.State())
	require.NoError(t, form.SetField("notes", "still editable"))
}

func TestFormCheckHookRunsAfterRequiredChecks(t *testing.T) {
	sub := &fakeSubmitter{}
	form := newDieCutForm(sub, Values{"status": "INACTIVE"}, FormOptions{
		Check: func(v Values) []appErrors.FieldError {
			return []appErrors.FieldError{
				{Field: "dieNumber", Message: "is required"},
				{Field: "notes", Message: "too long"},
			}
		},
	})

	err := form.Validate()
	require.Error(t, err)
	assert.Equal(t, []string{"dieNumber", "notes"}, appErrors.FromError(err).FieldNames())
}

func TestFormResetDiscardsPendingResult(t *testing.T) {
	sub := &fakeSubmitter{gate: make(chan struct{})}
	form := newDieCutForm(sub, Values{"status": "INACTIVE", "dieNumber": "DC-1"}, FormOptions{})

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return form.State() == FormSubmitting }, time.Second, time.Millisecond)

	form.Reset(Values{"status": "ACTIVE", "dieNumber": "DC-5"}, nil)
	close(sub.gate)
	require.NoError(t, <-done)

	assert.Equal(t, FormEditing, form.State())
	assert.Equal(t, "DC-5", form.Value("dieNumber"))
}

func TestRawMaterialPolicy(t *testing.T) {
	form := NewFormController[*row]((&fakeSubmitter{}).Submit, FormOptions{
		Resource: "raw material",
		Fields:   RawMaterialResource().Fields,
		Policy:   rawMaterialPolicy,
		Initial:  Values{"status": "AVAILABLE"},
	})

	assert.True(t, form.IsRequired("warehouseLocation"))
	assert.False(t, form.IsVisible("assignedMachine"))
	require.NoError(t, form.SetField("warehouseLocation", "A-12"))

	require.NoError(t, form.SetField("status", "READY"))
	assert.Equal(t, "", form.Value("warehouseLocation"))
	assert.True(t, form.IsRequired("assignedMachine"))
	require.NoError(t, form.SetField("assignedMachine", "P7"))

	require.NoError(t, form.SetField("status", "IN_USE"))
	assert.Equal(t, "P7", form.Value("assignedMachine"), "field stays when the new status keeps it visible")

	require.NoError(t, form.SetField("status", "COMPLAINT"))
	assert.Equal(t, "", form.Value("assignedMachine"))
	assert.NotEmpty(t, form.Advisory())
	assert.NotContains(t, form.VisibleFields(), "warehouseLocation")
	assert.NotContains(t, form.VisibleFields(), "assignedMachine")
}
