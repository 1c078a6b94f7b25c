package contact

import (
	"context"
	"errors"
	"sync"
)

// ErrSubmissionPending is returned when Submit is called while an earlier
// submission of the same form has not resolved yet.
var ErrSubmissionPending = errors.New("contact: submission already pending")

type StatusKind string

const (
	StatusIdle    StatusKind = "idle"
	StatusPending StatusKind = "pending"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the single banner shown next to the form.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

// Form binds field values, per-field errors and the submission lifecycle of
// one contact form. Only one submission may be in flight at a time.
type Form struct {
	submitter Submitter
	onStatus  func(Status)

	mu     sync.Mutex
	fields Input
	errors map[string]string
	status Status
}

type FormOption func(*Form)

// WithStatusListener is called after every status transition.
func WithStatusListener(fn func(Status)) FormOption {
	return func(f *Form) { f.onStatus = fn }
}

// WithFormID sets the id sent along with every submission.
func WithFormID(id string) FormOption {
	return func(f *Form) { f.fields.ID = id }
}

func NewForm(submitter Submitter, opts ...FormOption) *Form {
	f := &Form{
		submitter: submitter,
		errors:    make(map[string]string),
		status:    Status{Kind: StatusIdle},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Form) Fields() Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Errors returns a copy of the current per-field errors.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// CanSubmit is false while a submission is pending; the submit control
// should be disabled accordingly.
func (f *Form) CanSubmit() bool {
	return f.Status().Kind != StatusPending
}

// SetField updates a field. Editing clears a finished banner back to idle.
// Fields cannot be edited while a submission is pending.
func (f *Form) SetField(field, value string) bool {
	f.mu.Lock()
	if f.status.Kind == StatusPending || !f.fields.set(field, value) {
		f.mu.Unlock()
		return false
	}
	changed := f.resetStatusLocked()
	status := f.status
	f.mu.Unlock()

	if changed {
		f.notify(status)
	}
	return true
}

// Blur validates a single field and records or clears its error.
func (f *Form) Blur(field string) *FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()

	fe := ValidateField(field, f.fields.value(field))
	if fe != nil {
		f.errors[field] = fe.Message
	} else {
		delete(f.errors, field)
	}
	return fe
}

// Submit validates every field and, if they pass, hands the input to the
// submitter once. The status is pending before the submitter is called and
// resolves to success or error afterwards. On success the fields are cleared;
// on failure they are kept for another attempt.
func (f *Form) Submit(ctx context.Context) (Result, error) {
	f.mu.Lock()
	if f.status.Kind == StatusPending {
		f.mu.Unlock()
		return Result{}, ErrSubmissionPending
	}

	changed := f.resetStatusLocked()
	input, verrs := Validate(f.fields)
	f.errors = verrs.ByField()
	if len(verrs) > 0 {
		status := f.status
		f.mu.Unlock()
		if changed {
			f.notify(status)
		}
		return Result{}, verrs
	}

	f.status = Status{Kind: StatusPending}
	f.mu.Unlock()
	f.notify(Status{Kind: StatusPending})

	res := f.submitter.Submit(ctx, input)

	f.mu.Lock()
	if res.OK() {
		f.status = Status{Kind: StatusSuccess, Message: res.Message}
		f.fields = Input{ID: f.fields.ID}
	} else {
		f.status = Status{Kind: StatusError, Message: res.Message}
	}
	status := f.status
	f.mu.Unlock()
	f.notify(status)

	return res, nil
}

func (f *Form) resetStatusLocked() bool {
	if f.status.Kind == StatusSuccess || f.status.Kind == StatusError {
		f.status = Status{Kind: StatusIdle}
		return true
	}
	return false
}

func (f *Form) notify(s Status) {
	if f.onStatus != nil {
		f.onStatus(s)
	}
}
