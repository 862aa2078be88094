package dashboard

import (
	"context"
	"errors"
	"sync"
)

// DialogState is the state of an add/edit dialog.
type DialogState int

const (
	Closed DialogState = iota
	Open
	Submitting
)

var (
	// ErrDialogClosed is returned by Submit when nothing is being edited.
	ErrDialogClosed = errors.New("dialog is not open")
	// ErrInvalidForm is returned by Submit when the draft has field errors.
	ErrInvalidForm = errors.New("form has errors")
)

// Dialog edits a draft of T. A failed submit leaves it open with the field
// errors or the server's message.
type Dialog[T any] struct {
	fallback string

	mutex       sync.Mutex
	state       DialogState
	draft       T
	fieldErrors map[string]string
	alert       string
}

// NewDialog returns a closed dialog. fallback is the alert shown when a
// failed submit carries no server message.
func NewDialog[T any](fallback string) *Dialog[T] {
	return &Dialog[T]{fallback: fallback}
}

// Open starts editing draft and clears old errors.
func (d *Dialog[T]) Open(draft T) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.state = Open
	d.draft = draft
	d.fieldErrors = nil
	d.alert = ""
}

// Close discards the draft.
func (d *Dialog[T]) Close() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	var zero T
	d.state = Closed
	d.draft = zero
	d.fieldErrors = nil
	d.alert = ""
}

// Edit mutates the draft in place while the dialog is open.
func (d *Dialog[T]) Edit(fn func(draft *T)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.state == Open {
		fn(&d.draft)
	}
}

// Submit validates the draft and sends it. On success the dialog closes and
// the sent draft is returned.
func (d *Dialog[T]) Submit(ctx context.Context, validate func(*T) map[string]string,
	send func(ctx context.Context, draft *T) error) (T, error) {
	var zero T

	d.mutex.Lock()
	if d.state != Open {
		d.mutex.Unlock()
		return zero, ErrDialogClosed
	}
	draft := d.draft
	if validate != nil {
		if errs := validate(&draft); len(errs) > 0 {
			d.fieldErrors = errs
			d.mutex.Unlock()
			return zero, ErrInvalidForm
		}
	}
	d.state = Submitting
	d.fieldErrors = nil
	d.alert = ""
	d.mutex.Unlock()

	err := send(ctx, &draft)

	d.mutex.Lock()
	defer d.mutex.Unlock()
	if err != nil {
		d.state = Open
		d.alert = errorText(err, d.fallback)
		return zero, err
	}
	d.state = Closed
	d.draft = zero
	return draft, nil
}

func (d *Dialog[T]) State() DialogState {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.state
}

// Draft returns a copy of the draft.
func (d *Dialog[T]) Draft() T {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.draft
}

// FieldErrors returns the errors of the last rejected submit, keyed by field.
func (d *Dialog[T]) FieldErrors() map[string]string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	out := make(map[string]string, len(d.fieldErrors))
	for k, v := range d.fieldErrors {
		out[k] = v
	}
	return out
}

// Alert is the message of the last failed send, or "".
func (d *Dialog[T]) Alert() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.alert
}
