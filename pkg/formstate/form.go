package formstate

import (
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// Notifier receives submit outcomes.
type Notifier interface {
	Submitted(values model.Values)
	ErrorsPresent(errs model.ErrorMap)
}

// NotifierFuncs adapts plain functions to Notifier. Nil funcs are skipped.
type NotifierFuncs struct {
	OnSubmitted     func(values model.Values)
	OnErrorsPresent func(errs model.ErrorMap)
}

func (n NotifierFuncs) Submitted(values model.Values) {
	if n.OnSubmitted != nil {
		n.OnSubmitted(values)
	}
}

func (n NotifierFuncs) ErrorsPresent(errs model.ErrorMap) {
	if n.OnErrorsPresent != nil {
		n.OnErrorsPresent(errs)
	}
}

// Form is a mutable handle over State, safe for concurrent Dispatch calls.
type Form struct {
	mu        sync.Mutex
	validator *validation.Validator
	state     State
	notifier  Notifier
	logger    *zap.Logger
}

// Option configures a Form.
type Option func(*Form)

// WithNotifier registers the submit outcome receiver.
func WithNotifier(n Notifier) Option {
	return func(f *Form) {
		f.notifier = n
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithValues seeds the initial values.
func WithValues(values model.Values) Option {
	return func(f *Form) {
		f.state = Initial(f.validator, values)
	}
}

// New constructs a Form for v.
func New(v *validation.Validator, opts ...Option) *Form {
	f := &Form{
		validator: v,
		state:     Initial(v, nil),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// State returns a copy of the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

// Dispatch applies ev and returns the resulting state. Submit events notify
// the registered Notifier after the state is stored.
func (f *Form) Dispatch(ev Event) State {
	f.mu.Lock()
	f.state = Reduce(f.validator, f.state, ev)
	snapshot := f.state.Clone()
	f.mu.Unlock()

	if _, ok := ev.(Submit); !ok {
		return snapshot
	}

	f.logger.Debug("form submit",
		zap.Stringer("outcome", snapshot.Outcome),
		zap.Strings("invalid", snapshot.Errors.Fields()),
	)
	if f.notifier == nil {
		return snapshot
	}
	switch snapshot.Outcome {
	case OutcomeSubmitted:
		f.notifier.Submitted(snapshot.Values.Clone())
	case OutcomeErrorsPresent:
		f.notifier.ErrorsPresent(snapshot.Errors.Clone())
	}
	return snapshot
}
