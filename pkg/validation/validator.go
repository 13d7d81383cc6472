package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// Validator is a descriptor list compiled once. It never reports
// configuration errors after New succeeds.
type Validator struct {
	fields   []model.Field
	compiled []fieldRules
	index    map[string]int
	registry *Registry
	logger   *zap.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry swaps the kind rule registry. Rules are resolved during New,
// so later registrations do not affect an existing Validator.
func WithRegistry(reg *Registry) Option {
	return func(v *Validator) {
		if reg != nil {
			v.registry = reg
		}
	}
}

// WithLogger sets the logger used for compile and validation diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New compiles fields. Every descriptor is checked and all problems are
// returned together, each as a *FieldError.
func New(fields []model.Field, opts ...Option) (*Validator, error) {
	v := &Validator{
		registry: builtinRegistry,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}

	v.fields = make([]model.Field, 0, len(fields))
	v.compiled = make([]fieldRules, 0, len(fields))
	v.index = make(map[string]int, len(fields))

	var errs []error
	for pos, field := range fields {
		// Names are keys into the data and the ErrorMap, so they are kept
		// exactly as declared.
		name := field.Name
		if strings.TrimSpace(name) == "" {
			errs = append(errs, &FieldError{Err: fmt.Errorf("%w (descriptor at index %d)", ErrMissingName, pos)})
			continue
		}
		if _, exists := v.index[name]; exists {
			errs = append(errs, &FieldError{Field: name, Err: ErrDuplicateField})
			continue
		}
		field = field.Clone()

		rules, err := compileField(v.registry, field, regexp.Compile)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		v.index[name] = len(v.fields)
		v.fields = append(v.fields, field)
		v.compiled = append(v.compiled, rules)
	}

	if err := errors.Join(errs...); err != nil {
		for _, fe := range FieldErrors(err) {
			v.logger.Warn("invalid field descriptor", zap.String("field", fe.Field), zap.Error(fe.Err))
		}
		return nil, err
	}

	v.logger.Debug("compiled form validator", zap.Int("fields", len(v.fields)))
	return v, nil
}

// MustNew is New that panics on configuration errors. Intended for
// descriptors embedded at build time.
func MustNew(fields []model.Field, opts ...Option) *Validator {
	v, err := New(fields, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Fields returns a copy of the compiled descriptors in declaration order.
func (v *Validator) Fields() []model.Field {
	if v == nil {
		return nil
	}
	out := make([]model.Field, len(v.fields))
	for i, field := range v.fields {
		out[i] = field.Clone()
	}
	return out
}

// Lookup returns the descriptor called name.
func (v *Validator) Lookup(name string) (model.Field, bool) {
	if v == nil {
		return model.Field{}, false
	}
	idx, ok := v.index[name]
	if !ok {
		return model.Field{}, false
	}
	return v.fields[idx].Clone(), true
}

// Field validates value against the descriptor called name. Unknown names
// are valid.
func (v *Validator) Field(name string, value any) string {
	if v == nil {
		return ""
	}
	idx, ok := v.index[name]
	if !ok {
		return ""
	}
	return v.compiled[idx].validate(model.Text(value))
}

// Form validates every descriptor against data.
func (v *Validator) Form(data model.Values) model.ErrorMap {
	errs := make(model.ErrorMap)
	if v == nil {
		return errs
	}
	for i, rules := range v.compiled {
		name := v.fields[i].Name
		if msg := rules.validate(data.Text(name)); msg != "" {
			errs[name] = msg
		}
	}
	v.logger.Debug("validated form", zap.Int("fields", len(v.compiled)), zap.Int("errors", len(errs)))
	return errs
}

// Normalize applies the normalisers of the kind rules matching name. Values
// of other types, and unknown names, are returned unchanged.
func (v *Validator) Normalize(name string, value any) any {
	if v == nil {
		return value
	}
	idx, ok := v.index[name]
	if !ok {
		return value
	}
	text, isText := value.(string)
	if !isText {
		return value
	}
	return v.compiled[idx].normalized(text)
}
