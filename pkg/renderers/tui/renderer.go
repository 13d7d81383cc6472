package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcheck/pkg/formstate"
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// Renderer prompts every field of a validator's form in declaration order.
type Renderer struct {
	validator    *validation.Validator
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	logger       *zap.Logger
	notifier     formstate.Notifier
}

// New constructs a renderer over v.
func New(v *validation.Validator, opts ...Option) (*Renderer, error) {
	if v == nil {
		return nil, fmt.Errorf("tui: validator is required")
	}
	r := &Renderer{
		validator:    v,
		driver:       NewSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if _, err := ParseOutputFormat(string(r.outputFormat)); err != nil {
		return nil, fmt.Errorf("%w: %q", err, r.outputFormat)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts each field until it is valid, submits the form and returns
// the serialised values.
func (r *Renderer) Render(ctx context.Context, prefill model.Values) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	form := formstate.New(r.validator,
		formstate.WithValues(prefill),
		formstate.WithLogger(r.logger),
		formstate.WithNotifier(r.notifier),
	)

	for _, field := range r.validator.Fields() {
		if err := r.promptField(ctx, form, field); err != nil {
			return nil, err
		}
	}

	state := form.Dispatch(formstate.Submit{})
	if state.Outcome != formstate.OutcomeSubmitted {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+state.FormError()); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSubmitBlocked, state.Errors.Fields())
	}
	if err := r.driver.Info(ctx, r.theme.InfoPrefix+"Form submitted"); err != nil {
		return nil, err
	}
	return r.serialize(r.validator.Fields(), state.Values)
}

func (r *Renderer) promptField(ctx context.Context, form *formstate.Form, field model.Field) error {
	for {
		current := form.State().Values[field.Name]
		value, err := r.ask(ctx, field, current)
		if err != nil {
			return err
		}

		form.Dispatch(formstate.Change{Name: field.Name, Value: value})
		state := form.Dispatch(formstate.Blur{Name: field.Name})

		msg := state.VisibleError(field.Name)
		if msg == "" {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
}

func (r *Renderer) ask(ctx context.Context, field model.Field, current any) (any, error) {
	message := displayLabel(field)
	if field.Required {
		message += r.theme.RequiredSuffix
	}
	check := r.fieldCheck(field)

	switch {
	case field.Is(model.FieldTypeSelect) && len(field.Options) > 0:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, model.Text(current)),
			Help:         field.Placeholder,
			Validate:     check,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", nil
		}
		return field.Options[idx], nil
	case field.Is(model.FieldTypeCheckbox):
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message:  message,
			Default:  model.Bool(current),
			Help:     field.Placeholder,
			Validate: check,
		})
	case field.Is(model.FieldTypePassword):
		return r.driver.Password(ctx, InputConfig{
			Message:  message,
			Help:     field.Placeholder,
			Validate: check,
		})
	case field.Is(model.FieldTypeTextarea):
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message:  message,
			Default:  model.Text(current),
			Help:     field.Placeholder,
			Validate: check,
		})
	default:
		return r.driver.Input(ctx, InputConfig{
			Message:  message,
			Default:  model.Text(current),
			Help:     field.Placeholder,
			Validate: check,
		})
	}
}

func (r *Renderer) serialize(fields []model.Field, values model.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for _, field := range fields {
			form.Set(field.Name, values.Text(field.Name))
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return prettyPrint(fields, values), nil
	default:
		ordered := make(map[string]any, len(fields))
		for _, field := range fields {
			ordered[field.Name] = values[field.Name]
		}
		return json.MarshalIndent(ordered, "", "  ")
	}
}

func prettyPrint(fields []model.Field, values model.Values) []byte {
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for _, name := range names {
		fmt.Fprintf(&buf, "%s = %s\n", name, values.Text(name))
	}
	return buf.Bytes()
}

// fieldCheck validates an answer the way a blur would: normalised first.
func (r *Renderer) fieldCheck(field model.Field) Check {
	return func(value string) string {
		return r.validator.Field(field.Name, r.validator.Normalize(field.Name, value))
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}
