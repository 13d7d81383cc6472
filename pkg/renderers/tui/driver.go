package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// Check returns the validation message for a raw answer, or "" when the
// answer is acceptable.
type Check func(value string) string

// InputConfig configures a single-line or password prompt.
type InputConfig struct {
	Message  string
	Default  string
	Help     string
	Validate Check
}

// ConfirmConfig configures a yes/no prompt. Validate receives "true" or "false".
type ConfirmConfig struct {
	Message  string
	Default  bool
	Help     string
	Validate Check
}

// SelectConfig configures a single-select prompt. Validate receives the
// chosen option.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
	Validate     Check
}

// TextAreaConfig configures a multi-line prompt.
type TextAreaConfig struct {
	Message  string
	Default  string
	Help     string
	Validate Check
}

// PromptDriver asks for one answer at a time. Implementations that support
// inline validation re-ask until the config's Validate check passes.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

type askFunc func(p survey.Prompt, response any, opts ...survey.AskOpt) error

type surveyDriver struct {
	ask  askFunc
	opts []survey.AskOpt
	out  io.Writer
}

// SurveyOption configures the survey driver.
type SurveyOption func(*surveyDriver)

// WithStdio routes prompts and Info messages through the given streams.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) SurveyOption {
	return func(d *surveyDriver) {
		d.opts = append(d.opts, survey.WithStdio(in, out, errOut))
		d.out = out
	}
}

// NewSurveyDriver returns a driver backed by survey prompts. Validate checks
// are installed as survey validators, so invalid answers are re-asked inline.
func NewSurveyDriver(opts ...SurveyOption) PromptDriver {
	d := &surveyDriver{ask: survey.AskOne, out: os.Stdout}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var out string
	err := d.prompt(ctx, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &out, cfg.Validate)
	return out, err
}

func (d *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	var out string
	err := d.prompt(ctx, &survey.Password{Message: cfg.Message, Help: cfg.Help}, &out, cfg.Validate)
	return out, err
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var out bool
	err := d.prompt(ctx, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &out, cfg.Validate)
	return out, err
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	var idx int
	if err := d.prompt(ctx, prompt, &idx, cfg.Validate); err != nil {
		return -1, err
	}
	return idx, nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var out string
	err := d.prompt(ctx, &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &out, cfg.Validate)
	return out, err
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func (d *surveyDriver) prompt(ctx context.Context, p survey.Prompt, response any, check Check) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := append([]survey.AskOpt(nil), d.opts...)
	if check != nil {
		opts = append(opts, survey.WithValidator(answerValidator(check)))
	}
	return translateSurveyErr(d.ask(p, response, opts...))
}

// answerValidator adapts a Check to survey's validator signature.
func answerValidator(check Check) survey.Validator {
	return func(ans any) error {
		if msg := check(answerText(ans)); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

func answerText(ans any) string {
	if opt, ok := ans.(survey.OptionAnswer); ok {
		return opt.Value
	}
	return model.Text(ans)
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
