package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/testsupport"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

type stubDriver struct {
	inputs    []string
	passwords []string
	confirms  []bool
	selects   []int
	textareas []string
	infos     []string
	asked     []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.inputs) == 0 {
		return "", errors.New("unexpected input prompt: " + cfg.Message)
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.passwords) == 0 {
		return "", errors.New("unexpected password prompt: " + cfg.Message)
	}
	v := s.passwords[0]
	s.passwords = s.passwords[1:]
	return v, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.confirms) == 0 {
		return false, errors.New("unexpected confirm prompt: " + cfg.Message)
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.selects) == 0 {
		return 0, errors.New("unexpected select prompt: " + cfg.Message)
	}
	v := s.selects[0]
	s.selects = s.selects[1:]
	return v, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.textareas) == 0 {
		return "", errors.New("unexpected textarea prompt: " + cfg.Message)
	}
	v := s.textareas[0]
	s.textareas = s.textareas[1:]
	return v, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func signupValidator(t *testing.T) *validation.Validator {
	t.Helper()
	return testsupport.MustNewValidator(t, []model.Field{
		{Type: "text", Name: "fullName", Label: "Full Name", Required: true},
		{Type: "password", Name: "password", Label: "Password", Required: true},
		{Type: "select", Name: "country", Label: "Country", Required: true, Options: []string{"Portugal", "Spain"}},
		{Type: "textarea", Name: "bio", Label: "Bio", MaxLength: model.IntPtr(20)},
		{Type: "checkbox", Name: "terms", Label: "Terms", Required: true},
	})
}

func TestRender_RepromptsUntilValid(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"john", "john middle smith"},
		passwords: []string{"short", "Secret1!"},
		selects:   []int{1},
		textareas: []string{"hello"},
		confirms:  []bool{false, true},
	}
	r, err := New(signupValidator(t), WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! ", InfoPrefix: "> ", RequiredSuffix: " *"}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wantInfos := []string{
		"! " + validation.MsgFullNameParts,
		"! " + validation.MsgPasswordLength,
		"! Terms is required",
		"> Form submitted",
	}
	if diff := cmp.Diff(wantInfos, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	want := map[string]any{
		"fullName": "John Middle Smith",
		"password": "Secret1!",
		"country":  "Spain",
		"bio":      "hello",
		"terms":    true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_RequiredSuffixInPrompt(t *testing.T) {
	v := validation.MustNew([]model.Field{
		{Type: "text", Name: "nickname", Label: "Nickname"},
		{Type: "email", Name: "email", Required: true},
	})
	driver := &stubDriver{inputs: []string{"", "a@b.co"}}
	r, err := New(v, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Render(context.Background(), nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if diff := cmp.Diff([]string{"Nickname", "email *"}, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_OutputFormats(t *testing.T) {
	v := validation.MustNew([]model.Field{
		{Type: "text", Name: "city", Label: "City"},
		{Type: "number", Name: "age", Label: "Age"},
	})

	tests := []struct {
		name        string
		format      OutputFormat
		want        string
		contentType string
	}{
		{name: "form", format: OutputFormatFormURLEncoded, want: "age=30&city=Porto+Alegre", contentType: "application/x-www-form-urlencoded"},
		{name: "pretty", format: OutputFormatPrettyText, want: "age = 30\ncity = Porto Alegre\n", contentType: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := &stubDriver{inputs: []string{"Porto Alegre", "30"}}
			r, err := New(v, WithPromptDriver(driver), WithOutputFormat(tt.format))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if r.ContentType() != tt.contentType {
				t.Fatalf("content type = %q, want %q", r.ContentType(), tt.contentType)
			}
			out, err := r.Render(context.Background(), nil)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(out)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_PrefillUsedAsDefault(t *testing.T) {
	v := validation.MustNew([]model.Field{{Type: "text", Name: "city"}})
	driver := &defaultEchoDriver{}
	r, err := New(v, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := r.Render(context.Background(), model.Values{"city": "Lisbon"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), `"city": "Lisbon"`) {
		t.Fatalf("expected prefilled value in output, got %s", out)
	}
}

func TestRender_AbortPropagates(t *testing.T) {
	v := validation.MustNew([]model.Field{{Type: "text", Name: "city"}})
	r, err := New(v, WithPromptDriver(&abortDriver{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Render(context.Background(), nil); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	v := validation.MustNew([]model.Field{{Type: "text", Name: "city"}})
	if _, err := New(v, WithOutputFormat("xml")); !errors.Is(err, ErrInvalidOutputFormat) {
		t.Fatalf("expected ErrInvalidOutputFormat, got %v", err)
	}
}

type defaultEchoDriver struct{ stubDriver }

func (d *defaultEchoDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	return cfg.Default, nil
}

type abortDriver struct{ stubDriver }

func (*abortDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

type checkRecordingDriver struct {
	stubDriver
	checks map[string]Check
}

func (d *checkRecordingDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	d.checks[cfg.Message] = cfg.Validate
	return d.stubDriver.Input(ctx, cfg)
}

func (d *checkRecordingDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	d.checks[cfg.Message] = cfg.Validate
	return d.stubDriver.Confirm(ctx, cfg)
}

func TestRender_PassesFieldValidationToDriver(t *testing.T) {
	v := testsupport.MustNewValidator(t, []model.Field{
		{Type: "text", Name: "fullName", Label: "Full Name", Required: true},
		{Type: "checkbox", Name: "terms", Label: "Terms", Required: true},
	})
	driver := &checkRecordingDriver{
		stubDriver: stubDriver{inputs: []string{"John Middle Smith"}, confirms: []bool{true}},
		checks:     map[string]Check{},
	}
	r, err := New(v, WithPromptDriver(driver), WithTheme(Theme{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Render(context.Background(), nil); err != nil {
		t.Fatalf("Render: %v", err)
	}

	name := driver.checks["Full Name"]
	if name == nil {
		t.Fatalf("expected a check for the full name prompt")
	}
	if got := name("john"); got != validation.MsgFullNameParts {
		t.Fatalf("unexpected message %q", got)
	}
	if got := name("  john   middle smith "); got != "" {
		t.Fatalf("expected answer to pass after normalisation, got %q", got)
	}

	terms := driver.checks["Terms"]
	if terms == nil {
		t.Fatalf("expected a check for the terms prompt")
	}
	if got := terms("false"); got != "Terms is required" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := terms("true"); got != "" {
		t.Fatalf("expected accepted terms to pass, got %q", got)
	}
}

func TestRender_PrettyOnlyListsFormFields(t *testing.T) {
	v := testsupport.MustNewValidator(t, []model.Field{{Type: "text", Name: "city"}})
	driver := &stubDriver{inputs: []string{"Porto"}}
	r, err := New(v, WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := r.Render(context.Background(), model.Values{"city": "Lisbon", "token": "secret"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if diff := cmp.Diff("city = Porto\n", string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
