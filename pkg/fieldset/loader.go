package fieldset

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

//go:embed defaults/*
var embeddedDefaults embed.FS

const (
	defaultDocument   = "registration.yaml"
	maxSanitizePasses = 8
)

// labelPolicy strips markup from labels; they are interpolated into messages
// that presenters may write into HTML.
var labelPolicy = bluemonday.StrictPolicy()

type document struct {
	Fields []model.Field `json:"fields" yaml:"fields"`
}

// DefaultFS returns the bundled descriptor documents.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(embeddedDefaults, "defaults")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default returns the bundled registration form.
func Default() ([]model.Field, error) {
	return LoadFS(DefaultFS(), defaultDocument)
}

// LoadFile reads and parses a descriptor document from disk.
func LoadFile(path string) ([]model.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fieldset: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses a descriptor document from fsys.
func LoadFS(fsys fs.FS, path string) ([]model.Field, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fieldset: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("fieldset: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML descriptor document. source is only used in
// error messages.
func Parse(data []byte, source string) ([]model.Field, error) {
	fields, err := decode(data, source)
	if err != nil {
		return nil, err
	}
	return finalize(fields, source)
}

func decode(data []byte, source string) ([]model.Field, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	switch trimmed[0] {
	case '[':
		var fields []model.Field
		if err := json.Unmarshal(trimmed, &fields); err == nil {
			return fields, nil
		}
	case '{':
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err == nil {
			return doc.Fields, nil
		}
	}

	var fields []model.Field
	listErr := yaml.Unmarshal(trimmed, &fields)
	if listErr == nil {
		return fields, nil
	}
	var doc document
	docErr := yaml.Unmarshal(trimmed, &doc)
	if docErr == nil {
		return doc.Fields, nil
	}

	// Report the error of the shape the document looks like.
	cause := docErr
	if trimmed[0] == '-' || trimmed[0] == '[' {
		cause = listErr
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, source, cause)
}

// finalize normalises the decoded descriptors and fails fast on any
// configuration problem.
func finalize(fields []model.Field, source string) ([]model.Field, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s declares no fields", ErrEmptyDocument, source)
	}
	out := make([]model.Field, 0, len(fields))
	for _, field := range fields {
		field = normalizeField(field)
		if field.Is(model.FieldTypeSelect) && len(field.Options) == 0 {
			return nil, fmt.Errorf("%w: %s field %q", ErrMissingOptions, source, field.Name)
		}
		out = append(out, field)
	}

	if _, err := validation.New(out); err != nil {
		return nil, fmt.Errorf("fieldset: %s: %w", source, err)
	}
	return out, nil
}

func normalizeField(field model.Field) model.Field {
	field = field.Clone()
	field.Name = strings.TrimSpace(field.Name)
	field.Type = model.FieldType(strings.ToLower(strings.TrimSpace(string(field.Type))))
	if field.Type == "" {
		field.Type = model.FieldTypeText
	}
	field.Label = sanitizeLabel(field.Label)
	if field.Label == "" {
		field.Label = field.Name
	}
	field.Placeholder = sanitizeLabel(field.Placeholder)
	if len(field.Options) > 0 {
		options := make([]string, 0, len(field.Options))
		for _, option := range field.Options {
			if trimmed := strings.TrimSpace(option); trimmed != "" {
				options = append(options, trimmed)
			}
		}
		field.Options = options
	}
	return field
}

// sanitizeLabel strips markup and returns HTML-escaped text. Entity-encoded
// markup is decoded and stripped again until the value settles.
func sanitizeLabel(raw string) string {
	clean := strings.TrimSpace(raw)
	for i := 0; i < maxSanitizePasses; i++ {
		next := strings.TrimSpace(labelPolicy.Sanitize(html.UnescapeString(clean)))
		if next == clean {
			break
		}
		clean = next
	}
	return clean
}

// LoadValues decodes a JSON or YAML object of form values.
func LoadValues(data []byte, source string) (model.Values, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return model.Values{}, nil
	}
	var values map[string]any
	if err := json.Unmarshal(trimmed, &values); err == nil {
		return model.Values(values), nil
	}
	if err := yaml.Unmarshal(trimmed, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, source, err)
	}
	return model.Values(values), nil
}
