package model

import (
	"sort"
	"strings"
)

// FieldType identifies the kind of input a descriptor declares. Unknown types
// are allowed and behave like FieldTypeText.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeTel      FieldType = "tel"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextarea FieldType = "textarea"
)

// Field declares one form field and its validation constraints. Struct tags
// match the configuration document keys.
type Field struct {
	Type        FieldType `json:"type" yaml:"type"`
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength   *int      `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int      `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern     string    `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Is reports whether the field declares the given type. Comparison ignores
// case and surrounding whitespace.
func (f Field) Is(t FieldType) bool {
	return strings.EqualFold(strings.TrimSpace(string(f.Type)), string(t))
}

// HasOption reports whether value is one of the declared options.
func (f Field) HasOption(value string) bool {
	for _, option := range f.Options {
		if option == value {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the descriptor.
func (f Field) Clone() Field {
	out := f
	if f.MinLength != nil {
		v := *f.MinLength
		out.MinLength = &v
	}
	if f.MaxLength != nil {
		v := *f.MaxLength
		out.MaxLength = &v
	}
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

// IntPtr is a small helper for populating MinLength/MaxLength literals.
func IntPtr(v int) *int {
	return &v
}

// FieldsByName indexes descriptors by name. Later duplicates win.
func FieldsByName(fields []Field) map[string]Field {
	out := make(map[string]Field, len(fields))
	for _, field := range fields {
		out[field.Name] = field
	}
	return out
}

// ErrorMap maps field names to non-empty error messages. Absence of a key
// means the field is valid.
type ErrorMap map[string]string

// Has reports whether name carries an error.
func (m ErrorMap) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Fields returns the names carrying errors in sorted order.
func (m ErrorMap) Fields() []string {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of the map. A nil map clones to an empty map.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
