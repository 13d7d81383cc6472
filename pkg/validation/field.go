package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-formcheck/pkg/model"
)

var (
	builtinRegistry = NewRegistry()
	patternCache    sync.Map // source -> *regexp.Regexp
)

// fieldRules is a descriptor with its pattern compiled and its kind rules
// resolved.
type fieldRules struct {
	field     model.Field
	pattern   *regexp.Regexp
	checks    []Check
	normalize []Normalizer
}

// ValidateField validates a single raw value against its descriptor and
// returns the first failing rule's message, or "" when the value is valid.
// The error is non-nil only when the descriptor itself is malformed.
func ValidateField(field model.Field, value string) (string, error) {
	rules, err := compileField(builtinRegistry, field, cachedPattern)
	if err != nil {
		return "", err
	}
	return rules.validate(value), nil
}

func compileField(reg *Registry, field model.Field, compile func(string) (*regexp.Regexp, error)) (fieldRules, error) {
	rules := fieldRules{field: field}
	if source := field.Pattern; source != "" {
		re, err := compile(source)
		if err != nil {
			return fieldRules{}, patternError(field.Name, source, err)
		}
		rules.pattern = re
	}
	for _, entry := range reg.matching(field) {
		rules.checks = append(rules.checks, entry.check)
		if entry.normalize != nil {
			rules.normalize = append(rules.normalize, entry.normalize)
		}
	}
	return rules, nil
}

func cachedPattern(source string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(source); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, err
	}
	actual, _ := patternCache.LoadOrStore(source, re)
	return actual.(*regexp.Regexp), nil
}

func (r fieldRules) validate(value string) string {
	field := r.field
	if isEmpty(field, value) {
		if field.Required {
			return fmt.Sprintf(MsgRequired, label(field))
		}
		return ""
	}

	for _, check := range r.checks {
		if msg := check(field, value); msg != "" {
			return msg
		}
	}

	return r.validateConstraints(value)
}

func (r fieldRules) validateConstraints(value string) string {
	field := r.field
	length := utf8.RuneCountInString(value)
	if field.MinLength != nil && length < *field.MinLength {
		return fmt.Sprintf(MsgMinLength, label(field), *field.MinLength)
	}
	if field.MaxLength != nil && length > *field.MaxLength {
		return fmt.Sprintf(MsgMaxLength, label(field), *field.MaxLength)
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		return fmt.Sprintf(MsgPattern, label(field))
	}
	if field.Is(model.FieldTypeNumber) {
		if _, ok := parseNumber(value); !ok {
			return fmt.Sprintf(MsgNumber, label(field))
		}
	}
	return ""
}

func (r fieldRules) normalized(value string) string {
	for _, fn := range r.normalize {
		value = fn(value)
	}
	return value
}

// isEmpty treats whitespace-only input as empty, and an unchecked checkbox
// ("false") as empty.
func isEmpty(field model.Field, value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	return field.Is(model.FieldTypeCheckbox) && trimmed == "false"
}
