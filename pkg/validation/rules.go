package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// User-facing messages. Those taking %s receive the field label.
const (
	MsgRequired = "%s is required"

	MsgFullNameParts      = "Full name must have exactly three parts (First Middle Last)"
	MsgFullNamePartLength = "Each name part must be between 2 and 20 characters long"
	MsgFullNameCase       = "Each name part must start with a capital letter followed by lowercase letters"

	MsgEmail = "Please enter a valid email address"

	MsgPasswordLength  = "Password must be at least 8 characters long"
	MsgPasswordUpper   = "Password must include an uppercase letter"
	MsgPasswordLower   = "Password must include a lowercase letter"
	MsgPasswordDigit   = "Password must include a number"
	MsgPasswordSpecial = "Password must include a special character (!@#$%^&*)"

	MsgAge    = "Age must be between 18 and 120"
	MsgPhone  = "Please enter a valid phone number (9-15 digits)"
	MsgTerms  = "Please accept the %s"
	MsgOption = "%s must be one of the available options"

	MsgMinLength = "%s must be at least %d characters long"
	MsgMaxLength = "%s must be at most %d characters long"
	MsgPattern   = "%s has an invalid format"
	MsgNumber    = "%s must be a number"
)

const (
	fullNameParts   = 3
	namePartMin     = 2
	namePartMax     = 20
	passwordMinLen  = 8
	ageMin          = 18
	ageMax          = 120
	passwordSpecial = "!@#$%^&*"
)

var (
	namePartRX = regexp.MustCompile(`^[A-Z][a-z]+$`)
	emailRX    = regexp.MustCompile(`(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	phoneRX    = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	upperRX    = regexp.MustCompile(`[A-Z]`)
	lowerRX    = regexp.MustCompile(`[a-z]`)
	digitRX    = regexp.MustCompile(`[0-9]`)
	specialRX  = regexp.MustCompile(`[` + regexp.QuoteMeta(passwordSpecial) + `]`)
)

func checkFullName(_ model.Field, value string) string {
	parts := strings.Fields(value)
	if len(parts) != fullNameParts {
		return MsgFullNameParts
	}
	for _, part := range parts {
		if n := utf8.RuneCountInString(part); n < namePartMin || n > namePartMax {
			return MsgFullNamePartLength
		}
		if !namePartRX.MatchString(part) {
			return MsgFullNameCase
		}
	}
	return ""
}

func checkEmail(_ model.Field, value string) string {
	if !emailRX.MatchString(value) {
		return MsgEmail
	}
	return ""
}

func checkPassword(_ model.Field, value string) string {
	switch {
	case utf8.RuneCountInString(value) < passwordMinLen:
		return MsgPasswordLength
	case !upperRX.MatchString(value):
		return MsgPasswordUpper
	case !lowerRX.MatchString(value):
		return MsgPasswordLower
	case !digitRX.MatchString(value):
		return MsgPasswordDigit
	case !specialRX.MatchString(value):
		return MsgPasswordSpecial
	}
	return ""
}

func checkAge(_ model.Field, value string) string {
	age, ok := parseNumber(value)
	if !ok || age < ageMin || age > ageMax {
		return MsgAge
	}
	return ""
}

func checkPhone(_ model.Field, value string) string {
	if !phoneRX.MatchString(value) {
		return MsgPhone
	}
	return ""
}

func checkAccepted(field model.Field, value string) string {
	if value != "true" {
		return fmt.Sprintf(MsgTerms, strings.ToLower(label(field)))
	}
	return ""
}

func checkOption(field model.Field, value string) string {
	if !field.HasOption(value) {
		return fmt.Sprintf(MsgOption, label(field))
	}
	return ""
}

// parseNumber accepts decimal literals with surrounding whitespace and
// rejects NaN and infinities.
func parseNumber(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func label(field model.Field) string {
	if l := strings.TrimSpace(field.Label); l != "" {
		return l
	}
	return field.Name
}

// NormalizeFullName trims the value, collapses inner whitespace and rewrites
// each part as a capital letter followed by lowercase letters.
func NormalizeFullName(value string) string {
	parts := strings.Fields(value)
	for i, part := range parts {
		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
