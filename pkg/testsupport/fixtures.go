package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/fieldset"
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// ReadFixture returns the raw bytes of a fixture file.
func ReadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// MustLoadFields loads a descriptor document through fieldset.LoadFile.
func MustLoadFields(t *testing.T, path string) []model.Field {
	t.Helper()
	fields, err := fieldset.LoadFile(path)
	if err != nil {
		t.Fatalf("load fields: %v", err)
	}
	return fields
}

// MustNewValidator compiles fields or fails the test.
func MustNewValidator(t *testing.T, fields []model.Field, opts ...validation.Option) *validation.Validator {
	t.Helper()
	v, err := validation.New(fields, opts...)
	if err != nil {
		t.Fatalf("validation.New: %v", err)
	}
	return v
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, value any) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertFieldsGolden compares fields with the JSON descriptors stored at path.
func AssertFieldsGolden(t *testing.T, path string, got []model.Field) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	var want []model.Field
	if err := json.Unmarshal(ReadFixture(t, path), &want); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
