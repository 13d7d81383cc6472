package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/fieldset"
	"github.com/goliatone/go-formcheck/pkg/testsupport"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(Config{LogLevel: "error", LogFormat: "console"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestValidate_ValidData(t *testing.T) {
	data := writeFile(t, "data.json", `{
		"fullName": "John Middle Smith",
		"email": "john@example.com",
		"password": "Secret1!",
		"age": 30,
		"country": "Portugal",
		"terms": true
	}`)

	out, err := execute(t, "validate", "--data", data)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "{}" {
		t.Fatalf("expected empty error map, got %s", out)
	}
}

func TestValidate_InvalidData(t *testing.T) {
	data := writeFile(t, "data.yaml", strings.Join([]string{
		"fullName: john smith",
		"email: nope",
		"password: Secret1!",
		"age: 12",
		"country: Narnia",
		"terms: false",
	}, "\n"))

	out, err := execute(t, "validate", "--data", data)
	if !errors.Is(err, errInvalidData) {
		t.Fatalf("expected errInvalidData, got %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	want := map[string]string{
		"fullName": "Full name must have exactly three parts (First Middle Last)",
		"email":    "Please enter a valid email address",
		"age":      "Age must be between 18 and 120",
		"country":  "Country must be one of the available options",
		"terms":    "Terms and Conditions is required",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("error map mismatch (-want +got):\n%s", diff)
	}
}

func TestLint(t *testing.T) {
	out, err := execute(t, "lint")
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if out != "ok: 8 fields\n" {
		t.Fatalf("unexpected lint output %q", out)
	}

	broken := writeFile(t, "broken.yaml", "- name: code\n  pattern: \"[a-\"\n")
	if _, err := execute(t, "lint", "--fields", broken); err == nil {
		t.Fatalf("expected lint to fail for a broken pattern")
	}
}

func TestImportOpenAPI_RoundTrips(t *testing.T) {
	out, err := execute(t,
		"import-openapi",
		"--spec", filepath.Join("..", "..", "pkg", "fieldset", "testdata", "register.openapi.yaml"),
		"--operation", "createAccount",
	)
	if err != nil {
		t.Fatalf("import-openapi: %v", err)
	}
	fields, err := fieldset.Parse([]byte(out), "import.yaml")
	if err != nil {
		t.Fatalf("re-parse imported fields: %v\n%s", err, out)
	}
	testsupport.AssertFieldsGolden(t, filepath.Join("..", "..", "pkg", "fieldset", "testdata", "register.fields.golden.json"), fields)
}

func TestPrompt_RejectsUnknownOutput(t *testing.T) {
	if _, err := execute(t, "prompt", "--output", "xml"); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}
