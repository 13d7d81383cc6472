package fieldset_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formcheck/pkg/fieldset"
	"github.com/goliatone/go-formcheck/pkg/testsupport"
)

func loadOpenAPIFixture(t *testing.T) []byte {
	t.Helper()
	return testsupport.ReadFixture(t, filepath.Join("testdata", "register.openapi.yaml"))
}

func TestFromOpenAPI(t *testing.T) {
	fields, err := fieldset.FromOpenAPI(context.Background(), loadOpenAPIFixture(t), "createAccount")
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}

	testsupport.AssertFieldsGolden(t, filepath.Join("testdata", "register.fields.golden.json"), fields)
}

func TestFromOpenAPI_Errors(t *testing.T) {
	raw := loadOpenAPIFixture(t)
	ctx := context.Background()

	if _, err := fieldset.FromOpenAPI(ctx, raw, "deleteAccount"); !errors.Is(err, fieldset.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := fieldset.FromOpenAPI(ctx, raw, "listAccounts"); !errors.Is(err, fieldset.ErrNoRequestSchema) {
		t.Fatalf("expected ErrNoRequestSchema, got %v", err)
	}
	if _, err := fieldset.FromOpenAPI(ctx, nil, "createAccount"); !errors.Is(err, fieldset.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := fieldset.FromOpenAPI(cancelled, raw, "createAccount"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
