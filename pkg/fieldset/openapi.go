package fieldset

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formcheck/pkg/model"
)

const (
	labelExtensionKey       = "x-formgen-label"
	placeholderExtensionKey = "x-formgen-placeholder"
)

var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// FromOpenAPI derives descriptors from the request body of the operation
// called operationID. Properties become fields sorted by name.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string) ([]model.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: openapi document", ErrEmptyDocument)
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("fieldset: load openapi document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("fieldset: validate openapi document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestSchema, operationID)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, convertProperty(name, ref.Value, required[name]))
	}

	return finalize(fields, "openapi:"+operationID)
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertProperty(name string, src *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Type:        fieldType(src),
		Label:       firstNonEmpty(src.Title, stringExtension(src.Extensions, labelExtensionKey), name),
		Placeholder: stringExtension(src.Extensions, placeholderExtensionKey),
		Required:    required,
		Pattern:     src.Pattern,
	}
	if len(src.Enum) > 0 {
		field.Options = make([]string, 0, len(src.Enum))
		for _, value := range src.Enum {
			field.Options = append(field.Options, model.Text(value))
		}
	}
	if src.MinLength != 0 {
		field.MinLength = model.IntPtr(clampLength(src.MinLength))
	}
	if src.MaxLength != nil {
		field.MaxLength = model.IntPtr(clampLength(*src.MaxLength))
	}
	return field
}

func fieldType(src *openapi3.Schema) model.FieldType {
	if len(src.Enum) > 0 {
		return model.FieldTypeSelect
	}
	switch firstSchemaType(src.Type) {
	case openapi3.TypeBoolean:
		return model.FieldTypeCheckbox
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return model.FieldTypeNumber
	}
	switch strings.ToLower(src.Format) {
	case "email":
		return model.FieldTypeEmail
	case "password":
		return model.FieldTypePassword
	case "date":
		return model.FieldTypeDate
	case "textarea":
		return model.FieldTypeTextarea
	}
	return model.FieldTypeText
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func stringExtension(ext map[string]any, key string) string {
	if len(ext) == 0 {
		return ""
	}
	value, ok := ext[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func clampLength(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
