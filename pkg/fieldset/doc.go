// Package fieldset loads field descriptor lists from configuration documents.
// Documents are JSON or YAML, either a bare array of descriptors or an object
// with a "fields" array. Loading normalises names, types and labels, then
// compiles the list through validation.New so malformed patterns are reported
// once at load time instead of on every keystroke. FromOpenAPI derives the
// same descriptors from an OpenAPI 3 operation's request body.
package fieldset
