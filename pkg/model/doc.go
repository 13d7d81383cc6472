// Package model defines the field descriptors, form values, and error maps the
// validation engine works with. Descriptors are normally decoded from a static
// configuration document (see package fieldset) and are treated as immutable
// once loaded. Values hold whatever scalars the presentation layer collected;
// Text performs the single, explicit conversion to the engine's string form so
// checkbox booleans never leak into validators as "true"/"false" guesses.
// ErrorMap is sparse: a missing key means the field is currently valid.
package model
