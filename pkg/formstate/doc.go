// Package formstate holds the presentation-side state of a form: the live
// values, the current error map and which fields have been touched. State
// only changes through Reduce, a pure transition driven by discrete events
// (Change, Blur, Submit, Reset), so presenters can replay or test
// interactions without a UI toolkit. Form wraps a State for presenters that
// want a mutable handle and submit notifications.
package formstate
