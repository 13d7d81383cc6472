// Package tui collects form values interactively in a terminal. Each field is
// prompted through a PromptDriver, validated on blur via formstate, and
// re-prompted until its error clears. The submitted values are serialised as
// JSON, form-urlencoded, or pretty text.
package tui
