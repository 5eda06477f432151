package client

import (
	"context"
	"log"
	"strings"

	"sparks/internal/models"
)

// SubmitFunc is the asynchronous submit action a Draft delegates to.
type SubmitFunc func(ctx context.Context, content string) error

// Draft is the composer dialog state: a text buffer with a hard input cap,
// a soft budget shown as a countdown, and a submit that closes the dialog
// only on success.
type Draft struct {
	submit SubmitFunc

	content    string
	initial    string
	visible    bool
	submitting bool
}

// NewDraft creates a Draft delegating submission to submit.
func NewDraft(submit SubmitFunc) *Draft {
	return &Draft{submit: submit}
}

// Open shows the dialog, resetting the buffer to initial. Re-opening always
// resets, even after an abandoned edit.
func (d *Draft) Open(initial string) {
	d.visible = true
	d.initial = initial
	d.content = initial
}

// Close hides the dialog without submitting.
func (d *Draft) Close() {
	d.visible = false
}

// Visible reports whether the dialog is shown.
func (d *Draft) Visible() bool {
	return d.visible
}

// Editing reports whether the dialog opened over an existing spark.
func (d *Draft) Editing() bool {
	return d.initial != ""
}

// SetContent replaces the buffer, hard-stopped at the input cap.
func (d *Draft) SetContent(content string) {
	runes := []rune(content)
	if len(runes) > models.SparkHardLimit {
		runes = runes[:models.SparkHardLimit]
	}
	d.content = string(runes)
}

// Content returns the current buffer.
func (d *Draft) Content() string {
	return d.content
}

// Remaining counts down from the soft budget; it goes negative past it.
func (d *Draft) Remaining() int {
	return models.SparkSoftLimit - len([]rune(d.content))
}

// OverLimit reports whether the buffer exceeds the soft budget.
func (d *Draft) OverLimit() bool {
	return d.Remaining() < 0
}

// CanSubmit reports whether submission is allowed: not already submitting,
// not blank after trimming, not over the soft budget.
func (d *Draft) CanSubmit() bool {
	return !d.submitting && strings.TrimSpace(d.content) != "" && !d.OverLimit()
}

// Submit runs the delegate with the trimmed buffer. On success the buffer
// clears and the dialog closes; on failure it stays open with the text
// intact and the error is logged.
func (d *Draft) Submit(ctx context.Context) error {
	if !d.CanSubmit() {
		return nil
	}

	d.submitting = true
	err := d.submit(ctx, strings.TrimSpace(d.content))
	d.submitting = false

	if err != nil {
		log.Printf("Error submitting spark: %v", err)
		return err
	}
	d.content = ""
	d.visible = false
	return nil
}
