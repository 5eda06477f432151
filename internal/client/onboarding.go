package client

import (
	"context"
	"strings"

	"sparks/internal/models"
)

// Step is a stage of the onboarding wizard.
type Step int

const (
	StepWelcome Step = iota + 1
	StepUsername
	StepAvatar
)

// Wizard is the first-run onboarding flow: a strictly forward
// Welcome → Username → Avatar sequence whose terminal action creates the
// profile. The wizard never navigates; the navigation controller advances
// the user once the profile exists.
type Wizard struct {
	gw Gateway

	step     Step
	username string
	avatar   models.Avatar
	errMsg   string
	done     bool
}

// NewWizard creates a Wizard at the welcome step.
func NewWizard(gw Gateway) *Wizard {
	return &Wizard{gw: gw, step: StepWelcome}
}

// Step returns the current stage.
func (w *Wizard) Step() Step {
	return w.step
}

// SetUsername replaces the username buffer, hard-stopped at the input cap.
func (w *Wizard) SetUsername(username string) {
	runes := []rune(username)
	if len(runes) > maxUsernameInput {
		runes = runes[:maxUsernameInput]
	}
	w.username = string(runes)
}

// SelectAvatar picks an avatar from the fixed set; anything outside it is
// ignored.
func (w *Wizard) SelectAvatar(avatar models.Avatar) {
	if avatar.Valid() {
		w.avatar = avatar
	}
}

// Error returns the inline error message, empty when none.
func (w *Wizard) Error() string {
	return w.errMsg
}

// Done reports whether the profile was created.
func (w *Wizard) Done() bool {
	return w.done
}

// Continue advances the wizard one step. On the username step it validates
// before advancing; on the avatar step it performs profile creation. There
// is no backward transition.
func (w *Wizard) Continue(ctx context.Context) {
	switch w.step {
	case StepWelcome:
		w.step = StepUsername

	case StepUsername:
		trimmed := strings.TrimSpace(w.username)
		if trimmed == "" {
			w.errMsg = msgUsernameMissing
			return
		}
		if len([]rune(trimmed)) < 3 {
			w.errMsg = msgUsernameShort
			return
		}
		w.errMsg = ""
		w.step = StepAvatar

	case StepAvatar:
		w.complete(ctx)
	}
}

// complete creates the profile. On failure the wizard stays on the avatar
// step with an inline error; on success it only marks itself done.
func (w *Wizard) complete(ctx context.Context) {
	if w.avatar == "" {
		w.errMsg = msgAvatarMissing
		return
	}

	w.errMsg = ""
	_, err := w.gw.CreateProfile(ctx, strings.TrimSpace(w.username), w.avatar)
	if err != nil {
		w.errMsg = friendlyProfileError(err)
		return
	}
	w.done = true
}
