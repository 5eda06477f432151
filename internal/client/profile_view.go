package client

import (
	"context"
	"log"
	"strings"
	"sync"

	"sparks/internal/models"

	"golang.org/x/sync/errgroup"
)

// Exact user-facing strings for profile validation and uniqueness failures.
const (
	msgUsernameEmpty   = "Username cannot be empty"
	msgUsernameMissing = "Please enter a username"
	msgUsernameShort   = "Username must be at least 3 characters"
	msgAvatarMissing   = "Please select an avatar"
	msgUsernameTaken   = "Username already taken. Please choose another."
)

// maxUsernameInput is the hard cap on entered usernames.
const maxUsernameInput = 20

// ProfileController drives the profile screen: the user's own sparks
// (all-time) and profile row, fetched in parallel, plus sign-out.
type ProfileController struct {
	gw Gateway

	mu      sync.Mutex
	profile *models.Profile
	sparks  []models.Spark
	loading bool
}

// NewProfileController creates a ProfileController bound to gw.
func NewProfileController(gw Gateway) *ProfileController {
	return &ProfileController{gw: gw, loading: true}
}

// Refresh fetches the user's sparks and profile in parallel. On error the
// previous state is kept and the error logged.
func (p *ProfileController) Refresh(ctx context.Context) {
	if p.gw.Session() == nil {
		return
	}

	var (
		sparks  []models.Spark
		profile *models.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sparks, err = p.gw.MySparks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = p.gw.MyProfile(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error fetching user data: %v", err)
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	p.sparks = sparks
	p.profile = profile
	p.loading = false
	p.mu.Unlock()
}

// Profile returns the fetched profile, nil before onboarding or fetch.
func (p *ProfileController) Profile() *models.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile
}

// Sparks returns the user's sparks, newest first.
func (p *ProfileController) Sparks() []models.Spark {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Spark, len(p.sparks))
	copy(out, p.sparks)
	return out
}

// Count returns the all-time spark count shown as the aggregate stat.
func (p *ProfileController) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sparks)
}

// Loading reports whether the initial fetch is still in flight.
func (p *ProfileController) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// SignOut tears the session down. The navigation controller routes to the
// auth screen on the next evaluation.
func (p *ProfileController) SignOut() {
	p.gw.SignOut()
}

// ProfileForm is the profile editor dialog: username and avatar, pre-filled
// from the current profile, with inline error reporting.
type ProfileForm struct {
	gw Gateway

	username string
	avatar   models.Avatar
	errMsg   string
	saving   bool
}

// NewProfileForm creates a ProfileForm bound to gw.
func NewProfileForm(gw Gateway) *ProfileForm {
	return &ProfileForm{gw: gw}
}

// Open pre-fills the form from the current profile and clears any prior
// error.
func (f *ProfileForm) Open(current *models.Profile) {
	f.errMsg = ""
	if current != nil {
		f.username = current.Username
		f.avatar = current.Avatar
	}
}

// SetUsername replaces the username buffer, hard-stopped at the input cap.
func (f *ProfileForm) SetUsername(username string) {
	runes := []rune(username)
	if len(runes) > maxUsernameInput {
		runes = runes[:maxUsernameInput]
	}
	f.username = string(runes)
}

// Username returns the current buffer.
func (f *ProfileForm) Username() string {
	return f.username
}

// SelectAvatar picks an avatar from the fixed set; anything outside it is
// ignored.
func (f *ProfileForm) SelectAvatar(avatar models.Avatar) {
	if avatar.Valid() {
		f.avatar = avatar
	}
}

// Avatar returns the selected avatar.
func (f *ProfileForm) Avatar() models.Avatar {
	return f.avatar
}

// Error returns the inline error message, empty when none.
func (f *ProfileForm) Error() string {
	return f.errMsg
}

// Save validates and persists the edit. It returns true on success;
// validation and backend failures set the inline error and return false.
func (f *ProfileForm) Save(ctx context.Context) bool {
	trimmed := strings.TrimSpace(f.username)
	if trimmed == "" {
		f.errMsg = msgUsernameEmpty
		return false
	}
	if len([]rune(trimmed)) < 3 {
		f.errMsg = msgUsernameShort
		return false
	}

	f.saving = true
	f.errMsg = ""
	_, err := f.gw.UpdateProfile(ctx, trimmed, f.avatar)
	f.saving = false

	if err != nil {
		f.errMsg = friendlyProfileError(err)
		return false
	}
	return true
}

// friendlyProfileError remaps backend uniqueness violations to a fixed
// message; everything else passes through verbatim.
func friendlyProfileError(err error) string {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
		return msgUsernameTaken
	}
	return err.Error()
}
