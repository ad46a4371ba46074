// Package credential covers password recovery, password change and the
// email-verification gate for password accounts.
package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/smilepoint/clinic-api/internal/platform/auth"
	"github.com/smilepoint/clinic-api/internal/service/identity"
)

// Workflow errors
var (
	ErrPasswordMismatch     = errors.New("new passwords do not match")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
	ErrRateLimited          = errors.New("too many attempts, try again later")
	ErrEmailNotVerified     = errors.New("verify your email address to continue")
)

// minPasswordLength matches the identity provider's own minimum, so the
// check fails fast instead of burning a provider round trip.
const minPasswordLength = 6

// Workflow drives credential changes through the identity provider.
type Workflow struct {
	provider identity.Service
}

// NewWorkflow creates a credential workflow.
func NewWorkflow(provider identity.Service) *Workflow {
	return &Workflow{provider: provider}
}

// RequestPasswordReset emails a reset link. Unknown addresses surface as
// identity.ErrNoSuchAccount.
func (w *Workflow) RequestPasswordReset(ctx context.Context, email string) error {
	return w.provider.SendPasswordReset(ctx, email)
}

// ChangePasswordParams is the change-password form.
type ChangePasswordParams struct {
	Email           string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ChangePassword re-authenticates with the current password and then sets
// the new one. Checks run cheapest first: mismatch, length, then the
// provider round trip. A failed re-authentication never reaches the
// password update.
func (w *Workflow) ChangePassword(ctx context.Context, params ChangePasswordParams) error {
	if params.NewPassword != params.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(params.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	sess, err := w.provider.SignIn(ctx, params.Email, params.CurrentPassword)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidCredential):
			return ErrWrongCurrentPassword
		case errors.Is(err, identity.ErrTooManyAttempts):
			return ErrRateLimited
		default:
			return fmt.Errorf("re-authenticating: %w", err)
		}
	}

	if err := w.provider.UpdatePassword(ctx, sess.IDToken, params.NewPassword); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

// SendVerification emails a fresh verification link to the session owner.
func (w *Workflow) SendVerification(ctx context.Context, idToken string) error {
	return w.provider.SendEmailVerification(ctx, idToken)
}

// RequireVerified gates password accounts on email verification. Federated
// and phone accounts pass; their provider already vouched for the contact
// point.
func (w *Workflow) RequireVerified(p *auth.Principal) error {
	if p != nil && p.PasswordAccount() && !p.EmailVerified {
		return ErrEmailNotVerified
	}
	return nil
}

// Recheck fetches the account's current verification state. Verification
// happens out of band, so cached principals go stale.
func (w *Workflow) Recheck(ctx context.Context, idToken string) (*auth.Principal, error) {
	return w.provider.Lookup(ctx, idToken)
}
