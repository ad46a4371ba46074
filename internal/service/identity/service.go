package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/smilepoint/clinic-api/internal/platform/auth"
)

// Service errors form the closed taxonomy surfaced to callers. Provider
// codes not covered by the mapping table fall through to ErrAuthFailed.
var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredential  = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many attempts")
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrChallengeSetup     = errors.New("phone challenge setup failed")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrNoSuchAccount      = errors.New("no account for this email")
	ErrRateLimited        = errors.New("rate limited by identity provider")
	ErrEmailNotVerified   = errors.New("email address not verified")
	ErrProviderFailure    = errors.New("federated provider failure")
	ErrAuthFailed         = errors.New("authentication failed")
)

// Provider identifies a federated identity provider.
type Provider string

const (
	ProviderGoogle Provider = "google.com"
	ProviderApple  Provider = "apple.com"
)

// Valid reports whether the provider is one of the supported federations.
func (p Provider) Valid() bool {
	return p == ProviderGoogle || p == ProviderApple
}

// Session is the result of a successful sign-in or sign-up.
type Session struct {
	UID           string
	Email         string
	DisplayName   string
	PhoneNumber   string
	EmailVerified bool
	Provider      string
	IDToken       string
	RefreshToken  string
	// IsNewUser is set on flows that may create the account as a side
	// effect (phone and federated sign-in).
	IsNewUser bool
}

// Principal derives the account identity from the session.
func (s *Session) Principal() *auth.Principal {
	return &auth.Principal{
		UID:           s.UID,
		Email:         s.Email,
		DisplayName:   s.DisplayName,
		PhoneNumber:   s.PhoneNumber,
		EmailVerified: s.EmailVerified,
		Provider:      s.Provider,
	}
}

// UpstreamError carries provider response metadata for diagnostics.
type UpstreamError struct {
	// Code is the provider-native error code, e.g. "EMAIL_EXISTS".
	Code   string
	Status int
	cause  error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "identity upstream error"
	}
	if e.cause == nil {
		return fmt.Sprintf("identity upstream error (code=%s status=%d)", e.Code, e.Status)
	}
	return fmt.Sprintf("identity upstream error (code=%s status=%d): %v", e.Code, e.Status, e.cause)
}

// Unwrap enables errors.Is/As against the sentinel taxonomy.
func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Service is the uniform surface over the three credential types the clinic
// supports: email/password, federated (Google, Apple) and phone OTP.
type Service interface {
	// SignUp registers a password account.
	SignUp(ctx context.Context, email, password string) (*Session, error)
	// SignIn authenticates a password account. Unknown-account and
	// wrong-password failures are deliberately indistinguishable.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// FederatedSignIn exchanges a provider credential for a session.
	FederatedSignIn(ctx context.Context, provider Provider, providerToken string) (*Session, error)
	// StartPhoneVerification sends an SMS code and returns an opaque
	// challenge handle for ConfirmPhoneCode.
	StartPhoneVerification(ctx context.Context, phoneNumber, recaptchaToken string) (string, error)
	// ConfirmPhoneCode completes a phone challenge.
	ConfirmPhoneCode(ctx context.Context, sessionInfo, code string) (*Session, error)
	// SendPasswordReset emails a password reset link.
	SendPasswordReset(ctx context.Context, email string) error
	// SendEmailVerification emails a verification link to the session owner.
	SendEmailVerification(ctx context.Context, idToken string) error
	// UpdatePassword sets a new password for the session owner. Callers
	// must re-authenticate first; see the credential workflow.
	UpdatePassword(ctx context.Context, idToken, newPassword string) error
	// Lookup fetches a fresh principal for the session owner. Used by the
	// email-verification re-check.
	Lookup(ctx context.Context, idToken string) (*auth.Principal, error)
}
