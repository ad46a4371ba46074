package identity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	applog "github.com/smilepoint/clinic-api/internal/platform/logging"
	"github.com/smilepoint/clinic-api/internal/service/profile"
	"github.com/smilepoint/clinic-api/internal/session"
)

const (
	// phoneDisplayName is the placeholder name for accounts created
	// through phone sign-in; the patient fills in the rest later.
	phoneDisplayName = "Patient"

	authProviderPassword = "password"
	authProviderPhone    = "phone"
)

// Adapter drives the sign-in and sign-up flows end to end: it calls the
// identity provider, bootstraps the profile document for flows that create
// accounts, and publishes every auth-state transition to the session store.
// It is the store's only writer.
type Adapter struct {
	provider Service
	profiles profile.Service
	sessions *session.Store
}

// NewAdapter wires the identity provider, the profile repository and the
// session store together.
func NewAdapter(provider Service, profiles profile.Service, sessions *session.Store) *Adapter {
	return &Adapter{provider: provider, profiles: profiles, sessions: sessions}
}

// SignUpParams carries the registration form.
type SignUpParams struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// SignUp registers a password account, writes the initial profile document
// and sends the verification email. The caller is NOT signed in: password
// accounts stay locked out until the email address is verified.
func (a *Adapter) SignUp(ctx context.Context, params SignUpParams) (*Session, error) {
	sess, err := a.provider.SignUp(ctx, params.Email, params.Password)
	if err != nil {
		return nil, err
	}

	_, err = a.profiles.Upsert(ctx, sess.UID, profile.UpsertParams{
		DisplayName:  &params.Name,
		Email:        &params.Email,
		Phone:        &params.Phone,
		AuthProvider: strPtr(authProviderPassword),
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrapping profile: %w", err)
	}

	if err := a.provider.SendEmailVerification(ctx, sess.IDToken); err != nil {
		// The account exists either way; the patient can request a
		// fresh link from the login screen.
		applog.LogWarn(ctx, "verification email failed",
			zap.String("uid", sess.UID),
			zap.Error(err),
		)
	}

	return sess, nil
}

// SignIn authenticates a password account. Accounts whose email address is
// not yet verified are rejected with ErrEmailNotVerified and no session is
// established.
func (a *Adapter) SignIn(ctx context.Context, email, password string) (*Session, error) {
	sess, err := a.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if !sess.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	a.establish(ctx, sess)
	return sess, nil
}

// FederatedSignIn exchanges a Google or Apple credential for a session.
// First-time sign-ins get a profile document seeded from the provider.
func (a *Adapter) FederatedSignIn(ctx context.Context, provider Provider, providerToken string) (*Session, error) {
	if !provider.Valid() {
		return nil, ErrProviderFailure
	}

	sess, err := a.provider.FederatedSignIn(ctx, provider, providerToken)
	if err != nil {
		return nil, err
	}

	if sess.IsNewUser {
		authProvider := string(provider)
		_, err = a.profiles.Upsert(ctx, sess.UID, profile.UpsertParams{
			DisplayName:  &sess.DisplayName,
			Email:        &sess.Email,
			AuthProvider: &authProvider,
		})
		if err != nil {
			return nil, fmt.Errorf("bootstrapping profile: %w", err)
		}
	}

	a.establish(ctx, sess)
	return sess, nil
}

// StartPhoneVerification begins a phone challenge. The returned handle is
// passed back through ConfirmPhoneCode.
func (a *Adapter) StartPhoneVerification(ctx context.Context, phoneNumber, recaptchaToken string) (string, error) {
	return a.provider.StartPhoneVerification(ctx, phoneNumber, recaptchaToken)
}

// ConfirmPhoneCode completes a phone challenge. A first-time phone sign-in
// creates the profile document with a placeholder name.
func (a *Adapter) ConfirmPhoneCode(ctx context.Context, sessionInfo, code string) (*Session, error) {
	sess, err := a.provider.ConfirmPhoneCode(ctx, sessionInfo, code)
	if err != nil {
		return nil, err
	}

	if sess.IsNewUser {
		_, err = a.profiles.Upsert(ctx, sess.UID, profile.UpsertParams{
			DisplayName:  strPtr(phoneDisplayName),
			Phone:        &sess.PhoneNumber,
			AuthProvider: strPtr(authProviderPhone),
		})
		if err != nil {
			return nil, fmt.Errorf("bootstrapping profile: %w", err)
		}
	}

	a.establish(ctx, sess)
	return sess, nil
}

// SignOut clears the session store and notifies subscribers.
func (a *Adapter) SignOut(ctx context.Context) {
	a.sessions.Set(nil)
}

// establish publishes the signed-in principal and stamps last_login. The
// stamp is best effort; a profile write failure must not undo the sign-in.
func (a *Adapter) establish(ctx context.Context, sess *Session) {
	a.sessions.Set(sess.Principal())

	if err := a.profiles.TouchLastLogin(ctx, sess.UID); err != nil {
		applog.LogWarn(ctx, "last_login stamp failed",
			zap.String("uid", sess.UID),
			zap.Error(err),
		)
	}
}

func strPtr(s string) *string { return &s }
