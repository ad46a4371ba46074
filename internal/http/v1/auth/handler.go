package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	platformauth "github.com/smilepoint/clinic-api/internal/platform/auth"
	"github.com/smilepoint/clinic-api/internal/service/credential"
	"github.com/smilepoint/clinic-api/internal/service/identity"
)

// Register registers account endpoints. The sign-in and recovery routes are
// public; /auth/me and /auth/change-password require a bearer token.
func Register(api huma.API, adapter *identity.Adapter, credentials *credential.Workflow) {
	huma.Register(api, huma.Operation{
		OperationID:   "sign-up",
		Method:        http.MethodPost,
		Path:          "/auth/signup",
		Summary:       "Register a password account",
		Description:   "Creates the account and profile and sends a verification email. Sign-in stays blocked until the address is verified.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *SignUpInput) (*SignUpOutput, error) {
		sess, err := adapter.SignUp(ctx, identity.SignUpParams{
			Name:     input.Body.Name,
			Email:    input.Body.Email,
			Password: input.Body.Password,
			Phone:    input.Body.Phone,
		})
		if err != nil {
			return nil, mapAuthError(err)
		}
		return &SignUpOutput{Body: toHTTPSession(sess)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Sign in with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*SessionOutput, error) {
		sess, err := adapter.SignIn(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, mapAuthError(err)
		}
		return &SessionOutput{Body: toHTTPSession(sess)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "federated-login",
		Method:      http.MethodPost,
		Path:        "/auth/federated",
		Summary:     "Sign in with Google or Apple",
		Description: "Exchanges a provider credential for a session. First-time sign-ins create the account and profile.",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *FederatedInput) (*SessionOutput, error) {
		sess, err := adapter.FederatedSignIn(ctx, identity.Provider(input.Body.Provider), input.Body.Token)
		if err != nil {
			return nil, mapAuthError(err)
		}
		return &SessionOutput{Body: toHTTPSession(sess)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "phone-start",
		Method:      http.MethodPost,
		Path:        "/auth/phone/start",
		Summary:     "Start phone sign-in",
		Description: "Sends an SMS code and returns the challenge handle for phone/verify.",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *PhoneStartInput) (*PhoneStartOutput, error) {
		info, err := adapter.StartPhoneVerification(ctx, input.Body.Phone, input.Body.RecaptchaToken)
		if err != nil {
			return nil, mapAuthError(err)
		}
		out := &PhoneStartOutput{}
		out.Body.SessionInfo = info
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "phone-verify",
		Method:      http.MethodPost,
		Path:        "/auth/phone/verify",
		Summary:     "Complete phone sign-in",
		Description: "Confirms the SMS code. First-time sign-ins create the account with a placeholder profile.",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *PhoneVerifyInput) (*SessionOutput, error) {
		sess, err := adapter.ConfirmPhoneCode(ctx, input.Body.SessionInfo, input.Body.Code)
		if err != nil {
			return nil, mapAuthError(err)
		}
		return &SessionOutput{Body: toHTTPSession(sess)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "password-reset",
		Method:        http.MethodPost,
		Path:          "/auth/reset",
		Summary:       "Request a password reset email",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusAccepted,
	}, func(ctx context.Context, input *ResetInput) (*struct{}, error) {
		if err := credentials.RequestPasswordReset(ctx, input.Body.Email); err != nil {
			return nil, mapAuthError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "change-password",
		Method:        http.MethodPost,
		Path:          "/auth/change-password",
		Summary:       "Change password",
		Description:   "Re-authenticates with the current password before setting the new one.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ChangePasswordInput) (*struct{}, error) {
		principal := platformauth.PrincipalFromContext(ctx)

		err := credentials.ChangePassword(ctx, credential.ChangePasswordParams{
			Email:           principal.Email,
			CurrentPassword: input.Body.CurrentPassword,
			NewPassword:     input.Body.NewPassword,
			ConfirmPassword: input.Body.ConfirmPassword,
		})
		if err != nil {
			return nil, mapAuthError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Get the authenticated account",
		Tags:        []string{"Auth"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *MeInput) (*MeOutput, error) {
		principal := platformauth.PrincipalFromContext(ctx)

		return &MeOutput{Body: Account{
			UID:           principal.UID,
			Email:         principal.Email,
			Name:          principal.DisplayName,
			Phone:         principal.PhoneNumber,
			EmailVerified: principal.EmailVerified,
			Provider:      principal.Provider,
		}}, nil
	})
}

// mapAuthError translates workflow errors into problem responses. Messages
// come from the sentinels themselves so the wording stays consistent across
// endpoints.
func mapAuthError(err error) error {
	switch {
	case errors.Is(err, identity.ErrEmailInUse):
		return huma.Error409Conflict(identity.ErrEmailInUse.Error())
	case errors.Is(err, identity.ErrWeakPassword),
		errors.Is(err, identity.ErrInvalidEmail),
		errors.Is(err, identity.ErrInvalidPhoneNumber),
		errors.Is(err, identity.ErrChallengeSetup),
		errors.Is(err, identity.ErrInvalidCode):
		return huma.Error422UnprocessableEntity(unwrapMessage(err))
	case errors.Is(err, identity.ErrInvalidCredential):
		return huma.Error401Unauthorized(identity.ErrInvalidCredential.Error())
	case errors.Is(err, identity.ErrProviderFailure):
		return huma.Error401Unauthorized(identity.ErrProviderFailure.Error())
	case errors.Is(err, identity.ErrEmailNotVerified):
		return huma.Error403Forbidden(identity.ErrEmailNotVerified.Error())
	case errors.Is(err, credential.ErrEmailNotVerified):
		return huma.Error403Forbidden(credential.ErrEmailNotVerified.Error())
	case errors.Is(err, identity.ErrNoSuchAccount):
		return huma.Error404NotFound(identity.ErrNoSuchAccount.Error())
	case errors.Is(err, identity.ErrTooManyAttempts),
		errors.Is(err, identity.ErrRateLimited),
		errors.Is(err, credential.ErrRateLimited):
		return huma.Error429TooManyRequests("too many attempts, try again later")
	case errors.Is(err, credential.ErrPasswordMismatch):
		return huma.Error422UnprocessableEntity(credential.ErrPasswordMismatch.Error())
	case errors.Is(err, credential.ErrPasswordTooShort):
		return huma.Error422UnprocessableEntity(credential.ErrPasswordTooShort.Error())
	case errors.Is(err, credential.ErrWrongCurrentPassword):
		return huma.Error401Unauthorized(credential.ErrWrongCurrentPassword.Error())
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

// unwrapMessage surfaces the sentinel text without provider detail.
func unwrapMessage(err error) string {
	for _, sentinel := range []error{
		identity.ErrWeakPassword,
		identity.ErrInvalidEmail,
		identity.ErrInvalidPhoneNumber,
		identity.ErrChallengeSetup,
		identity.ErrInvalidCode,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "invalid request"
}

func toHTTPSession(s *identity.Session) Session {
	return Session{
		UID:           s.UID,
		Email:         s.Email,
		Name:          s.DisplayName,
		Phone:         s.PhoneNumber,
		EmailVerified: s.EmailVerified,
		Provider:      s.Provider,
		IDToken:       s.IDToken,
		RefreshToken:  s.RefreshToken,
		IsNewUser:     s.IsNewUser,
	}
}
