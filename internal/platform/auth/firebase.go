package auth

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// Principal is an authenticated account identity.
type Principal struct {
	UID           string
	Email         string
	DisplayName   string
	PhoneNumber   string
	EmailVerified bool
	// Provider records how the account authenticates: "password",
	// "google.com", "apple.com" or "phone".
	Provider string
}

// PasswordAccount reports whether the principal signs in with local
// credentials. Only these accounts are subject to the email verification gate.
func (p *Principal) PasswordAccount() bool {
	return p != nil && p.Provider == "password"
}

// Verification failures. All map to 401 except ErrCertificateFetch, which is
// an upstream outage and maps to 503.
var (
	ErrNoToken          = errors.New("missing authorization header")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenRevoked     = errors.New("token revoked")
	ErrUserDisabled     = errors.New("user disabled")
	ErrCertificateFetch = errors.New("failed to fetch certificates")
)

// Verifier turns a bearer token into a Principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// FirebaseVerifier verifies ID tokens with the Firebase Admin SDK.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify validates the ID token, including the revocation check, and maps
// SDK failures onto the package's error set.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Principal, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		switch {
		case fbauth.IsCertificateFetchFailed(err):
			return nil, ErrCertificateFetch
		case fbauth.IsIDTokenExpired(err):
			return nil, ErrTokenExpired
		case fbauth.IsIDTokenRevoked(err):
			return nil, ErrTokenRevoked
		case fbauth.IsUserDisabled(err):
			return nil, ErrUserDisabled
		case fbauth.IsIDTokenInvalid(err):
			return nil, ErrInvalidToken
		default:
			return nil, ErrInvalidToken
		}
	}

	return principalFromClaims(token.UID, token.Claims), nil
}

// principalFromClaims builds a Principal from ID token claims.
func principalFromClaims(uid string, claims map[string]any) *Principal {
	email, _ := claims["email"].(string)
	verified, _ := claims["email_verified"].(bool)
	name, _ := claims["name"].(string)
	phone, _ := claims["phone_number"].(string)

	provider := "password"
	if fb, ok := claims["firebase"].(map[string]any); ok {
		if sp, ok := fb["sign_in_provider"].(string); ok && sp != "" {
			provider = sp
		}
	}

	return &Principal{
		UID:           uid,
		Email:         email,
		DisplayName:   name,
		PhoneNumber:   phone,
		EmailVerified: verified,
		Provider:      provider,
	}
}

// ExtractBearerToken pulls the credential out of an Authorization header.
// The scheme comparison is case-insensitive per RFC 9110.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

var _ Verifier = (*FirebaseVerifier)(nil)
