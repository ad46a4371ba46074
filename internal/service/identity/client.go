package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/smilepoint/clinic-api/internal/platform/auth"
	applog "github.com/smilepoint/clinic-api/internal/platform/logging"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// codeMapping translates Identity Toolkit error codes into the closed
// taxonomy. The provider sometimes suffixes codes with an explanation
// ("WEAK_PASSWORD : Password should be ..."); only the leading token is
// matched. Codes absent from the table surface as ErrAuthFailed.
var codeMapping = map[string]error{
	"EMAIL_EXISTS":                ErrEmailInUse,
	"WEAK_PASSWORD":               ErrWeakPassword,
	"INVALID_EMAIL":               ErrInvalidEmail,
	"MISSING_EMAIL":               ErrInvalidEmail,
	"INVALID_LOGIN_CREDENTIALS":   ErrInvalidCredential,
	"INVALID_PASSWORD":            ErrInvalidCredential,
	"MISSING_PASSWORD":            ErrInvalidCredential,
	"USER_DISABLED":               ErrInvalidCredential,
	"EMAIL_NOT_FOUND":             ErrNoSuchAccount,
	"TOO_MANY_ATTEMPTS_TRY_LATER": ErrTooManyAttempts,
	"INVALID_PHONE_NUMBER":        ErrInvalidPhoneNumber,
	"MISSING_PHONE_NUMBER":        ErrInvalidPhoneNumber,
	"CAPTCHA_CHECK_FAILED":        ErrChallengeSetup,
	"MISSING_RECAPTCHA_TOKEN":     ErrChallengeSetup,
	"INVALID_RECAPTCHA_TOKEN":     ErrChallengeSetup,
	"INVALID_CODE":                ErrInvalidCode,
	"MISSING_CODE":                ErrInvalidCode,
	"INVALID_SESSION_INFO":        ErrInvalidCode,
	"SESSION_EXPIRED":             ErrInvalidCode,
	"RESET_PASSWORD_EXCEED_LIMIT": ErrRateLimited,
	"QUOTA_EXCEEDED":              ErrRateLimited,

	"INVALID_IDP_RESPONSE":             ErrProviderFailure,
	"INVALID_ID_TOKEN":                 ErrProviderFailure,
	"FEDERATED_USER_ID_ALREADY_LINKED": ErrProviderFailure,
}

// Client implements Service against the Identity Toolkit REST API. The
// Admin SDK cannot verify passwords or drive OTP challenges, so credential
// operations go through the same endpoints the web SDK uses.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (useful for testing and the emulator).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// NewClient creates a new Identity Toolkit client. When
// FIREBASE_AUTH_EMULATOR_HOST is set, requests go to the emulator.
func NewClient(httpClient *http.Client, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
	}
	if host := os.Getenv("FIREBASE_AUTH_EMULATOR_HOST"); host != "" {
		c.baseURL = "http://" + host + "/identitytoolkit.googleapis.com/v1"
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Identity Toolkit payload types (camelCase JSON matching the API).

type signUpRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInWithIdpRequest struct {
	PostBody            string `json:"postBody"`
	RequestURI          string `json:"requestUri"`
	ReturnSecureToken   bool   `json:"returnSecureToken"`
	ReturnIdpCredential bool   `json:"returnIdpCredential"`
}

type sendVerificationCodeRequest struct {
	PhoneNumber    string `json:"phoneNumber"`
	RecaptchaToken string `json:"recaptchaToken,omitempty"`
}

type signInWithPhoneRequest struct {
	SessionInfo string `json:"sessionInfo"`
	Code        string `json:"code"`
}

type sendOobCodeRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email,omitempty"`
	IDToken     string `json:"idToken,omitempty"`
}

type updateAccountRequest struct {
	IDToken           string `json:"idToken"`
	Password          string `json:"password,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type sessionResponse struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhoneNumber   string `json:"phoneNumber"`
	EmailVerified bool   `json:"emailVerified"`
	IDToken       string `json:"idToken"`
	RefreshToken  string `json:"refreshToken"`
	ProviderID    string `json:"providerId"`
	IsNewUser     bool   `json:"isNewUser"`
}

type sendVerificationCodeResponse struct {
	SessionInfo string `json:"sessionInfo"`
}

type lookupResponse struct {
	Users []struct {
		LocalID          string `json:"localId"`
		Email            string `json:"email"`
		EmailVerified    bool   `json:"emailVerified"`
		DisplayName      string `json:"displayName"`
		PhoneNumber      string `json:"phoneNumber"`
		ProviderUserInfo []struct {
			ProviderID string `json:"providerId"`
		} `json:"providerUserInfo"`
	} `json:"users"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, endpoint string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", endpoint, err)
	}

	u := c.baseURL + "/accounts:" + endpoint + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling identity provider: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.upstreamError(ctx, endpoint, resp)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

// upstreamError maps a non-200 provider response onto the closed taxonomy.
func (c *Client) upstreamError(ctx context.Context, endpoint string, resp *http.Response) error {
	var er errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&er)

	code := er.Error.Message
	if i := strings.IndexAny(code, " :"); i > 0 {
		code = code[:i]
	}

	cause, ok := codeMapping[code]
	if !ok {
		cause = ErrAuthFailed
	}

	applog.LogWarn(ctx, "identity provider error",
		zap.String("endpoint", endpoint),
		zap.String("code", code),
		zap.Int("status", resp.StatusCode),
	)

	return &UpstreamError{Code: code, Status: resp.StatusCode, cause: cause}
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var out sessionResponse
	err := c.post(ctx, "signUp", signUpRequest{Email: email, Password: password, ReturnSecureToken: true}, &out)
	if err != nil {
		return nil, err
	}
	return &Session{
		UID:          out.LocalID,
		Email:        out.Email,
		DisplayName:  out.DisplayName,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		Provider:     "password",
		IsNewUser:    true,
	}, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var out sessionResponse
	err := c.post(ctx, "signInWithPassword", signInRequest{Email: email, Password: password, ReturnSecureToken: true}, &out)
	if err != nil {
		// The login path never distinguishes unknown accounts from bad
		// passwords, to avoid account enumeration.
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.cause == ErrNoSuchAccount {
			ue.cause = ErrInvalidCredential
		}
		return nil, err
	}

	verified, lookupErr := c.emailVerified(ctx, out.IDToken)
	if lookupErr != nil {
		return nil, lookupErr
	}

	return &Session{
		UID:           out.LocalID,
		Email:         out.Email,
		DisplayName:   out.DisplayName,
		EmailVerified: verified,
		IDToken:       out.IDToken,
		RefreshToken:  out.RefreshToken,
		Provider:      "password",
	}, nil
}

func (c *Client) FederatedSignIn(ctx context.Context, provider Provider, providerToken string) (*Session, error) {
	if !provider.Valid() {
		return nil, ErrProviderFailure
	}
	var out sessionResponse
	err := c.post(ctx, "signInWithIdp", signInWithIdpRequest{
		PostBody:            "id_token=" + providerToken + "&providerId=" + string(provider),
		RequestURI:          "http://localhost",
		ReturnSecureToken:   true,
		ReturnIdpCredential: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &Session{
		UID:           out.LocalID,
		Email:         out.Email,
		DisplayName:   out.DisplayName,
		EmailVerified: out.EmailVerified,
		IDToken:       out.IDToken,
		RefreshToken:  out.RefreshToken,
		Provider:      string(provider),
		IsNewUser:     out.IsNewUser,
	}, nil
}

func (c *Client) StartPhoneVerification(ctx context.Context, phoneNumber, recaptchaToken string) (string, error) {
	var out sendVerificationCodeResponse
	err := c.post(ctx, "sendVerificationCode", sendVerificationCodeRequest{
		PhoneNumber:    phoneNumber,
		RecaptchaToken: recaptchaToken,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.SessionInfo == "" {
		return "", ErrChallengeSetup
	}
	return out.SessionInfo, nil
}

func (c *Client) ConfirmPhoneCode(ctx context.Context, sessionInfo, code string) (*Session, error) {
	var out sessionResponse
	err := c.post(ctx, "signInWithPhoneNumber", signInWithPhoneRequest{SessionInfo: sessionInfo, Code: code}, &out)
	if err != nil {
		return nil, err
	}
	return &Session{
		UID:          out.LocalID,
		PhoneNumber:  out.PhoneNumber,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		Provider:     "phone",
		IsNewUser:    out.IsNewUser,
	}, nil
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "sendOobCode", sendOobCodeRequest{RequestType: "PASSWORD_RESET", Email: email}, nil)
}

func (c *Client) SendEmailVerification(ctx context.Context, idToken string) error {
	return c.post(ctx, "sendOobCode", sendOobCodeRequest{RequestType: "VERIFY_EMAIL", IDToken: idToken}, nil)
}

func (c *Client) UpdatePassword(ctx context.Context, idToken, newPassword string) error {
	return c.post(ctx, "update", updateAccountRequest{IDToken: idToken, Password: newPassword, ReturnSecureToken: true}, nil)
}

func (c *Client) Lookup(ctx context.Context, idToken string) (*auth.Principal, error) {
	var out lookupResponse
	if err := c.post(ctx, "lookup", lookupRequest{IDToken: idToken}, &out); err != nil {
		return nil, err
	}
	if len(out.Users) == 0 {
		return nil, ErrAuthFailed
	}

	u := out.Users[0]
	provider := "password"
	if len(u.ProviderUserInfo) > 0 {
		provider = u.ProviderUserInfo[0].ProviderID
	}
	return &auth.Principal{
		UID:           u.LocalID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		PhoneNumber:   u.PhoneNumber,
		EmailVerified: u.EmailVerified,
		Provider:      provider,
	}, nil
}

// emailVerified fetches the account's verification flag; signInWithPassword
// does not return it.
func (c *Client) emailVerified(ctx context.Context, idToken string) (bool, error) {
	p, err := c.Lookup(ctx, idToken)
	if err != nil {
		return false, err
	}
	return p.EmailVerified, nil
}

// Compile-time interface check
var _ Service = (*Client)(nil)
