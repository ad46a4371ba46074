package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// identityStub fakes the Identity Toolkit endpoint tree. Handlers are
// keyed by the endpoint suffix ("signUp", "lookup", ...).
func identityStub(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := strings.LastIndex(r.URL.Path, ":")
		if i < 0 {
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		endpoint := r.URL.Path[i+1:]
		h, ok := handlers[endpoint]
		if !ok {
			t.Errorf("unexpected endpoint %q", endpoint)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
}

func writeIdentityError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": status, "message": code},
	})
}

func TestClientSignUp(t *testing.T) {
	srv := identityStub(t, map[string]http.HandlerFunc{
		"signUp": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("key"); got != "test-key" {
				t.Errorf("expected API key in query, got %q", got)
			}
			var req signUpRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decoding request: %v", err)
			}
			if req.Email != "new@example.com" || !req.ReturnSecureToken {
				t.Errorf("unexpected request payload: %+v", req)
			}
			_ = json.NewEncoder(w).Encode(sessionResponse{
				LocalID:      "uid-1",
				Email:        "new@example.com",
				IDToken:      "token-1",
				RefreshToken: "refresh-1",
			})
		},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

	sess, err := c.SignUp(context.Background(), "new@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if sess.UID != "uid-1" {
		t.Errorf("expected uid-1, got %q", sess.UID)
	}
	if !sess.IsNewUser {
		t.Error("expected IsNewUser on sign-up")
	}
	if sess.Provider != "password" {
		t.Errorf("expected password provider, got %q", sess.Provider)
	}
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"EMAIL_EXISTS", ErrEmailInUse},
		{"WEAK_PASSWORD", ErrWeakPassword},
		{"INVALID_EMAIL", ErrInvalidEmail},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", ErrTooManyAttempts},
		{"INVALID_PHONE_NUMBER", ErrInvalidPhoneNumber},
		{"CAPTCHA_CHECK_FAILED", ErrChallengeSetup},
		{"INVALID_CODE", ErrInvalidCode},
		{"QUOTA_EXCEEDED", ErrRateLimited},
		{"INVALID_IDP_RESPONSE", ErrProviderFailure},
		{"SOMETHING_NOVEL", ErrAuthFailed},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			srv := identityStub(t, map[string]http.HandlerFunc{
				"signUp": func(w http.ResponseWriter, r *http.Request) {
					writeIdentityError(w, http.StatusBadRequest, tc.code)
				},
			})
			defer srv.Close()

			c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

			_, err := c.SignUp(context.Background(), "a@example.com", "pw")
			if !errors.Is(err, tc.want) {
				t.Errorf("code %s: expected %v, got %v", tc.code, tc.want, err)
			}
		})
	}
}

func TestClientErrorCodeSuffixStripped(t *testing.T) {
	srv := identityStub(t, map[string]http.HandlerFunc{
		"signUp": func(w http.ResponseWriter, r *http.Request) {
			writeIdentityError(w, http.StatusBadRequest,
				"WEAK_PASSWORD : Password should be at least 6 characters")
		},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

	_, err := c.SignUp(context.Background(), "a@example.com", "pw")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatal("expected UpstreamError in chain")
	}
	if ue.Code != "WEAK_PASSWORD" {
		t.Errorf("expected bare code, got %q", ue.Code)
	}
	if ue.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", ue.Status)
	}
}

func TestClientSignInHidesUnknownAccount(t *testing.T) {
	srv := identityStub(t, map[string]http.HandlerFunc{
		"signInWithPassword": func(w http.ResponseWriter, r *http.Request) {
			writeIdentityError(w, http.StatusBadRequest, "EMAIL_NOT_FOUND")
		},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

	_, err := c.SignIn(context.Background(), "nobody@example.com", "pw")
	if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	if errors.Is(err, ErrNoSuchAccount) {
		t.Error("sign-in must not reveal that the account does not exist")
	}
}

func TestClientSignInFetchesVerificationFlag(t *testing.T) {
	srv := identityStub(t, map[string]http.HandlerFunc{
		"signInWithPassword": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(sessionResponse{
				LocalID: "uid-2",
				Email:   "known@example.com",
				IDToken: "token-2",
			})
		},
		"lookup": func(w http.ResponseWriter, r *http.Request) {
			var req lookupRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.IDToken != "token-2" {
				t.Errorf("lookup got token %q", req.IDToken)
			}
			_, _ = w.Write([]byte(`{"users":[{"localId":"uid-2","email":"known@example.com","emailVerified":true}]}`))
		},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

	sess, err := c.SignIn(context.Background(), "known@example.com", "pw")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if !sess.EmailVerified {
		t.Error("expected EmailVerified from lookup")
	}
}

func TestClientFederatedSignIn(t *testing.T) {
	srv := identityStub(t, map[string]http.HandlerFunc{
		"signInWithIdp": func(w http.ResponseWriter, r *http.Request) {
			var req signInWithIdpRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decoding request: %v", err)
			}
			if req.PostBody != "id_token=google-cred&providerId=google.com" {
				t.Errorf("unexpected postBody %q", req.PostBody)
			}
			_ = json.NewEncoder(w).Encode(sessionResponse{
				LocalID:       "uid-3",
				Email:         "fed@example.com",
				EmailVerified: true,
				IDToken:       "token-3",
				IsNewUser:     true,
			})
		},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

	sess, err := c.FederatedSignIn(context.Background(), ProviderGoogle, "google-cred")
	if err != nil {
		t.Fatalf("FederatedSignIn failed: %v", err)
	}
	if !sess.IsNewUser {
		t.Error("expected IsNewUser")
	}
	if sess.Provider != "google.com" {
		t.Errorf("expected google.com provider, got %q", sess.Provider)
	}
}

func TestClientFederatedSignInRejectsUnknownProvider(t *testing.T) {
	c := NewClient(http.DefaultClient, "test-key")

	_, err := c.FederatedSignIn(context.Background(), Provider("github.com"), "cred")
	if !errors.Is(err, ErrProviderFailure) {
		t.Fatalf("expected ErrProviderFailure, got %v", err)
	}
}

func TestClientStartPhoneVerification(t *testing.T) {
	srv := identityStub(t, map[string]http.HandlerFunc{
		"sendVerificationCode": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"sessionInfo":"challenge-1"}`))
		},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

	info, err := c.StartPhoneVerification(context.Background(), "+15551234567", "captcha")
	if err != nil {
		t.Fatalf("StartPhoneVerification failed: %v", err)
	}
	if info != "challenge-1" {
		t.Errorf("expected challenge-1, got %q", info)
	}
}

func TestClientStartPhoneVerificationEmptySessionInfo(t *testing.T) {
	srv := identityStub(t, map[string]http.HandlerFunc{
		"sendVerificationCode": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

	_, err := c.StartPhoneVerification(context.Background(), "+15551234567", "captcha")
	if !errors.Is(err, ErrChallengeSetup) {
		t.Fatalf("expected ErrChallengeSetup, got %v", err)
	}
}

func TestClientSendPasswordResetUnknownEmail(t *testing.T) {
	srv := identityStub(t, map[string]http.HandlerFunc{
		"sendOobCode": func(w http.ResponseWriter, r *http.Request) {
			var req sendOobCodeRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.RequestType != "PASSWORD_RESET" {
				t.Errorf("expected PASSWORD_RESET, got %q", req.RequestType)
			}
			writeIdentityError(w, http.StatusBadRequest, "EMAIL_NOT_FOUND")
		},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

	err := c.SendPasswordReset(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNoSuchAccount) {
		t.Fatalf("expected ErrNoSuchAccount, got %v", err)
	}
}

func TestClientLookupNoUsers(t *testing.T) {
	srv := identityStub(t, map[string]http.HandlerFunc{
		"lookup": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"users":[]}`))
		},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

	_, err := c.Lookup(context.Background(), "stale-token")
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestClientLookupProvider(t *testing.T) {
	srv := identityStub(t, map[string]http.HandlerFunc{
		"lookup": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"users":[{"localId":"uid-4","providerUserInfo":[{"providerId":"google.com"}]}]}`))
		},
	})
	defer srv.Close()

	c := NewClient(srv.Client(), "test-key", WithBaseURL(srv.URL))

	p, err := c.Lookup(context.Background(), "token-4")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if p.Provider != "google.com" {
		t.Errorf("expected google.com, got %q", p.Provider)
	}
}

func TestWithBaseURLTrimsSlash(t *testing.T) {
	c := NewClient(http.DefaultClient, "k", WithBaseURL("http://example.test/v1/"))
	if c.baseURL != "http://example.test/v1" {
		t.Errorf("expected trailing slash trimmed, got %q", c.baseURL)
	}
}
