package auth

// SignUpOutput for POST /auth/signup (201 Created)
type SignUpOutput struct {
	Body Session
}

// SessionOutput for the sign-in endpoints
type SessionOutput struct {
	Body Session
}

// PhoneStartOutput for POST /auth/phone/start
type PhoneStartOutput struct {
	Body struct {
		SessionInfo string `json:"sessionInfo" doc:"Challenge handle for phone/verify" example:"AJOnW4..."`
	}
}

// MeOutput for GET /auth/me
type MeOutput struct {
	Body Account
}
