package auth

// Session represents an established sign-in.
type Session struct {
	UID           string `json:"uid"           doc:"Account identifier"          example:"8f14e45f"`
	Email         string `json:"email"         doc:"Email address"               example:"jane@example.com"`
	Name          string `json:"name"          doc:"Display name"                example:"Jane Doe"`
	Phone         string `json:"phone"         doc:"Phone number"                example:"+358401234567"`
	EmailVerified bool   `json:"emailVerified" doc:"Email verification state"    example:"true"`
	Provider      string `json:"provider"      doc:"Sign-in method"              example:"password"`
	IDToken       string `json:"idToken"       doc:"Short-lived session token"   example:"eyJhbGciOi..."`
	RefreshToken  string `json:"refreshToken"  doc:"Long-lived refresh token"    example:"AMf-vBz..."`
	IsNewUser     bool   `json:"isNewUser"     doc:"Account created by this call" example:"false"`
}

// Account represents the authenticated caller, as seen by GET /auth/me.
type Account struct {
	UID           string `json:"uid"           doc:"Account identifier"       example:"8f14e45f"`
	Email         string `json:"email"         doc:"Email address"            example:"jane@example.com"`
	Name          string `json:"name"          doc:"Display name"             example:"Jane Doe"`
	Phone         string `json:"phone"         doc:"Phone number"             example:"+358401234567"`
	EmailVerified bool   `json:"emailVerified" doc:"Email verification state" example:"true"`
	Provider      string `json:"provider"      doc:"Sign-in method"           example:"password"`
}
