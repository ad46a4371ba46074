package auth

// SignUpInput for POST /auth/signup
type SignUpInput struct {
	Body struct {
		Name     string `json:"name"     minLength:"1" maxLength:"100" required:"true" doc:"Display name"  example:"Jane Doe"`
		Email    string `json:"email"    format:"email"                required:"true" doc:"Email address" example:"jane@example.com"`
		Password string `json:"password" minLength:"6" maxLength:"128" required:"true" doc:"Password"      example:"hunter22"`
		Phone    string `json:"phone"    maxLength:"20"                required:"false" doc:"Phone number"  example:"+358401234567"`
	}
}

// LoginInput for POST /auth/login
type LoginInput struct {
	Body struct {
		Email    string `json:"email"    format:"email"                required:"true" doc:"Email address" example:"jane@example.com"`
		Password string `json:"password" minLength:"1" maxLength:"128" required:"true" doc:"Password"      example:"hunter22"`
	}
}

// FederatedInput for POST /auth/federated
type FederatedInput struct {
	Body struct {
		Provider string `json:"provider" enum:"google.com,apple.com" required:"true" doc:"Federated identity provider" example:"google.com"`
		Token    string `json:"token"    minLength:"1"               required:"true" doc:"Provider-issued credential"  example:"eyJhbGciOi..."`
	}
}

// PhoneStartInput for POST /auth/phone/start
type PhoneStartInput struct {
	Body struct {
		Phone          string `json:"phone"          pattern:"^\\+[1-9]\\d{6,14}$" required:"true" doc:"Phone (E.164)"             example:"+358401234567"`
		RecaptchaToken string `json:"recaptchaToken"                                               doc:"reCAPTCHA challenge token" example:"03AGdBq2..."`
	}
}

// PhoneVerifyInput for POST /auth/phone/verify
type PhoneVerifyInput struct {
	Body struct {
		SessionInfo string `json:"sessionInfo" minLength:"1"               required:"true" doc:"Challenge handle from phone/start" example:"AJOnW4..."`
		Code        string `json:"code"        minLength:"4" maxLength:"8" required:"true" doc:"SMS verification code"             example:"123456"`
	}
}

// ResetInput for POST /auth/reset
type ResetInput struct {
	Body struct {
		Email string `json:"email" format:"email" required:"true" doc:"Email address" example:"jane@example.com"`
	}
}

// ChangePasswordInput for POST /auth/change-password
type ChangePasswordInput struct {
	Body struct {
		CurrentPassword string `json:"currentPassword" minLength:"1" maxLength:"128" required:"true" doc:"Current password"          example:"hunter22"`
		NewPassword     string `json:"newPassword"     minLength:"1" maxLength:"128" required:"true" doc:"New password"              example:"hunter23"`
		ConfirmPassword string `json:"confirmPassword" minLength:"1" maxLength:"128" required:"true" doc:"New password confirmation" example:"hunter23"`
	}
}

// MeInput for GET /auth/me (no body needed)
type MeInput struct{}
