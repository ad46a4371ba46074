package profile

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// ProfileUpdateInput for PUT /profile
type ProfileUpdateInput struct {
	Body struct {
		Name        *string `json:"name,omitempty"    minLength:"1" maxLength:"100" doc:"Display name"   example:"Jane Doe"`
		Email       *string `json:"email,omitempty"   format:"email"                doc:"Email address"  example:"jane@example.com"`
		Phone       *string `json:"phone,omitempty"   maxLength:"20"                doc:"Phone number"   example:"+358401234567"`
		Age         *string `json:"age,omitempty"     maxLength:"3"                 doc:"Age"            example:"34"`
		DateOfBirth *string `json:"dob,omitempty"     maxLength:"10"                doc:"Date of birth"  example:"1992-03-20"`
		Address     *string `json:"address,omitempty" maxLength:"200"               doc:"Postal address" example:"12 Elm Street"`
		Gender      *string `json:"gender,omitempty"  maxLength:"20"                doc:"Gender"         example:"female"`
	}
}
