package profile

// ProfileGetOutput for GET /profile
type ProfileGetOutput struct {
	Body Profile
}

// ProfileUpdateOutput for PUT /profile
type ProfileUpdateOutput struct {
	Body Profile
}
