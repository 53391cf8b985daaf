package profile

// PublicProfileOutput for GET /profile/{username}
type PublicProfileOutput struct {
	Body Profile
}

// MyProfileGetOutput for GET /my-profile
type MyProfileGetOutput struct {
	Body Profile
}

// MyProfileUpdateOutput for PUT /my-profile
type MyProfileUpdateOutput struct {
	Body Profile
}
