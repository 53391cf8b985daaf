package profile

// PublicProfileInput for GET /profile/{username}
type PublicProfileInput struct {
	Username string `path:"username" maxLength:"150" doc:"Username of the profile owner" example:"alice"`
}

// MyProfileGetInput for GET /my-profile (no body needed)
type MyProfileGetInput struct{}

// MyProfileUpdateInput for PUT /my-profile.
//
// The body arrives either as a JSON object or as multipart/form-data with
// file parts (profile_image, gallery_0..gallery_2), so it is taken raw and
// decoded by the form package.
type MyProfileUpdateInput struct {
	ContentType string `header:"Content-Type" doc:"application/json or multipart/form-data"`
	RawBody     []byte
}
