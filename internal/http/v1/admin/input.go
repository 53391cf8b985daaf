package admin

// UserListInput for GET /admin/users (no body needed)
type UserListInput struct{}

// StatusUpdateInput for PUT /admin/users/{profileId}/status
type StatusUpdateInput struct {
	ProfileID string `path:"profileId" doc:"Profile identifier" example:"user-123"`
	Body      struct {
		Status string `json:"status" required:"true" doc:"New fulfillment status" example:"shipped"`
	}
}
