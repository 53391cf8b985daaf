package admin

import (
	profilehttp "github.com/cardfolio/cardfolio/internal/http/v1/profile"
	"github.com/cardfolio/cardfolio/internal/platform/timeutil"
)

// UserRow is one entry in the administrative account listing. Status carries
// the display label; StatusValue the raw enum member, null when the account
// has no profile yet.
type UserRow struct {
	ID          string        `json:"id"           doc:"Account identifier"`
	Username    string        `json:"username"     doc:"Unique username"`
	Email       string        `json:"email"        doc:"Account email"`
	FirstName   string        `json:"first_name"   doc:"First name"`
	LastName    string        `json:"last_name"    doc:"Last name"`
	DateJoined  timeutil.Time `json:"date_joined"  doc:"Registration timestamp"`
	IsStaff     bool          `json:"is_staff"     doc:"Administrative flag"`
	Status      string        `json:"status"       doc:"Status label, or \"No Profile\""`
	StatusValue *string       `json:"status_value" doc:"Raw status value, null without a profile"`
	ProfileID   *string       `json:"profile_id"   doc:"Profile identifier, null without a profile"`
}

// UserListOutput for GET /admin/users
type UserListOutput struct {
	Body []UserRow
}

// StatusUpdateOutput for PUT /admin/users/{profileId}/status
type StatusUpdateOutput struct {
	Body profilehttp.Profile
}
