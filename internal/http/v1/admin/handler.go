package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	profilehttp "github.com/cardfolio/cardfolio/internal/http/v1/profile"
	"github.com/cardfolio/cardfolio/internal/platform/auth"
	"github.com/cardfolio/cardfolio/internal/platform/timeutil"
	profilesvc "github.com/cardfolio/cardfolio/internal/service/profile"
)

// Service is the administrative operations surface these handlers need.
type Service interface {
	ListAccounts(ctx context.Context) ([]profilesvc.AccountSummary, error)
	SetStatus(ctx context.Context, profileID, status string) (*profilesvc.View, error)
}

// Register registers the administrator-only endpoints. Both require the
// admin security scope, enforced by the auth middleware.
func Register(api huma.API, svc Service, mediaBase string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/admin/users",
		Summary:     "List accounts with profile status",
		Description: "Returns every account ordered by join date, with fulfillment status attached " +
			"where a profile exists.",
		Tags: []string{"Admin"},
		Security: []map[string][]string{
			{"bearerAuth": {auth.ScopeAdmin}},
		},
	}, func(ctx context.Context, _ *UserListInput) (*UserListOutput, error) {
		summaries, err := svc.ListAccounts(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}

		rows := make([]UserRow, 0, len(summaries))
		for _, s := range summaries {
			row := UserRow{
				ID:         s.UID,
				Username:   s.Username,
				Email:      s.Email,
				FirstName:  s.FirstName,
				LastName:   s.LastName,
				DateJoined: timeutil.Time{Time: s.DateJoined},
				IsStaff:    s.Admin,
				Status:     s.Status,
			}
			if s.StatusValue != nil {
				value := string(*s.StatusValue)
				row.StatusValue = &value
			}
			row.ProfileID = s.ProfileID
			rows = append(rows, row)
		}
		return &UserListOutput{Body: rows}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-user-status",
		Method:      http.MethodPut,
		Path:        "/admin/users/{profileId}/status",
		Summary:     "Update a profile's fulfillment status",
		Description: "Moves the profile to a new fulfillment stage. The owner-facing update endpoint " +
			"cannot change status; this is the only mutation path.",
		Tags: []string{"Admin"},
		Security: []map[string][]string{
			{"bearerAuth": {auth.ScopeAdmin}},
		},
	}, func(ctx context.Context, input *StatusUpdateInput) (*StatusUpdateOutput, error) {
		view, err := svc.SetStatus(ctx, input.ProfileID, input.Body.Status)
		if err != nil {
			switch {
			case errors.Is(err, profilesvc.ErrInvalidStatus):
				return nil, huma.Error400BadRequest("Invalid status")
			case errors.Is(err, profilesvc.ErrNotFound):
				return nil, huma.Error404NotFound("Profile not found")
			default:
				return nil, huma.Error500InternalServerError("internal error")
			}
		}
		return &StatusUpdateOutput{
			Body: profilehttp.NewProfile(view, mediaBase),
		}, nil
	})
}
