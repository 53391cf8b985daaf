package profile

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cardfolio/cardfolio/internal/platform/auth"
	"github.com/cardfolio/cardfolio/internal/platform/form"
	"github.com/cardfolio/cardfolio/internal/service/account"
	profilesvc "github.com/cardfolio/cardfolio/internal/service/profile"
)

// Service is the profile operations surface these handlers need.
type Service interface {
	GetByUsername(ctx context.Context, username string) (*profilesvc.View, error)
	AccountForUID(ctx context.Context, uid string) (*account.Account, error)
	GetOrCreate(ctx context.Context, acct *account.Account) (*profilesvc.View, error)
	Update(ctx context.Context, acct *account.Account, fields form.Fields) (*profilesvc.View, error)
}

// Register registers the public and owner-facing profile endpoints.
func Register(api huma.API, svc Service, mediaBase string) {
	huma.Register(api, huma.Operation{
		OperationID: "get-public-profile",
		Method:      http.MethodGet,
		Path:        "/profile/{username}",
		Summary:     "Get a public profile",
		Description: "Retrieves the public profile page data for a username. No authentication required.",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *PublicProfileInput) (*PublicProfileOutput, error) {
		view, err := svc.GetByUsername(ctx, input.Username)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &PublicProfileOutput{
			Body: NewProfile(view, mediaBase),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-my-profile",
		Method:      http.MethodGet,
		Path:        "/my-profile",
		Summary:     "Get the caller's profile",
		Description: "Retrieves the authenticated user's profile, creating it with defaults on first access.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *MyProfileGetInput) (*MyProfileGetOutput, error) {
		user := auth.UserFromContext(ctx)

		acct, err := svc.AccountForUID(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		view, err := svc.GetOrCreate(ctx, acct)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &MyProfileGetOutput{
			Body: NewProfile(view, mediaBase),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-my-profile",
		Method:      http.MethodPut,
		Path:        "/my-profile",
		Summary:     "Update the caller's profile",
		Description: "Partially updates the authenticated user's profile from a JSON object or a " +
			"multipart form. Gallery files are submitted as gallery_0..gallery_2 parts and replace " +
			"the whole gallery; omitting them leaves the gallery untouched.",
		Tags: []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *MyProfileUpdateInput) (*MyProfileUpdateOutput, error) {
		user := auth.UserFromContext(ctx)

		acct, err := svc.AccountForUID(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}

		fields, err := form.Parse(input.ContentType, input.RawBody)
		if err != nil {
			if errors.Is(err, form.ErrUnsupportedContentType) {
				return nil, huma.Error415UnsupportedMediaType("expected application/json or multipart/form-data")
			}
			return nil, huma.Error400BadRequest("malformed request body", err)
		}

		view, err := svc.Update(ctx, acct, fields)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &MyProfileUpdateOutput{
			Body: NewProfile(view, mediaBase),
		}, nil
	})
}

func mapServiceError(err error) error {
	var verr *profilesvc.ValidationError
	if errors.As(err, &verr) {
		return validationError(verr)
	}
	switch {
	case errors.Is(err, profilesvc.ErrAccountNotFound):
		return huma.Error404NotFound("User not found")
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("Profile not found")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

// validationError renders collected field problems as one 400 with a detail
// per field message.
func validationError(verr *profilesvc.ValidationError) error {
	fields := make([]string, 0, len(verr.Fields))
	for field := range verr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]error, 0, len(fields))
	for _, field := range fields {
		for _, msg := range verr.Fields[field] {
			details = append(details, &huma.ErrorDetail{Location: field, Message: msg})
		}
	}
	return huma.Error400BadRequest("validation failed", details...)
}
