package routes

import (
	"github.com/danielgtaylor/huma/v2"

	adminhandler "github.com/cardfolio/cardfolio/internal/http/v1/admin"
	profilehandler "github.com/cardfolio/cardfolio/internal/http/v1/profile"
	"github.com/cardfolio/cardfolio/internal/platform/auth"
	profilesvc "github.com/cardfolio/cardfolio/internal/service/profile"
)

// Register wires all HTTP routes into the provided API router.
func Register(
	api huma.API,
	verifier auth.Verifier,
	profileService *profilesvc.Service,
	mediaBase string,
) {
	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	profilehandler.Register(api, profileService, mediaBase)
	adminhandler.Register(api, profileService, mediaBase)
}
