package profile

import (
	"strings"

	"github.com/cardfolio/cardfolio/internal/platform/timeutil"
	profilesvc "github.com/cardfolio/cardfolio/internal/service/profile"
)

// Profile is the externally visible profile representation.
//
// Status is present but read-only here: the owner-facing update contract
// never accepts it, only the administrative endpoint mutates it.
type Profile struct {
	Username        string            `json:"username"         doc:"Owning account's username"  example:"alice"`
	Name            string            `json:"name"             doc:"Display name"               example:"Alice Example"`
	Designation     string            `json:"designation"      doc:"Job title or role"          example:"Product Designer"`
	Email           string            `json:"email"            doc:"Contact email"              example:"alice@example.com"`
	Phone           string            `json:"phone"            doc:"Phone number"               example:"+358401234567"`
	Whatsapp        string            `json:"whatsapp"         doc:"WhatsApp contact"           example:"+358401234567"`
	Instagram       string            `json:"instagram"        doc:"Instagram URL"`
	Linkedin        string            `json:"linkedin"         doc:"LinkedIn URL"`
	Youtube         string            `json:"youtube"          doc:"YouTube URL"`
	Website         string            `json:"website"          doc:"Personal website URL"`
	Twitter         string            `json:"twitter"          doc:"Twitter URL"`
	Figma           string            `json:"figma"            doc:"Figma URL"`
	Others          map[string]string `json:"others"           doc:"Additional label→URL links"`
	About           string            `json:"about"            doc:"Free-text about section"`
	ProfileImageURL *string           `json:"profile_image_url" doc:"Profile image locator, null when unset"`
	GalleryURLs     []string          `json:"gallery_urls"     doc:"Gallery image locators, oldest first" maxItems:"3"`
	Status          string            `json:"status"           doc:"Fulfillment status (admin-controlled)" enum:"payment_received,printing,shipped,delivered"`
	Template        string            `json:"template"         doc:"Public page layout"         enum:"template1,template2,template3,template4"`
	BackgroundColor string            `json:"background_color" doc:"Page background color or gradient"`
	CardColor       string            `json:"card_color"       doc:"Card color or gradient"`
	ButtonColor     string            `json:"button_color"     doc:"Button color or gradient"`
	CreatedAt       timeutil.Time     `json:"created_at"       doc:"Creation timestamp"`
	UpdatedAt       timeutil.Time     `json:"updated_at"       doc:"Last update timestamp"`
}

// NewProfile maps a hydrated profile view to its external representation,
// resolving media paths against mediaBase when one is configured and
// falling back to relative locators otherwise.
func NewProfile(view *profilesvc.View, mediaBase string) Profile {
	p := view.Profile

	galleryURLs := make([]string, 0, len(view.Gallery))
	for _, img := range view.Gallery {
		galleryURLs = append(galleryURLs, resolveMedia(img.Image, mediaBase))
	}

	var imageURL *string
	if p.ProfileImage != "" {
		resolved := resolveMedia(p.ProfileImage, mediaBase)
		imageURL = &resolved
	}

	return Profile{
		Username:        view.Username,
		Name:            p.Name,
		Designation:     p.Designation,
		Email:           p.Email,
		Phone:           p.Phone,
		Whatsapp:        p.Whatsapp,
		Instagram:       p.Instagram,
		Linkedin:        p.Linkedin,
		Youtube:         p.Youtube,
		Website:         p.Website,
		Twitter:         p.Twitter,
		Figma:           p.Figma,
		Others:          p.Others,
		About:           p.About,
		ProfileImageURL: imageURL,
		GalleryURLs:     galleryURLs,
		Status:          string(p.Status),
		Template:        string(p.Template),
		BackgroundColor: p.BackgroundColor,
		CardColor:       p.CardColor,
		ButtonColor:     p.ButtonColor,
		CreatedAt:       timeutil.Time{Time: p.CreatedAt},
		UpdatedAt:       timeutil.Time{Time: p.UpdatedAt},
	}
}

func resolveMedia(path, mediaBase string) string {
	if mediaBase == "" {
		return "/" + strings.TrimPrefix(path, "/")
	}
	return strings.TrimSuffix(mediaBase, "/") + "/" + strings.TrimPrefix(path, "/")
}
