package profile

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound        = errors.New("profile not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrAlreadyExists   = errors.New("profile already exists")
	ErrInvalidStatus   = errors.New("invalid status")
)

// Status is the administrator-controlled fulfillment stage of a profile.
type Status string

const (
	StatusPaymentReceived Status = "payment_received"
	StatusPrinting        Status = "printing"
	StatusShipped         Status = "shipped"
	StatusDelivered       Status = "delivered"
)

// Valid reports whether s is a member of the status enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusPaymentReceived, StatusPrinting, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// Label returns the human-readable display name for s.
func (s Status) Label() string {
	switch s {
	case StatusPaymentReceived:
		return "Payment Received"
	case StatusPrinting:
		return "Printing"
	case StatusShipped:
		return "Shipped"
	case StatusDelivered:
		return "Delivered"
	default:
		return string(s)
	}
}

// Template is the owner-selected visual layout for the public page.
type Template string

const (
	Template1 Template = "template1"
	Template2 Template = "template2"
	Template3 Template = "template3"
	Template4 Template = "template4"
)

// Valid reports whether t is a member of the template enumeration.
func (t Template) Valid() bool {
	switch t {
	case Template1, Template2, Template3, Template4:
		return true
	}
	return false
}

// Label returns the human-readable display name for t.
func (t Template) Label() string {
	switch t {
	case Template1:
		return "Template 1 - Classic"
	case Template2:
		return "Template 2 - Modern"
	case Template3:
		return "Template 3 - Minimal"
	case Template4:
		return "Template 4 - Elegant"
	default:
		return string(t)
	}
}

// Theme color defaults. Colors are free-form strings so gradients like
// "linear-gradient(...)" remain representable.
const (
	DefaultBackgroundColor = "#E6E0F2"
	DefaultCardColor       = "#FFFFFF"
	DefaultButtonColor     = "#1E3A8A"
)

// MaxGalleryImages is the gallery size ceiling per profile.
const MaxGalleryImages = 3

// Profile is the stored public-page record for one account. The profile ID
// equals the owning account's UID.
type Profile struct {
	ID           string
	Name         string
	Designation  string
	Email        string
	Phone        string
	Whatsapp     string
	Instagram    string
	Linkedin     string
	Youtube      string
	Website      string
	Twitter      string
	Figma        string
	Others       map[string]string
	About        string
	ProfileImage string // media path, "" when unset
	Status       Status
	Template     Template

	BackgroundColor string
	CardColor       string
	ButtonColor     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GalleryImage is one supplementary image owned by a profile.
type GalleryImage struct {
	ID        string
	Image     string // media path
	CreatedAt time.Time
}

// View is a profile hydrated for presentation, with its gallery
// (oldest-first) and the owning account's username.
type View struct {
	Profile  *Profile
	Gallery  []GalleryImage
	Username string
}

// CreateParams seed a new profile; everything else takes defaults.
type CreateParams struct {
	Name  string
	Email string
}

// UpdateParams is a typed partial update. Nil means "leave unchanged";
// a pointer to the zero value is an explicit clear.
type UpdateParams struct {
	Name         *string
	Designation  *string
	Email        *string
	Phone        *string
	Whatsapp     *string
	Instagram    *string
	Linkedin     *string
	Youtube      *string
	Website      *string
	Twitter      *string
	Figma        *string
	Others       *map[string]string
	About        *string
	ProfileImage *string
	Template     *Template

	BackgroundColor *string
	CardColor       *string
	ButtonColor     *string
}

// Store is the persistence boundary for profiles and their galleries.
//
// Implementations must be safe for concurrent use and must apply
// ReplaceGallery as a single transactional unit, so a crash mid-replacement
// never leaves a profile with neither the old nor the new gallery recorded.
type Store interface {
	// Get returns the profile for uid, or ErrNotFound.
	Get(ctx context.Context, uid string) (*Profile, error)

	// Create writes a new profile with defaults, or ErrAlreadyExists.
	Create(ctx context.Context, uid string, params CreateParams) (*Profile, error)

	// ApplyUpdate persists the non-nil fields of params and refreshes the
	// update timestamp. Returns ErrNotFound when the profile is absent.
	ApplyUpdate(ctx context.Context, uid string, params UpdateParams) (*Profile, error)

	// Gallery returns the profile's gallery images oldest-first.
	Gallery(ctx context.Context, uid string) ([]GalleryImage, error)

	// ReplaceGallery atomically deletes the existing gallery and records the
	// given media paths in order. Returns the new gallery oldest-first.
	ReplaceGallery(ctx context.Context, uid string, images []string) ([]GalleryImage, error)

	// SetStatus updates only the status field and the update timestamp.
	// Returns ErrNotFound when the profile is absent.
	SetStatus(ctx context.Context, profileID string, status Status) (*Profile, error)
}
