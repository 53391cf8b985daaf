package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cardfolio/cardfolio/internal/platform/form"
	applog "github.com/cardfolio/cardfolio/internal/platform/logging"
	"github.com/cardfolio/cardfolio/internal/platform/storage"
	"github.com/cardfolio/cardfolio/internal/service/account"
)

// Media directories for uploaded images.
const (
	profileImageDir = "profiles"
	galleryImageDir = "gallery"
)

// NoProfileLabel marks accounts without a profile in admin listings.
const NoProfileLabel = "No Profile"

// AccountSummary is one row in the administrative account listing.
type AccountSummary struct {
	UID         string
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Admin       bool
	DateJoined  time.Time
	Status      string  // display label, or NoProfileLabel
	StatusValue *Status // nil when no profile exists
	ProfileID   *string // nil when no profile exists
}

// Service orchestrates normalization, gallery reconciliation, blob storage
// and the profile store.
type Service struct {
	accounts account.Directory
	store    Store
	media    storage.Storage
}

// NewService wires the profile service with its collaborators.
func NewService(accounts account.Directory, store Store, media storage.Storage) *Service {
	return &Service{accounts: accounts, store: store, media: media}
}

// GetByUsername resolves the public profile for a username. Account and
// profile misses are distinct errors so callers can report "User not found"
// versus "Profile not found".
func (s *Service) GetByUsername(ctx context.Context, username string) (*View, error) {
	acct, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			applog.LogInfo(ctx, "public profile lookup: unknown username",
				zap.String("username", username))
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup account %q: %w", username, err)
	}

	p, err := s.store.Get(ctx, acct.UID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			applog.LogInfo(ctx, "public profile lookup: account has no profile",
				zap.String("username", username), zap.String("uid", acct.UID))
		}
		return nil, err
	}
	return s.hydrate(ctx, p, acct.Username)
}

// AccountForUID resolves the caller's account record. An authenticated
// caller whose account record is missing maps to ErrAccountNotFound.
func (s *Service) AccountForUID(ctx context.Context, uid string) (*account.Account, error) {
	acct, err := s.accounts.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup account %s: %w", uid, err)
	}
	return acct, nil
}

// GetOrCreate returns the account's profile, creating it with defaults on
// first access. Creation is race-safe: losing a concurrent create is treated
// as success and the winner's profile is returned.
func (s *Service) GetOrCreate(ctx context.Context, acct *account.Account) (*View, error) {
	p, err := s.store.Get(ctx, acct.UID)
	if errors.Is(err, ErrNotFound) {
		p, err = s.store.Create(ctx, acct.UID, defaultParams(acct))
		if errors.Is(err, ErrAlreadyExists) {
			p, err = s.store.Get(ctx, acct.UID)
		}
	}
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, p, acct.Username)
}

// defaultParams seeds a fresh profile from the account: full name, falling
// back to email, then username; email mirrored.
func defaultParams(acct *account.Account) CreateParams {
	name := acct.FullName()
	if name == "" {
		name = acct.Email
	}
	if name == "" {
		name = acct.Username
	}
	return CreateParams{Name: name, Email: acct.Email}
}

// Update applies a partial update from a raw field set.
//
// Order matters: normalization and the gallery size gate run before any
// persistence side effect, so a rejected request changes nothing. Scalar
// fields are persisted first, then the gallery replacement (when new files
// were submitted) runs as its own transactional unit.
func (s *Service) Update(ctx context.Context, acct *account.Account, fields form.Fields) (*View, error) {
	normalized, verr := NormalizeUpdate(fields)
	if verr != nil {
		return nil, verr
	}
	uploads, verr := ReconcileGallery(normalized.Gallery)
	if verr != nil {
		return nil, verr
	}

	// Update targets the caller's own profile, creating it if the account
	// predates profile auto-creation.
	if _, err := s.GetOrCreate(ctx, acct); err != nil {
		return nil, err
	}

	params := normalized.Params
	if normalized.ProfileImage != nil {
		path, err := s.saveImage(ctx, profileImageDir, normalized.ProfileImage)
		if err != nil {
			return nil, err
		}
		params.ProfileImage = &path
	}

	p, err := s.store.ApplyUpdate(ctx, acct.UID, params)
	if err != nil {
		return nil, err
	}

	if len(uploads) > 0 {
		paths := make([]string, 0, len(uploads))
		for _, upload := range uploads {
			path, err := s.saveImage(ctx, galleryImageDir, upload.File)
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
		if _, err := s.store.ReplaceGallery(ctx, acct.UID, paths); err != nil {
			return nil, err
		}
	}

	return s.hydrate(ctx, p, acct.Username)
}

// ListAccounts returns every account with its profile status attached, or
// the NoProfileLabel sentinel. Accounts lacking a profile are never skipped.
func (s *Service) ListAccounts(ctx context.Context) ([]AccountSummary, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	summaries := make([]AccountSummary, 0, len(accounts))
	for _, acct := range accounts {
		summary := AccountSummary{
			UID:        acct.UID,
			Username:   acct.Username,
			Email:      acct.Email,
			FirstName:  acct.FirstName,
			LastName:   acct.LastName,
			Admin:      acct.Admin,
			DateJoined: acct.DateJoined,
			Status:     NoProfileLabel,
		}

		p, err := s.store.Get(ctx, acct.UID)
		switch {
		case err == nil:
			status := p.Status
			profileID := p.ID
			summary.Status = status.Label()
			summary.StatusValue = &status
			summary.ProfileID = &profileID
		case errors.Is(err, ErrNotFound):
			// keep the sentinel
		default:
			return nil, fmt.Errorf("load profile for %s: %w", acct.UID, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// SetStatus moves a profile to a new fulfillment stage. The value is checked
// against the enumeration before any mutation.
func (s *Service) SetStatus(ctx context.Context, profileID, newStatus string) (*View, error) {
	status := Status(newStatus)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	p, err := s.store.SetStatus(ctx, profileID, status)
	if err != nil {
		return nil, err
	}

	username := ""
	if acct, err := s.accounts.Get(ctx, profileID); err == nil {
		username = acct.Username
	}
	return s.hydrate(ctx, p, username)
}

func (s *Service) saveImage(ctx context.Context, dir string, file *form.File) (string, error) {
	path, err := s.media.Save(ctx, dir, file.Filename, file.ContentType, bytes.NewReader(file.Data))
	if err != nil {
		return "", fmt.Errorf("store %s image: %w", dir, err)
	}
	return path, nil
}

func (s *Service) hydrate(ctx context.Context, p *Profile, username string) (*View, error) {
	gallery, err := s.store.Gallery(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load gallery for %s: %w", p.ID, err)
	}
	if len(gallery) > MaxGalleryImages {
		gallery = gallery[:MaxGalleryImages]
	}
	return &View{Profile: p, Gallery: gallery, Username: username}, nil
}
