package profile

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/cardfolio/cardfolio/internal/platform/logging"
)

const (
	profilesCollection = "profiles"
	gallerySubcoll     = "gallery"
)

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// firestoreProfile maps to the Firestore document structure.
type firestoreProfile struct {
	Name            string            `firestore:"name"`
	Designation     string            `firestore:"designation"`
	Email           string            `firestore:"email"`
	Phone           string            `firestore:"phone"`
	Whatsapp        string            `firestore:"whatsapp"`
	Instagram       string            `firestore:"instagram"`
	Linkedin        string            `firestore:"linkedin"`
	Youtube         string            `firestore:"youtube"`
	Website         string            `firestore:"website"`
	Twitter         string            `firestore:"twitter"`
	Figma           string            `firestore:"figma"`
	Others          map[string]string `firestore:"others"`
	About           string            `firestore:"about"`
	ProfileImage    string            `firestore:"profile_image"`
	Status          string            `firestore:"status"`
	Template        string            `firestore:"template"`
	BackgroundColor string            `firestore:"background_color"`
	CardColor       string            `firestore:"card_color"`
	ButtonColor     string            `firestore:"button_color"`
	CreatedAt       time.Time         `firestore:"created_at"`
	UpdatedAt       time.Time         `firestore:"updated_at"`
}

// firestoreGalleryImage maps to a gallery subcollection document.
type firestoreGalleryImage struct {
	Image     string    `firestore:"image"`
	CreatedAt time.Time `firestore:"created_at"`
}

func (fp *firestoreProfile) toProfile(uid string) *Profile {
	others := fp.Others
	if others == nil {
		others = map[string]string{}
	}
	return &Profile{
		ID:              uid,
		Name:            fp.Name,
		Designation:     fp.Designation,
		Email:           fp.Email,
		Phone:           fp.Phone,
		Whatsapp:        fp.Whatsapp,
		Instagram:       fp.Instagram,
		Linkedin:        fp.Linkedin,
		Youtube:         fp.Youtube,
		Website:         fp.Website,
		Twitter:         fp.Twitter,
		Figma:           fp.Figma,
		Others:          others,
		About:           fp.About,
		ProfileImage:    fp.ProfileImage,
		Status:          Status(fp.Status),
		Template:        Template(fp.Template),
		BackgroundColor: fp.BackgroundColor,
		CardColor:       fp.CardColor,
		ButtonColor:     fp.ButtonColor,
		CreatedAt:       fp.CreatedAt,
		UpdatedAt:       fp.UpdatedAt,
	}
}

// FirestoreStore implements Store using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) profileRef(uid string) *firestore.DocumentRef {
	return s.client.Collection(profilesCollection).Doc(uid)
}

func (s *FirestoreStore) galleryColl(uid string) *firestore.CollectionRef {
	return s.profileRef(uid).Collection(gallerySubcoll)
}

// Get retrieves a profile by the owning account's UID.
func (s *FirestoreStore) Get(ctx context.Context, uid string) (*Profile, error) {
	doc, err := s.profileRef(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	return fp.toProfile(uid), nil
}

// Create writes a new profile with defaults using a transaction to prevent
// duplicates under concurrent first access.
func (s *FirestoreStore) Create(ctx context.Context, uid string, params CreateParams) (*Profile, error) {
	docRef := s.profileRef(uid)
	now := time.Now().UTC()

	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		fp := firestoreProfile{
			Name:            params.Name,
			Email:           params.Email,
			Others:          map[string]string{},
			Status:          string(StatusPaymentReceived),
			Template:        string(Template1),
			BackgroundColor: DefaultBackgroundColor,
			CardColor:       DefaultCardColor,
			ButtonColor:     DefaultButtonColor,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := tx.Set(docRef, fp); err != nil {
			return err
		}
		result = fp.toProfile(uid)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "create", uid, "profile", uid, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "create", uid, "profile", uid, "success", nil)

	return result, nil
}

// ApplyUpdate persists the non-nil fields of params in a transaction.
func (s *FirestoreStore) ApplyUpdate(ctx context.Context, uid string, params UpdateParams) (*Profile, error) {
	docRef := s.profileRef(uid)

	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return err
		}

		applyParams(&fp, params)
		fp.UpdatedAt = time.Now().UTC()

		if err := tx.Set(docRef, fp); err != nil {
			return err
		}
		result = fp.toProfile(uid)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "update", uid, "profile", uid, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "update", uid, "profile", uid, "success", nil)

	return result, nil
}

func applyParams(fp *firestoreProfile, params UpdateParams) {
	if params.Name != nil {
		fp.Name = *params.Name
	}
	if params.Designation != nil {
		fp.Designation = *params.Designation
	}
	if params.Email != nil {
		fp.Email = *params.Email
	}
	if params.Phone != nil {
		fp.Phone = *params.Phone
	}
	if params.Whatsapp != nil {
		fp.Whatsapp = *params.Whatsapp
	}
	if params.Instagram != nil {
		fp.Instagram = *params.Instagram
	}
	if params.Linkedin != nil {
		fp.Linkedin = *params.Linkedin
	}
	if params.Youtube != nil {
		fp.Youtube = *params.Youtube
	}
	if params.Website != nil {
		fp.Website = *params.Website
	}
	if params.Twitter != nil {
		fp.Twitter = *params.Twitter
	}
	if params.Figma != nil {
		fp.Figma = *params.Figma
	}
	if params.Others != nil {
		fp.Others = *params.Others
	}
	if params.About != nil {
		fp.About = *params.About
	}
	if params.ProfileImage != nil {
		fp.ProfileImage = *params.ProfileImage
	}
	if params.Template != nil {
		fp.Template = string(*params.Template)
	}
	if params.BackgroundColor != nil {
		fp.BackgroundColor = *params.BackgroundColor
	}
	if params.CardColor != nil {
		fp.CardColor = *params.CardColor
	}
	if params.ButtonColor != nil {
		fp.ButtonColor = *params.ButtonColor
	}
}

// Gallery returns the profile's gallery images oldest-first.
func (s *FirestoreStore) Gallery(ctx context.Context, uid string) ([]GalleryImage, error) {
	docs, err := s.galleryColl(uid).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}

	images := make([]GalleryImage, 0, len(docs))
	for _, doc := range docs {
		var fg firestoreGalleryImage
		if err := doc.DataTo(&fg); err != nil {
			return nil, err
		}
		images = append(images, GalleryImage{
			ID:        doc.Ref.ID,
			Image:     fg.Image,
			CreatedAt: fg.CreatedAt,
		})
	}
	return images, nil
}

// ReplaceGallery deletes the existing gallery and records the given media
// paths inside one transaction, so a crash mid-replacement never leaves the
// profile with neither the old nor the new set durably recorded.
//
// Creation timestamps carry a per-position millisecond offset so the
// oldest-first ordering matches the submitted order.
func (s *FirestoreStore) ReplaceGallery(ctx context.Context, uid string, images []string) ([]GalleryImage, error) {
	docRef := s.profileRef(uid)
	now := time.Now().UTC()

	var result []GalleryImage

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		existing, err := tx.Documents(s.galleryColl(uid).Query).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range existing {
			if err := tx.Delete(doc.Ref); err != nil {
				return err
			}
		}

		result = make([]GalleryImage, 0, len(images))
		for i, image := range images {
			id := uuid.NewString()
			fg := firestoreGalleryImage{
				Image:     image,
				CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
			}
			if err := tx.Set(s.galleryColl(uid).Doc(id), fg); err != nil {
				return err
			}
			result = append(result, GalleryImage{ID: id, Image: fg.Image, CreatedAt: fg.CreatedAt})
		}
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "replace_gallery", uid, "profile", uid, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "replace_gallery", uid, "profile", uid, "success",
		map[string]any{"count": len(images)})

	return result, nil
}

// SetStatus updates only the status field and refreshes the update timestamp.
func (s *FirestoreStore) SetStatus(ctx context.Context, profileID string, newStatus Status) (*Profile, error) {
	docRef := s.profileRef(profileID)

	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return err
		}

		fp.Status = string(newStatus)
		fp.UpdatedAt = time.Now().UTC()

		if err := tx.Set(docRef, fp); err != nil {
			return err
		}
		result = fp.toProfile(profileID)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "set_status", "", "profile", profileID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "set_status", "", "profile", profileID, "success",
		map[string]any{"status": string(newStatus)})

	return result, nil
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
