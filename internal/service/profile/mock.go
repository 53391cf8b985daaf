package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore implements Store in memory for unit tests.
type MockStore struct {
	mu        sync.RWMutex
	profiles  map[string]*Profile
	galleries map[string][]GalleryImage
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		profiles:  make(map[string]*Profile),
		galleries: make(map[string][]GalleryImage),
	}
}

func (m *MockStore) Get(_ context.Context, uid string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return copyProfile(p), nil
}

func (m *MockStore) Create(_ context.Context, uid string, params CreateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[uid]; exists {
		return nil, ErrAlreadyExists
	}

	now := time.Now().UTC()
	p := &Profile{
		ID:              uid,
		Name:            params.Name,
		Email:           params.Email,
		Others:          map[string]string{},
		Status:          StatusPaymentReceived,
		Template:        Template1,
		BackgroundColor: DefaultBackgroundColor,
		CardColor:       DefaultCardColor,
		ButtonColor:     DefaultButtonColor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.profiles[uid] = p
	return copyProfile(p), nil
}

func (m *MockStore) ApplyUpdate(_ context.Context, uid string, params UpdateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[uid]
	if !ok {
		return nil, ErrNotFound
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&p.Name, params.Name)
	setString(&p.Designation, params.Designation)
	setString(&p.Email, params.Email)
	setString(&p.Phone, params.Phone)
	setString(&p.Whatsapp, params.Whatsapp)
	setString(&p.Instagram, params.Instagram)
	setString(&p.Linkedin, params.Linkedin)
	setString(&p.Youtube, params.Youtube)
	setString(&p.Website, params.Website)
	setString(&p.Twitter, params.Twitter)
	setString(&p.Figma, params.Figma)
	setString(&p.About, params.About)
	setString(&p.ProfileImage, params.ProfileImage)
	setString(&p.BackgroundColor, params.BackgroundColor)
	setString(&p.CardColor, params.CardColor)
	setString(&p.ButtonColor, params.ButtonColor)
	if params.Others != nil {
		p.Others = *params.Others
	}
	if params.Template != nil {
		p.Template = *params.Template
	}
	p.UpdatedAt = time.Now().UTC()
	return copyProfile(p), nil
}

func (m *MockStore) Gallery(_ context.Context, uid string) ([]GalleryImage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	images := m.galleries[uid]
	out := make([]GalleryImage, len(images))
	copy(out, images)
	return out, nil
}

func (m *MockStore) ReplaceGallery(_ context.Context, uid string, images []string) ([]GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[uid]; !ok {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	replacement := make([]GalleryImage, 0, len(images))
	for i, image := range images {
		replacement = append(replacement, GalleryImage{
			ID:        uuid.NewString(),
			Image:     image,
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	m.galleries[uid] = replacement

	out := make([]GalleryImage, len(replacement))
	copy(out, replacement)
	return out, nil
}

func (m *MockStore) SetStatus(_ context.Context, profileID string, status Status) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[profileID]
	if !ok {
		return nil, ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	return copyProfile(p), nil
}

func copyProfile(p *Profile) *Profile {
	copied := *p
	copied.Others = make(map[string]string, len(p.Others))
	for k, v := range p.Others {
		copied.Others[k] = v
	}
	return &copied
}

// Compile-time interface check
var _ Store = (*MockStore)(nil)
