package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/cardfolio/cardfolio/internal/testutil"
)

func setupFirestoreTest(t *testing.T) (*FirestoreStore, func()) {
	t.Helper()

	testutil.SkipIfFirestoreUnavailable(t)
	testutil.SetupEmulator(t)
	testutil.ClearFirestore(t)

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, testutil.ProjectID)
	if err != nil {
		t.Fatalf("failed to create Firestore client: %v", err)
	}

	store := NewFirestoreStore(client)
	cleanup := func() {
		testutil.ClearFirestore(t)
		_ = client.Close()
	}

	return store, cleanup
}

func strPtr(s string) *string { return &s }

func TestFirestoreCreate(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	params := CreateParams{
		Name:  "John Doe",
		Email: "john@example.com",
	}

	p, err := store.Create(ctx, "user-123", params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.ID != "user-123" {
		t.Errorf("expected ID user-123, got %s", p.ID)
	}
	if p.Name != "John Doe" {
		t.Errorf("expected name John Doe, got %s", p.Name)
	}
	if p.Email != "john@example.com" {
		t.Errorf("expected email john@example.com, got %s", p.Email)
	}
	if p.Status != StatusPaymentReceived {
		t.Errorf("expected status %s, got %s", StatusPaymentReceived, p.Status)
	}
	if p.Template != Template1 {
		t.Errorf("expected template %s, got %s", Template1, p.Template)
	}
	if p.BackgroundColor != DefaultBackgroundColor {
		t.Errorf("expected background %s, got %s", DefaultBackgroundColor, p.BackgroundColor)
	}
	if p.CardColor != DefaultCardColor {
		t.Errorf("expected card color %s, got %s", DefaultCardColor, p.CardColor)
	}
	if p.ButtonColor != DefaultButtonColor {
		t.Errorf("expected button color %s, got %s", DefaultButtonColor, p.ButtonColor)
	}
	if p.Others == nil {
		t.Error("expected non-nil others map")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if p.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestFirestoreCreateDuplicate(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	params := CreateParams{Name: "John Doe", Email: "john@example.com"}

	_, err := store.Create(ctx, "user-dup", params)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err = store.Create(ctx, "user-dup", params)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestFirestoreGet(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	_, _ = store.Create(ctx, "user-get", CreateParams{Name: "Jane Smith", Email: "jane@example.com"})

	p, err := store.Get(ctx, "user-get")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.ID != "user-get" {
		t.Errorf("expected ID user-get, got %s", p.ID)
	}
	if p.Name != "Jane Smith" {
		t.Errorf("expected name Jane Smith, got %s", p.Name)
	}
}

func TestFirestoreGetNotFound(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()

	_, err := store.Get(ctx, "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFirestoreApplyUpdatePartial(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	created, _ := store.Create(ctx, "user-update", CreateParams{Name: "John Doe", Email: "john@example.com"})

	time.Sleep(10 * time.Millisecond)

	updated, err := store.ApplyUpdate(ctx, "user-update", UpdateParams{
		Designation: strPtr("Card Designer"),
		About:       strPtr("Hello there"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Designation != "Card Designer" {
		t.Errorf("expected designation Card Designer, got %s", updated.Designation)
	}
	if updated.About != "Hello there" {
		t.Errorf("expected about to be updated, got %s", updated.About)
	}
	if updated.Name != "John Doe" {
		t.Errorf("expected name John Doe (unchanged), got %s", updated.Name)
	}
	if updated.Email != "john@example.com" {
		t.Errorf("expected email unchanged, got %s", updated.Email)
	}
	if !updated.UpdatedAt.After(created.CreatedAt) {
		t.Error("expected UpdatedAt to be after CreatedAt")
	}
}

func TestFirestoreApplyUpdateAllFields(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	_, _ = store.Create(ctx, "user-all", CreateParams{Name: "John Doe", Email: "john@example.com"})

	others := map[string]string{"behance": "https://behance.net/jane"}
	template := Template2

	updated, err := store.ApplyUpdate(ctx, "user-all", UpdateParams{
		Name:            strPtr("Jane Smith"),
		Designation:     strPtr("Designer"),
		Email:           strPtr("jane@example.com"),
		Phone:           strPtr("+358401234567"),
		Whatsapp:        strPtr("+358401234567"),
		Instagram:       strPtr("https://instagram.com/jane"),
		Linkedin:        strPtr("https://linkedin.com/in/jane"),
		Youtube:         strPtr("https://youtube.com/@jane"),
		Website:         strPtr("https://jane.example.com"),
		Twitter:         strPtr("https://x.com/jane"),
		Figma:           strPtr("https://figma.com/@jane"),
		Others:          &others,
		About:           strPtr("About Jane"),
		ProfileImage:    strPtr("media/gallery/abc.png"),
		Template:        &template,
		BackgroundColor: strPtr("#000000"),
		CardColor:       strPtr("#111111"),
		ButtonColor:     strPtr("#222222"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name != "Jane Smith" {
		t.Errorf("expected name Jane Smith, got %s", updated.Name)
	}
	if updated.Template != Template2 {
		t.Errorf("expected template %s, got %s", Template2, updated.Template)
	}
	if updated.Others["behance"] != "https://behance.net/jane" {
		t.Errorf("expected others to be replaced, got %v", updated.Others)
	}
	if updated.BackgroundColor != "#000000" {
		t.Errorf("expected background #000000, got %s", updated.BackgroundColor)
	}
	if updated.Status != StatusPaymentReceived {
		t.Errorf("expected status to remain %s, got %s", StatusPaymentReceived, updated.Status)
	}
}

func TestFirestoreApplyUpdateNotFound(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()

	_, err := store.ApplyUpdate(ctx, "nonexistent", UpdateParams{Name: strPtr("Test")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFirestoreSetStatus(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	created, _ := store.Create(ctx, "user-status", CreateParams{Name: "John Doe", Email: "john@example.com"})

	time.Sleep(10 * time.Millisecond)

	updated, err := store.SetStatus(ctx, "user-status", StatusShipped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Status != StatusShipped {
		t.Errorf("expected status %s, got %s", StatusShipped, updated.Status)
	}
	if updated.Name != "John Doe" {
		t.Errorf("expected name unchanged, got %s", updated.Name)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestFirestoreSetStatusNotFound(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()

	_, err := store.SetStatus(ctx, "nonexistent", StatusShipped)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFirestoreGalleryEmpty(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	_, _ = store.Create(ctx, "user-gallery-empty", CreateParams{Name: "John Doe", Email: "john@example.com"})

	images, err := store.Gallery(ctx, "user-gallery-empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 0 {
		t.Fatalf("expected empty gallery, got %d images", len(images))
	}
}

func TestFirestoreReplaceGallery(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	_, _ = store.Create(ctx, "user-gallery", CreateParams{Name: "John Doe", Email: "john@example.com"})

	paths := []string{"media/gallery/a.png", "media/gallery/b.png", "media/gallery/c.png"}
	images, err := store.ReplaceGallery(ctx, "user-gallery", paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(images))
	}

	stored, err := store.Gallery(ctx, "user-gallery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored images, got %d", len(stored))
	}
	for i, img := range stored {
		if img.Image != paths[i] {
			t.Errorf("image %d: expected %s, got %s", i, paths[i], img.Image)
		}
		if i > 0 && !stored[i-1].CreatedAt.Before(img.CreatedAt) {
			t.Errorf("image %d: expected ascending created_at order", i)
		}
	}
}

func TestFirestoreReplaceGalleryDiscardsOld(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	_, _ = store.Create(ctx, "user-replace", CreateParams{Name: "John Doe", Email: "john@example.com"})

	_, err := store.ReplaceGallery(ctx, "user-replace", []string{"media/gallery/old1.png", "media/gallery/old2.png"})
	if err != nil {
		t.Fatalf("first replace failed: %v", err)
	}

	_, err = store.ReplaceGallery(ctx, "user-replace", []string{"media/gallery/new.png"})
	if err != nil {
		t.Fatalf("second replace failed: %v", err)
	}

	stored, err := store.Gallery(ctx, "user-replace")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 image after replacement, got %d", len(stored))
	}
	if stored[0].Image != "media/gallery/new.png" {
		t.Errorf("expected media/gallery/new.png, got %s", stored[0].Image)
	}
}

func TestFirestoreReplaceGalleryWithEmpty(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	_, _ = store.Create(ctx, "user-clear", CreateParams{Name: "John Doe", Email: "john@example.com"})

	_, err := store.ReplaceGallery(ctx, "user-clear", []string{"media/gallery/a.png"})
	if err != nil {
		t.Fatalf("seed replace failed: %v", err)
	}

	images, err := store.ReplaceGallery(ctx, "user-clear", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(images) != 0 {
		t.Fatalf("expected empty result, got %d", len(images))
	}

	stored, err := store.Gallery(ctx, "user-clear")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected gallery to be cleared, got %d images", len(stored))
	}
}

func TestFirestoreReplaceGalleryNotFound(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()

	_, err := store.ReplaceGallery(ctx, "nonexistent", []string{"media/gallery/a.png"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFirestoreConcurrentCreate(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx := context.Background()
	const numGoroutines = 10
	results := make(chan error, numGoroutines)

	var wg sync.WaitGroup
	for range numGoroutines {
		wg.Go(func() {
			_, err := store.Create(ctx, "concurrent-user", CreateParams{
				Name:  "Test User",
				Email: "test@example.com",
			})
			results <- err
		})
	}
	wg.Wait()
	close(results)

	var success, alreadyExists int
	for err := range results {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrAlreadyExists):
			alreadyExists++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if success != 1 {
		t.Errorf("expected exactly 1 success, got %d", success)
	}
	if alreadyExists != numGoroutines-1 {
		t.Errorf("expected %d already exists, got %d", numGoroutines-1, alreadyExists)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"already exists", ErrAlreadyExists, "already_exists"},
		{"not found", ErrNotFound, "not_found"},
		{"internal error", errors.New("unexpected"), "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizeError(tt.err)
			if got != tt.want {
				t.Fatalf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewFirestoreStore(t *testing.T) {
	testutil.SkipIfFirestoreUnavailable(t)
	testutil.SetupEmulator(t)

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, testutil.ProjectID)
	if err != nil {
		t.Fatalf("failed to create Firestore client: %v", err)
	}
	defer func() { _ = client.Close() }()

	store := NewFirestoreStore(client)
	if store == nil {
		t.Fatal("expected non-nil store")
	}
	if store.client != client {
		t.Fatal("expected store.client to be the provided client")
	}
}

func TestFirestoreGetCancelledContext(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, "user-canceled")
	if err == nil {
		t.Fatal("expected error with canceled context")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("expected non-NotFound error, got ErrNotFound")
	}
}

func TestFirestoreCreateCancelledContext(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Create(ctx, "user-canceled", CreateParams{Name: "Test", Email: "test@example.com"})
	if err == nil {
		t.Fatal("expected error with canceled context")
	}
}

func TestFirestoreApplyUpdateCancelledContext(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ApplyUpdate(ctx, "user-canceled", UpdateParams{Name: strPtr("Test")})
	if err == nil {
		t.Fatal("expected error with canceled context")
	}
}
