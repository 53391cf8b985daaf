package firebase

import (
	"context"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Config holds Firebase configuration.
type Config struct {
	ProjectID                    string
	StorageBucket                string
	GoogleApplicationCredentials string // Path to service account JSON (optional)
}

// Clients holds initialized Firebase and GCP clients.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
	Storage   *gcs.Client
}

// InitializeClients sets up Firebase and returns clients directly.
// Prefer this over global getters for better testability.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	var opts []option.ClientOption
	if cfg.GoogleApplicationCredentials != "" {
		creds, err := os.ReadFile(cfg.GoogleApplicationCredentials)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	config := &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}
	fbApp, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, err
	}

	ac, err := fbApp.Auth(ctx)
	if err != nil {
		return nil, err
	}

	fc, err := fbApp.Firestore(ctx)
	if err != nil {
		return nil, err
	}

	sc, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		_ = fc.Close()
		return nil, err
	}

	return &Clients{
		Auth:      ac,
		Firestore: fc,
		Storage:   sc,
	}, nil
}

// Close closes the Firestore and Storage clients.
func (c *Clients) Close() error {
	var firstErr error
	if c.Firestore != nil {
		firstErr = c.Firestore.Close()
	}
	if c.Storage != nil {
		if err := c.Storage.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
