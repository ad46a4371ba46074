// Package firebase initializes the Firebase Admin SDK clients shared by the
// service layer.
package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Config selects the Firebase project and optional service-account file.
// Without explicit credentials the SDK falls back to Application Default
// Credentials, which also covers the emulators.
type Config struct {
	ProjectID                    string
	GoogleApplicationCredentials string
}

// Clients bundles the Admin SDK handles used by this service.
type Clients struct {
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

// InitializeClients builds the Firebase app and returns its Auth and
// Firestore clients.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	opts, err := credentialOptions(cfg)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing auth client: %w", err)
	}
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firestore client: %w", err)
	}

	return &Clients{Auth: authClient, Firestore: firestoreClient}, nil
}

func credentialOptions(cfg Config) ([]option.ClientOption, error) {
	if cfg.GoogleApplicationCredentials == "" {
		return nil, nil
	}
	creds, err := os.ReadFile(cfg.GoogleApplicationCredentials)
	if err != nil {
		return nil, fmt.Errorf("reading service account file: %w", err)
	}
	return []option.ClientOption{option.WithCredentialsJSON(creds)}, nil
}

// Close releases the Firestore connection. The Auth client holds no
// resources that need closing.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
