package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/smilepoint/clinic-api/internal/platform/logging"
)

const usersCollection = "users"

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// firestoreProfile maps to the Firestore document structure.
type firestoreProfile struct {
	DisplayName  string    `firestore:"display_name"`
	Email        string    `firestore:"email"`
	Phone        string    `firestore:"phone"`
	Age          string    `firestore:"age"`
	DateOfBirth  string    `firestore:"dob"`
	Address      string    `firestore:"address"`
	Gender       string    `firestore:"gender"`
	PhotoURL     string    `firestore:"photo_url"`
	Role         string    `firestore:"role"`
	AuthProvider string    `firestore:"auth_provider"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
	LastLogin    time.Time `firestore:"last_login"`
}

func (fp *firestoreProfile) toProfile(userID string) *Profile {
	return &Profile{
		ID:           userID,
		DisplayName:  fp.DisplayName,
		Email:        fp.Email,
		Phone:        fp.Phone,
		Age:          fp.Age,
		DateOfBirth:  fp.DateOfBirth,
		Address:      fp.Address,
		Gender:       fp.Gender,
		PhotoURL:     fp.PhotoURL,
		Role:         fp.Role,
		AuthProvider: fp.AuthProvider,
		CreatedAt:    fp.CreatedAt,
		UpdatedAt:    fp.UpdatedAt,
		LastLogin:    fp.LastLogin,
	}
}

// FirestoreStore implements Service using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Get retrieves a profile by user ID.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	docRef := s.client.Collection(usersCollection).Doc(userID)
	doc, err := docRef.Get(ctx)
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
	return fp.toProfile(userID), nil
}

// Upsert merges the provided fields into the profile document, creating it
// on first write. Unset fields are left untouched; updated_at is always
// stamped and created_at only on creation.
func (s *FirestoreStore) Upsert(ctx context.Context, userID string, params UpsertParams) (*Profile, error) {
	docRef := s.client.Collection(usersCollection).Doc(userID)

	var result *Profile

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()
		var fp firestoreProfile

		doc, err := tx.Get(docRef)
		switch {
		case err == nil:
			if err := doc.DataTo(&fp); err != nil {
				return err
			}
		case status.Code(err) == codes.NotFound:
			fp = firestoreProfile{Role: DefaultRole, CreatedAt: now}
		default:
			return err
		}

		applyParams(&fp, params)
		fp.UpdatedAt = now

		if err := tx.Set(docRef, fp); err != nil {
			return err
		}
		result = fp.toProfile(userID)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "upsert", userID, "profile", userID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "upsert", userID, "profile", userID, applog.AuditSuccess, nil)

	return result, nil
}

// TouchLastLogin stamps last_login, creating the document if needed.
func (s *FirestoreStore) TouchLastLogin(ctx context.Context, userID string) error {
	docRef := s.client.Collection(usersCollection).Doc(userID)
	now := time.Now().UTC()
	_, err := docRef.Set(ctx, map[string]any{
		"last_login": now,
		"updated_at": now,
	}, firestore.MergeAll)
	return err
}

func applyParams(fp *firestoreProfile, params UpsertParams) {
	if params.DisplayName != nil {
		fp.DisplayName = *params.DisplayName
	}
	if params.Email != nil {
		fp.Email = strings.ToLower(strings.TrimSpace(*params.Email))
	}
	if params.Phone != nil {
		fp.Phone = strings.TrimSpace(*params.Phone)
	}
	if params.Age != nil {
		fp.Age = *params.Age
	}
	if params.DateOfBirth != nil {
		fp.DateOfBirth = *params.DateOfBirth
	}
	if params.Address != nil {
		fp.Address = *params.Address
	}
	if params.Gender != nil {
		fp.Gender = *params.Gender
	}
	if params.PhotoURL != nil {
		fp.PhotoURL = *params.PhotoURL
	}
	if params.Role != nil {
		fp.Role = *params.Role
	}
	if params.AuthProvider != nil {
		fp.AuthProvider = *params.AuthProvider
	}
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
