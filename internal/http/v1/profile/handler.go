package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smilepoint/clinic-api/internal/platform/auth"
	"github.com/smilepoint/clinic-api/internal/platform/timeutil"
	profilesvc "github.com/smilepoint/clinic-api/internal/service/profile"
)

// Register registers profile endpoints.
func Register(api huma.API, svc profilesvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get current patient's profile",
		Description: "Retrieves the profile for the authenticated patient.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		principal := auth.PrincipalFromContext(ctx)

		p, err := svc.Get(ctx, principal.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileGetOutput{
			Body: toHTTPProfile(p),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/profile",
		Summary:     "Update current patient's profile",
		Description: "Merges the provided fields into the profile, creating it on first write. Omitted fields are left untouched.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileUpdateOutput, error) {
		principal := auth.PrincipalFromContext(ctx)
		if !hasProfileUpdateFields(input) {
			return nil, huma.Error422UnprocessableEntity("at least one field must be provided")
		}

		p, err := svc.Upsert(ctx, principal.UID, profilesvc.UpsertParams{
			DisplayName: input.Body.Name,
			Email:       input.Body.Email,
			Phone:       input.Body.Phone,
			Age:         input.Body.Age,
			DateOfBirth: input.Body.DateOfBirth,
			Address:     input.Body.Address,
			Gender:      input.Body.Gender,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileUpdateOutput{
			Body: toHTTPProfile(p),
		}, nil
	})
}

func hasProfileUpdateFields(input *ProfileUpdateInput) bool {
	return input.Body.Name != nil ||
		input.Body.Email != nil ||
		input.Body.Phone != nil ||
		input.Body.Age != nil ||
		input.Body.DateOfBirth != nil ||
		input.Body.Address != nil ||
		input.Body.Gender != nil
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		ID:           p.ID,
		Name:         p.DisplayName,
		Email:        p.Email,
		Phone:        p.Phone,
		Age:          p.Age,
		DateOfBirth:  p.DateOfBirth,
		Address:      p.Address,
		Gender:       p.Gender,
		PhotoURL:     p.PhotoURL,
		Role:         p.Role,
		AuthProvider: p.AuthProvider,
		CreatedAt:    timeutil.Time{Time: p.CreatedAt},
		UpdatedAt:    timeutil.Time{Time: p.UpdatedAt},
		LastLogin:    timeutil.Time{Time: p.LastLogin},
	}
}
