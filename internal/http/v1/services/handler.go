// Package services exposes the treatment catalog.
package services

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smilepoint/clinic-api/internal/catalog"
)

// ServiceListInput for GET /services (no body needed)
type ServiceListInput struct{}

// ServiceListOutput for GET /services
type ServiceListOutput struct {
	Body struct {
		Services []catalog.Service `json:"services" doc:"Offered treatments"`
	}
}

// ServiceGetInput for GET /services/{id}
type ServiceGetInput struct {
	ID int `path:"id" doc:"Service ID" example:"1"`
}

// ServiceGetOutput for GET /services/{id}
type ServiceGetOutput struct {
	Body catalog.Service
}

// Register registers catalog endpoints. The catalog is compiled in, so
// these are public and unconditionally cacheable.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-services",
		Method:      http.MethodGet,
		Path:        "/services",
		Summary:     "List offered treatments",
		Tags:        []string{"Services"},
	}, func(ctx context.Context, _ *ServiceListInput) (*ServiceListOutput, error) {
		out := &ServiceListOutput{}
		out.Body.Services = catalog.All()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-service",
		Method:      http.MethodGet,
		Path:        "/services/{id}",
		Summary:     "Get one treatment",
		Tags:        []string{"Services"},
	}, func(ctx context.Context, input *ServiceGetInput) (*ServiceGetOutput, error) {
		svc, ok := catalog.ByID(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("service not found")
		}
		return &ServiceGetOutput{Body: svc}, nil
	})
}
