package appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/smilepoint/clinic-api/internal/platform/auth"
	applog "github.com/smilepoint/clinic-api/internal/platform/logging"
	appmiddleware "github.com/smilepoint/clinic-api/internal/platform/middleware"
	"github.com/smilepoint/clinic-api/internal/platform/respond"
	appointmentsvc "github.com/smilepoint/clinic-api/internal/service/appointment"
	"github.com/smilepoint/clinic-api/internal/service/booking"
	"github.com/smilepoint/clinic-api/internal/service/credential"
	"github.com/smilepoint/clinic-api/internal/service/identity"
)

func newTestRouter(store appointmentsvc.Service, verifier auth.Verifier) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("AppointmentsTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	credentials := credential.NewWorkflow(identity.NewMockIdentityService())
	Register(api, booking.NewWorkflow(store), store, credentials)
	return router
}

func validBody() string {
	return `{"name":"Jane Doe","email":"jane@example.com","phone":"+358401234567","serviceId":1,"date":"2030-10-01","time":"10:30 AM","notes":"first visit"}`
}

func postAppointment(router chi.Router, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateAppointmentSuccess(t *testing.T) {
	store := appointmentsvc.NewMockAppointmentService()
	verifier := &auth.MockVerifier{User: auth.TestPrincipal()}
	router := newTestRouter(store, verifier)

	resp := postAppointment(router, validBody())

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var got Appointment
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if got.Status != "Pending" {
		t.Errorf("expected Pending, got %q", got.Status)
	}
	if got.ServiceName != "General Dental Care" {
		t.Errorf("expected resolved service name, got %q", got.ServiceName)
	}
	if got.ID == "" {
		t.Error("expected generated ID")
	}
	if loc := resp.Header().Get("Location"); loc != "/v1/appointments" {
		t.Errorf("expected Location header, got %q", loc)
	}

	appts, err := store.ListByOwner(context.Background(), "test-user-123")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(appts) != 1 {
		t.Errorf("expected 1 stored appointment, got %d", len(appts))
	}
}

func TestCreateAppointmentUnknownServiceFallsBack(t *testing.T) {
	store := appointmentsvc.NewMockAppointmentService()
	verifier := &auth.MockVerifier{User: auth.TestPrincipal()}
	router := newTestRouter(store, verifier)

	body := `{"name":"Jane Doe","email":"jane@example.com","phone":"+358401234567","serviceId":999,"date":"2030-10-01","time":"10:30 AM"}`
	resp := postAppointment(router, body)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var got Appointment
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if got.ServiceName != "General Consultation" {
		t.Errorf("expected fallback service name, got %q", got.ServiceName)
	}
}

func TestCreateAppointmentPastDate(t *testing.T) {
	store := appointmentsvc.NewMockAppointmentService()
	verifier := &auth.MockVerifier{User: auth.TestPrincipal()}
	router := newTestRouter(store, verifier)

	body := `{"name":"Jane Doe","email":"jane@example.com","phone":"+358401234567","serviceId":1,"date":"2020-01-01","time":"10:30 AM"}`
	resp := postAppointment(router, body)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}

	appts, err := store.ListByOwner(context.Background(), "test-user-123")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(appts) != 0 {
		t.Errorf("rejected booking must not be stored, got %d", len(appts))
	}
}

func TestCreateAppointmentUnauthorized(t *testing.T) {
	store := appointmentsvc.NewMockAppointmentService()
	verifier := &auth.MockVerifier{Error: auth.ErrInvalidToken}
	router := newTestRouter(store, verifier)

	resp := postAppointment(router, validBody())

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateAppointmentUnverifiedEmailBlocked(t *testing.T) {
	store := appointmentsvc.NewMockAppointmentService()
	unverified := auth.TestPrincipal()
	unverified.EmailVerified = false
	verifier := &auth.MockVerifier{User: unverified}
	router := newTestRouter(store, verifier)

	resp := postAppointment(router, validBody())

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", resp.Code, resp.Body.String())
	}
	if appts, _ := store.ListByOwner(context.Background(), unverified.UID); len(appts) != 0 {
		t.Fatalf("expected no appointment stored, got %d", len(appts))
	}
}

func TestCreateAppointmentStoreUnavailable(t *testing.T) {
	store := appointmentsvc.NewMockAppointmentService()
	store.FailWith = appointmentsvc.ErrUnavailable
	verifier := &auth.MockVerifier{User: auth.TestPrincipal()}
	router := newTestRouter(store, verifier)

	resp := postAppointment(router, validBody())

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListAppointmentsScopedToOwner(t *testing.T) {
	store := appointmentsvc.NewMockAppointmentService()
	ctx := context.Background()

	if _, err := store.Create(ctx, &appointmentsvc.Appointment{
		OwnerID: "test-user-123", Name: "Jane", Date: "2030-10-01", Status: appointmentsvc.StatusPending,
	}); err != nil {
		t.Fatalf("seeding appointment: %v", err)
	}
	if _, err := store.Create(ctx, &appointmentsvc.Appointment{
		OwnerID: "someone-else", Name: "Other", Date: "2030-10-02", Status: appointmentsvc.StatusPending,
	}); err != nil {
		t.Fatalf("seeding appointment: %v", err)
	}

	verifier := &auth.MockVerifier{User: auth.TestPrincipal()}
	router := newTestRouter(store, verifier)

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Appointments []Appointment `json:"appointments"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(out.Appointments) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(out.Appointments))
	}
	if out.Appointments[0].Name != "Jane" {
		t.Errorf("expected Jane, got %q", out.Appointments[0].Name)
	}
}

func TestListAppointmentsEmpty(t *testing.T) {
	store := appointmentsvc.NewMockAppointmentService()
	verifier := &auth.MockVerifier{User: auth.TestPrincipal()}
	router := newTestRouter(store, verifier)

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"appointments":[]`) {
		t.Errorf("expected empty list, got %s", resp.Body.String())
	}
}
