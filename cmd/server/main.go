package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/smilepoint/clinic-api/internal/http/health"
	"github.com/smilepoint/clinic-api/internal/http/v1/routes"
	"github.com/smilepoint/clinic-api/internal/platform/auth"
	"github.com/smilepoint/clinic-api/internal/platform/config"
	"github.com/smilepoint/clinic-api/internal/platform/firebase"
	applog "github.com/smilepoint/clinic-api/internal/platform/logging"
	appmiddleware "github.com/smilepoint/clinic-api/internal/platform/middleware"
	"github.com/smilepoint/clinic-api/internal/platform/respond"
	appointmentsvc "github.com/smilepoint/clinic-api/internal/service/appointment"
	"github.com/smilepoint/clinic-api/internal/service/booking"
	"github.com/smilepoint/clinic-api/internal/service/credential"
	"github.com/smilepoint/clinic-api/internal/service/identity"
	profilesvc "github.com/smilepoint/clinic-api/internal/service/profile"
	"github.com/smilepoint/clinic-api/internal/session"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg := config.Load()

	ctx := context.Background()
	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:                    cfg.ProjectID,
		GoogleApplicationCredentials: cfg.GoogleApplicationCredentials,
	})
	if err != nil {
		applog.LogFatal(ctx, "firebase initialization failed", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			applog.LogError(context.Background(), "firebase close error", err)
		}
	}()

	// Domain services
	identityClient := identity.NewClient(&http.Client{Timeout: 10 * time.Second}, cfg.WebAPIKey)
	profileStore := profilesvc.NewFirestoreStore(clients.Firestore)
	appointmentStore := appointmentsvc.NewFirestoreStore(clients.Firestore)
	sessions := session.NewStore()
	adapter := identity.NewAdapter(identityClient, profileStore, sessions)
	credentials := credential.NewWorkflow(identityClient)
	bookingWorkflow := booking.NewWorkflow(appointmentStore)
	verifier := auth.NewFirebaseVerifier(clients.Auth)

	authLimiter := appmiddleware.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize limits request body size to prevent memory exhaustion from large payloads.
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
		// Credential endpoints get a per-IP token bucket on top of the
		// provider's own throttling.
		appmiddleware.RateLimitPrefix(authLimiter, "/v1/auth/"),
	)

	router.Get("/health", health.Handler)

	humaCfg := huma.DefaultConfig("SmilePoint Clinic API", Version)
	humaCfg.DocsPath = "/api-docs"
	humaCfg.Servers = []*huma.Server{{URL: "/v1"}}

	v1 := chi.NewRouter()
	api := humachi.New(v1, humaCfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api, verifier, adapter, credentials, profileStore, appointmentStore, bookingWorkflow)
	router.Mount("/v1", v1)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(context.Background(), "server exited")
}
