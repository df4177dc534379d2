// Package handler implements the HTTP handlers for the Packmate API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, plan.go, account.go, export.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kliang/packmate/backend/internal/domain"
	"github.com/kliang/packmate/backend/internal/packing"
	"github.com/kliang/packmate/backend/internal/repo"
	"github.com/kliang/packmate/backend/internal/service"
)

// PlanServicer defines the business operations the plan handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type PlanServicer interface {
	Create(ctx context.Context, userID int64, trip domain.TripDescriptor) (domain.Plan, error)
	GetByID(ctx context.Context, userID int64, planID uuid.UUID) (domain.Plan, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Plan, error)
	Delete(ctx context.Context, userID int64, planID uuid.UUID) error
	ChangeDates(ctx context.Context, userID int64, planID uuid.UUID, start, end time.Time) (domain.Plan, error)
	AddActivity(ctx context.Context, userID int64, planID uuid.UUID, input service.NewActivity) (domain.Activity, error)
	DeleteActivity(ctx context.Context, userID int64, planID, activityID uuid.UUID) error
	RescheduleActivity(ctx context.Context, userID int64, planID, activityID uuid.UUID, date time.Time) (domain.Activity, error)
	AddItem(ctx context.Context, userID int64, planID uuid.UUID, target packing.Target, input service.NewItem) (domain.Item, error)
	UpdateItem(ctx context.Context, userID int64, planID, itemID uuid.UUID, patch packing.ItemPatch) (domain.Item, error)
	DeleteItem(ctx context.Context, userID int64, planID, itemID uuid.UUID) error
	DateView(ctx context.Context, userID int64, planID uuid.UUID) (packing.DateView, error)
	CategoryView(ctx context.Context, userID int64, planID uuid.UUID) (packing.CategoryView, error)
}

// AccountServicer defines the account operations the handlers depend on.
type AccountServicer interface {
	Signup(ctx context.Context, params service.SignupParams) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.User, string, error)
	RecoverPassword(ctx context.Context, username string) error
	UpdateProfile(ctx context.Context, uid int64, patch repo.ProfilePatch) (domain.User, error)
}

// SuggestServicer seeds a plan with generated packing items.
type SuggestServicer interface {
	Seed(ctx context.Context, userID int64, planID uuid.UUID) ([]domain.Item, error)
}

// ExportServicer assembles the flat export rows for a user.
type ExportServicer interface {
	Export(ctx context.Context, userID int64) ([]domain.ExportRow, error)
}

// Server holds the handler dependencies for all API endpoints.
// suggestions may be nil when no generator is configured; the endpoint then
// answers 503.
type Server struct {
	accounts    AccountServicer
	plans       PlanServicer
	suggestions SuggestServicer
	export      ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(accounts AccountServicer, plans PlanServicer, suggestions SuggestServicer, export ExportServicer) *Server {
	return &Server{
		accounts:    accounts,
		plans:       plans,
		suggestions: suggestions,
		export:      export,
	}
}

// Routes builds the API router. authenticate guards everything that needs a
// logged-in user; signup, login, password recovery, and the health check stay
// public.
func (s *Server) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.Signup)
		r.Post("/login", s.Login)
		r.Post("/forgot-password", s.ForgotPassword)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Put("/users/{uid}", s.UpdateProfile)
			r.Get("/export", s.GetExport)

			r.Route("/plans", func(r chi.Router) {
				r.Post("/", s.CreatePlan)
				r.Get("/", s.ListPlans)

				r.Route("/{planID}", func(r chi.Router) {
					r.Get("/", s.GetPlan)
					r.Delete("/", s.DeletePlan)
					r.Put("/dates", s.ChangePlanDates)

					r.Post("/activities", s.AddActivity)
					r.Delete("/activities/{activityID}", s.DeleteActivity)
					r.Put("/activities/{activityID}/date", s.RescheduleActivity)

					r.Post("/items", s.AddItem)
					r.Patch("/items/{itemID}", s.UpdateItem)
					r.Delete("/items/{itemID}", s.DeleteItem)

					r.Get("/views/date", s.GetDateView)
					r.Get("/views/category", s.GetCategoryView)

					r.Post("/suggestions", s.SeedSuggestions)
				})
			})
		})
	})

	return r
}
