package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"rentwise-portal/internal/adapters/http/handlers"
	"rentwise-portal/internal/adapters/http/middleware"
	"rentwise-portal/internal/config"
	"rentwise-portal/internal/core/domain"
)

const (
	listingCacheAge   = 30 * time.Second
	dashboardCacheAge = 15 * time.Second
)

// Setup configures all routes for the application
func Setup(app *fiber.App, svc *Services, cfg *config.Config, checks map[string]handlers.Check) {
	healthHandler := handlers.NewHealthHandler(cfg.AppName, cfg.AppMode, checks)
	authHandler := handlers.NewAuthHandler(svc.Sessions, svc.Onboarding, cfg)
	bidHandler := handlers.NewBidHandler(svc.Bids)
	tourHandler := handlers.NewTourHandler(svc.Tours)
	apartmentHandler := handlers.NewApartmentHandler(svc.Apartments)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboards)
	userHandler := handlers.NewUserHandler(svc.Users)
	brokerageHandler := handlers.NewBrokerageHandler(svc.Brokerages)
	uaepassHandler := handlers.NewUAEPassHandler(svc.UAEPass)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	requireSession := middleware.AuthMiddleware(svc.Sessions, cfg.Cookie.Name)
	optionalSession := middleware.OptionalAuth(svc.Sessions, cfg.Cookie.Name)

	api := app.Group("/api/v1")

	// Auth
	auth := api.Group("/auth", middleware.NoCacheHeaders())
	auth.Post("/role-selection", middleware.AuthRateLimiter(), authHandler.SelectRole)
	auth.Get("/callback", middleware.AuthRateLimiter(), authHandler.Callback)
	auth.Get("/session", requireSession, authHandler.Session)
	auth.Post("/logout", optionalSession, authHandler.Logout)

	// Listings: reads are public, edits need a listing role
	apartments := api.Group("/apartments")
	apartments.Get("/", optionalSession, middleware.CacheControl(listingCacheAge), apartmentHandler.ListApartments)
	apartments.Get("/map", optionalSession, middleware.CacheControl(listingCacheAge), apartmentHandler.Map)
	apartments.Get("/:id", optionalSession, middleware.CacheControl(listingCacheAge), apartmentHandler.GetApartment)
	apartments.Post("/", requireSession, middleware.LandlordOnly(), apartmentHandler.CreateApartment)
	apartments.Put("/:id", requireSession, middleware.LandlordOnly(), apartmentHandler.UpdateApartment)
	apartments.Delete("/:id", requireSession, middleware.LandlordOnly(), apartmentHandler.DeleteApartment)

	// Bids
	api.Post("/bids/validate-amount", bidHandler.ValidateAmount)
	bids := api.Group("/bids", requireSession, middleware.NoCacheHeaders())
	bids.Get("/", bidHandler.ListBids)
	bids.Post("/", middleware.RoleMiddleware(domain.RoleTenant), bidHandler.CreateBid)
	bids.Get("/:id", bidHandler.GetBid)
	bids.Post("/:id/:action", bidHandler.Act)

	// Tours
	tours := api.Group("/tours", requireSession, middleware.NoCacheHeaders())
	tours.Get("/", tourHandler.ListTours)
	tours.Post("/", tourHandler.BookTour)
	tours.Post("/:id/:action", tourHandler.Act)

	// Dashboards
	dashboard := api.Group("/dashboard", requireSession, middleware.PrivateCacheHeaders(dashboardCacheAge))
	dashboard.Get("/", dashboardHandler.GetDashboard)
	dashboard.Get("/:role", dashboardHandler.GetRoleDashboard)

	// Profile
	profile := api.Group("/profile", requireSession, middleware.NoCacheHeaders())
	profile.Get("/", userHandler.GetProfile)
	profile.Patch("/", userHandler.UpdateProfile)
	profile.Get("/role-status", userHandler.GetRoleStatus)

	// Brokerage onboarding
	brokerage := api.Group("/brokerage", requireSession, middleware.UploadRateLimiter())
	brokerage.Post("/brokerages", brokerageHandler.CreateBrokerage)
	brokerage.Post("/managers", middleware.BrokerageStaff(), brokerageHandler.CreateManager)
	brokerage.Post("/agents", middleware.BrokerageStaff(), brokerageHandler.CreateAgent)

	// UAE Pass
	uaepass := api.Group("/uaepass", requireSession, middleware.NoCacheHeaders())
	uaepass.Get("/authorize", uaepassHandler.Authorize)
	uaepass.Get("/userinfo", uaepassHandler.UserInfo)
	uaepass.Post("/signature", uaepassHandler.StartSignature)
	uaepass.Get("/signature/:id", uaepassHandler.SignatureStatus)
}
