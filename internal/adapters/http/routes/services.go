package routes

import (
	"gorm.io/gorm"

	"rentwise-portal/internal/adapters/cache"
	"rentwise-portal/internal/adapters/persistence/repositories"
	"rentwise-portal/internal/config"
	"rentwise-portal/internal/core/services"
)

// Services holds every service the HTTP layer and the background jobs share
type Services struct {
	Sessions   *services.SessionService
	Onboarding *services.OnboardingService
	Bids       *services.BidService
	Tours      *services.TourService
	Apartments *services.ApartmentService
	Dashboards *services.DashboardService
	Users      *services.UserService
	Brokerages *services.BrokerageService
	UAEPass    *services.UAEPassService
}

// NewServices builds the service graph over one marketplace client
func NewServices(cfg *config.Config, db *gorm.DB, market services.MarketAPI, listings cache.Cache) *Services {
	sessionRepo := repositories.NewSessionRepository(db)
	pendingRepo := repositories.NewPendingRoleRepository(db)

	return &Services{
		Sessions:   services.NewSessionService(sessionRepo, market, cfg.Session.Secret, cfg.SessionTTL()),
		Onboarding: services.NewOnboardingService(market, pendingRepo, cfg.PendingRoleTTL()),
		Bids:       services.NewBidService(market, cfg.BidBounds),
		Tours:      services.NewTourService(market),
		Apartments: services.NewApartmentService(market, listings, cfg.Redis.TTL),
		Dashboards: services.NewDashboardService(market, market, market, market),
		Users:      services.NewUserService(market),
		Brokerages: services.NewBrokerageService(market),
		UAEPass:    services.NewUAEPassService(market),
	}
}

// PurgeJobs are the cleanup jobs the cron service runs
func (s *Services) PurgeJobs() map[string]services.Purger {
	return map[string]services.Purger{
		"sessions":      services.PurgerFunc(s.Sessions.Purge),
		"pending_roles": services.PurgerFunc(s.Onboarding.PurgePending),
	}
}
