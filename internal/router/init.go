package router

import (
	app "github.com/emprendevoz/emprende-api/internal/application"
	"github.com/emprendevoz/emprende-api/internal/container"
	"github.com/emprendevoz/emprende-api/internal/infrastructure/events"
	pginfra "github.com/emprendevoz/emprende-api/internal/infrastructure/postgres"
	redisstore "github.com/emprendevoz/emprende-api/internal/infrastructure/redis"
	"github.com/emprendevoz/emprende-api/internal/infrastructure/search"
	handlers "github.com/emprendevoz/emprende-api/internal/interface/http"
	"github.com/emprendevoz/emprende-api/internal/router/modules"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

// Services is the application layer wired against the container's infrastructure.
type Services struct {
	Sessions      *redisstore.SessionStore
	Auth          *app.AuthService
	Profile       *app.ProfileService
	Diagnostic    *app.DiagnosticService
	Achievements  *app.AchievementService
	Certificates  *app.CertificateService
	Learning      *app.LearningService
	Finance       *app.FinanceService
	Community     *app.CommunityService
	Calendar      *app.CalendarService
	Mentors       *app.MentorService
	Notifications *app.NotificationService
}

func buildServices(infra container.Infra) Services {
	cfg, logger, pool, rdb := infra.Config, infra.Logger, infra.PG, infra.Redis

	profiles := pginfra.NewProfileRepository(pool)
	learning := pginfra.NewLearningRepository(pool)
	achievements := pginfra.NewAchievementRepository(pool)
	notifications := pginfra.NewNotificationRepository(pool)
	transactions := pginfra.NewTransactionRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	sessions := redisstore.NewSessionStore(rdb, cfg.SessionTTL)
	var cache *redisstore.Cache
	if rdb != nil {
		cache = redisstore.NewCache(rdb, "cache:")
	}

	// optional backends stay nil; their adapters are nil-safe
	var publisher *events.KafkaPublisher
	if infra.Kafka != nil {
		publisher = events.NewKafkaPublisher(infra.Kafka, logger)
	}
	notifier := app.NewNotifier(nil, cfg, logger)
	if infra.Rabbit != nil {
		notifier.Queue = infra.Rabbit
	}
	storage := helpers.NewGCSStore(infra.GCS, cfg.GCSBucket)
	index := search.NewPostIndex(infra.ES, cfg.ESPostsIndex)

	achievementSvc := app.NewAchievementService(achievements, profiles, notifications, publisher, logger)
	achievementSvc.Activity = &app.ActivityCounter{Transactions: transactions, Posts: posts, Learning: learning}
	certificateSvc := app.NewCertificateService(pginfra.NewCertificateRepository(pool), learning, profiles, sessions, storage, publisher, notifier, logger)

	return Services{
		Sessions:      sessions,
		Auth:          app.NewAuthService(profiles, sessions, infra.JWT, notifier, logger, cfg.FederatedTokenSecret),
		Profile:       app.NewProfileService(profiles, sessions, storage, learning, achievements, logger),
		Diagnostic:    app.NewDiagnosticService(pginfra.NewDiagnosticRepository(pool), logger),
		Achievements:  achievementSvc,
		Certificates:  certificateSvc,
		Learning:      app.NewLearningService(learning, profiles, cache, achievementSvc, certificateSvc, logger),
		Finance:       app.NewFinanceService(transactions, cache, publisher, achievementSvc, logger),
		Community:     app.NewCommunityService(posts, index, achievementSvc, logger),
		Calendar:      app.NewCalendarService(pginfra.NewCalendarRepository(pool), profiles, publisher, notifier, logger),
		Mentors:       app.NewMentorService(pginfra.NewMentorRepository(pool), logger),
		Notifications: app.NewNotificationService(notifications),
	}
}

func healthChecks(infra container.Infra) map[string]handlers.Pinger {
	checks := make(map[string]handlers.Pinger)
	for name, ping := range infra.Pingers() {
		checks[name] = ping
	}
	return checks
}

// InitModules builds every feature module from the container and adds it to r.
// Call once at startup after container.Set.
func InitModules(r *Registry) {
	infra := container.Get()
	cfg, logger := infra.Config, infra.Logger
	svc := buildServices(infra)
	guard := modules.NewGuard(infra.Redis, svc.Sessions, infra.JWT)
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	r.AddRoot(modules.NewHealthModule(handlers.NewHealthHandler(healthChecks(infra))))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, logger, cookies), guard))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(svc.Profile, logger), guard))
	r.Add(modules.NewDiagnosticModule(handlers.NewDiagnosticHandler(svc.Diagnostic, logger), guard))
	r.Add(modules.NewLearningModule(handlers.NewLearningHandler(svc.Learning, logger), guard))
	r.Add(modules.NewCertificateModule(handlers.NewCertificateHandler(svc.Certificates, logger), guard))
	r.Add(modules.NewFinanceModule(handlers.NewFinanceHandler(svc.Finance, logger), guard))
	r.Add(modules.NewAchievementModule(handlers.NewAchievementHandler(svc.Achievements, logger), guard))
	r.Add(modules.NewCommunityModule(handlers.NewCommunityHandler(svc.Community, logger), guard))
	r.Add(modules.NewCalendarModule(
		handlers.NewCalendarHandler(svc.Calendar, logger),
		handlers.NewMentorHandler(svc.Mentors, logger),
		guard,
	))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(svc.Notifications, logger), guard))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(infra.Redis))
	}
}
