package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"openstage/internal/cache"
	"openstage/internal/config"
	"openstage/internal/database"
	"openstage/internal/domain"
	"openstage/internal/middleware"
	"openstage/internal/modules/appointments"
	"openstage/internal/modules/auth"
	"openstage/internal/modules/events"
	"openstage/internal/modules/lineup"
	"openstage/internal/modules/live"
	"openstage/internal/modules/slots"
	"openstage/internal/notify"
	jwtsvc "openstage/internal/pkg/jwt"
	"openstage/internal/repository"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		logrus.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	slotCache := cache.NewSlotCache(cache.NewRedisClient(cfg.RedisAddr), cfg.SlotCacheTTL)
	hub := live.NewHub()
	defer hub.Close()
	publisher := notify.NewPublisher(cfg.AMQPUrl)
	defer publisher.Close()
	dispatcher := notify.NewDispatcher(publisher, hub)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	eventsHandler := events.NewHandler(events.NewService(eventRepo, serviceRepo))
	slotsHandler := slots.NewHandler(slots.NewService(slotRepo, slotCache, dispatcher))
	appointmentsHandler := appointments.NewHandler(appointments.NewService(appointmentRepo, dispatcher))
	lineupHandler := lineup.NewHandler(lineup.NewService(eventRepo, slotRepo, userRepo, slotCache, dispatcher))
	liveHandler := live.NewHandler(hub)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		eventsHandler.RegisterPublicRoutes(v1)
		slotsHandler.RegisterPublicRoutes(v1)
		lineupHandler.RegisterPublicRoutes(v1)
		liveHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			slotsHandler.RegisterRoutes(protected)
			appointmentsHandler.RegisterRoutes(protected)
			lineupHandler.RegisterRoutes(protected)

			hosts := protected.Group("/")
			hosts.Use(middleware.RequireRole(string(domain.RoleHost), string(domain.RoleAdmin)))
			eventsHandler.RegisterRoutes(hosts)
		}
	}

	logrus.WithField("addr", cfg.HTTPAddr).Info("starting openstage api")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logrus.Fatal(err)
	}
}
