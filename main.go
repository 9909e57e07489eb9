package main

import (
	"log"

	"github.com/Moadjaafar/GESTION-LTIPM/config"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/auth"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/handler"
	appmiddleware "github.com/Moadjaafar/GESTION-LTIPM/internal/middleware"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/notify"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/reporting"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/repository"
	"github.com/Moadjaafar/GESTION-LTIPM/internal/service"
	"github.com/Moadjaafar/GESTION-LTIPM/pkg/database"
	"github.com/Moadjaafar/GESTION-LTIPM/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())
	stockDB := database.NewStockDB(cfg.StockDSN)

	// Notifications degrade to a no-op when the broker is unreachable;
	// booking operations never depend on it.
	var notifier notify.Notifier = notify.Noop{}
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("rabbitmq unavailable, notifications disabled: %v", err)
	} else {
		defer publisher.Close()
		notifier = notify.NewRabbitNotifier(publisher)
	}

	bookingRepo := repository.NewBookingRepository(db)
	voyageRepo := repository.NewVoyageRepository(db)
	temporisationRepo := repository.NewTemporisationRepository(db)
	societyRepo := repository.NewSocietyRepository(db)
	carrierRepo := repository.NewSocietyTranspRepository(db)
	camionRepo := repository.NewCamionRepository(db)
	userRepo := repository.NewUserRepository(db)

	authService := auth.NewService(userRepo)
	fleetService := service.NewFleetService(camionRepo, carrierRepo, voyageRepo)
	bookingService := service.NewBookingService(
		bookingRepo, voyageRepo, temporisationRepo, societyRepo, userRepo, notifier, cfg.OpsMailbox)
	voyageService := service.NewVoyageService(voyageRepo, bookingRepo, societyRepo, fleetService)
	societyService := service.NewSocietyService(societyRepo, bookingRepo)
	userService := service.NewUserService(userRepo, bookingRepo)
	reportService := reporting.NewService(db)
	stockService := reporting.NewStockService(stockDB)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = appmiddleware.ErrorHandler
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())

	handler.RegisterRoutes(e,
		handler.NewBookingHandler(bookingService),
		handler.NewVoyageHandler(voyageService),
		handler.NewMasterDataHandler(societyService, fleetService),
		handler.NewUserHandler(userService, authService),
		handler.NewReportingHandler(reportService, stockService),
	)

	log.Printf("starting server on :%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
