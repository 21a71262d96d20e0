package main

import (
	"suitestay/internal/reservations/handler"
	"suitestay/internal/reservations/policy"
	"suitestay/internal/reservations/repository"
	"suitestay/internal/reservations/service"
	"suitestay/internal/reservations/validator"
	"suitestay/pkg/app"
	"suitestay/pkg/clock"
	"suitestay/pkg/config"
	"suitestay/pkg/events"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reservations service")
	reservationService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReservationService {
	clk := clock.System()

	reservationValidator := validator.NewReservationValidator(clk, cfg.MinimumStayDays, cfg.Log)
	cancellationPolicy := policy.NewCancellationPolicy(cfg.CancelNoticeDays)
	reservationRepo := repository.NewMongoReservationRepository(cfg)
	lockRepo := repository.NewSuiteLockRepository(cfg)

	publisher := initPublisher(cfg)

	reservationService := service.NewReservationService(
		reservationRepo,
		lockRepo,
		reservationValidator,
		cancellationPolicy,
		clk,
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized",
		"database", cfg.MongoDatabaseName,
		"minimum_stay_days", cfg.MinimumStayDays,
		"cancel_notice_days", cfg.CancelNoticeDays,
	)
	return reservationService
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, reservation events disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.ReservationEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}

	cfg.Log.Info("Kafka publisher initialized",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.ReservationEventsTopic,
	)
	return publisher
}
