package main

import (
	"context"
	"fmt"

	"bistro/internal/events"
	"bistro/internal/health"
	newsletterhandler "bistro/internal/newsletter/handler"
	newsletterrepository "bistro/internal/newsletter/repository"
	newsletterservice "bistro/internal/newsletter/service"
	newslettervalidator "bistro/internal/newsletter/validator"
	reservationshandler "bistro/internal/reservations/handler"
	reservationsrepository "bistro/internal/reservations/repository"
	reservationsservice "bistro/internal/reservations/service"
	reservationsvalidator "bistro/internal/reservations/validator"
	"bistro/pkg/app"
	"bistro/pkg/config"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(ServiceName)
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		cfg.Log.Error("Invalid configuration", "error", err)
		return err
	}
	cfg.LogConfiguration()

	if err := cfg.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect storage: %w", err)
	}
	defer cfg.GracefulShutdown()

	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		return err
	}

	reservations, err := initReservations(cfg, publisher)
	if err != nil {
		_ = publisher.Close()
		return err
	}
	newsletter, err := initNewsletter(cfg, publisher)
	if err != nil {
		_ = publisher.Close()
		return err
	}

	cfg.Log.Info("Starting Bistro service", "storage_driver", cfg.StorageDriver)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(health.NewHealthHandler(cfg.Client, cfg.Log), reservations, newsletter)
	serverApp.OnShutdown(publisher)
	return serverApp.Run(ctx)
}

func initReservations(cfg *config.Config, publisher events.Publisher) (*reservationshandler.ReservationHandler, error) {
	hours, err := reservationsvalidator.ParseBusinessHours(cfg.OpeningTime, cfg.WeekdayClosingTime, cfg.SundayClosingTime)
	if err != nil {
		return nil, fmt.Errorf("invalid business hours: %w", err)
	}

	repo, err := reservationsrepository.NewReservationRepository(cfg)
	if err != nil {
		return nil, err
	}

	reservationService := reservationsservice.NewReservationService(
		repo,
		reservationsservice.NewTableAllocator(repo, cfg.TablePoolSize, reservationsservice.DefaultRandom),
		reservationsvalidator.NewSlotValidator(hours, cfg.Location, nil),
		reservationsvalidator.NewReservationValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "table_pool_size", cfg.TablePoolSize, "timezone", cfg.RestaurantTimezone)
	return reservationshandler.NewReservationHandler(reservationService, cfg.Log), nil
}

func initNewsletter(cfg *config.Config, publisher events.Publisher) (*newsletterhandler.NewsletterHandler, error) {
	repo, err := newsletterrepository.NewSubscriberRepository(cfg)
	if err != nil {
		return nil, err
	}

	newsletterService := newsletterservice.NewNewsletterService(
		repo,
		newslettervalidator.NewSubscriberValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Newsletter service initialized")
	return newsletterhandler.NewNewsletterHandler(newsletterService, cfg.Log), nil
}
