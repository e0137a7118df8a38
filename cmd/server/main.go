package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/router"
	"github.com/iliyamo/hotel-reservation/internal/seed"
	"github.com/iliyamo/hotel-reservation/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.OptionsFromConfig(cfg))
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	customers := repository.NewCustomerRepo(db)
	hotels := repository.NewHotelRepo(db)
	reservations := repository.NewReservationRepo(db)

	if cfg.HotelSeedFile != "" {
		if err := seed.Run(ctx, hotels, cfg.HotelSeedFile); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	var events service.Publisher = service.LogPublisher{}
	if cfg.EventsEnabled {
		events = service.NewAMQPPublisher(cfg.AMQPURL)
	}
	locks := service.NewHotelLocks()
	booking := service.NewBookingService(db, customers, hotels, reservations, locks, events)
	hotelAdmin := service.NewHotelService(db, hotels, locks)

	if cfg.ConsumerEnabled {
		consumer := queue.NewConsumer(cfg.AMQPURL, cfg.EventLogDir)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("events: consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}
	router.Register(e, db, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, tokens),
		Hotels:       handler.NewHotelHandler(hotels, reservations, hotelAdmin),
		Customers:    handler.NewCustomerHandler(customers, reservations),
		Reservations: handler.NewReservationHandler(booking, reservations),
	}, router.Options{
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
