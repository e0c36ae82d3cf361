package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/pokecard-services/configs"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/broker"
	catalogcfg "github.com/avvvet/pokecard-services/internal/catalogsvc/config"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/db"
	handlers "github.com/avvvet/pokecard-services/internal/catalogsvc/handlers"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/rarity"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/service"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/store"
	natsconn "github.com/avvvet/pokecard-services/internal/nats"
)

const SERVICE_NAME = "catalog"

func init() {
	config.LoadEnv(SERVICE_NAME)

	// prices go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfg := catalogcfg.Load()
	config.Logging(SERVICE_NAME+"_service", cfg.LogDir)
	instanceId := config.CreateUniqueInstance(SERVICE_NAME)

	if err := rarity.Validate(); err != nil {
		log.Fatalf("Invalid rarity table: %v", err)
	}

	// sqlite connection
	pool, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer pool.Close()
	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}
	log.Printf("sqlite database %s ready", cfg.DBPath)

	setStore := store.NewSetStore(pool)
	pullRateStore := store.NewPullRateStore(pool)
	setService := service.NewSetService(setStore, pullRateStore)

	cardStore := store.NewCardStore(pool)
	gradedPriceStore := store.NewGradedPriceStore(pool)
	cardService := service.NewCardService(setService, cardStore, gradedPriceStore)

	uncovered, err := cardService.UncoveredRarities(context.Background())
	if err != nil {
		log.Fatalf("Failed to read stored rarities: %v", err)
	}
	if len(uncovered) > 0 {
		log.Warnf("stored rarities with no rarity filter: %q", uncovered)
	}

	// NATS lookups are optional
	var sub *nats.Subscription
	if cfg.NatsURL != "" {
		n, err := natsconn.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"_service_"+instanceId)
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		defer n.Conn.Drain()
		log.Printf("NATS connection established successfully %s", n.Url)

		b := broker.NewBroker(n.Conn, setService, cardService, cfg.RequestTimeout)
		sub, err = b.QueueSubscribe(cfg.Subject)
		if err != nil {
			log.Fatalf("Error: unable to subscribe to %s %v", cfg.Subject, err)
		}
		log.Infof("answering lookups on %s (queue %s)", cfg.Subject, broker.QueueGroup)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.CORSOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(setService, cardService, instanceId)
	h.InitAuth(cfg.JWTSecret)
	h.Mount(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if sub != nil {
		sub.Unsubscribe()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
		return
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
