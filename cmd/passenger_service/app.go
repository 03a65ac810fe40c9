// Package passengerservice boots the passenger portal: HTTP API, websocket
// stream and the ride status consumer.
package passengerservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"charide/internal/domain/user"
	"charide/internal/general/config"
	"charide/internal/general/contracts"
	"charide/internal/general/httpx"
	"charide/internal/general/jwt"
	"charide/internal/general/logger"
	"charide/internal/general/postgres"
	"charide/internal/general/rabbitmq"
	"charide/internal/general/websocket"
	authhandler "charide/internal/software/auth/handler"
	authservice "charide/internal/software/auth/service"
	"charide/internal/software/notify"
	"charide/internal/software/passenger/handler"
	"charide/internal/software/passenger/service"

	"github.com/rs/cors"
)

// Run wires the passenger service and blocks until ctx is cancelled.
func Run(ctx context.Context, maxConcurrent int) error {
	logger := logger.New("passenger-service")
	ctx = logger.WithRequestID(ctx, "startup-001")

	cfg, err := config.LoadFromFile("config/config.yaml")
	if err != nil {
		logger.Error(ctx, "config_load_failed", "Failed to load configuration", err, nil)
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "db_connection_failed", "Failed to initialize Postgres pool", err, nil)
		return err
	}
	defer pool.Close()

	mq, err := rabbitmq.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "rabbitmq_connection_failed", "Failed to connect to RabbitMQ", err, nil)
		return err
	}
	defer mq.Close()

	jwtManager := jwt.NewManager(cfg.JWT.SecretKey, 2*time.Hour)

	uow := postgres.NewUnitOfWork(pool)
	userRepo := postgres.NewUserRepo()
	driverRepo := postgres.NewDriverRepo()
	rideRepo := postgres.NewRideRepo()

	notifier := notify.NewRideNotifier(rabbitmq.NewMQPublisher(mq), logger, "passenger-service")

	authSvc := authservice.NewAuthService(user.RolePassenger, uow, userRepo, nil, jwtManager, logger)
	svc := service.NewPassengerService(uow, userRepo, driverRepo, rideRepo, notifier, logger)

	// websocket hub fed by the portal's ride status queue
	hub := websocket.NewHub()
	ws := websocket.NewWebSocket(logger, jwtManager, hub)
	go func() {
		if err := notify.RunHubForwarder(ctx, mq, contracts.QueueRideStatusPassenger, "passenger-ws", hub, logger); err != nil {
			logger.Error(ctx, "hub_forwarder_stopped", "Ride status forwarder stopped", err, nil)
		}
	}()

	mux := http.NewServeMux()
	authhandler.NewAuthHTTPHandler(authSvc, logger, jwtManager, user.RolePassenger).RegisterRoutes(mux)
	handler.NewPassengerHTTPHandler(svc, logger, jwtManager).RegisterRoutes(mux)
	mux.HandleFunc("GET /ws/passenger", ws.ConnectPassenger)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(mux)

	limitedHandler := httpx.WithConcurrencyLimit(maxConcurrent, corsHandler)

	logger.Info(ctx, "service_started",
		fmt.Sprintf("Passenger service started on port %d", cfg.Services.PassengerServicePort),
		map[string]any{"port": cfg.Services.PassengerServicePort, "max_concurrent": maxConcurrent},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Services.PassengerServicePort),
		Handler:           limitedHandler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "http_shutdown_failed", "Failed to gracefully shut down HTTP server", err, nil)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "http_server_error", "HTTP server terminated with error", err, map[string]any{"port": cfg.Services.PassengerServicePort})
			return err
		}
		return nil
	}

	return nil
}
