package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/example/foodmart/config"
	"github.com/example/foodmart/internal/auth"
	handler "github.com/example/foodmart/internal/handler/http"
	"github.com/example/foodmart/internal/logger"
	"github.com/example/foodmart/internal/middleware"
	"github.com/example/foodmart/internal/models"
	"github.com/example/foodmart/internal/notify"
	"github.com/example/foodmart/internal/repository"
	"github.com/example/foodmart/internal/repository/postgres"
	"github.com/example/foodmart/internal/service"
	"github.com/example/foodmart/internal/worker"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const authTokenKey = "9c1185a5c5e9fc54612808977ee8f548"

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	tokenKey, err := hex.DecodeString(authTokenKey)
	if err != nil {
		logger.Log.Fatal("Error extracting token key", zap.Error(err))
	}
	token := auth.NewAuthToken(tokenKey)

	// notification sink is best-effort; run without a broker if unset
	var emitter notify.Emitter = notify.NopEmitter{}
	if cfg.AMQPURL != "" {
		publisher, err := notify.NewPublisher(cfg.AMQPURL, logger.Log)
		if err != nil {
			logger.Log.Error("Error connecting notification broker", zap.Error(err))
		} else {
			defer publisher.Close()
			emitter = publisher
		}
	}

	// dependency injection
	// user
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo, token)
	userHandler := handler.NewUserHandler(userService)

	// wallet ledger
	walletRepo := repository.NewWalletRepository(db)
	walletService := service.NewWalletService(walletRepo, emitter, logger.Log)
	walletHandler := handler.NewWalletHandler(walletService)

	// order lifecycle and escrow
	orderRepo := repository.NewOrderRepository(db)
	escrowRepo := repository.NewEscrowRepository(db)
	orderService := service.NewOrderService(orderRepo, cfg, emitter, logger.Log)
	escrowService := service.NewEscrowService(orderRepo, escrowRepo, walletService, cfg, emitter, logger.Log)
	orderHandler := handler.NewOrderHandler(orderService, escrowService)

	// driver assignment
	assignmentRepo := repository.NewAssignmentRepository(db)
	driverRepo := repository.NewDriverStateRepository(db)
	assignmentService := service.NewAssignmentService(assignmentRepo, orderRepo, cfg, emitter, logger.Log)
	driverHandler := handler.NewDriverHandler(assignmentService, orderService, escrowService, driverRepo)

	// maintenance reconciler
	reconciler := worker.NewReconciler(assignmentRepo, driverRepo, walletRepo, worker.Config{
		Interval:         cfg.ReconcileInterval,
		ExpiryBuffer:     cfg.ExpiryBuffer,
		AssignmentMaxAge: cfg.AssignmentMaxAge,
		OfflineThreshold: cfg.OfflineThreshold,
	})
	go reconciler.Run(ctx)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger.Log))

	router.Post("/api/user/register", userHandler.Register())
	router.Post("/api/user/login", userHandler.Login())
	router.Handle("/metrics", promhttp.Handler())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(middleware.Auth(token))

		group.Post("/api/orders", orderHandler.CreateOrder())
		group.Get("/api/orders/{id}", orderHandler.GetOrder())
		group.Get("/api/orders/{id}/can-cancel", orderHandler.CanCancel())
		group.Post("/api/orders/{id}/cancel", orderHandler.CancelOrder())
		group.Post("/api/orders/{id}/process-escrow", orderHandler.ProcessEscrow())
		group.Get("/api/orders/{id}/timeout-check", orderHandler.TimeoutCheck())
		group.Post("/api/orders/{id}/timeout-refund", orderHandler.TimeoutRefund())
		group.Post("/api/orders/{id}/offers", driverHandler.OfferAssignment())

		group.Get("/api/wallet", walletHandler.GetWallet())
		group.Post("/api/wallet/topup", walletHandler.TopUp())
		group.Post("/api/wallet/withdraw", walletHandler.Withdraw())
		group.Get("/api/wallet/transactions", walletHandler.ListTransactions())

		group.Group(func(restaurant chi.Router) {
			restaurant.Use(middleware.RequireRole(models.RoleRestaurant))
			restaurant.Post("/api/orders/{id}/accept", orderHandler.AcceptOrder())
		})

		group.Group(func(driver chi.Router) {
			driver.Use(middleware.RequireRole(models.RoleDriver))
			driver.Post("/api/driver/orders/{id}/accept", driverHandler.AcceptAssignment())
			driver.Patch("/api/driver/orders/{id}/status", driverHandler.UpdateOrderStatus())
			driver.Post("/api/driver/orders/{id}/deliver", orderHandler.DeliverOrder())
			driver.Post("/api/driver/assignments/{id}/decline", driverHandler.DeclineAssignment())
			driver.Post("/api/driver/heartbeat", driverHandler.Heartbeat())
		})

		group.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			admin.Get("/api/wallet/admin/pending", walletHandler.ListPending())
			admin.Put("/api/wallet/admin/approve/{id}", walletHandler.Approve())
			admin.Put("/api/wallet/admin/reject/{id}", walletHandler.Reject())
			admin.Post("/api/admin/emergency-cleanup", func(w http.ResponseWriter, r *http.Request) {
				if err := reconciler.EmergencyCleanup(r.Context()); err != nil {
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
				w.WriteHeader(http.StatusOK)
			})
		})
	})

	logger.Log.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
