// File: velour/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"velour/config"
	"velour/cron"
	"velour/database"
	adminRepoPkg "velour/database/repository/admin"
	bookingRepoPkg "velour/database/repository/booking"
	classBookingRepoPkg "velour/database/repository/classbooking"
	courseRepoPkg "velour/database/repository/course"
	employeeRepoPkg "velour/database/repository/employee"
	paymentRepoPkg "velour/database/repository/payment"
	serviceRepoPkg "velour/database/repository/service"
	"velour/handlers"
	"velour/middleware"
	"velour/routes"
	"velour/services/admin"
	"velour/services/booking"
	"velour/services/catalog"
	"velour/services/notification"
	"velour/services/payment"
	"velour/services/storage"
	"velour/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	storageService, err := storage.NewCloudinaryStorageService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	classBookingRepo := classBookingRepoPkg.NewMongoClassBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	courseRepo := courseRepoPkg.NewMongoCourseRepo()
	employeeRepo := employeeRepoPkg.NewMongoEmployeeRepo()
	adminRepo := adminRepoPkg.NewMongoAdminRepo()

	// async queue and notifications.
	queueClient := cron.NewQueueClient()
	defer queueClient.Close()
	notifier := notification.NewAsyncNotifier(queueClient)
	mailer := notification.NewGomailMailer()

	// services.
	loc := config.Location()
	bookingService := &booking.DefaultBookingService{
		Repo:      bookingRepo,
		ClassRepo: classBookingRepo,
		Notifier:  notifier,
		Loc:       loc,
	}

	gateway := payment.NewDarajaClient(payment.DarajaConfig{
		BaseURL:        config.AppConfig.MpesaBaseURL,
		ConsumerKey:    config.AppConfig.MpesaConsumerKey,
		ConsumerSecret: config.AppConfig.MpesaConsumerSecret,
		ShortCode:      config.AppConfig.MpesaShortCode,
		Passkey:        config.AppConfig.MpesaPasskey,
		CallbackURL:    config.AppConfig.MpesaCallbackURL,
		Timeout:        config.AppConfig.MpesaTimeout,
	}, utils.GetCacheClient(), loc)

	paymentOrchestrator := &payment.DefaultOrchestrator{
		Repo:     paymentRepo,
		Gateway:  gateway,
		Bookings: bookingService,
		Notifier: notifier,
	}

	adminService := &admin.DefaultAdminService{
		Repo:      adminRepo,
		Bookings:  bookingRepo,
		Services:  serviceRepo,
		Employees: employeeRepo,
		SecretKey: config.AppConfig.AdminSecretKey,
	}

	catalogService := &catalog.DefaultCatalogService{
		Services:  serviceRepo,
		Courses:   courseRepo,
		Employees: employeeRepo,
		Storage:   storageService,
	}

	// background worker and periodic sweeps.
	cron.InitWorker(mailer, bookingService, paymentOrchestrator)
	cron.InitScheduler()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		BookingHandler: handlers.NewBookingHandler(bookingService),
		PaymentHandler: handlers.NewPaymentHandler(paymentOrchestrator),
		AdminHandler:   handlers.NewAdminHandler(adminService),
		CatalogHandler: handlers.NewCatalogHandler(catalogService),
		AdminRepo:      adminRepo,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
