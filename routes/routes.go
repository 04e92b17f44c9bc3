package routes

import (
	"net/http"
	"time"

	"velour/handlers"
	"velour/middleware"
	"velour/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the appointment and class booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.BookingHandler.CreateBooking)
		api.GET("/check-availability", hb.BookingHandler.CheckAvailability)
		api.GET("/customer/:identifier", hb.BookingHandler.ListCustomerBookings)

		// Admin-only booking management.
		protected := api.Group("")
		protected.Use(middleware.AdminAuthMiddleware(hb.AdminRepo))
		protected.GET("", hb.BookingHandler.ListBookings)
		protected.GET("/:id", hb.BookingHandler.GetBooking)
		protected.PATCH("/:id/status", hb.BookingHandler.UpdateBookingStatus)
		protected.DELETE("/:id", hb.BookingHandler.DeleteBooking)
	}

	classes := r.Group("/api/class-bookings")
	{
		classes.POST("", hb.BookingHandler.CreateClassBooking)

		protected := classes.Group("")
		protected.Use(middleware.AdminAuthMiddleware(hb.AdminRepo))
		protected.GET("", hb.BookingHandler.ListClassBookings)
		protected.DELETE("/:id", hb.BookingHandler.DeleteClassBooking)
	}
}

// RegisterPaymentRoutes sets up checkout and the gateway callback. The
// callback must stay public so the gateway can reach it.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payment")
	{
		api.POST("/checkout", hb.PaymentHandler.Checkout)
		api.POST("/callback", hb.PaymentHandler.Callback)
	}
}

// RegisterAdminRoutes sets up back-office account and reporting endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.POST("/register", hb.AdminHandler.Register)
		api.POST("/login", hb.AdminHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.AdminAuthMiddleware(hb.AdminRepo))
		protected.GET("/profile", hb.AdminHandler.Profile)
		protected.PATCH("/profile", hb.AdminHandler.UpdateProfile)
		protected.GET("/revenue", hb.AdminHandler.Revenue)
		protected.GET("/analytics", hb.AdminHandler.Analytics)
	}
}

// RegisterCatalogRoutes sets up service, course and employee management.
// Reads are public for the storefront; writes require an admin token.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	services := r.Group("/api/services")
	{
		services.GET("", hb.CatalogHandler.ListServices)
		services.GET("/:id", hb.CatalogHandler.GetService)

		protected := services.Group("")
		protected.Use(middleware.AdminAuthMiddleware(hb.AdminRepo))
		protected.POST("", hb.CatalogHandler.CreateService)
		protected.PUT("/:id", hb.CatalogHandler.UpdateService)
		protected.DELETE("/:id", hb.CatalogHandler.DeleteService)
	}

	courses := r.Group("/api/courses")
	{
		courses.GET("", hb.CatalogHandler.ListCourses)
		courses.GET("/:id", hb.CatalogHandler.GetCourse)

		protected := courses.Group("")
		protected.Use(middleware.AdminAuthMiddleware(hb.AdminRepo))
		protected.POST("", hb.CatalogHandler.CreateCourse)
		protected.PUT("/:id", hb.CatalogHandler.UpdateCourse)
		protected.DELETE("/:id", hb.CatalogHandler.DeleteCourse)
	}

	employees := r.Group("/api/employees")
	{
		employees.GET("", hb.CatalogHandler.ListEmployees)
		employees.GET("/:id", hb.CatalogHandler.GetEmployee)

		protected := employees.Group("")
		protected.Use(middleware.AdminAuthMiddleware(hb.AdminRepo))
		protected.POST("", hb.CatalogHandler.CreateEmployee)
		protected.PUT("/:id", hb.CatalogHandler.UpdateEmployee)
		protected.DELETE("/:id", hb.CatalogHandler.DeleteEmployee)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm Velour",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
}
