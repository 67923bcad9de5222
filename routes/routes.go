package routes

import (
	"github.com/Sakif-Hossain/cleanbooker/config"
	"github.com/Sakif-Hossain/cleanbooker/controllers"
	"github.com/Sakif-Hossain/cleanbooker/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	authController := controllers.NewAuthController(db)
	customerController := controllers.NewCustomerController(db)
	serviceController := controllers.NewServiceController(db)
	bookingController := controllers.NewBookingController(db)
	employeeController := controllers.NewEmployeeController(db)
	analyticsController := controllers.NewAnalyticsController(db)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/logout", authController.Logout)

		auth.GET("/profile", middleware.AuthRequired(db), authController.Profile)
	}

	api := r.Group("/api")
	api.Use(middleware.AuthRequired(db))
	{
		customers := api.Group("/customers")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", customerController.UpdateCustomer)
			customers.DELETE("/:id", customerController.DeleteCustomer)
		}

		services := api.Group("/services")
		{
			services.POST("", serviceController.CreateService)
			services.GET("", serviceController.GetServices)
			services.GET("/:id", serviceController.GetService)
			services.PUT("/:id", serviceController.UpdateService)
			services.DELETE("/:id", serviceController.DeleteService)
			services.PATCH("/:id/status", serviceController.ToggleServiceStatus)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", bookingController.CreateBooking)
			bookings.GET("", bookingController.GetBookings)
			bookings.GET("/date/:date", bookingController.GetBookingsByDate)
			bookings.GET("/:id", bookingController.GetBooking)
			bookings.PUT("/:id", bookingController.UpdateBooking)
			bookings.DELETE("/:id", bookingController.DeleteBooking)
			bookings.PATCH("/:id/status", bookingController.UpdateBookingStatus)
			bookings.POST("/:id/review", bookingController.CreateReview)
		}

		employees := api.Group("/employees")
		{
			employees.POST("", employeeController.CreateEmployee)
			employees.GET("", employeeController.GetEmployees)
			employees.PUT("/:id", employeeController.UpdateEmployee)
			employees.DELETE("/:id", employeeController.DeleteEmployee)
		}

		api.GET("/analytics/dashboard", analyticsController.GetDashboardStats)
	}

	return r
}
