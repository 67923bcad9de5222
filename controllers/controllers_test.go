package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see a different in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Business{},
		&models.Customer{},
		&models.CustomerNote{},
		&models.Service{},
		&models.AddOn{},
		&models.Booking{},
		&models.BookingAddOn{},
		&models.Employee{},
		&models.Review{},
		&models.RefreshToken{},
		&models.ReminderLog{},
	))
	return db
}

// authAs stands in for the bearer-token middleware and pins the tenant
func authAs(businessID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("businessId", businessID)
		c.Next()
	}
}

// newAPIRouter wires the tenant-scoped routes with a fixed authenticated
// business. Cross-tenant tests build one router per tenant over the same db.
func newAPIRouter(db *gorm.DB, businessID uuid.UUID) *gin.Engine {
	r := gin.New()

	customerController := NewCustomerController(db)
	serviceController := NewServiceController(db)
	bookingController := NewBookingController(db)
	employeeController := NewEmployeeController(db)
	analyticsController := NewAnalyticsController(db)

	api := r.Group("/api")
	api.Use(authAs(businessID))
	{
		api.POST("/customers", customerController.CreateCustomer)
		api.GET("/customers", customerController.GetCustomers)
		api.GET("/customers/:id", customerController.GetCustomer)
		api.PUT("/customers/:id", customerController.UpdateCustomer)
		api.DELETE("/customers/:id", customerController.DeleteCustomer)

		api.POST("/services", serviceController.CreateService)
		api.GET("/services", serviceController.GetServices)
		api.GET("/services/:id", serviceController.GetService)
		api.PUT("/services/:id", serviceController.UpdateService)
		api.DELETE("/services/:id", serviceController.DeleteService)
		api.PATCH("/services/:id/status", serviceController.ToggleServiceStatus)

		api.POST("/bookings", bookingController.CreateBooking)
		api.GET("/bookings", bookingController.GetBookings)
		api.GET("/bookings/date/:date", bookingController.GetBookingsByDate)
		api.GET("/bookings/:id", bookingController.GetBooking)
		api.PUT("/bookings/:id", bookingController.UpdateBooking)
		api.DELETE("/bookings/:id", bookingController.DeleteBooking)
		api.PATCH("/bookings/:id/status", bookingController.UpdateBookingStatus)
		api.POST("/bookings/:id/review", bookingController.CreateReview)

		api.POST("/employees", employeeController.CreateEmployee)
		api.GET("/employees", employeeController.GetEmployees)
		api.PUT("/employees/:id", employeeController.UpdateEmployee)
		api.DELETE("/employees/:id", employeeController.DeleteEmployee)

		api.GET("/analytics/dashboard", analyticsController.GetDashboardStats)
	}

	return r
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success, "expected success envelope, got message %q", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func seedCustomer(t *testing.T, db *gorm.DB, businessID uuid.UUID, email string) models.Customer {
	t.Helper()
	customer := models.Customer{
		BusinessID: businessID,
		FirstName:  "Jamie",
		LastName:   "Rivera",
		Email:      email,
		Phone:      "+15550001111",
		Street:     "12 Main St",
		City:       "Austin",
		State:      "TX",
		ZipCode:    "78701",
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

// seedService creates a 100/60min service with two add-ons: 20/15min and 10/5min
func seedService(t *testing.T, db *gorm.DB, businessID uuid.UUID) models.Service {
	t.Helper()
	service := models.Service{
		BusinessID:   businessID,
		Name:         "Deep Clean",
		Category:     models.CategoryDeep,
		BasePrice:    decimal.NewFromInt(100),
		BaseDuration: 60,
		IsActive:     true,
		AddOns: []models.AddOn{
			{Name: "Inside Fridge", Price: decimal.NewFromInt(20), Duration: 15},
			{Name: "Inside Oven", Price: decimal.NewFromInt(10), Duration: 5},
		},
	}
	require.NoError(t, db.Create(&service).Error)
	return service
}

func seedBooking(t *testing.T, db *gorm.DB, businessID uuid.UUID,
	customer models.Customer, service models.Service, status models.BookingStatus) models.Booking {
	t.Helper()
	booking := models.Booking{
		BusinessID:        businessID,
		CustomerID:        customer.ID,
		ServiceID:         service.ID,
		ScheduledDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ScheduledTime:     "09:00",
		Status:            status,
		TotalPrice:        service.BasePrice,
		EstimatedDuration: service.BaseDuration,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}
