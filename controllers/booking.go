// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/Sakif-Hossain/cleanbooker/services"
	"github.com/Sakif-Hossain/cleanbooker/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	CustomerID        uuid.UUID             `json:"customerId" binding:"required"`
	ServiceID         uuid.UUID             `json:"serviceId" binding:"required"`
	EmployeeID        *uuid.UUID            `json:"employeeId"`
	AddOnIDs          []uuid.UUID           `json:"addOnIds"`
	ScheduledDate     time.Time             `json:"scheduledDate" binding:"required"`
	ScheduledTime     string                `json:"scheduledTime" binding:"required"`
	PaymentMethod     string                `json:"paymentMethod"`
	RecurrenceType    models.RecurrenceType `json:"recurrenceType" binding:"omitempty,oneof=NONE WEEKLY BIWEEKLY MONTHLY"`
	RecurrenceEndDate *time.Time            `json:"recurrenceEndDate"`
	ParentBookingID   *uuid.UUID            `json:"parentBookingId"`
	Notes             string                `json:"notes"`
}

// UpdateBookingInput defines the expected JSON structure for updating a booking.
// Changing the service or the add-on selection triggers a full recomputation
// of price and duration.
type UpdateBookingInput struct {
	CustomerID        *uuid.UUID             `json:"customerId"`
	ServiceID         *uuid.UUID             `json:"serviceId"`
	EmployeeID        *uuid.UUID             `json:"employeeId"`
	AddOnIDs          *[]uuid.UUID           `json:"addOnIds"`
	ScheduledDate     *time.Time             `json:"scheduledDate"`
	ScheduledTime     *string                `json:"scheduledTime"`
	PaymentMethod     *string                `json:"paymentMethod"`
	PaymentStatus     *string                `json:"paymentStatus"`
	RecurrenceType    *models.RecurrenceType `json:"recurrenceType" binding:"omitempty,oneof=NONE WEEKLY BIWEEKLY MONTHLY"`
	RecurrenceEndDate *time.Time             `json:"recurrenceEndDate"`
	Notes             *string                `json:"notes"`
}

// UpdateBookingStatusInput carries the new status plus the optional
// completion companion data
type UpdateBookingStatusInput struct {
	Status         models.BookingStatus `json:"status" binding:"required"`
	ActualDuration *int                 `json:"actualDuration" binding:"omitempty,gt=0"`
	BeforePhotos   []string             `json:"beforePhotos"`
	AfterPhotos    []string             `json:"afterPhotos"`
}

// CreateReviewInput defines the review attached to a completed booking
type CreateReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// BookingQuery is the filter criteria accepted by the booking list endpoint
type BookingQuery struct {
	ListQuery
	Status     string     `form:"status"`
	CustomerID *uuid.UUID `form:"customerId"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
}

var bookingSortColumns = map[string]string{
	"createdAt":     "created_at",
	"scheduledDate": "scheduled_date",
	"status":        "status",
	"totalPrice":    "total_price",
}

// CreateBooking creates a booking, deriving total price and estimated
// duration from the service and the selected add-ons.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateTimeOfDay(input.ScheduledTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Scheduled time must be in HH:MM format")
		return
	}

	// Customer and service must belong to the caller's business
	var customer models.Customer
	if err := bc.DB.Where("business_id = ? AND id = ?", businessID, input.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var service models.Service
	if err := bc.DB.Preload("AddOns").
		Where("business_id = ? AND id = ?", businessID, input.ServiceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.EmployeeID != nil {
		var employee models.Employee
		if err := bc.DB.Where("business_id = ? AND id = ?", businessID, *input.EmployeeID).
			First(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	totals := services.ComputeTotals(&service, input.AddOnIDs)

	booking := models.Booking{
		BusinessID:        businessID,
		CustomerID:        input.CustomerID,
		ServiceID:         input.ServiceID,
		EmployeeID:        input.EmployeeID,
		ScheduledDate:     input.ScheduledDate,
		ScheduledTime:     input.ScheduledTime,
		Status:            models.BookingStatusPending,
		TotalPrice:        totals.Price,
		EstimatedDuration: totals.Duration,
		PaymentMethod:     input.PaymentMethod,
		RecurrenceEndDate: input.RecurrenceEndDate,
		ParentBookingID:   input.ParentBookingID,
		Notes:             input.Notes,
		AddOns:            totals.AddOns,
	}
	if input.RecurrenceType != "" {
		booking.RecurrenceType = input.RecurrenceType
	}

	if err := bc.DB.Create(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, booking, "Booking created successfully")
}

// GetBookings retrieves bookings for the business with filtering and pagination
func (bc *BookingController) GetBookings(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var query BookingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	query.Normalize(bookingSortColumns)

	base := bc.DB.Model(&models.Booking{}).Where("business_id = ?", businessID)

	if query.Status != "" {
		base = base.Where("status = ?", query.Status)
	}
	if query.CustomerID != nil {
		base = base.Where("customer_id = ?", *query.CustomerID)
	}
	if query.From != nil {
		base = base.Where("scheduled_date >= ?", utils.BeginningOfDay(*query.From))
	}
	if query.To != nil {
		base = base.Where("scheduled_date <= ?", utils.EndOfDay(*query.To))
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	var bookings []models.Booking
	if err := query.Apply(base).
		Preload("Customer").
		Preload("Service").
		Preload("AddOns").
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"bookings": bookings,
		"meta":     newPageMeta(total, query.ListQuery),
	}, "Bookings retrieved successfully")
}

// GetBookingsByDate retrieves bookings scheduled on a calendar date
func (bc *BookingController) GetBookingsByDate(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return
	}

	var bookings []models.Booking
	if err := bc.DB.
		Preload("Customer").
		Preload("Service").
		Preload("AddOns").
		Where("business_id = ? AND scheduled_date BETWEEN ? AND ?",
			businessID, utils.BeginningOfDay(date), utils.EndOfDay(date)).
		Order("scheduled_time ASC").
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	utils.RespondWithData(c, http.StatusOK, bookings, "Bookings retrieved successfully")
}

// GetBooking retrieves a specific booking
func (bc *BookingController) GetBooking(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var booking models.Booking
	err := bc.DB.
		Preload("Customer").
		Preload("Service").
		Preload("Service.AddOns").
		Preload("Employee").
		Preload("AddOns").
		Preload("Review").
		Where("business_id = ? AND id = ?", businessID, bookingID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, booking, "Booking retrieved successfully")
}

// UpdateBooking updates a booking. When the service or the add-on selection
// changes, total price and estimated duration are recomputed from the
// current base values; they are never carried over stale.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.ScheduledTime != nil && !utils.ValidateTimeOfDay(*input.ScheduledTime) {
		utils.RespondWithError(c, http.StatusBadRequest, "Scheduled time must be in HH:MM format")
		return
	}

	var booking models.Booking
	if err := bc.DB.Preload("AddOns").
		Where("business_id = ? AND id = ?", businessID, bookingID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Terminal bookings are history; they only change through reviews
	if services.IsTerminal(booking.Status) {
		utils.RespondWithError(c, http.StatusConflict,
			"Cannot update a booking in a terminal status")
		return
	}

	if input.CustomerID != nil {
		var customer models.Customer
		if err := bc.DB.Where("business_id = ? AND id = ?", businessID, *input.CustomerID).
			First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		booking.CustomerID = *input.CustomerID
	}
	if input.EmployeeID != nil {
		var employee models.Employee
		if err := bc.DB.Where("business_id = ? AND id = ?", businessID, *input.EmployeeID).
			First(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		booking.EmployeeID = input.EmployeeID
	}

	recompute := input.ServiceID != nil || input.AddOnIDs != nil

	serviceID := booking.ServiceID
	if input.ServiceID != nil {
		serviceID = *input.ServiceID
	}

	// Default to the current selection when only the service changes
	addOnIDs := make([]uuid.UUID, 0, len(booking.AddOns))
	for _, snapshot := range booking.AddOns {
		addOnIDs = append(addOnIDs, snapshot.AddOnID)
	}
	if input.AddOnIDs != nil {
		addOnIDs = *input.AddOnIDs
	}

	var totals services.BookingTotals
	if recompute {
		var service models.Service
		if err := bc.DB.Preload("AddOns").
			Where("business_id = ? AND id = ?", businessID, serviceID).
			First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Service not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		totals = services.ComputeTotals(&service, addOnIDs)
	}

	if input.ScheduledDate != nil {
		booking.ScheduledDate = *input.ScheduledDate
	}
	if input.ScheduledTime != nil {
		booking.ScheduledTime = *input.ScheduledTime
	}
	if input.PaymentMethod != nil {
		booking.PaymentMethod = *input.PaymentMethod
	}
	if input.PaymentStatus != nil {
		booking.PaymentStatus = *input.PaymentStatus
	}
	if input.RecurrenceType != nil {
		booking.RecurrenceType = *input.RecurrenceType
	}
	if input.RecurrenceEndDate != nil {
		booking.RecurrenceEndDate = input.RecurrenceEndDate
	}
	if input.Notes != nil {
		booking.Notes = *input.Notes
	}

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		if recompute {
			booking.ServiceID = serviceID
			booking.TotalPrice = totals.Price
			booking.EstimatedDuration = totals.Duration

			if err := tx.Where("booking_id = ?", booking.ID).
				Delete(&models.BookingAddOn{}).Error; err != nil {
				return err
			}
			for i := range totals.AddOns {
				totals.AddOns[i].BookingID = booking.ID
				if err := tx.Create(&totals.AddOns[i]).Error; err != nil {
					return err
				}
			}
			booking.AddOns = totals.AddOns
		}
		return tx.Omit("AddOns").Save(&booking).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	utils.RespondWithData(c, http.StatusOK, booking, "Booking updated successfully")
}

// UpdateBookingStatus moves a booking to a new status. Completion stamps the
// completion time and records actual duration and photos when provided.
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !services.ValidStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking status")
		return
	}

	var booking models.Booking
	if err := bc.DB.Where("business_id = ? AND id = ?", businessID, bookingID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	services.ApplyStatus(&booking, input.Status, &services.CompletionData{
		ActualDuration: input.ActualDuration,
		BeforePhotos:   input.BeforePhotos,
		AfterPhotos:    input.AfterPhotos,
	})

	if err := bc.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking status")
		return
	}

	utils.RespondWithData(c, http.StatusOK, booking, "Booking status updated successfully")
}

// DeleteBooking removes a booking unless it is in progress or completed
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var booking models.Booking
	if err := bc.DB.Where("business_id = ? AND id = ?", businessID, bookingID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !services.CanDeleteBooking(booking.Status) {
		utils.RespondWithError(c, http.StatusConflict,
			"Cannot delete a booking that is in progress or completed. Cancel it instead.")
		return
	}

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", booking.ID).
			Delete(&models.BookingAddOn{}).Error; err != nil {
			return err
		}
		return tx.Delete(&booking).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	utils.RespondWithData(c, http.StatusOK, nil, "Booking deleted successfully")
}

// CreateReview attaches a review to a completed booking, at most one
func (bc *BookingController) CreateReview(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking models.Booking
	if err := bc.DB.Where("business_id = ? AND id = ?", businessID, bookingID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if booking.Status != models.BookingStatusCompleted {
		utils.RespondWithError(c, http.StatusConflict, "Only completed bookings can be reviewed")
		return
	}

	var existing models.Review
	if err := bc.DB.Where("booking_id = ?", booking.ID).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Booking already has a review")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	review := models.Review{
		BusinessID: businessID,
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := bc.DB.Create(&review).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create review")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, review, "Review created successfully")
}
