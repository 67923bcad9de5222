// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/Sakif-Hossain/cleanbooker/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceController struct {
	DB *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db}
}

// AddOnInput defines an add-on attached to a service
type AddOnInput struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Duration int             `json:"duration" binding:"required,gt=0"`
}

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name         string                 `json:"name" binding:"required"`
	Description  string                 `json:"description"`
	Category     models.ServiceCategory `json:"category"`
	BasePrice    decimal.Decimal        `json:"basePrice" binding:"required"`
	BaseDuration int                    `json:"baseDuration" binding:"required,gt=0"`
	AddOns       []AddOnInput           `json:"addOns"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name         *string                 `json:"name"`
	Description  *string                 `json:"description"`
	Category     *models.ServiceCategory `json:"category"`
	BasePrice    *decimal.Decimal        `json:"basePrice"`
	BaseDuration *int                    `json:"baseDuration" binding:"omitempty,gt=0"`
	IsActive     *bool                   `json:"isActive"`
	// When present, replaces the full add-on set
	AddOns *[]AddOnInput `json:"addOns"`
}

// ServiceQuery is the filter criteria accepted by the service list endpoint
type ServiceQuery struct {
	ListQuery
	Category string `form:"category"`
	IsActive *bool  `form:"isActive"`
}

var serviceSortColumns = map[string]string{
	"createdAt":    "created_at",
	"name":         "name",
	"basePrice":    "base_price",
	"baseDuration": "base_duration",
	"category":     "category",
}

func validateAddOns(addOns []AddOnInput) error {
	for _, a := range addOns {
		if !a.Price.IsPositive() {
			return errors.New("add-on price must be positive")
		}
	}
	return nil
}

// CreateService creates a new service with its add-ons
func (sc *ServiceController) CreateService(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !input.BasePrice.IsPositive() {
		utils.RespondWithError(c, http.StatusBadRequest, "Base price must be positive")
		return
	}
	if input.Category != "" && !models.ValidCategory(input.Category) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service category")
		return
	}
	if err := validateAddOns(input.AddOns); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	service := models.Service{
		BusinessID:   businessID,
		Name:         input.Name,
		Description:  input.Description,
		BasePrice:    input.BasePrice,
		BaseDuration: input.BaseDuration,
		IsActive:     true,
	}
	if input.Category != "" {
		service.Category = input.Category
	}
	for _, a := range input.AddOns {
		service.AddOns = append(service.AddOns, models.AddOn{
			Name:     a.Name,
			Price:    a.Price,
			Duration: a.Duration,
		})
	}

	if err := sc.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, service, "Service created successfully")
}

// GetServices retrieves services for the business with filtering and pagination
func (sc *ServiceController) GetServices(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var query ServiceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid query: "+err.Error())
		return
	}
	query.Normalize(serviceSortColumns)

	base := sc.DB.Model(&models.Service{}).Where("business_id = ?", businessID)

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if query.Category != "" {
		base = base.Where("category = ?", query.Category)
	}
	if query.IsActive != nil {
		base = base.Where("is_active = ?", *query.IsActive)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	var services []models.Service
	if err := query.Apply(base).
		Preload("AddOns", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"services": services,
		"meta":     newPageMeta(total, query.ListQuery),
	}, "Services retrieved successfully")
}

// GetService retrieves a specific service with its add-ons and booking count
func (sc *ServiceController) GetService(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	err := sc.DB.
		Preload("AddOns", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("business_id = ? AND id = ?", businessID, serviceID).
		First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var bookingCount int64
	sc.DB.Model(&models.Booking{}).Where("service_id = ?", service.ID).Count(&bookingCount)

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"service":      service,
		"bookingCount": bookingCount,
	}, "Service retrieved successfully")
}

// UpdateService updates a service; a provided add-on list replaces the
// current set. Existing bookings keep their price-at-time snapshots.
func (sc *ServiceController) UpdateService(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.BasePrice != nil && !input.BasePrice.IsPositive() {
		utils.RespondWithError(c, http.StatusBadRequest, "Base price must be positive")
		return
	}
	if input.Category != nil && !models.ValidCategory(*input.Category) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service category")
		return
	}
	if input.AddOns != nil {
		if err := validateAddOns(*input.AddOns); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	var service models.Service
	if err := sc.DB.Where("business_id = ? AND id = ?", businessID, serviceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.BasePrice != nil {
		service.BasePrice = *input.BasePrice
	}
	if input.BaseDuration != nil {
		service.BaseDuration = *input.BaseDuration
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		if input.AddOns != nil {
			if err := tx.Where("service_id = ?", service.ID).
				Delete(&models.AddOn{}).Error; err != nil {
				return err
			}
			for _, a := range *input.AddOns {
				addOn := models.AddOn{
					ServiceID: service.ID,
					Name:      a.Name,
					Price:     a.Price,
					Duration:  a.Duration,
				}
				if err := tx.Create(&addOn).Error; err != nil {
					return err
				}
			}
		}
		return tx.Save(&service).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	if err := sc.DB.Preload("AddOns", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).First(&service, "id = ?", service.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondWithData(c, http.StatusOK, service, "Service updated successfully")
}

// DeleteService hard-deletes a service. Services with any associated booking
// cannot be deleted; deactivate them instead.
func (sc *ServiceController) DeleteService(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := sc.DB.Where("business_id = ? AND id = ?", businessID, serviceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var bookingCount int64
	if err := sc.DB.Model(&models.Booking{}).
		Where("service_id = ?", service.ID).Count(&bookingCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if bookingCount > 0 {
		utils.RespondWithError(c, http.StatusConflict,
			"Cannot delete service with existing bookings. Consider deactivating instead.")
		return
	}

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", service.ID).
			Delete(&models.AddOn{}).Error; err != nil {
			return err
		}
		return tx.Delete(&service).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	utils.RespondWithData(c, http.StatusOK, nil, "Service deleted successfully")
}

// ToggleServiceStatus flips the active flag
func (sc *ServiceController) ToggleServiceStatus(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := sc.DB.Where("business_id = ? AND id = ?", businessID, serviceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	service.IsActive = !service.IsActive
	if err := sc.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service status")
		return
	}

	message := "Service deactivated successfully"
	if service.IsActive {
		message = "Service activated successfully"
	}
	utils.RespondWithData(c, http.StatusOK, service, message)
}
