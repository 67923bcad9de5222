// controllers/analytics.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/Sakif-Hossain/cleanbooker/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// DashboardStats summarizes business performance over a period
type DashboardStats struct {
	TotalBookings     int64           `json:"totalBookings"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalCustomers    int64           `json:"totalCustomers"`
	ActiveServices    int64           `json:"activeServices"`
	CompletedBookings int64           `json:"completedBookings"`
	CancelledBookings int64           `json:"cancelledBookings"`
	AverageRating     float64         `json:"averageRating"`
	TotalReviews      int64           `json:"totalReviews"`
	CompletionRate    string          `json:"completionRate"`
	CancellationRate  string          `json:"cancellationRate"`
}

// GetDashboardStats computes period-scoped counts and revenue for the
// authenticated business. Revenue only counts completed bookings.
func (ac *AnalyticsController) GetDashboardStats(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("period", "30"))
	if err != nil || days < 1 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid period")
		return
	}
	startDate := time.Now().AddDate(0, 0, -days)

	stats := DashboardStats{TotalRevenue: decimal.Zero}

	bookings := ac.DB.Model(&models.Booking{}).
		Where("business_id = ? AND created_at >= ?", businessID, startDate)
	if err := bookings.Count(&stats.TotalBookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	var revenue *string
	ac.DB.Model(&models.Booking{}).
		Where("business_id = ? AND created_at >= ? AND status = ?",
			businessID, startDate, models.BookingStatusCompleted).
		Select("CAST(SUM(total_price) AS TEXT)").Scan(&revenue)
	if revenue != nil {
		if parsed, err := decimal.NewFromString(*revenue); err == nil {
			stats.TotalRevenue = parsed
		}
	}

	ac.DB.Model(&models.Booking{}).
		Where("business_id = ? AND created_at >= ? AND status = ?",
			businessID, startDate, models.BookingStatusCompleted).
		Count(&stats.CompletedBookings)
	ac.DB.Model(&models.Booking{}).
		Where("business_id = ? AND created_at >= ? AND status = ?",
			businessID, startDate, models.BookingStatusCancelled).
		Count(&stats.CancelledBookings)

	ac.DB.Model(&models.Customer{}).
		Where("business_id = ? AND created_at >= ?", businessID, startDate).
		Count(&stats.TotalCustomers)
	ac.DB.Model(&models.Service{}).
		Where("business_id = ? AND is_active = ?", businessID, true).
		Count(&stats.ActiveServices)

	var avgRating *float64
	ac.DB.Model(&models.Review{}).
		Where("business_id = ? AND created_at >= ?", businessID, startDate).
		Select("AVG(rating)").Scan(&avgRating)
	if avgRating != nil {
		stats.AverageRating = *avgRating
	}
	ac.DB.Model(&models.Review{}).
		Where("business_id = ? AND created_at >= ?", businessID, startDate).
		Count(&stats.TotalReviews)

	stats.CompletionRate = ratePercent(stats.CompletedBookings, stats.TotalBookings)
	stats.CancellationRate = ratePercent(stats.CancelledBookings, stats.TotalBookings)

	utils.RespondWithData(c, http.StatusOK, stats, "Dashboard statistics retrieved successfully")
}

func ratePercent(part, total int64) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}
