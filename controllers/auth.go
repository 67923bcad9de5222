// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/Sakif-Hossain/cleanbooker/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type AddressInput struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required,min=5"`
	Country string `json:"country"`
}

type RegisterInput struct {
	BusinessName string       `json:"businessName" binding:"required,min=2"`
	OwnerName    string       `json:"ownerName" binding:"required,min=2"`
	Email        string       `json:"email" binding:"required,email"`
	Password     string       `json:"password" binding:"required,min=8"`
	Phone        string       `json:"phone" binding:"required,min=10"`
	Address      AddressInput `json:"address" binding:"required"`
	ServiceArea  []string     `json:"serviceArea"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Register creates a new business account and issues a token pair
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Business emails are unique across all tenants
	var existing models.Business
	result := ac.DB.Where("email = ?", input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Business already exists with this email")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	country := input.Address.Country
	if country == "" {
		country = "US"
	}

	business := models.Business{
		BusinessName: input.BusinessName,
		OwnerName:    input.OwnerName,
		Email:        input.Email,
		Password:     input.Password, // Hashed in BeforeCreate hook
		Phone:        input.Phone,
		Street:       input.Address.Street,
		City:         input.Address.City,
		State:        input.Address.State,
		ZipCode:      input.Address.ZipCode,
		Country:      country,
		ServiceArea:  input.ServiceArea,
	}

	if err := ac.DB.Create(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to register business")
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&business)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, gin.H{
		"user": gin.H{
			"id":           business.ID,
			"businessName": business.BusinessName,
			"email":        business.Email,
			"isVerified":   business.IsVerified,
		},
		"token":        accessToken,
		"refreshToken": refreshToken,
	}, "Business registered successfully")
}

// Login verifies credentials and issues a token pair
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var business models.Business
	if err := ac.DB.Where("email = ?", strings.TrimSpace(input.Email)).
		First(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !business.IsActive {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(input.Password, business.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&business)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	now := time.Now()
	ac.DB.Model(&business).Update("last_login", &now)

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":           business.ID,
			"businessName": business.BusinessName,
			"email":        business.Email,
			"isVerified":   business.IsVerified,
		},
		"token":        accessToken,
		"refreshToken": refreshToken,
	}, "Login successful")
}

// Refresh rotates a refresh token: the old token is revoked and the new one
// created in the same transaction, so a crash mid-rotation never loses both.
func (ac *AuthController) Refresh(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Refresh token required")
		return
	}

	if _, err := utils.ParseToken(input.RefreshToken, "JWT_REFRESH_SECRET"); err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	var record models.RefreshToken
	if err := ac.DB.Preload("Business").
		Where("token = ?", input.RefreshToken).First(&record).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	if !record.Valid() || !record.Business.IsActive {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	accessToken, err := utils.GenerateAccessToken(record.BusinessID.String(), record.Business.Email)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}
	newRefreshToken, expiresAt, err := utils.GenerateRefreshToken(record.BusinessID.String(), record.Business.Email)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RefreshToken{}).
			Where("id = ?", record.ID).
			Update("is_revoked", true).Error; err != nil {
			return err
		}
		return tx.Create(&models.RefreshToken{
			Token:      newRefreshToken,
			BusinessID: record.BusinessID,
			ExpiresAt:  expiresAt,
		}).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to rotate refresh token")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"token":        accessToken,
		"refreshToken": newRefreshToken,
	}, "Token refreshed successfully")
}

// Logout revokes the presented refresh token
func (ac *AuthController) Logout(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err == nil && input.RefreshToken != "" {
		ac.DB.Model(&models.RefreshToken{}).
			Where("token = ?", input.RefreshToken).
			Update("is_revoked", true)
	}

	utils.RespondWithData(c, http.StatusOK, nil, "Logged out successfully")
}

// Profile returns the authenticated business
func (ac *AuthController) Profile(c *gin.Context) {
	businessID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var business models.Business
	if err := ac.DB.First(&business, "id = ?", businessID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return
	}

	utils.RespondWithData(c, http.StatusOK, business, "Profile retrieved successfully")
}

func (ac *AuthController) issueTokens(business *models.Business) (string, string, error) {
	accessToken, err := utils.GenerateAccessToken(business.ID.String(), business.Email)
	if err != nil {
		return "", "", err
	}

	refreshToken, expiresAt, err := utils.GenerateRefreshToken(business.ID.String(), business.Email)
	if err != nil {
		return "", "", err
	}

	record := models.RefreshToken{
		Token:      refreshToken,
		BusinessID: business.ID,
		ExpiresAt:  expiresAt,
	}
	if err := ac.DB.Create(&record).Error; err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
