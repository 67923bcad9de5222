package middleware

import (
	"net/http"
	"strings"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/Sakif-Hossain/cleanbooker/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthRequired verifies the bearer token, resolves the owning business and
// rejects deactivated accounts. The resolved business id is what every
// downstream query is scoped by.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, "Access token required")
			return
		}

		tokenString := authHeader
		if len(tokenString) > 7 && strings.EqualFold(tokenString[0:6], "BEARER") {
			tokenString = tokenString[7:]
		}

		claims, err := utils.ParseToken(tokenString, "JWT_SECRET")
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		businessID, ok := claims["sub"].(string)
		if !ok || businessID == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		var business models.Business
		if err := db.Select("id", "business_name", "email", "is_active").
			First(&business, "id = ?", businessID).Error; err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid or inactive account")
			return
		}
		if !business.IsActive {
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid or inactive account")
			return
		}

		c.Set("businessId", business.ID)
		c.Set("businessEmail", business.Email)

		c.Next()
	}
}
