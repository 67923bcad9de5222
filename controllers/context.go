package controllers

import (
	"net/http"

	"github.com/Sakif-Hossain/cleanbooker/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// businessIDFromContext returns the authenticated business id set by the
// auth middleware, writing the error response itself on failure.
func businessIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("businessId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Business ID not found in context")
		return uuid.Nil, false
	}

	businessID, ok := value.(uuid.UUID)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid business ID format")
		return uuid.Nil, false
	}
	return businessID, true
}

// uuidParam parses a uuid path parameter, writing the error response itself
// on failure.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
