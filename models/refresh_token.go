package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken is a revocable, time-bound token issued per login/refresh.
// Rotation revokes the old row and inserts the new one in one transaction.
type RefreshToken struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Token      string    `gorm:"size:512;uniqueIndex;not null" json:"token"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`
	ExpiresAt  time.Time `gorm:"not null;index" json:"expiresAt"`
	IsRevoked  bool      `gorm:"default:false;index" json:"isRevoked"`

	Business Business `gorm:"foreignKey:BusinessID" json:"-"`

	gorm.Model `json:"-"`
}

func (rt *RefreshToken) BeforeCreate(tx *gorm.DB) (err error) {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Valid checks if the refresh token is usable (not expired and not revoked)
func (rt *RefreshToken) Valid() bool {
	return !rt.IsExpired() && !rt.IsRevoked
}
