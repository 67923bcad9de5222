package models

import (
	"time"

	"github.com/Sakif-Hossain/cleanbooker/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business is the tenant root. Every customer, service, booking and employee
// row carries its ID, and every query is scoped by it.
type Business struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessName string    `gorm:"not null" json:"businessName"`
	OwnerName    string    `gorm:"not null" json:"ownerName"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	Phone        string    `json:"phone"`

	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `gorm:"default:'US'" json:"country"`

	ServiceArea   StringList `gorm:"type:json" json:"serviceArea"`
	LogoURL       string     `json:"logoUrl"`
	Website       string     `json:"website"`
	Description   string     `json:"description"`
	BusinessHours JSONB      `gorm:"type:json" json:"businessHours"`

	IsActive   bool `gorm:"default:true" json:"isActive"`
	IsVerified bool `gorm:"default:false" json:"isVerified"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`

	Customers []Customer `gorm:"foreignKey:BusinessID" json:"-"`
	Services  []Service  `gorm:"foreignKey:BusinessID" json:"-"`
	Bookings  []Booking  `gorm:"foreignKey:BusinessID" json:"-"`
	Employees []Employee `gorm:"foreignKey:BusinessID" json:"-"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash the credential before creating
func (b *Business) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(b.Password)
	if err != nil {
		return err
	}
	b.Password = hashed
	return
}
