package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceCategory string

const (
	CategoryRegular          ServiceCategory = "REGULAR"
	CategoryDeep             ServiceCategory = "DEEP"
	CategoryMoveIn           ServiceCategory = "MOVE_IN"
	CategoryMoveOut          ServiceCategory = "MOVE_OUT"
	CategoryCommercial       ServiceCategory = "COMMERCIAL"
	CategoryPostConstruction ServiceCategory = "POST_CONSTRUCTION"
)

// ValidCategory reports whether c is one of the known service categories.
func ValidCategory(c ServiceCategory) bool {
	switch c {
	case CategoryRegular, CategoryDeep, CategoryMoveIn,
		CategoryMoveOut, CategoryCommercial, CategoryPostConstruction:
		return true
	}
	return false
}

// Service is a bookable offering owned by exactly one business.
// BasePrice and BaseDuration are always positive.
type Service struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`

	Name         string          `gorm:"not null" json:"name"`
	Description  string          `json:"description"`
	Category     ServiceCategory `gorm:"type:varchar(30);default:'REGULAR'" json:"category"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"basePrice"`
	BaseDuration int             `gorm:"not null" json:"baseDuration"` // minutes
	IsActive     bool            `gorm:"default:true" json:"isActive"`

	AddOns   []AddOn   `gorm:"foreignKey:ServiceID" json:"addOns,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ServiceID" json:"-"`

	gorm.Model `json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// AddOn is an optional extra attached to a service, selectable per booking.
type AddOn struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	Name     string          `gorm:"not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration int             `gorm:"not null" json:"duration"` // minutes

	gorm.Model `json:"-"`
}

func (a *AddOn) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
