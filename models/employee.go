package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `gorm:"type:varchar(30);default:'CLEANER'" json:"role"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	Bookings []Booking `gorm:"foreignKey:EmployeeID" json:"-"`

	gorm.Model `json:"-"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
