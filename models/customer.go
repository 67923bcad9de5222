package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerStatus string

const (
	CustomerStatusPotential CustomerStatus = "POTENTIAL"
	CustomerStatusActive    CustomerStatus = "ACTIVE"
	CustomerStatusInactive  CustomerStatus = "INACTIVE"
)

type Customer struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	// Unique per business, enforced in the controller so a duplicate maps
	// to a 409 rather than a raw driver error
	Email string `gorm:"index;not null" json:"email"`
	Phone string `gorm:"not null" json:"phone"`

	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`

	PropertyType           string `gorm:"type:varchar(20);default:'HOUSE'" json:"propertyType"`
	PropertySize           *int   `json:"propertySize,omitempty"`
	SpecialInstructions    string `json:"specialInstructions"`
	PreferredContactMethod string `gorm:"type:varchar(10);default:'EMAIL'" json:"preferredContactMethod"`

	Status CustomerStatus `gorm:"type:varchar(20);default:'POTENTIAL'" json:"status"`

	Bookings []Booking      `gorm:"foreignKey:CustomerID" json:"bookings,omitempty"`
	Reviews  []Review       `gorm:"foreignKey:CustomerID" json:"reviews,omitempty"`
	Notes    []CustomerNote `gorm:"foreignKey:CustomerID" json:"notes,omitempty"`

	gorm.Model `json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// CustomerNote is an internal note a business keeps about a customer
type CustomerNote struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	Content    string    `gorm:"type:text;not null" json:"content"`

	gorm.Model `json:"-"`
}

func (n *CustomerNote) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
