package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
	BookingStatusNoShow     BookingStatus = "NO_SHOW"
)

type RecurrenceType string

const (
	RecurrenceNone     RecurrenceType = "NONE"
	RecurrenceWeekly   RecurrenceType = "WEEKLY"
	RecurrenceBiweekly RecurrenceType = "BIWEEKLY"
	RecurrenceMonthly  RecurrenceType = "MONTHLY"
)

// Booking is a scheduled instance of a service for a customer. TotalPrice
// and EstimatedDuration are derived from the service's current base values
// plus the selected add-ons, and are recomputed whenever the service or the
// add-on selection changes.
type Booking struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID  `gorm:"type:uuid;index;not null" json:"businessId"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	ServiceID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"serviceId"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index" json:"employeeId,omitempty"`

	ScheduledDate time.Time `gorm:"not null;index" json:"scheduledDate"`
	ScheduledTime string    `gorm:"type:varchar(10)" json:"scheduledTime"` // "14:30"

	Status BookingStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`

	TotalPrice        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	EstimatedDuration int             `gorm:"not null" json:"estimatedDuration"` // minutes
	ActualDuration    *int            `json:"actualDuration,omitempty"`

	PaymentMethod string `gorm:"type:varchar(20)" json:"paymentMethod"`
	PaymentStatus string `gorm:"type:varchar(20);default:'PENDING'" json:"paymentStatus"`

	RecurrenceType    RecurrenceType `gorm:"type:varchar(20);default:'NONE'" json:"recurrenceType"`
	RecurrenceEndDate *time.Time     `json:"recurrenceEndDate,omitempty"`
	ParentBookingID   *uuid.UUID     `gorm:"type:uuid;index" json:"parentBookingId,omitempty"`

	BeforePhotos StringList `gorm:"type:json" json:"beforePhotos"`
	AfterPhotos  StringList `gorm:"type:json" json:"afterPhotos"`
	Notes        string     `gorm:"type:text" json:"notes"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Customer Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Service  Service        `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Employee *Employee      `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	AddOns   []BookingAddOn `gorm:"foreignKey:BookingID" json:"addOns,omitempty"`
	Review   *Review        `gorm:"foreignKey:BookingID" json:"review,omitempty"`

	gorm.Model `json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// BookingAddOn captures a selected add-on by value at booking time.
// PriceAtTime decouples historical bookings from later add-on price changes.
type BookingAddOn struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"bookingId"`
	AddOnID   uuid.UUID `gorm:"type:uuid;index;not null" json:"addOnId"`

	Name        string          `gorm:"not null" json:"name"`
	PriceAtTime decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"priceAtTime"`
	Duration    int             `gorm:"not null" json:"duration"` // minutes

	gorm.Model `json:"-"`
}

func (ba *BookingAddOn) BeforeCreate(tx *gorm.DB) (err error) {
	if ba.ID == uuid.Nil {
		ba.ID = uuid.New()
	}
	return
}
