package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog records the outcome of a booking reminder sent to a customer.
type ReminderLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`
	BookingID  uuid.UUID `gorm:"type:uuid;index;not null" json:"bookingId"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	Message      string `gorm:"type:text" json:"message"`
	Channel      string `gorm:"type:varchar(20)" json:"channel"` // sms, whatsapp
	Status       string `gorm:"type:varchar(20)" json:"status"`  // sent, failed, skipped
	ErrorMessage string `gorm:"type:text" json:"errorMessage,omitempty"`

	SentAt time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
