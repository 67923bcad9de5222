// services/status.go
package services

import (
	"time"

	"github.com/Sakif-Hossain/cleanbooker/models"
)

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s models.BookingStatus) bool {
	switch s {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusInProgress, models.BookingStatusCompleted,
		models.BookingStatusCancelled, models.BookingStatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether a booking in status s has reached the end of
// its lifecycle.
func IsTerminal(s models.BookingStatus) bool {
	switch s {
	case models.BookingStatusCompleted, models.BookingStatusCancelled,
		models.BookingStatusNoShow:
		return true
	}
	return false
}

// CanDeleteBooking reports whether a booking in status s may be hard-deleted.
// Completed and in-progress bookings must be kept; callers get a conflict
// and are told to cancel or keep the record instead.
func CanDeleteBooking(s models.BookingStatus) bool {
	return s != models.BookingStatusCompleted && s != models.BookingStatusInProgress
}

// CompletionData is the optional companion data accepted when a booking
// transitions to COMPLETED.
type CompletionData struct {
	ActualDuration *int
	BeforePhotos   []string
	AfterPhotos    []string
}

// ApplyStatus sets the new status on the booking. Transitioning to COMPLETED
// is the only transition with side effects: it stamps the completion time
// and records the companion data. All other forward and lateral transitions
// are applied as-is; no transition graph is enforced beyond the delete guard.
func ApplyStatus(b *models.Booking, newStatus models.BookingStatus, data *CompletionData) {
	b.Status = newStatus

	if newStatus != models.BookingStatusCompleted {
		return
	}

	now := time.Now()
	b.CompletedAt = &now
	if data == nil {
		return
	}
	if data.ActualDuration != nil {
		b.ActualDuration = data.ActualDuration
	}
	if len(data.BeforePhotos) > 0 {
		b.BeforePhotos = data.BeforePhotos
	}
	if len(data.AfterPhotos) > 0 {
		b.AfterPhotos = data.AfterPhotos
	}
}
