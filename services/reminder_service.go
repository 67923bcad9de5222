// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Sakif-Hossain/cleanbooker/models"
	"github.com/Sakif-Hossain/cleanbooker/utils"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends day-before booking reminders to customers.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	cron   *cron.Cron
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the daily reminder pass at 9 AM.
func (s *ReminderService) StartScheduler() {
	s.cron = cron.New()

	s.cron.AddFunc("0 9 * * *", func() {
		s.SendUpcomingBookingReminders()
	})

	s.cron.Start()
	log.Println("Booking reminder scheduler started")
}

// Stop halts the scheduler
func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SendUpcomingBookingReminders notifies customers with a booking scheduled
// for tomorrow that is still pending or confirmed.
func (s *ReminderService) SendUpcomingBookingReminders() {
	log.Println("Starting booking reminder processing...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := utils.BeginningOfDay(tomorrow)
	dayEnd := utils.EndOfDay(tomorrow)

	var bookings []models.Booking
	if err := s.db.Preload("Customer").Preload("Service").
		Where("scheduled_date BETWEEN ? AND ? AND status IN ?",
			dayStart, dayEnd,
			[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Find(&bookings).Error; err != nil {
		log.Printf("Failed to fetch upcoming bookings: %v", err)
		return
	}

	for i := range bookings {
		s.remind(&bookings[i])
	}

	log.Printf("Booking reminder processing completed: %d bookings", len(bookings))
}

func (s *ReminderService) remind(booking *models.Booking) {
	customer := booking.Customer

	// Reminders go out over SMS; customers who prefer email are skipped
	// until an email sender exists.
	if customer.PreferredContactMethod == "EMAIL" {
		s.logReminder(booking, "", "none", "skipped", "customer prefers email")
		return
	}

	message := fmt.Sprintf(
		"Hi %s, this is a reminder of your %s cleaning tomorrow at %s. Reply to reschedule.",
		customer.FirstName, booking.Service.Name, booking.ScheduledTime)

	channel := "sms"
	to := customer.Phone
	if strings.HasPrefix(customer.Phone, "+") && os.Getenv("TWILIO_WHATSAPP_NUMBER") != "" {
		to = "whatsapp:" + customer.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	status := "sent"
	errorMsg := ""

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
	}

	s.logReminder(booking, message, channel, status, errorMsg)
}

func (s *ReminderService) logReminder(booking *models.Booking, message, channel, status, errorMsg string) {
	entry := models.ReminderLog{
		BusinessID:   booking.BusinessID,
		BookingID:    booking.ID,
		CustomerID:   booking.CustomerID,
		Message:      message,
		Channel:      channel,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log reminder for booking %s: %v", booking.ID, err)
	}
}
