package services

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/loguncov/telegram-salon-mvp/models"
	"github.com/loguncov/telegram-salon-mvp/repository"
	"github.com/loguncov/telegram-salon-mvp/utils"
)

// TelegramNotifier delivers a plain-text message to a Telegram chat. The bot
// front-end implements it; reminders stay decoupled from the bot package.
type TelegramNotifier interface {
	Notify(chatID int64, text string) error
}

// ReminderService pings masters every morning about the day's confirmed
// appointments. Masters with a Telegram id get a bot message, masters with
// only a phone number get an SMS.
type ReminderService struct {
	masters  *repository.MasterRepository
	appts    *repository.AppointmentRepository
	notifier TelegramNotifier

	twilio     *twilio.RestClient
	twilioFrom string
}

func NewReminderService(
	masters *repository.MasterRepository,
	appts *repository.AppointmentRepository,
	notifier TelegramNotifier,
	twilioSID, twilioToken, twilioFrom string,
) *ReminderService {
	s := &ReminderService{
		masters:    masters,
		appts:      appts,
		notifier:   notifier,
		twilioFrom: twilioFrom,
	}
	if twilioSID != "" && twilioToken != "" {
		s.twilio = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: twilioSID,
			Password: twilioToken,
		})
	}
	return s
}

// StartScheduler runs SendDailyReminders every day at 9 AM.
func (s *ReminderService) StartScheduler() {
	c := cron.New()
	c.AddFunc("0 9 * * *", s.SendDailyReminders)
	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	confirmed, err := s.appts.ListByStatus(models.StatusConfirmed)
	if err != nil {
		log.Printf("Failed to fetch confirmed appointments: %v", err)
		return
	}

	today := time.Now()
	for _, appt := range confirmed {
		when, _, err := utils.ParseDateTime(appt.Datetime)
		if err != nil || !utils.SameDate(when, today) {
			continue
		}
		s.remindMaster(appt, when)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) remindMaster(appt models.Appointment, when time.Time) {
	master, err := s.masters.GetByID(appt.MasterID)
	if err != nil || master == nil {
		return
	}

	message := fmt.Sprintf("Напоминание: сегодня в %s у вас запись клиента.", when.Format("15:04"))

	if s.notifier != nil && master.TelegramID != nil {
		if chatID, err := strconv.ParseInt(*master.TelegramID, 10, 64); err == nil {
			if err := s.notifier.Notify(chatID, message); err != nil {
				log.Printf("Failed to notify master %s via Telegram: %v", master.ID, err)
			}
			return
		}
	}

	if s.twilio != nil && master.Phone != nil && utils.ValidatePhone(*master.Phone) {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(*master.Phone)
		params.SetFrom(s.twilioFrom)
		params.SetBody(message)
		if _, err := s.twilio.Api.CreateMessage(params); err != nil {
			log.Printf("Failed to send SMS to master %s: %v", master.ID, err)
		}
	}
}
