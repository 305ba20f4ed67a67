package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bbbang105/flowershop-admin-sub001/config"
	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

// ReminderService runs the two cron-triggered reminder sweeps. It holds no
// timer of its own; cadence comes entirely from the external trigger hitting
// the /reminders endpoints.
type ReminderService struct {
	dispatcher *PushDispatcher
}

func NewReminderService(dispatcher *PushDispatcher) *ReminderService {
	return &ReminderService{dispatcher: dispatcher}
}

type HourlySweepResult struct {
	Reminders int `json:"reminders"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}

type DailySweepResult struct {
	TodayReservations int `json:"today_reservations"`
	AdvanceReminders  int `json:"advance_reminders"`
	Sent              int `json:"sent"`
	Failed            int `json:"failed"`
}

// RunHourlySweep dispatches every reservation whose reminder_at fell in the
// last hour, then clears the trigger. Clearing happens per reservation right
// after its dispatch attempt and does not depend on per-subscription delivery
// succeeding: at most one delivery attempt per trigger, never a stuck flag.
// The cleared column is also what makes a duplicate cron tick find nothing.
func (s *ReminderService) RunHourlySweep(now time.Time) (HourlySweepResult, error) {
	now = now.In(config.Location)
	from, to := hourlyWindow(now)

	var reservations []models.Reservation
	err := database.DB.
		Where("reminder_at > ? AND reminder_at <= ?", from, to).
		Where("status NOT IN ?", []string{string(models.ReservationStatusCancelled), string(models.ReservationStatusCompleted)}).
		Find(&reservations).Error
	if err != nil {
		if opAlerts.Allow("hourly-sweep-query") {
			log.Printf("❌ Hourly sweep query failed: %v", err)
		}
		return HourlySweepResult{}, err
	}

	result := HourlySweepResult{Reminders: len(reservations)}
	for _, resv := range reservations {
		payload := BuildReminderPayload(resv, now)
		dispatch, err := s.dispatcher.SendToAllActive(payload)
		if err != nil {
			return result, err
		}
		result.Sent += dispatch.Sent
		result.Failed += dispatch.Failed

		if err := database.DB.Model(&models.Reservation{}).
			Where("id = ?", resv.ID).
			Update("reminder_at", nil).Error; err != nil {
			if opAlerts.Allow("hourly-sweep-clear") {
				log.Printf("❌ Failed to clear reminder_at for reservation %d: %v", resv.ID, err)
			}
			return result, err
		}
	}

	if result.Reminders > 0 {
		log.Printf("🔔 Hourly sweep: %d reminders, %d sent, %d failed", result.Reminders, result.Sent, result.Failed)
	}
	return result, nil
}

// RunDailySweep is the 08:00 tick. Two independent passes: a digest of
// today's reservations to every subscriber, then one notification per
// reservation whose advance reminder_date is today (cleared after the
// attempt, same rule as the hourly sweep).
func (s *ReminderService) RunDailySweep(now time.Time) (DailySweepResult, error) {
	now = now.In(config.Location)
	today := now.Format("2006-01-02")

	var result DailySweepResult

	// Pass (a): today's reservations digest
	var todays []models.Reservation
	err := database.DB.
		Where("date = ? AND status <> ?", today, models.ReservationStatusCancelled).
		Order("time ASC NULLS LAST").
		Find(&todays).Error
	if err != nil {
		if opAlerts.Allow("daily-sweep-query") {
			log.Printf("❌ Daily sweep query failed: %v", err)
		}
		return result, err
	}
	result.TodayReservations = len(todays)

	if len(todays) > 0 {
		dispatch, err := s.dispatcher.SendToAllActive(BuildDailyDigestPayload(todays))
		if err != nil {
			return result, err
		}
		result.Sent += dispatch.Sent
		result.Failed += dispatch.Failed
	}

	// Pass (b): advance reminders whose reminder_date is today
	var advance []models.Reservation
	err = database.DB.
		Where("reminder_date = ?", today).
		Where("status NOT IN ?", []string{string(models.ReservationStatusCancelled), string(models.ReservationStatusCompleted)}).
		Find(&advance).Error
	if err != nil {
		if opAlerts.Allow("daily-sweep-query") {
			log.Printf("❌ Daily advance reminder query failed: %v", err)
		}
		return result, err
	}
	result.AdvanceReminders = len(advance)

	for _, resv := range advance {
		dispatch, err := s.dispatcher.SendToAllActive(BuildReminderPayload(resv, now))
		if err != nil {
			return result, err
		}
		result.Sent += dispatch.Sent
		result.Failed += dispatch.Failed

		if err := database.DB.Model(&models.Reservation{}).
			Where("id = ?", resv.ID).
			Update("reminder_date", nil).Error; err != nil {
			if opAlerts.Allow("daily-sweep-clear") {
				log.Printf("❌ Failed to clear reminder_date for reservation %d: %v", resv.ID, err)
			}
			return result, err
		}
	}

	log.Printf("🔔 Daily sweep: %d today, %d advance, %d sent, %d failed",
		result.TodayReservations, result.AdvanceReminders, result.Sent, result.Failed)
	return result, nil
}

// hourlyWindow returns the (from, to] bounds the hourly sweep scans. One
// hour of lookback matches the cron cadence; anything older was either
// already cleared or deliberately missed.
func hourlyWindow(now time.Time) (from, to time.Time) {
	return now.Add(-time.Hour), now
}

// RelativeDayLabel describes target relative to now on the local calendar:
// "today", "tomorrow", or "N days later". Past dates fall back to the date
// itself; a stale reminder should still read sensibly.
func RelativeDayLabel(now, target time.Time) string {
	// Compare calendar components only. Date columns come back as UTC
	// midnights while now carries the shop timezone, so converting either
	// one would shift the day.
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDate := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)

	days := int(targetDate.Sub(nowDate).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days > 1:
		return fmt.Sprintf("%d days later", days)
	default:
		return targetDate.Format("2006-01-02")
	}
}

// BuildReminderBody builds the notification text for a single reservation.
func BuildReminderBody(resv models.Reservation, now time.Time) string {
	var b strings.Builder
	b.WriteString(RelativeDayLabel(now, resv.Date))
	if resv.Time != nil && *resv.Time != "" {
		b.WriteString(" " + *resv.Time)
	}
	b.WriteString(" — " + resv.CustomerName)
	if resv.EstimatedAmount > 0 {
		b.WriteString(fmt.Sprintf(" (%s KRW)", formatAmount(resv.EstimatedAmount)))
	}
	return b.String()
}

// BuildReminderPayload wraps a single-reservation reminder as the JSON the
// service worker displays.
func BuildReminderPayload(resv models.Reservation, now time.Time) string {
	return pushPayload("📅 Reservation reminder", BuildReminderBody(resv, now))
}

// BuildDailyDigestPayload summarizes today's reservations: up to three inline
// entries plus an overflow count.
func BuildDailyDigestPayload(reservations []models.Reservation) string {
	lines := make([]string, 0, 3)
	for i, resv := range reservations {
		if i == 3 {
			break
		}
		line := resv.CustomerName
		if resv.Time != nil && *resv.Time != "" {
			line = *resv.Time + " " + line
		}
		lines = append(lines, line)
	}

	body := strings.Join(lines, ", ")
	if extra := len(reservations) - 3; extra > 0 {
		body += fmt.Sprintf(" and %d more", extra)
	}

	title := fmt.Sprintf("🌸 %d reservations today", len(reservations))
	return pushPayload(title, body)
}

func pushPayload(title, body string) string {
	data, _ := json.Marshal(map[string]string{
		"title": title,
		"body":  body,
	})
	return string(data)
}

// formatAmount renders 1234567 as "1,234,567".
func formatAmount(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
