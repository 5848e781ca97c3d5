// Package jobs implements the periodic maintenance tasks: materializing
// recurring bills and pushing the daily Telegram digest. Scheduling is
// external, each job is a single run.
package jobs

import (
	"fmt"
	"time"

	"github.com/centavo-zero/backend/internal/metrics"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/centavo-zero/backend/internal/types"
	"github.com/rs/zerolog/log"
)

// RecurringResult reports what a recurring run did.
type RecurringResult struct {
	Created int
	Skipped int
}

// GenerateRecurring materializes every recurring bill for the month.
//
// A rule is the tuple (user, description, category, amount, day); only the
// newest template per rule counts, and a rule that already has an entry in
// the month is skipped, so the job can run any number of times.
func GenerateRecurring(month types.Month) (RecurringResult, error) {
	templates, err := models.RecurringTemplates()
	if err != nil {
		metrics.JobRuns.WithLabelValues("recurring", "error").Inc()
		return RecurringResult{}, err
	}

	var result RecurringResult
	seen := make(map[string]bool)

	for _, template := range templates {
		day := template.RecurringDay
		if day < 1 || day > 31 {
			continue
		}

		key := fmt.Sprintf("%s|%s|%s|%s|%d",
			template.UserID, template.Description, template.Category, template.Amount, day)
		if seen[key] {
			continue
		}
		seen[key] = true

		exists, err := models.RecurringExistsInMonth(
			template.UserID, template.Description, template.Category, template.Amount, day, month)
		if err != nil {
			metrics.JobRuns.WithLabelValues("recurring", "error").Inc()
			return result, err
		}

		if exists {
			result.Skipped++
			continue
		}

		entry := models.Transaction{
			UserID:       template.UserID,
			CardID:       template.CardID,
			Description:  template.Description,
			Amount:       template.Amount,
			Type:         template.Type,
			Category:     template.Category,
			DueDate:      dueDateForMonth(month, day),
			Recurring:    true,
			RecurringDay: day,
		}

		err = models.DB.Create(&entry).Error
		if err != nil {
			metrics.JobRuns.WithLabelValues("recurring", "error").Inc()
			return result, err
		}

		metrics.TransactionsCreated.WithLabelValues(string(entry.Type)).Inc()
		result.Created++
	}

	log.Info().
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Stringer("month", month).
		Msg("recurring bills materialized")

	metrics.JobRuns.WithLabelValues("recurring", "success").Inc()
	return result, nil
}

// dueDateForMonth places the recurring day in the month, clamped to the
// month's last day.
func dueDateForMonth(month types.Month, day int) time.Time {
	first := month.FirstDay()
	last := month.NextMonth().AddDate(0, 0, -1).Day()

	return first.AddDate(0, 0, min(day, last)-1)
}
