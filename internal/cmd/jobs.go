package cmd

import (
	"time"

	"github.com/centavo-zero/backend/internal/config"
	"github.com/centavo-zero/backend/internal/jobs"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/centavo-zero/backend/internal/telegram"
	"github.com/centavo-zero/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// The jobs are run by an external scheduler (cron, systemd timers), the
// backend itself does not keep time.
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Run a scheduled job once and exit",
}

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Create this month's instances of recurring transactions",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if err := models.Connect(cfg.DBPath); err != nil {
			return err
		}

		result, err := jobs.GenerateRecurring(types.MonthOf(time.Now()))
		if err != nil {
			return err
		}

		log.Info().Int("created", result.Created).Int("skipped", result.Skipped).Msg("recurring job finished")
		return nil
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Send the daily digest to all linked Telegram accounts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if err := models.Connect(cfg.DBPath); err != nil {
			return err
		}

		client := telegram.NewClient(cfg.TelegramBotToken)

		result, err := jobs.SendDailyAlerts(cmd.Context(), client, time.Now())
		if err != nil {
			return err
		}

		log.Info().Int("sent", result.Sent).Int("errors", result.Errors).Msg("alerts job finished")
		return nil
	},
}

func init() {
	jobsCmd.AddCommand(recurringCmd, alertsCmd)
	rootCmd.AddCommand(jobsCmd)
}
