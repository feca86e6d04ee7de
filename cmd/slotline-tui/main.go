package main

import (
	"fmt"
	"os"

	"slotline/config"
	"slotline/models"
	"slotline/tui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const longHelp = `slotline-tui opens one timeline day with participant busy slots and candidate slots.
Flags override config.yaml and the environment (TUI_SCENARIO, TUI_DATE, DEFAULT_*, HOUR_STEP).
The window, duration and hour step in a scenario file override those defaults.`

// launch is swapped out in tests.
var launch = tui.Launch

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "slotline-tui",
		Short:         "Pick meeting slots on a terminal timeline",
		Long:          longHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadConfig()
			scenario, err := scenarioFromConfig(config.AppConfig)
			if err != nil {
				return err
			}
			// the terminal belongs to the UI, so the model logs nowhere
			m, err := tui.NewModel(scenario, nil)
			if err != nil {
				return err
			}
			return launch(m)
		},
	}

	flags := cmd.Flags()
	flags.String("scenario", "", "yaml scenario with window, duration, participants and candidates")
	flags.String("date", "", "day to open (YYYY-MM-DD), defaults to the scenario date or today")
	flags.Int("min-hour", 0, "first hour shown when the scenario has no window")
	flags.Int("max-hour", 0, "last hour shown when the scenario has no window")
	flags.Int("duration", 0, "slot length in minutes when the scenario has none")
	flags.Int("hour-step", 0, "hours between header ticks when the scenario has none")

	for key, flag := range map[string]string{
		"TUI_SCENARIO":     "scenario",
		"TUI_DATE":         "date",
		"DEFAULT_MIN_HOUR": "min-hour",
		"DEFAULT_MAX_HOUR": "max-hour",
		"DEFAULT_DURATION": "duration",
		"HOUR_STEP":        "hour-step",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
	return cmd
}

// scenarioFromConfig loads the scenario named by cfg. The configured date
// wins over the one in the file.
func scenarioFromConfig(cfg config.Config) (tui.Scenario, error) {
	defaults := tui.Scenario{
		Date: cfg.TUIDate,
		Window: models.HourWindow{
			MinHour: cfg.DefaultMinHour,
			MaxHour: cfg.DefaultMaxHour,
		},
		Duration: cfg.DefaultDuration,
		HourStep: cfg.HourStep,
	}
	scenario, err := tui.LoadScenario(cfg.TUIScenario, defaults)
	if err != nil {
		return tui.Scenario{}, err
	}
	if cfg.TUIDate != "" && scenario.Date != cfg.TUIDate {
		return scenario.OnDate(cfg.TUIDate)
	}
	return scenario, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
