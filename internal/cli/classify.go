package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/expiry"
	"github.com/spf13/cobra"
)

type classifyRow struct {
	Date string `json:"date"`
	expiry.Result
	Error string `json:"error,omitempty"`
}

var classifyCmd = LeafCommand{
	Use:   "classify DATE...",
	Short: "Show the expiry status of one or more YYYY-MM-DD dates",
	Args:  cobra.MinimumNArgs(1),
	StrFlags: []StringFlag{
		{Name: "now", Usage: "reference date (YYYY-MM-DD), defaults to the current time"},
		{Name: "tz", Usage: "IANA time zone for local midnight, defaults to the system zone"},
	},
	BoolFlags: []BoolFlag{
		{Name: "json", Usage: "print results as JSON"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		nowFlag, _ := cmd.Flags().GetString("now")
		tzFlag, _ := cmd.Flags().GetString("tz")
		asJSON, _ := cmd.Flags().GetBool("json")
		return runClassify(cmd, args, nowFlag, tzFlag, asJSON, time.Now)
	},
}.Build()

func referenceTime(nowFlag, tzFlag string, clock func() time.Time) (time.Time, error) {
	loc := time.Local
	if tzFlag != "" {
		l, err := time.LoadLocation(tzFlag)
		if err != nil {
			return time.Time{}, fmt.Errorf("--tz: %w", err)
		}
		loc = l
	}
	if nowFlag == "" {
		return clock().In(loc), nil
	}
	t, err := expiry.Parse(nowFlag, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: %w", err)
	}
	return t, nil
}

func runClassify(cmd *cobra.Command, dates []string, nowFlag, tzFlag string, asJSON bool, clock func() time.Time) error {
	now, err := referenceTime(nowFlag, tzFlag, clock)
	if err != nil {
		return err
	}

	rows := make([]classifyRow, 0, len(dates))
	failed := 0
	for _, d := range dates {
		res, err := expiry.Classify(d, now)
		row := classifyRow{Date: d, Result: res}
		if err != nil {
			row.Error = err.Error()
			failed++
		}
		rows = append(rows, row)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return err
		}
	} else {
		for _, r := range rows {
			switch {
			case r.Error != "":
				_, _ = fmt.Fprintf(out, "%-12s %s\n", r.Date, Error(r.Error))
			case r.Status == expiry.StatusExpired:
				_, _ = fmt.Fprintf(out, "%-12s %s\n", r.Date, Badge(r.Status))
			case r.Status == expiry.StatusNone:
				_, _ = fmt.Fprintf(out, "%-12s %s\n", "(none)", Badge(r.Status))
			default:
				_, _ = fmt.Fprintf(out, "%-12s %s %s\n", r.Date, Badge(r.Status), Silent(fmt.Sprintf("%d days remaining", r.DaysRemaining)))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d dates could not be classified", failed, len(dates))
	}
	return nil
}
