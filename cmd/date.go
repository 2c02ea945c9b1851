package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

type ParsedDate struct {
	Date time.Time

	// Exactly one of these is set, naming the granularity that was parsed.
	Year     bool
	Month    bool
	Day      bool
	Relative bool
}

var relativeDatePattern = regexp.MustCompile(`^(\d+)([dwmy])$`)

// parseCutoffFromArgs turns an optional as-of argument into the instant before
// which snapshots are kept. No argument means no cutoff.
func parseCutoffFromArgs(args []string) (cutoff time.Time, err error) {
	switch len(args) {
	case 0:
		return

	case 1:
		_, cutoff, err = getImplicitDateRange(args[0])

	default:
		err = fmt.Errorf("Expected at most one date argument")
	}
	return
}

// getImplicitDateRange returns the period covered by a datestring. A
// relative datestring covers the single instant it names.
func getImplicitDateRange(ds string) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds)
	if err != nil {
		return
	}

	start = date.Date
	switch {
	case date.Year:
		end = start.AddDate(1, 0, 0)

	case date.Month:
		end = start.AddDate(0, 1, 0)

	case date.Day:
		end = start.AddDate(0, 0, 1)

	case date.Relative:
		end = start

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}

	return
}

func parseSingleDatestring(ds string) (date ParsedDate, err error) {
	if m := relativeDatePattern.FindStringSubmatch(ds); m != nil {
		var amount int
		amount, err = strconv.Atoi(m[1])
		if err != nil {
			err = fmt.Errorf("Parsing datestring as relative: %w", err)
			return
		}
		now := time.Now()
		switch m[2] {
		case "d":
			date.Date = now.AddDate(0, 0, -amount)
		case "w":
			date.Date = now.AddDate(0, 0, -amount*7)
		case "m":
			date.Date = now.AddDate(0, -amount, 0)
		case "y":
			date.Date = now.AddDate(-amount, 0, 0)
		}
		date.Relative = true
		return
	}

	matched, err := regexp.Match(`^\d{4}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as year: %w", err)
		return
	}
	if matched {
		date.Date, err = time.Parse("2006", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as year: %w", err)
			return
		}
		date.Year = true
		return
	}

	matched, err = regexp.Match(`^\d{4}-\d{2}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as month: %w", err)
		return
	}
	if matched {
		date.Date, err = time.Parse("2006-01", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as month: %w", err)
			return
		}
		date.Month = true
		return
	}

	matched, err = regexp.Match(`^\d{4}-\d{2}-\d{2}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as day: %w", err)
		return
	}
	if matched {
		date.Date, err = time.Parse("2006-01-02", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as day: %w", err)
			return
		}
		date.Day = true
		return
	}

	err = fmt.Errorf("Invalid format: %q", ds)
	return
}
