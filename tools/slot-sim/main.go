package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/salonkit/booking/availability"
	"github.com/salonkit/booking/cancellation"
)

// simConfig supplies defaults a scenario file may omit.
type simConfig struct {
	Timezone    string `env:"SALON_TZ" envDefault:"Europe/London"`
	StepMinutes int    `env:"SLOT_STEP_MINUTES" envDefault:"15"`
	HorizonDays int    `env:"SEARCH_HORIZON_DAYS" envDefault:"30"`
	CacheTTL    int    `env:"CACHE_TTL_SECONDS" envDefault:"60"`
}

func main() {
	var (
		scenarioPath = flag.String("scenario", "scenario.yaml", "scenario yaml file")
		mode         = flag.String("mode", "slots", "slots | next | month | cancel")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("service", "slot-sim")

	var cfg simConfig
	if err := env.Parse(&cfg); err != nil {
		fatal(logger, "config parse failed", err)
	}

	sc, err := loadScenario(*scenarioPath)
	if err != nil {
		fatal(logger, "scenario load failed", err)
	}

	switch *mode {
	case "slots":
		req, err := sc.poolRequest(cfg)
		if err != nil {
			fatal(logger, "bad scenario", err)
		}
		slots, err := availability.PoolSlots(req)
		if err != nil {
			fatal(logger, "slot generation failed", err)
		}
		logger.Info("slots generated", "date", req.Date.String(), "count", len(slots))
		printJSON(slots)

	case "next":
		req, err := sc.poolRequest(cfg)
		if err != nil {
			fatal(logger, "bad scenario", err)
		}
		horizon := sc.HorizonDays
		if horizon == 0 {
			horizon = cfg.HorizonDays
		}
		slot, ok, err := availability.NextPoolSlot(req, horizon)
		if err != nil {
			fatal(logger, "search failed", err)
		}
		if !ok {
			logger.Info("no slot within horizon", "from", req.Date.String(), "horizon_days", horizon)
			printJSON(nil)
			return
		}
		printJSON(slot)

	case "month":
		req, err := sc.poolRequest(cfg)
		if err != nil {
			fatal(logger, "bad scenario", err)
		}
		cache := availability.NewLRUDateCache(32, time.Duration(cfg.CacheTTL)*time.Second)
		dates, err := availability.FullyBookedDates(context.Background(), cache, req, req.Date.Year, req.Date.Month)
		if err != nil {
			fatal(logger, "month scan failed", err)
		}
		printJSON(dates)

	case "cancel":
		req, err := sc.poolRequest(cfg)
		if err != nil {
			fatal(logger, "bad scenario", err)
		}
		appt, policy, err := sc.cancellationInput()
		if err != nil {
			fatal(logger, "bad scenario", err)
		}
		outcome := cancellation.Calculate(appt, policy, req.Now, req.Location)
		printJSON(outcome)

	default:
		fatal(logger, "unknown mode", fmt.Errorf("%q", *mode))
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
