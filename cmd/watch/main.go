// Command watch follows the metrics of one site from the terminal,
// refreshing on the dashboard interval until interrupted. SIGHUP forces a
// refresh.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"oneshot/internal/config"
	"oneshot/internal/dashboard"
	"oneshot/internal/model"
	"oneshot/internal/window"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.StringP("config", "c", "configs/config.yaml", "config file")
	siteID := pflag.StringP("site", "s", "", "site id to watch")
	period := pflag.StringP("period", "p", window.Week, "named period ("+strings.Join(window.Tokens(), ", ")+")")
	start := pflag.String("start", "", "custom range start (RFC3339)")
	end := pflag.String("end", "", "custom range end (RFC3339)")
	endpoint := pflag.String("endpoint", "", "metrics API base URL, overrides dashboard.endpoint")
	pflag.Parse()

	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *siteID == "" {
		log.Fatal().Msg("--site is required")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *endpoint != "" {
		cfg.Dashboard.Endpoint = *endpoint
	}

	query, err := buildQuery(*period, *start, *end)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid range")
	}

	fetcher := dashboard.NewHTTPFetcher(cfg.Dashboard.Endpoint, cfg.Dashboard.RequestTimeout)
	poller := dashboard.NewPoller(fetcher, &cfg.Dashboard, printUpdate)
	poller.Start()

	if _, err := poller.Select(dashboard.Selection{SiteID: *siteID, Query: query}); err != nil {
		log.Fatal().Err(err).Msg("Failed to select site")
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-hup:
			go poller.Refresh()
		case <-quit:
			last, ok := poller.Current()
			<-poller.Stop().Done()
			if ok && last.Snapshot != nil {
				log.Info().Time("fetched_at", last.FetchedAt).Int64("pageviews", last.Snapshot.Pageviews).Msg("Last snapshot")
			}
			return
		}
	}
}

func buildQuery(period, start, end string) (model.MetricsQuery, error) {
	if start == "" && end == "" {
		if !slices.Contains(window.Tokens(), period) {
			return model.MetricsQuery{}, fmt.Errorf("unknown period %q", period)
		}
		return model.MetricsQuery{Period: period}, nil
	}
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return model.MetricsQuery{}, err
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return model.MetricsQuery{}, err
	}
	return model.MetricsQuery{Period: window.Custom, Start: &s, End: &e}, nil
}

func printUpdate(u dashboard.Update) {
	if u.Err != nil {
		log.Error().Err(u.Err).Uint64("generation", u.Generation).Msg("Refresh failed")
		return
	}

	snap := u.Snapshot
	log.Info().
		Str("site_id", snap.SiteID).
		Str("period", snap.Period).
		Int64("pageviews", snap.Pageviews).
		Int64("visitors", snap.UniqueVisitors).
		Float64("bounce_rate", snap.BounceRate).
		Float64("avg_duration_s", snap.AvgVisitDuration).
		Int64("live", snap.LiveVisitors).
		Msg("Metrics")

	for _, p := range snap.TopPages {
		log.Info().Str("page", p.Name).Int64("views", p.Count).Send()
	}
}
