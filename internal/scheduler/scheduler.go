package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jwildes/weather-forecast-app/internal/weather"
)

// Refresher periodically re-fetches weather for configured locations so
// their cache entries stay warm between user requests.
type Refresher struct {
	scheduler *gocron.Scheduler
	service   weather.Service
	locations []string
	interval  time.Duration
}

// New creates a Refresher for the given locations.
func New(locations []string, interval time.Duration, service weather.Service) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic warm-up job and starts the underlying
// scheduler. With no locations configured, nothing is scheduled.
func (r *Refresher) Start() error {
	if len(r.locations) == 0 {
		log.Println("scheduler: no refresh locations configured; nothing to schedule")
		return nil
	}

	minutes := int(r.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := r.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running cache warm-up job")

		for _, location := range r.locations {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if bundle := r.service.GetWeatherData(ctx, location); bundle == nil {
				log.Printf("scheduler: warm-up fetch failed for %q", location)
			}
			cancel()
		}

		log.Println("scheduler: completed cache warm-up job")
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
