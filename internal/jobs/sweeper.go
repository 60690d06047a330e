package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// OverdueCompleter settles bookings whose rental period has passed without
// the renter marking a return.
type OverdueCompleter interface {
	CompleteOverdue(ctx context.Context) (int, error)
}

type Sweeper struct {
	cron     *cron.Cron
	bookings OverdueCompleter
}

func NewSweeper(bookings OverdueCompleter) *Sweeper {
	return &Sweeper{
		cron:     cron.New(),
		bookings: bookings,
	}
}

// Start registers the sweep on the given cron schedule and launches the
// scheduler. Schedule accepts standard cron specs and descriptors like
// "@hourly".
func (s *Sweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("overdue sweeper started schedule=%q", schedule)
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	done, err := s.bookings.CompleteOverdue(ctx)
	if err != nil {
		log.Printf("overdue sweep failed error=%v", err)
		return
	}
	if done > 0 {
		log.Printf("overdue sweep completed bookings=%d", done)
	}
}
