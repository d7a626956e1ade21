package main

import (
	"context"
	"time"

	"bookit/internal/mailer"
)

const mailerTemplate = mailer.BookingConfirmationTemplate

// markCompletedBookingsEvery30Mins moves bookings whose date has passed to
// completed. It runs once immediately and stops when ctx is done.
func (app *application) markCompletedBookingsEvery30Mins(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			app.markCompletedBookings(ctx)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func (app *application) markCompletedBookings(ctx context.Context) {
	today := app.now().Format(time.DateOnly)

	n, err := app.store.Bookings.MarkCompleted(ctx, today)
	if err != nil {
		app.logger.Errorf("Error marking bookings as completed: %v", err)
		return
	}
	app.logger.Infof("Marked %d bookings as completed at %s", n, app.now().Format(time.RFC1123))
}
