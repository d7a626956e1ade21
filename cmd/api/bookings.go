package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bookit/internal/domain/bookings"
	"bookit/internal/domain/experiences"
	"bookit/internal/domain/promos"
	"bookit/internal/pricing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var errUnknownSlot = errors.New("selected date and time are not offered for this experience")

// createBookingHandler godoc
//
//	@Summary		Create a booking
//	@Description	Reserves seats on a slot. Prices are derived from the slot and the promo is re-validated on the server.
//	@Tags			Bookings
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		bookings.CreateRequest	true	"Booking details"
//	@Success		201		{object}	bookings.Booking
//	@Failure		400		{object}	error	"Validation failed, unknown slot or invalid promo code"
//	@Failure		404		{object}	error	"Experience not found"
//	@Failure		409		{object}	error	"Not enough availability"
//	@Failure		500		{object}	error
//	@Router			/bookings [post]
func (app *application) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	var payload bookings.CreateRequest
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	payload.FullName = strings.TrimSpace(payload.FullName)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.PromoCode = promos.Normalize(payload.PromoCode)

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	e, err := app.store.Experiences.GetByID(ctx, payload.ExperienceID)
	if err != nil {
		if errors.Is(err, experiences.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	slot, ok := e.Slots.Find(payload.Date, payload.Time)
	if !ok {
		app.badRequestResponse(w, r, errUnknownSlot)
		return
	}
	if slot.AvailableSlots < payload.Quantity {
		app.conflictResponse(w, r, bookings.ErrConflict)
		return
	}

	subtotal := slot.Price * int64(payload.Quantity)
	var discount int64
	var promoCode *string
	if payload.PromoCode != "" {
		p, d, err := app.redeemPromo(r, payload.PromoCode, subtotal)
		if err != nil {
			if errors.Is(err, promos.ErrInvalidPromo) {
				app.invalidPromoResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
			return
		}
		discount = d
		promoCode = &p.Code
	}

	breakdown := pricing.Calculate(slot.Price, int64(payload.Quantity), discount)

	booking := &bookings.Booking{
		ExperienceID:   e.ID,
		ExperienceName: e.Name,
		FullName:       payload.FullName,
		Email:          payload.Email,
		Date:           slot.Date,
		Time:           slot.Time,
		Quantity:       payload.Quantity,
		Subtotal:       breakdown.Subtotal,
		Taxes:          breakdown.Taxes,
		Discount:       breakdown.Discount,
		Total:          breakdown.Total,
		PromoCode:      promoCode,
		Status:         bookings.StatusConfirmed,
	}

	if err := app.store.Bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, bookings.ErrConflict) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.invalidateExperience(ctx, e.ID)
	app.sendBookingConfirmation(*booking)

	app.logger.Infow("booking created", "bookingId", booking.ID, "bookingRef", booking.BookingRef, "experienceId", e.ID, "quantity", booking.Quantity, "total", booking.Total)

	if err := app.jsonResponse(w, http.StatusCreated, booking); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getBookingHandler godoc
//
//	@Summary		Get a booking
//	@Description	Returns a booking for the confirmation page.
//	@Tags			Bookings
//	@Produce		json
//	@Param			bookingID	path		string	true	"Booking ID"
//	@Success		200			{object}	bookings.Booking
//	@Failure		404			{object}	error	"Booking not found"
//	@Failure		500			{object}	error
//	@Router			/bookings/{bookingID} [get]
func (app *application) getBookingHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bookingID")
	if _, err := uuid.Parse(id); err != nil {
		app.notFoundResponse(w, r, bookings.ErrNotFound)
		return
	}

	b, err := app.store.Bookings.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, b); err != nil {
		app.internalServerError(w, r, err)
	}
}

type invalidator interface {
	Invalidate(ctx context.Context, id string) error
}

// invalidateExperience drops cached availability after a booking. It is a
// no-op when the catalog is not cached.
func (app *application) invalidateExperience(ctx context.Context, id string) {
	inv, ok := app.store.Experiences.(invalidator)
	if !ok {
		return
	}
	if err := inv.Invalidate(ctx, id); err != nil {
		app.logger.Warnw("catalog cache invalidation failed", "experienceId", id, "error", err)
	}
}

func (app *application) sendBookingConfirmation(b bookings.Booking) {
	if app.mailer == nil {
		return
	}

	app.background(func() {
		status, err := app.mailer.Send(mailerTemplate, b.FullName, b.Email, b)
		if err != nil {
			app.logger.Errorw("error sending booking confirmation", "bookingRef", b.BookingRef, "error", err.Error())
			return
		}
		app.logger.Infow("booking confirmation sent", "bookingRef", b.BookingRef, "status", status)
	})
}

// background runs fn in a goroutine tracked for graceful shutdown.
func (app *application) background(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background task panicked", "error", fmt.Sprint(err))
			}
		}()
		fn()
	}()
}
