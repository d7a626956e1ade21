package checkout

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"bookit/internal/domain/bookings"
	"bookit/internal/domain/experiences"
	"bookit/internal/domain/promos"
	"bookit/internal/gateway"
	"bookit/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway answers promo and booking calls from functions set per test.
// When release is non-nil every call blocks until it is closed.
type fakeGateway struct {
	mu       sync.Mutex
	promo    func(code string, subtotal int64) (*promos.ValidateResult, error)
	create   func(req bookings.CreateRequest) (*bookings.Booking, error)
	requests []bookings.CreateRequest
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeGateway) wait(ctx context.Context) error {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release == nil {
		return nil
	}
	select {
	case <-f.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeGateway) ListExperiences(context.Context) ([]experiences.Experience, error) {
	return nil, nil
}

func (f *fakeGateway) GetExperience(context.Context, string) (*experiences.Experience, error) {
	return nil, gateway.ErrNotFound
}

func (f *fakeGateway) ValidatePromo(ctx context.Context, code string, subtotal int64) (*promos.ValidateResult, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.promo != nil {
		return f.promo(code, subtotal)
	}
	d, err := promos.Evaluate(subtotal, code)
	if err != nil {
		return nil, &gateway.APIError{Kind: gateway.ErrInvalidPromo, Status: http.StatusBadRequest, Message: "Invalid promo code"}
	}
	return &promos.ValidateResult{Code: code, Discount: d}, nil
}

func (f *fakeGateway) CreateBooking(ctx context.Context, req bookings.CreateRequest) (*bookings.Booking, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.create != nil {
		return f.create(req)
	}
	return &bookings.Booking{ID: "bk-1", BookingRef: "K7QX2M9A", Status: bookings.StatusConfirmed}, nil
}

func (f *fakeGateway) GetBooking(context.Context, string) (*bookings.Booking, error) {
	return nil, gateway.ErrNotFound
}

func (f *fakeGateway) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func testDraft() *Draft {
	return &Draft{
		ExperienceID:   "exp-1",
		ExperienceName: "Nandi Hills Sunrise",
		Date:           "2025-06-01",
		Time:           "10:00",
		Quantity:       2,
		UnitPrice:      500,
	}
}

func fillForm(t *testing.T, w *Workflow) {
	t.Helper()
	require.NoError(t, w.SetFullName("Asha Rao"))
	require.NoError(t, w.SetEmail("asha@example.com"))
	require.NoError(t, w.SetAgreedToTerms(true))
}

func TestWorkflowWithoutDraftRedirects(t *testing.T) {
	gw := &fakeGateway{}
	w := NewWorkflow(gw, nil)

	assert.Equal(t, StateEmpty, w.State())
	assert.True(t, w.Redirect())
	assert.Nil(t, w.Draft())
	assert.Equal(t, pricing.Breakdown{}, w.Breakdown())
	assert.ErrorIs(t, w.SetFullName("x"), ErrNoDraft)
	assert.ErrorIs(t, w.ApplyPromo(context.Background()), ErrNoDraft)
	assert.ErrorIs(t, w.Submit(context.Background()), ErrNoDraft)
	assert.Zero(t, gw.calls())
}

func TestWorkflowScenarioBaseline(t *testing.T) {
	w := NewWorkflow(&fakeGateway{}, testDraft())
	assert.Equal(t, StateEditing, w.State())
	assert.False(t, w.Redirect())
	assert.Equal(t, pricing.Breakdown{Subtotal: 1000, Taxes: 50, Total: 1050}, w.Breakdown())
}

func TestWorkflowApplyPromo(t *testing.T) {
	tests := []struct {
		code     string
		discount int64
		total    int64
	}{
		{"SAVE10", 100, 950},
		{"flat100", 100, 950},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := NewWorkflow(&fakeGateway{}, testDraft())
			require.NoError(t, w.SetPromoCode(tt.code))
			require.NoError(t, w.ApplyPromo(context.Background()))

			assert.Equal(t, StatePromoApplied, w.State())
			b := w.Breakdown()
			assert.Equal(t, tt.discount, b.Discount)
			assert.Equal(t, tt.total, b.Total)
			assert.ErrorIs(t, w.SetPromoCode("OTHER"), ErrPromoLocked)
			assert.ErrorIs(t, w.ApplyPromo(context.Background()), ErrPromoLocked)
		})
	}
}

func TestWorkflowAdoptsServerDiscount(t *testing.T) {
	gw := &fakeGateway{promo: func(code string, subtotal int64) (*promos.ValidateResult, error) {
		return &promos.ValidateResult{Code: code, Discount: 237}, nil
	}}
	w := NewWorkflow(gw, testDraft())
	require.NoError(t, w.SetPromoCode("SAVE10"))
	require.NoError(t, w.ApplyPromo(context.Background()))

	assert.Equal(t, int64(237), w.Breakdown().Discount)
	assert.Equal(t, "SAVE10", w.AppliedPromo())
}

func TestWorkflowPromoRejectedThenRetry(t *testing.T) {
	w := NewWorkflow(&fakeGateway{}, testDraft())

	require.NoError(t, w.SetPromoCode("bogus"))
	assert.Equal(t, "BOGUS", w.Form().PromoCode)
	err := w.ApplyPromo(context.Background())
	assert.ErrorIs(t, err, gateway.ErrInvalidPromo)
	assert.Equal(t, StatePromoError, w.State())
	assert.Zero(t, w.Breakdown().Discount)
	assert.ErrorIs(t, w.PromoErr(), gateway.ErrInvalidPromo)

	require.NoError(t, w.SetPromoCode("SAVE10"))
	assert.Equal(t, StateEditing, w.State())
	assert.NoError(t, w.PromoErr())
	require.NoError(t, w.ApplyPromo(context.Background()))
	assert.Equal(t, StatePromoApplied, w.State())
}

func TestWorkflowBlankPromo(t *testing.T) {
	w := NewWorkflow(&fakeGateway{}, testDraft())
	require.NoError(t, w.SetPromoCode("   "))

	err := w.ApplyPromo(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "promoCode")
	assert.Equal(t, StateEditing, w.State())
}

func TestWorkflowSubmitRequiresTerms(t *testing.T) {
	gw := &fakeGateway{}
	w := NewWorkflow(gw, testDraft())
	require.NoError(t, w.SetFullName("Asha Rao"))
	require.NoError(t, w.SetEmail("asha@example.com"))

	err := w.Submit(context.Background())
	assert.ErrorIs(t, err, gateway.ErrValidation)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"agreedToTerms": "Please agree to the terms and safety policy"}, verr.Fields)

	assert.Equal(t, StateEditing, w.State())
	assert.Zero(t, gw.calls())
}

func TestWorkflowSubmitValidatesFields(t *testing.T) {
	gw := &fakeGateway{}
	w := NewWorkflow(gw, testDraft())
	require.NoError(t, w.SetFullName("  "))
	require.NoError(t, w.SetEmail("not-an-email"))
	require.NoError(t, w.SetAgreedToTerms(true))

	var verr *ValidationError
	require.ErrorAs(t, w.Submit(context.Background()), &verr)
	assert.Equal(t, "Full name is required", verr.Fields["fullName"])
	assert.Equal(t, "Enter a valid email address", verr.Fields["email"])
	assert.NotContains(t, verr.Fields, "agreedToTerms")
	assert.Zero(t, gw.calls())
}

func TestWorkflowSubmitConfirms(t *testing.T) {
	var transitions []State
	gw := &fakeGateway{}
	w := NewWorkflow(gw, testDraft(), WithTransitionHook(func(_, to State) {
		transitions = append(transitions, to)
	}))
	fillForm(t, w)
	require.NoError(t, w.SetPromoCode("SAVE10"))
	require.NoError(t, w.ApplyPromo(context.Background()))

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, StateConfirmed, w.State())
	assert.Equal(t, "bk-1", w.ConfirmationID())
	assert.Equal(t, "K7QX2M9A", w.Booking().BookingRef)

	require.Len(t, gw.requests, 1)
	assert.Equal(t, bookings.CreateRequest{
		ExperienceID: "exp-1",
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		Date:         "2025-06-01",
		Time:         "10:00",
		Quantity:     2,
		PromoCode:    "SAVE10",
	}, gw.requests[0])

	assert.Equal(t, []State{StateEditing, StatePromoPending, StatePromoApplied, StateSubmitting, StateConfirmed}, transitions)
	assert.ErrorIs(t, w.SetFullName("again"), ErrFinished)
	assert.ErrorIs(t, w.Submit(context.Background()), ErrFinished)
}

func TestWorkflowSubmitConflictPreservesFields(t *testing.T) {
	conflict := &gateway.APIError{Kind: gateway.ErrConflict, Status: http.StatusConflict, Message: "Not enough slots available"}
	gw := &fakeGateway{create: func(bookings.CreateRequest) (*bookings.Booking, error) {
		return nil, conflict
	}}
	var sawFailed bool
	w := NewWorkflow(gw, testDraft(), WithTransitionHook(func(_, to State) {
		if to == StateSubmitFailed {
			sawFailed = true
		}
	}))
	fillForm(t, w)
	require.NoError(t, w.SetPromoCode("FLAT100"))
	require.NoError(t, w.ApplyPromo(context.Background()))

	err := w.Submit(context.Background())
	assert.ErrorIs(t, err, gateway.ErrConflict)
	assert.True(t, sawFailed)

	assert.Equal(t, StateEditing, w.State())
	assert.ErrorIs(t, w.Err(), gateway.ErrConflict)
	f := w.Form()
	assert.Equal(t, "Asha Rao", f.FullName)
	assert.Equal(t, "asha@example.com", f.Email)
	assert.Equal(t, "FLAT100", f.PromoCode)
	assert.True(t, f.AgreedToTerms)
	assert.Equal(t, "FLAT100", w.AppliedPromo())
	assert.Equal(t, int64(100), w.Breakdown().Discount)
	assert.Empty(t, w.ConfirmationID())

	// the user may try again without re-entering anything
	gw.create = nil
	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, StateConfirmed, w.State())
	assert.NoError(t, w.Err())
}

func TestWorkflowBusyWhileSubmitting(t *testing.T) {
	gw := &fakeGateway{started: make(chan struct{}, 1), release: make(chan struct{})}
	w := NewWorkflow(gw, testDraft())
	fillForm(t, w)

	done := make(chan error, 1)
	go func() { done <- w.Submit(context.Background()) }()
	<-gw.started

	assert.Equal(t, StateSubmitting, w.State())
	assert.ErrorIs(t, w.SetFullName("Someone Else"), ErrBusy)
	assert.ErrorIs(t, w.SetPromoCode("SAVE10"), ErrBusy)
	assert.ErrorIs(t, w.Submit(context.Background()), ErrBusy)

	close(gw.release)
	require.NoError(t, <-done)
	assert.Equal(t, "Asha Rao", w.Form().FullName)
	assert.Equal(t, 1, gw.calls())
}

func TestWorkflowCloseDiscardsLateResult(t *testing.T) {
	gw := &fakeGateway{started: make(chan struct{}, 1), release: make(chan struct{})}
	w := NewWorkflow(gw, testDraft())
	fillForm(t, w)

	done := make(chan error, 1)
	go func() { done <- w.Submit(context.Background()) }()
	<-gw.started

	w.Close()
	close(gw.release)

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Empty(t, w.ConfirmationID())
	assert.Nil(t, w.Booking())
	assert.ErrorIs(t, w.SetEmail("x@example.com"), ErrClosed)
}

func TestWorkflowCancelledPromoRevertsState(t *testing.T) {
	gw := &fakeGateway{started: make(chan struct{}, 1), release: make(chan struct{})}
	w := NewWorkflow(gw, testDraft())
	require.NoError(t, w.SetPromoCode("SAVE10"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.ApplyPromo(ctx) }()
	<-gw.started
	assert.Equal(t, StatePromoPending, w.State())

	cancel()
	assert.True(t, errors.Is(<-done, context.Canceled))
	assert.Equal(t, StateEditing, w.State())
	assert.Empty(t, w.AppliedPromo())
	assert.Zero(t, w.Breakdown().Discount)
}

func TestWorkflowRejectedPromoDoesNotBlockSubmit(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"unknown code", "BOGUS"},
		{"overlong code", strings.Repeat("X", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			w := NewWorkflow(gw, testDraft())

			require.NoError(t, w.SetPromoCode(tt.code))
			assert.ErrorIs(t, w.ApplyPromo(context.Background()), gateway.ErrInvalidPromo)
			assert.Equal(t, StatePromoError, w.State())

			fillForm(t, w)
			require.NoError(t, w.Submit(context.Background()))
			assert.Equal(t, StateConfirmed, w.State())
			require.Equal(t, 1, gw.calls())
			assert.Empty(t, gw.requests[0].PromoCode)
		})
	}
}

func TestWorkflowKeepsBookingCreatedAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := &fakeGateway{create: func(bookings.CreateRequest) (*bookings.Booking, error) {
		cancel()
		return &bookings.Booking{ID: "bk-9", BookingRef: "ZX81QW4E", Status: bookings.StatusConfirmed}, nil
	}}
	w := NewWorkflow(gw, testDraft())
	fillForm(t, w)

	require.NoError(t, w.Submit(ctx))
	assert.Equal(t, StateConfirmed, w.State())
	assert.Equal(t, "bk-9", w.ConfirmationID())
}

func TestWorkflowDraftIsCopied(t *testing.T) {
	d := testDraft()
	w := NewWorkflow(&fakeGateway{}, d)
	d.Quantity = 9

	assert.Equal(t, 2, w.Draft().Quantity)
	w.Draft().Quantity = 7
	assert.Equal(t, int64(1000), w.Breakdown().Subtotal)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "promo_applied", StatePromoApplied.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.True(t, StatePromoError.Editable())
	assert.False(t, StateSubmitting.Editable())
}
