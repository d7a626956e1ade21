package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"bookit/internal/domain/bookings"
	"bookit/internal/domain/promos"
	"bookit/internal/gateway"
	"bookit/internal/pricing"

	"go.uber.org/zap"
)

type State int

const (
	StateEmpty State = iota
	StateEditing
	StatePromoPending
	StatePromoApplied
	StatePromoError
	StateSubmitting
	StateConfirmed
	StateSubmitFailed
)

var stateNames = [...]string{
	StateEmpty:        "empty",
	StateEditing:      "editing",
	StatePromoPending: "promo_pending",
	StatePromoApplied: "promo_applied",
	StatePromoError:   "promo_error",
	StateSubmitting:   "submitting",
	StateConfirmed:    "confirmed",
	StateSubmitFailed: "submit_failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Editable reports whether the form may be changed and actions started.
func (s State) Editable() bool {
	return s == StateEditing || s == StatePromoApplied || s == StatePromoError
}

var (
	ErrNoDraft     = errors.New("checkout has no booking draft")
	ErrBusy        = errors.New("a request is already in progress")
	ErrPromoLocked = errors.New("a promo code has already been applied")
	ErrFinished    = errors.New("booking already confirmed")
	ErrClosed      = errors.New("checkout closed")
)

// Workflow drives one checkout from draft to confirmation. Backend calls run
// without holding the lock; while one is in flight the form is frozen.
type Workflow struct {
	mu sync.Mutex

	gw    gateway.Gateway
	draft *Draft
	state State

	form         Form
	discount     int64
	appliedPromo string
	promoErr     error
	err          error
	booking      *bookings.Booking
	closed       bool

	logger       *zap.SugaredLogger
	onTransition func(from, to State)
}

type Option func(*Workflow)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// WithTransitionHook registers fn to observe every state change. It is called
// with the workflow lock held and must not call back into the workflow.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(w *Workflow) {
		w.onTransition = fn
	}
}

// NewWorkflow starts a checkout for draft. A nil draft yields an empty
// workflow that only reports Redirect.
func NewWorkflow(gw gateway.Gateway, draft *Draft, opts ...Option) *Workflow {
	w := &Workflow{
		gw:     gw,
		state:  StateEmpty,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if draft != nil {
		d := *draft
		w.draft = &d
		w.transition(StateEditing)
	}
	return w
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Redirect is true when there is nothing to check out and the caller should
// return to the catalog.
func (w *Workflow) Redirect() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft == nil
}

// Draft returns a copy of the draft, or nil.
func (w *Workflow) Draft() *Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return nil
	}
	d := *w.draft
	return &d
}

func (w *Workflow) Form() Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// Breakdown prices the draft with the current discount.
func (w *Workflow) Breakdown() pricing.Breakdown {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return pricing.Breakdown{}
	}
	return w.draft.Breakdown(w.discount)
}

// AppliedPromo is the code the server accepted, if any.
func (w *Workflow) AppliedPromo() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.appliedPromo
}

// PromoErr is the last promo rejection.
func (w *Workflow) PromoErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.promoErr
}

// Err is the last submission failure.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// ConfirmationID is the id of the created booking once confirmed.
func (w *Workflow) ConfirmationID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.booking == nil {
		return ""
	}
	return w.booking.ID
}

func (w *Workflow) Booking() *bookings.Booking {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.booking
}

func (w *Workflow) SetFullName(name string) error {
	return w.edit(func(f *Form) { f.FullName = name })
}

func (w *Workflow) SetEmail(email string) error {
	return w.edit(func(f *Form) { f.Email = email })
}

func (w *Workflow) SetAgreedToTerms(agreed bool) error {
	return w.edit(func(f *Form) { f.AgreedToTerms = agreed })
}

// SetPromoCode stores the code upper-cased. It fails once a code is applied.
func (w *Workflow) SetPromoCode(code string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(); err != nil {
		return err
	}
	if w.appliedPromo != "" {
		return ErrPromoLocked
	}
	w.form.PromoCode = strings.ToUpper(code)
	w.promoErr = nil
	w.transition(StateEditing)
	return nil
}

func (w *Workflow) edit(fn func(*Form)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(); err != nil {
		return err
	}
	fn(&w.form)
	if w.state != StatePromoApplied {
		w.transition(StateEditing)
	}
	return nil
}

func (w *Workflow) editableLocked() error {
	switch {
	case w.closed:
		return ErrClosed
	case w.draft == nil:
		return ErrNoDraft
	case w.state == StatePromoPending || w.state == StateSubmitting:
		return ErrBusy
	case w.state == StateConfirmed:
		return ErrFinished
	}
	return nil
}

// ApplyPromo asks the gateway to validate the entered code against the
// draft's subtotal. On success the returned discount is adopted as is and
// the code is locked. On rejection the discount is reset and the error is
// returned and kept in PromoErr.
func (w *Workflow) ApplyPromo(ctx context.Context) error {
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.appliedPromo != "" {
		w.mu.Unlock()
		return ErrPromoLocked
	}
	code := promos.Normalize(w.form.PromoCode)
	if code == "" {
		w.mu.Unlock()
		return &ValidationError{Fields: map[string]string{"promoCode": "Please enter a promo code"}}
	}
	prev := w.state
	subtotal := w.draft.Subtotal()
	w.transition(StatePromoPending)
	w.mu.Unlock()

	res, err := w.gw.ValidatePromo(ctx, code, subtotal)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		w.transition(prev)
		return ctxErr
	}
	if err != nil {
		w.discount = 0
		w.promoErr = err
		w.logger.Debugw("promo rejected", "code", code, "error", err)
		w.transition(StatePromoError)
		return err
	}

	w.discount = res.Discount
	w.appliedPromo = code
	if res.Code != "" {
		w.appliedPromo = res.Code
	}
	w.form.PromoCode = w.appliedPromo
	w.promoErr = nil
	w.transition(StatePromoApplied)
	return nil
}

// Submit validates the form as it stands and creates the booking. A
// validation failure makes no backend call and leaves the state unchanged.
// A backend failure returns the workflow to Editing with every field kept.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	if err := w.form.Validate(); err != nil {
		w.mu.Unlock()
		return err
	}

	f := w.form.trimmed()
	req := bookings.CreateRequest{
		ExperienceID: w.draft.ExperienceID,
		FullName:     f.FullName,
		Email:        f.Email,
		Date:         w.draft.Date,
		Time:         w.draft.Time,
		Quantity:     w.draft.Quantity,
		PromoCode:    w.appliedPromo,
	}
	prev := w.state
	w.err = nil
	w.transition(StateSubmitting)
	w.mu.Unlock()

	b, err := w.gw.CreateBooking(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if err == nil {
		// a created booking is kept even if the caller gave up meanwhile
		w.booking = b
		w.logger.Infow("booking confirmed", "bookingId", b.ID, "bookingRef", b.BookingRef)
		w.transition(StateConfirmed)
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		w.transition(prev)
		return ctxErr
	}

	w.err = err
	w.logger.Warnw("booking submission failed", "experienceId", req.ExperienceID, "error", err)
	w.transition(StateSubmitFailed)
	w.transition(StateEditing)
	return err
}

// Close detaches the workflow from its caller. Results of calls still in
// flight are dropped and later actions fail with ErrClosed.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

func (w *Workflow) transition(to State) {
	from := w.state
	if from == to {
		return
	}
	w.state = to
	w.logger.Debugw("checkout transition", "from", from.String(), "to", to.String())
	if w.onTransition != nil {
		w.onTransition(from, to)
	}
}
