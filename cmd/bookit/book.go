package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"bookit/internal/checkout"
	"bookit/internal/domain/bookings"
	"bookit/internal/domain/experiences"
	"bookit/internal/format"
	"bookit/internal/gateway"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var bookCmd = &cobra.Command{
	Use:   "book <experience-id>",
	Short: "Book an experience interactively",
	Long: `Book an experience.

You will be guided through:
  1. Date, time and quantity
  2. Your name and email
  3. An optional promo code (try SAVE10 or FLAT100)
  4. Accepting the terms and safety policy
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		b, err := runBook(cmd.Context(), newGateway(), surveyPrompter{}, cmd.OutOrStdout(), args[0], logger)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderConfirmation(*b))
		return nil
	},
}

var errAborted = errors.New("booking cancelled")

// runBook walks the user from slot selection to a confirmed booking and
// returns the booking as the server stores it. When the server reports the
// slot can no longer take the quantity, availability is reloaded and the
// user picks again with their contact details kept.
func runBook(ctx context.Context, gw gateway.Gateway, p prompter, out io.Writer, id string, logger *zap.SugaredLogger) (*bookings.Booking, error) {
	e, err := gw.GetExperience(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load experience: %w", err)
	}
	fmt.Fprint(out, renderExperience(*e))

	var contact checkout.Form
	for {
		draft, err := chooseDraft(p, out, *e)
		if err != nil {
			return nil, err
		}

		b, err := checkoutDraft(ctx, gw, p, out, draft, &contact, logger)
		if !errors.Is(err, gateway.ErrConflict) {
			return b, err
		}

		fmt.Fprintln(out, RenderWarning("Please choose another time or a smaller quantity."))
		if e, err = gw.GetExperience(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to reload experience: %w", err)
		}
	}
}

// chooseDraft runs the selection until it yields a bookable draft.
func chooseDraft(p prompter, out io.Writer, e experiences.Experience) (*checkout.Draft, error) {
	if !e.Slots.AnyBookable() {
		return nil, errors.New("this experience is fully booked")
	}

	sel := checkout.NewSelection(e)
	for {
		if err := chooseSlot(p, out, sel); err != nil {
			return nil, err
		}

		fmt.Fprintln(out, renderSummary(e.Name, sel.Date(), sel.Time(), sel.Quantity(), sel.Pricing()))
		ok, err := p.Confirm("Continue to checkout?", true)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		draft, err := sel.Confirm()
		if err != nil {
			fmt.Fprintln(out, RenderWarning(err.Error()))
			continue
		}
		return draft, nil
	}
}

// checkoutDraft collects contact details, an optional promo and consent for
// draft, then submits it. contact seeds the form and receives what the user
// entered when the submission conflicts.
func checkoutDraft(ctx context.Context, gw gateway.Gateway, p prompter, out io.Writer, draft *checkout.Draft, contact *checkout.Form, logger *zap.SugaredLogger) (*bookings.Booking, error) {
	wf := checkout.NewWorkflow(gw, draft, checkout.WithLogger(logger))
	defer wf.Close()

	if err := wf.SetFullName(contact.FullName); err != nil {
		return nil, err
	}
	if err := wf.SetEmail(contact.Email); err != nil {
		return nil, err
	}
	if err := wf.SetAgreedToTerms(contact.AgreedToTerms); err != nil {
		return nil, err
	}

	if err := fillContact(p, wf); err != nil {
		return nil, err
	}
	if err := applyPromo(ctx, p, out, wf); err != nil {
		return nil, err
	}

	for {
		fmt.Fprintln(out, renderSummary(draft.ExperienceName, draft.Date, draft.Time, draft.Quantity, wf.Breakdown()))

		if err := askTerms(p, wf); err != nil {
			return nil, err
		}

		err := wf.Submit(ctx)
		if err == nil {
			break
		}

		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			for _, field := range sortedKeys(verr.Fields) {
				fmt.Fprintln(out, RenderWarning(verr.Fields[field]))
			}
			if err := fillContact(p, wf); err != nil {
				return nil, err
			}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case errors.Is(err, gateway.ErrConflict):
			fmt.Fprintln(out, RenderError(gateway.Message(err)))
			f := wf.Form()
			contact.FullName = f.FullName
			contact.Email = f.Email
			contact.AgreedToTerms = f.AgreedToTerms
			return nil, err
		default:
			fmt.Fprintln(out, RenderError(gateway.Message(err)))
			retry, perr := p.Confirm("Try again?", true)
			if perr != nil {
				return nil, perr
			}
			if !retry {
				return nil, err
			}
		}
	}

	b, err := gw.GetBooking(ctx, wf.ConfirmationID())
	if err != nil {
		// the booking exists; fall back to what the create call returned
		logger.Warnw("could not reload booking", "bookingId", wf.ConfirmationID(), "error", err)
		return wf.Booking(), nil
	}
	return b, nil
}

// chooseSlot asks for a date, a time on it and a quantity. Picking "another
// date", or landing on a date with nothing left, goes back to the date.
func chooseSlot(p prompter, out io.Writer, sel *checkout.Selection) error {
	for {
		dates := sel.Dates()
		labels := make([]string, len(dates))
		current := 0
		for i, d := range dates {
			labels[i] = format.Date(d)
			if d == sel.Date() {
				current = i
			}
		}
		idx, err := p.Select("Choose date", labels, current)
		if err != nil {
			return err
		}
		if err := sel.SelectDate(dates[idx]); err != nil {
			return err
		}

		picked, err := chooseTime(p, out, sel)
		if err != nil {
			return err
		}
		if picked {
			break
		}
	}

	slot, _ := sel.Slot()
	for {
		answer, err := p.Input(fmt.Sprintf("Quantity (1-%d)", slot.AvailableSlots), strconv.Itoa(sel.Quantity()))
		if err != nil {
			return err
		}
		q, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			fmt.Fprintln(out, RenderWarning("enter a whole number"))
			continue
		}
		if got := sel.SetQuantity(q); got != q {
			fmt.Fprintln(out, RenderWarning(fmt.Sprintf("quantity adjusted to %d", got)))
		}
		return nil
	}
}

const anotherDate = "Choose another date"

// chooseTime reports false when the user should pick a different date.
func chooseTime(p prompter, out io.Writer, sel *checkout.Selection) (bool, error) {
	for {
		slots := sel.Times()
		if !slots.AnyBookable() {
			fmt.Fprintln(out, RenderWarning(fmt.Sprintf("%s is sold out, choose another date", format.Date(sel.Date()))))
			return false, nil
		}

		options := make([]string, len(slots), len(slots)+1)
		for i, s := range slots {
			options[i] = fmt.Sprintf("%s  %s  %s", s.Time, format.Currency(s.Price), s.AvailabilityText())
		}
		options = append(options, anotherDate)

		idx, err := p.Select("Choose time", options, 0)
		if err != nil {
			return false, err
		}
		if idx == len(slots) {
			return false, nil
		}
		if err := sel.SelectTime(slots[idx].Time); err != nil {
			fmt.Fprintln(out, RenderWarning(err.Error()))
			continue
		}
		return true, nil
	}
}

func fillContact(p prompter, wf *checkout.Workflow) error {
	f := wf.Form()

	name, err := p.Input("Full name", f.FullName)
	if err != nil {
		return err
	}
	if err := wf.SetFullName(name); err != nil {
		return err
	}

	email, err := p.Input("Email", f.Email)
	if err != nil {
		return err
	}
	return wf.SetEmail(email)
}

// applyPromo offers a promo code until one is accepted or the user leaves it
// blank.
func applyPromo(ctx context.Context, p prompter, out io.Writer, wf *checkout.Workflow) error {
	for {
		code, err := p.Input("Promo code (leave blank to skip)", "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(code) == "" {
			// drop a code the server rejected so it is not mistaken for applied
			return wf.SetPromoCode("")
		}
		if err := wf.SetPromoCode(code); err != nil {
			return err
		}

		err = wf.ApplyPromo(ctx)
		if err == nil {
			fmt.Fprintln(out, RenderSuccess(fmt.Sprintf("Promo code applied! You saved %s", format.Currency(wf.Breakdown().Discount))))
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		fmt.Fprintln(out, RenderError(gateway.Message(err)))
	}
}

func askTerms(p prompter, wf *checkout.Workflow) error {
	agreed, err := p.Confirm("I agree to the terms and safety policy", wf.Form().AgreedToTerms)
	if err != nil {
		return err
	}
	if err := wf.SetAgreedToTerms(agreed); err != nil {
		return err
	}
	if !agreed {
		cont, err := p.Confirm("Terms must be accepted to book. Continue?", true)
		if err != nil {
			return err
		}
		if !cont {
			return errAborted
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
