package main

import (
	"fmt"
	"strings"

	"bookit/internal/domain/bookings"
	"bookit/internal/domain/experiences"
	"bookit/internal/format"
	"bookit/internal/pricing"
)

const descriptionLen = 80

func renderCatalog(list []experiences.Experience) string {
	if len(list) == 0 {
		return MutedStyle.Render("No experiences found.")
	}

	var b strings.Builder
	for i, e := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s\n", TitleStyle.Render(e.Name), SubtitleStyle.Render(e.Location))
		fmt.Fprintf(&b, "  %s\n", format.Truncate(e.Description, descriptionLen))
		fmt.Fprintf(&b, "  From %s  %s\n", format.Currency(e.BasePrice), MutedStyle.Render(e.ID))
	}
	return b.String()
}

func renderExperience(e experiences.Experience) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", TitleStyle.Render(e.Name), SubtitleStyle.Render(e.Location))
	if e.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", e.Description)
	}
	if e.About != "" {
		fmt.Fprintf(&b, "About: %s\n", e.About)
	}
	if e.MinAge > 0 {
		fmt.Fprintf(&b, "Minimum age: %d\n", e.MinAge)
	}

	b.WriteString("\n")
	dates := e.Slots.DistinctDates()
	if len(dates) == 0 {
		b.WriteString(MutedStyle.Render("No dates available."))
		b.WriteString("\n")
	}
	for _, d := range dates {
		fmt.Fprintf(&b, "%s\n", format.Date(d))
		for _, s := range e.Slots.ForDate(d) {
			fmt.Fprintf(&b, "  %s  %s  %s\n", s.Time, format.Currency(s.Price), availability(s))
		}
	}
	return b.String()
}

func availability(s experiences.Slot) string {
	text := s.AvailabilityText()
	switch {
	case !s.Bookable():
		return ErrorStyle.Render(text)
	case s.AvailableSlots <= experiences.LowAvailability:
		return WarningStyle.Render(text)
	}
	return SuccessStyle.Render(text)
}

func renderSummary(name, date, t string, quantity int, p pricing.Breakdown) string {
	lines := []string{
		TitleStyle.Render(name),
		fmt.Sprintf("Date      %s", format.Date(date)),
		fmt.Sprintf("Time      %s", t),
		fmt.Sprintf("Qty       %d", quantity),
		fmt.Sprintf("Subtotal  %s", format.Currency(p.Subtotal)),
		fmt.Sprintf("Taxes     %s", format.Currency(p.Taxes)),
	}
	if p.Discount > 0 {
		lines = append(lines, fmt.Sprintf("Discount  -%s", format.Currency(p.Discount)))
	}
	lines = append(lines, fmt.Sprintf("Total     %s", format.Currency(p.Total)))
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

func renderConfirmation(b bookings.Booking) string {
	p := pricing.Breakdown{Subtotal: b.Subtotal, Taxes: b.Taxes, Discount: b.Discount, Total: b.Total}

	var sb strings.Builder
	sb.WriteString(RenderSuccess("Booking Confirmed"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Ref ID: %s\n", TitleStyle.Render(b.BookingRef))
	sb.WriteString(renderSummary(b.ExperienceName, b.Date, b.Time, b.Quantity, p))
	sb.WriteString("\n")
	if b.PromoCode != nil {
		fmt.Fprintf(&sb, "Promo %s applied\n", *b.PromoCode)
	}
	fmt.Fprintf(&sb, "Booked for %s <%s>, status %s\n", b.FullName, b.Email, b.Status)
	return sb.String()
}
