package templates

import (
	"fmt"
	"strings"

	"tripwatch-service/internal/domain/entity"
)

// PriceDropSubject renders the alert email subject
func PriceDropSubject(event *entity.PriceDropEvent) string {
	return fmt.Sprintf("Flight Price Drop Alert: $%.2f Savings!", event.Drop)
}

// PriceDropBody renders the alert email body
func PriceDropBody(event *entity.PriceDropEvent) string {
	var b strings.Builder

	b.WriteString("Flight Price Drop Alert\n")
	b.WriteString("=======================\n\n")
	fmt.Fprintf(&b, "Travel dates: %s -> %s\n", event.DepartureDate, event.ReturnDate)
	fmt.Fprintf(&b, "Routing: %s\n\n", event.Routing)
	fmt.Fprintf(&b, "Previous price: %s %.2f\n", event.Currency, event.PreviousPrice)
	fmt.Fprintf(&b, "Current price:  %s %.2f\n", event.Currency, event.CurrentPrice)
	fmt.Fprintf(&b, "You save:       %s %.2f\n\n", event.Currency, event.Drop)
	fmt.Fprintf(&b, "Fly into %s, fly home from %s.\n", event.InboundAirport, event.OutboundAirport)
	b.WriteString("Prices change quickly. Book soon if these dates work for you.\n")

	return b.String()
}
