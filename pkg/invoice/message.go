package invoice

import (
	"fmt"
	"strings"
	"time"
)

// MessageInput holds the sale fields rendered into an invoice message.
// All amounts are decimals, already converted from cents.
type MessageInput struct {
	BusinessName  string
	ServiceName   string
	Quantity      int
	UnitPrice     float64
	Total         float64
	Discount      float64
	FinalCharged  float64
	PaymentMethod string
	SoldAt        time.Time
}

// BuildMessage renders a deterministic, human-readable invoice message
// from a sale's fields.
func BuildMessage(in MessageInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s*\n", in.BusinessName)
	b.WriteString("Thank you for your purchase!\n\n")
	fmt.Fprintf(&b, "Invoice - %s\n", in.SoldAt.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "Service: %s\n", in.ServiceName)
	fmt.Fprintf(&b, "Quantity: %d\n", in.Quantity)
	fmt.Fprintf(&b, "Unit Price: ₹%.2f\n", in.UnitPrice)
	fmt.Fprintf(&b, "Total: ₹%.2f\n", in.Total)
	if in.Discount > 0 {
		fmt.Fprintf(&b, "Discount: ₹%.2f\n", in.Discount)
	}
	fmt.Fprintf(&b, "Amount Charged: ₹%.2f\n", in.FinalCharged)
	fmt.Fprintf(&b, "Payment Method: %s\n", in.PaymentMethod)

	return b.String()
}
