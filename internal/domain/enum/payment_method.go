package enum

// PaymentMethod represents how a sale was paid for
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// IsValid checks whether the payment method is one of the known values
func (p PaymentMethod) IsValid() bool {
	return p == PaymentCash || p == PaymentOnline
}

// String returns the string representation of the payment method
func (p PaymentMethod) String() string {
	return string(p)
}
