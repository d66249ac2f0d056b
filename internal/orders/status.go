package orders

// Status is the fulfilment state of an order. Admin updates may overwrite any
// known status with any other known status; only unknown values are rejected.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var knownStatuses = map[Status]bool{
	StatusPending:   true,
	StatusPaid:      true,
	StatusShipped:   true,
	StatusDelivered: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// Valid reports whether s is a known order status
func (s Status) Valid() bool {
	return knownStatuses[s]
}

// PaymentStatus tracks whether the payment for an order has been reconciled
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)
