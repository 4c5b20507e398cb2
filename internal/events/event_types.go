package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderCreated   EventType = "order_created"
	EventOrderDelivered EventType = "order_delivered"
	EventOTPIssued      EventType = "otp_issued"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderCreatedPayload carries the contact details needed to confirm an order.
type OrderCreatedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Total int64  `json:"total"`
}

// OrderDeliveredPayload carries the contact details needed to announce delivery.
type OrderDeliveredPayload struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// OTPIssuedPayload carries a freshly issued login code.
type OTPIssuedPayload struct {
	Phone string `json:"phone"`
	Code  string `json:"-"`
}
