package models

// WebhookEvent is the inbound registration/payment notification as delivered
// by the platform. Every nested structure may be absent; consumers must not
// assume any of it is populated.
type WebhookEvent struct {
	EventType string     `json:"eventType,omitempty"`
	Date      string     `json:"date,omitempty"`
	Data      *EventData `json:"data,omitempty"`
}

// EventData carries the order details of a single transaction.
type EventData struct {
	Payer    *Person `json:"payer,omitempty"`
	Items    []Item  `json:"items,omitempty"`
	FormSlug string  `json:"formSlug,omitempty"`
}

// Person describes either the payer or the attendee of a purchased item.
// The two may differ when someone buys a ticket for somebody else.
type Person struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

// Item is one purchased line of the order. Only items[0] is considered
// authoritative for contact reconciliation.
type Item struct {
	User          *Person       `json:"user,omitempty"`
	Discount      *Discount     `json:"discount,omitempty"`
	InitialAmount *int64        `json:"initialAmount,omitempty"`
	CustomFields  []CustomField `json:"customFields,omitempty"`
}

// Discount holds the promo code applied to an item, with its amount in
// minor units (cents).
type Discount struct {
	Code   string `json:"code,omitempty"`
	Amount *int64 `json:"amount,omitempty"`
}

// CustomField is one named answer from the registration form.
type CustomField struct {
	Name   string `json:"name,omitempty"`
	Answer string `json:"answer,omitempty"`
}
