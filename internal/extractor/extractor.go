// Package extractor turns a raw webhook event into the candidate attribute
// bag for one contact. Every access into the payload tolerates absence: a
// missing payer, item list or custom-field list degrades to absent candidate
// values, never an error. The only fatal condition is a missing e-mail,
// because without the identity key there is nothing to reconcile against.
package extractor

import (
	"errors"
	"log/slog"

	"github.com/ticketbridge/contact-sync/internal/models"
	"github.com/ticketbridge/contact-sync/internal/normalize"
)

// ErrMissingEmail reports an event with no usable identity key.
var ErrMissingEmail = errors.New("payer email missing")

// Recognized custom-field question labels. Anything else is ignored.
const (
	fieldPhone     = "Numéro de téléphone"
	fieldBirthDate = "Date de naissance"
	fieldReferrer  = "Parrain"
	fieldReferred1 = "Filleul 1"
	fieldReferred2 = "Filleul 2"
	fieldReferred3 = "Filleul 3"
)

// Candidate is the normalized per-event value set for a single contact.
type Candidate struct {
	// Email is the identity key: lower-cased, trimmed.
	Email string
	// Phone is the canonical phone number, or "" when absent or invalid.
	// It is kept out of Attributes because the secondary-key guard decides
	// whether it may be persisted.
	Phone string
	// Attributes holds the candidate values for the reconciled name space.
	Attributes models.Attributes
}

// Extract derives the candidate attribute bag and identity key from evt.
func Extract(evt *models.WebhookEvent) (*Candidate, error) {
	payer := payerOf(evt)
	item := firstItem(evt)
	custom := foldCustomFields(item)

	email := ""
	if payer != nil {
		email = normalize.NormalizeEmail(payer.Email)
	}
	if email == "" {
		return nil, ErrMissingEmail
	}

	attrs := models.Attributes{}
	put := func(name, value string) {
		if value != "" {
			attrs[name] = value
		}
	}

	// The attendee on the first item wins over the payer: the purchaser and
	// the ticket holder may be different people.
	attendee := payer
	if item != nil && item.User != nil {
		attendee = item.User
	}
	firstName, lastName := "", ""
	if attendee != nil {
		firstName = attendee.FirstName
		lastName = attendee.LastName
	}
	if firstName == "" && payer != nil {
		firstName = payer.FirstName
	}
	if lastName == "" && payer != nil {
		lastName = payer.LastName
	}
	put(models.AttrFirstName, normalize.Sanitize(normalize.Capitalize(firstName)))
	put(models.AttrLastName, normalize.Sanitize(normalize.Upper(lastName)))

	birthDate := custom[fieldBirthDate]
	if birthDate == "" && payer != nil {
		birthDate = payer.BirthDate
	}
	put(models.AttrBirthDate, birthDate)

	if item != nil && item.Discount != nil {
		put(models.AttrPromoCode, item.Discount.Code)
		if item.Discount.Amount != nil {
			put(models.AttrPromoAmount, normalize.FormatAmount(*item.Discount.Amount))
		}
	}
	if item != nil && item.InitialAmount != nil {
		put(models.AttrTicketPrice, normalize.FormatAmount(*item.InitialAmount))
	}

	put(models.AttrReferrer, normalize.Sanitize(normalize.Capitalize(custom[fieldReferrer])))
	put(models.AttrReferred1, normalize.Sanitize(normalize.Capitalize(custom[fieldReferred1])))
	put(models.AttrReferred2, normalize.Sanitize(normalize.Capitalize(custom[fieldReferred2])))
	put(models.AttrReferred3, normalize.Sanitize(normalize.Capitalize(custom[fieldReferred3])))

	if evt.Data != nil {
		put(models.AttrTag, evt.Data.FormSlug)
	}

	rawPhone := custom[fieldPhone]
	if rawPhone == "" && payer != nil {
		rawPhone = payer.Phone
	}
	phone := normalize.CanonicalizePhone(rawPhone)

	slog.Debug("extracted candidate attributes",
		slog.String("email", email),
		slog.String("phone", phone),
		slog.Int("attribute_count", len(attrs)),
		slog.Any("attributes", attrs),
	)

	return &Candidate{
		Email:      email,
		Phone:      phone,
		Attributes: attrs,
	}, nil
}

func payerOf(evt *models.WebhookEvent) *models.Person {
	if evt == nil || evt.Data == nil {
		return nil
	}
	return evt.Data.Payer
}

func firstItem(evt *models.WebhookEvent) *models.Item {
	if evt == nil || evt.Data == nil || len(evt.Data.Items) == 0 {
		return nil
	}
	return &evt.Data.Items[0]
}

// foldCustomFields collapses the ordered {name, answer} pairs into a lookup
// map, last-write-wins on duplicate names within the same event.
func foldCustomFields(item *models.Item) map[string]string {
	fields := make(map[string]string)
	if item == nil {
		return fields
	}
	for _, cf := range item.CustomFields {
		if cf.Name != "" && cf.Answer != "" {
			fields[cf.Name] = cf.Answer
		}
	}
	return fields
}
