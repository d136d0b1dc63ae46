// Package guard enforces phone-number uniqueness across contacts. A phone is
// a secondary key in the store: before it may enter an outgoing attribute
// set, the store is asked who currently owns it. Conflicts and lookup
// failures drop the phone and log, they never fail the overall operation.
package guard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ticketbridge/contact-sync/internal/brevoclient"
	"github.com/ticketbridge/contact-sync/internal/logging"
	"github.com/ticketbridge/contact-sync/internal/metrics"
	"github.com/ticketbridge/contact-sync/internal/normalize"
)

// PhoneLookup resolves a canonical phone number to its current owner.
type PhoneLookup interface {
	FindContactByPhone(ctx context.Context, phone string) (*brevoclient.Contact, error)
}

type Guard struct {
	lookup PhoneLookup
}

func New(lookup PhoneLookup) *Guard {
	return &Guard{lookup: lookup}
}

// Check decides whether the candidate phone may be included for the contact
// identified by identityKey. It reports false for an absent phone, when a
// different contact already owns the number, and when the ownership lookup
// itself fails.
func (g *Guard) Check(ctx context.Context, phone, identityKey string) bool {
	if phone == "" {
		return false
	}

	owner, err := g.lookup.FindContactByPhone(ctx, phone)
	if errors.Is(err, brevoclient.ErrNotFound) {
		return true
	}
	if err != nil {
		metrics.StoreFetchErrors.Inc()
		slog.Warn("phone ownership lookup failed, dropping phone from attribute set",
			logging.Phone(phone),
			logging.Email(identityKey),
			logging.Error(err),
		)
		return false
	}

	if normalize.NormalizeEmail(owner.Email) == identityKey {
		return true
	}

	metrics.PhoneConflicts.Inc()
	slog.Warn("phone number already bound to another contact, dropping it",
		logging.Phone(phone),
		logging.Email(identityKey),
		slog.String("owner_email", owner.Email),
	)
	return false
}
