// Package reconcile computes the attribute set to persist for a contact,
// given the candidate values of the current event and the previously stored
// state. Reconcile is a pure function of its two inputs: replaying the same
// event against the same stored state always yields the same result, which
// keeps the terminal upsert safe to retry.
package reconcile

import (
	"github.com/ticketbridge/contact-sync/internal/models"
)

// policy is the merge rule applied to one attribute, independently of all
// others.
type policy int

const (
	// firstWriteWins keeps the stored value once set; the candidate only
	// fills an empty slot.
	firstWriteWins policy = iota
	// setOnce populates the attribute exactly once and never echoes or
	// changes it afterwards.
	setOnce
	// accumulate appends new distinct candidate values to a delimited
	// ordered history.
	accumulate
	// overwrite always takes a non-empty candidate; it reflects the latest
	// transaction, not cumulative state.
	overwrite
)

var fieldPolicies = map[string]policy{
	models.AttrFirstName:   firstWriteWins,
	models.AttrLastName:    firstWriteWins,
	models.AttrBirthDate:   setOnce,
	models.AttrPromoCode:   accumulate,
	models.AttrPromoAmount: overwrite,
	models.AttrTicketPrice: accumulate,
	models.AttrReferrer:    accumulate,
	models.AttrReferred1:   accumulate,
	models.AttrReferred2:   accumulate,
	models.AttrReferred3:   accumulate,
	models.AttrTag:         accumulate,
}

// Reconcile merges candidate values into the stored state attribute by
// attribute. Fields that end up empty are omitted entirely: the store never
// receives empty strings.
func Reconcile(candidate, stored models.Attributes) models.Attributes {
	result := models.Attributes{}

	for _, name := range models.AttributeNames {
		if value, ok := mergeField(fieldPolicies[name], candidate.Get(name), stored.Get(name)); ok {
			result[name] = value
		}
	}

	return result
}

// mergeField applies one policy to one field. The boolean reports whether
// the field belongs in the outgoing set at all.
func mergeField(p policy, candidate, stored string) (string, bool) {
	switch p {
	case firstWriteWins, setOnce:
		if stored != "" {
			return stored, true
		}
		if candidate != "" {
			return candidate, true
		}
		return "", false

	case accumulate:
		// An empty candidate must not pollute the history: the field is
		// left out of the diff whether or not prior entries exist.
		if candidate == "" {
			return "", false
		}
		if stored == "" {
			return candidate, true
		}
		history := ParseValueList(stored)
		if !history.Append(candidate) {
			return stored, true
		}
		return history.String(), true

	case overwrite:
		if candidate != "" {
			return candidate, true
		}
		return "", false
	}

	return "", false
}
