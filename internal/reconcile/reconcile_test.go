package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ticketbridge/contact-sync/internal/models"
)

func TestReconcile_FirstContact(t *testing.T) {
	candidate := models.Attributes{
		models.AttrFirstName: "Jean",
		models.AttrLastName:  "DUPONT",
		models.AttrReferrer:  "Marc",
	}

	result := Reconcile(candidate, nil)

	assert.Equal(t, "Jean", result[models.AttrFirstName])
	assert.Equal(t, "DUPONT", result[models.AttrLastName])
	assert.Equal(t, "Marc", result[models.AttrReferrer])
}

func TestReconcile_IdentityFieldsFirstWriteWins(t *testing.T) {
	stored := models.Attributes{
		models.AttrFirstName: "Jean",
		models.AttrLastName:  "DUPONT",
	}
	candidate := models.Attributes{
		models.AttrFirstName: "Jeannot",
		models.AttrLastName:  "DURAND",
	}

	result := Reconcile(candidate, stored)

	assert.Equal(t, "Jean", result[models.AttrFirstName])
	assert.Equal(t, "DUPONT", result[models.AttrLastName])
}

func TestReconcile_BirthDateSetOnce(t *testing.T) {
	// First event sets the birth date.
	result := Reconcile(models.Attributes{models.AttrBirthDate: "01/02/1990"}, nil)
	assert.Equal(t, "01/02/1990", result[models.AttrBirthDate])

	// A different candidate never changes it afterwards.
	result = Reconcile(models.Attributes{models.AttrBirthDate: "31/12/1999"}, result)
	assert.Equal(t, "01/02/1990", result[models.AttrBirthDate])
}

func TestReconcile_AccumulateAppendsDistinctValues(t *testing.T) {
	// First event for a new contact: referrer "Jean".
	s1 := Reconcile(models.Attributes{models.AttrReferrer: "Jean"}, nil)
	assert.Equal(t, "Jean", s1[models.AttrReferrer])

	// Same referrer again: no duplicate.
	s2 := Reconcile(models.Attributes{models.AttrReferrer: "Jean"}, s1)
	assert.Equal(t, "Jean", s2[models.AttrReferrer])

	// New referrer appends.
	s3 := Reconcile(models.Attributes{models.AttrReferrer: "Marc"}, s2)
	assert.Equal(t, "Jean, Marc", s3[models.AttrReferrer])
}

func TestReconcile_AccumulateIsIdempotent(t *testing.T) {
	candidate := models.Attributes{
		models.AttrTag:         "soiree-2026",
		models.AttrTicketPrice: "15,00€",
	}
	stored := models.Attributes{
		models.AttrTag:         "gala-2025",
		models.AttrTicketPrice: "12,00€",
	}

	first := Reconcile(candidate, stored)
	second := Reconcile(candidate, first)

	assert.Equal(t, first, second, "re-delivery must not grow the lists")
	assert.Equal(t, "gala-2025, soiree-2026", first[models.AttrTag])
	assert.Equal(t, "12,00€, 15,00€", first[models.AttrTicketPrice])
}

func TestReconcile_AccumulateExistingValueLeavesStoredUnchanged(t *testing.T) {
	stored := models.Attributes{models.AttrPromoCode: "EARLY, VIP"}
	candidate := models.Attributes{models.AttrPromoCode: "VIP"}

	result := Reconcile(candidate, stored)

	assert.Equal(t, "EARLY, VIP", result[models.AttrPromoCode])
}

func TestReconcile_AccumulateEmptyCandidateOmitted(t *testing.T) {
	stored := models.Attributes{models.AttrReferrer: "Jean"}

	result := Reconcile(models.Attributes{}, stored)

	_, present := result[models.AttrReferrer]
	assert.False(t, present, "empty candidate must not put the field in the diff")
}

func TestReconcile_PromoAmountOverwrites(t *testing.T) {
	stored := models.Attributes{models.AttrPromoAmount: "5,00€"}
	candidate := models.Attributes{models.AttrPromoAmount: "10,00€"}

	result := Reconcile(candidate, stored)

	assert.Equal(t, "10,00€", result[models.AttrPromoAmount])
}

func TestReconcile_PromoAmountEmptyCandidateOmitted(t *testing.T) {
	stored := models.Attributes{models.AttrPromoAmount: "5,00€"}

	result := Reconcile(models.Attributes{}, stored)

	_, present := result[models.AttrPromoAmount]
	assert.False(t, present)
}

func TestReconcile_BothEmptyOmitsField(t *testing.T) {
	result := Reconcile(models.Attributes{}, models.Attributes{})
	assert.Empty(t, result, "no empty strings may reach the store")
}

func TestReconcile_Deterministic(t *testing.T) {
	candidate := models.Attributes{
		models.AttrFirstName: "Jean",
		models.AttrReferrer:  "Marc",
		models.AttrTag:       "gala-2025",
	}
	stored := models.Attributes{
		models.AttrFirstName: "Jeanne",
		models.AttrReferrer:  "Paul",
	}

	a := Reconcile(candidate, stored)
	b := Reconcile(candidate, stored)

	assert.Equal(t, a, b)
}

func TestValueList_ParseAppendRoundTrip(t *testing.T) {
	l := ParseValueList("a, b, c")
	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Contains("b"))
	assert.False(t, l.Contains("d"))

	assert.False(t, l.Append("b"), "duplicate must not append")
	assert.False(t, l.Append(""), "empty must not append")
	assert.True(t, l.Append("d"))
	assert.Equal(t, "a, b, c, d", l.String())
}

func TestValueList_Empty(t *testing.T) {
	l := ParseValueList("")
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, "", l.String())
	assert.True(t, l.Append("x"))
	assert.Equal(t, "x", l.String())
}
