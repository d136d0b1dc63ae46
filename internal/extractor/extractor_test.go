package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketbridge/contact-sync/internal/models"
)

func int64p(v int64) *int64 { return &v }

func fullEvent() *models.WebhookEvent {
	return &models.WebhookEvent{
		EventType: "Order",
		Data: &models.EventData{
			Payer: &models.Person{
				FirstName: "jean",
				LastName:  "dupont",
				Email:     " Jean.Dupont@Example.org ",
				BirthDate: "01/01/1990",
			},
			FormSlug: "gala-2026",
			Items: []models.Item{{
				User:          &models.Person{FirstName: "marie", LastName: "durand"},
				InitialAmount: int64p(150000),
				Discount: &models.Discount{
					Code:   "EARLY",
					Amount: int64p(500),
				},
				CustomFields: []models.CustomField{
					{Name: "Numéro de téléphone", Answer: "0612345678"},
					{Name: "Date de naissance", Answer: "02/02/1992"},
					{Name: "Parrain", Answer: "luc"},
					{Name: "Filleul 1", Answer: "paul"},
				},
			}},
		},
	}
}

func TestExtract_FullEvent(t *testing.T) {
	c, err := Extract(fullEvent())
	require.NoError(t, err)

	assert.Equal(t, "jean.dupont@example.org", c.Email)
	assert.Equal(t, "+33612345678", c.Phone)

	// The attendee on the ticket wins over the payer.
	assert.Equal(t, "Marie", c.Attributes[models.AttrFirstName])
	assert.Equal(t, "DURAND", c.Attributes[models.AttrLastName])

	// The custom field wins over the payer's birth date.
	assert.Equal(t, "02/02/1992", c.Attributes[models.AttrBirthDate])

	assert.Equal(t, "EARLY", c.Attributes[models.AttrPromoCode])
	assert.Equal(t, "5,00€", c.Attributes[models.AttrPromoAmount])
	assert.Equal(t, "1500,00€", c.Attributes[models.AttrTicketPrice])
	assert.Equal(t, "Luc", c.Attributes[models.AttrReferrer])
	assert.Equal(t, "Paul", c.Attributes[models.AttrReferred1])
	assert.Equal(t, "gala-2026", c.Attributes[models.AttrTag])
}

func TestExtract_MissingEmail(t *testing.T) {
	evt := fullEvent()
	evt.Data.Payer.Email = ""

	_, err := Extract(evt)
	assert.ErrorIs(t, err, ErrMissingEmail)
}

func TestExtract_NilData(t *testing.T) {
	_, err := Extract(&models.WebhookEvent{EventType: "Order"})
	assert.ErrorIs(t, err, ErrMissingEmail)
}

func TestExtract_PayerFallbackForNames(t *testing.T) {
	evt := fullEvent()
	evt.Data.Items[0].User = nil

	c, err := Extract(evt)
	require.NoError(t, err)
	assert.Equal(t, "Jean", c.Attributes[models.AttrFirstName])
	assert.Equal(t, "DUPONT", c.Attributes[models.AttrLastName])
}

func TestExtract_PartialAttendeeFallsBackPerField(t *testing.T) {
	evt := fullEvent()
	evt.Data.Items[0].User = &models.Person{FirstName: "marie"}

	c, err := Extract(evt)
	require.NoError(t, err)
	assert.Equal(t, "Marie", c.Attributes[models.AttrFirstName])
	assert.Equal(t, "DUPONT", c.Attributes[models.AttrLastName], "missing attendee last name falls back to payer")
}

func TestExtract_BirthDateFallsBackToPayer(t *testing.T) {
	evt := fullEvent()
	evt.Data.Items[0].CustomFields = nil

	c, err := Extract(evt)
	require.NoError(t, err)
	assert.Equal(t, "01/01/1990", c.Attributes[models.AttrBirthDate])
}

func TestExtract_PhoneFallsBackToPayer(t *testing.T) {
	evt := fullEvent()
	evt.Data.Items[0].CustomFields = nil
	evt.Data.Payer.Phone = "07 98 76 54 32"

	c, err := Extract(evt)
	require.NoError(t, err)
	assert.Equal(t, "+33798765432", c.Phone)
}

func TestExtract_InvalidPhoneDropped(t *testing.T) {
	evt := fullEvent()
	evt.Data.Items[0].CustomFields = []models.CustomField{
		{Name: "Numéro de téléphone", Answer: "061"},
	}

	c, err := Extract(evt)
	require.NoError(t, err)
	assert.Empty(t, c.Phone)
}

func TestExtract_NoItemsNoAmounts(t *testing.T) {
	evt := fullEvent()
	evt.Data.Items = nil

	c, err := Extract(evt)
	require.NoError(t, err)

	_, hasPrice := c.Attributes[models.AttrTicketPrice]
	_, hasPromo := c.Attributes[models.AttrPromoAmount]
	assert.False(t, hasPrice, "absent amount must not become 0,00€")
	assert.False(t, hasPromo)
}

func TestExtract_EmptyFormSlugOmitsTag(t *testing.T) {
	evt := fullEvent()
	evt.Data.FormSlug = ""

	c, err := Extract(evt)
	require.NoError(t, err)

	_, present := c.Attributes[models.AttrTag]
	assert.False(t, present)
}

func TestExtract_DuplicateCustomFieldLastWins(t *testing.T) {
	evt := fullEvent()
	evt.Data.Items[0].CustomFields = []models.CustomField{
		{Name: "Parrain", Answer: "luc"},
		{Name: "Parrain", Answer: "marc"},
	}

	c, err := Extract(evt)
	require.NoError(t, err)
	assert.Equal(t, "Marc", c.Attributes[models.AttrReferrer])
}

func TestExtract_SanitizeStripsQuotesAndSymbols(t *testing.T) {
	evt := fullEvent()
	evt.Data.Items[0].User = &models.Person{FirstName: `jean"o'brien`, LastName: "d@up#ont"}

	c, err := Extract(evt)
	require.NoError(t, err)
	assert.Equal(t, "Jeanobrien", c.Attributes[models.AttrFirstName])
	assert.Equal(t, "DUPONT", c.Attributes[models.AttrLastName])
}
