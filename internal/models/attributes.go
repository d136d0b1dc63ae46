package models

// Attribute names form a fixed, closed set shared by candidate extraction,
// reconciliation and the contact store. The French names are the store-side
// attribute identifiers and must not be translated.
const (
	AttrFirstName   = "PRENOM"
	AttrLastName    = "NOM"
	AttrBirthDate   = "DATE_NAISSANCE"
	AttrPromoCode   = "CODE_PROMO"
	AttrPromoAmount = "MONTANT_CODE_PROMO"
	AttrTicketPrice = "PRIX_BILLET"
	AttrReferrer    = "PARRAIN"
	AttrReferred1   = "FILLEUL_1"
	AttrReferred2   = "FILLEUL_2"
	AttrReferred3   = "FILLEUL_3"
	AttrTag         = "TAG"
	AttrSMS         = "SMS"
)

// AttributeNames lists the reconciled attribute space in a stable order.
// AttrSMS is deliberately excluded: the phone guard decides it separately.
var AttributeNames = []string{
	AttrFirstName,
	AttrLastName,
	AttrBirthDate,
	AttrPromoCode,
	AttrPromoAmount,
	AttrTicketPrice,
	AttrReferrer,
	AttrReferred1,
	AttrReferred2,
	AttrReferred3,
	AttrTag,
}

// Attributes maps attribute names to string values. Absent keys mean absent
// values; empty strings are never persisted.
type Attributes map[string]string

// Get returns the value for name, or "" when absent.
func (a Attributes) Get(name string) string {
	if a == nil {
		return ""
	}
	return a[name]
}

// Clone returns a shallow copy. Clone of nil is an empty map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
