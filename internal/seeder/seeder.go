// Package seeder generates realistic registration events for exercising a
// running service without touching the real platform.
package seeder

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/ticketbridge/contact-sync/internal/models"
)

var formSlugs = []string{
	"gala-2026",
	"soiree-ete",
	"tournoi-printemps",
	"assemblee-generale",
}

var promoCodes = []string{"EARLY", "VIP", "ADHERENT", "PARRAINAGE"}

// Seed sets the random source so runs are reproducible when a seed is given.
func Seed(seed int64) {
	gofakeit.Seed(seed)
}

// RandomEvent builds one fake registration notification with the optional
// blocks (discount, referrer, phone) present with realistic frequency.
func RandomEvent() *models.WebhookEvent {
	attendee := &models.Person{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}

	amount := int64(gofakeit.Number(500, 15000))
	item := models.Item{
		User:          attendee,
		InitialAmount: &amount,
		CustomFields:  randomCustomFields(),
	}

	if gofakeit.Bool() {
		discountAmount := int64(gofakeit.Number(100, 2000))
		item.Discount = &models.Discount{
			Code:   gofakeit.RandomString(promoCodes),
			Amount: &discountAmount,
		}
	}

	return &models.WebhookEvent{
		EventType: "Order",
		Date:      gofakeit.Date().Format("2006-01-02T15:04:05Z07:00"),
		Data: &models.EventData{
			Payer: &models.Person{
				FirstName: attendee.FirstName,
				LastName:  attendee.LastName,
				Email:     gofakeit.Email(),
			},
			Items:    []models.Item{item},
			FormSlug: gofakeit.RandomString(formSlugs),
		},
	}
}

func randomCustomFields() []models.CustomField {
	fields := []models.CustomField{}

	if gofakeit.Bool() {
		fields = append(fields, models.CustomField{
			Name:   "Numéro de téléphone",
			Answer: randomPhone(),
		})
	}
	if gofakeit.Bool() {
		fields = append(fields, models.CustomField{
			Name:   "Date de naissance",
			Answer: gofakeit.DateRange(time.Now().AddDate(-60, 0, 0), time.Now().AddDate(-18, 0, 0)).Format("02/01/2006"),
		})
	}
	if gofakeit.Bool() {
		fields = append(fields, models.CustomField{
			Name:   "Parrain",
			Answer: gofakeit.FirstName(),
		})
	}

	return fields
}

func randomPhone() string {
	return fmt.Sprintf("06%08d", gofakeit.Number(0, 99999999))
}
