// Package service orchestrates the processing of one inbound event: decode,
// suppress redeliveries, extract, fetch prior state, reconcile, guard the
// phone, and issue the single terminal upsert.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ticketbridge/contact-sync/internal/brevoclient"
	"github.com/ticketbridge/contact-sync/internal/dedup"
	"github.com/ticketbridge/contact-sync/internal/dlq"
	"github.com/ticketbridge/contact-sync/internal/extractor"
	"github.com/ticketbridge/contact-sync/internal/guard"
	"github.com/ticketbridge/contact-sync/internal/logging"
	"github.com/ticketbridge/contact-sync/internal/metrics"
	"github.com/ticketbridge/contact-sync/internal/models"
	"github.com/ticketbridge/contact-sync/internal/reconcile"
)

// ErrMalformedEvent reports an event the service cannot act on at all:
// unparseable JSON or a missing identity key. No store calls are attempted.
var ErrMalformedEvent = errors.New("malformed event payload")

// ContactStore is the slice of the store client the service depends on.
type ContactStore interface {
	GetContact(ctx context.Context, email string) (*brevoclient.Contact, error)
	UpsertContact(ctx context.Context, email string, attrs models.Attributes) error
}

type SyncService struct {
	store ContactStore
	guard *guard.Guard
	dedup dedup.Store
	dlq   dlq.Writer
}

func NewSyncService(store ContactStore, g *guard.Guard, dedupStore dedup.Store, dlqWriter dlq.Writer) *SyncService {
	return &SyncService{
		store: store,
		guard: g,
		dedup: dedupStore,
		dlq:   dlqWriter,
	}
}

// Process reconciles the contact described by one raw event body into the
// store. It performs at most one upsert, issued only after reconciliation
// and guarding complete; a cancelled context aborts before that write.
func (s *SyncService) Process(ctx context.Context, body []byte) error {
	start := time.Now()

	var evt models.WebhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		metrics.EventsTotal.WithLabelValues("malformed").Inc()
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if s.suppressed(ctx, body) {
		metrics.DuplicateEvents.Inc()
		return nil
	}

	candidate, err := extractor.Extract(&evt)
	if err != nil {
		metrics.EventsTotal.WithLabelValues("malformed").Inc()
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	stored := s.fetchStored(ctx, candidate.Email)
	if err := ctx.Err(); err != nil {
		return err
	}

	attrs := reconcile.Reconcile(candidate.Attributes, stored)
	for name := range attrs {
		metrics.AttributesReconciled.WithLabelValues(name).Inc()
	}

	if s.guard.Check(ctx, candidate.Phone, candidate.Email) {
		attrs[models.AttrSMS] = candidate.Phone
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.UpsertContact(ctx, candidate.Email, attrs); err != nil {
		metrics.EventsTotal.WithLabelValues("failed").Inc()
		metrics.StoreUpsertErrors.Inc()
		s.capture(ctx, body, err)
		return fmt.Errorf("upsert contact: %w", err)
	}

	metrics.EventsTotal.WithLabelValues("success").Inc()
	s.markProcessed(ctx, body)
	slog.InfoContext(ctx, "contact reconciled",
		logging.Email(candidate.Email),
		logging.EventType(evt.EventType),
		slog.Int("attribute_count", len(attrs)),
		logging.Duration(time.Since(start).Milliseconds()),
	)
	return nil
}

// suppressed asks the dedup store whether this exact delivery already
// completed. The check never records anything; only markProcessed does, so
// a delivery that fails further down stays unrecorded and the platform's
// redelivery of it is processed again. Dedup failures are logged and treated
// as "not seen": reconciliation is idempotent, so processing again is safe.
func (s *SyncService) suppressed(ctx context.Context, body []byte) bool {
	if s.dedup == nil {
		return false
	}

	seen, err := s.dedup.Seen(ctx, dedup.DeliveryKey(body))
	if err != nil {
		slog.WarnContext(ctx, "dedup check failed, processing event anyway", logging.Error(err))
		return false
	}
	if seen {
		slog.InfoContext(ctx, "suppressing redelivered event")
	}
	return seen
}

// markProcessed records the delivery key once the upsert has succeeded.
// A marking failure only costs an extra reconcile on redelivery, so it is
// logged and swallowed.
func (s *SyncService) markProcessed(ctx context.Context, body []byte) {
	if s.dedup == nil {
		return
	}
	if err := s.dedup.Mark(ctx, dedup.DeliveryKey(body)); err != nil {
		slog.WarnContext(ctx, "recording processed delivery failed", logging.Error(err))
	}
}

// fetchStored loads the prior attribute state for the identity key. Both a
// missing contact and a transient store failure degrade to empty state; a
// fetch failure must never abort the reconciliation.
func (s *SyncService) fetchStored(ctx context.Context, email string) models.Attributes {
	contact, err := s.store.GetContact(ctx, email)
	if errors.Is(err, brevoclient.ErrNotFound) {
		return nil
	}
	if err != nil {
		metrics.StoreFetchErrors.Inc()
		slog.WarnContext(ctx, "fetching stored contact failed, reconciling against empty state",
			logging.Email(email),
			logging.Error(err),
		)
		return nil
	}
	return contact.Attributes
}

func (s *SyncService) capture(ctx context.Context, body []byte, cause error) {
	if s.dlq == nil {
		return
	}
	if err := s.dlq.Write(ctx, body, cause, "upsert_failed"); err != nil {
		slog.ErrorContext(ctx, "writing failed event to DLQ failed", logging.Error(err))
		return
	}
	metrics.DLQWrites.Inc()
}
