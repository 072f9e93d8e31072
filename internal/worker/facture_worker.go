package worker

// facture_worker.go
// Processes invoice generation jobs from QueueFacture: renders the PDF,
// persists it under the storage path, then optionally enqueues an email job
// when the customer has an address on file. Exponential backoff, max 3
// attempts, exhausted jobs go to the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// FactureJobPayload is the job envelope sent to QueueFacture.
type FactureJobPayload struct {
	VenteID     string  `json:"vente_id"`
	ClientEmail *string `json:"client_email,omitempty"`
}

// FactureRenderer produces the invoice bytes for a sale. Satisfied by
// service.FactureService; declared here so the worker stays decoupled from
// the service package.
type FactureRenderer interface {
	Generer(ctx context.Context, venteID uuid.UUID) ([]byte, string, error)
}

// FactureWorker renders invoices queued at confirmation time.
type FactureWorker struct {
	renderer    FactureRenderer
	dispatcher  *Dispatcher
	rdb         *redis.Client
	storagePath string
}

func NewFactureWorker(renderer FactureRenderer, dispatcher *Dispatcher, rdb *redis.Client, storagePath string) *FactureWorker {
	return &FactureWorker{
		renderer:    renderer,
		dispatcher:  dispatcher,
		rdb:         rdb,
		storagePath: storagePath,
	}
}

// Process handles a single invoice job:
//  1. Parse FactureJobPayload from the job envelope
//  2. Render the PDF (3 attempts with backoff)
//  3. Write it under storagePath
//  4. Enqueue an email job when a customer address is present
func (w *FactureWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload FactureJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("facture_worker: invalid payload")
		return
	}

	venteID, err := uuid.Parse(payload.VenteID)
	if err != nil {
		log.Error().Str("vente_id", payload.VenteID).Msg("facture_worker: invalid vente_id")
		return
	}

	var pdf []byte
	var nomFichier string
	renderErr := withRetry(ctx, 3, func(attempt int) error {
		var err error
		pdf, nomFichier, err = w.renderer.Generer(ctx, venteID)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("vente_id", payload.VenteID).
				Msg("facture_worker: render attempt failed, retrying")
		}
		return err
	})
	if renderErr != nil {
		log.Error().Err(renderErr).Str("vente_id", payload.VenteID).Msg("facture_worker: render failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueFacture, "facture", raw, renderErr.Error(), 3)
		return
	}

	if err := os.MkdirAll(w.storagePath, 0755); err != nil {
		log.Error().Err(err).Msg("facture_worker: create storage dir")
		return
	}
	pdfPath := filepath.Join(w.storagePath, nomFichier)
	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		log.Error().Err(err).Str("path", pdfPath).Msg("facture_worker: write PDF")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("vente_id", payload.VenteID).Msg("facture_worker: invoice generated")

	if payload.ClientEmail != nil && *payload.ClientEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClientEmail,
			Subject: fmt.Sprintf("Votre facture %s", nomFichier),
			Body:    "Veuillez trouver votre facture en pièce jointe.",
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClientEmail).Msg("facture_worker: failed to enqueue email")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
