// Command backfill recomputes the stored totals of every purchase order and
// quotation and rewrites the rows whose figures differ, for example
// quotations saved before amounts were rounded at every step.
// Usage: go run ./cmd/backfill [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bizdocs/internal/config"
	"bizdocs/internal/domain"
	"bizdocs/internal/logger"
	"bizdocs/internal/port"
	"bizdocs/internal/repository/postgres"
	"bizdocs/internal/totals"
)

type stats struct {
	Scanned   int
	Rewritten int
	Skipped   int
}

func main() {
	dryRun := flag.Bool("dry-run", false, "report drifted documents without rewriting them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	log := logger.New(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("connecting to database")
	}
	defer func() { _ = db.Close() }()

	b := &backfiller{
		docs:      postgres.NewDocumentRepo(db),
		taxTypes:  postgres.NewTaxTypeRepo(db),
		batchSize: cfg.Export.BatchSize,
		dryRun:    *dryRun,
		log:       log,
	}
	st, err := b.run(context.Background())
	if err != nil {
		log.WithError(err).Fatal("backfill failed")
	}
	log.WithFields(logrus.Fields{
		"scanned":   st.Scanned,
		"rewritten": st.Rewritten,
		"skipped":   st.Skipped,
		"dry_run":   *dryRun,
	}).Info("backfill complete")
}

type backfiller struct {
	docs      port.DocumentRepository
	taxTypes  port.TaxTypeRepository
	batchSize int
	dryRun    bool
	log       logrus.FieldLogger
}

// run pages through all documents in id order. A document that cannot be
// recomputed or saved is logged and skipped; only listing errors abort.
func (b *backfiller) run(ctx context.Context) (stats, error) {
	var st stats
	afterID := uuid.Nil

	for {
		batch, err := b.docs.ListBatch(ctx, afterID, b.batchSize)
		if err != nil {
			return st, fmt.Errorf("listing documents after %s: %w", afterID, err)
		}
		if len(batch) == 0 {
			return st, nil
		}

		for i := range batch {
			st.Scanned++
			rewritten, err := b.fix(ctx, &batch[i])
			if err != nil {
				b.log.WithError(err).WithField("document_id", batch[i].ID).Warn("skipping document")
				st.Skipped++
				continue
			}
			if rewritten {
				st.Rewritten++
			}
		}

		b.log.WithField("scanned", st.Scanned).Debug("batch done")
		afterID = batch[len(batch)-1].ID
		if len(batch) < b.batchSize {
			return st, nil
		}
	}
}

// fix recomputes doc and saves it when any stored figure changed.
func (b *backfiller) fix(ctx context.Context, doc *domain.Document) (bool, error) {
	var cfg *totals.TaxConfiguration
	if doc.TaxTypeID != nil {
		tt, err := b.taxTypes.GetByID(ctx, doc.TenantID, *doc.TaxTypeID)
		if err != nil {
			return false, fmt.Errorf("loading tax type %s: %w", *doc.TaxTypeID, err)
		}
		cfg = tt.Configuration()
	}

	fixed := *doc
	fixed.Items = append([]domain.DocumentItem(nil), doc.Items...)
	fixed.ApplyTotals(doc.Kind.Profile().Recompute(doc.LineItems(), doc.Adjustments(), cfg))

	if sameTotals(doc, &fixed) {
		return false, nil
	}
	b.log.WithFields(logrus.Fields{
		"document_id": doc.ID,
		"kind":        doc.Kind,
		"stored_net":  doc.NetTotal,
		"net":         fixed.NetTotal,
	}).Info("totals drifted")
	if b.dryRun {
		return true, nil
	}
	if err := b.docs.UpdateTotals(ctx, &fixed); err != nil {
		return false, err
	}
	return true, nil
}

func sameTotals(a, b *domain.Document) bool {
	if a.SubTotal != b.SubTotal ||
		a.LineDiscountTotal != b.LineDiscountTotal ||
		a.TotalDiscount != b.TotalDiscount ||
		a.TaxableAmount != b.TaxableAmount ||
		a.IGSTRate != b.IGSTRate || a.CGSTRate != b.CGSTRate || a.SGSTRate != b.SGSTRate ||
		a.IGSTAmount != b.IGSTAmount || a.CGSTAmount != b.CGSTAmount || a.SGSTAmount != b.SGSTAmount ||
		a.TaxAmount != b.TaxAmount ||
		a.NetTotal != b.NetTotal ||
		a.AmountInWords != b.AmountInWords {
		return false
	}
	if !sameOptional(a.PaidAmount, b.PaidAmount) ||
		!sameOptional(a.DueAmount, b.DueAmount) ||
		!sameOptional(a.ChangeAmount, b.ChangeAmount) {
		return false
	}
	for i := range a.Items {
		if a.Items[i].DiscountAmount != b.Items[i].DiscountAmount || a.Items[i].LineTotal != b.Items[i].LineTotal {
			return false
		}
	}
	return true
}

func sameOptional(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
