package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizdocs/internal/domain"
	"bizdocs/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

const insertDocumentQuery = `INSERT INTO documents (
	id, tenant_id, kind, document_number, party_ref, party_name, party_email, party_state_code,
	document_date, notes, tax_type_id, no_tax, global_discount, shipping_cost, paid_amount,
	sub_total, line_discount_total, total_discount, taxable_amount,
	igst_rate, cgst_rate, sgst_rate, igst_amount, cgst_amount, sgst_amount,
	tax_amount, net_total, due_amount, change_amount, amount_in_words,
	created_by, created_at, updated_at
) VALUES (
	:id, :tenant_id, :kind, :document_number, :party_ref, :party_name, :party_email, :party_state_code,
	:document_date, :notes, :tax_type_id, :no_tax, :global_discount, :shipping_cost, :paid_amount,
	:sub_total, :line_discount_total, :total_discount, :taxable_amount,
	:igst_rate, :cgst_rate, :sgst_rate, :igst_amount, :cgst_amount, :sgst_amount,
	:tax_amount, :net_total, :due_amount, :change_amount, :amount_in_words,
	:created_by, :created_at, :updated_at
)`

const insertItemQuery = `INSERT INTO document_items (
	id, document_id, tenant_id, position, product_id, description, unit,
	quantity, unit_price, discount_percent, discount_amount, line_total
) VALUES (
	:id, :document_id, :tenant_id, :position, :product_id, :description, :unit,
	:quantity, :unit_price, :discount_percent, :discount_amount, :line_total
)`

const updateTotalsSet = `sub_total = :sub_total, line_discount_total = :line_discount_total,
	total_discount = :total_discount, taxable_amount = :taxable_amount,
	igst_rate = :igst_rate, cgst_rate = :cgst_rate, sgst_rate = :sgst_rate,
	igst_amount = :igst_amount, cgst_amount = :cgst_amount, sgst_amount = :sgst_amount,
	tax_amount = :tax_amount, net_total = :net_total, due_amount = :due_amount,
	change_amount = :change_amount, amount_in_words = :amount_in_words, updated_at = :updated_at`

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	return r.inTx(ctx, "documentRepo.Create", func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insertDocumentQuery, doc); err != nil {
			if isUniqueViolation(err, "document_number") {
				return domain.ErrDuplicateDocumentNumber
			}
			return err
		}
		return insertItems(ctx, tx, doc)
	})
}

func (r *documentRepo) GetByID(ctx context.Context, tenantID uuid.UUID, kind domain.DocumentKind, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND tenant_id = $2 AND kind = $3", id, tenantID, kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}

	docs := []domain.Document{doc}
	if err := r.loadItems(ctx, docs); err != nil {
		return nil, fmt.Errorf("documentRepo.GetByID items: %w", err)
	}
	return &docs[0], nil
}

// buildDocumentWhere constructs the WHERE clause for document listings.
func buildDocumentWhere(tenantID uuid.UUID, filters domain.DocumentFilters) (clause string, args []interface{}) {
	args = []interface{}{tenantID}
	clause = "WHERE tenant_id = $1"
	argN := 2

	if filters.Kind != "" {
		clause += fmt.Sprintf(" AND kind = $%d", argN)
		args = append(args, filters.Kind)
		argN++
	}
	if filters.PartyRef != "" {
		clause += fmt.Sprintf(" AND party_ref = $%d", argN)
		args = append(args, filters.PartyRef)
		argN++
	}
	if filters.From != nil {
		clause += fmt.Sprintf(" AND document_date >= $%d", argN)
		args = append(args, *filters.From)
		argN++
	}
	if filters.To != nil {
		clause += fmt.Sprintf(" AND document_date <= $%d", argN)
		args = append(args, *filters.To)
	}
	return clause, args
}

func (r *documentRepo) List(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters, offset, limit int) ([]domain.Document, int, error) {
	where, args := buildDocumentWhere(tenantID, filters)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM documents "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf("SELECT * FROM documents %s ORDER BY document_date DESC, created_at DESC LIMIT $%d OFFSET $%d",
		where, n+1, n+2)
	args = append(args, limit, offset)

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	if err := r.loadItems(ctx, docs); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List items: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) ListAllForExport(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters) ([]domain.Document, error) {
	where, args := buildDocumentWhere(tenantID, filters)

	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM documents "+where+" ORDER BY document_date ASC, document_number ASC", args...)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListAllForExport: %w", err)
	}
	if err := r.loadItems(ctx, docs); err != nil {
		return nil, fmt.Errorf("documentRepo.ListAllForExport items: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	return r.inTx(ctx, "documentRepo.Update", func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx,
			`UPDATE documents SET
				document_number = :document_number, party_ref = :party_ref, party_name = :party_name,
				party_email = :party_email, party_state_code = :party_state_code,
				document_date = :document_date, notes = :notes,
				tax_type_id = :tax_type_id, no_tax = :no_tax, global_discount = :global_discount,
				shipping_cost = :shipping_cost, paid_amount = :paid_amount, `+updateTotalsSet+`
			 WHERE id = :id AND tenant_id = :tenant_id AND kind = :kind`, doc)
		if err != nil {
			if isUniqueViolation(err, "document_number") {
				return domain.ErrDuplicateDocumentNumber
			}
			return err
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrDocumentNotFound
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM document_items WHERE document_id = $1 AND tenant_id = $2", doc.ID, doc.TenantID); err != nil {
			return err
		}
		return insertItems(ctx, tx, doc)
	})
}

func (r *documentRepo) UpdateTotals(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	return r.inTx(ctx, "documentRepo.UpdateTotals", func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx,
			`UPDATE documents SET paid_amount = :paid_amount, `+updateTotalsSet+`
			 WHERE id = :id AND tenant_id = :tenant_id`, doc)
		if err != nil {
			return err
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrDocumentNotFound
		}
		for i := range doc.Items {
			if _, err := tx.NamedExecContext(ctx,
				`UPDATE document_items SET discount_amount = :discount_amount, line_total = :line_total
				 WHERE id = :id AND document_id = :document_id`, &doc.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *documentRepo) Delete(ctx context.Context, tenantID uuid.UUID, kind domain.DocumentKind, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1 AND tenant_id = $2 AND kind = $3", id, tenantID, kind)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) ListBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM documents WHERE id > $1 ORDER BY id ASC LIMIT $2", afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListBatch: %w", err)
	}
	if err := r.loadItems(ctx, docs); err != nil {
		return nil, fmt.Errorf("documentRepo.ListBatch items: %w", err)
	}
	return docs, nil
}

// loadItems fills Items for every document in docs with one query.
func (r *documentRepo) loadItems(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID
	}

	query, args, err := sqlx.In(
		"SELECT * FROM document_items WHERE document_id IN (?) ORDER BY document_id, position", ids)
	if err != nil {
		return err
	}
	var items []domain.DocumentItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return err
	}
	attachItems(docs, items)
	return nil
}

// attachItems distributes items over docs by DocumentID, keeping their
// order. Every document ends up with a non-nil Items slice.
func attachItems(docs []domain.Document, items []domain.DocumentItem) {
	index := make(map[uuid.UUID]int, len(docs))
	for i := range docs {
		index[docs[i].ID] = i
		docs[i].Items = []domain.DocumentItem{}
	}
	for _, it := range items {
		if i, ok := index[it.DocumentID]; ok {
			docs[i].Items = append(docs[i].Items, it)
		}
	}
}

func insertItems(ctx context.Context, tx *sqlx.Tx, doc *domain.Document) error {
	for i := range doc.Items {
		it := &doc.Items[i]
		it.ID = uuid.New()
		it.DocumentID = doc.ID
		it.TenantID = doc.TenantID
		it.Position = i
		if _, err := tx.NamedExecContext(ctx, insertItemQuery, it); err != nil {
			return err
		}
	}
	return nil
}

// inTx runs fn in a transaction, wrapping unexpected errors with op.
// Domain sentinel errors pass through unwrapped.
func (r *documentRepo) inTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s begin: %w", op, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, domain.ErrDuplicateDocumentNumber) || errors.Is(err, domain.ErrDocumentNotFound) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s commit: %w", op, err)
	}
	return nil
}
