package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bizdocs/internal/domain"
	"bizdocs/internal/port"
	"bizdocs/internal/totals"
)

// LineInput is one editable line of a purchase order or quotation.
// Lines without a product or with a non-positive quantity are rejected, as
// are quantities and prices beyond what a document can meaningfully carry.
type LineInput struct {
	ProductID       string        `json:"product_id" binding:"required"`
	Description     string        `json:"description"`
	Unit            string        `json:"unit"`
	Quantity        totals.Number `json:"quantity" binding:"gt=0,lte=1000000000"`
	UnitPrice       totals.Number `json:"unit_price" binding:"gte=0,lte=1000000000000"`
	DiscountPercent totals.Number `json:"discount_percent" binding:"gte=0,lte=100"`
}

// TotalsInput carries everything the totals engine needs. Numeric fields
// accept numbers or numeric strings; unparseable values count as 0.
type TotalsInput struct {
	TaxTypeID      *uuid.UUID            `json:"tax_type_id"`
	NoTax          bool                  `json:"no_tax"`
	GlobalDiscount totals.Number         `json:"global_discount" binding:"gte=0,lte=1000000000000000"`
	ShippingCost   totals.Number         `json:"shipping_cost" binding:"gte=0,lte=1000000000000"`
	PaidAmount     totals.OptionalNumber `json:"paid_amount"`
	Items          []LineInput           `json:"items" binding:"dive"`
}

// DocumentInput is the DTO for creating or replacing a document.
// When Expected is set, the figures a client displayed are checked against
// the server's recomputation and the save is refused if they drifted.
type DocumentInput struct {
	DocumentNumber string `json:"document_number" binding:"required,max=100"`
	PartyRef       string `json:"party_ref" binding:"max=100"`
	PartyName      string `json:"party_name" binding:"max=255"`
	PartyEmail     string `json:"party_email" binding:"omitempty,email"`
	PartyStateCode string `json:"party_state_code" binding:"omitempty,len=2,numeric"`
	DocumentDate   string `json:"document_date" binding:"required"`
	Notes          string `json:"notes"`
	TotalsInput
	Expected *totals.Payload `json:"expected,omitempty"`
}

// PreviewResult is a stateless recomputation.
type PreviewResult struct {
	Totals  totals.DocumentTotals `json:"totals"`
	Payload totals.Payload        `json:"payload"`
}

// VerifyResult reports whether a submitted payload is consistent.
type VerifyResult struct {
	Valid      bool              `json:"valid"`
	Mismatches []totals.Mismatch `json:"mismatches"`
	Expected   totals.Payload    `json:"expected"`
}

// SendQuotationInput overrides the recipient of a quotation e-mail.
type SendQuotationInput struct {
	ToEmail string `json:"to_email" binding:"omitempty,email"`
	ToName  string `json:"to_name"`
}

// TotalsMismatchError wraps domain.ErrTotalsMismatch with the offending figures.
type TotalsMismatchError struct {
	Mismatches []totals.Mismatch
}

func (e *TotalsMismatchError) Error() string {
	fields := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		fields[i] = m.Field
	}
	return fmt.Sprintf("%s: %s", domain.ErrTotalsMismatch, strings.Join(fields, ", "))
}

func (e *TotalsMismatchError) Unwrap() error { return domain.ErrTotalsMismatch }

// DocumentService manages documents of one kind. Totals are always derived
// server-side; stored figures are never edited directly.
type DocumentService interface {
	Kind() domain.DocumentKind
	Create(ctx context.Context, tenantID, userID uuid.UUID, input DocumentInput) (*domain.Document, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters, offset, limit int) ([]domain.Document, int, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input DocumentInput) (*domain.Document, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Payload(ctx context.Context, tenantID, id uuid.UUID) (*totals.Payload, error)
	Preview(ctx context.Context, tenantID uuid.UUID, input TotalsInput) (*PreviewResult, error)
	Verify(ctx context.Context, tenantID uuid.UUID, submitted totals.Payload) (*VerifyResult, error)
	SendQuotation(ctx context.Context, tenantID, id uuid.UUID, input SendQuotationInput) error
}

type documentService struct {
	kind       domain.DocumentKind
	profile    totals.Profile
	repo       port.DocumentRepository
	taxRepo    port.TaxTypeRepository
	tenantRepo port.TenantRepository
	email      port.EmailSender
	log        logrus.FieldLogger
}

// NewDocumentService creates a DocumentService for kind.
func NewDocumentService(
	kind domain.DocumentKind,
	repo port.DocumentRepository,
	taxRepo port.TaxTypeRepository,
	tenantRepo port.TenantRepository,
	email port.EmailSender,
	log logrus.FieldLogger,
) DocumentService {
	return &documentService{
		kind:       kind,
		profile:    kind.Profile(),
		repo:       repo,
		taxRepo:    taxRepo,
		tenantRepo: tenantRepo,
		email:      email,
		log:        log.WithField("kind", string(kind)),
	}
}

func (s *documentService) Kind() domain.DocumentKind { return s.kind }

// ToLineItems converts editor lines to engine inputs.
func (in TotalsInput) ToLineItems() []totals.LineItem {
	items := make([]totals.LineItem, len(in.Items))
	for i, l := range in.Items {
		items[i] = totals.LineItem{
			ProductID:       l.ProductID,
			Description:     l.Description,
			Unit:            l.Unit,
			Quantity:        l.Quantity.Float64(),
			UnitPrice:       l.UnitPrice.Float64(),
			DiscountPercent: l.DiscountPercent.Float64(),
		}
	}
	return items
}

// ToAdjustments converts the document-level fields to engine inputs.
func (in TotalsInput) ToAdjustments() totals.Adjustments {
	return totals.Adjustments{
		GlobalDiscount: in.GlobalDiscount.Float64(),
		ShippingCost:   in.ShippingCost.Float64(),
		NoTax:          in.NoTax,
		PaidAmount:     in.PaidAmount.Ptr(),
	}
}

// resolveTax loads the tax configuration for id. A nil id means no tax type
// is selected. Inactive tax types are refused only when requireActive is set.
func (s *documentService) resolveTax(ctx context.Context, tenantID uuid.UUID, id *uuid.UUID, requireActive bool) (*totals.TaxConfiguration, error) {
	if id == nil {
		return nil, nil
	}
	taxType, err := s.taxRepo.GetByID(ctx, tenantID, *id)
	if err != nil {
		return nil, err
	}
	if requireActive && !taxType.IsActive {
		return nil, domain.ErrTaxTypeInactive
	}
	return taxType.Configuration(), nil
}

// checkJurisdiction refuses a tax type whose inter-state flag contradicts
// the tenant and party state codes. It is skipped when either code is
// unknown, no tax type is selected, or tax is overridden.
func (s *documentService) checkJurisdiction(ctx context.Context, tenantID uuid.UUID, partyState string, cfg *totals.TaxConfiguration, noTax bool) error {
	if cfg == nil || noTax || partyState == "" {
		return nil
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant.StateCode == "" {
		return nil
	}
	if interState := tenant.StateCode != partyState; interState != cfg.IsInterState {
		return domain.ErrTaxJurisdictionMismatch
	}
	return nil
}

func parseDocumentDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.ErrInvalidDocumentDate
	}
	return d, nil
}

func taxTypeIDString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// apply recomputes totals for doc from input and checks input.Expected.
func (s *documentService) apply(doc *domain.Document, input DocumentInput, cfg *totals.TaxConfiguration) error {
	date, err := parseDocumentDate(input.DocumentDate)
	if err != nil {
		return err
	}
	if len(input.Items) == 0 {
		return domain.ErrNoLineItems
	}

	doc.DocumentNumber = strings.TrimSpace(input.DocumentNumber)
	doc.PartyRef = input.PartyRef
	doc.PartyName = input.PartyName
	doc.PartyEmail = input.PartyEmail
	doc.PartyStateCode = input.PartyStateCode
	doc.DocumentDate = date
	doc.Notes = input.Notes
	doc.TaxTypeID = input.TaxTypeID
	doc.NoTax = input.NoTax

	items := input.ToLineItems()
	adj := input.ToAdjustments()
	t := s.profile.Recompute(items, adj, cfg)

	if input.Expected != nil {
		computed := s.profile.BuildPayload(items, adj, taxTypeIDString(input.TaxTypeID), t)
		if mismatches := s.profile.Diff(computed, *input.Expected); len(mismatches) > 0 {
			return &TotalsMismatchError{Mismatches: mismatches}
		}
	}

	doc.GlobalDiscount = adj.GlobalDiscount
	doc.ShippingCost = adj.ShippingCost
	doc.PaidAmount = adj.PaidAmount

	doc.Items = make([]domain.DocumentItem, len(items))
	for i, it := range items {
		doc.Items[i] = domain.DocumentItem{
			ProductID:       it.ProductID,
			Description:     it.Description,
			Unit:            it.Unit,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
		}
	}
	doc.ApplyTotals(t)
	return nil
}

func (s *documentService) Create(ctx context.Context, tenantID, userID uuid.UUID, input DocumentInput) (*domain.Document, error) {
	cfg, err := s.resolveTax(ctx, tenantID, input.TaxTypeID, true)
	if err != nil {
		return nil, err
	}
	if err := s.checkJurisdiction(ctx, tenantID, input.PartyStateCode, cfg, input.NoTax); err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Kind:      s.kind,
		CreatedBy: userID,
	}
	if err := s.apply(doc, input, cfg); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"tenant_id":   tenantID,
		"document_id": doc.ID,
		"number":      doc.DocumentNumber,
		"net_total":   doc.NetTotal,
	}).Info("document created")
	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Document, error) {
	return s.repo.GetByID(ctx, tenantID, s.kind, id)
}

func (s *documentService) List(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters, offset, limit int) ([]domain.Document, int, error) {
	filters.Kind = s.kind
	return s.repo.List(ctx, tenantID, filters, offset, limit)
}

func (s *documentService) Update(ctx context.Context, tenantID, id uuid.UUID, input DocumentInput) (*domain.Document, error) {
	doc, err := s.repo.GetByID(ctx, tenantID, s.kind, id)
	if err != nil {
		return nil, err
	}

	// A document may keep a tax type that was deactivated after it was saved.
	changed := input.TaxTypeID != nil && (doc.TaxTypeID == nil || *doc.TaxTypeID != *input.TaxTypeID)
	cfg, err := s.resolveTax(ctx, tenantID, input.TaxTypeID, changed)
	if err != nil {
		return nil, err
	}
	if err := s.checkJurisdiction(ctx, tenantID, input.PartyStateCode, cfg, input.NoTax); err != nil {
		return nil, err
	}

	if err := s.apply(doc, input, cfg); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"tenant_id":   tenantID,
		"document_id": doc.ID,
		"net_total":   doc.NetTotal,
	}).Info("document updated")
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, s.kind, id)
}

// Payload rebuilds the persistence payload of a stored document from its
// inputs, so it always reflects the current engine.
func (s *documentService) Payload(ctx context.Context, tenantID, id uuid.UUID) (*totals.Payload, error) {
	doc, err := s.repo.GetByID(ctx, tenantID, s.kind, id)
	if err != nil {
		return nil, err
	}
	cfg, err := s.resolveTax(ctx, tenantID, doc.TaxTypeID, false)
	if err != nil {
		return nil, err
	}

	items, adj := doc.LineItems(), doc.Adjustments()
	t := s.profile.Recompute(items, adj, cfg)
	payload := s.profile.BuildPayload(items, adj, taxTypeIDString(doc.TaxTypeID), t)
	return &payload, nil
}

func (s *documentService) Preview(ctx context.Context, tenantID uuid.UUID, input TotalsInput) (*PreviewResult, error) {
	cfg, err := s.resolveTax(ctx, tenantID, input.TaxTypeID, false)
	if err != nil {
		return nil, err
	}
	items, adj := input.ToLineItems(), input.ToAdjustments()
	t := s.profile.Recompute(items, adj, cfg)
	return &PreviewResult{
		Totals:  t,
		Payload: s.profile.BuildPayload(items, adj, taxTypeIDString(input.TaxTypeID), t),
	}, nil
}

func (s *documentService) Verify(ctx context.Context, tenantID uuid.UUID, submitted totals.Payload) (*VerifyResult, error) {
	var taxTypeID *uuid.UUID
	if submitted.TaxTypeID != nil && *submitted.TaxTypeID != "" {
		id, err := uuid.Parse(*submitted.TaxTypeID)
		if err != nil {
			return nil, domain.ErrNotFound
		}
		taxTypeID = &id
	}
	cfg, err := s.resolveTax(ctx, tenantID, taxTypeID, false)
	if err != nil {
		return nil, err
	}

	items, adj := submitted.Inputs()
	t := s.profile.Recompute(items, adj, cfg)
	expected := s.profile.BuildPayload(items, adj, submitted.TaxTypeID, t)
	mismatches := s.profile.Diff(expected, submitted)
	if mismatches == nil {
		mismatches = []totals.Mismatch{}
	}
	return &VerifyResult{
		Valid:      len(mismatches) == 0,
		Mismatches: mismatches,
		Expected:   expected,
	}, nil
}

func (s *documentService) SendQuotation(ctx context.Context, tenantID, id uuid.UUID, input SendQuotationInput) error {
	if s.kind != domain.DocumentKindQuotation {
		return domain.ErrUnsupportedOperation
	}
	doc, err := s.repo.GetByID(ctx, tenantID, s.kind, id)
	if err != nil {
		return err
	}

	to, name := input.ToEmail, input.ToName
	if to == "" {
		to = doc.PartyEmail
	}
	if to == "" {
		return domain.ErrNoPartyEmail
	}
	if name == "" {
		name = doc.PartyName
	}

	var sender string
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if tenant != nil {
		sender = tenant.Name
	}

	q := port.QuotationEmail{
		DocumentNumber: doc.DocumentNumber,
		SenderName:     sender,
		SubTotal:       doc.SubTotal,
		TotalDiscount:  doc.TotalDiscount,
		TaxAmount:      doc.TaxAmount,
		ShippingCost:   doc.ShippingCost,
		NetTotal:       doc.NetTotal,
		AmountInWords:  doc.AmountInWords,
		Lines:          make([]port.QuotationEmailLine, len(doc.Items)),
	}
	for i, it := range doc.Items {
		q.Lines[i] = port.QuotationEmailLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.LineTotal,
		}
	}

	if err := s.email.SendQuotation(ctx, to, name, q); err != nil {
		s.log.WithError(err).WithField("document_id", id).Error("sending quotation failed")
		return fmt.Errorf("sending quotation: %w", err)
	}
	s.log.WithFields(logrus.Fields{"document_id": id, "to": to}).Info("quotation sent")
	return nil
}
