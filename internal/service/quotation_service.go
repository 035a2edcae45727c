package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"labquote/internal/middleware"
	"labquote/internal/model"
	"labquote/internal/quotation"
	"labquote/internal/repository"
	"labquote/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// WorksheetLine is one editable pricing row, pre-filled from the catalog.
// Dealer prices are present only for sessions holding the trade-price
// capability.
type WorksheetLine struct {
	ProductID    string           `json:"product_id"`
	Name         string           `json:"name"`
	Image        string           `json:"image,omitempty"`
	Specs        []model.SpecPair `json:"specs,omitempty"`
	Quantity     int              `json:"quantity"`
	UnitPrice    string           `json:"unit_price"`
	GSTPercent   string           `json:"gst_percent"`
	PriceTier    string           `json:"price_tier"`
	DealerPrice  string           `json:"dealer_price,omitempty"`
	DefaultPrice string           `json:"default_price"`
}

type WorksheetResponse struct {
	EnquiryID    string          `json:"enquiry_id"`
	PartyName    string          `json:"party_name"`
	PartyMobile  string          `json:"party_mobile,omitempty"`
	PartyEmail   string          `json:"party_email,omitempty"`
	Lines        []WorksheetLine `json:"lines"`
	Notes        string          `json:"notes"`
	PreviewRefNo string          `json:"preview_ref_no"`
}

type QuotationItemRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	UnitPrice  string `json:"unit_price" binding:"required"`
	GSTPercent string `json:"gst_percent"`
	PriceTier  string `json:"price_tier"`
}

type CreateQuotationRequest struct {
	EnquiryID    string                 `json:"enquiry_id"`
	PartyName    string                 `json:"party_name" binding:"required"`
	PartyAddress string                 `json:"party_address"`
	PartyMobile  string                 `json:"party_mobile"`
	PartyEmail   string                 `json:"party_email"`
	Items        []QuotationItemRequest `json:"items" binding:"required,min=1,dive"`
	Packaging    string                 `json:"packaging"`
	Discount     string                 `json:"discount"`
	Notes        string                 `json:"notes"`
}

type UpdateQuotationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateQuotationHTMLRequest struct {
	HTMLContent string `json:"html_content" binding:"required"`
}

type QuotationItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	GSTPercent  string `json:"gst_percent"`
	PriceTier   string `json:"price_tier"`
	Amount      string `json:"amount"`
}

type QuotationResponse struct {
	ID           string                  `json:"id"`
	RefNo        string                  `json:"ref_no"`
	EnquiryID    string                  `json:"enquiry_id,omitempty"`
	Status       string                  `json:"status"`
	PartyName    string                  `json:"party_name"`
	PartyAddress string                  `json:"party_address,omitempty"`
	PartyMobile  string                  `json:"party_mobile,omitempty"`
	PartyEmail   string                  `json:"party_email,omitempty"`
	Items        []QuotationItemResponse `json:"items"`
	Subtotal     string                  `json:"subtotal"`
	ProductTax   string                  `json:"product_tax"`
	Packaging    string                  `json:"packaging"`
	PackagingTax string                  `json:"packaging_tax"`
	Discount     string                  `json:"discount"`
	GrandTotal   string                  `json:"grand_total"`
	Notes        string                  `json:"notes,omitempty"`
	CreatedAt    string                  `json:"created_at"`
}

// TallyExport is the rendered voucher plus the name the file should be saved
// under.
type TallyExport struct {
	FileName string
	XML      string
}

// --- Interface ---

type QuotationService interface {
	BuildWorksheet(ctx context.Context, enquiryID string, session middleware.Session) (WorksheetResponse, error)
	CreateQuotation(ctx context.Context, req CreateQuotationRequest, session middleware.Session) (QuotationResponse, error)
	GetQuotation(ctx context.Context, id string) (QuotationResponse, error)
	GetQuotationHTML(ctx context.Context, id string) (string, error)
	UpdateQuotationHTML(ctx context.Context, id string, htmlContent string) error
	ListQuotations(ctx context.Context, filter repository.QuotationListFilter) ([]QuotationResponse, int64, error)
	UpdateStatus(ctx context.Context, id string, status string, actorID string) (QuotationResponse, error)
	ExportTallyXML(ctx context.Context, id string, actorID string) (TallyExport, error)
}

type quotationService struct {
	repo        repository.QuotationRepository
	enquiryRepo repository.EnquiryRepository
	productRepo repository.ProductRepository
	policyRepo  repository.PolicyRepository
	txManager   repository.TransactionManager
	audit       AuditService
	hub         *websocket.Hub
}

func NewQuotationService(
	repo repository.QuotationRepository,
	enquiryRepo repository.EnquiryRepository,
	productRepo repository.ProductRepository,
	policyRepo repository.PolicyRepository,
	txManager repository.TransactionManager,
	audit AuditService,
	hub *websocket.Hub,
) QuotationService {
	return &quotationService{
		repo:        repo,
		enquiryRepo: enquiryRepo,
		productRepo: productRepo,
		policyRepo:  policyRepo,
		txManager:   txManager,
		audit:       audit,
		hub:         hub,
	}
}

// --- Worksheet ---

// BuildWorksheet turns an enquiry into an editable pricing sheet. Each line
// starts at the product's default selling price with the standard GST rate.
func (s *quotationService) BuildWorksheet(ctx context.Context, enquiryID string, session middleware.Session) (WorksheetResponse, error) {
	id, err := uuid.Parse(enquiryID)
	if err != nil {
		return WorksheetResponse{}, fmt.Errorf("invalid enquiry id: %w", err)
	}
	enquiry, err := s.enquiryRepo.FindByIDWithProducts(ctx, id)
	if err != nil {
		return WorksheetResponse{}, fmt.Errorf("enquiry not found: %w", err)
	}

	showDealer := session.Can(model.CapTradePrices)

	lines := make([]WorksheetLine, 0, len(enquiry.Products))
	for _, item := range enquiry.Products {
		defaultPrice := quotation.DefaultUnitPrice(item.Product.SellingPriceStart, item.Product.SellingPriceEnd)
		line := WorksheetLine{
			ProductID:    item.ProductID.String(),
			Name:         item.Product.Name,
			Image:        item.Product.MainImage(),
			Specs:        []model.SpecPair(item.Product.Details),
			Quantity:     item.Quantity,
			UnitPrice:    defaultPrice.StringFixed(2),
			GSTPercent:   quotation.DefaultGSTPercent.String(),
			PriceTier:    string(quotation.TierSelling),
			DefaultPrice: defaultPrice.StringFixed(2),
		}
		if showDealer {
			line.DealerPrice = item.Product.DealerPrice.StringFixed(2)
		}
		lines = append(lines, line)
	}

	return WorksheetResponse{
		EnquiryID:    enquiry.ID.String(),
		PartyName:    enquiry.Name,
		PartyMobile:  enquiry.Phone,
		PartyEmail:   enquiry.Email,
		Lines:        lines,
		Notes:        quotation.DefaultNotes,
		PreviewRefNo: quotation.PlaceholderRef(time.Now()),
	}, nil
}

// --- Creation ---

// CreateQuotation validates the worksheet, assigns the authoritative
// reference number and renders the final document in one transaction, so a
// stored quotation can never carry a placeholder reference.
func (s *quotationService) CreateQuotation(ctx context.Context, req CreateQuotationRequest, session middleware.Session) (QuotationResponse, error) {
	packaging, err := parsePrice(req.Packaging, "packaging")
	if err != nil {
		return QuotationResponse{}, err
	}
	discount, err := parsePrice(req.Discount, "discount")
	if err != nil {
		return QuotationResponse{}, err
	}

	ws := quotation.Worksheet{Packaging: packaging, Discount: discount}
	products := make([]*model.Product, 0, len(req.Items))

	for i, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return QuotationResponse{}, fmt.Errorf("item %d: invalid product id: %w", i+1, err)
		}
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return QuotationResponse{}, fmt.Errorf("item %d: product not found: %w", i+1, err)
		}

		unitPrice, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return QuotationResponse{}, quotation.FieldError{Index: i, Field: "unit_price", Message: "not a valid amount"}
		}

		gst := quotation.DefaultGSTPercent
		if item.GSTPercent != "" {
			gst, err = decimal.NewFromString(item.GSTPercent)
			if err != nil || gst.IsNegative() {
				return QuotationResponse{}, quotation.FieldError{Index: i, Field: "gst_percent", Message: "not a valid rate"}
			}
		}

		tier := quotation.PriceTier(item.PriceTier)
		if tier == "" {
			tier = quotation.TierSelling
		}
		if tier == quotation.TierDealer && !session.Can(model.CapTradePrices) {
			return QuotationResponse{}, fmt.Errorf("dealer pricing requires the trade-price capability")
		}
		if tier != quotation.TierSelling && tier != quotation.TierDealer {
			return QuotationResponse{}, quotation.FieldError{Index: i, Field: "price_tier", Message: "unknown price tier"}
		}

		ws.Items = append(ws.Items, quotation.LineItem{
			ProductID:  item.ProductID,
			Name:       product.Name,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			GSTPercent: gst,
			Tier:       tier,
		})
		products = append(products, product)
	}

	if err := ws.Validate(); err != nil {
		return QuotationResponse{}, err
	}
	totals := ws.Totals()

	notes := req.Notes
	if notes == "" {
		notes = quotation.DefaultNotes
	}

	policies, err := s.renderPolicies(ctx, session.UserID)
	if err != nil {
		log.Printf("failed to load policies, using defaults: %v", err)
		policies = quotation.DefaultPolicies()
	}

	record := model.Quotation{
		Status:       model.QuotationSent,
		PartyName:    req.PartyName,
		PartyAddress: req.PartyAddress,
		PartyMobile:  req.PartyMobile,
		PartyEmail:   req.PartyEmail,
		Subtotal:     totals.Subtotal,
		ProductTax:   totals.ProductTax,
		Packaging:    packaging,
		PackagingTax: totals.PackagingTax,
		Discount:     discount,
		GrandTotal:   totals.GrandTotal,
		Notes:        notes,
	}
	if req.EnquiryID != "" {
		enquiryID, err := uuid.Parse(req.EnquiryID)
		if err != nil {
			return QuotationResponse{}, fmt.Errorf("invalid enquiry id: %w", err)
		}
		record.EnquiryID = &enquiryID
	}
	if creatorID, err := uuid.Parse(session.UserID); err == nil {
		record.CreatedBy = &creatorID
	}

	for i, line := range ws.Items {
		productID, _ := uuid.Parse(line.ProductID)
		record.Items = append(record.Items, model.QuotationItem{
			ProductID:  productID,
			Position:   i,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			GSTPercent: line.GSTPercent,
			PriceTier:  string(line.Tier),
			Amount:     line.Subtotal(),
		})
	}

	now := time.Now()
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		prefix := fmt.Sprintf("QTN-%s-", now.Format("20060102"))
		count, err := s.repo.CountByRefPrefix(txCtx, prefix)
		if err != nil {
			return fmt.Errorf("failed to derive reference number: %w", err)
		}
		record.RefNo = fmt.Sprintf("%s%05d", prefix, count+1)

		doc := quotation.Document{
			RefNo:        record.RefNo,
			Date:         now,
			PartyName:    req.PartyName,
			PartyAddress: req.PartyAddress,
			PartyMobile:  req.PartyMobile,
			PartyEmail:   req.PartyEmail,
			Totals:       totals,
			Packaging:    packaging,
			Discount:     discount,
			Notes:        notes,
			Policies:     policies,
		}
		for i, line := range ws.Items {
			doc.Items = append(doc.Items, quotation.DocumentItem{
				Name:       line.Name,
				ImageURL:   products[i].MainImage(),
				Specs:      products[i].Details,
				Quantity:   line.Quantity,
				GSTPercent: line.GSTPercent,
				UnitPrice:  line.UnitPrice,
			})
		}
		record.HTMLContent = quotation.RenderHTML(doc)

		if err := s.repo.Create(txCtx, &record); err != nil {
			return fmt.Errorf("failed to create quotation: %w", err)
		}

		if record.EnquiryID != nil {
			if err := s.enquiryRepo.UpdateStatus(txCtx, *record.EnquiryID, model.EnquiryProcessed); err != nil {
				return fmt.Errorf("failed to mark enquiry processed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return QuotationResponse{}, err
	}

	s.audit.Record(ctx, session.UserID, model.ActionCreateQuotation, record.ID.String(), record.RefNo, map[string]string{
		"ref_no":      record.RefNo,
		"party":       record.PartyName,
		"grand_total": record.GrandTotal.StringFixed(2),
	})
	s.hub.Notify(websocket.EventQuotationStatusChanged, map[string]interface{}{
		"id":     record.ID.String(),
		"ref_no": record.RefNo,
		"status": record.Status,
	})

	return toQuotationResponse(record), nil
}

func (s *quotationService) renderPolicies(ctx context.Context, userID string) ([]quotation.Policy, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	stored, err := s.policyRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return quotation.DefaultPolicies(), nil
	}
	policies := make([]quotation.Policy, 0, len(stored))
	for _, p := range stored {
		policies = append(policies, quotation.Policy{
			Code:    p.Code,
			Label:   p.Label,
			Text:    p.Text,
			Enabled: p.Enabled,
		})
	}
	return policies, nil
}

// --- Reads ---

func (s *quotationService) GetQuotation(ctx context.Context, id string) (QuotationResponse, error) {
	quotationID, err := uuid.Parse(id)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("invalid quotation id: %w", err)
	}
	record, err := s.repo.FindByIDWithRelations(ctx, quotationID)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("quotation not found: %w", err)
	}
	return toQuotationResponse(*record), nil
}

func (s *quotationService) GetQuotationHTML(ctx context.Context, id string) (string, error) {
	quotationID, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid quotation id: %w", err)
	}
	record, err := s.repo.FindByID(ctx, quotationID)
	if err != nil {
		return "", fmt.Errorf("quotation not found: %w", err)
	}
	return record.HTMLContent, nil
}

// UpdateQuotationHTML lets a client replace the stored document, kept for
// compatibility with the old submit-then-patch flow. The reference number and
// totals are not recomputed here.
func (s *quotationService) UpdateQuotationHTML(ctx context.Context, id string, htmlContent string) error {
	quotationID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid quotation id: %w", err)
	}
	record, err := s.repo.FindByID(ctx, quotationID)
	if err != nil {
		return fmt.Errorf("quotation not found: %w", err)
	}
	record.HTMLContent = htmlContent
	return s.repo.Update(ctx, record)
}

func (s *quotationService) ListQuotations(ctx context.Context, filter repository.QuotationListFilter) ([]QuotationResponse, int64, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Printf("quotation list query failed, serving demo records: %v", err)
		demo := DemoQuotations()
		return demo, int64(len(demo)), nil
	}

	result := make([]QuotationResponse, 0, len(records))
	for _, q := range records {
		result = append(result, toQuotationResponse(q))
	}
	return result, total, nil
}

// --- Lifecycle ---

func (s *quotationService) UpdateStatus(ctx context.Context, id string, status string, actorID string) (QuotationResponse, error) {
	quotationID, err := uuid.Parse(id)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("invalid quotation id: %w", err)
	}

	var record *model.Quotation
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		record, err = s.repo.FindByID(txCtx, quotationID)
		if err != nil {
			return fmt.Errorf("quotation not found: %w", err)
		}
		if err := model.ValidQuotationTransition(record.Status, status); err != nil {
			return err
		}
		record.Status = status
		return s.repo.Update(txCtx, record)
	})
	if err != nil {
		return QuotationResponse{}, err
	}

	s.audit.Record(ctx, actorID, model.ActionCloseQuotation, record.ID.String(), record.RefNo, map[string]string{
		"status": status,
	})
	s.hub.Notify(websocket.EventQuotationStatusChanged, map[string]interface{}{
		"id":     record.ID.String(),
		"ref_no": record.RefNo,
		"status": status,
	})

	return toQuotationResponse(*record), nil
}

// ExportTallyXML renders the accounting voucher for a completed quotation.
// Only Done quotations export: a voucher for an open or rejected offer would
// book revenue that never happened.
func (s *quotationService) ExportTallyXML(ctx context.Context, id string, actorID string) (TallyExport, error) {
	quotationID, err := uuid.Parse(id)
	if err != nil {
		return TallyExport{}, fmt.Errorf("invalid quotation id: %w", err)
	}
	record, err := s.repo.FindByIDWithRelations(ctx, quotationID)
	if err != nil {
		return TallyExport{}, fmt.Errorf("quotation not found: %w", err)
	}
	if record.Status != model.QuotationDone {
		return TallyExport{}, fmt.Errorf("only completed quotations can be exported, current status is %s", record.Status)
	}

	voucher := buildTallyVoucher(*record)

	number := quotation.VoucherNumber(record.ID.String())
	s.audit.Record(ctx, actorID, model.ActionExportTally, record.ID.String(), record.RefNo, map[string]string{
		"voucher_number": number,
	})

	return TallyExport{
		FileName: fmt.Sprintf("tally-voucher-%s.xml", number),
		XML:      quotation.RenderTallyXML(voucher),
	}, nil
}

// --- Mapping ---

// orderedQuotationItems returns the lines sorted by their worksheet position.
// The repository already orders preloads, but rows written before the
// position column existed all carry zero, so the sort stays stable for them.
func orderedQuotationItems(items []model.QuotationItem) []model.QuotationItem {
	ordered := make([]model.QuotationItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	return ordered
}

func buildTallyVoucher(q model.Quotation) quotation.TallyVoucher {
	voucher := quotation.TallyVoucher{
		QuotationID: q.ID.String(),
		PartyName:   q.PartyName,
		Date:        q.CreatedAt,
		Packaging:   q.Packaging,
		TotalTax:    q.ProductTax.Add(q.PackagingTax),
		GrandTotal:  q.GrandTotal,
	}
	for _, item := range orderedQuotationItems(q.Items) {
		voucher.Items = append(voucher.Items, quotation.TallyItem{
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Rate:        item.UnitPrice,
		})
	}
	return voucher
}

func toQuotationResponse(q model.Quotation) QuotationResponse {
	resp := QuotationResponse{
		ID:           q.ID.String(),
		RefNo:        q.RefNo,
		Status:       q.Status,
		PartyName:    q.PartyName,
		PartyAddress: q.PartyAddress,
		PartyMobile:  q.PartyMobile,
		PartyEmail:   q.PartyEmail,
		Items:        make([]QuotationItemResponse, 0, len(q.Items)),
		Subtotal:     q.Subtotal.StringFixed(2),
		ProductTax:   q.ProductTax.StringFixed(2),
		Packaging:    q.Packaging.StringFixed(2),
		PackagingTax: q.PackagingTax.StringFixed(2),
		Discount:     q.Discount.StringFixed(2),
		GrandTotal:   q.GrandTotal.StringFixed(2),
		Notes:        q.Notes,
		CreatedAt:    q.CreatedAt.Format(time.RFC3339),
	}
	if q.EnquiryID != nil {
		resp.EnquiryID = q.EnquiryID.String()
	}
	for _, item := range orderedQuotationItems(q.Items) {
		resp.Items = append(resp.Items, QuotationItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			GSTPercent:  item.GSTPercent.String(),
			PriceTier:   item.PriceTier,
			Amount:      item.Amount.StringFixed(2),
		})
	}
	return resp
}
