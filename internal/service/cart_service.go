package service

import (
	"context"
	"fmt"

	"labquote/internal/model"
	"labquote/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CartLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CartLineResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Image       string `json:"image,omitempty"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
}

// CartResponse is always the complete server-side cart. Every mutation
// returns it so the client replaces local state wholesale instead of patching
// it, which is what keeps two tabs from drifting apart.
type CartResponse struct {
	SessionID string             `json:"session_id"`
	Items     []CartLineResponse `json:"items"`
	Count     int                `json:"count"`
}

// --- Interface ---

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (CartResponse, error)
	AddItem(ctx context.Context, sessionID string, req CartLineRequest) (CartResponse, error)
	UpdateItem(ctx context.Context, sessionID string, itemID string, quantity int) (CartResponse, error)
	RemoveItem(ctx context.Context, sessionID string, itemID string) (CartResponse, error)
	ClearCart(ctx context.Context, sessionID string) (CartResponse, error)
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{repo: repo, productRepo: productRepo}
}

// --- Implementation ---

func (s *cartService) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, fmt.Errorf("session id is required")
	}
	return s.reconcile(ctx, sessionID)
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, req CartLineRequest) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, fmt.Errorf("session id is required")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return CartResponse{}, fmt.Errorf("invalid product id: %w", err)
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return CartResponse{}, fmt.Errorf("product not found: %w", err)
	}

	// Re-adding a product merges into the existing line.
	line, err := s.repo.FindLine(ctx, sessionID, productID)
	if err != nil {
		return CartResponse{}, err
	}
	if line == nil {
		line = &model.CartItem{SessionID: sessionID, ProductID: productID, Quantity: req.Quantity}
	} else {
		line.Quantity += req.Quantity
	}
	if err := s.repo.Upsert(ctx, line); err != nil {
		return CartResponse{}, fmt.Errorf("failed to save cart line: %w", err)
	}

	return s.reconcile(ctx, sessionID)
}

func (s *cartService) UpdateItem(ctx context.Context, sessionID string, itemID string, quantity int) (CartResponse, error) {
	if quantity < 1 {
		return CartResponse{}, fmt.Errorf("quantity must be at least 1")
	}
	lineID, err := uuid.Parse(itemID)
	if err != nil {
		return CartResponse{}, fmt.Errorf("invalid cart item id: %w", err)
	}

	items, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	for i := range items {
		if items[i].ID == lineID {
			items[i].Quantity = quantity
			if err := s.repo.Upsert(ctx, &items[i]); err != nil {
				return CartResponse{}, fmt.Errorf("failed to update cart line: %w", err)
			}
			return s.reconcile(ctx, sessionID)
		}
	}
	return CartResponse{}, fmt.Errorf("cart item not found")
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, itemID string) (CartResponse, error) {
	lineID, err := uuid.Parse(itemID)
	if err != nil {
		return CartResponse{}, fmt.Errorf("invalid cart item id: %w", err)
	}
	if err := s.repo.DeleteLine(ctx, sessionID, lineID); err != nil {
		return CartResponse{}, fmt.Errorf("failed to remove cart line: %w", err)
	}
	return s.reconcile(ctx, sessionID)
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if err := s.repo.ClearSession(ctx, sessionID); err != nil {
		return CartResponse{}, fmt.Errorf("failed to clear cart: %w", err)
	}
	return s.reconcile(ctx, sessionID)
}

func (s *cartService) reconcile(ctx context.Context, sessionID string) (CartResponse, error) {
	items, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return CartResponse{}, fmt.Errorf("failed to read cart: %w", err)
	}

	resp := CartResponse{SessionID: sessionID, Items: make([]CartLineResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, CartLineResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.Product.Name,
			Image:       item.Product.MainImage(),
			Price:       item.Product.SellingPriceEnd.StringFixed(2),
			Quantity:    item.Quantity,
		})
		resp.Count += item.Quantity
	}
	return resp, nil
}
