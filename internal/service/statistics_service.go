package service

import (
	"context"
	"fmt"

	"labquote/internal/model"
	"labquote/internal/repository"
)

// DashboardResponse is the admin landing-page summary.
type DashboardResponse struct {
	TotalProducts     int64  `json:"total_products"`
	TotalEnquiries    int64  `json:"total_enquiries"`
	PendingEnquiries  int64  `json:"pending_enquiries"`
	TotalQuotations   int64  `json:"total_quotations"`
	SentQuotations    int64  `json:"sent_quotations"`
	DoneQuotations    int64  `json:"done_quotations"`
	RejectQuotations  int64  `json:"reject_quotations"`
	TotalQuotedValue  string `json:"total_quoted_value"`
	ClosedQuotedValue string `json:"closed_quoted_value"`
}

type StatisticsService interface {
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}

type statisticsService struct {
	productRepo   repository.ProductRepository
	enquiryRepo   repository.EnquiryRepository
	quotationRepo repository.QuotationRepository
}

func NewStatisticsService(
	productRepo repository.ProductRepository,
	enquiryRepo repository.EnquiryRepository,
	quotationRepo repository.QuotationRepository,
) StatisticsService {
	return &statisticsService{
		productRepo:   productRepo,
		enquiryRepo:   enquiryRepo,
		quotationRepo: quotationRepo,
	}
}

func (s *statisticsService) GetDashboard(ctx context.Context) (DashboardResponse, error) {
	var resp DashboardResponse
	var err error

	if resp.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return resp, fmt.Errorf("failed to count products: %w", err)
	}
	if resp.TotalEnquiries, err = s.enquiryRepo.CountByStatus(ctx, ""); err != nil {
		return resp, fmt.Errorf("failed to count enquiries: %w", err)
	}
	if resp.PendingEnquiries, err = s.enquiryRepo.CountByStatus(ctx, model.EnquiryPending); err != nil {
		return resp, fmt.Errorf("failed to count pending enquiries: %w", err)
	}
	if resp.TotalQuotations, err = s.quotationRepo.CountByStatus(ctx, ""); err != nil {
		return resp, fmt.Errorf("failed to count quotations: %w", err)
	}
	if resp.SentQuotations, err = s.quotationRepo.CountByStatus(ctx, model.QuotationSent); err != nil {
		return resp, fmt.Errorf("failed to count sent quotations: %w", err)
	}
	if resp.DoneQuotations, err = s.quotationRepo.CountByStatus(ctx, model.QuotationDone); err != nil {
		return resp, fmt.Errorf("failed to count done quotations: %w", err)
	}
	if resp.RejectQuotations, err = s.quotationRepo.CountByStatus(ctx, model.QuotationReject); err != nil {
		return resp, fmt.Errorf("failed to count rejected quotations: %w", err)
	}

	if resp.TotalQuotedValue, err = s.quotationRepo.SumGrandTotal(ctx, ""); err != nil {
		return resp, fmt.Errorf("failed to sum quoted value: %w", err)
	}
	if resp.ClosedQuotedValue, err = s.quotationRepo.SumGrandTotal(ctx, model.QuotationDone); err != nil {
		return resp, fmt.Errorf("failed to sum closed quoted value: %w", err)
	}

	return resp, nil
}
