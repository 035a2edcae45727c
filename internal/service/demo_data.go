package service

import "labquote/internal/model"

// Demo records served when the database is unreachable, so the public pages
// and the admin screens still render a believable storefront during setup or
// an outage. IDs are fixed so repeated fallback responses stay stable.

func DemoProducts() []ProductResponse {
	return []ProductResponse{
		{
			ID:          "00000000-0000-0000-0000-000000000d01",
			Name:        "Digital pH Meter",
			Description: "Benchtop pH meter with automatic temperature compensation.",
			Vendor:      "Systronics",
			Images:      []string{"https://via.placeholder.com/300?text=pH+Meter"},
			Details: []model.SpecPair{
				{Key: "Range", Value: "0 to 14 pH"},
				{Key: "Resolution", Value: "0.01 pH"},
				{Key: "Display", Value: "LED"},
			},
			SellingPriceStart: "4500.00",
			SellingPriceEnd:   "6500.00",
			CreatedAt:         "2024-01-10T09:00:00Z",
		},
		{
			ID:          "00000000-0000-0000-0000-000000000d02",
			Name:        "Vertical Autoclave",
			Description: "Stainless steel vertical autoclave for sterilization, 50 litre.",
			Vendor:      "Equitron",
			Images:      []string{"https://via.placeholder.com/300?text=Autoclave"},
			Details: []model.SpecPair{
				{Key: "Capacity", Value: "50 L"},
				{Key: "Pressure", Value: "15 to 20 psi"},
				{Key: "Material", Value: "SS 304"},
			},
			SellingPriceStart: "28000.00",
			SellingPriceEnd:   "35000.00",
			CreatedAt:         "2024-01-12T09:00:00Z",
		},
		{
			ID:          "00000000-0000-0000-0000-000000000d03",
			Name:        "Hot Air Oven",
			Description: "Laboratory hot air oven with digital temperature controller.",
			Vendor:      "REMI",
			Images:      []string{"https://via.placeholder.com/300?text=Hot+Air+Oven"},
			Details: []model.SpecPair{
				{Key: "Temperature", Value: "50 to 250 C"},
				{Key: "Chamber", Value: "455 x 455 x 455 mm"},
			},
			SellingPriceStart: "15000.00",
			SellingPriceEnd:   "19500.00",
			CreatedAt:         "2024-01-15T09:00:00Z",
		},
	}
}

func DemoEnquiries() []EnquiryResponse {
	return []EnquiryResponse{
		{
			ID:     "00000000-0000-0000-0000-000000000e01",
			Name:   "Mehta Scientific Traders",
			Email:  "purchase@mehtascientific.example",
			Phone:  "+91 9825012345",
			Type:   "enquiry",
			Status: model.EnquiryPending,
			Products: []EnquiryItemResponse{
				{ProductID: "00000000-0000-0000-0000-000000000d01", ProductName: "Digital pH Meter", Quantity: 2},
				{ProductID: "00000000-0000-0000-0000-000000000d03", ProductName: "Hot Air Oven", Quantity: 1},
			},
			CreatedAt: "2024-02-01T11:30:00Z",
		},
		{
			ID:      "00000000-0000-0000-0000-000000000e02",
			Name:    "Saurashtra College Lab",
			Phone:   "+91 9925054321",
			Message: "Need installation support at Rajkot.",
			Type:    "enquiry",
			Status:  model.EnquiryProcessed,
			IsSeen:  true,
			Products: []EnquiryItemResponse{
				{ProductID: "00000000-0000-0000-0000-000000000d02", ProductName: "Vertical Autoclave", Quantity: 1},
			},
			CreatedAt: "2024-01-28T16:05:00Z",
		},
	}
}

func DemoQuotations() []QuotationResponse {
	return []QuotationResponse{
		{
			ID:        "00000000-0000-0000-0000-0000000000f1",
			RefNo:     "QTN-20240129-00001",
			EnquiryID: "00000000-0000-0000-0000-000000000e02",
			Status:    model.QuotationDone,
			PartyName: "Saurashtra College Lab",
			Items: []QuotationItemResponse{
				{
					ProductID:   "00000000-0000-0000-0000-000000000d02",
					ProductName: "Vertical Autoclave",
					Quantity:    1,
					UnitPrice:   "32000.00",
					GSTPercent:  "18",
					PriceTier:   "selling",
					Amount:      "32000.00",
				},
			},
			Subtotal:     "32000.00",
			ProductTax:   "5760.00",
			Packaging:    "500.00",
			PackagingTax: "90.00",
			Discount:     "350.00",
			GrandTotal:   "38000.00",
			CreatedAt:    "2024-01-29T10:00:00Z",
		},
		{
			ID:        "00000000-0000-0000-0000-0000000000f2",
			RefNo:     "QTN-20240202-00001",
			Status:    model.QuotationSent,
			PartyName: "Mehta Scientific Traders",
			Items: []QuotationItemResponse{
				{
					ProductID:   "00000000-0000-0000-0000-000000000d01",
					ProductName: "Digital pH Meter",
					Quantity:    2,
					UnitPrice:   "6500.00",
					GSTPercent:  "18",
					PriceTier:   "selling",
					Amount:      "13000.00",
				},
			},
			Subtotal:     "13000.00",
			ProductTax:   "2340.00",
			Packaging:    "0.00",
			PackagingTax: "0.00",
			Discount:     "0.00",
			GrandTotal:   "15340.00",
			CreatedAt:    "2024-02-02T12:45:00Z",
		},
	}
}
