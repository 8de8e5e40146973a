package services

import (
	"storefront-service/internal/domain"
)

func validPlacementInput(userID uint64) PlaceOrderInput {
	return PlaceOrderInput{
		UserID: userID,
		Items: []domain.OrderItem{
			{ProductID: 7, ProductName: "Fresh Milk", ProductPrice: 40, Quantity: 2},
		},
		Customer: domain.CustomerInfo{
			Name:    "Asha Kumari",
			Email:   "asha@example.com",
			Phone:   "9876543210",
			Address: "12 Gandhi Maidan Road",
			City:    "Patna",
			Pincode: "800001",
		},
		PaymentMethod: "cod",
		Subtotal:      80,
		DeliveryFee:   20,
		TotalAmount:   100,
	}
}

func validAddress() domain.Address {
	return domain.Address{
		Label:       "Home",
		Name:        "Asha Kumari",
		Phone:       "9876543210",
		AddressLine: "12 Gandhi Maidan Road",
		City:        "Patna",
		Pincode:     "800001",
	}
}

func validOnDemandRequest() domain.OnDemandRequest {
	return domain.OnDemandRequest{
		CustomerName:      "Asha Kumari",
		ProductName:       "Sattu Flour 5kg",
		MobileNumber:      "9876543210",
		Address:           "12 Gandhi Maidan Road, Patna",
		PaymentPreference: "cod",
	}
}
