package http

type OrderItemRequest struct {
	ID       uint64  `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Quantity int64   `json:"quantity" binding:"required,gt=0"`
}

type CustomerInfoRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required,numeric,len=10"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	Pincode string `json:"pincode" binding:"required,numeric,len=6"`
}

type PlaceOrderRequest struct {
	Items         []OrderItemRequest  `json:"items" binding:"required,min=1,dive"`
	CustomerInfo  CustomerInfoRequest `json:"customerInfo" binding:"required"`
	PaymentMethod string              `json:"paymentMethod" binding:"required"`
	TotalAmount   float64             `json:"totalAmount" binding:"required,gt=0"`
	Subtotal      float64             `json:"subtotal" binding:"required,gt=0"`
	DeliveryFee   float64             `json:"deliveryFee" binding:"gte=0"`
}

type AddressRequest struct {
	Label     string `json:"label"`
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required,numeric,len=10"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	Pincode   string `json:"pincode" binding:"required,numeric,len=6"`
	IsDefault bool   `json:"is_default"`
}

type OnDemandRequestBody struct {
	CustomerName           string  `json:"customerName"`
	CustomerEmail          string  `json:"customerEmail"`
	ProductName            string  `json:"productName" binding:"required"`
	ProductDescription     string  `json:"productDescription"`
	MobileNumber           string  `json:"mobileNumber" binding:"required"`
	Address                string  `json:"address" binding:"required"`
	EstimatedPrice         float64 `json:"estimatedPrice" binding:"gte=0"`
	PaymentPreference      string  `json:"paymentPreference" binding:"required"`
	AdditionalRequirements string  `json:"additionalRequirements"`
}

type UpdateOrderStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"adminNotes"`
}

type UpdateRequestStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"adminNotes"`
}
