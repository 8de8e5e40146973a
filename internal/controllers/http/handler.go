package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/apperr"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const productListCacheTTL = 10 * time.Second

type Handler struct {
	catalog   *services.CatalogService
	orders    *services.OrderService
	addresses *services.AddressService
	onDemand  *services.OnDemandService
	verifier  infra.AuthVerifier
	rdb       *redis.Client
}

func NewHandler(
	catalog *services.CatalogService,
	orders *services.OrderService,
	addresses *services.AddressService,
	onDemand *services.OnDemandService,
	verifier infra.AuthVerifier,
	rdb *redis.Client,
) *Handler {
	return &Handler{
		catalog:   catalog,
		orders:    orders,
		addresses: addresses,
		onDemand:  onDemand,
		verifier:  verifier,
		rdb:       rdb,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/categories", h.ListCategories)

	auth := r.Group("", AuthRequired(h.verifier))
	auth.POST("/orders", h.PlaceOrder)
	auth.GET("/orders", h.ListMyOrders)
	auth.GET("/orders/:orderId", h.GetOrder)

	auth.GET("/addresses", h.ListAddresses)
	auth.POST("/addresses", h.CreateAddress)
	auth.PUT("/addresses/:id", h.UpdateAddress)
	auth.PATCH("/addresses/:id/default", h.SetDefaultAddress)
	auth.DELETE("/addresses/:id", h.DeleteAddress)

	auth.POST("/on-demand-requests", h.CreateOnDemandRequest)
	auth.GET("/on-demand-requests", h.ListMyOnDemandRequests)

	admin := r.Group("/admin", AuthRequired(h.verifier), AdminOnly())
	admin.GET("/orders", h.AdminListOrders)
	admin.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)
	admin.GET("/on-demand-requests", h.AdminListOnDemandRequests)
	admin.PATCH("/on-demand-requests/:id", h.AdminUpdateOnDemandRequest)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
}

// writeError maps a taxonomy error to its HTTP status; per-line stock issues
// ride along so the client can show exact shortfalls.
func writeError(c *gin.Context, err error) {
	body := gin.H{"error": "internal server error"}
	var e *apperr.Error
	if errors.As(err, &e) {
		body["error"] = e.Message
		if len(e.Issues) > 0 {
			body["issues"] = e.Issues
		}
	}
	c.JSON(apperr.HTTPStatus(err), body)
}

// ==================== catalog ====================

func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}

	cacheKey := fmt.Sprintf("products:list:%s:%s:%d:%d", filter.Category, filter.Search, filter.Page, filter.Limit)
	if h.rdb != nil {
		if b, err := h.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var cached map[string]any
			if json.Unmarshal([]byte(b), &cached) == nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	products, total, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	if limit <= 0 {
		limit = 20
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	resp := gin.H{
		"success":  true,
		"products": products,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	}

	if h.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			h.rdb.Set(context.Background(), cacheKey, data, productListCacheTTL)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

// ==================== orders ====================

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.OrderItem{
			ProductID:    it.ID,
			ProductName:  it.Name,
			ProductPrice: it.Price,
			Quantity:     it.Quantity,
		}
	}

	in := services.PlaceOrderInput{
		UserID: currentIdentity(c).UserID,
		Items:  items,
		Customer: domain.CustomerInfo{
			Name:    req.CustomerInfo.Name,
			Email:   req.CustomerInfo.Email,
			Phone:   req.CustomerInfo.Phone,
			Address: req.CustomerInfo.Address,
			City:    req.CustomerInfo.City,
			Pincode: req.CustomerInfo.Pincode,
		},
		PaymentMethod: req.PaymentMethod,
		Subtotal:      req.Subtotal,
		DeliveryFee:   req.DeliveryFee,
		TotalAmount:   req.TotalAmount,
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"order": gin.H{
			"orderId":     order.OrderRef,
			"id":          order.ID,
			"totalAmount": order.TotalAmount,
			"status":      order.Status,
		},
	})
}

func (h *Handler) ListMyOrders(c *gin.Context) {
	orders, err := h.orders.GetUserOrders(c.Request.Context(), currentIdentity(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("orderId"), currentIdentity(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// ==================== addresses ====================

func (h *Handler) ListAddresses(c *gin.Context) {
	addrs, err := h.addresses.ListAddresses(c.Request.Context(), currentIdentity(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "addresses": addrs})
}

func (h *Handler) CreateAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addr, err := h.addresses.CreateAddress(c.Request.Context(), currentIdentity(c).UserID, addressFromRequest(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Address added successfully", "address": addr})
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addr, err := h.addresses.UpdateAddress(c.Request.Context(), currentIdentity(c).UserID, id, addressFromRequest(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address updated successfully", "address": addr})
}

func (h *Handler) SetDefaultAddress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	addr, err := h.addresses.SetDefaultAddress(c.Request.Context(), currentIdentity(c).UserID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Default address updated", "address": addr})
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := h.addresses.DeleteAddress(c.Request.Context(), currentIdentity(c).UserID, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address deleted successfully"})
}

func addressFromRequest(req AddressRequest) domain.Address {
	return domain.Address{
		Label:       req.Label,
		Name:        req.Name,
		Phone:       req.Phone,
		AddressLine: req.Address,
		City:        req.City,
		Pincode:     req.Pincode,
		IsDefault:   req.IsDefault,
	}
}

// ==================== on-demand requests ====================

func (h *Handler) CreateOnDemandRequest(c *gin.Context) {
	var req OnDemandRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.onDemand.CreateRequest(c.Request.Context(), currentIdentity(c).UserID, domain.OnDemandRequest{
		CustomerName:           req.CustomerName,
		CustomerEmail:          req.CustomerEmail,
		ProductName:            req.ProductName,
		ProductDescription:     req.ProductDescription,
		MobileNumber:           req.MobileNumber,
		Address:                req.Address,
		EstimatedPrice:         req.EstimatedPrice,
		PaymentPreference:      req.PaymentPreference,
		AdditionalRequirements: req.AdditionalRequirements,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "On-demand request submitted successfully. Admin will contact you soon.",
		"request": created,
	})
}

func (h *Handler) ListMyOnDemandRequests(c *gin.Context) {
	reqs, err := h.onDemand.ListUserRequests(c.Request.Context(), currentIdentity(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "requests": reqs})
}

// ==================== admin ====================

func (h *Handler) AdminListOrders(c *gin.Context) {
	orders, err := h.orders.AdminListOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "total": len(orders)})
}

func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.AdminUpdateStatus(c.Request.Context(), id, domain.OrderStatus(req.Status), req.AdminNotes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order updated successfully", "order": order})
}

func (h *Handler) AdminListOnDemandRequests(c *gin.Context) {
	reqs, err := h.onDemand.AdminListRequests(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "requests": reqs})
}

func (h *Handler) AdminUpdateOnDemandRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.onDemand.AdminUpdateStatus(c.Request.Context(), id, domain.RequestStatus(req.Status), req.AdminNotes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Request updated successfully", "request": updated})
}
