package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"challanmart/internal/caching"
	"challanmart/internal/common"
	"challanmart/internal/models"
	"challanmart/internal/repositories"

	"github.com/google/uuid"
)

// OrderServiceInterface defines the order pipeline: validate, compute,
// number, persist, and later fetch or render.
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByDCNo(ctx context.Context, dcNo int64) (*models.Order, error)
	ListOrders(ctx context.Context, page, limit int) (*models.OrderListResponse, error)
	RenderChallan(ctx context.Context, dcNo int64) ([]byte, error)
}

type orderService struct {
	orderRepo repositories.OrderRepository
	taxCalc   *TaxCalculator
	renderer  ChallanRenderer
	cacheSvc  caching.CacheService
}

const orderCacheTTL = 10 * time.Minute

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repositories.OrderRepository, taxCalc *TaxCalculator, renderer ChallanRenderer, cacheSvc caching.CacheService) OrderServiceInterface {
	return &orderService{
		orderRepo: orderRepo,
		taxCalc:   taxCalc,
		renderer:  renderer,
		cacheSvc:  cacheSvc,
	}
}

// CreateOrder runs the creation pipeline: explicit field validation,
// per-item amount derivation, total and tax aggregation, then a single
// transactional persist that also allocates dc_no, invoice_no and
// party_dc_no. Nothing partial is ever stored.
func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	order, err := s.composeOrder(req)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, &common.PersistenceError{Err: err}
	}

	if err := s.cacheSvc.SetOrder(ctx, order, orderCacheTTL); err != nil {
		log.Printf("WARN: failed to cache order %d: %v", order.DCNo, err)
	}

	return order, nil
}

// composeOrder is the one canonical construction step: the record it
// returns is both what gets validated and what gets persisted.
func (s *orderService) composeOrder(req *models.CreateOrderRequest) (*models.Order, error) {
	required := []struct {
		field string
		value string
	}{
		{"to", req.To},
		{"e_way_no", req.EWayNo},
		{"party_gstin", req.PartyGSTIN},
		{"hsn_code", req.HSNCode},
		{"product_description", req.ProductDescription},
		{"vehicle_no", req.VehicleNo},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, common.NewValidationError(f.field)
		}
	}

	if err := common.ValidateGSTIN(req.PartyGSTIN, "party_gstin"); err != nil {
		return nil, err
	}

	if len(req.Items) == 0 {
		return nil, common.NewValidationError("items")
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].quantity", i))
		}
		if item.Rate <= 0 {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].rate", i))
		}
	}

	// total_weight is required; handling_charges may legitimately be zero.
	if req.TotalWeight <= 0 {
		return nil, common.NewValidationError("total_weight")
	}
	if req.HandlingCharges < 0 {
		return nil, fmt.Errorf("handling_charges cannot be negative")
	}

	date, err := common.ParseDate(req.Date, "date")
	if err != nil {
		return nil, err
	}
	partyDCDate, err := common.ParseDate(req.PartyDCDate, "party_dc_date")
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, len(req.Items))
	netTotal := 0.0
	for i, item := range req.Items {
		amount := RoundPaise(item.Quantity * item.Rate)
		items[i] = models.OrderItem{
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Amount:   amount,
		}
		netTotal = RoundPaise(netTotal + amount)
	}

	cgst, sgst, err := s.taxCalc.Split(netTotal)
	if err != nil {
		return nil, err
	}
	grossTotal := RoundPaise(netTotal + cgst + sgst)

	return &models.Order{
		ID:                 uuid.New(),
		To:                 req.To,
		EWayNo:             req.EWayNo,
		PartyGSTIN:         req.PartyGSTIN,
		HSNCode:            req.HSNCode,
		ProductDescription: req.ProductDescription,
		VehicleNo:          req.VehicleNo,
		Items:              items,
		HandlingCharges:    req.HandlingCharges,
		NetTotal:           netTotal,
		CGST:               cgst,
		SGST:               sgst,
		GrossTotal:         grossTotal,
		TotalWeight:        req.TotalWeight,
		Date:               date,
		PartyDCDate:        partyDCDate,
	}, nil
}

// GetOrderByDCNo fetches an order, reading through the cache.
func (s *orderService) GetOrderByDCNo(ctx context.Context, dcNo int64) (*models.Order, error) {
	cached, err := s.cacheSvc.GetOrder(ctx, dcNo)
	if err != nil {
		log.Printf("WARN: cache read failed for order %d: %v", dcNo, err)
	}
	if cached != nil {
		return cached, nil
	}

	order, err := s.orderRepo.GetByDCNo(ctx, dcNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, common.ErrOrderNotFound
	}

	if err := s.cacheSvc.SetOrder(ctx, order, orderCacheTTL); err != nil {
		log.Printf("WARN: failed to cache order %d: %v", dcNo, err)
	}

	return order, nil
}

// ListOrders returns one page of orders in insertion order. The page
// window is pushed down to the store.
func (s *orderService) ListOrders(ctx context.Context, page, limit int) (*models.OrderListResponse, error) {
	offset := (page - 1) * limit

	orders, err := s.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*models.Order{}
	}

	total, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit

	return &models.OrderListResponse{
		Page:       page,
		Total:      total,
		TotalPages: totalPages,
		Orders:     orders,
	}, nil
}

// RenderChallan fetches a stored order and renders it. The renderer is
// never invoked when the order does not exist.
func (s *orderService) RenderChallan(ctx context.Context, dcNo int64) ([]byte, error) {
	order, err := s.GetOrderByDCNo(ctx, dcNo)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(order)
}
