package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"challanmart/internal/common"
	"challanmart/internal/models"
	"challanmart/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders and rendered challans.
type OrderHandlers struct {
	orderService services.OrderServiceInterface
	minioSvc     services.MinioService
	bucket       string
}

// NewOrderHandlers creates a new order handlers instance.
func NewOrderHandlers(orderService services.OrderServiceInterface, minioSvc services.MinioService, bucket string) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
		minioSvc:     minioSvc,
		bucket:       bucket,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		var perr *common.PersistenceError
		if errors.As(err, &perr) {
			log.Printf("ERROR: order creation failed in store: %v", perr.Err)
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrders handles GET /orders?page=&limit=
func (h *OrderHandlers) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()

	page := common.ParsePageParam(c.QueryParam("page"), 1)
	limit := common.ParsePageParam(c.QueryParam("limit"), 10)

	resp, err := h.orderService.ListOrders(ctx, page, limit)
	if err != nil {
		return common.SendServerError(c, "Failed to retrieve orders: "+err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /orders/:dc_no
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	dcNo, err := strconv.ParseInt(c.Param("dc_no"), 10, 64)
	if err != nil {
		return common.SendClientError(c, "Invalid dc_no received")
	}

	order, err := h.orderService.GetOrderByDCNo(ctx, dcNo)
	if err != nil {
		if errors.Is(err, common.ErrOrderNotFound) {
			return common.SendClientError(c, "Invalid dc_no received")
		}
		return common.SendServerError(c, "Failed to retrieve order: "+err.Error())
	}

	return c.JSON(http.StatusOK, order)
}

// GeneratePDF handles GET /pdf/:dc_no
func (h *OrderHandlers) GeneratePDF(c echo.Context) error {
	ctx := c.Request().Context()

	dcNo, err := strconv.ParseInt(c.Param("dc_no"), 10, 64)
	if err != nil {
		return common.SendClientError(c, "Invalid dc_no received")
	}

	pdfBytes, err := h.orderService.RenderChallan(ctx, dcNo)
	if err != nil {
		if errors.Is(err, common.ErrOrderNotFound) {
			return common.SendClientError(c, "Invalid dc_no received")
		}
		log.Printf("ERROR: failed to render challan %d: %v", dcNo, err)
		return common.SendServerError(c, "Failed to generate PDF")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="order.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

const archiveURLExpiry = 15 * time.Minute

// GetArchiveURL handles GET /orders/:dc_no/archive-url. It returns a
// presigned link to the archived copy in object storage, available once
// the background sweep has uploaded it.
func (h *OrderHandlers) GetArchiveURL(c echo.Context) error {
	ctx := c.Request().Context()

	dcNo, err := strconv.ParseInt(c.Param("dc_no"), 10, 64)
	if err != nil {
		return common.SendClientError(c, "Invalid dc_no received")
	}

	order, err := h.orderService.GetOrderByDCNo(ctx, dcNo)
	if err != nil {
		if errors.Is(err, common.ErrOrderNotFound) {
			return common.SendClientError(c, "Invalid dc_no received")
		}
		return common.SendServerError(c, "Failed to retrieve order: "+err.Error())
	}
	if order.ArchivedAt == nil {
		return common.SendClientError(c, "Challan not archived yet")
	}

	url, err := h.minioSvc.GetPresignedURL(ctx, h.bucket, fmt.Sprintf("dc-%d.pdf", dcNo), archiveURLExpiry)
	if err != nil {
		log.Printf("ERROR: failed to presign archive URL for challan %d: %v", dcNo, err)
		return common.SendServerError(c, "Failed to generate archive URL")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
