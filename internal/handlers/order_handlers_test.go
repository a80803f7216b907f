package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"challanmart/internal/common"
	"challanmart/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderByDCNo(ctx context.Context, dcNo int64) (*models.Order, error) {
	args := m.Called(ctx, dcNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, page, limit int) (*models.OrderListResponse, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderListResponse), args.Error(1)
}

func (m *MockOrderService) RenderChallan(ctx context.Context, dcNo int64) ([]byte, error) {
	args := m.Called(ctx, dcNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadDocument(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

type OrderHandlersTestSuite struct {
	suite.Suite
	mockService *MockOrderService
	mockMinio   *MockMinioService
	handlers    *OrderHandlers
	echo        *echo.Echo
}

func (suite *OrderHandlersTestSuite) SetupTest() {
	suite.mockService = &MockOrderService{}
	suite.mockMinio = &MockMinioService{}
	suite.handlers = NewOrderHandlers(suite.mockService, suite.mockMinio, "challans")
	suite.echo = echo.New()

	suite.mockService.Test(suite.T())
	suite.mockMinio.Test(suite.T())
}

func (suite *OrderHandlersTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
	suite.mockMinio.AssertExpectations(suite.T())
}

func TestOrderHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlersTestSuite))
}

const createOrderBody = `{
	"to": "Sharma Industries, Bhosari",
	"e_way_no": "181000000042",
	"party_gstin": "27AABCS1234E1ZP",
	"hsn_code": "7308",
	"product_description": "MS fabricated brackets",
	"vehicle_no": "MH12AB1234",
	"items": [{"quantity": 2, "rate": 150}],
	"handling_charges": 50,
	"total_weight": 120.5,
	"date": "2026-03-15",
	"party_dc_date": "2026-03-14"
}`

func (suite *OrderHandlersTestSuite) TestCreateOrder_Success() {
	created := &models.Order{DCNo: 7, InvoiceNo: 7, PartyDCNo: 7, To: "Sharma Industries, Bhosari"}
	suite.mockService.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.CreateOrderRequest")).Return(created, nil)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(createOrderBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.CreateOrder(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	var got models.Order
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(suite.T(), int64(7), got.DCNo)
}

func (suite *OrderHandlersTestSuite) TestCreateOrder_MissingField() {
	suite.mockService.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.CreateOrderRequest")).
		Return(nil, common.NewValidationError("to"))

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"e_way_no": "181000000042"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.CreateOrder(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.JSONEq(suite.T(), `{"message": "to is required"}`, rec.Body.String())
}

func (suite *OrderHandlersTestSuite) TestCreateOrder_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{not json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.CreateOrder(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateOrder", mock.Anything, mock.Anything)
}

func (suite *OrderHandlersTestSuite) TestGetOrders_DefaultPagination() {
	resp := &models.OrderListResponse{Page: 1, Total: 0, TotalPages: 0, Orders: []*models.Order{}}
	suite.mockService.On("ListOrders", mock.Anything, 1, 10).Return(resp, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.GetOrders(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.JSONEq(suite.T(), `{"page": 1, "total": 0, "totalPages": 0, "orders": []}`, rec.Body.String())
}

func (suite *OrderHandlersTestSuite) TestGetOrders_ExplicitPagination() {
	resp := &models.OrderListResponse{Page: 2, Total: 25, TotalPages: 5, Orders: []*models.Order{}}
	suite.mockService.On("ListOrders", mock.Anything, 2, 5).Return(resp, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders?page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.GetOrders(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *OrderHandlersTestSuite) TestGetOrders_NonNumericParamsFallBack() {
	resp := &models.OrderListResponse{Page: 1, Total: 0, TotalPages: 0, Orders: []*models.Order{}}
	suite.mockService.On("ListOrders", mock.Anything, 1, 10).Return(resp, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders?page=abc&limit=-3", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.GetOrders(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *OrderHandlersTestSuite) TestGetOrder_Success() {
	stored := &models.Order{DCNo: 42, To: "Sharma Industries"}
	suite.mockService.On("GetOrderByDCNo", mock.Anything, int64(42)).Return(stored, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("dc_no")
	c.SetParamValues("42")

	err := suite.handlers.GetOrder(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *OrderHandlersTestSuite) TestGetOrder_NonNumericDCNo() {
	req := httptest.NewRequest(http.MethodGet, "/orders/abc", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("dc_no")
	c.SetParamValues("abc")

	err := suite.handlers.GetOrder(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.JSONEq(suite.T(), `{"message": "Invalid dc_no received"}`, rec.Body.String())
	suite.mockService.AssertNotCalled(suite.T(), "GetOrderByDCNo", mock.Anything, mock.Anything)
}

func (suite *OrderHandlersTestSuite) TestGetOrder_NotFound() {
	suite.mockService.On("GetOrderByDCNo", mock.Anything, int64(99)).Return(nil, common.ErrOrderNotFound)

	req := httptest.NewRequest(http.MethodGet, "/orders/99", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("dc_no")
	c.SetParamValues("99")

	err := suite.handlers.GetOrder(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.JSONEq(suite.T(), `{"message": "Invalid dc_no received"}`, rec.Body.String())
}

func (suite *OrderHandlersTestSuite) TestGeneratePDF_Success() {
	pdfBytes := []byte("%PDF-1.3 rendered challan")
	suite.mockService.On("RenderChallan", mock.Anything, int64(42)).Return(pdfBytes, nil)

	req := httptest.NewRequest(http.MethodGet, "/pdf/42", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("dc_no")
	c.SetParamValues("42")

	err := suite.handlers.GeneratePDF(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(suite.T(), `attachment; filename="order.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(suite.T(), pdfBytes, rec.Body.Bytes())
}

func (suite *OrderHandlersTestSuite) TestGeneratePDF_NotFound() {
	suite.mockService.On("RenderChallan", mock.Anything, int64(99)).Return(nil, common.ErrOrderNotFound)

	req := httptest.NewRequest(http.MethodGet, "/pdf/99", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("dc_no")
	c.SetParamValues("99")

	err := suite.handlers.GeneratePDF(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.JSONEq(suite.T(), `{"message": "Invalid dc_no received"}`, rec.Body.String())
}

func (suite *OrderHandlersTestSuite) TestGeneratePDF_RenderFailure() {
	suite.mockService.On("RenderChallan", mock.Anything, int64(42)).
		Return(nil, &common.RenderError{Err: errors.New("layout overflow")})

	req := httptest.NewRequest(http.MethodGet, "/pdf/42", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("dc_no")
	c.SetParamValues("42")

	err := suite.handlers.GeneratePDF(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusInternalServerError, rec.Code)
	assert.JSONEq(suite.T(), `{"error": "Failed to generate PDF"}`, rec.Body.String())
}

func (suite *OrderHandlersTestSuite) TestGetArchiveURL_Success() {
	archivedAt := time.Date(2026, 3, 16, 2, 0, 0, 0, time.UTC)
	stored := &models.Order{DCNo: 42, ArchivedAt: &archivedAt}

	suite.mockService.On("GetOrderByDCNo", mock.Anything, int64(42)).Return(stored, nil)
	suite.mockMinio.On("GetPresignedURL", mock.Anything, "challans", "dc-42.pdf", archiveURLExpiry).
		Return("https://minio.local/challans/dc-42.pdf?sig=abc", nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/42/archive-url", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("dc_no")
	c.SetParamValues("42")

	err := suite.handlers.GetArchiveURL(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.JSONEq(suite.T(), `{"url": "https://minio.local/challans/dc-42.pdf?sig=abc"}`, rec.Body.String())
}

func (suite *OrderHandlersTestSuite) TestGetArchiveURL_NotArchivedYet() {
	stored := &models.Order{DCNo: 42}

	suite.mockService.On("GetOrderByDCNo", mock.Anything, int64(42)).Return(stored, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/42/archive-url", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("dc_no")
	c.SetParamValues("42")

	err := suite.handlers.GetArchiveURL(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.JSONEq(suite.T(), `{"message": "Challan not archived yet"}`, rec.Body.String())
	suite.mockMinio.AssertNotCalled(suite.T(), "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderHandlersTestSuite) TestGetArchiveURL_UnknownOrder() {
	suite.mockService.On("GetOrderByDCNo", mock.Anything, int64(99)).Return(nil, common.ErrOrderNotFound)

	req := httptest.NewRequest(http.MethodGet, "/orders/99/archive-url", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("dc_no")
	c.SetParamValues("99")

	err := suite.handlers.GetArchiveURL(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.JSONEq(suite.T(), `{"message": "Invalid dc_no received"}`, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health-check", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandlers(nil, nil)
	err := h.HealthCheck(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "OK"}`, rec.Body.String())
}
