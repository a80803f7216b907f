package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a single line on a delivery challan. Amount is always
// derived as Quantity * Rate during aggregation, never taken from input.
type OrderItem struct {
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// Order is a combined delivery challan and tax invoice. DCNo is the
// business key; InvoiceNo and PartyDCNo always carry the same value.
type Order struct {
	ID                 uuid.UUID   `json:"id" db:"id"`
	DCNo               int64       `json:"dc_no" db:"dc_no"`
	InvoiceNo          int64       `json:"invoice_no" db:"invoice_no"`
	PartyDCNo          int64       `json:"party_dc_no" db:"party_dc_no"`
	To                 string      `json:"to" db:"consignee"`
	EWayNo             string      `json:"e_way_no" db:"e_way_no"`
	PartyGSTIN         string      `json:"party_gstin" db:"party_gstin"`
	HSNCode            string      `json:"hsn_code" db:"hsn_code"`
	ProductDescription string      `json:"product_description" db:"product_description"`
	VehicleNo          string      `json:"vehicle_no" db:"vehicle_no"`
	Items              []OrderItem `json:"items" db:"items"`
	HandlingCharges    float64     `json:"handling_charges" db:"handling_charges"`
	NetTotal           float64     `json:"net_total" db:"net_total"`
	CGST               float64     `json:"cgst" db:"cgst"`
	SGST               float64     `json:"sgst" db:"sgst"`
	GrossTotal         float64     `json:"gross_total" db:"gross_total"`
	TotalWeight        float64     `json:"total_weight" db:"total_weight"`
	Date               time.Time   `json:"date" db:"challan_date"`
	PartyDCDate        time.Time   `json:"party_dc_date" db:"party_dc_date"`
	ArchivedAt         *time.Time  `json:"archived_at,omitempty" db:"archived_at"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItemInput is a raw line from the create request before the amount
// is derived.
type OrderItemInput struct {
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// CreateOrderRequest carries the order fields a client submits. Derived
// fields (amounts, totals, taxes, document numbers) are computed server
// side. Dates arrive as YYYY-MM-DD strings.
type CreateOrderRequest struct {
	To                 string           `json:"to"`
	EWayNo             string           `json:"e_way_no"`
	PartyGSTIN         string           `json:"party_gstin"`
	HSNCode            string           `json:"hsn_code"`
	ProductDescription string           `json:"product_description"`
	VehicleNo          string           `json:"vehicle_no"`
	Items              []OrderItemInput `json:"items"`
	HandlingCharges    float64          `json:"handling_charges"`
	TotalWeight        float64          `json:"total_weight"`
	Date               string           `json:"date"`
	PartyDCDate        string           `json:"party_dc_date"`
}

// OrderListResponse is the paginated listing envelope.
type OrderListResponse struct {
	Page       int      `json:"page"`
	Total      int      `json:"total"`
	TotalPages int      `json:"totalPages"`
	Orders     []*Order `json:"orders"`
}
