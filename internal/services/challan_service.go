package services

import (
	"bytes"
	"fmt"

	"challanmart/internal/common"
	"challanmart/internal/config"
	"challanmart/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// ChallanRenderer lays out a stored order as a printable delivery
// challan / tax invoice. It knows nothing about storage or HTTP.
type ChallanRenderer interface {
	Render(order *models.Order) ([]byte, error)
}

type challanRenderer struct {
	company  config.CompanyProfile
	cgstRate float64
	sgstRate float64
}

// Item table capacity. The first page carries the document header, so it
// holds fewer rows than continuation pages.
const (
	firstPageRows = 20
	contPageRows  = 34
)

func NewChallanRenderer(company config.CompanyProfile, cgstRate, sgstRate float64) ChallanRenderer {
	return &challanRenderer{company: company, cgstRate: cgstRate, sgstRate: sgstRate}
}

var itemColWidths = []float64{16, 50, 54, 66}

// Render produces the complete PDF as a byte buffer. Output is
// deterministic for a given order: the PDF creation date is pinned to the
// challan date.
func (r *challanRenderer) Render(order *models.Order) ([]byte, error) {
	if order == nil {
		return nil, &common.RenderError{Err: fmt.Errorf("nil order")}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(order.Date)
	pdf.SetModificationDate(order.Date)
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(false, 12)
	pdf.AddPage()

	r.documentHeader(pdf, order)
	r.itemTableHeader(pdf)

	running := 0.0
	rowsLeft := firstPageRows
	for i, item := range order.Items {
		if rowsLeft == 0 {
			r.carriedForward(pdf, running)
			pdf.AddPage()
			r.itemTableHeader(pdf)
			r.broughtForward(pdf, running)
			rowsLeft = contPageRows - 1
		}
		r.itemRow(pdf, i+1, item)
		running += item.Amount
		rowsLeft--
	}

	// Summary and signatures need roughly ten row heights.
	if rowsLeft < 10 {
		r.carriedForward(pdf, running)
		pdf.AddPage()
		r.itemTableHeader(pdf)
		r.broughtForward(pdf, running)
	}

	r.summaryBlock(pdf, order)
	r.signatureFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &common.RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

func (r *challanRenderer) documentHeader(pdf *gofpdf.Fpdf, order *models.Order) {
	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont("Arial", "B", 15)
	pdf.CellFormat(0, 8, r.company.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, r.company.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("GSTIN: %s | State: %s | Ph: %s", r.company.GSTIN, r.company.State, r.company.Phone), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "DELIVERY CHALLAN / TAX INVOICE", "TB", 1, "C", false, 0, "")
	pdf.Ln(2)

	half := 93.0
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(half, 6, fmt.Sprintf("D.C. No: %d", order.DCNo), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, fmt.Sprintf("Date: %s", order.Date.Format("02-Jan-2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(half, 6, fmt.Sprintf("Invoice No: %d", order.InvoiceNo), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, fmt.Sprintf("Vehicle No: %s", order.VehicleNo), "", 1, "L", false, 0, "")
	pdf.CellFormat(half, 6, fmt.Sprintf("Party D.C. No: %d", order.PartyDCNo), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, fmt.Sprintf("E-Way No: %s", order.EWayNo), "", 1, "L", false, 0, "")
	pdf.CellFormat(half, 6, fmt.Sprintf("Party D.C. Date: %s", order.PartyDCDate.Format("02-Jan-2006")), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, fmt.Sprintf("HSN Code: %s", order.HSNCode), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(14, 6, "To:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, order.To, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(28, 6, "Party GSTIN:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, order.PartyGSTIN, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(28, 6, "Description:", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, order.ProductDescription, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (r *challanRenderer) itemTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	headers := []string{"S.No", "Quantity", "Rate", "Amount"}
	for i, header := range headers {
		pdf.CellFormat(itemColWidths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(255, 255, 255)
}

func (r *challanRenderer) itemRow(pdf *gofpdf.Fpdf, serial int, item models.OrderItem) {
	pdf.CellFormat(itemColWidths[0], 6, fmt.Sprintf("%d", serial), "1", 0, "C", false, 0, "")
	pdf.CellFormat(itemColWidths[1], 6, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "R", false, 0, "")
	pdf.CellFormat(itemColWidths[2], 6, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
	pdf.CellFormat(itemColWidths[3], 6, fmt.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
}

func (r *challanRenderer) carriedForward(pdf *gofpdf.Fpdf, subtotal float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(itemColWidths[0]+itemColWidths[1]+itemColWidths[2], 6, "Carried forward", "1", 0, "R", false, 0, "")
	pdf.CellFormat(itemColWidths[3], 6, fmt.Sprintf("%.2f", subtotal), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
}

func (r *challanRenderer) broughtForward(pdf *gofpdf.Fpdf, subtotal float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(itemColWidths[0]+itemColWidths[1]+itemColWidths[2], 6, "Brought forward", "1", 0, "R", false, 0, "")
	pdf.CellFormat(itemColWidths[3], 6, fmt.Sprintf("%.2f", subtotal), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
}

func (r *challanRenderer) summaryBlock(pdf *gofpdf.Fpdf, order *models.Order) {
	labelWidth := itemColWidths[0] + itemColWidths[1] + itemColWidths[2]
	amountWidth := itemColWidths[3]

	line := func(label string, amount float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(labelWidth, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(amountWidth, 6, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	line("Net Total", order.NetTotal, false)
	line(fmt.Sprintf("CGST @ %.1f%%", r.cgstRate), order.CGST, false)
	line(fmt.Sprintf("SGST @ %.1f%%", r.sgstRate), order.SGST, false)
	line("Handling Charges", order.HandlingCharges, false)
	line("Gross Total", order.GrossTotal, true)

	pdf.Ln(2)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Weight: %.2f kg", order.TotalWeight), "", 1, "L", false, 0, "")
}

func (r *challanRenderer) signatureFooter(pdf *gofpdf.Fpdf) {
	pdf.Ln(14)
	pdf.SetFont("Arial", "", 10)
	half := 93.0
	pdf.CellFormat(half, 6, "_____________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, "_____________________", "", 1, "R", false, 0, "")
	pdf.CellFormat(half, 6, "Consignor's Signature", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, "Consignee's Signature", "", 1, "R", false, 0, "")
}
