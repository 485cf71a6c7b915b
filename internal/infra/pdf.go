package infra

// pdf.go — Invoice generation using go-pdf/fpdf.
// Renders an A7-size receipt-style invoice for a billing session:
//   - Venue name header
//   - Customer name and session timestamps
//   - Item table (service name, quantity/minutes, line total)
//   - Bold session total
//
// The output file is saved to storagePath/invoice_{sessionID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"gamehouse/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF writes an invoice for the session and returns the
// absolute path to the generated file. storagePath is created if needed.
func GenerateInvoicePDF(sess *model.Session, venueName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s.pdf", sess.ID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, venueName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Session Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Session info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	if sess.Customer != nil {
		pdf.CellFormat(contentW, 5, sess.Customer.FirstName+" "+sess.Customer.LastName, "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Started  "+sess.StartedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if sess.EndedAt != nil {
		pdf.CellFormat(contentW, 4, "Ended    "+sess.EndedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Item table ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW*0.55, 4, "Service", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.15, 4, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.30, 4, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sess.Items {
		qty := fmt.Sprintf("%d", item.Quantity)
		if item.PricingMode == model.PricingTimeBased {
			qty = "-"
		}
		pdf.CellFormat(contentW*0.55, 4, item.ServiceName, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.15, 4, qty, "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.30, 4, item.TotalCost.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.55, 5, "TOTAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.45, 5, sess.TotalCost.StringFixed(2), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write invoice: %w", err)
	}
	return filePath, nil
}
