package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/phpdave11/gofpdf"
)

// GET /api/bookings/:id/e-ticket (auth)
func GetBookingETicketPDF(c *gin.Context) {
	booking, payment, ok := loadBookingDocData(c)
	if !ok {
		return
	}

	pdfBytes, filename, err := buildETicketPDF(booking, payment, targetName(booking))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membuat PDF e-ticket", err)
		return
	}
	servePDF(c, pdfBytes, filename)
}

// GET /api/bookings/:id/invoice (auth)
func GetBookingInvoicePDF(c *gin.Context) {
	booking, payment, ok := loadBookingDocData(c)
	if !ok {
		return
	}

	pdfBytes, filename, err := buildInvoicePDF(booking, payment, targetName(booking))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membuat PDF invoice", err)
		return
	}
	servePDF(c, pdfBytes, filename)
}

func loadBookingDocData(c *gin.Context) (models.Booking, models.Payment, bool) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return models.Booking{}, models.Payment{}, false
	}
	auth := middleware.GetAuthContext(c)
	booking, payment, err := bookingService(c).Detail(auth, id)
	if err != nil {
		RespondDomainError(c, err)
		return models.Booking{}, models.Payment{}, false
	}
	return booking, payment, true
}

func targetName(b models.Booking) string {
	switch b.Kind {
	case models.KindHotelStay:
		if h, err := (repositories.HotelRepository{}).GetByID(b.TargetID); err == nil {
			return h.Name
		}
	case models.KindAttractionVisit:
		if a, err := (repositories.AttractionRepository{}).GetByID(b.TargetID); err == nil {
			return a.Name
		}
	}
	return fmt.Sprintf("#%d", b.TargetID)
}

func servePDF(c *gin.Context, pdfBytes []byte, filename string) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func buildETicketPDF(b models.Booking, p models.Payment, target string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	schedule := b.VisitDate
	if b.Kind == models.KindHotelStay {
		schedule = fmt.Sprintf("%s s/d %s", safe(b.CheckIn, "-"), safe(b.CheckOut, "-"))
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Kode Booking   : #%d", b.ID),
		fmt.Sprintf("Jenis          : %s", kindLabel(b.Kind)),
		fmt.Sprintf("Tujuan         : %s", safe(target, "-")),
		fmt.Sprintf("Jadwal         : %s", safe(schedule, "-")),
		fmt.Sprintf("Jumlah Tamu    : %d", b.Guests),
	}
	if b.Rooms > 0 {
		lines = append(lines, fmt.Sprintf("Jumlah Kamar   : %d", b.Rooms))
	}
	lines = append(lines,
		fmt.Sprintf("Total          : %s %s", p.Currency, utils.FormatMoney(b.TotalAmount)),
		fmt.Sprintf("Status         : %s", b.Status),
	)
	if p.TransactionReference != "" {
		lines = append(lines, fmt.Sprintf("Referensi      : %s", p.TransactionReference))
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: Tunjukkan e-ticket ini saat check-in atau masuk lokasi wisata.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", b.ID, safeFilenamePart(target))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(b models.Booking, p models.Payment, target string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d", b.ID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "No Invoice  : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Tanggal     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	rows := []string{
		fmt.Sprintf("%s - %s", kindLabel(b.Kind), safe(target, "-")),
		fmt.Sprintf("Total: %s %s", p.Currency, utils.FormatMoney(b.TotalAmount)),
	}
	if p.ID > 0 {
		rows = append(rows,
			fmt.Sprintf("Metode bayar: %s", safe(p.Method, "-")),
			fmt.Sprintf("Dibayar pada: %s", safe(p.PaidAt, "-")),
			fmt.Sprintf("Referensi: %s", p.TransactionReference),
		)
	} else {
		rows = append(rows, "Status: BELUM DIBAYAR")
	}
	for _, s := range rows {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func kindLabel(kind string) string {
	switch kind {
	case models.KindHotelStay:
		return "Menginap Hotel"
	case models.KindAttractionVisit:
		return "Kunjungan Wisata"
	default:
		return kind
	}
}

func safe(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func safeFilenamePart(s string) string {
	out := filenameSanitizer.ReplaceAllString(s, "_")
	if out == "" {
		return "doc"
	}
	return out
}
