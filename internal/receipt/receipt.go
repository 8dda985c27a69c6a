// Package receipt renders reservation receipts as PDF.
package receipt

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"github.com/phpdave11/gofpdf"

	"airline-ops-backend/internal/model"
	"airline-ops-backend/internal/store"
)

// Build renders d as a one-page PDF and returns it with a download filename.
func Build(d store.ReservationDetail, issued time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservation "+d.ReservationID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RESERVATION RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		"Reservation : " + d.ReservationID,
		"Customer    : " + d.CustomerID,
		"Status      : " + statusLabel(d.Status),
		"Flight      : " + d.FlightNumber + " (" + d.FlightInstanceID + ")",
		"Route       : " + d.DepartureCity + " -> " + d.ArrivalCity,
		"Date        : " + d.FlightDate,
		fmt.Sprintf("Fare        : %.2f", d.TicketCost),
		"Booked at   : " + d.CreatedAt.UTC().Format("2006-01-02 15:04 MST"),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	if d.Status == model.StatusWaitlist {
		pdf.MultiCell(0, 6, "This reservation is on the waitlist and does not hold a seat.", "", "", false)
	} else {
		pdf.MultiCell(0, 6, "This reservation holds one seat on the flight above.", "", "", false)
	}
	pdf.Cell(0, 6, "Issued "+issued.UTC().Format("2006-01-02 15:04 MST"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render receipt %s: %w", d.ReservationID, err)
	}
	filename := fmt.Sprintf("RECEIPT_%s_%s.pdf", safeFilenamePart(d.ReservationID), safeFilenamePart(d.FlightInstanceID))
	return buf.Bytes(), filename, nil
}

func statusLabel(s model.ReservationStatus) string {
	if s == model.StatusWaitlist {
		return "Waitlisted"
	}
	return "Confirmed"
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func safeFilenamePart(s string) string {
	s = unsafeFilename.ReplaceAllString(s, "_")
	if s == "" {
		return "x"
	}
	return s
}
