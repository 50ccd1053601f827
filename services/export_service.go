package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"nichehotel-backend/models"
)

var exportHeader = []string{
	"ID", "Code", "Guest", "Hotel", "Room Type", "Room #",
	"Check-in", "Check-out", "Status", "Payment", "Total",
}

// sanitizeCSVCell defuses spreadsheet formula injection: cells starting with
// a formula trigger character get a leading apostrophe.
func sanitizeCSVCell(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '=', '+', '-', '@':
		return "'" + cell
	}
	return cell
}

func exportRow(b models.Booking) []string {
	checkin, checkout := "", ""
	if b.CheckinDate != nil {
		checkin = b.CheckinDate.Format("2006-01-02")
	}
	if b.CheckoutDate != nil {
		checkout = b.CheckoutDate.Format("2006-01-02")
	}
	return []string{
		strconv.FormatUint(uint64(b.ID), 10),
		b.BookingCode,
		b.GuestName,
		b.HotelName,
		RoomTypeDisplay(b),
		RoomNumberDisplay(b),
		checkin,
		checkout,
		b.Status,
		b.PaymentStatus,
		fmt.Sprintf("%.2f", b.Total),
	}
}

// WriteCSV streams the bookings as CSV with every cell sanitized.
func WriteCSV(w io.Writer, bookings []models.Booking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, b := range bookings {
		row := exportRow(b)
		for i := range row {
			row[i] = sanitizeCSVCell(row[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the bookings as a single-sheet workbook. XLSX cells are
// written as values, so no formula sanitizing is needed.
func WriteXLSX(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil && !strings.Contains(err.Error(), "not exist") {
		return err
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}
	for i, b := range bookings {
		for col, value := range exportRow(b) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}
