package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/fdg312/food-tracker/internal/diary"
	"github.com/jung-kurt/gofpdf"
)

var csvHeader = []string{"date", "calories_kcal", "protein_g", "fat_g", "carbs_g", "fiber_g", "sodium_mg"}

// DiaryReport is the data behind one rendered report. Days holds only days with entries.
type DiaryReport struct {
	From string
	To   string
	Days []diary.DaySummary
}

// Averages returns per-day means over the days that have entries.
func (r DiaryReport) Averages() diary.MealSummary {
	var avg diary.MealSummary
	if len(r.Days) == 0 {
		return avg
	}
	n := float64(len(r.Days))
	for _, d := range r.Days {
		avg.CaloriesKcal += d.Total.CaloriesKcal
		avg.ProteinG += d.Total.ProteinG
		avg.FatG += d.Total.FatG
		avg.CarbsG += d.Total.CarbsG
		avg.FiberG += d.Total.FiberG
		avg.SodiumMg += d.Total.SodiumMg
	}
	avg.CaloriesKcal /= n
	avg.ProteinG /= n
	avg.FatG /= n
	avg.CarbsG /= n
	avg.FiberG /= n
	avg.SodiumMg /= n
	return avg
}

func Render(r DiaryReport, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return renderCSV(r)
	case FormatPDF:
		return renderPDF(r)
	default:
		return nil, ErrInvalidFormat
	}
}

func renderCSV(r DiaryReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, d := range r.Days {
		if err := w.Write(append([]string{d.Date}, totalsRow(d.Total)...)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderPDF draws an A4 page with a summary block and one table row per day.
// Core Helvetica only covers Latin-1, so all labels are English.
func renderPDF(r DiaryReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Food diary report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Food diary report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s - %s", r.From, r.To))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Days with entries: %d", len(r.Days)))
	pdf.Ln(10)

	avg := r.Averages()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Daily average")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Calories: %.0f kcal   Protein: %.1f g   Fat: %.1f g   Carbs: %.1f g", avg.CaloriesKcal, avg.ProteinG, avg.FatG, avg.CarbsG))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Fiber: %.1f g   Sodium: %.0f mg", avg.FiberG, avg.SodiumMg))
	pdf.Ln(10)

	widths := []float64{28, 27, 27, 27, 27, 27, 27}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range csvHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range r.Days {
		cells := append([]string{d.Date}, totalsRow(d.Total)...)
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func totalsRow(t diary.MealSummary) []string {
	return []string{
		fmt.Sprintf("%.1f", t.CaloriesKcal),
		fmt.Sprintf("%.1f", t.ProteinG),
		fmt.Sprintf("%.1f", t.FatG),
		fmt.Sprintf("%.1f", t.CarbsG),
		fmt.Sprintf("%.1f", t.FiberG),
		fmt.Sprintf("%.1f", t.SodiumMg),
	}
}
