package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gourd/pkg/plant/service"
)

const sheet = "Plants"

var header = []string{
	"ID", "Species", "English Name", "Tagalog Name", "Gender", "Status",
	"Date Planted", "Date Pollinated", "Age (days)", "Pollination Estimate",
	"Notes", "Attempts",
}

// WritePlants renders the user's records as a spreadsheet for the export
// endpoint. One row per plant, dates in ISO form.
func WritePlants(w io.Writer, plants []service.PlantView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, p := range plants {
		pollinated := ""
		if p.DatePollinated != nil {
			pollinated = p.DatePollinated.Format("2006-01-02")
		}
		row := []interface{}{
			p.PlantID,
			string(p.Species),
			p.DisplayName.English,
			p.DisplayName.Tagalog,
			string(p.Gender),
			string(p.Status),
			p.DatePlanted.Format("2006-01-02"),
			pollinated,
			p.AgeInDays,
			p.PollinationEstimate,
			len(p.Notes),
			len(p.Outcomes),
		}
		for colIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
