package reports

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildReportsWorkbook renders both reports into one workbook: a sheet per
// report, headers on row 1.
func BuildReportsWorkbook(ctx context.Context) (*excelize.File, error) {
	proactivity, err := GetProactivityReport(ctx)
	if err != nil {
		return nil, err
	}
	motives, err := GetMotiveRanking(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	sheet := "Proatividade"
	f.SetSheetName("Sheet1", sheet)

	// Add headers
	f.SetCellValue(sheet, "A1", "Área")
	f.SetCellValue(sheet, "B1", "Resolvidas")
	f.SetCellValue(sheet, "C1", "Tempo Médio (dias)")

	// Add data
	row := 2
	for _, d := range proactivity.ByArea {
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), d.AreaName)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), d.ResolvedCount)
		if d.AverageDays != nil {
			f.SetCellValue(sheet, "C"+fmt.Sprint(row), d.AverageDays.InexactFloat64())
		} else {
			f.SetCellValue(sheet, "C"+fmt.Sprint(row), "Sem dados")
		}
		row++
	}

	row += 2
	f.SetCellValue(sheet, "A"+fmt.Sprint(row), "Usuário")
	f.SetCellValue(sheet, "B"+fmt.Sprint(row), "Resolvidas")
	f.SetCellValue(sheet, "C"+fmt.Sprint(row), "Tempo Médio (dias)")
	row++
	for _, d := range proactivity.ByUser {
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), d.UserName)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), d.ResolvedCount)
		if d.AverageDays != nil {
			f.SetCellValue(sheet, "C"+fmt.Sprint(row), d.AverageDays.InexactFloat64())
		} else {
			f.SetCellValue(sheet, "C"+fmt.Sprint(row), "Sem dados")
		}
		row++
	}

	motiveSheet := "Motivos"
	if _, err := f.NewSheet(motiveSheet); err != nil {
		return nil, err
	}
	f.SetCellValue(motiveSheet, "A1", "Motivo")
	f.SetCellValue(motiveSheet, "B1", "Ocorrências")
	f.SetCellValue(motiveSheet, "C1", "%")

	for i, d := range motives.Ranking {
		f.SetCellValue(motiveSheet, "A"+fmt.Sprint(i+2), d.Description)
		f.SetCellValue(motiveSheet, "B"+fmt.Sprint(i+2), d.Count)
		f.SetCellValue(motiveSheet, "C"+fmt.Sprint(i+2), d.Percentage.Round(1).InexactFloat64())
	}

	return f, nil
}
