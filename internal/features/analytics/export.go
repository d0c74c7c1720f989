package analytics

import (
	"context"
	"fmt"
	"time"

	"club-sync/internal/spond"

	"github.com/xuri/excelize/v2"
)

var attendanceColumns = []string{
	"Heading", "Type", "Start", "Cancelled",
	"Accepted", "Declined", "Unanswered", "Waitinglist", "No Answer",
}

// AttendanceXLSX renders every stored event with its response counts as a
// spreadsheet, one row per event.
func (s *AnalyticsServiceImpl) AttendanceXLSX(ctx context.Context) ([]byte, string, error) {
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range attendanceColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx := range events {
		ev := &events[rowIdx]
		counts := ev.Responses.CountByAnswer()

		start := ""
		if ev.StartTime != nil {
			start = ev.StartTime.Format("2006-01-02 15:04:05")
		}

		row := []interface{}{
			ev.Heading,
			ev.EventType,
			start,
			ev.Cancelled,
			counts[spond.AnswerAccepted],
			counts[spond.AnswerDeclined],
			counts[spond.AnswerUnanswered],
			counts[spond.AnswerWaitinglist],
			counts[spond.AnswerNone] + counts[spond.AnswerUnconfirmed],
		}
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	for i := range attendanceColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", time.Now().UTC().Format("20060102"))
	return buffer.Bytes(), filename, nil
}
