package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var attendanceColumns = []string{"Member", "Member ID", "Answer"}

// AttendanceXLSX renders one event's attendance list as a spreadsheet, one
// row per member response.
func (s *EventServiceImpl) AttendanceXLSX(ctx context.Context, id string) ([]byte, string, error) {
	ev, err := s.Get(ctx, id)
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

	for rowIdx, resp := range ev.Responses {
		name := ""
		if resp.Profile != nil {
			first, _ := resp.Profile.Str("firstName")
			last, _ := resp.Profile.Str("lastName")
			name = strings.TrimSpace(first + " " + last)
		}

		row := []interface{}{name, resp.MemberID, string(resp.Answer)}
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	for i := range attendanceColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 24)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", sanitizeFilename(ev.Heading))
	return buffer.Bytes(), filename, nil
}

// sanitizeFilename keeps the heading usable in a Content-Disposition header.
func sanitizeFilename(heading string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(heading) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "event"
	}
	return b.String()
}
