package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/practicebot/pkg/models"
)

// ImportConfig defines the import configuration. One spreadsheet row is one
// sentence; rows sharing a day number and section id are folded into one
// section.
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	DayColumn      string // Column with the day number
	SectionColumn  string // Column with the section id
	TypeColumn     string // Column with the section type
	TitleColumn    string // Column with the section title
	SentenceColumn string // Column with the sentence text
	RepsColumn     string // Column with the repetition count
	DurationColumn string // Column with the duration in minutes
	SheetName      string // Name of the sheet to import
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		DayColumn:      "A",
		SectionColumn:  "B",
		TypeColumn:     "C",
		TitleColumn:    "D",
		SentenceColumn: "E",
		RepsColumn:     "F",
		DurationColumn: "G",
		SheetName:      "Sheet1",
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	DaysCreated    int
	Sections       int
	Skipped        int
	Errors         []string
}

// ImportDays imports a lesson-day catalogue from an Excel or CSV file and
// validates it like any other catalogue source.
func ImportDays(config ImportConfig) (*Catalog, *ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	var rows [][]string
	var err error
	if ext == ".csv" {
		rows, err = readCSVRows(config.FilePath)
	} else {
		rows, err = readExcelRows(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, nil, err
	}

	days, result, err := assembleDays(rows, config)
	if err != nil {
		return nil, result, err
	}
	cat, err := New(days)
	if err != nil {
		return nil, result, err
	}
	return cat, result, nil
}

// WriteJSON saves an imported catalogue as the JSON file the engine loads at
// startup.
func WriteJSON(path string, days []models.LessonDay) error {
	raw, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

func readExcelRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %v", sheet, err)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %v", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func assembleDays(rows [][]string, config ImportConfig) ([]models.LessonDay, *ImportResult, error) {
	cols, err := columnIndexes(config)
	if err != nil {
		return nil, nil, err
	}

	result := &ImportResult{}
	type sectionKey struct {
		day     int
		section string
	}
	dayNumbers := map[int]bool{}
	sections := map[sectionKey]*models.LessonSection{}
	var order []sectionKey

	startRow := config.StartRow
	if startRow < 1 {
		startRow = 1
	}

	for i := startRow - 1; i < len(rows); i++ {
		row := rows[i]
		result.TotalProcessed++

		dayNumber, err := strconv.Atoi(strings.TrimSpace(cell(row, cols.day)))
		if err != nil || dayNumber < 1 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid day number", i+1))
			continue
		}
		sectionID := strings.TrimSpace(cell(row, cols.section))
		if sectionID == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing section id", i+1))
			continue
		}

		key := sectionKey{day: dayNumber, section: sectionID}
		sec, exists := sections[key]
		if !exists {
			sec = &models.LessonSection{
				ID:       sectionID,
				Type:     strings.TrimSpace(cell(row, cols.sectionType)),
				Title:    strings.TrimSpace(cell(row, cols.title)),
				Reps:     intCell(row, cols.reps),
				Duration: intCell(row, cols.duration),
			}
			sections[key] = sec
			order = append(order, key)
			result.Sections++
		}
		if sentence := strings.TrimSpace(cell(row, cols.sentence)); sentence != "" {
			sec.Sentences = append(sec.Sentences, sentence)
		}
		dayNumbers[dayNumber] = true
	}

	byDay := map[int]*models.LessonDay{}
	for _, key := range order {
		day, ok := byDay[key.day]
		if !ok {
			day = &models.LessonDay{DayNumber: key.day}
			byDay[key.day] = day
		}
		day.Sections = append(day.Sections, *sections[key])
	}

	days := make([]models.LessonDay, 0, len(byDay))
	for _, day := range byDay {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].DayNumber < days[j].DayNumber })
	result.DaysCreated = len(days)
	return days, result, nil
}

type columnSet struct {
	day, section, sectionType, title, sentence, reps, duration int
}

func columnIndexes(config ImportConfig) (columnSet, error) {
	var cols columnSet
	var err error
	for _, c := range []struct {
		letter string
		target *int
	}{
		{config.DayColumn, &cols.day},
		{config.SectionColumn, &cols.section},
		{config.TypeColumn, &cols.sectionType},
		{config.TitleColumn, &cols.title},
		{config.SentenceColumn, &cols.sentence},
		{config.RepsColumn, &cols.reps},
		{config.DurationColumn, &cols.duration},
	} {
		*c.target, err = excelize.ColumnNameToNumber(c.letter)
		if err != nil {
			return cols, fmt.Errorf("invalid column %q: %v", c.letter, err)
		}
		*c.target-- // 0-based
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func intCell(row []string, idx int) int {
	n, err := strconv.Atoi(strings.TrimSpace(cell(row, idx)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
