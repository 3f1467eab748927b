// Package export writes a learner's glossary and practice history to a
// spreadsheet or CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/store"
)

// Sheet names in the exported workbook.
const (
	SheetGlossary = "Glossary"
	SheetHistory  = "History"
)

// Format selects the output file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var (
	glossaryHeader = []string{"Word", "Your Spelling", "Sentence", "Grade", "Mastery", "Missed At"}
	historyHeader  = []string{"Checked At", "Grade", "Correct", "Sentence", "Attempt", "Target Word"}
)

// Data is everything exported for one learner.
type Data struct {
	Username string
	Mistakes []glossary.Record
	Sessions []store.PracticeSession
}

// ParseFormat maps a flag value to a Format. An empty value infers the
// format from path's extension.
func ParseFormat(value, path string) (Format, error) {
	if value == "" {
		value = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if value == "" {
			return FormatXLSX, nil
		}
	}
	switch f := Format(strings.ToLower(value)); f {
	case FormatXLSX, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", value)
	}
}

func glossaryRows(list []glossary.Record) [][]string {
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		rows = append(rows, []string{
			r.Word,
			r.UserSpelling,
			r.OriginalSentence,
			r.Grade,
			strconv.Itoa(r.MasteryScore) + "/" + strconv.Itoa(glossary.MaxMastery),
			r.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

func historyRows(list []store.PracticeSession) [][]string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.Timestamp.UTC().Format(time.RFC3339),
			s.Grade,
			strconv.FormatBool(s.Correct),
			s.Text,
			s.Attempt,
			s.TargetWord,
		})
	}
	return rows
}

// Workbook builds a workbook with a Glossary and a History sheet.
// The caller closes the returned file.
func Workbook(d Data) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetGlossary)
	if _, err := f.NewSheet(SheetHistory); err != nil {
		f.Close()
		return nil, fmt.Errorf("add %s sheet: %w", SheetHistory, err)
	}

	if err := fillSheet(f, SheetGlossary, glossaryHeader, glossaryRows(d.Mistakes)); err != nil {
		f.Close()
		return nil, err
	}
	if err := fillSheet(f, SheetHistory, historyHeader, historyRows(d.Sessions)); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return f.SetColWidth(sheet, "A", "F", 22)
}

// WriteXLSX writes the workbook to w.
func WriteXLSX(w io.Writer, d Data) error {
	f, err := Workbook(d)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteCSV writes the glossary to glossaryW and the history to historyW.
func WriteCSV(glossaryW, historyW io.Writer, d Data) error {
	if err := writeCSV(glossaryW, glossaryHeader, glossaryRows(d.Mistakes)); err != nil {
		return fmt.Errorf("write glossary csv: %w", err)
	}
	if err := writeCSV(historyW, historyHeader, historyRows(d.Sessions)); err != nil {
		return fmt.Errorf("write history csv: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// HistoryPath returns the file the CSV history is written next to path.
func HistoryPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-history" + ext
}

// WriteFile exports d to path in the given format and returns the files
// written. CSV output produces a second file at HistoryPath(path).
func WriteFile(path string, format Format, d Data) ([]string, error) {
	switch format {
	case FormatCSV:
		gf, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer gf.Close()
		hp := HistoryPath(path)
		hf, err := os.Create(hp)
		if err != nil {
			return nil, err
		}
		defer hf.Close()
		if err := WriteCSV(gf, hf, d); err != nil {
			return nil, err
		}
		return []string{path, hp}, nil
	default:
		f, err := Workbook(d)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("save workbook: %w", err)
		}
		return []string{path}, nil
	}
}
