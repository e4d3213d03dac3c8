package sentimental

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"
)

// Dataset column names.
const (
	TextColumn   = "Text"
	TargetColumn = "Target"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadCSV reads labeled examples from a Latin-1 encoded CSV file.
func LoadCSV(path string) ([]Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer file.Close()

	sniffBuf := make([]byte, 512)
	n, err := io.ReadFull(file, sniffBuf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("sniffing dataset: %w", err)
	}
	if mtype := mimetype.Detect(sniffBuf[:n]); !isText(mtype) {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotTabular, path, mtype.String())
	}

	// Cursor back to the beginning for the CSV reader
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding dataset: %w", err)
	}
	return ReadCSV(file)
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// ReadCSV decodes r as ISO-8859-1 and returns one Example per data row. The
// header must name both a Text and a Target column; other columns are ignored.
func ReadCSV(r io.Reader) ([]Example, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(br))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	textCol, targetCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case TextColumn:
			textCol = i
		case TargetColumn:
			targetCol = i
		}
	}
	if textCol == -1 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, TextColumn)
	}
	if targetCol == -1 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, TargetColumn)
	}

	var examples []Example
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %w", err)
		}
		if len(row) <= textCol || len(row) <= targetCol {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformedRow, line, len(row))
		}
		examples = append(examples, Example{
			Text:  row[textCol],
			Label: Label(strings.TrimSpace(row[targetCol])),
		})
	}

	if len(examples) == 0 {
		return nil, ErrEmptyDataset
	}
	return examples, nil
}
