package bulk

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses positional rows. Blank lines are skipped and rows may have
// differing cell counts; shape checks happen in Layout.Validate.
func ReadCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

// RowsFromJSON converts a JSON array of objects into positional rows using
// the layout's field mapping. Trailing optional cells are only emitted when
// they carry a value so they do not trip the empty-cell rule.
func (l Layout) RowsFromJSON(data []byte) ([][]string, error) {
	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("decode json rows: %w", err)
	}

	nullable := make(map[string]bool, len(l.Nullable))
	for _, key := range l.Nullable {
		nullable[key] = true
	}

	rows := make([][]string, 0, len(objects))
	for _, obj := range objects {
		values := make(map[string]string, len(obj))
		for key, raw := range obj {
			values[key] = stringify(raw, nullable[key])
		}

		if l.FromObject != nil {
			rows = append(rows, l.FromObject(values))
			continue
		}

		row := make([]string, 0, len(l.Fields))
		for i, field := range l.Fields {
			value := values[field]
			if i >= l.MinColumns && strings.TrimSpace(value) == "" {
				break
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func stringify(v any, keepNull bool) string {
	switch t := v.(type) {
	case nil:
		if keepNull {
			return "null"
		}
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// SpoolUpload copies an uploaded file into dir and returns its path with a
// cleanup func that removes it. Callers defer cleanup immediately so the file
// is gone on every exit path.
func SpoolUpload(dir string, src io.Reader) (string, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", func() {}, fmt.Errorf("create upload directory: %w", err)
	}

	dst, err := os.CreateTemp(dir, "bulk-"+uuid.NewString()+"-*.csv")
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp file: %w", err)
	}
	path := dst.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("close temp file: %w", err)
	}

	return path, cleanup, nil
}
