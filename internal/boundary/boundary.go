// Package boundary implements the JSON/HTTP adapter between the evaluation
// core and the outside world (spec §4.5): fetching a raw workbook, converting
// it to the core's types, resolving it, and rendering the result back out
// for submission. Grounded on the reference implementation's data.rs
// (RawData/RawSheet/RawCellData) for the wire shapes and main.rs for the
// fetch flow; the core itself never sees JSON or HTTP.
package boundary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/wix-sheets/gosheets/internal/cellvalue"
	"github.com/wix-sheets/gosheets/internal/eval"
	"github.com/wix-sheets/gosheets/internal/expr"
	"github.com/wix-sheets/gosheets/internal/formula"
	"github.com/wix-sheets/gosheets/internal/sheet"
)

// RawWorkbook mirrors the intake JSON schema of spec §6.
type RawWorkbook struct {
	SubmissionURL string     `json:"submissionUrl"`
	Sheets        []RawSheet `json:"sheets"`
}

// RawSheet mirrors one element of RawWorkbook.Sheets.
type RawSheet struct {
	ID   string          `json:"id"`
	Data [][]RawCellData `json:"data"`
}

// RawCellData is one untyped cell from the intake JSON: a JSON int, float,
// bool, or string (spec §4.5). It also renders the output schema's
// resolved_cell, where a string may carry either a real result or a
// formatted error message.
type RawCellData struct {
	Value cellvalue.Value
}

// UnmarshalJSON decodes a raw cell, preserving the int/float distinction
// that encoding/json's default interface{} decoding loses (both would
// otherwise become float64).
func (c *RawCellData) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("boundary: decode cell: %w", err)
	}
	switch v := raw.(type) {
	case bool:
		c.Value = cellvalue.Bool(v)
	case string:
		c.Value = cellvalue.String(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			c.Value = cellvalue.Int64(i)
			return nil
		}
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("boundary: decode cell: %w", err)
		}
		c.Value = cellvalue.Float64(f)
	default:
		return fmt.Errorf("boundary: unsupported cell value %T", raw)
	}
	return nil
}

// MarshalJSON renders a cell back to its JSON form: Int/Float as a JSON
// number, Bool as a JSON boolean, String as a JSON string.
func (c RawCellData) MarshalJSON() ([]byte, error) {
	switch c.Value.Kind() {
	case cellvalue.KindInt:
		return json.Marshal(c.Value.AsInt64())
	case cellvalue.KindFloat:
		return json.Marshal(c.Value.AsFloat64())
	case cellvalue.KindBool:
		return json.Marshal(c.Value.AsBool())
	default:
		return json.Marshal(c.Value.AsString())
	}
}

// ResolvedSheet mirrors one element of the output schema's "results" array.
type ResolvedSheet struct {
	ID   string          `json:"id"`
	Data [][]RawCellData `json:"data"`
}

// SubmissionBody is the full POST body of spec §4.5/§6.
type SubmissionBody struct {
	Email   string          `json:"email"`
	Results []ResolvedSheet `json:"results"`
}

// FetchWorkbook performs the intake GET and decodes its body into a
// RawWorkbook. A non-2xx response or a malformed body is a system error
// that the caller should abort the program over (spec §7: "System errors
// outside the core ... terminate the program; they are not cell errors").
func FetchWorkbook(ctx context.Context, url string) (*RawWorkbook, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("boundary: build intake request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("boundary: fetch workbook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("boundary: fetch workbook: unexpected status %s", resp.Status)
	}
	var raw RawWorkbook
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("boundary: decode workbook: %w", err)
	}
	return &raw, nil
}

// Convert applies the per-cell conversion rules of spec §4.5: Int/Float/Bool
// raw cells become Literal directly; a String raw cell is parsed as a
// formula entry, with a parse failure becoming Error(ParseError).
func Convert(raw *RawWorkbook) *sheet.Workbook {
	sheets := make([]*sheet.Sheet, len(raw.Sheets))
	for i, rs := range raw.Sheets {
		rows := make([][]expr.Expression, len(rs.Data))
		for r, row := range rs.Data {
			cells := make([]expr.Expression, len(row))
			for c, cell := range row {
				cells[c] = convertCell(cell)
			}
			rows[r] = cells
		}
		sheets[i] = sheet.New(rs.ID, rows)
	}
	return &sheet.Workbook{Sheets: sheets, SubmissionURL: raw.SubmissionURL}
}

func convertCell(c RawCellData) expr.Expression {
	if c.Value.Kind() == cellvalue.KindString {
		return formula.ParseEntry(c.Value.AsString())
	}
	return expr.Literal{Value: c.Value}
}

// Resolve runs ev over every sheet of wb. Sheets are independent (spec §5)
// and resolve concurrently, one goroutine each; cells within a single sheet
// are always resolved serially by Evaluator.Resolve itself.
func Resolve(wb *sheet.Workbook, ev *eval.Evaluator) {
	var wg sync.WaitGroup
	wg.Add(len(wb.Sheets))
	for _, s := range wb.Sheets {
		go func(s *sheet.Sheet) {
			defer wg.Done()
			ev.Resolve(s)
		}(s)
	}
	wg.Wait()
}

// Render converts a fully resolved sheet to its output form. Every cell of
// s must be Literal or Error; Render panics otherwise, since that can only
// mean the caller skipped Resolve.
func Render(s *sheet.Sheet) ResolvedSheet {
	data := make([][]RawCellData, len(s.Rows))
	for r, row := range s.Rows {
		cells := make([]RawCellData, len(row))
		for c, e := range row {
			cells[c] = renderCell(e)
		}
		data[r] = cells
	}
	return ResolvedSheet{ID: s.ID, Data: data}
}

func renderCell(e expr.Expression) RawCellData {
	switch v := e.(type) {
	case expr.Literal:
		return RawCellData{Value: v.Value}
	case expr.Error:
		return RawCellData{Value: cellvalue.String(v.Err.Error())}
	default:
		panic("boundary: cell is not fully resolved")
	}
}

// Submit POSTs body to url as the final submission (spec §6).
func Submit(ctx context.Context, url string, body SubmissionBody) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("boundary: encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("boundary: build submission request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("boundary: submit results: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("boundary: submit results: unexpected status %s", resp.Status)
	}
	return nil
}
