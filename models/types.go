package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Money and measurements go out as JSON numbers, the SPA does arithmetic on them.
	decimal.MarshalJSONWithoutQuotes = true
}

// FlexID accepts 7 and "7"; empty or null decode to zero.
type FlexID int64

func (id *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*id = FlexID(v)
	return nil
}

func (id FlexID) Int64() int64 { return int64(id) }

// FlexString accepts JSON strings, numbers and booleans as text.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(strings.TrimSpace(v))
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && (b[0] == '{' || b[0] == '[') {
		return fmt.Errorf("expected text, got %s", b)
	}
	*s = FlexString(b)
	return nil
}

func (s FlexString) String() string { return string(s) }

// Ptr returns nil for empty text so optional columns store NULL.
func (s FlexString) Ptr() *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}

func textPtr(s *FlexString) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

// FlexBool accepts true, 1, "1", "true", "on", "yes".
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	s := strings.ToLower(strings.Trim(strings.TrimSpace(string(b)), `"`))
	switch s {
	case "true", "1", "on", "yes":
		*f = true
	default:
		*f = false
	}
	return nil
}

// Number is a lenient decimal: missing, empty or unparsable input is zero.
type Number struct {
	decimal.Decimal
}

func NewNumber(v float64) Number {
	return Number{Decimal: decimal.NewFromFloat(v)}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if s == "" || s == "null" {
		n.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		n.Decimal = decimal.Zero
		return nil
	}
	n.Decimal = d
	return nil
}

// Amount returns the value rounded to the two places stored by the schema.
func (n *Number) Amount() decimal.Decimal {
	if n == nil {
		return decimal.Zero
	}
	return n.Decimal.Round(2)
}

// SleeveList accepts either an array or an object keyed by position.
type SleeveList []SleeveInput

func (l *SleeveList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	if b[0] == '[' {
		var items []SleeveInput
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		for i := range items {
			items[i].Position = i
		}
		*l = items
		return nil
	}

	var keyed map[string]SleeveInput
	if err := json.Unmarshal(b, &keyed); err != nil {
		return err
	}
	positions := make([]int, 0, len(keyed))
	byPos := make(map[int]SleeveInput, len(keyed))
	for k, v := range keyed {
		pos, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("invalid SL position %q", k)
		}
		v.Position = pos
		positions = append(positions, pos)
		byPos[pos] = v
	}
	sort.Ints(positions)
	items := make([]SleeveInput, 0, len(positions))
	for _, pos := range positions {
		items = append(items, byPos[pos])
	}
	*l = items
	return nil
}

// Attachment is an uploaded file that has not been persisted yet.
type Attachment struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// ParticularFiles maps a particular's index in the payload to its images.
type ParticularFiles map[int][]Attachment

// Pagination mirrors the getOrders envelope.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
