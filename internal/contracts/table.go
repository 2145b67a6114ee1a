package contracts

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Category names an ECDC COVID-19 dataset
type Category string

const (
	// CategoryTesting is weekly testing rate and positivity, national and regional
	CategoryTesting Category = "testing"
	// CategoryCases is the weekly national 14-day case and death notification rate
	CategoryCases Category = "nationalcasedeath"
)

// Valid reports whether c is a category the loader knows how to fetch
func (c Category) Valid() bool {
	return c == CategoryTesting || c == CategoryCases
}

// Record is one CSV row keyed by column name, values kept verbatim
type Record map[string]string

// Get returns the trimmed value of a column ("" if absent)
func (r Record) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// Float parses a numeric column. Blank or malformed cells yield NaN.
func (r Record) Float(col string) float64 {
	v := r.Get(col)
	if v == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Table is one downloaded dataset indexed by country
// ⭐ SSOT: ECDC 데이터셋 원본 표현
type Table struct {
	Category  Category  `json:"category"`
	Columns   []string  `json:"columns"`
	Rows      []Record  `json:"rows"`
	FetchedAt time.Time `json:"fetched_at"`

	byCountry map[string][]int
}

// NewTable builds the country index over rows
func NewTable(category Category, columns []string, rows []Record, fetchedAt time.Time) *Table {
	t := &Table{
		Category:  category,
		Columns:   columns,
		Rows:      rows,
		FetchedAt: fetchedAt,
		byCountry: make(map[string][]int),
	}
	for i, row := range rows {
		country := row.Get("country")
		t.byCountry[country] = append(t.byCountry[country], i)
	}
	return t
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Countries returns the distinct country names, sorted
func (t *Table) Countries() []string {
	out := make([]string, 0, len(t.byCountry))
	for c := range t.byCountry {
		if c != "" {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Has reports whether any row belongs to country
func (t *Table) Has(country string) bool {
	_, ok := t.byCountry[country]
	return ok
}

// Loc returns the rows of the given countries, in the order requested.
// Unknown countries contribute nothing.
func (t *Table) Loc(countries ...string) []Record {
	var out []Record
	for _, c := range countries {
		for _, i := range t.byCountry[c] {
			out = append(out, t.Rows[i])
		}
	}
	return out
}
