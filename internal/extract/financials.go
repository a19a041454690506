package extract

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gradplus/internal/domain"
)

// FinancialYears is the number of yearly columns in the financial summary.
const FinancialYears = 3

const amount = `(-?\d[\d.,]*)`

type financialRow struct {
	name   string
	shapes []*regexp.Regexp
	set    func(*domain.FinancialYear, float64)
}

// rowShapes builds the three match shapes for a row, tightest first: single
// spaces, free horizontal whitespace with an optional colon, and a
// newline-tolerant form that skips a unit like "(EUR)" after the label.
func rowShapes(variants ...string) []*regexp.Regexp {
	label := `(?i:` + strings.Join(variants, "|") + `)`
	return []*regexp.Regexp{
		regexp.MustCompile(label + ` ` + amount + ` ` + amount + ` ` + amount),
		regexp.MustCompile(label + `[ \t]*:?[ \t]+` + amount + `[ \t]+` + amount + `[ \t]+` + amount),
		regexp.MustCompile(label + `[^\n\d]{0,40}\s+` + amount + `[^\n\d-]{0,6}\s+` + amount + `[^\n\d-]{0,6}\s+` + amount),
	}
}

var financialRows = []financialRow{
	{
		name:   "income",
		shapes: rowShapes(`ukupni prihodi`, `ukupni prih\.`, `uk\. prihodi`, `ukupan prihod`),
		set:    func(f *domain.FinancialYear, v float64) { f.Income = v },
	},
	{
		name:   "expenses",
		shapes: rowShapes(`ukupni rashodi`, `ukupni rash\.`, `uk\. rashodi`, `ukupan rashod`),
		set:    func(f *domain.FinancialYear, v float64) { f.Expenses = v },
	},
	{
		name:   "profit",
		shapes: rowShapes(`rezultat poslovanja`, `rez\. poslovanja`, `dobit ili gubitak`, `dobit/gubitak`),
		set:    func(f *domain.FinancialYear, v float64) { f.Profit = v },
	},
	{
		name:   "employees",
		shapes: rowShapes(`prosječan broj radnika`, `prosječni broj radnika`, `prosj\. broj radnika`, `prosječan broj zaposlenih`, `prosj\. br\. radnika`),
		set:    func(f *domain.FinancialYear, v float64) { f.EmployeeCount = int(math.Round(v)) },
	},
}

var anyRowLabel = regexp.MustCompile(`(?i)ukupni prih|uk\. prihodi|ukupan prihod|ukupni rash|uk\. rashodi|rezultat poslovanja|rez\. poslovanja|dobit ili gubitak|dobit/gubitak|prosj(?:ečan|ečni|\.) (?:broj|br\.)`)

const (
	headerLinesBefore = 3
	blockLinesAfter   = 40
)

var (
	amountLine = regexp.MustCompile(`(?i)^-?\d[\d.,\s]*(?:eur|€|kn|hrk|%)?$`)
	hasDigit   = regexp.MustCompile(`\d`)
)

// ExtractFinancials rebuilds up to three years of income, expenses, profit
// and head count from newline-separated page text. Entries are newest first;
// a year is present only if a row produced a value for it and at least one
// of its values is non-zero.
func ExtractFinancials(text string) []domain.FinancialYear {
	header, block := financialBlock(text)
	if block == "" {
		return nil
	}
	years := blockYears(header)
	if len(years) == 0 {
		return nil
	}

	var columns [FinancialYears]domain.FinancialYear
	var filled [FinancialYears]bool
	for _, row := range financialRows {
		values, ok := matchRow(row, block)
		if !ok {
			continue
		}
		for i, v := range values {
			row.set(&columns[i], v)
			filled[i] = true
		}
	}

	var out []domain.FinancialYear
	for i := 0; i < FinancialYears && i < len(years); i++ {
		if !filled[i] {
			continue
		}
		columns[i].Year = years[i]
		if columns[i].Empty() {
			continue
		}
		out = append(out, columns[i])
	}
	return out
}

// financialBlock splits text around the first financial row label into the
// header lines just above it, which carry the column years, and the table
// body. The body ends at the first line with digits that is neither a row
// nor a bare amount, so dates and years further down the page never reach it.
func financialBlock(text string) (header, block string) {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if !anyRowLabel.MatchString(l) {
			continue
		}
		header = strings.Join(lines[max(0, i-headerLinesBefore):i], "\n")
		end := i + 1
		for ; end < len(lines) && end < i+blockLinesAfter; end++ {
			if !inTable(lines[end]) {
				break
			}
		}
		return header, strings.Join(lines[i:end], "\n")
	}
	return "", ""
}

func inTable(line string) bool {
	line = strings.TrimSpace(line)
	return anyRowLabel.MatchString(line) || amountLine.MatchString(line) || !hasDigit.MatchString(line)
}

// blockYears returns the distinct years 2001-2099 mentioned in block,
// newest first.
func blockYears(block string) []int {
	seen := map[int]bool{}
	var years []int
	for _, tok := range strings.Fields(block) {
		tok = strings.Trim(tok, ".:,;()[]")
		if len(tok) != 4 || !strings.HasPrefix(tok, "20") {
			continue
		}
		y, err := strconv.Atoi(tok)
		if err != nil || y < 2001 || y > 2099 || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// matchRow tries the row's shapes in order and returns the first match whose
// three values are not all zero; an all-zero block is treated as a decoy.
func matchRow(row financialRow, block string) ([FinancialYears]float64, bool) {
	var values [FinancialYears]float64
	for _, re := range row.shapes {
		for _, m := range re.FindAllStringSubmatch(block, -1) {
			nonZero := false
			for i := 0; i < FinancialYears; i++ {
				values[i] = ParseAmount(m[i+1])
				if values[i] != 0 {
					nonZero = true
				}
			}
			if nonZero {
				return values, true
			}
		}
	}
	return values, false
}
