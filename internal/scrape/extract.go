// Package scrape turns server-rendered HTML into typed stat rows.
//
// Each Extract function takes a raw document and an opaque CSS selector
// identifying one table, and returns rows in document order. A selector
// that matches nothing fails the whole call with ParseError; a malformed
// individual row is dropped and extraction continues.
package scrape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseError reports a selector that matched no element in the document.
type ParseError struct {
	Selector string
	Detail   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: selector %q: %s", e.Selector, e.Detail)
}

// tableRows locates the table matched by selector and returns its data
// rows. Header rows (thead, and fbref's interleaved .thead spacer rows)
// are skipped.
func tableRows(html, selector string) ([]*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Selector: selector, Detail: err.Error()}
	}

	table := doc.Find(selector).First()
	if table.Length() == 0 {
		return nil, &ParseError{Selector: selector, Detail: "no matching table"}
	}

	var rows []*goquery.Selection
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") || row.HasClass("spacer") {
			return
		}
		rows = append(rows, row)
	})
	if rows == nil {
		// Tables without an explicit tbody: take all rows below the header.
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 || row.Find("th[scope=col]").Length() > 0 {
				return
			}
			rows = append(rows, row)
		})
	}
	return rows, nil
}

// cellTexts returns the trimmed text of every cell in the row, header
// cells included (stat sites render the first column as th).
func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}

// playerRef pulls the stable cross-season player identifier out of a row:
// the data-append-csv attribute if present, otherwise the /players/<id>/
// path segment of the name cell's link.
func playerRef(row *goquery.Selection) string {
	first := row.Find("th, td").First()
	if ref, ok := first.Attr("data-append-csv"); ok && ref != "" {
		return ref
	}
	href, ok := first.Find("a").First().Attr("href")
	if !ok {
		return ""
	}
	parts := strings.Split(href, "/")
	for i, p := range parts {
		if p == "players" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1]
		}
	}
	return ""
}

// --------------------------------------------------------------------------
// Lenient cell parsing — placeholder text ("-", em dash, empty) is zero,
// not a row failure
// --------------------------------------------------------------------------

func parseIntCell(s string) int {
	s = cleanNumber(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFloatCell(s string) float64 {
	s = cleanNumber(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	switch s {
	case "-", "–", "—", "N/A":
		return ""
	}
	return s
}

// nationCode strips the lowercase prefix sites put before country codes
// ("eng ENG" -> "ENG").
func nationCode(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
