package collect

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/reportgen/internal/model"
)

// Table extraction errors.
var (
	// ErrNoTable is returned when the page contains no table element.
	ErrNoTable = errors.New("collect: no table element found on page")

	// ErrNoTableData is returned when a table exists but carries no
	// data rows or no numeric column.
	ErrNoTableData = errors.New("collect: table has no usable numeric data")
)

// Parser extracts tabular data from HTML content.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because it correctly handles malformed HTML common on the web and
// provides a proper DOM-like structure to walk.
type Parser struct{}

// NewParser creates a new HTML table parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseTable parses HTML content and converts the first data table into a
// Dataset. Columns whose cells all parse as numbers become numeric
// columns; the rest become text columns. At least one numeric column and
// one data row are required.
func (p *Parser) ParseTable(content io.Reader) (*model.Dataset, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("collect: failed to parse HTML: %w", err)
	}

	table := findFirst(doc, "table")
	if table == nil {
		return nil, ErrNoTable
	}

	headers, rows := extractRows(table)
	if len(rows) == 0 {
		return nil, ErrNoTableData
	}

	return buildDataset(headers, rows)
}

// findFirst returns the first element with the given tag name in
// document order, or nil.
func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// extractRows walks a table element and returns the header cells and the
// data rows. A leading row made of th cells (or the first row when no th
// row exists) is treated as the header.
func extractRows(table *html.Node) (headers []string, rows [][]string) {
	var trs []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			trs = append(trs, n)
			return // Cells only; tables nested in cells are ignored.
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)

	for i, tr := range trs {
		cells, isHeader := extractCells(tr)
		if len(cells) == 0 {
			continue
		}
		if headers == nil && (isHeader || i == 0) {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}

	return headers, rows
}

// extractCells returns the text of the td/th cells of a row and whether
// the row consists of th cells only.
func extractCells(tr *html.Node) (cells []string, isHeader bool) {
	isHeader = true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			cells = append(cells, nodeText(c))
		case "td":
			isHeader = false
			cells = append(cells, nodeText(c))
		}
	}
	if len(cells) == 0 {
		isHeader = false
	}
	return cells, isHeader
}

// nodeText returns the concatenated, whitespace-normalized text content
// of a node.
func nodeText(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(sb.String()), " ")
}

// buildDataset converts header/row cells into a Dataset, classifying each
// column as numeric or text.
func buildDataset(headers []string, rows [][]string) (*model.Dataset, error) {
	columnCount := 0
	for _, row := range rows {
		if len(row) > columnCount {
			columnCount = len(row)
		}
	}
	if columnCount == 0 {
		return nil, ErrNoTableData
	}

	var numeric []model.Column
	var text []model.TextColumn

	for col := 0; col < columnCount; col++ {
		name := columnName(headers, col)

		cells := make([]string, len(rows))
		for i, row := range rows {
			if col < len(row) {
				cells[i] = row[col]
			}
		}

		if values, ok := parseNumericColumn(cells); ok {
			numeric = append(numeric, model.Column{Name: name, Values: values})
		} else {
			text = append(text, model.TextColumn{Name: name, Values: cells})
		}
	}

	if len(numeric) == 0 {
		return nil, ErrNoTableData
	}

	return model.NewDataset(numeric, text...)
}

// columnName returns the header for a column index, or a positional name
// when the table has no usable header.
func columnName(headers []string, col int) string {
	if col < len(headers) && headers[col] != "" {
		return headers[col]
	}
	return fmt.Sprintf("Column%d", col+1)
}

// parseNumericColumn parses every cell as a float64.
// Thousands separators are tolerated. Returns false when any non-empty
// cell fails to parse or when the column is entirely empty.
func parseNumericColumn(cells []string) ([]float64, bool) {
	values := make([]float64, 0, len(cells))
	for _, cell := range cells {
		cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
		if cleaned == "" {
			return nil, false
		}
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil, false
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, false
	}
	return values, true
}
