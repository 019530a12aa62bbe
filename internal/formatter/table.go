package formatter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

// TableOptions configures table rendering.
type TableOptions struct {
	NoColor bool

	// TotalWidth is the total available width. If 0, uses terminal width.
	TotalWidth int

	// RowNumberStyle controls the leading column:
	//   "numbered" - 1, 2, 3 (default)
	//   "index"    - [0], [1], [2]
	//   "bullet"   - •
	//   "none"     - no row number column
	RowNumberStyle string
}

var tableColumns = []string{"ID", "NAME", "EMAIL"}

const (
	columnSepWidth = 2
	minColWidth    = 3
)

// RenderTable renders contacts as an ID/NAME/EMAIL table sized to the
// available width. Columns shrink proportionally when the content does not
// fit; values are truncated with "...".
func RenderTable(list []contact.Contact, opts TableOptions) string {
	if len(list) == 0 {
		return ""
	}
	rows := make([][]string, len(list))
	for i, c := range list {
		rows[i] = []string{c.ID, c.Name, c.Email}
	}

	totalWidth := opts.TotalWidth
	if totalWidth <= 0 {
		totalWidth = getTerminalWidth()
	}

	showRowNum := opts.RowNumberStyle != "none"
	rowNumWidth := 0
	availableWidth := totalWidth
	if showRowNum {
		rowNumWidth = len(fmt.Sprintf("%d", len(rows))) + 2
		switch opts.RowNumberStyle {
		case "bullet":
			rowNumWidth = 3
		case "index":
			rowNumWidth = len(fmt.Sprintf("[%d]", len(rows)-1)) + 1
		}
		availableWidth -= rowNumWidth + columnSepWidth
	}
	widths := columnWidths(tableColumns, rows, availableWidth)

	sep := strings.Repeat(" ", columnSepWidth)
	var b strings.Builder

	header := make([]string, 0, len(tableColumns)+1)
	if showRowNum {
		header = append(header, padRight("#", rowNumWidth))
	}
	for i, col := range tableColumns {
		header = append(header, padRight(truncate(col, widths[i]), widths[i]))
	}
	for i := range header {
		if !opts.NoColor {
			header[i] = headerStyle.Render(header[i])
		}
	}
	b.WriteString(strings.Join(header, sep) + "\n")

	lineWidth := 0
	if showRowNum {
		lineWidth = rowNumWidth + columnSepWidth
	}
	for i, w := range widths {
		lineWidth += w
		if i < len(widths)-1 {
			lineWidth += columnSepWidth
		}
	}
	separator := strings.Repeat("─", lineWidth)
	if !opts.NoColor {
		separator = separatorStyle.Render(separator)
	}
	b.WriteString(separator + "\n")

	for i, row := range rows {
		parts := make([]string, 0, len(row)+1)
		if showRowNum {
			num := padRight(rowNumber(i, opts.RowNumberStyle), rowNumWidth)
			if !opts.NoColor {
				num = keyStyle.Render(num)
			}
			parts = append(parts, num)
		}
		for j, val := range row {
			cell := padRight(truncate(val, widths[j]), widths[j])
			if !opts.NoColor {
				cell = valueStyle.Render(cell)
			}
			parts = append(parts, cell)
		}
		// Trailing padding on the last column is noise in piped output.
		b.WriteString(strings.TrimRight(strings.Join(parts, sep), " ") + "\n")
	}
	return b.String()
}

func rowNumber(i int, style string) string {
	switch style {
	case "index":
		return fmt.Sprintf("[%d]", i)
	case "bullet":
		return "•"
	default:
		return fmt.Sprintf("%d", i+1)
	}
}

// columnWidths sizes each column to its widest cell, then shrinks the
// widest columns one cell at a time until the row fits.
func columnWidths(columns []string, rows [][]string, availableWidth int) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range rows {
		for i, val := range row {
			if w := runewidth.StringWidth(val); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	usable := availableWidth - (len(columns)-1)*columnSepWidth
	if usable <= 0 {
		return widths
	}
	for sum(widths) > usable {
		widest := 0
		for i := 1; i < len(widths); i++ {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
