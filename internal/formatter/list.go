package formatter

import (
	"strings"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

// ListOptions controls list output formatting.
type ListOptions struct {
	NoColor        bool
	RowNumberStyle string // index, numbered, bullet, none
}

// FormatAsList renders each contact as an index header followed by its
// indented fields.
func FormatAsList(list []contact.Contact, opts ListOptions) string {
	var b strings.Builder
	for i, c := range list {
		if i > 0 {
			b.WriteString("\n")
		}
		if opts.RowNumberStyle != "none" {
			header := rowNumber(i, opts.RowNumberStyle)
			if opts.RowNumberStyle == "" {
				header = rowNumber(i, "index")
			}
			if !opts.NoColor {
				header = headerStyle.Render(header)
			}
			b.WriteString(header + "\n")
		}
		writeField(&b, "id", c.ID, opts.NoColor)
		writeField(&b, "name", c.Name, opts.NoColor)
		writeField(&b, "email", c.Email, opts.NoColor)
	}
	return b.String()
}

func writeField(b *strings.Builder, key, value string, noColor bool) {
	label := padRight(key+":", 7)
	if !noColor {
		label = keyStyle.Render(label)
		value = valueStyle.Render(value)
	}
	b.WriteString("  " + label + value + "\n")
}
