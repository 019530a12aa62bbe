package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

// Format names an output encoding. It implements pflag.Value so commands
// can bind it directly as a flag.
type Format string

const (
	FormatTable  Format = "table"
	FormatList   Format = "list"
	FormatTree   Format = "tree"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatCSV    Format = "csv"
)

// Formats lists every supported format in help order.
func Formats() []Format {
	return []Format{FormatTable, FormatList, FormatTree, FormatJSON, FormatNDJSON, FormatYAML, FormatTOML, FormatCSV}
}

func (f *Format) String() string { return string(*f) }

// Set validates and stores a format name.
func (f *Format) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, known := range Formats() {
		if string(known) == s {
			*f = known
			return nil
		}
	}
	names := make([]string, 0, len(Formats()))
	for _, known := range Formats() {
		names = append(names, string(known))
	}
	return fmt.Errorf("invalid output format %q: valid values are %s", s, strings.Join(names, ", "))
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }

// Options configures Render and Write.
type Options struct {
	Format  Format
	NoColor bool
	// Width is the table width. Zero detects the terminal width.
	Width int
}

// Render encodes list in the configured format.
func Render(list []contact.Contact, opts Options) (string, error) {
	switch opts.Format {
	case FormatTable, "":
		return RenderTable(list, TableOptions{NoColor: opts.NoColor, TotalWidth: opts.Width}), nil
	case FormatList:
		return FormatAsList(list, ListOptions{NoColor: opts.NoColor}), nil
	case FormatTree:
		return FormatAsTree(list, TreeOptions{}), nil
	case FormatJSON:
		b, err := json.MarshalIndent(nonNil(list), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(b) + "\n", nil
	case FormatNDJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		for _, c := range list {
			if err := enc.Encode(c); err != nil {
				return "", fmt.Errorf("encode ndjson: %w", err)
			}
		}
		return buf.String(), nil
	case FormatYAML:
		return renderYAML(nonNil(list), 2)
	case FormatTOML:
		b, err := toml.Marshal(struct {
			Contacts []contact.Contact `toml:"contacts"`
		}{Contacts: nonNil(list)})
		if err != nil {
			return "", fmt.Errorf("encode toml: %w", err)
		}
		return string(b), nil
	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"id", "name", "email"})
		for _, c := range list {
			_ = w.Write([]string{c.ID, c.Name, c.Email})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return "", fmt.Errorf("encode csv: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

// Write renders list to w.
func Write(w io.Writer, list []contact.Contact, opts Options) error {
	out, err := Render(list, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// renderYAML renders v as YAML with the given indent (default 2).
func renderYAML(v any, indent int) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil(list []contact.Contact) []contact.Contact {
	if list == nil {
		return []contact.Contact{}
	}
	return list
}
