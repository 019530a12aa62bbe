package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyInput is returned when there is nothing to parse.
	ErrEmptyInput = errors.New("empty input")
	// ErrNoContacts is returned when the input parsed but held no records.
	ErrNoContacts = errors.New("no contacts found in input")
)

var (
	tomlSectionPattern  = regexp.MustCompile(`^\s*\[{1,2}[a-zA-Z_][a-zA-Z0-9_.-]*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*[a-zA-Z_][a-zA-Z0-9_.-]*\s*=\s*.+$`)
)

// Load parses contacts from input, auto-detecting the format:
//   - a JSON array of records, or an object with a "contacts" array
//   - newline-delimited JSON, one record per line
//   - YAML, single or multi-document (one record or list per document)
//   - TOML with a [[contacts]] array of tables
//
// Records missing an id get "contact-<n>" by position.
func Load(input string) ([]Contact, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	docs, err := decodeDocuments(input)
	if err != nil {
		return nil, err
	}

	var out []Contact
	for _, doc := range docs {
		recs, err := recordsFromDocument(doc)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			c, err := contactFromRecord(rec, len(out))
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoContacts
	}
	return out, nil
}

// LoadFile reads path and parses it with Load.
func LoadFile(path string) ([]Contact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contacts: %w", err)
	}
	contacts, err := Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return contacts, nil
}

// LoadReader drains r and parses it with Load.
func LoadReader(r io.Reader) ([]Contact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read contacts: %w", err)
	}
	return Load(string(data))
}

func decodeDocuments(input string) ([]any, error) {
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return decodeMultiDocYAML(input)
	}
	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return decodeNDJSON(lines)
	}
	if isLikelyTOML(lines) {
		var doc any
		if err := toml.Unmarshal([]byte(input), &doc); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
		return []any{doc}, nil
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		var doc any
		if err := json.Unmarshal([]byte(input), &doc); err == nil {
			return []any{doc}, nil
		}
		// flow-style YAML also starts with a bracket; fall through
	}
	var doc any
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return []any{doc}, nil
}

func decodeMultiDocYAML(input string) ([]any, error) {
	var docs []any
	dec := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func decodeNDJSON(lines []string) ([]any, error) {
	docs := make([]any, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var doc any
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", i+1, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// isLikelyNDJSON requires a majority of non-empty lines to open a JSON object.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmpty := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
			jsonCount++
		}
	}
	return nonEmpty > 1 && jsonCount > nonEmpty/2
}

func isLikelyTOML(lines []string) bool {
	keyValues := 0
	nonEmpty := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			return true
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValues++
		}
	}
	return nonEmpty > 0 && keyValues > nonEmpty/2
}

func recordsFromDocument(doc any) ([]map[string]any, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("record %d: expected an object, got %T", i, item)
			}
			out = append(out, m)
		}
		return out, nil
	case map[string]any:
		if list, ok := v["contacts"]; ok {
			return recordsFromDocument(list)
		}
		return []map[string]any{v}, nil
	default:
		return nil, fmt.Errorf("unsupported document type %T", doc)
	}
}

func contactFromRecord(rec map[string]any, position int) (Contact, error) {
	c := Contact{
		ID:    stringField(rec, "id"),
		Name:  strings.TrimSpace(stringField(rec, "name")),
		Email: strings.TrimSpace(stringField(rec, "email")),
	}
	if c.Name == "" {
		return Contact{}, fmt.Errorf("record %d: missing name", position)
	}
	if c.Email == "" {
		return Contact{}, fmt.Errorf("record %d (%s): missing email", position, c.Name)
	}
	if c.ID == "" {
		c.ID = fmt.Sprintf("contact-%d", position+1)
	}
	return c, nil
}

func stringField(rec map[string]any, key string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
