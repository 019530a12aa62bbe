package filter

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

var sample = []contact.Contact{
	{ID: "1", Name: "Alice Young", Email: "alice@x.com"},
	{ID: "2", Name: "Bob Young", Email: "bob@x.com"},
	{ID: "3", Name: "Carol King", Email: "carol.king@acme.co"},
	{ID: "4", Name: "Dan O'Brien", Email: "dobrien@example.org"},
}

func ids(cs []contact.Contact) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestContacts(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns all", query: "", want: []string{"1", "2", "3", "4"}},
		{name: "name substring", query: "young", want: []string{"1", "2"}},
		{name: "case insensitive", query: "YOUNG", want: []string{"1", "2"}},
		{name: "email substring", query: "acme", want: []string{"3"}},
		{name: "mid-word substring", query: "ob", want: []string{"2", "4"}},
		{name: "apostrophe", query: "o'b", want: []string{"4"}},
		{name: "no match", query: "zzz", want: []string{}},
		{name: "pattern characters are literal", query: ".*", want: []string{}},
		{name: "dot matches literally", query: "l.k", want: []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Contacts(sample, tt.query)))
		})
	}
}

func TestContactsEmptyQueryIsIdentity(t *testing.T) {
	all := contact.Generate(50)
	assert.Equal(t, all, Contacts(all, ""))
}

func TestContactsSubsequenceProperty(t *testing.T) {
	all := contact.GenerateSeeded(150, contact.DefaultSeed)
	r := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 200; i++ {
		src := all[r.IntN(len(all))]
		field := src.Name
		if r.IntN(2) == 0 {
			field = src.Email
		}
		start := r.IntN(len(field))
		end := start + 1 + r.IntN(len(field)-start)
		query := field[start:end]
		if r.IntN(2) == 0 {
			query = strings.ToUpper(query)
		}

		got := Contacts(all, query)
		require.NotEmpty(t, got, "query %q", query)

		// every kept contact matches, every dropped one does not, order preserved
		j := 0
		for _, c := range all {
			matches := strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) ||
				strings.Contains(strings.ToLower(c.Email), strings.ToLower(query))
			if j < len(got) && got[j] == c {
				assert.True(t, matches, "query %q kept %v", query, c)
				j++
				continue
			}
			assert.False(t, matches, "query %q dropped %v", query, c)
		}
		assert.Equal(t, len(got), j, "result is not an ordered subsequence")
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		text, query string
		start, end  int
	}{
		{"AAbAA", "aa", 0, 2},
		{"xxAb", "ab", 2, 4},
		{"abc", "", 0, 0},
		{"abc", "abcd", -1, -1},
		{"Émile", "émi", 0, 4},
		{"a+b", "+", 1, 2},
	}
	for _, tt := range tests {
		start, end := Index(tt.text, tt.query)
		assert.Equal(t, tt.start, start, "%q in %q", tt.query, tt.text)
		assert.Equal(t, tt.end, end, "%q in %q", tt.query, tt.text)
	}
}
