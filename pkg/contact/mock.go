package contact

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultSeed is the demo seed used when the config names none.
const DefaultSeed uint64 = 20240501

var firstNames = []string{
	"Alice", "Bob", "Charlie", "David", "Emma", "Frank", "Grace", "Hannah",
	"Ian", "Julia", "Kevin", "Laura", "Michael", "Nina", "Oliver", "Patricia",
	"Quincy", "Rachel", "Samuel", "Tina", "Uma", "Victor", "Wendy", "Xavier",
	"Yasmine", "Zachary", "Abigail", "Benjamin", "Catherine", "Daniel", "Eleanor",
	"Frederick", "Georgia", "Henry", "Isabella", "Jacob", "Katherine", "Lucas",
	"Megan", "Nathan", "Olivia", "Patrick", "Quinn", "Rebecca", "Stephen",
	"Taylor", "Ursula", "Vincent", "Willow", "Xander", "Yvonne", "Zane",
}

var lastNames = []string{
	"Anderson", "Brown", "Clark", "Davis", "Evans", "Foster", "Garcia", "Harris",
	"Ibrahim", "Jones", "King", "Lopez", "Mitchell", "Nguyen", "O'Brien", "Parker",
	"Quinn", "Robinson", "Smith", "Taylor", "Usman", "Vega", "Williams", "Xu",
	"Young", "Zhang", "Adams", "Baker", "Campbell", "Diaz", "Edwards", "Fisher",
	"Gomez", "Hill", "Ingram", "Johnson", "Kelly", "Lee", "Morgan", "Nelson",
	"Ortiz", "Patel", "Ramirez", "Scott", "Thomas", "Unger", "Vargas", "Wilson",
	"Xiong", "Yates", "Zimmerman",
}

var domains = []string{
	"gmail.com", "yahoo.com", "outlook.com", "hotmail.com", "icloud.com",
	"company.com", "example.org", "business.net", "acme.co", "startup.io",
}

// Generate returns count mock contacts from a time-seeded source. Use
// GenerateSeeded for a reproducible list.
func Generate(count int) []Contact {
	now := uint64(time.Now().UnixNano())
	return GenerateWithRand(count, rand.New(rand.NewPCG(now, now>>1)))
}

// GenerateSeeded returns the same count contacts for the same seed.
func GenerateSeeded(count int, seed uint64) []Contact {
	return GenerateWithRand(count, rand.New(rand.NewPCG(seed, seed)))
}

// GenerateWithRand builds count contacts using r. IDs are assigned
// sequentially ("contact-1", "contact-2", ...) before the list is sorted by
// name, so they are unique but not in list order.
func GenerateWithRand(count int, r *rand.Rand) []Contact {
	if count <= 0 {
		return []Contact{}
	}
	out := make([]Contact, 0, count)
	for i := 0; i < count; i++ {
		first := firstNames[r.IntN(len(firstNames))]
		last := lastNames[r.IntN(len(lastNames))]
		out = append(out, Contact{
			ID:    fmt.Sprintf("contact-%d", i+1),
			Name:  first + " " + last,
			Email: mockEmail(r, first, last),
		})
	}
	SortByName(out)
	return out
}

func mockEmail(r *rand.Rand, first, last string) string {
	pattern := r.IntN(4)
	domain := domains[r.IntN(len(domains))]
	f := strings.ToLower(first)
	l := strings.ToLower(last)
	initial := f[:1]

	switch pattern {
	case 0:
		return f + l + "@" + domain
	case 1:
		return f + "." + l + "@" + domain
	case 2:
		return initial + l + "@" + domain
	default:
		return l + initial + "@" + domain
	}
}

// SortByName orders contacts by name using English collation, keeping the
// relative order of equal names.
func SortByName(contacts []Contact) {
	col := collate.New(language.English)
	sort.SliceStable(contacts, func(i, j int) bool {
		return col.CompareString(contacts[i].Name, contacts[j].Name) < 0
	})
}
