package formatter

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

// TreeOptions controls tree output formatting.
type TreeOptions struct {
	// NoValues shows only contact names.
	NoValues bool
}

// FormatAsTree renders contacts as an ASCII tree: one branch per contact,
// with its email and id as leaves.
func FormatAsTree(list []contact.Contact, opts TreeOptions) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("contacts (%d)", len(list)))
	for _, c := range list {
		if opts.NoValues {
			tree.AddNode(c.Name)
			continue
		}
		branch := tree.AddBranch(c.Name)
		branch.AddNode("email: " + c.Email)
		branch.AddNode("id: " + c.ID)
	}
	return tree.String()
}
