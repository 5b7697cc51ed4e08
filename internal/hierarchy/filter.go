package hierarchy

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"game-studio/internal/instance"
)

// Predicate selects nodes for Filter.
type Predicate func(n *instance.Instance) bool

// Filter returns a pruned forest holding the nodes matching pred and every ancestor of a
// match. Kept nodes retain their original relative order. Nodes whose children were
// pruned are copies; unchanged leaves are shared with f.
func Filter(f Forest, pred Predicate) Forest {
	var out Forest
	for _, n := range f {
		kids := n.Children()
		var kept Forest
		if len(kids) > 0 {
			kept = Filter(kids, pred)
		}
		switch {
		case len(kept) > 0:
			out = append(out, n.WithChildren(kept))
		case pred(n):
			if len(kids) > 0 {
				out = append(out, n.WithChildren(nil))
			} else {
				out = append(out, n)
			}
		}
	}
	return out
}

// MatchName returns a case-insensitive substring predicate on node names. An empty term
// matches everything.
func MatchName(term string) Predicate {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(term))
	return func(n *instance.Instance) bool {
		if want == "" {
			return true
		}
		return strings.Contains(fold.String(n.Name), want)
	}
}

// Search filters f by name; an empty term returns f unchanged.
func Search(f Forest, term string) Forest {
	if strings.TrimSpace(term) == "" {
		return f
	}
	return Filter(f, MatchName(term))
}

// DisplayOrder sorts the top level for presentation: ids listed in pinned come first in
// that order, the rest follow by name collation. Only the top-level slice is reordered.
func DisplayOrder(f Forest, pinned []string) Forest {
	col := collate.New(language.Und)
	out := slices.Clone(f)
	slices.SortStableFunc(out, func(a, b *instance.Instance) int {
		ia, ib := slices.Index(pinned, a.ID), slices.Index(pinned, b.ID)
		switch {
		case ia >= 0 && ib >= 0:
			return ia - ib
		case ia >= 0:
			return -1
		case ib >= 0:
			return 1
		}
		return col.CompareString(a.Name, b.Name)
	})
	return out
}
