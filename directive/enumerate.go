package directive

import "strings"

// Selection records, for every Group reached by a given variant, which
// branch index was chosen.
type Selection map[*Group]int

// Variant is one concrete rendering of the document with every directive
// resolved to a single branch, plus the Selection that produced it (needed
// by the merger to know which branch supplied which rendered text).
type Variant struct {
	Text      string
	Selection Selection
}

// Enumerate walks the tree and returns the minimal-ish covering set of
// variants described in §4.1: "for an if/elseif*/else group with k
// branches, pick exactly k variants picking each branch in turn while
// holding outer choices fixed." Nested groups are covered recursively, but
// only within the variants that select the branch containing them — a
// nested group's branches never need separate coverage in a sibling
// branch's variants, since that code path can't reach them (§9 Open
// Question (a) explicitly allows a non-exhaustive conservative cover).
func Enumerate(tree *Tree) []Variant {
	selections := enumerateItems(tree.Items)
	variants := make([]Variant, len(selections))
	for i, sel := range selections {
		variants[i] = Variant{Text: Render(tree.Items, sel), Selection: sel}
	}
	return variants
}

func enumerateItems(items []Item) []Selection {
	variants := []Selection{{}}
	for _, it := range items {
		if it.Group == nil {
			continue
		}
		g := it.Group

		branchSubs := make([][]Selection, len(g.Branches))
		for bi, br := range g.Branches {
			sub := enumerateItems(br.Items)
			for i := range sub {
				sub[i][g] = bi
			}
			branchSubs[bi] = sub
		}

		baseline := cloneSelection(variants[0])
		var next []Selection
		for _, s := range branchSubs[0] {
			next = append(next, mergeSelection(variants[0], s))
		}
		next = append(next, variants[1:]...)
		for bi := 1; bi < len(g.Branches); bi++ {
			for _, s := range branchSubs[bi] {
				next = append(next, mergeSelection(baseline, s))
			}
		}
		variants = next
	}
	return variants
}

func cloneSelection(s Selection) Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func mergeSelection(a, b Selection) Selection {
	out := cloneSelection(a)
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Render materializes one concrete SQL text for the given Selection,
// replacing every Group with the chosen branch's body and dropping the
// directive comments themselves (§4.1: "replaces ... by X").
func Render(items []Item, sel Selection) string {
	var b strings.Builder
	renderInto(&b, items, sel)
	return b.String()
}

func renderInto(b *strings.Builder, items []Item, sel Selection) {
	for _, it := range items {
		if it.Group == nil {
			b.WriteString(it.Text)
			continue
		}
		choice := sel[it.Group]
		if choice < 0 || choice >= len(it.Group.Branches) {
			choice = 0
		}
		renderInto(b, it.Group.Branches[choice].Items, sel)
	}
}
