// Package merge implements the 2-way-SQL branch merger (§4.6): given the
// formatted text of every enumerated variant, it reconstructs one output
// that restores each directive block at its original position.
//
// Variant texts disagree only inside the window belonging to the one
// directive group whose branch selection differs from the global baseline
// (by construction of directive.Enumerate); the merger finds that window by
// taking the common leading/trailing lines between a group's baseline
// rendering and an alternate rendering, the same "common prefix and suffix
// lines are taken verbatim" procedure described in §4.6.
package merge

import (
	"strings"

	"github.com/uroborosql/sqlfmt/directive"
	"github.com/uroborosql/sqlfmt/ferr"
)

// Rendered pairs one directive.Variant's Selection with the fully formatted
// text the rest of the pipeline produced for that variant's concrete SQL.
type Rendered struct {
	Selection directive.Selection
	Text      string
}

// Merge reconciles the rendered variants back into one directive-bearing
// template. When the tree carries no directives there is exactly one
// variant and its text is returned unchanged.
func Merge(tree *directive.Tree, rendered []Rendered) (string, error) {
	if !tree.HasDirectives {
		if len(rendered) != 1 {
			return "", &ferr.InternalMergeError{Message: "non-directive tree produced more than one variant"}
		}
		return rendered[0].Text, nil
	}
	if len(rendered) == 0 {
		return "", &ferr.InternalMergeError{Message: "no rendered variants to merge"}
	}

	byGroup, err := indexByGroup(tree, rendered)
	if err != nil {
		return "", err
	}

	baseline := splitLines(rendered[0].Text)
	out, err := substitute(tree.Items, baseline, 0, byGroup)
	if err != nil {
		return "", err
	}
	return strings.Join(out, "\n"), nil
}

// branchLines is, per Group, the line-sliced rendered text of each branch,
// all measured against the same pair of representative documents so every
// branch's window shares one consistent absolute coordinate space.
type branchLines struct {
	lines map[int][]string
	start int // absolute line index (within the representative docs) of this group's window
}

func indexByGroup(tree *directive.Tree, rendered []Rendered) (map[*directive.Group]branchLines, error) {
	docByBranch := map[*directive.Group]map[int][]string{}
	for _, r := range rendered {
		lines := splitLines(r.Text)
		for g, bi := range r.Selection {
			if docByBranch[g] == nil {
				docByBranch[g] = map[int][]string{}
			}
			if _, ok := docByBranch[g][bi]; !ok {
				docByBranch[g][bi] = lines
			}
		}
	}

	out := map[*directive.Group]branchLines{}
	for _, g := range directive.Flatten(tree) {
		docs := docByBranch[g]
		if docs == nil || docs[0] == nil {
			return nil, &ferr.InternalMergeError{Message: "no rendered variant covers a directive group's baseline branch"}
		}
		var refBi = -1
		for bi := 1; bi < len(g.Branches); bi++ {
			if docs[bi] != nil {
				refBi = bi
				break
			}
		}
		if refBi == -1 {
			return nil, &ferr.InternalMergeError{Message: "directive group has no alternate branch to diff against"}
		}
		prefix := commonPrefixLines(docs[0], docs[refBi])
		suffix := commonSuffixLines(docs[0][prefix:], docs[refBi][prefix:])

		bl := branchLines{lines: map[int][]string{}, start: prefix}
		for bi := range g.Branches {
			d := docs[bi]
			if d == nil {
				bl.lines[bi] = nil
				continue
			}
			end := len(d) - suffix
			if end < prefix {
				end = prefix
			}
			bl.lines[bi] = d[prefix:end]
		}
		out[g] = bl
	}
	return out, nil
}

// substitute walks items (a branch body or the document top level) and
// replaces every nested directive group's baseline-rendered window with
// its fully merged (directive-marker-restored) block. base is the absolute
// line index at which body starts.
func substitute(items []directive.Item, body []string, base int, byGroup map[*directive.Group]branchLines) ([]string, error) {
	out := append([]string(nil), body...)
	// Nested groups are spliced back-to-front so earlier splices don't
	// invalidate the absolute offsets computed for ones still pending.
	type splice struct {
		startRel, endRel int
		block            []string
	}
	var splices []splice

	for _, it := range items {
		if it.Group == nil {
			continue
		}
		g := it.Group
		bl, ok := byGroup[g]
		if !ok {
			return nil, &ferr.InternalMergeError{Message: "directive group missing from merge index"}
		}
		block, err := renderGroup(g, byGroup)
		if err != nil {
			return nil, err
		}
		baseBody := bl.lines[0]
		startRel := bl.start - base
		endRel := startRel + len(baseBody)
		splices = append(splices, splice{startRel: startRel, endRel: endRel, block: block})
	}

	for i := len(splices) - 1; i >= 0; i-- {
		s := splices[i]
		if s.startRel < 0 || s.endRel > len(out) || s.startRel > s.endRel {
			return nil, &ferr.InternalMergeError{Message: "directive group window out of range during merge"}
		}
		merged := append([]string{}, out[:s.startRel]...)
		merged = append(merged, s.block...)
		merged = append(merged, out[s.endRel:]...)
		out = merged
	}
	return out, nil
}

// renderGroup produces the full `/*%if*/ ... /*%end*/` block for g,
// recursively substituting any further-nested groups within each branch.
func renderGroup(g *directive.Group, byGroup map[*directive.Group]branchLines) ([]string, error) {
	bl, ok := byGroup[g]
	if !ok {
		return nil, &ferr.InternalMergeError{Message: "directive group missing from merge index"}
	}

	var out []string
	for bi, br := range g.Branches {
		if br.Synthetic {
			continue
		}
		out = append(out, br.HeaderText)
		body := bl.lines[bi]
		merged, err := substitute(br.Items, body, bl.start, byGroup)
		if err != nil {
			return nil, err
		}
		out = append(out, merged...)
	}
	out = append(out, g.EndHeader)
	return out, nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

func commonPrefixLines(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func commonSuffixLines(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}
