// Package directive implements the 2-way-SQL directive splitter and branch
// enumerator (§4.1): it recognizes doma-style (`/*%if*/`) and uroboroSQL-style
// (`/*IF*/`) directive comments, builds a tree of conditional groups, and
// produces the minimal-ish set of concrete SQL variants the rest of the
// pipeline formats independently before the merger (§4.6) stitches them back
// into one directive-bearing template.
package directive

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/uroborosql/sqlfmt/ferr"
	"github.com/uroborosql/sqlfmt/lexer"
	"github.com/uroborosql/sqlfmt/token"
)

// Style records which of the two equivalent directive spellings a group was
// written in, so the merger can reproduce the original delimiters verbatim
// (§6.4: "the output preserves the original style's exact directive
// delimiters").
type Style int

const (
	StyleDoma Style = iota
	StyleUroboro
)

// Kind is the directive comment's role within its group.
type Kind int

const (
	KindIf Kind = iota
	KindElseIf
	KindElse
	KindEnd
)

var (
	domaRe    = regexp.MustCompile(`(?is)^/\*\s*%\s*(if|elseif|else|end)\s*(.*?)\s*\*/$`)
	uroboroRe = regexp.MustCompile(`(?is)^/\*\s*(IF|ELIF|ELSE|END)\s*(.*?)\s*\*/$`)
)

func parseHeader(text string) (kind Kind, condition string, style Style, ok bool) {
	if m := domaRe.FindStringSubmatch(text); m != nil {
		return kindFromWord(strings.ToLower(m[1])), m[2], StyleDoma, true
	}
	if m := uroboroRe.FindStringSubmatch(text); m != nil {
		return kindFromWord(strings.ToLower(m[1])), m[2], StyleUroboro, true
	}
	return 0, "", 0, false
}

func kindFromWord(w string) Kind {
	switch w {
	case "if":
		return KindIf
	case "elseif", "elif":
		return KindElseIf
	case "else":
		return KindElse
	default:
		return KindEnd
	}
}

// Branch is one arm of a Group: the IF arm (Condition set, first in Branches),
// an ELSEIF arm (Condition set), or the ELSE arm (Condition empty).
type Branch struct {
	Condition  string
	HeaderText string // the raw directive comment that opens this branch
	Items      []Item

	// Synthetic marks an implicit empty "else" this package adds when a
	// group has no written else branch — 2-way-SQL semantics say the
	// if-body simply vanishes when the condition is false, which is a
	// real alternative the merger needs a diff reference for (§4.6), even
	// though nothing is printed for it (no header, no body).
	Synthetic bool
}

// Group is one `if [elseif...] [else] end` directive block.
type Group struct {
	Style     Style
	Branches  []Branch
	EndHeader string // the raw `/*%end*/` / `/*END*/` comment text
	Start     token.Position
	End       token.Position
}

// Item is one element of a branch's (or the document's top-level) body: a
// literal text run, or a nested directive Group.
type Item struct {
	Text  string
	Group *Group
}

// Tree is the parsed form of a 2-way-SQL document: the literal text and
// directive groups in source order, before any branch has been resolved.
type Tree struct {
	HasDirectives bool
	Items         []Item
}

// Parse scans src for directive comments and builds the directive Tree.
// When src has no directive comments, HasDirectives is false and the caller
// should take the single-SQL path (§4.1).
func Parse(src string) (*Tree, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, &ferr.ParseError{Message: err.Error()}
	}

	var dirToks []token.Token
	for _, t := range toks {
		if t.Kind == token.Directive && lexer.IsDirectiveMarker(t.Text) {
			dirToks = append(dirToks, t)
		}
	}
	if len(dirToks) == 0 {
		return &Tree{HasDirectives: false, Items: []Item{{Text: src}}}, nil
	}

	type frame struct {
		items *[]Item
		group *Group
	}
	var top []Item
	stack := []frame{{items: &top}}
	lastOffset := 0

	for _, tok := range dirToks {
		cur := &stack[len(stack)-1]
		text := src[lastOffset:tok.Start.Offset]
		kind, cond, style, ok := parseHeader(tok.Text)
		if !ok {
			return nil, &ferr.DirectiveError{Start: tok.Start, End: tok.End, Message: fmt.Sprintf("unrecognized directive comment %q", tok.Text)}
		}

		switch kind {
		case KindIf:
			if text != "" {
				*cur.items = append(*cur.items, Item{Text: text})
			}
			g := &Group{Style: style, Start: tok.Start, Branches: []Branch{{Condition: cond, HeaderText: tok.Text}}}
			*cur.items = append(*cur.items, Item{Group: g})
			stack = append(stack, frame{items: &g.Branches[0].Items, group: g})

		case KindElseIf:
			if cur.group == nil {
				return nil, &ferr.DirectiveError{Start: tok.Start, End: tok.End, Message: "elseif directive with no enclosing if"}
			}
			if text != "" {
				*cur.items = append(*cur.items, Item{Text: text})
			}
			cur.group.Branches = append(cur.group.Branches, Branch{Condition: cond, HeaderText: tok.Text})
			stack[len(stack)-1].items = &cur.group.Branches[len(cur.group.Branches)-1].Items

		case KindElse:
			if cur.group == nil {
				return nil, &ferr.DirectiveError{Start: tok.Start, End: tok.End, Message: "else directive with no enclosing if"}
			}
			if text != "" {
				*cur.items = append(*cur.items, Item{Text: text})
			}
			cur.group.Branches = append(cur.group.Branches, Branch{Condition: "", HeaderText: tok.Text})
			stack[len(stack)-1].items = &cur.group.Branches[len(cur.group.Branches)-1].Items

		case KindEnd:
			if cur.group == nil {
				return nil, &ferr.DirectiveError{Start: tok.Start, End: tok.End, Message: "unmatched end directive"}
			}
			if text != "" {
				*cur.items = append(*cur.items, Item{Text: text})
			}
			cur.group.End = tok.End
			cur.group.EndHeader = tok.Text
			if !hasElse(cur.group) {
				cur.group.Branches = append(cur.group.Branches, Branch{Synthetic: true})
			}
			stack = stack[:len(stack)-1]
		}
		lastOffset = tok.End.Offset
	}

	if len(stack) != 1 {
		return nil, &ferr.DirectiveError{Message: "unterminated directive block: missing end"}
	}
	if tail := src[lastOffset:]; tail != "" {
		top = append(top, Item{Text: tail})
	}

	return &Tree{HasDirectives: true, Items: top}, nil
}

func hasElse(g *Group) bool {
	for _, br := range g.Branches {
		if br.Condition == "" {
			return true
		}
	}
	return false
}

// Flatten returns every Group in the tree, in document order, including
// those nested inside other groups' branches.
func Flatten(tree *Tree) []*Group {
	var out []*Group
	var walkItems func(items []Item)
	walkItems = func(items []Item) {
		for _, it := range items {
			if it.Group == nil {
				continue
			}
			out = append(out, it.Group)
			for _, br := range it.Group.Branches {
				walkItems(br.Items)
			}
		}
	}
	walkItems(tree.Items)
	return out
}
