// Package comment implements the trailing-vs-leading-standalone comment
// attacher (§4.3): every node that may carry comments keeps its original
// Text verbatim, classified only by where in the token
// stream it sat relative to the surrounding real tokens. No comment is ever
// dropped (§3.4) — a node that is deleted during translation (e.g. a
// redundant parenthesis pair) must have its comments re-anchored onto the
// node that survives it, which is what Reanchor is for.
package comment

import "github.com/uroborosql/sqlfmt/token"

// SplitLeading scans toks from the front and peels off any comment tokens
// that appear before the first non-trivia token, returning their text and
// the remaining tokens starting at that first real token (or at the tail
// of pure-trivia input).
func SplitLeading(toks []token.Token) (leading []string, rest []token.Token) {
	i := 0
	for i < len(toks) && toks[i].IsComment() {
		leading = append(leading, text(toks[i]))
		i++
	}
	return leading, toks[i:]
}

// SplitTrailing scans toks from the back and peels off any comment tokens
// that appear after the last non-trivia token, returning the remaining
// tokens up to (and including) that last real token, and the trailing
// comments' text in original source order.
func SplitTrailing(toks []token.Token) (rest []token.Token, trailing []string) {
	j := len(toks)
	var rev []string
	for j > 0 && toks[j-1].IsComment() {
		rev = append(rev, text(toks[j-1]))
		j--
	}
	for k := len(rev) - 1; k >= 0; k-- {
		trailing = append(trailing, rev[k])
	}
	return toks[:j], trailing
}

// Interior collects every comment token strictly between the first and last
// non-trivia tokens of toks — comments written in the middle of a
// construct, e.g. `a /* note */ + b`. The formatter has no narrower node to
// anchor these to than the construct itself, so they are surfaced
// separately for the caller to fold into whichever side (leading of the
// following sub-node, in practice) makes sense for that construct.
func Interior(toks []token.Token) []string {
	_, afterLeading := SplitLeading(toks)
	core, _ := SplitTrailing(afterLeading)
	var out []string
	for _, t := range core {
		if t.IsComment() {
			out = append(out, text(t))
		}
	}
	return out
}

func text(t token.Token) string {
	if t.Kind == token.CommentBlock {
		return t.Text
	}
	return t.Text
}

// Anchor is the minimal shape Reanchor needs: anything that accepts
// appended leading and trailing comments (*layout.Anchor satisfies this
// through its AppendLeading/AppendTrailing methods — kept as a separate
// tiny interface here so this package does not import layout).
type Anchor interface {
	AppendLeading(text string)
	AppendTrailing(text string)
}

// Reanchor moves every comment in from onto to, in order, leading then
// trailing — used when a node is deleted during translation and its
// comments must survive on the surviving parent (§3.4).
func Reanchor(fromLeading, fromTrailing []string, to Anchor) {
	for _, c := range fromLeading {
		to.AppendLeading(c)
	}
	for _, c := range fromTrailing {
		to.AppendTrailing(c)
	}
}
