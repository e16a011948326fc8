package directive

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// ValidateConditions parses (but does not evaluate) every branch condition
// in the tree with a permissive CEL environment, surfacing malformed
// directive expressions as diagnostics without needing real bind values —
// the formatter never executes a 2-way-SQL template, it only needs to know
// the condition is *some* well-formed boolean expression before treating
// its surrounding directive as structurally valid (§4.1, §7).
func ValidateConditions(tree *Tree) []error {
	env, err := cel.NewEnv()
	if err != nil {
		// An environment construction failure is an engine defect, not a
		// template problem; conditions pass through unchecked rather than
		// rejecting every input.
		return nil
	}
	var errs []error
	walkConditions(tree.Items, env, &errs)
	return errs
}

func walkConditions(items []Item, env *cel.Env, errs *[]error) {
	for _, it := range items {
		if it.Group == nil {
			continue
		}
		for _, br := range it.Group.Branches {
			if br.Condition == "" {
				continue
			}
			if _, iss := env.Parse(br.Condition); iss != nil && iss.Err() != nil {
				*errs = append(*errs, fmt.Errorf("directive condition %q: %w", br.Condition, iss.Err()))
			}
			walkConditions(br.Items, env, errs)
		}
	}
}
