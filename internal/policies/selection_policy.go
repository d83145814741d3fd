package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// SelectionPolicy decides what happens to user-enabled target names that
// match no known build unit.
type SelectionPolicy struct {
	Strict bool
}

func NewSelectionPolicy(strict bool) SelectionPolicy {
	return SelectionPolicy{Strict: strict}
}

// CheckUnknown returns an error for unknown names in strict mode and nil
// otherwise, in which case the caller drops them.
func (p SelectionPolicy) CheckUnknown(unknown []string) error {
	if !p.Strict || len(unknown) == 0 {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unknown multiconfig targets selected: %s", strings.Join(unknown, ", ")))
}
