package policies

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// DuplicateCorePolicy decides whether a repeated core name in a topology
// table replaces the earlier record or fails the load.
type DuplicateCorePolicy struct {
	Strict bool
}

func NewDuplicateCorePolicy(strict bool) DuplicateCorePolicy {
	return DuplicateCorePolicy{Strict: strict}
}

func (p DuplicateCorePolicy) CheckDuplicate(path string, line int, name string) error {
	if !p.Strict {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("duplicate core name %s at %s:%d", name, path, line))
}
