// Package revision carries revision specifications as plain data, without
// any binding to a repository, so they can be serialized or moved across
// goroutine boundaries.
package revision

import (
	"fmt"

	"github.com/gitstate-io/gitstate/githash"
)

// Kind is the shape of a revision specification.
type Kind int

const (
	// IncludeReachable includes commits reachable from the revision, i.e.
	// `a` and its ancestors.
	IncludeReachable Kind = iota
	// ExcludeReachable excludes commits reachable from the revision. Example:
	// `^a`.
	ExcludeReachable
	// RangeBetween covers every commit reachable from From to To, but no
	// ancestors of From. Example: `from..to`.
	RangeBetween
	// ReachableToMergeBase covers every commit reachable through either side,
	// but none reachable by both. Example: `theirs...ours`.
	ReachableToMergeBase
	// IncludeReachableFromParents includes every commit of all parents of the
	// revision, but not the revision itself. Example: `a^@`.
	IncludeReachableFromParents
	// ExcludeReachableFromParents excludes every commit of all parents of the
	// revision, but not the revision itself. Example: `a^!`.
	ExcludeReachableFromParents
)

func (k Kind) String() string {
	switch k {
	case IncludeReachable:
		return "include-reachable"
	case ExcludeReachable:
		return "exclude-reachable"
	case RangeBetween:
		return "range-between"
	case ReachableToMergeBase:
		return "reachable-to-merge-base"
	case IncludeReachableFromParents:
		return "include-reachable-from-parents"
	case ExcludeReachableFromParents:
		return "exclude-reachable-from-parents"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Spec is one revision specification. The object IDs should name committish
// objects but are not required to. From is always set; To is only meaningful
// for RangeBetween (the end of the range, included) and ReachableToMergeBase
// (our side of the merge).
type Spec struct {
	Kind Kind
	From githash.ObjectID
	To   githash.ObjectID
}
