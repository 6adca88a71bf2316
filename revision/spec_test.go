package revision_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitstate-io/gitstate/githash"
	"github.com/gitstate-io/gitstate/revision"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "include-reachable", revision.IncludeReachable.String())
	assert.Equal(t, "range-between", revision.RangeBetween.String())
	assert.Equal(t, "kind(42)", revision.Kind(42).String())
}

func TestSpecIsPlainData(t *testing.T) {
	from := githash.ObjectID{0x01}
	to := githash.ObjectID{0x02}
	spec := revision.Spec{Kind: revision.RangeBetween, From: from, To: to}

	copied := spec
	assert.Equal(t, spec, copied)
	assert.Equal(t, "01", copied.From.String())
	assert.Equal(t, "02", copied.To.String())
}
