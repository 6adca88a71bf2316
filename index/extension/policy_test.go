package extension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitstate-io/gitstate/index/extension"
)

func TestPolicyWantSignature(t *testing.T) {
	link := extension.Signature{'l', 'i', 'n', 'k'}

	all := extension.All()
	assert.True(t, all.WantSignature(extension.TreeSignature))
	assert.True(t, all.WantSignature(extension.EndOfIndexEntrySignature))
	assert.True(t, all.WantSignature(link))

	none := extension.None()
	assert.False(t, none.WantSignature(extension.TreeSignature))
	assert.False(t, none.WantSignature(extension.EndOfIndexEntrySignature))
	assert.False(t, none.WantSignature(link))

	given := extension.Given(map[extension.Signature]bool{
		extension.TreeSignature: true,
		link:                    false,
	})
	assert.True(t, given.WantSignature(extension.TreeSignature))
	assert.False(t, given.WantSignature(link))
	assert.False(t, given.WantSignature(extension.EndOfIndexEntrySignature),
		"signatures absent from the map are not written")
}

func TestZeroValuePolicyWritesEverything(t *testing.T) {
	var p extension.Policy
	assert.True(t, p.WantSignature(extension.TreeSignature))
}
