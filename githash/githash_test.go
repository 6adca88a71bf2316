package githash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitstate-io/gitstate/githash"
	"github.com/gitstate-io/gitstate/util/status"
)

func TestKindSizes(t *testing.T) {
	assert.Equal(t, 20, githash.SHA1.Size())
	assert.Equal(t, 32, githash.SHA256.Size())
	assert.Equal(t, githash.SHA1.Size(), githash.SHA1.New().Size())
	assert.Equal(t, githash.SHA256.Size(), githash.SHA256.New().Size())
}

func TestKindFromString(t *testing.T) {
	kind, err := githash.KindFromString("sha1")
	require.NoError(t, err)
	assert.Equal(t, githash.SHA1, kind)

	kind, err = githash.KindFromString("sha256")
	require.NoError(t, err)
	assert.Equal(t, githash.SHA256, kind)

	_, err = githash.KindFromString("md5")
	require.Error(t, err)
	assert.True(t, status.IsInvalidArgumentError(err))
}

func TestObjectID(t *testing.T) {
	assert.True(t, githash.ObjectID(nil).IsNull())
	assert.True(t, githash.ObjectID(make([]byte, 20)).IsNull())

	id := githash.ObjectID{0xde, 0xad, 0xbe, 0xef}
	assert.False(t, id.IsNull())
	assert.Equal(t, "deadbeef", id.String())
}
