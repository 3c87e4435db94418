package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("p@ssw0rd1")
	require.NoError(t, err)
	assert.NotEqual(t, "p@ssw0rd1", digest)

	assert.True(t, Verify("p@ssw0rd1", digest))
	assert.False(t, Verify("wrong", digest))
}

func TestDummyHash_NeverMatches(t *testing.T) {
	assert.False(t, Verify("anything", DummyHash))
	assert.False(t, Verify("", DummyHash))
}

func TestHash_Salted(t *testing.T) {
	a, err := Hash("p@ssw0rd1")
	require.NoError(t, err)
	b, err := Hash("p@ssw0rd1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
