package mesh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerRegisterAndLookup(t *testing.T) {
	server := NewAssetServer()
	rng := rand.New(rand.NewSource(7))
	tris := RandomSoup(5, rng)

	asset := server.Register(tris)
	require.NotEmpty(t, asset.ID)
	require.Len(t, asset.Triangles, 5)

	found := server.Lookup(asset.ID)
	require.Same(t, asset, found)
}

func TestServerLookupMissReturnsNil(t *testing.T) {
	server := NewAssetServer()
	require.Nil(t, server.Lookup(AssetID("does-not-exist")))
}

func TestRandomSoupIsDeterministicForFixedSeed(t *testing.T) {
	a := RandomSoup(10, rand.New(rand.NewSource(99)))
	b := RandomSoup(10, rand.New(rand.NewSource(99)))

	require.Equal(t, a, b)
}
