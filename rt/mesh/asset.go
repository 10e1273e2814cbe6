// Package mesh owns triangle mesh data external to the acceleration
// structure core: loading, procedural generation, and the asset registry a
// BLAS is eventually built over.
package mesh

import (
	"github.com/gekko3d/surf/rt/geom"
	"github.com/google/uuid"
)

// AssetID identifies a MeshAsset independent of where it's stored, the way
// the teacher's AssetId identifies a MeshAsset/MaterialAsset.
type AssetID string

func newAssetID() AssetID {
	return AssetID(uuid.NewString())
}

// MeshAsset is a loaded or generated mesh: a flat triangle list ready to
// hand to bvh.NewBLAS. A mesh is built/loaded once and owned by the scene
// for its whole lifetime; the BVH never mutates it.
type MeshAsset struct {
	ID        AssetID
	Triangles []geom.Triangle
}

// AssetServer is a small registry mapping AssetIDs to loaded MeshAssets,
// mirroring the teacher's AssetServer for meshes/materials.
type AssetServer struct {
	meshes map[AssetID]*MeshAsset
}

// NewAssetServer returns an empty mesh registry.
func NewAssetServer() *AssetServer {
	return &AssetServer{meshes: make(map[AssetID]*MeshAsset)}
}

// Register assigns a fresh AssetID to tris and stores it, returning the
// registered MeshAsset.
func (s *AssetServer) Register(tris []geom.Triangle) *MeshAsset {
	asset := &MeshAsset{ID: newAssetID(), Triangles: tris}
	s.meshes[asset.ID] = asset
	return asset
}

// Lookup returns the asset for id, or nil if it isn't registered.
func (s *AssetServer) Lookup(id AssetID) *MeshAsset {
	return s.meshes[id]
}
