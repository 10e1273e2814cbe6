// Package gpu is the batched export boundary between the acceleration
// structure core and the (out of scope) GPU upload/traversal code: it
// flattens a set of instances into the seven arrays a shader-side BVH
// traversal kernel expects, and nothing else. No device, pipeline, or
// buffer-binding code lives here.
package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gekko3d/surf/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUTriangle is the position-only record the global triangle buffer is
// built from; per-triangle extra data lives in GPUTriExtension at the same
// index so shader code can read both buffers in lockstep.
type GPUTriangle struct {
	V0, V1, V2 mgl32.Vec3
}

// ToBytes packs a GPUTriangle the way the teacher's BVHNode.ToBytes packs
// node fields: fixed-size, little-endian, one vec3 padded to vec4 per row.
func (t GPUTriangle) ToBytes() []byte {
	buf := make([]byte, 48)
	putVec3Padded(buf[0:16], t.V0)
	putVec3Padded(buf[16:32], t.V1)
	putVec3Padded(buf[32:48], t.V2)
	return buf
}

// GPUTriExtension carries the per-triangle data a shader needs beyond raw
// positions. It holds only the geometric normal (one padded vec3, 16
// bytes); there are no UV or vertex color fields.
type GPUTriExtension struct {
	Normal mgl32.Vec3
}

func (e GPUTriExtension) ToBytes() []byte {
	buf := make([]byte, 16)
	putVec3Padded(buf, e.Normal)
	return buf
}

// GPUMaterial mirrors core.Material in a GPU-friendly, 16-byte-aligned
// layout.
type GPUMaterial struct {
	Emittance         mgl32.Vec3
	Albedo            mgl32.Vec3
	Absorption        mgl32.Vec3
	Reflectivity      float32
	Refractivity      float32
	IndexOfRefraction float32
}

func (m GPUMaterial) ToBytes() []byte {
	buf := make([]byte, 64)
	putVec3Padded(buf[0:16], m.Emittance)
	putVec3Padded(buf[16:32], m.Albedo)
	putVec3Padded(buf[32:48], m.Absorption)
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(m.Reflectivity))
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(m.Refractivity))
	binary.LittleEndian.PutUint32(buf[56:60], math.Float32bits(m.IndexOfRefraction))
	return buf
}

// GPUInstance is one instance-buffer record: offsets into the global
// triangle/index/node buffers for this instance's BLAS, its material
// index, and both halves of its transform.
type GPUInstance struct {
	TriangleOffset uint32
	IndexOffset    uint32
	NodeOffset     uint32
	MaterialIndex  uint32
	ObjectToWorld  mgl32.Mat4
	WorldToObject  mgl32.Mat4
}

func (inst GPUInstance) ToBytes() []byte {
	buf := make([]byte, 16+2*64)
	binary.LittleEndian.PutUint32(buf[0:4], inst.TriangleOffset)
	binary.LittleEndian.PutUint32(buf[4:8], inst.IndexOffset)
	binary.LittleEndian.PutUint32(buf[8:12], inst.NodeOffset)
	binary.LittleEndian.PutUint32(buf[12:16], inst.MaterialIndex)
	putMat4(buf[16:80], inst.ObjectToWorld)
	putMat4(buf[80:144], inst.WorldToObject)
	return buf
}

// GPULight is one light-buffer record: the owning instance plus that
// instance's triangle count, so a shader can uniformly sample a triangle
// on the light without a second indirection through the instance buffer.
type GPULight struct {
	InstanceIndex  uint32
	PrimitiveCount uint32
}

func (l GPULight) ToBytes() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], l.InstanceIndex)
	binary.LittleEndian.PutUint32(buf[4:8], l.PrimitiveCount)
	return buf
}

// GPUNode is the node-pool record, sourced from bvh.Node: a fixed 48-byte
// layout of two padded vec3 bounds, LeftFirst, Count, and 8 zero bytes of
// tail padding.
type GPUNode struct {
	Min       mgl32.Vec3
	Max       mgl32.Vec3
	LeftFirst uint32
	Count     uint32
}

func (n GPUNode) ToBytes() []byte {
	buf := make([]byte, 48)
	putVec3Padded(buf[0:16], n.Min)
	putVec3Padded(buf[16:32], n.Max)
	binary.LittleEndian.PutUint32(buf[32:36], n.LeftFirst)
	binary.LittleEndian.PutUint32(buf[36:40], n.Count)
	return buf
}

func putVec3Padded(buf []byte, v mgl32.Vec3) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X()))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y()))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Z()))
	binary.LittleEndian.PutUint32(buf[12:16], 0)
}

func putMat4(buf []byte, m mgl32.Mat4) {
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(m[i]))
	}
}

// BatchInfo is the full export: everything a GPU-side scene upload needs,
// built from an instance list in one pass. Field names mirror the
// original GPUBatchInfo's buffers one-to-one.
type BatchInfo struct {
	TriBuffer    []GPUTriangle
	TriExtBuffer []GPUTriExtension
	BLASIndices  []uint32
	BLASNodes    []GPUNode
	Materials    []GPUMaterial
	Instances    []GPUInstance
	Lights       []GPULight
}

// CreateBatchInfo flattens instances into the seven GPU-export arrays.
// Offsets in each GPUInstance record are the running cumulative sum of the
// preceding instances' BLAS sizes, in instances' order — the GPU contract
// this package exists to satisfy.
func CreateBatchInfo(instances []*core.Instance) BatchInfo {
	info := BatchInfo{}

	materialIndex := make(map[*core.Material]uint32)

	for _, inst := range instances {
		tris := inst.BLAS.Triangles()
		nodes := inst.BLAS.Nodes()
		indices := inst.BLAS.Indices()

		triOffset := uint32(len(info.TriBuffer))
		indexOffset := uint32(len(info.BLASIndices))
		nodeOffset := uint32(len(info.BLASNodes))

		for _, tri := range tris {
			info.TriBuffer = append(info.TriBuffer, GPUTriangle{V0: tri.V0, V1: tri.V1, V2: tri.V2})
			info.TriExtBuffer = append(info.TriExtBuffer, GPUTriExtension{Normal: tri.Normal()})
		}
		info.BLASIndices = append(info.BLASIndices, indices...)
		for _, n := range nodes {
			info.BLASNodes = append(info.BLASNodes, GPUNode{Min: n.Box.Min, Max: n.Box.Max, LeftFirst: n.LeftFirst, Count: n.Count})
		}

		matIdx, seen := materialIndex[inst.Material]
		if !seen {
			matIdx = uint32(len(info.Materials))
			materialIndex[inst.Material] = matIdx
			m := inst.Material
			info.Materials = append(info.Materials, GPUMaterial{
				Emittance:         m.Emittance,
				Albedo:            m.Albedo,
				Absorption:        m.Absorption,
				Reflectivity:      m.Reflectivity,
				Refractivity:      m.Refractivity,
				IndexOfRefraction: m.IndexOfRefraction,
			})
		}

		transform := inst.Transform()
		info.Instances = append(info.Instances, GPUInstance{
			TriangleOffset: triOffset,
			IndexOffset:    indexOffset,
			NodeOffset:     nodeOffset,
			MaterialIndex:  matIdx,
			ObjectToWorld:  transform.ObjectToWorld(),
			WorldToObject:  transform.WorldToObject(),
		})

		if inst.Material.IsLight() {
			info.Lights = append(info.Lights, GPULight{
				InstanceIndex:  uint32(len(info.Instances) - 1),
				PrimitiveCount: uint32(len(tris)),
			})
		}
	}

	return info
}
