package io

import (
	"encoding/gob"
	"errors"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/math/f32"

	"github.com/yassineboubaker/blazert/bvh"
	"github.com/yassineboubaker/blazert/log"
	"github.com/yassineboubaker/blazert/primitive"
	"github.com/yassineboubaker/blazert/scene"
	"github.com/yassineboubaker/blazert/types"
)

// Archive layout: a five byte header (magic plus format version) followed by
// a zstd-compressed gob stream holding, per registered class, the node
// array, the primitive permutation and the primitive data. Vectors are
// stored in single precision regardless of the precision the scene was
// built with, so ReadScene always yields a float32 scene.

const archiveVersion = 1

var archiveMagic = [4]byte{'B', 'L', 'Z', 'T'}

var (
	ErrBadMagic           = errors.New("scene/io: not a scene archive")
	ErrUnsupportedVersion = errors.New("scene/io: unsupported archive version")
	ErrCorruptArchive     = errors.New("scene/io: corrupt archive")
)

var logger = log.New("scene/io")

type nodeRecord struct {
	Min   f32.Vec3
	Max   f32.Vec3
	LData int32
	RData int32
	Axis  uint8
}

type treeRecord struct {
	Nodes []nodeRecord
	Prims []uint32
	Stats bvh.BuildStats
}

type triangleRecord struct {
	Vertices []f32.Vec3
	Faces    []types.Vec3i
	Tree     treeRecord
}

type sphereRecord struct {
	Centers []f32.Vec3
	Radii   []float32
	Tree    treeRecord
}

type archive struct {
	Triangles *triangleRecord
	Spheres   *sphereRecord
}

// WriteScene serializes a committed scene to w.
func WriteScene[T types.Float](w io.Writer, sc *scene.Scene[T]) error {
	if !sc.Committed() {
		return scene.ErrNotCommitted
	}

	if _, err := w.Write(archiveMagic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{archiveVersion}); err != nil {
		return err
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}

	var ar archive
	if mesh, tree, _ := sc.TriangleGeometry(); mesh != nil {
		rec := &triangleRecord{
			Vertices: make([]f32.Vec3, len(mesh.Vertices)),
			Faces:    mesh.Faces,
			Tree:     packTree(tree),
		}
		for i, v := range mesh.Vertices {
			rec.Vertices[i] = packVec3(v)
		}
		ar.Triangles = rec
	}
	if set, tree, _ := sc.SphereGeometry(); set != nil {
		rec := &sphereRecord{
			Centers: make([]f32.Vec3, len(set.Centers)),
			Radii:   make([]float32, len(set.Radii)),
			Tree:    packTree(tree),
		}
		for i, c := range set.Centers {
			rec.Centers[i] = packVec3(c)
		}
		for i, r := range set.Radii {
			rec.Radii[i] = float32(r)
		}
		ar.Spheres = rec
	}

	if err = gob.NewEncoder(zw).Encode(&ar); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ReadScene deserializes a committed scene from r. The archive stores single
// precision data, so the restored scene is always instantiated at float32.
func ReadScene(r io.Reader) (*scene.Scene[float32], error) {
	var header [5]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, ErrBadMagic
	}
	if [4]byte(header[:4]) != archiveMagic {
		return nil, ErrBadMagic
	}
	if header[4] != archiveVersion {
		return nil, ErrUnsupportedVersion
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ar archive
	if err = gob.NewDecoder(zr).Decode(&ar); err != nil {
		return nil, ErrCorruptArchive
	}

	var (
		mesh    *primitive.TriMesh[float32]
		meshBVH *bvh.Tree[float32]
		set     *primitive.SphereSet[float32]
		setBVH  *bvh.Tree[float32]
	)
	if rec := ar.Triangles; rec != nil {
		vertices := make([]types.Vec3[float32], len(rec.Vertices))
		for i, v := range rec.Vertices {
			vertices[i] = unpackVec3(v)
		}
		mesh = primitive.NewTriMesh(vertices, rec.Faces)
		meshBVH = unpackTree(rec.Tree)
	}
	if rec := ar.Spheres; rec != nil {
		centers := make([]types.Vec3[float32], len(rec.Centers))
		for i, c := range rec.Centers {
			centers[i] = unpackVec3(c)
		}
		set = primitive.NewSphereSet(centers, rec.Radii)
		setBVH = unpackTree(rec.Tree)
	}

	return scene.Restore(mesh, meshBVH, set, setBVH)
}

// WriteFile serializes a committed scene to the named file.
func WriteFile[T types.Float](path string, sc *scene.Scene[T]) error {
	logger.Noticef(`writing compressed scene archive to "%s"`, path)
	start := time.Now()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = WriteScene(f, sc); err != nil {
		return err
	}

	logger.Infof("archive written in %d ms", time.Since(start).Nanoseconds()/1e6)
	return f.Sync()
}

// ReadFile deserializes a scene from the named file.
func ReadFile(path string) (*scene.Scene[float32], error) {
	logger.Noticef(`reading scene archive from "%s"`, path)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadScene(f)
}

func packVec3[T types.Float](v types.Vec3[T]) f32.Vec3 {
	return f32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func unpackVec3(v f32.Vec3) types.Vec3[float32] {
	return types.Vec3[float32]{v[0], v[1], v[2]}
}

func packTree[T types.Float](tree *bvh.Tree[T]) treeRecord {
	rec := treeRecord{
		Nodes: make([]nodeRecord, len(tree.Nodes)),
		Prims: tree.Prims,
		Stats: tree.Stats,
	}
	for i, n := range tree.Nodes {
		rec.Nodes[i] = nodeRecord{
			Min:   packVec3(n.Min),
			Max:   packVec3(n.Max),
			LData: n.LData,
			RData: n.RData,
			Axis:  n.Axis,
		}
	}
	return rec
}

func unpackTree(rec treeRecord) *bvh.Tree[float32] {
	tree := &bvh.Tree[float32]{
		Nodes: make([]bvh.Node[float32], len(rec.Nodes)),
		Prims: rec.Prims,
		Stats: rec.Stats,
	}
	for i, n := range rec.Nodes {
		tree.Nodes[i] = bvh.Node[float32]{
			Min:   unpackVec3(n.Min),
			Max:   unpackVec3(n.Max),
			LData: n.LData,
			RData: n.RData,
			Axis:  n.Axis,
		}
	}
	return tree
}
