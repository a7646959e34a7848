package scene

import (
	"time"

	"github.com/yassineboubaker/blazert/bvh"
	"github.com/yassineboubaker/blazert/log"
	"github.com/yassineboubaker/blazert/primitive"
	"github.com/yassineboubaker/blazert/types"
)

// A Scene holds at most one BVH per primitive class and merges their query
// results. Geometry is registered through the add functions, which borrow
// the caller's primitive arrays, then frozen with Commit. A committed scene
// is immutable and safe for concurrent Intersect calls.
type Scene[T types.Float] struct {
	logger log.Logger

	buildOptions bvh.BuildOptions[T]
	sched        bvh.Scheduler

	committed  bool
	geometries uint32

	triangles    *primitive.TriMesh[T]
	trianglesID  uint32
	trianglesBVH *bvh.Tree[T]

	spheres    *primitive.SphereSet[T]
	spheresID  uint32
	spheresBVH *bvh.Tree[T]
}

// Create an empty scene that builds its hierarchies with the given options.
func New[T types.Float](opts bvh.BuildOptions[T]) *Scene[T] {
	s := &Scene[T]{
		logger:       log.New("scene"),
		buildOptions: opts,
		sched:        bvh.NewSerialScheduler(),
	}
	if opts.EnableParallel {
		s.sched = bvh.NewWorkerScheduler(0)
	}
	return s
}

// AddTriangles registers a triangle mesh with the scene and returns its
// geometry id. The vertex and face slices are borrowed, not copied, and must
// stay alive and unchanged for the lifetime of the scene.
func (s *Scene[T]) AddTriangles(vertices []types.Vec3[T], faces []types.Vec3i) (uint32, error) {
	if s.committed {
		return bvh.NoHit, ErrAlreadyCommitted
	}
	if s.triangles != nil {
		return bvh.NoHit, ErrClassAlreadyRegistered
	}
	if len(vertices) == 0 || len(faces) == 0 {
		return bvh.NoHit, ErrEmptyInput
	}

	s.triangles = primitive.NewTriMesh(vertices, faces)
	s.trianglesID = s.geometries
	s.geometries++
	return s.trianglesID, nil
}

// AddSpheres registers a sphere set with the scene and returns its geometry
// id. The center and radius slices are borrowed, not copied, and must stay
// alive and unchanged for the lifetime of the scene.
func (s *Scene[T]) AddSpheres(centers []types.Vec3[T], radii []T) (uint32, error) {
	if s.committed {
		return bvh.NoHit, ErrAlreadyCommitted
	}
	if s.spheres != nil {
		return bvh.NoHit, ErrClassAlreadyRegistered
	}
	if len(centers) != len(radii) {
		return bvh.NoHit, ErrLengthMismatch
	}
	if len(centers) == 0 {
		return bvh.NoHit, ErrEmptyInput
	}

	s.spheres = primitive.NewSphereSet(centers, radii)
	s.spheresID = s.geometries
	s.geometries++
	return s.spheresID, nil
}

// Commit builds one BVH per registered class and freezes the scene. A scene
// commits at most once.
func (s *Scene[T]) Commit() error {
	if s.committed {
		return ErrAlreadyCommitted
	}
	if s.geometries == 0 {
		return ErrEmptyInput
	}

	start := time.Now()
	if s.triangles != nil {
		tree, err := bvh.Build[T](s.triangles, s.buildOptions, s.sched)
		if err != nil {
			return err
		}
		s.trianglesBVH = tree
	}
	if s.spheres != nil {
		tree, err := bvh.Build[T](s.spheres, s.buildOptions, s.sched)
		if err != nil {
			return err
		}
		s.spheresBVH = tree
	}

	s.committed = true
	s.logger.Noticef(
		"committed %d geometries in %d ms",
		s.geometries, time.Since(start).Nanoseconds()/1e6,
	)
	return nil
}

// Committed reports whether Commit has run.
func (s *Scene[T]) Committed() bool {
	return s.committed
}

// Intersect queries every registered class and returns the merged result.
// Triangles are tried before spheres, whatever order the classes were
// registered in, and results are merged by strict hit distance comparison,
// so equal-distance hits resolve to the triangle class. For
// any-hit rays the first class to report a hit short-circuits the rest. An
// uncommitted scene reports a miss.
func (s *Scene[T]) Intersect(ray *bvh.Ray[T], opts bvh.TraceOptions) (bvh.Hit[T], bool) {
	best := bvh.NewHit[T]()
	if !s.committed {
		return best, false
	}

	found := false
	if s.trianglesBVH != nil {
		isect := primitive.NewTriangleIntersector(s.triangles)
		if hit, ok := s.trianglesBVH.Traverse(ray, isect, opts); ok {
			hit.GeomID = s.trianglesID
			best = hit
			found = true
			if ray.AnyHit {
				return best, true
			}
		}
	}

	if s.spheresBVH != nil {
		isect := primitive.NewSphereIntersector(s.spheres)
		if hit, ok := s.spheresBVH.Traverse(ray, isect, opts); ok && hit.Distance < best.Distance {
			hit.GeomID = s.spheresID
			best = hit
			found = true
		}
	}

	return best, found
}

// TriangleGeometry exposes the registered triangle class for serialization
// collaborators. The tree is nil before Commit.
func (s *Scene[T]) TriangleGeometry() (*primitive.TriMesh[T], *bvh.Tree[T], uint32) {
	return s.triangles, s.trianglesBVH, s.trianglesID
}

// SphereGeometry exposes the registered sphere class for serialization
// collaborators. The tree is nil before Commit.
func (s *Scene[T]) SphereGeometry() (*primitive.SphereSet[T], *bvh.Tree[T], uint32) {
	return s.spheres, s.spheresBVH, s.spheresID
}

// Restore assembles an already-committed scene from prebuilt parts, such as
// a deserialized archive. Classes must arrive as complete pairs; geometry
// ids are assigned in registration order, triangles first.
func Restore[T types.Float](tri *primitive.TriMesh[T], triBVH *bvh.Tree[T], sph *primitive.SphereSet[T], sphBVH *bvh.Tree[T]) (*Scene[T], error) {
	if (tri == nil) != (triBVH == nil) || (sph == nil) != (sphBVH == nil) {
		return nil, ErrNotCommitted
	}
	if tri == nil && sph == nil {
		return nil, ErrEmptyInput
	}

	s := New(bvh.NewBuildOptions[T]())
	if tri != nil {
		s.triangles = tri
		s.trianglesBVH = triBVH
		s.trianglesID = s.geometries
		s.geometries++
	}
	if sph != nil {
		s.spheres = sph
		s.spheresBVH = sphBVH
		s.spheresID = s.geometries
		s.geometries++
	}
	s.committed = true
	return s, nil
}
