package cmd

import (
	"errors"
	"math/rand"
	"time"

	"github.com/urfave/cli"

	"github.com/yassineboubaker/blazert/bvh"
	"github.com/yassineboubaker/blazert/types"
)

// Cast a batch of pseudo-random rays at a scene and report intersection
// throughput. The generator is seeded with a constant so repeated runs cast
// the same rays.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("bench: expected a single scene file argument")
	}

	sc, err := loadScene(ctx.Args().First(), ctx.Bool("parallel"))
	if err != nil {
		return err
	}

	bounds := types.NewAABB[float32]()
	if _, tree, _ := sc.TriangleGeometry(); tree != nil {
		bounds = bounds.Expand(tree.BBox())
	}
	if _, tree, _ := sc.SphereGeometry(); tree != nil {
		bounds = bounds.Expand(tree.BBox())
	}

	// Rays start on an inflated copy of the scene box and point at random
	// targets inside it, so most of them actually enter the hierarchy.
	size := bounds.Size()
	margin := size.Len() * 0.5
	outer := types.AABB[float32]{
		Min: bounds.Min.Sub(types.Vec3[float32]{margin, margin, margin}),
		Max: bounds.Max.Add(types.Vec3[float32]{margin, margin, margin}),
	}

	rayCount := ctx.Int("rays")
	if rayCount <= 0 {
		rayCount = 100000
	}
	anyHit := ctx.Bool("any-hit")

	rng := rand.New(rand.NewSource(42))
	sample := func(box types.AABB[float32]) types.Vec3[float32] {
		s := box.Size()
		return types.Vec3[float32]{
			box.Min[0] + rng.Float32()*s[0],
			box.Min[1] + rng.Float32()*s[1],
			box.Min[2] + rng.Float32()*s[2],
		}
	}

	opts := bvh.NewTraceOptions()
	hits := 0
	start := time.Now()
	for i := 0; i < rayCount; i++ {
		origin := sample(outer)
		dir := sample(bounds).Sub(origin)

		ray, err := bvh.NewRay(origin, dir, 0, types.Inf[float32]())
		if err != nil {
			continue
		}
		ray.AnyHit = anyHit

		if _, ok := sc.Intersect(&ray, opts); ok {
			hits++
		}
	}
	elapsed := time.Since(start)

	raysPerSec := float64(rayCount) / elapsed.Seconds()
	logger.Noticef(
		"cast %d rays in %d ms (%.0f rays/sec), %d hits",
		rayCount, elapsed.Nanoseconds()/1e6, raysPerSec, hits,
	)
	return nil
}
