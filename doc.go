// Package spruce is a dual-state 3D morphing engine: thousands of particles
// and instanced ornaments flow between a dispersed spherical cloud and a
// cone-spiral tree under a single target-shape signal.
//
// The engine has two halves. Layout generation runs once at setup and
// produces, per group, two immutable position sets — a uniform-in-sphere
// "scatter" cloud and a golden-angle cone "tree" — plus per-element random
// seeds, scales, and rotations. Morph driving runs every frame: each group's
// driver moves a progress scalar toward the target with a frame-rate
// independent exponential approach, applies cubic ease-in-out, and rewrites
// flat output buffers (positions and point sizes for foliage, full 4x4
// instance transforms for ornaments) with secondary motion layered on top.
//
// # Quick start
//
//	scene := spruce.DefaultSceneConfig().Build()
//	renderer := spruce.NewRenderer()
//
//	// each frame:
//	scene.Update(delta)                 // advance all groups
//	renderer.Draw(screen, scene)        // or consume the buffers yourself
//
//	// on user action:
//	scene.Toggle()                      // morph the other way, mid-flight ok
//
// Hosts with their own renderer skip [Renderer] entirely and read each
// group's [MorphDriver.Positions], [MorphDriver.Sizes],
// [MorphDriver.Transforms], and [MorphDriver.Blend] after Update.
//
// Scenes can be described in YAML via [LoadSceneConfig] and driven by JSON
// scripts via [LoadMorphScript]; see demos/morph for a runnable example.
//
// Easing comes from [gween]'s ease package: any ease.TweenFunc can replace
// the default cubic curve per driver.
//
// [gween]: https://github.com/tanema/gween
package spruce
