// Package honeycomb draws an ambient honeycomb of Voronoi cells for
// [Ebitengine], terminals and headless image export.
//
// Seed points are laid out on a jittered hexagonal lattice that extends a
// margin past the visible surface, tessellated into convex cells, and
// painted with an outer fill, a shrunken inner fill and an edge stroke.
// Colors come from coherent noise over a muted palette, optionally blended
// toward a vibrant palette.
//
// # Variants
//
// An [Engine] runs one of three variants:
//
//   - [VariantStatic] computes a single frame and stops.
//   - [VariantDynamic] lets the pointer pull nearby points toward it while
//     springs draw them back to rest.
//   - [VariantGlowing] keeps points fixed and lets cells near the pointer
//     glow into the vibrant palette, then fade after a random delay.
//
// # Quick start
//
// [Run] opens a window and drives the engine:
//
//	e := honeycomb.NewEngine(honeycomb.DefaultConfig(), honeycomb.VariantGlowing, 0, 0)
//	if err := honeycomb.Run(e, honeycomb.RunConfig{Title: "honeycomb"}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, pass [Engine.Game] to ebiten.RunGame yourself, or drive
// the engine from another host with [Engine.Tick] and [Engine.Draw] on any
// [Canvas]. [RasterCanvas] renders to an in-memory image; the term
// subpackage paints it into a tcell screen with half-block characters.
//
// # Configuration
//
// [Config] is plain JSON (see [LoadConfig]). A running engine accepts a
// [ConfigPatch] through [Engine.Apply]; changes to the point layout
// regenerate the field, everything else applies on the next frame.
//
// Set Config.Debug to draw rest and current positions and to log frame
// timings to stderr.
//
// [Ebitengine]: https://ebitengine.org
package honeycomb
