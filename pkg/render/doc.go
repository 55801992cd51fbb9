// Package render rasterizes slide surfaces into bitmaps.
//
// # Overview
//
// Rendering backends disagree about embedded images, fonts and effects, so a
// [Rasterizer] holds an ordered chain of [Strategy] values and tries them one
// after another. The first strategy that returns a usable bitmap wins. A
// strategy that errors, panics or returns an empty image is skipped. When the
// chain runs out the error carries the RENDERING_EXHAUSTED code and wraps every
// attempt's failure.
//
// # Built-in Strategies
//
//   - vector: in-process high-fidelity renderer on github.com/gogpu/gg
//     (gradient banner, rounded cards, TrueType text, bicubic image sampling)
//   - svg: the surface serialized to SVG with fonts and images embedded as
//     data URIs, then rasterized by rsvg-convert (librsvg)
//   - basic: degraded compositor on image/draw with basicfont text; it renders
//     unavailable images as placeholders instead of failing
//
// The default chain is vector, svg, basic:
//
//	r, err := render.FromNames([]string{"vector", "svg", "basic"}, render.WithLogger(logger))
//	img, err := r.Rasterize(ctx, surf, render.DefaultConfig())
//
// # Cross-Origin Handling
//
// An image whose source could not be downloaded is the equivalent of a
// tainted cross-origin image. [CrossOriginStrict] refuses to render a surface
// that contains one; [CrossOriginLenient] draws a neutral placeholder card.
// The caller's mode applies to vector and svg. basic is always lenient, so
// the default chain still produces a slide when a download failed.
//
// Strategies never modify the surface and can be retried safely.
package render
