// Package pkg provides the libraries behind the lookbook slide exporter.
//
// # Overview
//
// A lookbook is a deck of "looks" prepared for one client. Each look with
// content becomes a branded 800×1200 portrait slide that can be exported as
// a PNG file. The pkg directory is organized as follows:
//
//  1. [deck] - Deck file format, image loading and the asset fetcher
//  2. [surface] - Slide layout and the registry of renderable slides
//  3. [render] - Rasterization with an ordered chain of fallback strategies
//  4. [encode] - PNG encoding and data URIs
//  5. [deliver] - Direct download with a manual-save fallback
//  6. [export] - The orchestrator that ties the stages together
//
// Supporting packages: [cache] (asset cache backends), [errors] (coded
// errors), [fonts] (embedded typefaces), [observability] (instrumentation
// hooks) and [buildinfo].
//
// # Architecture
//
// The data flow of one export:
//
//	deck.toml
//	    ↓
//	[deck] Load (images via AssetLoader + cache)
//	    ↓
//	[surface] Layout → Registry
//	    ↓
//	[render] Rasterizer (vector → svg → basic)
//	    ↓
//	[encode] PNG blob
//	    ↓
//	[deliver] Agent (download → manual view)
//
// [export.Orchestrator] drives these stages for one slide or a batch and
// reports progress through a Reporter.
package pkg
