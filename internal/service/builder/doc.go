// Package builder implements the per-game CIA packaging pipeline and its
// batch iterator.
//
// A Build validates the game's metadata and 3DS assets, stages the runtime
// package it depends on, invokes the external tools (banner/icon generation,
// ROM filesystem packing, CIA composition) and writes one package per game.
// Incomplete games are skipped, failing tools fail that game only, and the
// shared temporary directory is emptied after every build. Builds are
// strictly sequential; a marker file refuses concurrent invocations.
package builder
