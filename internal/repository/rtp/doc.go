// Package rtp locates runtime package (RTP) assets on disk and copies them
// into game directories that depend on them.
//
// The DirRepository expects one subdirectory per variant code (for example
// 2000-en-official or 2003-jp) under a conventional assets root and exposes
// a Repository interface the builder service depends on.
package rtp
