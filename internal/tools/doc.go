// Package tools wraps the external 3DS packaging executables (bannertool,
// 3dstool, makerom) behind small capability interfaces so the build pipeline
// can be tested without the real binaries installed.
//
// Each invocation is a synchronous shell-out; failures carry the tool name
// and its combined output in an ExternalError.
package tools
