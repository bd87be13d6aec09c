// Package config defines filesystem settings used by the build pipeline and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the locations of the EasyRPG ELF, the RSF template,
// the RTP library, and the output and temporary directories.
package config
