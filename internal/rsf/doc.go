// Package rsf materializes ROM spec files from a static template by
// substituting the per-game unique ID into the {{UNIQUE_ID}} token.
package rsf
