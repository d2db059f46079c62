// Package document describes where annotation documents come from and wraps
// their raw payload. Loaders resolve a Source into a Document; parsing the
// payload into a tree is handled by pkg/tree.
package document
