// Package types defines the public contract shared by the wxkit library and
// its consumers: the typed error taxonomy, option structs, progress sinks,
// and result records. It has no dependencies on the implementation packages
// so external code can branch on error kinds without importing them.
package types
