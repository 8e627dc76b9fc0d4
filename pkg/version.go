// Package gnsubsample selects a bounded, representative subset of aligned
// genomic sequences for phylogenetic analysis: dense quota sampling inside a
// focal region and sparse, similarity-ranked context from the rest of the
// world.
package gnsubsample

var (
	// Version of the application, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
