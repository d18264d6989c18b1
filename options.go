package fragmerge

import (
	"github.com/tsawler/fragmerge/merge"
)

// MergeOptions holds configuration for a merge job.
type MergeOptions struct {
	// Selection (both may be set; the result is their union)
	names []string
	where string

	// Measurement
	metrics  string
	fontFile string

	// Engine tolerances
	config merge.Config
}

// defaultOptions returns the default job options.
func defaultOptions() MergeOptions {
	return MergeOptions{
		names:   nil, // nil means the document selection
		where:   "",
		metrics: "mono",
		config:  merge.DefaultConfig(),
	}
}

// clone creates a deep copy of MergeOptions.
func (o MergeOptions) clone() MergeOptions {
	newOpts := MergeOptions{
		where:    o.where,
		metrics:  o.metrics,
		fontFile: o.fontFile,
		config:   o.config,
	}

	if o.names != nil {
		newOpts.names = make([]string, len(o.names))
		copy(newOpts.names, o.names)
	}

	return newOpts
}
