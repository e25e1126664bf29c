package main

// AnalyzeOptions contains options for field inference
type AnalyzeOptions struct {
	ContentTypeID string // Content type the inferred fields belong to
	Sample        int    // Number of records to sample
	LongText      int    // Longest string kept in a text field
	DetectSelects bool   // Whether low-cardinality strings become select fields
}

// DefaultAnalyzeOptions returns the default options for analysis
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		Sample:        20,
		LongText:      255,
		DetectSelects: true,
	}
}

// valueStats collects what was observed for one JSON key across the sample
type valueStats struct {
	strings  int
	dates    int
	wholes   int
	decimals int
	bools    int
	nested   int
	maxLen   int
	uniques  stringSet
}

// stringSet is a utility type for tracking unique values
type stringSet map[string]struct{}
