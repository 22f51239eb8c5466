package memvec

const (
	// minimumM is the minimum valid value for M.
	minimumM = 2

	// DefaultM is the default number of bidirectional links per node per layer.
	DefaultM = 16

	// DefaultEFConstruction is the default size of the dynamic candidate list
	// during insertion.
	DefaultEFConstruction = 200

	// DefaultEFSearch is the default size of the dynamic candidate list during
	// search. The effective width is always at least k.
	DefaultEFSearch = 50

	// DefaultThreshold is the default minimum cosine similarity for a search
	// result to be returned.
	DefaultThreshold = 0.5

	// levelMax caps the sampled layer of a node, bounding worst-case fan-out
	// independent of dataset size.
	levelMax = 16
)

// Options represents the options for configuring an Index.
type Options struct {
	// M is the maximum number of bidirectional links per node per layer.
	M int

	// EFConstruction is the candidate-list width used while wiring up a new
	// node. Larger values build a higher-quality graph at higher insert cost.
	EFConstruction int

	// EFSearch is the candidate-list width used at layer 0 during search.
	// The effective width for a query is max(k, EFSearch).
	EFSearch int

	// RandomSeed seeds the level sampler. If nil, a time-based seed is used.
	// Fixing the seed makes graph construction deterministic.
	RandomSeed *int64

	// Logger configures structured logging for operations. Nil disables logging.
	Logger *Logger

	// Metrics configures operational metrics collection. Nil disables metrics.
	Metrics MetricsCollector
}

// DefaultOptions contains the default options for an Index.
var DefaultOptions = Options{
	M:              DefaultM,
	EFConstruction: DefaultEFConstruction,
	EFSearch:       DefaultEFSearch,
}

// SearchOptions represents per-query options.
type SearchOptions struct {
	// EF overrides the candidate-list width for this query. Values below k
	// are raised to k.
	EF int

	// Threshold is the minimum cosine similarity for a result to be returned.
	Threshold float32
}

// DefaultSearchOptions contains the default per-query options.
var DefaultSearchOptions = SearchOptions{
	EF:        0, // use Options.EFSearch
	Threshold: DefaultThreshold,
}
