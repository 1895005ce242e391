package search

// Mode selects how much work a search does.
type Mode int

const (
	// ModeDefault performs the full search including related results.
	ModeDefault Mode = iota
	// ModeFast skips related-result enrichment.
	ModeFast
)

// Priority selects which API search facet wins when both return results.
type Priority int

const (
	PriorityTitle Priority = iota
	PriorityContent
)

// Treatment selects how the raw query is turned into a lookup key.
type Treatment int

const (
	// TreatmentNormalize tokenizes the query and drops stop words.
	TreatmentNormalize Treatment = iota
	// TreatmentPassthrough only substitutes spaces with underscores.
	TreatmentPassthrough
)

const defaultResultCount = 5

// Params configures a single search call.
type Params struct {
	Mode        Mode
	Priority    Priority
	ResultCount int
	Treatment   Treatment
	// UseCache controls whether the cache is consulted at all.
	UseCache bool
	// UseCacheForLinks controls whether a direct-link query may still hit
	// the cache. When false, link queries run with UseCache off.
	UseCacheForLinks bool
}

// DefaultParams returns the standard search configuration.
func DefaultParams() Params {
	return Params{
		Mode:             ModeDefault,
		Priority:         PriorityTitle,
		ResultCount:      defaultResultCount,
		Treatment:        TreatmentNormalize,
		UseCache:         true,
		UseCacheForLinks: true,
	}
}
