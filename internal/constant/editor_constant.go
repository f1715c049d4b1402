package constant

// Text categories partitioning knowledge bases and preferences.
const (
	CategoryAcademic  = "academic"
	CategoryTechnical = "technical"
	CategoryCreative  = "creative"
	CategoryBusiness  = "business"
	CategoryGeneral   = "general"
)

// ClassifiableCategories are the labels the classifier may return.
// CategoryGeneral is the fallback for anything outside this set.
var ClassifiableCategories = []string{
	CategoryAcademic,
	CategoryTechnical,
	CategoryCreative,
	CategoryBusiness,
}

// IsKnownCategory reports whether c is a classifiable category or general.
func IsKnownCategory(c string) bool {
	if c == CategoryGeneral {
		return true
	}
	for _, known := range ClassifiableCategories {
		if c == known {
			return true
		}
	}
	return false
}

// RelevanceThreshold is the similarity cutoff for retrieved documents.
// Documents scoring at or below the threshold are discarded.
const RelevanceThreshold = 0.7

// DefaultUserId is used when no authenticated identity is present.
const DefaultUserId = "default"

// PreferenceKeyLLMAnalysis marks preference records produced by LLM edit analysis.
const PreferenceKeyLLMAnalysis = "llm_analysis"

// Chunking parameters for knowledge base and ephemeral documents.
const (
	ChunkSize    = 1000
	ChunkOverlap = 200
)

// DefaultTopK values for the two retrieval paths.
const (
	DefaultTopK          = 3
	DefaultEphemeralTopK = 6
)
