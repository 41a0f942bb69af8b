package topicgraph

// Category represents a quantitative-finance content area.
type Category string

const (
	CategoryLinearAlgebra   Category = "linear-algebra"
	CategoryCalculus        Category = "calculus"
	CategoryProbability     Category = "probability"
	CategoryStatistics      Category = "statistics"
	CategoryTimeSeries      Category = "time-series"
	CategoryPortfolioTheory Category = "portfolio-theory"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryLinearAlgebra,
		CategoryCalculus,
		CategoryProbability,
		CategoryStatistics,
		CategoryTimeSeries,
		CategoryPortfolioTheory,
	}
}

// CategoryDisplayName returns a human-readable name for a category.
func CategoryDisplayName(c Category) string {
	switch c {
	case CategoryLinearAlgebra:
		return "Linear Algebra"
	case CategoryCalculus:
		return "Calculus"
	case CategoryProbability:
		return "Probability"
	case CategoryStatistics:
		return "Statistics"
	case CategoryTimeSeries:
		return "Time Series"
	case CategoryPortfolioTheory:
		return "Portfolio Theory"
	default:
		return string(c)
	}
}

// Priority indicates how central a topic is for interview preparation.
// It affects display emphasis only, never graph semantics.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Topic represents a single learnable unit in the curriculum.
type Topic struct {
	ID            string
	Name          string
	Description   string
	Category      Category
	Prerequisites []string
	Difficulty    int // 1 (introductory) to 5 (advanced)
	Priority      Priority
	Covered       bool // source material exists for this topic
}

// TopicState represents a topic's state relative to the learner's
// completed set.
type TopicState int

const (
	StateLocked    TopicState = iota // one or more direct prerequisites incomplete
	StateUnlocked                    // all direct prerequisites completed, topic not yet completed
	StateCompleted                   // topic is in the completed set
)

// String returns the wire value for a topic state, used in API
// payloads.
func (s TopicState) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Label returns the display label for a topic state.
func (s TopicState) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateUnlocked:
		return "Unlocked"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}
