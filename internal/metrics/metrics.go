// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Entity labels used by recorders.
const (
	EntityUser       = "user"
	EntityRecipe     = "recipe"
	EntityIngredient = "ingredient"
)

// Recorder captures entity lifecycle events.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncCreated(entity string)
	IncUpdated(entity string)
	// AddDeleted counts n deleted records, including cascaded ones.
	AddDeleted(entity string, n int64)
}

