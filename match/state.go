package match

// State is the engine lifecycle stage.
type State int

const (
	// StateUninitialized is the zero value: nothing bound.
	StateUninitialized State = iota
	// StateBound has an observation, a model and a test but no results.
	StateBound
	// StateComputed holds the statistic matrix and the best match.
	StateComputed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBound:
		return "bound"
	case StateComputed:
		return "computed"
	default:
		return "unknown"
	}
}
