package logging

// Standard field names for structured logging. Use these constants instead
// of raw strings so log lines stay greppable across packages.
const (
	// Identity
	FieldName = "name"

	// Operations
	FieldStatistic = "statistic"
	FieldBackend   = "backend"
	FieldWorkers   = "workers"

	// Shapes
	FieldRows        = "rows"
	FieldColumns     = "columns"
	FieldWavelengths = "wavelengths"
	FieldCount       = "count"

	// Results
	FieldMinStat      = "min_stat"
	FieldMinAge       = "min_age"
	FieldMinReddening = "min_reddening"
	FieldDelta        = "delta"

	// Timing
	FieldDurationMS = "duration_ms"

	// Files
	FieldFile   = "file"
	FieldConfig = "config"

	// Status
	FieldState = "state"
	FieldError = "error"
)
