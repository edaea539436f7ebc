package log

// Model and operation context keys. Using the shared keys keeps log
// analysis consistent across estimators.
const (
	// ModelNameKey identifies the estimator type, e.g. "PLR", "PLIV".
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed, e.g. "fit".
	OperationKey = "ml.operation"

	// ProcedureKey names the aggregation procedure, "dml1" or "dml2".
	ProcedureKey = "dml.procedure"

	// ScoreKey names the score scheme, e.g. "IV-type", "DML2018", "custom".
	ScoreKey = "dml.score"
)

// Cross-fitting context keys.
const (
	// RepetitionKey is the zero-based index of the sample-splitting repetition.
	RepetitionKey = "dml.repetition"

	// FoldKey is the zero-based fold index within a repetition.
	FoldKey = "dml.fold"

	// NuisanceKey names the nuisance function, e.g. "ml_g", "ml_m", "ml_r".
	NuisanceKey = "dml.nuisance"

	// ThetaKey is an estimated structural parameter value.
	ThetaKey = "dml.theta"
)

// Data shape keys.
const (
	// SamplesKey is the number of observations.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of covariate columns.
	FeaturesKey = "data.features"
)

// Performance keys.
const (
	// DurationMsKey is an elapsed time in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
