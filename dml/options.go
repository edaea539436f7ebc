package dml

import (
	"github.com/YuminosukeSato/godml/pkg/log"
)

// Procedure selects how per-fold scores are turned into a theta estimate.
type Procedure string

const (
	// DML1 solves the moment condition per fold and averages the
	// per-fold solutions.
	DML1 Procedure = "dml1"
	// DML2 pools the scores of all folds and solves once.
	DML2 Procedure = "dml2"
)

// FoldWeighting selects how per-fold thetas are averaged under DML1 when
// fold sizes are unequal.
type FoldWeighting int

const (
	// Unweighted averages per-fold thetas with equal weight.
	Unweighted FoldWeighting = iota
	// SizeWeighted weights each per-fold theta by its test-set size.
	SizeWeighted
)

// Built-in score schemes.
const (
	// ScoreIVType is the PLR IV-type score: psi_a = -v*d, psi_b = v*u.
	ScoreIVType = "IV-type"
	// ScorePartiallingOut is the partialling-out score of DML2018:
	// psi_a = -v*v (PLR) or -w*v (PLIV), psi_b = v*u.
	ScorePartiallingOut = "DML2018"
)

// PLRScoreFunc computes custom score components for a PLR model. It
// receives the raw outcome and treatment, the out-of-fold nuisance
// predictions and the folds they were computed on, and must return psiA and
// psiB of length n.
type PLRScoreFunc func(y, d, gHat, mHat []float64, folds []Fold) (psiA, psiB []float64, err error)

// PLIVScoreFunc computes custom score components for a PLIV model, with
// instrument z and the additional treatment nuisance rHat.
type PLIVScoreFunc func(y, z, d, gHat, mHat, rHat []float64, folds []Fold) (psiA, psiB []float64, err error)

type config struct {
	nFolds     int
	nRep       int
	procedure  Procedure
	score      string
	plrScore   PLRScoreFunc
	plivScore  PLIVScoreFunc
	splits     [][]Fold
	seed       uint64
	shuffle    bool
	jobs       int
	weighting  FoldWeighting
	logger     log.Logger
}

func defaultConfig() config {
	return config{
		nFolds:    5,
		nRep:      1,
		procedure: DML1,
		score:     ScorePartiallingOut,
		shuffle:   true,
		jobs:      1,
		weighting: Unweighted,
	}
}

// Option configures a PLR or PLIV estimator.
type Option func(*config)

// WithFolds sets the number of cross-fitting folds K (default 5).
func WithFolds(k int) Option {
	return func(c *config) { c.nFolds = k }
}

// WithRepetitions sets the number of repeated sample splits R (default 1).
func WithRepetitions(r int) Option {
	return func(c *config) { c.nRep = r }
}

// WithProcedure selects the aggregation procedure (default DML1).
func WithProcedure(p Procedure) Option {
	return func(c *config) { c.procedure = p }
}

// WithScore selects a built-in score scheme by name.
func WithScore(name string) Option {
	return func(c *config) { c.score = name }
}

// WithPLRScore installs a custom PLR score callable. The built-in g and m
// nuisance fits are still performed and passed to the callable.
func WithPLRScore(fn PLRScoreFunc) Option {
	return func(c *config) { c.plrScore = fn }
}

// WithPLIVScore installs a custom PLIV score callable. The built-in g, m
// and r nuisance fits are still performed and passed to the callable.
func WithPLIVScore(fn PLIVScoreFunc) Option {
	return func(c *config) { c.plivScore = fn }
}

// WithSampleSplits supplies externally drawn sample splits instead of
// drawing them at Fit time. The splits are validated against the partition
// invariants at Fit entry.
func WithSampleSplits(splits [][]Fold) Option {
	return func(c *config) { c.splits = splits }
}

// WithSeed fixes the random seed for sample splitting. Seed 0 means
// unseeded: each Fit draws a fresh seed from the global source, so only a
// non-zero seed makes splits reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

// WithShuffle sets whether observation indices are shuffled before folding
// (default true).
func WithShuffle(shuffle bool) Option {
	return func(c *config) { c.shuffle = shuffle }
}

// WithJobs sets the number of parallel fold workers per nuisance function
// (default 1, fully sequential).
func WithJobs(n int) Option {
	return func(c *config) { c.jobs = n }
}

// WithFoldWeighting selects the DML1 fold averaging rule (default
// Unweighted, matching the usual solve-then-average definition).
func WithFoldWeighting(w FoldWeighting) Option {
	return func(c *config) { c.weighting = w }
}

// WithLogger installs a logger for fit diagnostics (default: the package
// logger from pkg/log).
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}
