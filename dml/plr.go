package dml

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/godml/core/model"
	"github.com/YuminosukeSato/godml/pkg/errors"
	"github.com/YuminosukeSato/godml/pkg/log"
)

// Nuisance names used in learner maps and error annotations.
const (
	NuisanceG = "ml_g" // E[y|X]
	NuisanceM = "ml_m" // E[d|X] for PLR, E[z|X] for PLIV
	NuisanceR = "ml_r" // E[d|X] for PLIV
)

// PLR estimates the structural parameter theta of a partially linear
// regression model
//
//	y = theta*d + g0(X) + zeta,  E[zeta|X] = 0
//	d = m0(X) + v,               E[v|X] = 0
//
// via double machine learning: the nuisance functions g0 and m0 are
// estimated out-of-fold by the supplied learners, and theta is solved from
// the orthogonalized residual moment condition.
type PLR struct {
	model.BaseEstimator

	cfg       config
	providers map[string]LearnerProvider

	coef       float64
	repThetas  []float64
	foldThetas [][]float64
	splits     [][]Fold
}

// NewPLR creates a PLR estimator with learners for the g (outcome) and m
// (treatment) nuisance functions. Configuration problems, including an
// unrecognized score scheme, fail here, before any data is touched.
func NewPLR(g, m model.Learner, opts ...Option) (*PLR, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateCommon(&cfg); err != nil {
		return nil, err
	}
	if cfg.plivScore != nil {
		return nil, errors.NewConfigurationError("inf_model", "a PLIV score callable cannot be used with a PLR model", "PLIVScoreFunc")
	}
	if cfg.plrScore == nil && !validPLRScores[cfg.score] {
		return nil, errors.NewConfigurationError("inf_model", "invalid PLR score scheme", cfg.score)
	}
	if g == nil {
		return nil, errors.NewConfigurationError("ml_learners", "missing required nuisance learner", NuisanceG)
	}
	if m == nil {
		return nil, errors.NewConfigurationError("ml_learners", "missing required nuisance learner", NuisanceM)
	}

	return &PLR{
		cfg: cfg,
		providers: map[string]LearnerProvider{
			NuisanceG: ProviderOf(g),
			NuisanceM: ProviderOf(m),
		},
	}, nil
}

// SetLearnerProvider replaces the provider for one nuisance function, e.g.
// with a per-fold provider produced from a tuning result. Must be called
// before Fit.
func (p *PLR) SetLearnerProvider(nuisance string, provider LearnerProvider) error {
	if provider == nil {
		return errors.NewConfigurationError("ml_learners", "provider must not be nil", nuisance)
	}
	if _, ok := p.providers[nuisance]; !ok {
		return errors.NewConfigurationError("ml_learners", "unknown nuisance for PLR", nuisance)
	}
	p.providers[nuisance] = provider
	return nil
}

// Fit runs the full double machine learning estimation. On any error the
// estimator stays (or becomes) unfitted and no partial theta is retained.
func (p *PLR) Fit(ctx context.Context, data *Dataset) (err error) {
	defer errors.Recover(&err, "PLR.Fit")

	p.Reset()
	if data == nil {
		return errors.NewValueError("PLR.Fit", "dataset must not be nil")
	}

	splits, err := resolveSplits(&p.cfg, data.N())
	if err != nil {
		return err
	}

	logger := p.logger().With(
		log.ModelNameKey, "PLR",
		log.OperationKey, "fit",
		log.ProcedureKey, string(p.cfg.procedure),
		log.ScoreKey, p.scoreName(),
	)
	logger.Info("starting cross-fitting",
		log.SamplesKey, data.N(),
		log.FeaturesKey, data.Features(),
	)

	repThetas := make([]float64, len(splits))
	foldThetas := make([][]float64, len(splits))
	for rep, folds := range splits {
		gHat, err := CrossValPredict(ctx, p.providers[NuisanceG], data.X(), data.Y(), folds,
			CrossFitConfig{Nuisance: NuisanceG, Repetition: rep, Jobs: p.cfg.jobs})
		if err != nil {
			return err
		}
		mHat, err := CrossValPredict(ctx, p.providers[NuisanceM], data.X(), data.D(), folds,
			CrossFitConfig{Nuisance: NuisanceM, Repetition: rep, Jobs: p.cfg.jobs})
		if err != nil {
			return err
		}

		var score ScoreComponents
		if p.cfg.plrScore != nil {
			psiA, psiB, err := p.cfg.plrScore(data.Y(), data.D(), gHat, mHat, folds)
			if err != nil {
				return errors.Wrap(err, "PLR.Fit: custom score")
			}
			if err := checkScore(psiA, psiB, data.N()); err != nil {
				return err
			}
			score = ScoreComponents{PsiA: psiA, PsiB: psiB}
		} else {
			score, err = buildPLRScore(p.cfg.score, data.Y(), data.D(), gHat, mHat)
			if err != nil {
				return err
			}
		}

		theta, perFold, err := solveRepetition(score, folds, &p.cfg, rep)
		if err != nil {
			return err
		}
		repThetas[rep] = theta
		foldThetas[rep] = perFold
		logger.Debug("repetition solved", log.RepetitionKey, rep, log.ThetaKey, theta)
	}

	p.coef = stat.Mean(repThetas, nil)
	p.repThetas = repThetas
	p.foldThetas = foldThetas
	p.splits = splits
	p.SetFitted()

	logger.Info("fit complete", log.ThetaKey, p.coef)
	return nil
}

// Coef returns the final theta estimate across repetitions.
func (p *PLR) Coef() (float64, error) {
	if !p.IsFitted() {
		return 0, errors.NewNotFittedError("PLR", "Coef")
	}
	return p.coef, nil
}

// AllThetas returns the per-repetition theta estimates.
func (p *PLR) AllThetas() []float64 {
	return append([]float64(nil), p.repThetas...)
}

// FoldThetas returns the per-fold theta solutions of each repetition.
// Under DML2 the per-fold values are nil since the moment condition is
// solved on the pooled scores.
func (p *PLR) FoldThetas() [][]float64 {
	out := make([][]float64, len(p.foldThetas))
	for i, thetas := range p.foldThetas {
		out[i] = append([]float64(nil), thetas...)
	}
	return out
}

// SampleSplits returns a copy of the sample splits used by the last Fit.
func (p *PLR) SampleSplits() [][]Fold {
	return copySplits(p.splits)
}

func (p *PLR) logger() log.Logger {
	if p.cfg.logger != nil {
		return p.cfg.logger
	}
	return log.GetLogger()
}

func (p *PLR) scoreName() string {
	if p.cfg.plrScore != nil {
		return "custom"
	}
	return p.cfg.score
}

// validateCommon checks the configuration shared by PLR and PLIV.
func validateCommon(cfg *config) error {
	if cfg.splits == nil {
		if cfg.nFolds < 2 {
			return errors.NewConfigurationError("n_folds", "must be at least 2", cfg.nFolds)
		}
		if cfg.nRep < 1 {
			return errors.NewConfigurationError("n_rep", "must be at least 1", cfg.nRep)
		}
	}
	switch cfg.procedure {
	case DML1, DML2:
	default:
		return errors.NewConfigurationError("dml_procedure", "must be dml1 or dml2", string(cfg.procedure))
	}
	if cfg.jobs < 0 {
		return errors.NewConfigurationError("n_jobs", "must be non-negative", cfg.jobs)
	}
	if cfg.plrScore != nil && cfg.plivScore != nil {
		return errors.NewConfigurationError("inf_model", "at most one custom score callable may be set", "both")
	}
	return nil
}

// resolveSplits returns the sample splits for a fit: externally supplied
// splits are validated against the partition invariants, otherwise fresh
// repeated K-fold splits are drawn.
func resolveSplits(cfg *config, n int) ([][]Fold, error) {
	if cfg.splits != nil {
		if err := validateSplits(cfg.splits, n); err != nil {
			return nil, err
		}
		return cfg.splits, nil
	}
	splitter := NewRepeatedKFold(cfg.nFolds, cfg.nRep, cfg.shuffle, cfg.seed)
	return splitter.Split(n)
}

// solveRepetition aggregates one repetition's scores into a theta.
func solveRepetition(score ScoreComponents, folds []Fold, cfg *config, rep int) (float64, []float64, error) {
	if cfg.procedure == DML2 {
		theta, err := aggregateDML2(score, rep)
		return theta, nil, err
	}
	return aggregateDML1(score, folds, cfg.weighting, rep)
}
