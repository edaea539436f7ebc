package dml

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/godml/core/model"
	"github.com/YuminosukeSato/godml/pkg/errors"
	"github.com/YuminosukeSato/godml/pkg/log"
)

// PLIV estimates the structural parameter theta of a partially linear
// instrumental variable model
//
//	y = theta*d + g0(X) + zeta,  E[zeta|Z,X] = 0
//	z = m0(X) + v,               E[v|X] = 0
//
// with the treatment projection r0(X) = E[d|X] as a third nuisance. The
// instrument residual v = z - m0(X) orthogonalizes the endogenous
// treatment.
type PLIV struct {
	model.BaseEstimator

	cfg       config
	providers map[string]LearnerProvider

	coef       float64
	repThetas  []float64
	foldThetas [][]float64
	splits     [][]Fold
}

// NewPLIV creates a PLIV estimator with learners for the g (outcome), m
// (instrument) and r (treatment) nuisance functions. Configuration
// problems fail here, before any data is touched.
func NewPLIV(g, m, r model.Learner, opts ...Option) (*PLIV, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateCommon(&cfg); err != nil {
		return nil, err
	}
	if cfg.plrScore != nil {
		return nil, errors.NewConfigurationError("inf_model", "a PLR score callable cannot be used with a PLIV model", "PLRScoreFunc")
	}
	if cfg.plivScore == nil && !validPLIVScores[cfg.score] {
		return nil, errors.NewConfigurationError("inf_model", "invalid PLIV score scheme", cfg.score)
	}
	if g == nil {
		return nil, errors.NewConfigurationError("ml_learners", "missing required nuisance learner", NuisanceG)
	}
	if m == nil {
		return nil, errors.NewConfigurationError("ml_learners", "missing required nuisance learner", NuisanceM)
	}
	if r == nil {
		return nil, errors.NewConfigurationError("ml_learners", "missing required nuisance learner", NuisanceR)
	}

	return &PLIV{
		cfg: cfg,
		providers: map[string]LearnerProvider{
			NuisanceG: ProviderOf(g),
			NuisanceM: ProviderOf(m),
			NuisanceR: ProviderOf(r),
		},
	}, nil
}

// SetLearnerProvider replaces the provider for one nuisance function. Must
// be called before Fit.
func (p *PLIV) SetLearnerProvider(nuisance string, provider LearnerProvider) error {
	if provider == nil {
		return errors.NewConfigurationError("ml_learners", "provider must not be nil", nuisance)
	}
	if _, ok := p.providers[nuisance]; !ok {
		return errors.NewConfigurationError("ml_learners", "unknown nuisance for PLIV", nuisance)
	}
	p.providers[nuisance] = provider
	return nil
}

// Fit runs the full double machine learning estimation. On any error the
// estimator stays (or becomes) unfitted and no partial theta is retained.
func (p *PLIV) Fit(ctx context.Context, data *Dataset) (err error) {
	defer errors.Recover(&err, "PLIV.Fit")

	p.Reset()
	if data == nil {
		return errors.NewValueError("PLIV.Fit", "dataset must not be nil")
	}
	if !data.HasInstrument() {
		return errors.NewValueError("PLIV.Fit", "dataset has no instrument z; use NewIVDataset")
	}

	splits, err := resolveSplits(&p.cfg, data.N())
	if err != nil {
		return err
	}

	logger := p.logger().With(
		log.ModelNameKey, "PLIV",
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
		cf := func(nuisance string, target []float64) ([]float64, error) {
			return CrossValPredict(ctx, p.providers[nuisance], data.X(), target, folds,
				CrossFitConfig{Nuisance: nuisance, Repetition: rep, Jobs: p.cfg.jobs})
		}

		gHat, err := cf(NuisanceG, data.Y())
		if err != nil {
			return err
		}
		mHat, err := cf(NuisanceM, data.Z())
		if err != nil {
			return err
		}
		rHat, err := cf(NuisanceR, data.D())
		if err != nil {
			return err
		}

		var score ScoreComponents
		if p.cfg.plivScore != nil {
			psiA, psiB, err := p.cfg.plivScore(data.Y(), data.Z(), data.D(), gHat, mHat, rHat, folds)
			if err != nil {
				return errors.Wrap(err, "PLIV.Fit: custom score")
			}
			if err := checkScore(psiA, psiB, data.N()); err != nil {
				return err
			}
			score = ScoreComponents{PsiA: psiA, PsiB: psiB}
		} else {
			score, err = buildPLIVScore(p.cfg.score, data.Y(), data.Z(), data.D(), gHat, mHat, rHat)
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
func (p *PLIV) Coef() (float64, error) {
	if !p.IsFitted() {
		return 0, errors.NewNotFittedError("PLIV", "Coef")
	}
	return p.coef, nil
}

// AllThetas returns the per-repetition theta estimates.
func (p *PLIV) AllThetas() []float64 {
	return append([]float64(nil), p.repThetas...)
}

// FoldThetas returns the per-fold theta solutions of each repetition.
// Under DML2 the per-fold values are nil.
func (p *PLIV) FoldThetas() [][]float64 {
	out := make([][]float64, len(p.foldThetas))
	for i, thetas := range p.foldThetas {
		out[i] = append([]float64(nil), thetas...)
	}
	return out
}

// SampleSplits returns a copy of the sample splits used by the last Fit.
func (p *PLIV) SampleSplits() [][]Fold {
	return copySplits(p.splits)
}

func (p *PLIV) logger() log.Logger {
	if p.cfg.logger != nil {
		return p.cfg.logger
	}
	return log.GetLogger()
}

func (p *PLIV) scoreName() string {
	if p.cfg.plivScore != nil {
		return "custom"
	}
	return p.cfg.score
}
