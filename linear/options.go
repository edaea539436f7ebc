package linear

// Option configures a Regression (and, by embedding, a Ridge).
type Option func(*Regression)

// WithFitIntercept sets whether an intercept term is estimated.
func WithFitIntercept(fit bool) Option {
	return func(lr *Regression) {
		lr.fitIntercept = fit
	}
}
