package scoring

import (
	"math"

	"github.com/sells-group/nil-compliance/internal/model"
)

// weightTolerance absorbs float drift when checking that weights sum to 1.0.
const weightTolerance = 1e-9

// Weights holds the per-dimension contribution to the overall score.
// The six weights must sum to exactly 1.0.
type Weights struct {
	PolicyFit       float64 `json:"policy_fit" yaml:"policy_fit" mapstructure:"policy_fit"`
	DocumentHygiene float64 `json:"document_hygiene" yaml:"document_hygiene" mapstructure:"document_hygiene"`
	FMVVerification float64 `json:"fmv_verification" yaml:"fmv_verification" mapstructure:"fmv_verification"`
	TaxReadiness    float64 `json:"tax_readiness" yaml:"tax_readiness" mapstructure:"tax_readiness"`
	BrandSafety     float64 `json:"brand_safety" yaml:"brand_safety" mapstructure:"brand_safety"`
	GuardianConsent float64 `json:"guardian_consent" yaml:"guardian_consent" mapstructure:"guardian_consent"`
}

// DefaultWeights returns the production weight profile.
func DefaultWeights() Weights {
	return Weights{
		PolicyFit:       0.25,
		DocumentHygiene: 0.15,
		FMVVerification: 0.20,
		TaxReadiness:    0.10,
		BrandSafety:     0.15,
		GuardianConsent: 0.15,
	}
}

// For returns the weight for a dimension key.
func (w Weights) For(key model.DimensionKey) float64 {
	switch key {
	case model.DimensionPolicyFit:
		return w.PolicyFit
	case model.DimensionDocumentHygiene:
		return w.DocumentHygiene
	case model.DimensionFMVVerification:
		return w.FMVVerification
	case model.DimensionTaxReadiness:
		return w.TaxReadiness
	case model.DimensionBrandSafety:
		return w.BrandSafety
	case model.DimensionGuardianConsent:
		return w.GuardianConsent
	default:
		return 0
	}
}

// Validate rejects weight profiles that do not sum to 1.0 or carry a
// negative weight. Scoring never proceeds on an invalid profile.
func (w Weights) Validate() error {
	sum := 0.0
	for _, key := range model.DimensionKeys() {
		v := w.For(key)
		if v < 0 {
			return model.NewValidation("weight for %s must be non-negative (got %v)", key, v)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return model.NewValidation("dimension weights must sum to 1.0 (got %v)", sum)
	}
	return nil
}

// FMVBand is the fair-market-value range considered reasonable for a deal
// type. Max is the upper edge; compensation beyond extremeMultiple times Max
// is treated as an extreme overpayment.
type FMVBand struct {
	Min float64 `json:"min" yaml:"min" mapstructure:"min"`
	Max float64 `json:"max" yaml:"max" mapstructure:"max"`
}

// extremeMultiple marks the overpayment edge beyond which a deal reads as a
// disguised inducement rather than a negotiation artifact.
const extremeMultiple = 3.0

// DefaultFMVBands returns the benchmark compensation bands per deal type.
// Bands are deliberately wide: the scorer flags outliers, it does not price
// deals.
func DefaultFMVBands() map[model.DealType]FMVBand {
	return map[model.DealType]FMVBand{
		model.DealSocialPost:      {Min: 50, Max: 5000},
		model.DealAppearance:      {Min: 100, Max: 10000},
		model.DealEndorsement:     {Min: 500, Max: 50000},
		model.DealBrandAmbassador: {Min: 1000, Max: 100000},
		model.DealMerchandise:     {Min: 100, Max: 25000},
		model.DealCamp:            {Min: 200, Max: 15000},
	}
}

// Config carries everything the scorer needs besides the deal facts and the
// jurisdiction rule.
type Config struct {
	Weights             Weights
	FMVBands            map[model.DealType]FMVBand
	SensitiveCategories []string
	// MinContractChars is the length below which contract text cannot
	// plausibly contain real terms.
	MinContractChars int
	// ReportingThreshold is the IRS 1099 reporting floor in dollars.
	ReportingThreshold float64
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights:  DefaultWeights(),
		FMVBands: DefaultFMVBands(),
		SensitiveCategories: []string{
			"supplements",
			"energy_drinks",
			"dating_apps",
			"crypto",
			"weapons",
		},
		MinContractChars:   200,
		ReportingThreshold: 600,
	}
}

// Validate checks the full configuration.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	for dt, band := range c.FMVBands {
		if band.Min < 0 || band.Max < band.Min {
			return model.NewValidation("fmv band for %s is inverted (min %v, max %v)", dt, band.Min, band.Max)
		}
	}
	if c.MinContractChars < 0 {
		return model.NewValidation("min contract length must be non-negative")
	}
	if c.ReportingThreshold < 0 {
		return model.NewValidation("reporting threshold must be non-negative")
	}
	return nil
}
