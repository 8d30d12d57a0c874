package altman

import (
	"fmt"
	"math"
)

// Z-Score weights. Altman (1968) for manufacturers, Altman Z'' (1995)
// for non-manufacturers and emerging markets.
const (
	zWeightA = 1.2
	zWeightB = 1.4
	zWeightC = 3.3
	zWeightD = 0.6
	zWeightE = 1.0

	zppWeightA = 6.56
	zppWeightB = 3.26
	zppWeightC = 6.72
	zppWeightD = 1.05
)

// Zone thresholds, strict comparisons, evaluated high to low.
const (
	zSafeThreshold   = 3.0
	zGreyThreshold   = 1.8
	zppSafeThreshold = 2.6
	zppGreyThreshold = 1.1
)

// Engine computes Altman Z-Scores. It is a pure calculator: data
// retrieval and assembly happen upstream, and every call returns a
// fresh Result without touching shared state.
type Engine struct{}

// NewEngine creates a new scoring engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Score computes the Z-Score for a snapshot without any stress applied.
func (e *Engine) Score(snap *Snapshot, meta Metadata) Result {
	return e.ScoreStressed(snap, meta, 0)
}

// ScoreStressed computes the Z-Score after scaling total revenue by
// (1 - shockPct/100). shockPct must be in [0, 100]; a shock of 0 is
// identical to Score. Revenue only enters the standard Z formula, so
// the shock has no effect on the Z'' branch.
func (e *Engine) ScoreStressed(snap *Snapshot, meta Metadata, shockPct float64) Result {
	if snap == nil {
		return Result{RiskCategory: ErrNoData}
	}

	if shockPct < 0 || shockPct > 100 || math.IsNaN(shockPct) {
		return calcError(fmt.Sprintf("shock percentage %v out of range [0, 100]", shockPct))
	}

	// Required-field validation, in order, first failure wins.
	if snap.TotalAssets == nil || *snap.TotalAssets == 0 {
		return Result{RiskCategory: ErrMissingTotalAssets}
	}
	if snap.WorkingCapital == nil {
		return Result{RiskCategory: ErrMissingWorkingCapital}
	}
	if snap.RetainedEarnings == nil {
		return Result{RiskCategory: ErrMissingRetainedEarnings}
	}
	if snap.EBIT == nil {
		return Result{RiskCategory: ErrMissingEBIT}
	}

	totalAssets := *snap.TotalAssets

	// Common ratios
	a := *snap.WorkingCapital / totalAssets
	b := *snap.RetainedEarnings / totalAssets
	c := *snap.EBIT / totalAssets

	if IsNonManufacturing(meta.Sector) {
		return e.scoreZDoublePrime(snap, a, b, c)
	}
	return e.scoreZ(snap, a, b, c, totalAssets, shockPct)
}

// scoreZDoublePrime applies the Z'' formula: book value of equity
// replaces market value and the sales term drops out.
func (e *Engine) scoreZDoublePrime(snap *Snapshot, a, b, c float64) Result {
	if snap.BookValueEquity == nil || snap.TotalLiabilities == nil || *snap.TotalLiabilities == 0 {
		return Result{RiskCategory: ErrMissingBVEOrLiab}
	}

	d := *snap.BookValueEquity / *snap.TotalLiabilities

	score := zppWeightA*a + zppWeightB*b + zppWeightC*c + zppWeightD*d
	if !isFinite(score) {
		return calcError("non-finite score")
	}

	category := ZoneDistress
	if score > zppSafeThreshold {
		category = ZoneSafe
	} else if score > zppGreyThreshold {
		category = ZoneGrey
	}

	return Result{
		ZScore:       &score,
		RiskCategory: category,
		FormulaUsed:  FormulaZDoublePrime,
		Factors: map[string]float64{
			"X1": zppWeightA * a,
			"X2": zppWeightB * b,
			"X3": zppWeightC * c,
			"X4": zppWeightD * d,
		},
	}
}

// scoreZ applies the standard manufacturing formula. The revenue shock
// propagates into the asset-turnover term E.
func (e *Engine) scoreZ(snap *Snapshot, a, b, c, totalAssets, shockPct float64) Result {
	if snap.MarketValueEquity == nil || snap.TotalLiabilities == nil || *snap.TotalLiabilities == 0 {
		return Result{RiskCategory: ErrMissingMVEOrLiab}
	}
	if snap.TotalRevenue == nil {
		return Result{RiskCategory: ErrMissingSales}
	}

	revenue := *snap.TotalRevenue * (1 - shockPct/100)

	d := *snap.MarketValueEquity / *snap.TotalLiabilities
	eTurnover := revenue / totalAssets

	score := zWeightA*a + zWeightB*b + zWeightC*c + zWeightD*d + zWeightE*eTurnover
	if !isFinite(score) {
		return calcError("non-finite score")
	}

	category := ZoneDistress
	if score > zSafeThreshold {
		category = ZoneSafe
	} else if score > zGreyThreshold {
		category = ZoneGrey
	}

	return Result{
		ZScore:       &score,
		RiskCategory: category,
		FormulaUsed:  FormulaZ,
		Factors: map[string]float64{
			"X1": zWeightA * a,
			"X2": zWeightB * b,
			"X3": zWeightC * c,
			"X4": zWeightD * d,
			"X5": zWeightE * eTurnover,
		},
	}
}

func calcError(detail string) Result {
	return Result{RiskCategory: fmt.Sprintf("Calculation Error: %s", detail)}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
