package models

// Indicator names follow the column names of the master dataset, including the
// historical "CO2_emisions" spelling, so feature vectors stay wire-compatible
// with the trained model artifacts.
const (
	IndicatorAreaHarvested      = "Area_Harvested"
	IndicatorProductionTonnes   = "Production_Tonnes"
	IndicatorAvgTemp            = "Avg_Temp"
	IndicatorTempVolatility     = "Temp_Volatility"
	IndicatorGDP                = "GDP_current_US"
	IndicatorPoliticalStability = "political_stability_estimate"
	IndicatorInflation          = "Inflation"
	IndicatorCO2Emissions       = "CO2_emisions"
	IndicatorAgriLandPercent    = "Agri_Land_Percent"
	IndicatorForestLandPercent  = "Forest_Land_Percent"
	IndicatorPopulation         = "population"
)

// RiskFeatureNames is the exact feature set the risk classifier was trained on.
var RiskFeatureNames = []string{
	IndicatorAreaHarvested,
	IndicatorProductionTonnes,
	IndicatorAvgTemp,
	IndicatorTempVolatility,
	IndicatorGDP,
	IndicatorPoliticalStability,
	IndicatorInflation,
	IndicatorCO2Emissions,
	IndicatorAgriLandPercent,
	IndicatorForestLandPercent,
	IndicatorPopulation,
}

// YieldFeatureNames is the exact feature set the yield regressor was trained on.
var YieldFeatureNames = []string{
	IndicatorAvgTemp,
	IndicatorTempVolatility,
	IndicatorGDP,
}

// Slider hints for scenario inputs. These bound nothing in the engine; they are
// reported to clients so the UI can build its controls.
const (
	TempDeltaHintMin = -2.0
	TempDeltaHintMax = 4.0
	TempDeltaStep    = 0.5

	GDPDeltaHintMin = -20.0
	GDPDeltaHintMax = 30.0
	GDPDeltaStep    = 5.0
)

// FeatureVector is a named mapping from indicator to value, restricted to the
// subset a given model expects.
type FeatureVector map[string]float64

// CountryRecord is one row of the master dataset: a single (country, year)
// observation. Immutable once loaded from the store.
type CountryRecord struct {
	Country    string        `json:"country"`
	Year       int           `json:"year"`
	Indicators FeatureVector `json:"indicators"`
}

// Indicator returns the named indicator value when present.
func (r CountryRecord) Indicator(name string) (float64, bool) {
	v, ok := r.Indicators[name]
	return v, ok
}

// ScenarioShock is the user-supplied perturbation applied to a baseline record
// for one simulation request.
type ScenarioShock struct {
	TempDelta       float64 `json:"temp_delta"`
	GDPDeltaPercent float64 `json:"gdp_delta_percent"`
}

// RiskLabel is the discrete tier produced by the labeling rule.
type RiskLabel string

const (
	HighRisk RiskLabel = "HIGH_RISK"
	Stable   RiskLabel = "STABLE"
	LowRisk  RiskLabel = "LOW_RISK"
)

// RiskAssessment couples the raw classifier probability with the tier and the
// shock that produced it.
type RiskAssessment struct {
	Probability float64       `json:"probability"`
	Label       RiskLabel     `json:"label"`
	Shock       ScenarioShock `json:"shock"`
}

// SimulationResult is the atomic output of one simulation: either the whole
// struct is returned or the request failed.
type SimulationResult struct {
	Country       string         `json:"country"`
	BaselineYear  int            `json:"baseline_year"`
	Assessment    RiskAssessment `json:"assessment"`
	YieldEstimate float64        `json:"yield_estimate"`
}
