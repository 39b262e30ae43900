package simulation

import (
	"context"
	"errors"
	"testing"

	"agrishield/models"
)

type fakeStore struct {
	records map[string]models.CountryRecord
}

func (f *fakeStore) GetLatestRecord(country string) (models.CountryRecord, error) {
	rec, ok := f.records[country]
	if !ok {
		return models.CountryRecord{}, models.ErrUnknownCountry
	}
	return rec, nil
}

func (f *fakeStore) ListCountries() ([]string, error) {
	countries := make([]string, 0, len(f.records))
	for c := range f.records {
		countries = append(countries, c)
	}
	return countries, nil
}

func (f *fakeStore) GetHistory(country string) ([]models.CountryRecord, error) {
	rec, ok := f.records[country]
	if !ok {
		return nil, models.ErrUnknownCountry
	}
	return []models.CountryRecord{rec}, nil
}

type fakeClassifier struct {
	probability  float64
	err          error
	calls        int
	lastFeatures models.FeatureVector
}

func (f *fakeClassifier) ClassifyRisk(_ context.Context, features models.FeatureVector) (float64, error) {
	f.calls++
	f.lastFeatures = features
	return f.probability, f.err
}

type fakeRegressor struct {
	estimate     float64
	err          error
	calls        int
	lastFeatures models.FeatureVector
}

func (f *fakeRegressor) PredictYield(_ context.Context, features models.FeatureVector) (float64, error) {
	f.calls++
	f.lastFeatures = features
	return f.estimate, f.err
}

func testStore() *fakeStore {
	return &fakeStore{records: map[string]models.CountryRecord{
		"Kenya": {
			Country: "Kenya",
			Year:    2021,
			Indicators: models.FeatureVector{
				models.IndicatorAreaHarvested:      125000,
				models.IndicatorProductionTonnes:   340000,
				models.IndicatorAvgTemp:            20,
				models.IndicatorTempVolatility:     0.431,
				models.IndicatorGDP:                1e11,
				models.IndicatorPoliticalStability: -0.44,
				models.IndicatorInflation:          6.1,
				models.IndicatorCO2Emissions:       17500,
				models.IndicatorAgriLandPercent:    48.5,
				models.IndicatorForestLandPercent:  6.3,
				models.IndicatorPopulation:         53e6,
			},
		},
	}}
}

func TestRunSimulationScenarios(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		shock       models.ScenarioShock
		wantLabel   models.RiskLabel
	}{
		{
			name:        "warming scenario with confident classifier",
			probability: 0.7,
			shock:       models.ScenarioShock{TempDelta: 1.5, GDPDeltaPercent: 0},
			wantLabel:   models.HighRisk,
		},
		{
			name:        "cooling and growth scenario",
			probability: 0.2,
			shock:       models.ScenarioShock{TempDelta: -1, GDPDeltaPercent: 15},
			wantLabel:   models.LowRisk,
		},
		{
			name:        "neutral scenario with uncertain classifier",
			probability: 0.5,
			shock:       models.ScenarioShock{},
			wantLabel:   models.Stable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := &fakeClassifier{probability: tt.probability}
			regressor := &fakeRegressor{estimate: 2.85}
			engine := NewEngine(testStore(), classifier, regressor)

			result, err := engine.RunSimulation(context.Background(), "Kenya", tt.shock)
			if err != nil {
				t.Fatalf("RunSimulation() error = %v", err)
			}
			if result.Assessment.Label != tt.wantLabel {
				t.Errorf("label = %v, want %v", result.Assessment.Label, tt.wantLabel)
			}
			if result.YieldEstimate != 2.85 {
				t.Errorf("yield = %v, want 2.85", result.YieldEstimate)
			}
			if result.BaselineYear != 2021 {
				t.Errorf("baseline year = %d, want 2021", result.BaselineYear)
			}
			if classifier.calls != 1 || regressor.calls != 1 {
				t.Errorf("model calls = (%d, %d), want (1, 1)", classifier.calls, regressor.calls)
			}

			wantTemp := 20 + tt.shock.TempDelta
			wantGDP := 1e11 * (1 + tt.shock.GDPDeltaPercent/100)
			if classifier.lastFeatures[models.IndicatorAvgTemp] != wantTemp {
				t.Errorf("classifier saw Avg_Temp %v, want %v", classifier.lastFeatures[models.IndicatorAvgTemp], wantTemp)
			}
			if regressor.lastFeatures[models.IndicatorGDP] != wantGDP {
				t.Errorf("regressor saw GDP %v, want %v", regressor.lastFeatures[models.IndicatorGDP], wantGDP)
			}
		})
	}
}

func TestRunSimulationUnknownCountry(t *testing.T) {
	classifier := &fakeClassifier{probability: 0.5}
	regressor := &fakeRegressor{estimate: 1}
	engine := NewEngine(testStore(), classifier, regressor)

	_, err := engine.RunSimulation(context.Background(), "Atlantis", models.ScenarioShock{})
	if !errors.Is(err, models.ErrUnknownCountry) {
		t.Fatalf("RunSimulation() error = %v, want ErrUnknownCountry", err)
	}
	if classifier.calls != 0 || regressor.calls != 0 {
		t.Errorf("model calls = (%d, %d), want (0, 0) for unknown country", classifier.calls, regressor.calls)
	}
}

func TestRunSimulationClassifierFailureSkipsYield(t *testing.T) {
	wantErr := errors.New("classifier down")
	classifier := &fakeClassifier{err: wantErr}
	regressor := &fakeRegressor{estimate: 1}
	engine := NewEngine(testStore(), classifier, regressor)

	result, err := engine.RunSimulation(context.Background(), "Kenya", models.ScenarioShock{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("RunSimulation() error = %v, want %v", err, wantErr)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on failure", result)
	}
	if regressor.calls != 0 {
		t.Errorf("regressor called %d times after classifier failure, want 0", regressor.calls)
	}
}

func TestRunSimulationYieldFailureReturnsNothing(t *testing.T) {
	wantErr := errors.New("regressor down")
	classifier := &fakeClassifier{probability: 0.5}
	regressor := &fakeRegressor{err: wantErr}
	engine := NewEngine(testStore(), classifier, regressor)

	result, err := engine.RunSimulation(context.Background(), "Kenya", models.ScenarioShock{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("RunSimulation() error = %v, want %v", err, wantErr)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil — no partial pair on failure", result)
	}
}

func TestRunSimulationInvalidProbability(t *testing.T) {
	classifier := &fakeClassifier{probability: 1.7}
	regressor := &fakeRegressor{estimate: 1}
	engine := NewEngine(testStore(), classifier, regressor)

	_, err := engine.RunSimulation(context.Background(), "Kenya", models.ScenarioShock{TempDelta: 1})
	if !errors.Is(err, models.ErrInvalidProbability) {
		t.Fatalf("RunSimulation() error = %v, want ErrInvalidProbability", err)
	}
	if regressor.calls != 0 {
		t.Errorf("regressor called %d times after contract violation, want 0", regressor.calls)
	}
}
