package risk

import (
	"context"
	"errors"
	"math"
	"testing"

	"agrishield/models"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		shock       models.ScenarioShock
		want        models.RiskLabel
	}{
		{
			name:        "high probability with warming",
			probability: 0.7,
			shock:       models.ScenarioShock{TempDelta: 1.5},
			want:        models.HighRisk,
		},
		{
			name:        "high probability threshold with minimal warming",
			probability: 0.65,
			shock:       models.ScenarioShock{TempDelta: 0.0001},
			want:        models.HighRisk,
		},
		{
			name:        "high probability without warming stays stable",
			probability: 0.65,
			shock:       models.ScenarioShock{TempDelta: 0},
			want:        models.Stable,
		},
		{
			name:        "confident classifier contradicted by neutral shock",
			probability: 0.9,
			shock:       models.ScenarioShock{TempDelta: 0},
			want:        models.Stable,
		},
		{
			name:        "low probability with cooling and strong growth",
			probability: 0.2,
			shock:       models.ScenarioShock{TempDelta: -1, GDPDeltaPercent: 15},
			want:        models.LowRisk,
		},
		{
			name:        "low risk boundary",
			probability: 0.35,
			shock:       models.ScenarioShock{TempDelta: 0, GDPDeltaPercent: 10},
			want:        models.LowRisk,
		},
		{
			name:        "growth just under the low risk floor",
			probability: 0.35,
			shock:       models.ScenarioShock{TempDelta: 0, GDPDeltaPercent: 9.999},
			want:        models.Stable,
		},
		{
			name:        "low probability with warming stays stable",
			probability: 0.1,
			shock:       models.ScenarioShock{TempDelta: 0.5, GDPDeltaPercent: 20},
			want:        models.Stable,
		},
		{
			name:        "ambiguous middle",
			probability: 0.5,
			shock:       models.ScenarioShock{},
			want:        models.Stable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.probability, tt.shock); got != tt.want {
				t.Errorf("Label(%v, %+v) = %v, want %v", tt.probability, tt.shock, got, tt.want)
			}
		})
	}
}

// The HIGH_RISK and LOW_RISK predicates must never both fire: exactly one rule
// matches any input once the STABLE fallthrough is counted.
func TestLabelBranchesMutuallyExclusive(t *testing.T) {
	probabilities := []float64{0, 0.2, 0.35, 0.5, 0.65, 0.8, 1}
	tempDeltas := []float64{-2, -0.5, 0, 0.0001, 1, 4}
	gdpDeltas := []float64{-20, 0, 9.999, 10, 30}

	for _, p := range probabilities {
		for _, td := range tempDeltas {
			for _, gd := range gdpDeltas {
				shock := models.ScenarioShock{TempDelta: td, GDPDeltaPercent: gd}
				high := p >= 0.65 && td > 0
				low := p <= 0.35 && td <= 0 && gd >= 10
				if high && low {
					t.Fatalf("both branches fire for p=%v shock=%+v", p, shock)
				}

				want := models.Stable
				if high {
					want = models.HighRisk
				} else if low {
					want = models.LowRisk
				}
				if got := Label(p, shock); got != want {
					t.Errorf("Label(%v, %+v) = %v, want %v", p, shock, got, want)
				}
			}
		}
	}
}

type stubClassifier struct {
	probability float64
	err         error
	calls       int
}

func (s *stubClassifier) ClassifyRisk(context.Context, models.FeatureVector) (float64, error) {
	s.calls++
	return s.probability, s.err
}

func TestAssessRisk(t *testing.T) {
	classifier := &stubClassifier{probability: 0.7}
	assessor := NewAssessor(classifier)
	shock := models.ScenarioShock{TempDelta: 1.5}

	assessment, err := assessor.AssessRisk(context.Background(), models.FeatureVector{}, shock)
	if err != nil {
		t.Fatalf("AssessRisk() error = %v", err)
	}
	if assessment.Label != models.HighRisk {
		t.Errorf("label = %v, want HIGH_RISK", assessment.Label)
	}
	if assessment.Probability != 0.7 {
		t.Errorf("probability = %v, want 0.7", assessment.Probability)
	}
	if assessment.Shock != shock {
		t.Errorf("shock = %+v, want %+v", assessment.Shock, shock)
	}
}

func TestAssessRiskInvalidProbability(t *testing.T) {
	for _, p := range []float64{-0.01, 1.01, 2, math.NaN()} {
		classifier := &stubClassifier{probability: p}
		assessor := NewAssessor(classifier)

		_, err := assessor.AssessRisk(context.Background(), models.FeatureVector{}, models.ScenarioShock{})
		if !errors.Is(err, models.ErrInvalidProbability) {
			t.Errorf("probability %v: error = %v, want ErrInvalidProbability", p, err)
		}
	}
}

func TestAssessRiskPropagatesClassifierError(t *testing.T) {
	wantErr := errors.New("model server unreachable")
	assessor := NewAssessor(&stubClassifier{err: wantErr})

	_, err := assessor.AssessRisk(context.Background(), models.FeatureVector{}, models.ScenarioShock{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("AssessRisk() error = %v, want wrapped %v", err, wantErr)
	}
}
