package service

import (
	"math"

	"github.com/lcavallin/gradelens/config"
	"github.com/rs/zerolog/log"
)

// dominantWeight is the share of total weight above which the closest
// neighbor alone determines the grade. Past this point the remaining
// neighbors are an order of magnitude further away and blending them in
// would add noise, not signal.
const dominantWeight = 0.9

// ConsensusService combines ranked (distance, grade) neighbor evidence into a
// single predicted grade. Both methods require distances sorted ascending,
// index-aligned with grades.
type ConsensusService interface {
	WeightedConsensus(distances, grades []float64) (float64, error)
	AdjustForConfidence(distances []float64, score float64) (float64, error)
}

type consensusService struct {
	reductionStart float64
	reductionEnd   float64
}

func NewConsensusService(cfg *config.Config) ConsensusService {
	return &consensusService{
		reductionStart: cfg.Grading.ReductionStart,
		reductionEnd:   cfg.Grading.ReductionEnd,
	}
}

// WeightedConsensus computes the inverse-distance-weighted average of the
// neighbor grades.
//
// Short-circuits: a zero distance means the candidate is numerically
// identical to an already graded answer, so that answer's grade is returned
// as-is; a single neighbor fully determines the grade; and a closest
// neighbor holding at least 90% of the total weight wins outright.
//
// The result is not rounded here; callers round at the edge to keep the
// function composable.
func (s *consensusService) WeightedConsensus(distances, grades []float64) (float64, error) {
	if len(distances) == 0 {
		return 0, ErrEmptyEvidence
	}

	if distances[0] == 0 || len(distances) == 1 {
		return grades[0], nil
	}

	inverses := make([]float64, len(distances))
	var total float64
	for i, d := range distances {
		inverses[i] = 1 / d
		total += inverses[i]
	}

	weights := make([]float64, len(inverses))
	for i, inv := range inverses {
		weights[i] = inv / total
	}

	log.Debug().Floats64("weights", weights).Msg("Neighbor distance weights")

	if weights[0] >= dominantWeight {
		return grades[0], nil
	}

	var consensus float64
	for i, g := range grades {
		consensus += g * weights[i]
	}
	return consensus, nil
}

// AdjustForConfidence dampens the score based on the closest-neighbor
// distance. Below reductionStart the score passes through unchanged; beyond
// reductionEnd it collapses to zero; in between it is reduced linearly and
// rounded to one decimal place. Monotonically non-increasing in the closest
// distance.
func (s *consensusService) AdjustForConfidence(distances []float64, score float64) (float64, error) {
	if len(distances) == 0 {
		return 0, ErrEmptyEvidence
	}
	if s.reductionStart < 0 || s.reductionStart > s.reductionEnd {
		return 0, ErrInvalidConfidenceBounds
	}

	closest := distances[0]

	if closest > s.reductionEnd {
		return 0, nil
	}
	if closest < s.reductionStart {
		return score, nil
	}

	if s.reductionEnd == s.reductionStart {
		return 0, nil
	}

	fraction := (closest - s.reductionStart) / (s.reductionEnd - s.reductionStart)
	return roundTo(score*(1-fraction), 1), nil
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
