package scoring

import (
	"go-presence/internal/alert"
	"go-presence/internal/checkin"
)

// Weights is the additive scoring policy applied to a check-in history.
// The defaults are part of the product's compliance contract; deployments
// may override them but the clamping to [0,100] always holds.
type Weights struct {
	FailedCheckIn    int
	HighAlert        int
	MediumAlert      int
	LowAlert         int
	ConsistencyBonus int
	BonusThreshold   int
}

func DefaultWeights() Weights {
	return Weights{
		FailedCheckIn:    5,
		HighAlert:        15,
		MediumAlert:      10,
		LowAlert:         5,
		ConsistencyBonus: 5,
		BonusThreshold:   10,
	}
}

// Score computes a 0-100 reliability score from a 100 baseline. Resolved
// alerts no longer count against the employee.
func Score(checkIns []checkin.CheckIn, alerts []alert.AIAlert, w Weights) int {
	score := 100

	failed := 0
	for _, c := range checkIns {
		if c.Status == checkin.StatusFailed {
			failed++
		}
	}
	score -= failed * w.FailedCheckIn

	for _, a := range alerts {
		if a.Status == alert.StatusResolved {
			continue
		}
		switch a.Severity {
		case alert.SeverityHigh:
			score -= w.HighAlert
		case alert.SeverityMedium:
			score -= w.MediumAlert
		case alert.SeverityLow:
			score -= w.LowAlert
		}
	}

	if len(checkIns) > w.BonusThreshold && failed == 0 {
		score += w.ConsistencyBonus
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
