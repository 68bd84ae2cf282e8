package scoring

import (
	"testing"

	"go-presence/internal/alert"
	"go-presence/internal/checkin"

	"github.com/stretchr/testify/assert"
)

func verified(n int) []checkin.CheckIn {
	rows := make([]checkin.CheckIn, n)
	for i := range rows {
		rows[i] = checkin.CheckIn{Status: checkin.StatusVerified}
	}
	return rows
}

func failed(n int) []checkin.CheckIn {
	rows := make([]checkin.CheckIn, n)
	for i := range rows {
		rows[i] = checkin.CheckIn{Status: checkin.StatusFailed}
	}
	return rows
}

func TestScore_EmptyHistoryIsPerfect(t *testing.T) {
	assert.Equal(t, 100, Score(nil, nil, DefaultWeights()))
}

func TestScore_FailedCheckInsDeduct(t *testing.T) {
	assert.Equal(t, 90, Score(failed(2), nil, DefaultWeights()))
}

func TestScore_AlertSeverityWeights(t *testing.T) {
	alerts := []alert.AIAlert{
		{Severity: alert.SeverityHigh, Status: alert.StatusOpen},
		{Severity: alert.SeverityMedium, Status: alert.StatusOpen},
		{Severity: alert.SeverityLow, Status: alert.StatusOpen},
	}
	assert.Equal(t, 70, Score(nil, alerts, DefaultWeights()))
}

func TestScore_ResolvedAlertsIgnored(t *testing.T) {
	alerts := []alert.AIAlert{
		{Severity: alert.SeverityHigh, Status: alert.StatusResolved},
	}
	assert.Equal(t, 100, Score(nil, alerts, DefaultWeights()))
}

func TestScore_ConsistencyBonusClampedAt100(t *testing.T) {
	// 11 clean check-ins earn the bonus but the score never exceeds 100
	assert.Equal(t, 100, Score(verified(11), nil, DefaultWeights()))
}

func TestScore_BonusRequiresMoreThanTenCheckIns(t *testing.T) {
	alerts := []alert.AIAlert{{Severity: alert.SeverityLow, Status: alert.StatusOpen}}
	assert.Equal(t, 95, Score(verified(10), alerts, DefaultWeights()))
	assert.Equal(t, 100, Score(verified(11), alerts, DefaultWeights()))
}

func TestScore_ClampsAtZeroOnPathologicalInput(t *testing.T) {
	assert.Equal(t, 0, Score(failed(1000), nil, DefaultWeights()))
}

func TestScore_MixedHistory(t *testing.T) {
	checkIns := append(verified(8), failed(1)...)
	alerts := []alert.AIAlert{
		{Severity: alert.SeverityMedium, Status: alert.StatusOpen},
	}
	// 100 - 5 (failed) - 10 (medium) = 85, no bonus since one failed
	assert.Equal(t, 85, Score(checkIns, alerts, DefaultWeights()))
}
