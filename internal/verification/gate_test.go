package verification

import (
	"testing"

	"go-presence/internal/checkin"
	verificationerrors "go-presence/internal/verification/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	siteLat    = 48.8606
	siteLon    = 2.3376
	siteRadius = 100.0
)

func answerHash(t *testing.T, answer string) string {
	t.Helper()
	hash, err := HashAnswer(answer)
	require.NoError(t, err)
	return hash
}

func TestGate_InitialChallengeFullSequence(t *testing.T) {
	gate := NewGate(StaticComparator{Verified: true, ConfidenceScore: 92})
	hash := answerHash(t, "Max")

	ch := gate.NewChallenge(ChallengeInitial)

	factor, _ := ch.Current()
	assert.Equal(t, FactorLocation, factor)

	require.NoError(t, gate.SubmitLocation(ch, siteLat, siteLon, siteLat, siteLon, siteRadius))
	require.NoError(t, gate.SubmitFace(ch, []byte("img"), "bio-001"))
	require.NoError(t, gate.SubmitAnswer(ch, "  MAX ", hash))
	assert.True(t, ch.Complete())

	res, err := ch.Result()
	require.NoError(t, err)
	assert.Equal(t, checkin.MethodFacial, res.VerificationMethod)
	assert.Equal(t, 92, res.ConfidenceScore)
}

func TestGate_FactorsEnforceOrder(t *testing.T) {
	gate := NewGate(StaticComparator{Verified: true, ConfidenceScore: 90})
	ch := gate.NewChallenge(ChallengeInitial)

	err := gate.SubmitFace(ch, []byte("img"), "bio-001")
	assert.ErrorIs(t, err, verificationerrors.ErrFactorOrder)

	err = gate.SubmitAnswer(ch, "Max", answerHash(t, "Max"))
	assert.ErrorIs(t, err, verificationerrors.ErrFactorOrder)
}

func TestGate_LocationFailureDoesNotAdvance(t *testing.T) {
	gate := NewGate(StaticComparator{Verified: true, ConfidenceScore: 90})
	ch := gate.NewChallenge(ChallengeInitial)

	// ~1.1km away from the site center
	err := gate.SubmitLocation(ch, siteLat+0.01, siteLon, siteLat, siteLon, siteRadius)
	assert.ErrorIs(t, err, verificationerrors.ErrOutsideGeofence)

	factor, _ := ch.Current()
	assert.Equal(t, FactorLocation, factor)

	// retry from the same position inside the fence succeeds
	require.NoError(t, gate.SubmitLocation(ch, siteLat, siteLon, siteLat, siteLon, siteRadius))
}

func TestGate_FacialFailureAllowsRetry(t *testing.T) {
	comparator := StaticComparator{Verified: false, ConfidenceScore: 40}
	gate := NewGate(comparator)
	ch := gate.NewChallenge(ChallengePeriodic)

	err := gate.SubmitFace(ch, []byte("img"), "bio-001")
	assert.ErrorIs(t, err, verificationerrors.ErrFaceNotVerified)

	factor, _ := ch.Current()
	assert.Equal(t, FactorFacial, factor)
}

func TestGate_PeriodicQuestionFallback(t *testing.T) {
	gate := NewGate(StaticComparator{Verified: true, ConfidenceScore: 95})
	hash := answerHash(t, "Paris")

	ch := gate.NewChallenge(ChallengePeriodic)
	require.NoError(t, ch.SkipFacial())
	require.NoError(t, gate.SubmitAnswer(ch, "paris", hash))

	res, err := ch.Result()
	require.NoError(t, err)
	assert.Equal(t, checkin.MethodQuestion, res.VerificationMethod)
	assert.Equal(t, 100, res.ConfidenceScore)
}

func TestGate_SkipFacialOnlyAtFacialFactor(t *testing.T) {
	gate := NewGate(StaticComparator{Verified: true, ConfidenceScore: 95})
	ch := gate.NewChallenge(ChallengeInitial)

	assert.ErrorIs(t, ch.SkipFacial(), verificationerrors.ErrFactorOrder)
}

func TestGate_WrongAnswerDoesNotComplete(t *testing.T) {
	gate := NewGate(StaticComparator{Verified: true, ConfidenceScore: 88})
	hash := answerHash(t, "Couscous")

	ch := gate.NewChallenge(ChallengePeriodic)
	require.NoError(t, gate.SubmitFace(ch, []byte("img"), "bio-003"))

	err := gate.SubmitAnswer(ch, "pizza", hash)
	assert.ErrorIs(t, err, verificationerrors.ErrWrongAnswer)
	assert.False(t, ch.Complete())

	_, err = ch.Result()
	assert.ErrorIs(t, err, verificationerrors.ErrChallengeIncomplete)
}

func TestGate_CompletedChallengeRejectsResubmission(t *testing.T) {
	gate := NewGate(StaticComparator{Verified: true, ConfidenceScore: 90})
	hash := answerHash(t, "Max")

	ch := gate.NewChallenge(ChallengePeriodic)
	require.NoError(t, gate.SubmitFace(ch, []byte("img"), "bio-001"))
	require.NoError(t, gate.SubmitAnswer(ch, "max", hash))

	err := gate.SubmitAnswer(ch, "max", hash)
	assert.ErrorIs(t, err, verificationerrors.ErrChallengeComplete)
}

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, "max", NormalizeAnswer("  MaX \n"))
}
