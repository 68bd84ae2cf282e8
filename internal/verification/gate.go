package verification

import (
	"strings"

	"go-presence/internal/checkin"
	"go-presence/internal/geo"
	verificationerrors "go-presence/internal/verification/errors"

	"golang.org/x/crypto/bcrypt"
)

type Factor string

const (
	FactorLocation Factor = "location"
	FactorFacial   Factor = "facial"
	FactorQuestion Factor = "question"
)

type ChallengeKind string

const (
	// ChallengeInitial is the day-start sequence: location, facial, question.
	ChallengeInitial ChallengeKind = "initial"
	// ChallengePeriodic is the re-verification sequence: facial, question.
	ChallengePeriodic ChallengeKind = "periodic"
)

// Challenge is an ordered list of verification factors with a cursor. The
// cursor advances only on success; a failed factor leaves the challenge
// where it was so the caller can retry.
type Challenge struct {
	kind             ChallengeKind
	factors          []Factor
	cursor           int
	facialUsed       bool
	facialConfidence int
}

// Result summarizes a completed challenge for check-in recording.
type Result struct {
	// VerificationMethod names the primary factor used.
	VerificationMethod string
	// ConfidenceScore is the facial score when the facial factor ran,
	// otherwise 100 for question-only paths.
	ConfidenceScore int
}

// Gate decides whether submitted verification factors satisfy an identity
// challenge. It holds no per-employee state; each check-in gets a fresh
// Challenge.
type Gate struct {
	comparator FaceComparator
}

func NewGate(comparator FaceComparator) *Gate {
	return &Gate{comparator: comparator}
}

func (g *Gate) NewChallenge(kind ChallengeKind) *Challenge {
	switch kind {
	case ChallengeInitial:
		return &Challenge{kind: kind, factors: []Factor{FactorLocation, FactorFacial, FactorQuestion}}
	default:
		return &Challenge{kind: ChallengePeriodic, factors: []Factor{FactorFacial, FactorQuestion}}
	}
}

func (c *Challenge) Current() (Factor, bool) {
	if c.cursor >= len(c.factors) {
		return "", false
	}
	return c.factors[c.cursor], true
}

func (c *Challenge) Complete() bool {
	return c.cursor >= len(c.factors)
}

// SkipFacial replaces the pending facial factor with the question fallback.
// This is the explicit "camera not working" escape hatch.
func (c *Challenge) SkipFacial() error {
	current, ok := c.Current()
	if !ok {
		return verificationerrors.ErrChallengeComplete
	}
	if current != FactorFacial {
		return verificationerrors.ErrFactorOrder
	}
	c.cursor++
	return nil
}

func (c *Challenge) require(f Factor) error {
	current, ok := c.Current()
	if !ok {
		return verificationerrors.ErrChallengeComplete
	}
	if current != f {
		return verificationerrors.ErrFactorOrder
	}
	return nil
}

// SubmitLocation passes iff the coordinate is inside the site geofence.
// Failure leaves the cursor in place; the caller may retry.
func (g *Gate) SubmitLocation(c *Challenge, lat, lon, siteLat, siteLon, radiusMeters float64) error {
	if err := c.require(FactorLocation); err != nil {
		return err
	}
	if !geo.IsWithinGeofence(lat, lon, siteLat, siteLon, radiusMeters) {
		return verificationerrors.ErrOutsideGeofence
	}
	c.cursor++
	return nil
}

// SubmitFace delegates to the face comparator and records the confidence
// score on success.
func (g *Gate) SubmitFace(c *Challenge, sample []byte, biometricRef string) error {
	if err := c.require(FactorFacial); err != nil {
		return err
	}
	result := g.comparator.CompareFace(sample, biometricRef)
	if !result.Verified {
		return verificationerrors.ErrFaceNotVerified
	}
	c.facialUsed = true
	c.facialConfidence = result.ConfidenceScore
	c.cursor++
	return nil
}

// SubmitAnswer passes iff the normalized answer matches the stored hash.
func (g *Gate) SubmitAnswer(c *Challenge, answer, storedAnswerHash string) error {
	if err := c.require(FactorQuestion); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(storedAnswerHash), []byte(NormalizeAnswer(answer))) != nil {
		return verificationerrors.ErrWrongAnswer
	}
	c.cursor++
	return nil
}

// Result is only meaningful once the challenge is complete.
func (c *Challenge) Result() (Result, error) {
	if !c.Complete() {
		return Result{}, verificationerrors.ErrChallengeIncomplete
	}
	if c.facialUsed {
		return Result{VerificationMethod: checkin.MethodFacial, ConfidenceScore: c.facialConfidence}, nil
	}
	return Result{VerificationMethod: checkin.MethodQuestion, ConfidenceScore: 100}, nil
}

// NormalizeAnswer applies the comparison convention for security answers:
// case-insensitive, surrounding whitespace ignored.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// HashAnswer prepares a security answer for storage.
func HashAnswer(answer string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(NormalizeAnswer(answer)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
