package anomaly

import (
	"testing"
	"time"

	"go-presence/internal/alert"
	"go-presence/internal/checkin"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeComparator struct {
	duplicates bool
	gotIDs     []string
}

func (f *fakeComparator) HasNearDuplicates(_ string, ids []string) bool {
	f.gotIDs = ids
	return f.duplicates
}

func fixedDetector(comparator ImageComparator) *Detector {
	d := NewDetector(comparator)
	d.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return d
}

func samplesAt(base time.Time, coords [][2]float64, step time.Duration) []checkin.LocationSample {
	rows := make([]checkin.LocationSample, len(coords))
	for i, c := range coords {
		rows[i] = checkin.LocationSample{
			Latitude:   c[0],
			Longitude:  c[1],
			RecordedAt: base.Add(time.Duration(i) * step),
		}
	}
	return rows
}

func identicalSamples(n int) []checkin.LocationSample {
	coords := make([][2]float64, n)
	for i := range coords {
		coords[i] = [2]float64{48.8606, 2.3376}
	}
	return samplesAt(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), coords, time.Minute)
}

func TestDetect_GPSStable_ElevenIdenticalSamples(t *testing.T) {
	d := fixedDetector(nil)
	drafts := d.Detect("emp-1", nil, identicalSamples(11))

	assert.Len(t, drafts, 1)
	assert.Equal(t, alert.TypeGPSStable, drafts[0].Type)
	assert.Equal(t, alert.SeverityMedium, drafts[0].Severity)
	assert.Equal(t, 75, drafts[0].ConfidenceScore)
	assert.Equal(t, "emp-1", drafts[0].EmployeeID)
}

func TestDetect_GPSStable_NineSamplesBelowThreshold(t *testing.T) {
	d := fixedDetector(nil)
	assert.Empty(t, d.Detect("emp-1", nil, identicalSamples(9)))
}

func TestDetect_GPSStable_JitterIsNormal(t *testing.T) {
	coords := make([][2]float64, 12)
	for i := range coords {
		// jitter beyond the 4-decimal rounding (~11m)
		coords[i] = [2]float64{48.8606 + float64(i)*0.001, 2.3376}
	}
	d := fixedDetector(nil)
	samples := samplesAt(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), coords, time.Minute)
	assert.Empty(t, d.Detect("emp-1", nil, samples))
}

func TestDetect_UnrealisticMovement(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	// ~15.2km apart in latitude
	far := [][2]float64{{48.8606, 2.3376}, {48.9973, 2.3376}}

	d := fixedDetector(nil)

	fourMin := samplesAt(base, far, 4*time.Minute)
	drafts := d.Detect("emp-1", nil, fourMin)
	assert.Len(t, drafts, 1)
	assert.Equal(t, alert.TypeUnrealisticMovement, drafts[0].Type)
	assert.Equal(t, alert.SeverityHigh, drafts[0].Severity)
	assert.Equal(t, 90, drafts[0].ConfidenceScore)
	assert.Contains(t, drafts[0].Details, "km in")

	tenMin := samplesAt(base, far, 10*time.Minute)
	assert.Empty(t, d.Detect("emp-1", nil, tenMin))
}

func TestDetect_UnrealisticMovement_OneAlertPerOffendingPair(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	coords := [][2]float64{
		{48.8606, 2.3376},
		{48.9973, 2.3376},
		{48.8606, 2.3376},
	}
	d := fixedDetector(nil)
	drafts := d.Detect("emp-1", nil, samplesAt(base, coords, 2*time.Minute))
	assert.Len(t, drafts, 2)
}

func TestDetect_IdenticalSelfies_RequiresThreeFacialCheckIns(t *testing.T) {
	cmp := &fakeComparator{duplicates: true}
	d := fixedDetector(cmp)

	two := []checkin.CheckIn{
		{ID: uuid.New(), VerificationMethod: checkin.MethodFacial},
		{ID: uuid.New(), VerificationMethod: checkin.MethodFacial},
	}
	assert.Empty(t, d.Detect("emp-1", two, nil))

	three := append(two, checkin.CheckIn{ID: uuid.New(), VerificationMethod: checkin.MethodFacial})
	drafts := d.Detect("emp-1", three, nil)
	assert.Len(t, drafts, 1)
	assert.Equal(t, alert.TypeIdenticalSelfies, drafts[0].Type)
	assert.Equal(t, 85, drafts[0].ConfidenceScore)
	assert.Len(t, cmp.gotIDs, 3)
}

func TestDetect_IdenticalSelfies_ComparatorClears(t *testing.T) {
	d := fixedDetector(&fakeComparator{duplicates: false})
	three := []checkin.CheckIn{
		{ID: uuid.New(), VerificationMethod: checkin.MethodFacial},
		{ID: uuid.New(), VerificationMethod: checkin.MethodFacial},
		{ID: uuid.New(), VerificationMethod: checkin.MethodFacial},
	}
	assert.Empty(t, d.Detect("emp-1", three, nil))
}

func lateCheckIns(late, onTime int) []checkin.CheckIn {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	var rows []checkin.CheckIn
	for i := 0; i < late; i++ {
		rows = append(rows, checkin.CheckIn{OccurredAt: day.Add(10 * time.Hour)})
	}
	for i := 0; i < onTime; i++ {
		rows = append(rows, checkin.CheckIn{OccurredAt: day.Add(8 * time.Hour)})
	}
	return rows
}

func TestDetect_LateAuth(t *testing.T) {
	d := fixedDetector(nil)

	drafts := d.Detect("emp-1", lateCheckIns(3, 1), nil)
	assert.Len(t, drafts, 1)
	assert.Equal(t, alert.TypeLateAuth, drafts[0].Type)
	assert.Equal(t, alert.SeverityLow, drafts[0].Severity)
	assert.Equal(t, 70, drafts[0].ConfidenceScore)

	// three late out of six is not more than half
	assert.Empty(t, d.Detect("emp-1", lateCheckIns(3, 3), nil))

	// two late is below the minimum count even when all are late
	assert.Empty(t, d.Detect("emp-1", lateCheckIns(2, 0), nil))
}

func TestDetect_Deterministic(t *testing.T) {
	d := fixedDetector(&fakeComparator{duplicates: true})
	checkIns := lateCheckIns(4, 0)
	locations := identicalSamples(12)

	first := d.Detect("emp-1", checkIns, locations)
	second := d.Detect("emp-1", checkIns, locations)
	assert.Equal(t, first, second)
}

func TestDetect_MultipleAlertTypesInOnePass(t *testing.T) {
	d := fixedDetector(nil)
	drafts := d.Detect("emp-1", lateCheckIns(4, 0), identicalSamples(11))

	types := map[alert.Type]int{}
	for _, dr := range drafts {
		types[dr.Type]++
	}
	assert.Equal(t, 1, types[alert.TypeGPSStable])
	assert.Equal(t, 1, types[alert.TypeLateAuth])
}
