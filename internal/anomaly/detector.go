package anomaly

import (
	"fmt"
	"time"

	"go-presence/internal/alert"
	"go-presence/internal/checkin"
	"go-presence/internal/geo"
)

const (
	gpsRoundDecimals        = 4
	gpsMinSamples           = 5
	gpsStableThreshold      = 10
	selfieMinFacialCheckIns = 3
	movementMaxKm           = 10.0
	movementMinSeconds      = 300.0
	lateHour                = 9
	lateMinCount            = 3
)

// ImageComparator reports whether an employee's facial captures across the
// given check-ins are near-duplicates of each other. Implementations talk to
// the biometric vendor; the detector only consumes the verdict.
type ImageComparator interface {
	HasNearDuplicates(employeeID string, checkInIDs []string) bool
}

// NoopComparator never flags duplicates. Used when no biometric backend is
// configured.
type NoopComparator struct{}

func (NoopComparator) HasNearDuplicates(string, []string) bool { return false }

// Detector scans a window of one employee's check-ins and location samples
// and emits alert drafts. All four checks run unconditionally over the same
// window; an employee may trigger several alert types in one pass.
type Detector struct {
	comparator ImageComparator
	now        func() time.Time
}

func NewDetector(comparator ImageComparator) *Detector {
	if comparator == nil {
		comparator = NoopComparator{}
	}
	return &Detector{comparator: comparator, now: time.Now}
}

// Detect expects locations in chronological order. It never consults state
// beyond its arguments.
func (d *Detector) Detect(employeeID string, checkIns []checkin.CheckIn, locations []checkin.LocationSample) []alert.Draft {
	var drafts []alert.Draft
	drafts = append(drafts, d.detectGPSStability(employeeID, locations)...)
	drafts = append(drafts, d.detectIdenticalSelfies(employeeID, checkIns)...)
	drafts = append(drafts, d.detectUnrealisticMovement(employeeID, locations)...)
	drafts = append(drafts, d.detectLateAuth(employeeID, checkIns)...)
	return drafts
}

// A real employee's GPS reading jitters; exact repetition across many
// samples indicates a spoofed or fixed location feed.
func (d *Detector) detectGPSStability(employeeID string, locations []checkin.LocationSample) []alert.Draft {
	if len(locations) < gpsMinSamples {
		return nil
	}

	unique := make(map[string]struct{}, len(locations))
	for _, l := range locations {
		key := fmt.Sprintf("%.*f,%.*f", gpsRoundDecimals, l.Latitude, gpsRoundDecimals, l.Longitude)
		unique[key] = struct{}{}
	}

	if len(unique) == 1 && len(locations) > gpsStableThreshold {
		return []alert.Draft{{
			EmployeeID:      employeeID,
			Type:            alert.TypeGPSStable,
			Severity:        alert.SeverityMedium,
			Timestamp:       d.now(),
			Details:         fmt.Sprintf("GPS coordinates have not changed in %d readings", len(locations)),
			ConfidenceScore: 75,
		}}
	}
	return nil
}

func (d *Detector) detectIdenticalSelfies(employeeID string, checkIns []checkin.CheckIn) []alert.Draft {
	var facialIDs []string
	for _, c := range checkIns {
		if c.VerificationMethod == checkin.MethodFacial {
			facialIDs = append(facialIDs, c.ID.String())
		}
	}
	if len(facialIDs) < selfieMinFacialCheckIns {
		return nil
	}

	if d.comparator.HasNearDuplicates(employeeID, facialIDs) {
		return []alert.Draft{{
			EmployeeID:      employeeID,
			Type:            alert.TypeIdenticalSelfies,
			Severity:        alert.SeverityHigh,
			Timestamp:       d.now(),
			Details:         "Multiple check-ins appear to use identical or very similar photos",
			ConfidenceScore: 85,
		}}
	}
	return nil
}

// 10km in under 5 minutes averages above 120 km/h, implausible for an
// employee moving around a work site.
func (d *Detector) detectUnrealisticMovement(employeeID string, locations []checkin.LocationSample) []alert.Draft {
	var drafts []alert.Draft
	for i := 1; i < len(locations); i++ {
		prev, curr := locations[i-1], locations[i]
		elapsed := curr.RecordedAt.Sub(prev.RecordedAt).Seconds()
		distance := geo.DistanceKm(prev.Latitude, prev.Longitude, curr.Latitude, curr.Longitude)

		if distance > movementMaxKm && elapsed < movementMinSeconds {
			drafts = append(drafts, alert.Draft{
				EmployeeID:      employeeID,
				Type:            alert.TypeUnrealisticMovement,
				Severity:        alert.SeverityHigh,
				Timestamp:       d.now(),
				Details:         fmt.Sprintf("Moved %.1fkm in %d minutes", distance, int(elapsed/60+0.5)),
				ConfidenceScore: 90,
			})
		}
	}
	return drafts
}

func (d *Detector) detectLateAuth(employeeID string, checkIns []checkin.CheckIn) []alert.Draft {
	if len(checkIns) == 0 {
		return nil
	}

	late := 0
	for _, c := range checkIns {
		if c.OccurredAt.Hour() > lateHour {
			late++
		}
	}

	if late >= lateMinCount && float64(late)/float64(len(checkIns)) > 0.5 {
		return []alert.Draft{{
			EmployeeID:      employeeID,
			Type:            alert.TypeLateAuth,
			Severity:        alert.SeverityLow,
			Timestamp:       d.now(),
			Details:         fmt.Sprintf("%d out of %d check-ins were late", late, len(checkIns)),
			ConfidenceScore: 70,
		}}
	}
	return nil
}
