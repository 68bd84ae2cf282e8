package verification

// FaceResult is the verdict of the external face comparator. Successful
// comparisons conventionally score 85 or above.
type FaceResult struct {
	Verified        bool
	ConfidenceScore int
}

// FaceComparator compares a captured sample against an employee's stored
// biometric reference. Implementations live outside the engine; acquisition
// of the sample happens in the caller's layer.
//
//go:generate mockgen -source=face.go -destination=mock/face_comparator_mock.go -package=mock
type FaceComparator interface {
	CompareFace(sample []byte, biometricRef string) FaceResult
}

// StaticComparator returns a fixed verdict. It stands in for a biometric
// vendor in development and test environments.
type StaticComparator struct {
	Verified        bool
	ConfidenceScore int
}

func (c StaticComparator) CompareFace([]byte, string) FaceResult {
	return FaceResult{Verified: c.Verified, ConfidenceScore: c.ConfidenceScore}
}
