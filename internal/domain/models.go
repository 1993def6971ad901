package domain

// CheckRequest is the payload sent to the checking service.
type CheckRequest struct {
	URL string `json:"url"`
}

// RegionResult is the outcome reported for one probe region.
type RegionResult struct {
	Region       string   `json:"region"`
	Status       string   `json:"status"`
	ResponseTime *float64 `json:"responseTime"` // milliseconds; nil when not measured
}

// ResultSet keeps the order the service returned.
type ResultSet []RegionResult

// Millis is a helper for building RegionResult values with a measured time.
func Millis(v float64) *float64 {
	return &v
}
