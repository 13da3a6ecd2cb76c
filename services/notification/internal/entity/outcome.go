package entity

// WriteFailure records one recipient room whose notification could not be stored.
type WriteFailure struct {
	RoomID int64
	Err    error
}

// FanoutOutcome is the aggregated result of one fan-out.
type FanoutOutcome struct {
	FanoutID      string         `json:"fanoutId"`
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	SentCount     int            `json:"sentCount"`
	FailedCount   int            `json:"failedCount"`
	FailedTargets []int64        `json:"failedTargets"`
	Notifications []Notification `json:"notifications"`
	Failures      []WriteFailure `json:"-"`
}

// Partial reports whether some but not all recipients were written.
func (o *FanoutOutcome) Partial() bool {
	return o.SentCount > 0 && o.FailedCount > 0
}
