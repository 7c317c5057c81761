package audit

import "time"

// TopicLimitExceeded carries rate limit rejection events.
const TopicLimitExceeded = "ratelimit.exceeded"

// LimitExceededEvent is emitted whenever a request is rejected with a 429.
// The auditor binary consumes these for abuse review.
type LimitExceededEvent struct {
	Policy     string    `json:"policy"`
	Subject    string    `json:"subject"`
	Key        string    `json:"key"`
	Limit      int64     `json:"limit"`
	Count      int64     `json:"count"`
	ResetAt    time.Time `json:"resetAt"`
	Path       string    `json:"path"`
	Method     string    `json:"method"`
	ClientIP   string    `json:"clientIp"`
	OccurredAt time.Time `json:"occurredAt"`
}
