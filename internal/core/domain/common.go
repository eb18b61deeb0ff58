package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// PageWindow is an offset/limit slice over an ordered result set.
type PageWindow struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageNo returns the 1-based page number the window points at.
func (w PageWindow) PageNo() int {
	if w.Limit <= 0 {
		return 1
	}
	return w.Offset/w.Limit + 1
}
