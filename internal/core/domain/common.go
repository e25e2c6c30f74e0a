package domain

import "time"

// AuditFields holds the timestamps common to all persisted entities.
// UpdatedAt is refreshed on every mutating operation.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
