package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AuditContext is a free-form key/value bag attached to an audit log entry,
// stored as JSONB.
type AuditContext map[string]string

func (c AuditContext) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *AuditContext) Scan(src any) error {
	if src == nil {
		*c = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into AuditContext", src)
	}
	return json.Unmarshal(data, c)
}

type AuditLogEntry struct {
	ID        string       `json:"id"         db:"id"`
	Message   string       `json:"message"    db:"message"`
	Context   AuditContext `json:"context"    db:"context"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}
