// Package fixid gives batch tasks and history-service runs a single,
// correlatable identifier type, grounded on the teacher's own use of
// google/uuid for request/session identity (server/api/api.go's
// requireIDParam, server/dao/sqlite's session rows).
package fixid

import "github.com/google/uuid"

// ID identifies one fix task or history-service run.
type ID = uuid.UUID

// New allocates a fresh random ID.
func New() ID { return uuid.New() }

// Parse parses s as an ID, erroring if it is not a valid UUID.
func Parse(s string) (ID, error) { return uuid.Parse(s) }
