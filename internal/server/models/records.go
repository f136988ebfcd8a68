package models

import (
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
)

// LoginRecord is one login event. LogoutTime is nil while the session that
// produced it is still open, and is set at most once.
type LoginRecord struct {
	ID         int64
	UserName   string
	LoginTime  time.Time
	LogoutTime *time.Time
}

func (r LoginRecord) Open() bool {
	return r.LogoutTime == nil
}

// LogoutDisplay renders LogoutTime, or "N/A" for an open record.
func (r LoginRecord) LogoutDisplay() string {
	if r.LogoutTime == nil {
		return common.NotAvailable
	}
	return r.LogoutTime.UTC().Format(time.RFC3339)
}

// QueryRecord is one spell-check submission. Immutable.
type QueryRecord struct {
	ID         int64
	UserName   string
	Text       string
	Misspelled []string
	CreatedAt  time.Time
}
