package services

import (
	"fmt"
	"time"

	"github.com/mitlacherp/local-contract-manager/models"
)

// Alert window policy. The expiry look-ahead and the notice lead band
// are global constants, not per-contract settings.
const (
	// ExpiryWindowDays is how far ahead of a contract's end date the
	// expiry warning fires.
	ExpiryWindowDays = 90

	// NoticeLeadDays is how long before the last possible notice date
	// the notice warning fires.
	NoticeLeadDays = 14
)

// AlertCandidate is one satisfied trigger for one contract. The message
// carries the contract title and the concrete dates so the alert stays
// readable after the contract is renamed or deleted.
type AlertCandidate struct {
	ContractID uint
	Type       models.AlertType
	Message    string
}

// dateOnly truncates to calendar-day granularity. End dates are naive
// dates; comparing full timestamps would make alerts flap within a day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EvaluateTriggers reports which alert conditions a single contract
// satisfies at the given instant. It is pure: no I/O, no clock access.
// Contracts without an end date never trigger.
func EvaluateTriggers(c *models.Contract, now time.Time) []AlertCandidate {
	if c.EndDate == nil {
		return nil
	}

	today := dateOnly(now)
	end := dateOnly(*c.EndDate)

	var out []AlertCandidate

	// Expiry: end date inside (today, today+window]. An already-passed
	// end date is the record subsystem's problem (status -> expired),
	// not a re-alert.
	if end.After(today) && !end.After(today.AddDate(0, 0, ExpiryWindowDays)) {
		daysLeft := int(end.Sub(today).Hours() / 24)
		out = append(out, AlertCandidate{
			ContractID: c.ID,
			Type:       models.AlertExpiry,
			Message: fmt.Sprintf("Contract %q expires in %d days (%s).",
				c.Title, daysLeft, end.Format("2006-01-02")),
		})
	}

	// Notice: warn while the last day to give notice is approaching.
	// Once the deadline has passed the window is gone; the policy is
	// warn-ahead, never warn-after.
	if c.NoticePeriodDays > 0 {
		deadline := end.AddDate(0, 0, -c.NoticePeriodDays)
		bandStart := deadline.AddDate(0, 0, -NoticeLeadDays)
		if !today.Before(bandStart) && today.Before(deadline) {
			out = append(out, AlertCandidate{
				ContractID: c.ID,
				Type:       models.AlertNotice,
				Message: fmt.Sprintf("Action Required: notice period for %q ends %s (%d-day notice).",
					c.Title, deadline.Format("2006-01-02"), c.NoticePeriodDays),
			})
		}
	}

	return out
}
