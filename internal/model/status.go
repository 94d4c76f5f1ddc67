package model

import "strings"

type RequestStatus string

const (
	StatusNew               RequestStatus = "new"
	StatusInProgress        RequestStatus = "in_progress"
	StatusQuoteSent         RequestStatus = "quote_sent"
	StatusInterestConfirmed RequestStatus = "interest_confirmed"
	StatusInterestDeclined  RequestStatus = "interest_declined"
	StatusOnSiteVisit       RequestStatus = "on_site_visit"
	StatusInProgressBuild   RequestStatus = "in_progress_build"
	StatusCompleted         RequestStatus = "completed"
)

func (s RequestStatus) String() string { return string(s) }

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusQuoteSent,
		StatusInterestConfirmed, StatusInterestDeclined,
		StatusOnSiteVisit, StatusInProgressBuild, StatusCompleted:
		return true
	}
	return false
}

// ParseRequestStatus normalizes input. Returns (value, true) if valid.
func ParseRequestStatus(v string) (RequestStatus, bool) {
	s := RequestStatus(strings.ToLower(strings.TrimSpace(v)))
	return s, s.Valid()
}

// Terminal reports whether the status suppresses all further reminders.
// Anything past quote_sent counts: the nurture sequence only ever runs
// against requests still sitting in quote_sent.
func (s RequestStatus) Terminal() bool {
	switch s {
	case StatusInterestConfirmed, StatusInterestDeclined,
		StatusOnSiteVisit, StatusInProgressBuild, StatusCompleted:
		return true
	}
	return false
}

// Label maps every status to its operator-facing badge text.
func (s RequestStatus) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In progress"
	case StatusQuoteSent:
		return "Quote sent"
	case StatusInterestConfirmed:
		return "Interest confirmed"
	case StatusInterestDeclined:
		return "Interest declined"
	case StatusOnSiteVisit:
		return "On-site visit"
	case StatusInProgressBuild:
		return "Build in progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}
