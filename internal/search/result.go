package search

import (
	"github.com/ringbook/ringbook/internal/contact"
	"github.com/ringbook/ringbook/internal/identity"
)

// MatchResult is the wire shape every search hit is rendered to, regardless
// of whether it came from the registered-user directory or from someone's
// address book.
type MatchResult struct {
	Name             string  `json:"name"`
	PhoneNumber      string  `json:"phone_number"`
	IsRegisteredUser bool    `json:"is_registered_user"`
	SpamReportCount  int     `json:"spam_report_count"`
	Email            *string `json:"email"`
	ShowEmail        bool    `json:"show_email"`
}

// registeredMatch is a hit on a registered identity. Email disclosure is
// decided per requester by the visibility policy.
type registeredMatch struct {
	user      identity.User
	spamCount int
	showEmail bool
}

func (m registeredMatch) render() MatchResult {
	res := MatchResult{
		Name:             m.user.Name,
		PhoneNumber:      m.user.Phone,
		IsRegisteredUser: true,
		SpamReportCount:  m.spamCount,
		ShowEmail:        m.showEmail,
	}
	if m.showEmail && m.user.Email != "" {
		email := m.user.Email
		res.Email = &email
	}
	return res
}

// contactBookMatch is a crowd-sourced hit harvested from another user's
// address book. The name carries no correctness guarantee and email is never
// disclosed.
type contactBookMatch struct {
	entry     contact.Entry
	spamCount int
}

func (m contactBookMatch) render() MatchResult {
	return MatchResult{
		Name:             m.entry.ContactName,
		PhoneNumber:      m.entry.ContactPhone,
		IsRegisteredUser: false,
		SpamReportCount:  m.spamCount,
	}
}
