package license

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dlyog/dl-creator-cli/internal/domain"
)

type Page int

const (
	PageHome Page = iota
	PageDetails
	PageCreate
	PageWhoami
	PageTranscript
)

const notSpecified = "Not specified"

// View is everything a page needs to draw itself.
type View struct {
	Page        Page
	Session     domain.Session
	Status      domain.LicenseStatus
	Notice      string
	Transcript  []domain.Message
	Suggestions []domain.Suggestion
	Created     bool
}

func renderView(view View, s styles) string {
	switch view.Page {
	case PageDetails:
		return renderDetails(view, s)
	case PageCreate:
		return renderCreate(view, s)
	case PageWhoami:
		return renderWhoami(view, s)
	case PageTranscript:
		return RenderTranscript(view.Transcript, view.Suggestions)
	default:
		return renderHome(view, s)
	}
}

func renderHome(view View, s styles) string {
	lines := []string{
		s.title.Render("Driving License Portal"),
		s.header.Render("Create and manage your driving license with ease."),
	}

	if !view.Session.Authenticated() {
		lines = append(lines,
			s.section.Render(s.action.Render("Get Started")+s.header.Render("  dlc register")),
			s.action.Render("Sign In")+s.header.Render("      dlc login"),
		)
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(s.title.Render("Welcome back, "+displayName(view.Session)+"!")))

	switch {
	case view.Status.State == domain.LicenseUnknown:
		lines = append(lines, s.empty.Render("Checking license status..."))
	case view.Status.Present():
		lines = append(lines,
			s.action.Render("View License")+s.header.Render("  dlc license show"),
			s.success.Render("✓ License Created"),
		)
	default:
		lines = append(lines, s.action.Render("Create License")+s.header.Render("  dlc license create"))
	}
	if view.Status.Degraded {
		lines = append(lines, s.warning.Render("License service unavailable; showing no license."))
	}

	lines = append(lines, s.section.Render(s.header.Render("Need help? dlc chat")))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderDetails(view View, s styles) string {
	if !view.Status.Present() || view.Status.Record == nil {
		notice := view.Notice
		if notice == "" {
			notice = "No license found. Please create a license first."
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("No License Found"),
			s.warning.Render(notice),
			s.header.Render("dlc license create"),
		)
	}

	return renderRecordCard(*view.Status.Record, s)
}

func renderCreate(view View, s styles) string {
	var lines []string
	switch {
	case view.Created:
		lines = append(lines, s.success.Render("License created successfully!"))
	case view.Status.Present():
		lines = append(lines, s.warning.Render(view.Notice))
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Create Driving License"),
			s.header.Render("dlc license create --first-name ... --last-name ... --vehicle-type Car --vehicle-make ... --address ..."),
		)
	}

	if view.Status.Record != nil {
		lines = append(lines, s.section.Render(renderRecordCard(*view.Status.Record, s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecordCard(record domain.LicenseRecord, s styles) string {
	rows := [][2]string{
		{"Full Name:", record.HolderName()},
		{"License Number:", orNotSpecified(record.LicenseNumber)},
		{"Vehicle Type:", orNotSpecified(record.VehicleType)},
		{"Vehicle Make:", orNotSpecified(record.VehicleMake)},
		{"Address:", orNotSpecified(record.Address)},
		{"Status:", orNotSpecified(record.Status)},
		{"Issue Date:", formatDate(record.IssueDate)},
		{"Expiry Date:", formatDate(record.ExpiryDate)},
	}

	lines := []string{s.title.Render("Driving License")}
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, s.fieldKey.Render(row[0]), s.fieldVal.Render(row[1])))
	}

	return s.card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderWhoami(view View, s styles) string {
	if !view.Session.Authenticated() {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Not logged in"),
			s.header.Render(identityLine(view.Session)),
		)
	}

	lines := []string{s.title.Render(displayName(view.Session))}
	if view.Session.Profile != nil && view.Session.Profile.Email != "" {
		lines = append(lines, s.header.Render(view.Session.Profile.Email))
	}
	lines = append(lines, s.header.Render(identityLine(view.Session)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderTranscript draws a chat transcript followed by the suggestion chips.
// It needs no bubbletea program and is shared with the interactive chat.
func RenderTranscript(messages []domain.Message, suggestions []domain.Suggestion) string {
	s := newStyles()

	lines := make([]string, 0, len(messages)+len(suggestions)+1)
	for _, message := range messages {
		author := s.assistant.Render("assistant")
		if message.Author == domain.AuthorUser {
			author = s.user.Render("you")
		}
		lines = append(lines, fmt.Sprintf("%s %s", author, message.Text))
	}

	if len(suggestions) > 0 {
		chips := make([]string, 0, len(suggestions))
		for i, suggestion := range suggestions {
			chips = append(chips, s.chip.Render(fmt.Sprintf("[%d] %s", i+1, suggestion.Label)))
		}
		lines = append(lines, s.section.Render(strings.Join(chips, "  ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func displayName(session domain.Session) string {
	if session.Profile != nil && session.Profile.DisplayName != "" {
		return session.Profile.DisplayName
	}
	return "driver"
}

func identityLine(session domain.Session) string {
	if session.ConversationIdentity == "" {
		return "conversation: none"
	}
	return "conversation: " + session.ConversationIdentity
}

func orNotSpecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return notSpecified
	}
	return value
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return notSpecified
	}
	return value.Format("2006-01-02")
}
