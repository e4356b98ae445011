package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"adaeze/payTerm/internal/storage"
	"adaeze/payTerm/internal/utils"
)

type unlockMode int

const (
	modeUnlock unlockMode = iota
	modeEnroll
)

// ProfileUnlockedMsg carries the API token once the sealed profile has been
// opened, or once a fresh profile has been sealed.
type ProfileUnlockedMsg struct {
	Token string
}

// ProfileSkippedMsg means the user declined the passphrase flow; the session
// continues with whatever token the config supplied.
type ProfileSkippedMsg struct{}

type profileOpenedMsg struct {
	Profile *storage.Profile
	Error   error
}

type profileSealedMsg struct {
	Error error
}

// UnlockModel gates the session behind a passphrase. In unlock mode it opens
// the sealed profile on disk; in enroll mode it seals the config-supplied
// token under a new passphrase so later sessions need no plaintext config.
type UnlockModel struct {
	storage *storage.Storage
	mode    unlockMode

	// Token and environment to seal when enrolling.
	apiToken    string
	environment string

	passphrase  string
	attempts    int
	maxAttempts int

	loading   bool
	errorText string
}

func NewUnlockModel(store *storage.Storage) *UnlockModel {
	return &UnlockModel{
		storage:     store,
		mode:        modeUnlock,
		maxAttempts: 3,
	}
}

func NewEnrollModel(store *storage.Storage, apiToken, environment string) *UnlockModel {
	return &UnlockModel{
		storage:     store,
		mode:        modeEnroll,
		apiToken:    apiToken,
		environment: environment,
		maxAttempts: 3,
	}
}

func (m UnlockModel) Init() tea.Cmd {
	return nil
}

func (m UnlockModel) Update(msg tea.Msg) (UnlockModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		return m.handleKey(msg)

	case profileOpenedMsg:
		m.loading = false
		if msg.Error != nil {
			m.attempts++
			m.passphrase = ""
			if m.attempts >= m.maxAttempts {
				m.errorText = "Too many failed attempts. Restart to try again."
				return m, nil
			}
			m.errorText = fmt.Sprintf("Wrong passphrase (%d/%d attempts)", m.attempts, m.maxAttempts)
			return m, nil
		}
		return m, func() tea.Msg {
			return ProfileUnlockedMsg{Token: msg.Profile.APIToken}
		}

	case profileSealedMsg:
		m.loading = false
		if msg.Error != nil {
			m.errorText = "Could not save the profile. Continuing without it."
			m.passphrase = ""
			return m, nil
		}
		token := m.apiToken
		return m, func() tea.Msg {
			return ProfileUnlockedMsg{Token: token}
		}
	}

	return m, nil
}

func (m UnlockModel) handleKey(msg tea.KeyMsg) (UnlockModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return ProfileSkippedMsg{} }

	case "enter":
		if len(m.passphrase) == 0 {
			m.errorText = "Passphrase cannot be empty"
			return m, nil
		}
		if m.attempts >= m.maxAttempts {
			return m, nil
		}

		m.loading = true
		m.errorText = ""
		if m.mode == modeEnroll {
			return m, m.sealProfile()
		}
		return m, m.openProfile()

	case "backspace":
		if len(m.passphrase) > 0 {
			m.passphrase = m.passphrase[:len(m.passphrase)-1]
		}

	case "ctrl+u":
		m.passphrase = ""

	default:
		if len(msg.String()) == 1 && msg.String() != " " {
			m.passphrase += msg.String()
		}
	}

	return m, nil
}

func (m UnlockModel) View() string {
	boxStyle := lipgloss.NewStyle().
		Width(56).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Blue)).
		Padding(1)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	inputStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Width(40)

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Red)).
		Bold(true)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	title := "Unlock Profile"
	description := "Enter your passphrase to unlock the saved API credentials."
	if m.mode == modeEnroll {
		title = "Protect API Token"
		description = "Choose a passphrase to store your API token encrypted on disk."
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(title))
	content.WriteString("\n\n")
	content.WriteString(descStyle.Render(description))
	content.WriteString("\n\n")

	if m.loading {
		content.WriteString(inputStyle.Render("Working..."))
	} else {
		content.WriteString(inputStyle.Render("Passphrase: " + strings.Repeat("*", len(m.passphrase))))
	}
	content.WriteString("\n\n")

	if m.errorText != "" {
		content.WriteString(errorStyle.Render(m.errorText))
		content.WriteString("\n\n")
	}

	if !m.loading {
		content.WriteString(helpStyle.Render("Enter: confirm • Esc: skip • Ctrl+U: clear"))
	}

	return boxStyle.Render(content.String())
}

func (m *UnlockModel) openProfile() tea.Cmd {
	store := m.storage
	passphrase := m.passphrase
	return func() tea.Msg {
		profile, err := store.LoadProfile(passphrase)
		return profileOpenedMsg{Profile: profile, Error: err}
	}
}

func (m *UnlockModel) sealProfile() tea.Cmd {
	store := m.storage
	profile := &storage.Profile{
		Name:        "default",
		APIToken:    m.apiToken,
		Environment: m.environment,
	}
	passphrase := m.passphrase
	return func() tea.Msg {
		return profileSealedMsg{Error: store.SaveProfile(profile, passphrase)}
	}
}
