package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"adaeze/payTerm/internal/catalog"
	"adaeze/payTerm/internal/models"
	"adaeze/payTerm/internal/payment"
	"adaeze/payTerm/internal/schema"
	"adaeze/payTerm/internal/utils"
)

type FeedbackMessage struct {
	Type     FeedbackType
	Message  string
	Duration time.Duration
	ShowTime time.Time
}

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

// Expired reports whether the message has outlived its display window.
// Timeout ticks carry no identity, so a tick scheduled for an earlier
// message only clears the current one once its own window has passed.
func (f *FeedbackMessage) Expired() bool {
	return time.Since(f.ShowTime) >= f.Duration
}

type FeedbackTimeoutMsg struct{}

func feedbackTimeout(duration time.Duration) tea.Cmd {
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return FeedbackTimeoutMsg{}
	})
}

type CategoriesLoadedMsg struct {
	Categories []catalog.Category
	Error      error
}

type BalanceLoadedMsg struct {
	Balance *payment.WalletBalance
	Error   error
}

// DashboardModel is the landing view: the category sidebar on the left,
// wallet balance and recent purchases on the right.
type DashboardModel struct {
	catalogClient *catalog.Client
	paymentClient *payment.Client

	categories []catalog.Category
	balance    *payment.WalletBalance
	recents    *models.RecentPurchaseManager

	cursor  int
	loading bool
	width   int
	height  int

	feedbackMessage *FeedbackMessage
}

func NewDashboardModel(catalogClient *catalog.Client, paymentClient *payment.Client, recents *models.RecentPurchaseManager) *DashboardModel {
	return &DashboardModel{
		catalogClient: catalogClient,
		paymentClient: paymentClient,
		recents:       recents,
		loading:       true,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCategories(), m.loadBalance())
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.categories)-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.cursor < len(m.categories) {
				return m, NavigateTo(ViewTransactionForm, m.categories[m.cursor])
			}
		case "f":
			return m, NavigateTo(ViewFundWallet, nil)
		case "r":
			m.loading = true
			return m, tea.Batch(m.loadCategories(), m.loadBalance())
		}

	case CategoriesLoadedMsg:
		m.loading = false
		if msg.Error != nil {
			return m, ShowError(msg.Error)
		}
		m.categories = msg.Categories
		if m.cursor >= len(m.categories) {
			m.cursor = 0
		}

	case BalanceLoadedMsg:
		if msg.Error != nil {
			return m, m.showFeedback(FeedbackWarning, "Balance unavailable", 3*time.Second)
		}
		m.balance = msg.Balance

	case FeedbackTimeoutMsg:
		if m.feedbackMessage != nil && m.feedbackMessage.Expired() {
			m.feedbackMessage = nil
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true).
		Padding(1, 0)

	var content strings.Builder
	content.WriteString(titleStyle.Render("payTerm - Bills & Top-ups"))
	content.WriteString("\n\n")

	sidebar := m.renderSidebar()
	main := m.renderMain()

	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", main))
	content.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)
	content.WriteString(helpStyle.Render("↑/↓: navigate • Enter: select • f: fund wallet • r: refresh • q: quit"))

	if m.feedbackMessage != nil {
		content.WriteString("\n\n")
		content.WriteString(renderFeedback(m.feedbackMessage))
	}

	return content.String()
}

func (m DashboardModel) renderSidebar() string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
		Padding(1).
		Width(26)

	itemStyle := lipgloss.NewStyle().Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1)

	var list strings.Builder
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Bold(true)
	list.WriteString(headerStyle.Render("Categories"))
	list.WriteString("\n\n")

	if m.loading {
		list.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Subtext0)).
			Render("Loading..."))
	} else if len(m.categories) == 0 {
		list.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Subtext0)).
			Render("No categories available."))
	}

	for i, category := range m.categories {
		cursor := " "
		style := itemStyle
		if m.cursor == i {
			cursor = ">"
			style = selectedStyle
		}

		label := category.Name
		if category.Icon != "" {
			label = category.Icon + " " + label
		}
		list.WriteString(style.Render(fmt.Sprintf("%s %s", cursor, label)))
		list.WriteString("\n")
	}

	return borderStyle.Render(list.String())
}

func (m DashboardModel) renderMain() string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
		Padding(1).
		Width(48)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Bold(true)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	var main strings.Builder
	main.WriteString(labelStyle.Render("Wallet Balance"))
	main.WriteString("\n")
	if m.balance != nil {
		main.WriteString(valueStyle.Render(utils.FormatNairaValue(m.balance.Amount)))
		main.WriteString("\n")
		main.WriteString(dimStyle.Render("Updated " + utils.FormatTimeAgo(m.balance.UpdatedAt)))
	} else {
		main.WriteString(dimStyle.Render("Unavailable"))
	}
	main.WriteString("\n\n")

	main.WriteString(labelStyle.Render("Recent Purchases"))
	main.WriteString("\n")

	recent := m.recents.Recent(5)
	if len(recent) == 0 {
		main.WriteString(dimStyle.Render("Nothing yet."))
	}
	for _, p := range recent {
		line := utils.PadString(categoryLabel(p.Category), 13, ' ') +
			utils.PadString(p.Identifier, 15, ' ') +
			utils.FormatTimeAgo(p.LastUsed)
		main.WriteString(dimStyle.Render(line))
		main.WriteString("\n")
	}

	return borderStyle.Render(main.String())
}

func (m *DashboardModel) showFeedback(feedbackType FeedbackType, message string, duration time.Duration) tea.Cmd {
	m.feedbackMessage = &FeedbackMessage{
		Type:     feedbackType,
		Message:  message,
		Duration: duration,
		ShowTime: time.Now(),
	}
	return feedbackTimeout(duration)
}

func (m *DashboardModel) loadCategories() tea.Cmd {
	client := m.catalogClient
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		categories, err := client.ListCategories(ctx)
		return CategoriesLoadedMsg{Categories: categories, Error: err}
	}
}

func (m *DashboardModel) loadBalance() tea.Cmd {
	client := m.paymentClient
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		balance, err := client.GetBalance(ctx)
		return BalanceLoadedMsg{Balance: balance, Error: err}
	}
}

func categoryLabel(code schema.CategoryCode) string {
	s := string(code)
	if s == "" {
		return "unknown"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func renderFeedback(feedback *FeedbackMessage) string {
	var color string
	switch feedback.Type {
	case FeedbackSuccess:
		color = utils.Colours.Green
	case FeedbackError:
		color = utils.Colours.Red
	case FeedbackWarning:
		color = utils.Colours.Yellow
	case FeedbackInfo:
		color = utils.Colours.Blue
	default:
		color = utils.Colours.Text
	}

	feedbackStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Bold(true)

	return feedbackStyle.Render(feedback.Message)
}
