package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"adaeze/payTerm/internal/models"
	"adaeze/payTerm/internal/schema"
	"adaeze/payTerm/internal/utils"
)

// BeneficiarySelectorModel is the overlay for picking a saved recipient.
// It only shows beneficiaries for the active category.
type BeneficiarySelectorModel struct {
	category schema.CategoryCode
	all      []models.Beneficiary
	filtered []models.Beneficiary

	searchQuery   string
	selectedIndex int
	visible       bool

	onSelected func(beneficiary *models.Beneficiary) tea.Cmd
	onCancel   func() tea.Cmd
}

func NewBeneficiarySelectorModel() *BeneficiarySelectorModel {
	return &BeneficiarySelectorModel{}
}

func (m *BeneficiarySelectorModel) SetCallbacks(
	onSelected func(beneficiary *models.Beneficiary) tea.Cmd,
	onCancel func() tea.Cmd,
) {
	m.onSelected = onSelected
	m.onCancel = onCancel
}

func (m *BeneficiarySelectorModel) Show(category schema.CategoryCode, list *models.BeneficiaryList) {
	m.category = category
	m.all = nil
	if list != nil {
		m.all = list.ForCategory(category)
	}
	m.searchQuery = ""
	m.selectedIndex = 0
	m.applyFilter()
	m.visible = true
}

func (m *BeneficiarySelectorModel) Hide() {
	m.visible = false
}

func (m *BeneficiarySelectorModel) IsVisible() bool {
	return m.visible
}

func (m *BeneficiarySelectorModel) Update(msg tea.Msg) (*BeneficiarySelectorModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.Hide()
			if m.onCancel != nil {
				return m, m.onCancel()
			}
			return m, nil

		case "enter":
			if m.selectedIndex < len(m.filtered) {
				selected := m.filtered[m.selectedIndex]
				m.Hide()
				if m.onSelected != nil {
					return m, m.onSelected(&selected)
				}
			}
			return m, nil

		case "up", "ctrl+p":
			if m.selectedIndex > 0 {
				m.selectedIndex--
			}

		case "down", "ctrl+n":
			if m.selectedIndex < len(m.filtered)-1 {
				m.selectedIndex++
			}

		case "backspace":
			if len(m.searchQuery) > 0 {
				m.searchQuery = m.searchQuery[:len(m.searchQuery)-1]
				m.applyFilter()
			}

		default:
			if len(msg.String()) == 1 && msg.String() >= " " {
				m.searchQuery += msg.String()
				m.applyFilter()
			}
		}
	}

	return m, nil
}

func (m *BeneficiarySelectorModel) View() string {
	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Blue)).
		Background(lipgloss.Color(utils.Colours.Base)).
		Padding(1).
		Width(50)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true)
	searchStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Width(44)
	itemStyle := lipgloss.NewStyle().Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Beneficiaries — " + categoryLabel(m.category)))
	content.WriteString("\n\n")
	content.WriteString(searchStyle.Render("Search: " + m.searchQuery + "█"))
	content.WriteString("\n\n")

	if len(m.filtered) == 0 {
		content.WriteString(dimStyle.Render("No saved beneficiaries for this category."))
		content.WriteString("\n")
	}

	for i, beneficiary := range m.filtered {
		cursor := " "
		style := itemStyle
		if i == m.selectedIndex {
			cursor = ">"
			style = selectedStyle
		}

		line := fmt.Sprintf("%s %-16s %s", cursor,
			utils.TruncateString(beneficiary.Name, 16), beneficiary.Identifier)
		if beneficiary.UseCount > 0 {
			line += dimStyle.Render(fmt.Sprintf("  (used %d×)", beneficiary.UseCount))
		}
		content.WriteString(style.Render(line))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(dimStyle.Render("↑/↓: navigate • Enter: select • Esc: close"))

	return overlayStyle.Render(content.String())
}

func (m *BeneficiarySelectorModel) applyFilter() {
	m.filtered = m.filtered[:0]
	query := strings.ToLower(m.searchQuery)

	for _, beneficiary := range m.all {
		if query == "" ||
			strings.Contains(strings.ToLower(beneficiary.Name), query) ||
			strings.Contains(beneficiary.Identifier, query) {
			m.filtered = append(m.filtered, beneficiary)
		}
	}

	if m.selectedIndex >= len(m.filtered) {
		m.selectedIndex = 0
	}
}
