package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"adaeze/payTerm/internal/utils"
)

// ReceiptModel shows the outcome of a submitted purchase.
type ReceiptModel struct {
	purchase PurchaseCompletedMsg
}

func NewReceiptModel(purchase PurchaseCompletedMsg) *ReceiptModel {
	return &ReceiptModel{purchase: purchase}
}

func (m ReceiptModel) Init() tea.Cmd {
	return nil
}

func (m ReceiptModel) Update(msg tea.Msg) (ReceiptModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return m, NavigateTo(ViewDashboard, nil)
		}
	}
	return m, nil
}

func (m ReceiptModel) View() string {
	containerStyle := lipgloss.NewStyle().
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Green)).
		Width(50)

	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Bold(true)
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Width(12)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var content strings.Builder
	content.WriteString(successStyle.Render("✓ Purchase Submitted"))
	content.WriteString("\n\n")

	writeRow := func(key, value string) {
		if value == "" {
			return
		}
		content.WriteString(keyStyle.Render(key))
		content.WriteString(valueStyle.Render(value))
		content.WriteString("\n")
	}

	writeRow("Category", categoryLabel(m.purchase.Category))
	writeRow("Provider", m.purchase.ProviderName)
	writeRow("Product", m.purchase.ProductName)
	writeRow("Recipient", m.purchase.Identifier)
	if m.purchase.Amount != "" {
		writeRow("Amount", utils.FormatNaira(m.purchase.Amount))
	}
	if m.purchase.Receipt != nil {
		writeRow("Status", m.purchase.Receipt.Status)
		writeRow("Reference", utils.FormatReference(m.purchase.Receipt.Reference))
	}

	content.WriteString("\n")
	content.WriteString(dimStyle.Render("Enter: back to dashboard"))

	return containerStyle.Render(content.String())
}
