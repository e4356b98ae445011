package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"adaeze/payTerm/internal/funding"
	"adaeze/payTerm/internal/payment"
	"adaeze/payTerm/internal/utils"
)

type progressTickMsg struct {
	Attempt int
}

type pollTickMsg struct {
	Reference string
}

type dismissTickMsg struct {
	Attempt int
}

type fundingInitializedMsg struct {
	Reference string
	Handle    *payment.FundingHandle
	Error     error
}

type verifyResultMsg struct {
	Reference string
	Result    *payment.VerificationResult
	Error     error
}

// FundWalletModel drives a wallet top-up: amount and method entry, the
// confirmation dialog, then the verification screen whose progress bar is
// cosmetic and joins the real result only at the terminal transition.
type FundWalletModel struct {
	machine       *funding.Machine
	paymentClient *payment.Client
	progressBar   progress.Model

	amount    string
	note      string
	method    int
	noteFocus bool

	feedbackMessage *FeedbackMessage
	terminalWidth   int
	terminalHeight  int
}

func NewFundWalletModel(paymentClient *payment.Client) *FundWalletModel {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	return &FundWalletModel{
		machine:       funding.NewMachine(),
		paymentClient: paymentClient,
		progressBar:   bar,
	}
}

func (m FundWalletModel) Init() tea.Cmd {
	return nil
}

func (m FundWalletModel) Update(msg tea.Msg) (FundWalletModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case progressTickMsg:
		// Ticks from an abandoned cycle die here.
		if msg.Attempt != m.machine.Attempt() {
			return m, nil
		}
		m.machine.Tick()
		if m.machine.ReadyToAutoDismiss() {
			return m, m.dismissTick()
		}
		if m.machine.State() == funding.StateVerifying || m.machine.IsTerminal() {
			return m, m.progressTick()
		}

	case pollTickMsg:
		if msg.Reference != m.machine.Reference() || m.machine.State() != funding.StateVerifying {
			return m, nil
		}
		return m, m.verifyFunding(msg.Reference)

	case dismissTickMsg:
		if msg.Attempt != m.machine.Attempt() || !m.machine.ReadyToAutoDismiss() {
			return m, nil
		}
		m.machine.Dismiss()
		m.amount = ""
		m.note = ""
		return m, NavigateTo(ViewDashboard, nil)

	case fundingInitializedMsg:
		if msg.Reference != m.machine.Reference() {
			return m, nil
		}
		if msg.Error != nil {
			m.machine.Complete(false, userMessageFor(msg.Error))
			return m, nil
		}
		return m, m.pollTick(msg.Reference)

	case verifyResultMsg:
		if msg.Reference != m.machine.Reference() || m.machine.State() != funding.StateVerifying {
			return m, nil
		}
		if msg.Error != nil {
			m.machine.Complete(false, userMessageFor(msg.Error))
			return m, nil
		}

		switch msg.Result.Status {
		case payment.VerificationSuccess:
			m.machine.Complete(true, "Wallet funded successfully")
		case payment.VerificationFailed:
			reason := msg.Result.Details
			if reason == "" {
				reason = "Payment was not completed"
			}
			m.machine.Complete(false, reason)
		default:
			return m, m.pollTick(msg.Reference)
		}

	case FeedbackTimeoutMsg:
		if m.feedbackMessage != nil && m.feedbackMessage.Expired() {
			m.feedbackMessage = nil
		}
	}

	return m, nil
}

func (m FundWalletModel) handleKey(msg tea.KeyMsg) (FundWalletModel, tea.Cmd) {
	switch m.machine.State() {
	case funding.StateIdle:
		return m.handleIdleKey(msg)

	case funding.StateConfirming:
		switch msg.String() {
		case "enter", "y":
			reference, err := m.machine.Confirm()
			if err != nil {
				return m, nil
			}
			return m, tea.Batch(
				m.initializeFunding(reference),
				m.progressTick(),
			)
		case "esc", "n":
			m.machine.Cancel()
			m.amount = ""
			m.note = ""
		}

	case funding.StateVerifying:
		// Verification cannot be keyed past; the dialog closes on its own.

	case funding.StateError:
		switch msg.String() {
		case "r":
			reference, err := m.machine.Retry()
			if err != nil {
				return m, nil
			}
			return m, tea.Batch(
				m.initializeFunding(reference),
				m.progressTick(),
			)
		case "esc", "enter":
			m.machine.Dismiss()
			m.amount = ""
			m.note = ""
			return m, NavigateTo(ViewDashboard, nil)
		}

	case funding.StateSuccess:
		switch msg.String() {
		case "esc", "enter":
			m.machine.Dismiss()
			m.amount = ""
			m.note = ""
			return m, NavigateTo(ViewDashboard, nil)
		}
	}

	return m, nil
}

func (m FundWalletModel) handleIdleKey(msg tea.KeyMsg) (FundWalletModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, NavigateTo(ViewDashboard, nil)

	case "enter":
		if m.amount == "" {
			return m, m.showFeedback(FeedbackWarning, "Enter an amount first", 3*time.Second)
		}
		method := funding.PaymentMethods[m.method]
		if err := m.machine.BeginConfirm(m.amount, method, m.note); err != nil {
			return m, nil
		}

	case "tab":
		m.noteFocus = !m.noteFocus

	case "left":
		if !m.noteFocus {
			m.method = wrapIndex(m.method-1, len(funding.PaymentMethods))
		}

	case "right":
		if !m.noteFocus {
			m.method = wrapIndex(m.method+1, len(funding.PaymentMethods))
		}

	case "backspace":
		if m.noteFocus {
			if len(m.note) > 0 {
				m.note = m.note[:len(m.note)-1]
			}
		} else if len(m.amount) > 0 {
			m.amount = m.amount[:len(m.amount)-1]
		}

	default:
		input := msg.String()
		if len(input) != 1 || input < " " {
			return m, nil
		}
		if m.noteFocus {
			if len(m.note) < 100 {
				m.note += input
			}
		} else if input >= "0" && input <= "9" {
			m.amount += input
		}
	}

	return m, nil
}

func (m FundWalletModel) View() string {
	containerStyle := lipgloss.NewStyle().
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Blue)).
		Width(56)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true)

	stepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Fund Wallet"))
	content.WriteString("\n")
	content.WriteString(stepStyle.Render(utils.FormatStepIndicator(m.currentStep(), 3, fundingSteps)))
	content.WriteString("\n\n")

	switch m.machine.State() {
	case funding.StateIdle:
		content.WriteString(m.renderIdle())
	case funding.StateConfirming:
		content.WriteString(m.renderConfirming())
	case funding.StateVerifying:
		content.WriteString(m.renderVerifying())
	case funding.StateSuccess, funding.StateError:
		content.WriteString(m.renderTerminal())
	}

	if m.feedbackMessage != nil {
		content.WriteString("\n\n")
		content.WriteString(renderFeedback(m.feedbackMessage))
	}

	return containerStyle.Render(content.String())
}

var fundingSteps = []string{"Amount", "Confirm", "Verify"}

func (m FundWalletModel) currentStep() int {
	switch m.machine.State() {
	case funding.StateConfirming:
		return 1
	case funding.StateVerifying:
		return 2
	case funding.StateSuccess, funding.StateError:
		return 3
	default:
		return 0
	}
}

func (m FundWalletModel) renderIdle() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Bold(true)
	inputStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Width(24)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	amountDisplay := m.amount
	if !m.noteFocus {
		amountDisplay += "█"
	}
	noteDisplay := m.note
	if m.noteFocus {
		noteDisplay += "█"
	}

	var content strings.Builder
	content.WriteString(labelStyle.Render("Amount (₦):"))
	content.WriteString("\n")
	content.WriteString(inputStyle.Render(amountDisplay))
	content.WriteString("\n\n")

	content.WriteString(labelStyle.Render("Payment Method:"))
	content.WriteString("\n")
	content.WriteString(m.renderMethods())
	content.WriteString("\n\n")

	content.WriteString(labelStyle.Render("Note (optional):"))
	content.WriteString("\n")
	content.WriteString(inputStyle.Render(noteDisplay))
	content.WriteString("\n\n")

	content.WriteString(dimStyle.Render("←/→: method • Tab: note • Enter: continue • Esc: back"))
	return content.String()
}

func (m FundWalletModel) renderMethods() string {
	optionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Padding(0, 1).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green)).
		Padding(0, 1).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Green)).
		Bold(true)

	var options []string
	for i, method := range funding.PaymentMethods {
		style := optionStyle
		if i == m.method {
			style = selectedStyle
		}
		options = append(options, style.Render(methodLabel(method)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, options...)
}

func (m FundWalletModel) renderConfirming() string {
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Yellow)).
		Padding(1)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var details strings.Builder
	details.WriteString(fmt.Sprintf("Amount:  %s\n", utils.FormatNaira(m.machine.Amount())))
	details.WriteString(fmt.Sprintf("Method:  %s\n", methodLabel(m.machine.Method())))
	if m.machine.Note() != "" {
		details.WriteString(fmt.Sprintf("Note:    %s\n", m.machine.Note()))
	}

	var content strings.Builder
	content.WriteString("Confirm this top-up?")
	content.WriteString("\n\n")
	content.WriteString(cardStyle.Render(details.String()))
	content.WriteString("\n\n")
	content.WriteString(dimStyle.Render("Enter/y: confirm • Esc/n: cancel"))
	return content.String()
}

func (m FundWalletModel) renderVerifying() string {
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0))

	var content strings.Builder
	content.WriteString("Verifying payment of " + utils.FormatNaira(m.machine.Amount()))
	content.WriteString("\n\n")
	content.WriteString(m.progressBar.ViewAs(m.machine.Progress()))
	content.WriteString("\n\n")
	content.WriteString(dimStyle.Render("Reference: " + utils.FormatReference(m.machine.Reference())))
	if m.machine.Attempt() > 1 {
		content.WriteString("\n")
		content.WriteString(dimStyle.Render(fmt.Sprintf("Attempt %d", m.machine.Attempt())))
	}
	return content.String()
}

func (m FundWalletModel) renderTerminal() string {
	success := m.machine.State() == funding.StateSuccess

	color := utils.Colours.Green
	icon := "✓"
	if !success {
		color = utils.Colours.Red
		icon = "✗"
	}

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	var content strings.Builder
	content.WriteString(statusStyle.Render(icon + " " + m.machine.Message()))
	content.WriteString("\n\n")
	content.WriteString(m.progressBar.ViewAs(m.machine.Progress()))
	content.WriteString("\n\n")

	if success {
		content.WriteString(dimStyle.Render("Closing shortly • Enter: close now"))
	} else {
		content.WriteString(dimStyle.Render("r: retry • Enter/Esc: close"))
	}
	return content.String()
}

func (m *FundWalletModel) showFeedback(feedbackType FeedbackType, message string, duration time.Duration) tea.Cmd {
	m.feedbackMessage = &FeedbackMessage{
		Type:     feedbackType,
		Message:  message,
		Duration: duration,
		ShowTime: time.Now(),
	}
	return feedbackTimeout(duration)
}

func (m *FundWalletModel) progressTick() tea.Cmd {
	attempt := m.machine.Attempt()
	return tea.Tick(funding.ProgressInterval, func(time.Time) tea.Msg {
		return progressTickMsg{Attempt: attempt}
	})
}

func (m *FundWalletModel) pollTick(reference string) tea.Cmd {
	return tea.Tick(funding.PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{Reference: reference}
	})
}

func (m *FundWalletModel) dismissTick() tea.Cmd {
	attempt := m.machine.Attempt()
	return tea.Tick(funding.DismissDelay, func(time.Time) tea.Msg {
		return dismissTickMsg{Attempt: attempt}
	})
}

func (m *FundWalletModel) initializeFunding(reference string) tea.Cmd {
	client := m.paymentClient
	amount := m.machine.Amount()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		handle, err := client.InitializeFunding(ctx, amount, reference)
		return fundingInitializedMsg{Reference: reference, Handle: handle, Error: err}
	}
}

func (m *FundWalletModel) verifyFunding(reference string) tea.Cmd {
	client := m.paymentClient
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := client.VerifyFunding(ctx, reference)
		return verifyResultMsg{Reference: reference, Result: result, Error: err}
	}
}

func methodLabel(method funding.PaymentMethod) string {
	switch method {
	case funding.MethodCard:
		return "Card"
	case funding.MethodTransfer:
		return "Bank Transfer"
	case funding.MethodUSSD:
		return "USSD"
	default:
		return string(method)
	}
}
