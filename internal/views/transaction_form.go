package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"adaeze/payTerm/internal/catalog"
	"adaeze/payTerm/internal/engine"
	"adaeze/payTerm/internal/models"
	"adaeze/payTerm/internal/payment"
	"adaeze/payTerm/internal/schema"
	"adaeze/payTerm/internal/utils"
)

// formRow is one focusable row of the transaction form. Rows are rebuilt
// whenever the active category changes because every category carries its
// own field set.
type formRow int

const (
	rowProvider formRow = iota
	rowProduct
	rowField
	rowAmount
	rowSubmit
)

type formEntry struct {
	row   formRow
	field schema.Field
}

type ProvidersLoadedMsg struct {
	Token     uint64
	Providers []catalog.Provider
	Error     error
}

type ProductsLoadedMsg struct {
	Token    uint64
	Products []catalog.Product
	Error    error
}

type PurchaseSubmittedMsg struct {
	Receipt *payment.PurchaseReceipt
	Error   error
}

// PurchaseCompletedMsg tells the app a purchase went through so it can
// record history and show the receipt.
type PurchaseCompletedMsg struct {
	Receipt      *payment.PurchaseReceipt
	Category     schema.CategoryCode
	Identifier   string
	ProviderName string
	ProductName  string
	Amount       string
}

// TransactionFormModel renders the category-polymorphic purchase form: the
// operator choice, per-category fields, product choice where the category
// has one, amount entry and the live summary panel.
type TransactionFormModel struct {
	controller    *engine.Controller
	selector      *schema.Selector
	catalogClient *catalog.Client
	paymentClient *payment.Client

	entries  []formEntry
	focus    int
	provider int
	product  int
	preset   int

	submitting      bool
	loadingMessage  string
	validation      schema.ValidationResult
	validated       bool
	feedbackMessage *FeedbackMessage

	beneficiaries       *models.BeneficiaryList
	beneficiarySelector *BeneficiarySelectorModel
	spinner             *utils.Spinner

	terminalWidth  int
	terminalHeight int
}

func NewTransactionFormModel(controller *engine.Controller, selector *schema.Selector, catalogClient *catalog.Client, paymentClient *payment.Client, beneficiaries *models.BeneficiaryList) *TransactionFormModel {
	model := &TransactionFormModel{
		controller:    controller,
		selector:      selector,
		catalogClient: catalogClient,
		paymentClient: paymentClient,
		beneficiaries: beneficiaries,
		spinner:       utils.NewSpinner(),
	}

	beneficiarySelector := NewBeneficiarySelectorModel()
	beneficiarySelector.SetCallbacks(model.onBeneficiarySelected, model.onBeneficiaryCancel)
	model.beneficiarySelector = beneficiarySelector

	return model
}

// Activate switches the form to a category and kicks off the provider
// fetch. The returned command carries the fetch token so stale responses
// can be discarded.
func (m *TransactionFormModel) Activate(category catalog.Category) tea.Cmd {
	token := m.controller.SelectCategory(category)
	m.rebuildEntries()
	m.focus = 0
	m.provider = 0
	m.product = 0
	m.preset = 0
	m.validated = false
	m.loadingMessage = "Loading providers"

	return m.fetchProviders(token, category.ID)
}

func (m TransactionFormModel) Init() tea.Cmd {
	return nil
}

func (m TransactionFormModel) Update(msg tea.Msg) (TransactionFormModel, tea.Cmd) {
	var cmds []tea.Cmd

	if m.beneficiarySelector.IsVisible() {
		var cmd tea.Cmd
		m.beneficiarySelector, cmd = m.beneficiarySelector.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			m.controller.SaveDraft()
			return m, NavigateTo(ViewDashboard, nil)

		case "enter":
			cmds = append(cmds, m.handleEnterKey())

		case "up", "shift+tab":
			if m.focus > 0 {
				m.focus--
			}

		case "down", "tab":
			if m.focus < len(m.entries)-1 {
				m.focus++
			}

		case "left":
			cmds = append(cmds, m.cycleChoice(-1))

		case "right":
			cmds = append(cmds, m.cycleChoice(1))

		case "ctrl+k":
			if identifierFieldKey(m.controller.ActiveCode()) != "" {
				m.beneficiarySelector.Show(m.controller.ActiveCode(), m.beneficiaries)
			}

		case "ctrl+a":
			cmds = append(cmds, m.saveBeneficiary())

		case "ctrl+r":
			m.controller.Reset()
			m.validated = false
			cmds = append(cmds, m.showFeedback(FeedbackInfo, "Form cleared", 3*time.Second))

		case "backspace":
			m.handleBackspace()

		default:
			m.handleTextInput(msg.String())
		}

	case ProvidersLoadedMsg:
		if msg.Error != nil {
			m.loadingMessage = ""
			cmds = append(cmds, m.showFeedback(FeedbackError, userMessageFor(msg.Error), 5*time.Second))
			break
		}
		if m.controller.AcceptProviders(msg.Token, msg.Providers) {
			m.loadingMessage = ""
			m.provider = 0
			// Default to the first operator so the form is immediately
			// submittable for single-operator categories.
			providers := m.controller.Providers()
			if len(providers) > 0 {
				token := m.controller.SelectProvider(providers[0])
				if engine.HasProducts(m.controller.ActiveCode()) {
					m.loadingMessage = "Loading products"
					cmds = append(cmds, m.fetchProducts(token))
				}
			}
		}

	case ProductsLoadedMsg:
		if msg.Error != nil {
			m.loadingMessage = ""
			cmds = append(cmds, m.showFeedback(FeedbackError, userMessageFor(msg.Error), 5*time.Second))
			break
		}
		if m.controller.AcceptProducts(msg.Token, msg.Products) {
			m.loadingMessage = ""
			m.product = 0
		}

	case PurchaseSubmittedMsg:
		m.submitting = false
		if msg.Error != nil {
			cmds = append(cmds, m.showFeedback(FeedbackError, userMessageFor(msg.Error), 10*time.Second))
			break
		}

		completed := m.completedPurchase(msg.Receipt)
		m.controller.Reset()
		m.validated = false
		return m, func() tea.Msg { return completed }

	case FeedbackTimeoutMsg:
		if m.feedbackMessage != nil && m.feedbackMessage.Expired() {
			m.feedbackMessage = nil
		}
	}

	return m, tea.Batch(cmds...)
}

func (m TransactionFormModel) View() string {
	containerStyle := lipgloss.NewStyle().
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Blue))

	var content strings.Builder
	content.WriteString(m.renderHeader())
	content.WriteString("\n\n")
	content.WriteString(m.renderRows())
	content.WriteString("\n")
	content.WriteString(m.renderHelpText())

	if m.feedbackMessage != nil {
		content.WriteString("\n\n")
		content.WriteString(renderFeedback(m.feedbackMessage))
	}

	form := containerStyle.Render(content.String())
	summary := m.renderSummary()
	result := lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", summary)

	if m.beneficiarySelector.IsVisible() {
		selectorView := m.beneficiarySelector.View()
		return lipgloss.Place(m.terminalWidth, m.terminalHeight, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, result, selectorView))
	}

	return result
}

func (m TransactionFormModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Bold(true)

	title := "New Purchase"
	if category := m.controller.ActiveCategory(); category != nil {
		title = category.Name
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(title))

	if m.loadingMessage != "" {
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Subtext0))
		content.WriteString("  ")
		content.WriteString(dimStyle.Render(m.spinner.View() + " " + m.loadingMessage))
	}

	return content.String()
}

func (m TransactionFormModel) renderRows() string {
	var content strings.Builder

	for i, entry := range m.entries {
		focused := i == m.focus
		switch entry.row {
		case rowProvider:
			content.WriteString(m.renderProviderRow(focused))
		case rowProduct:
			content.WriteString(m.renderProductRow(focused))
		case rowField:
			content.WriteString(m.renderFieldRow(entry.field, focused))
		case rowAmount:
			content.WriteString(m.renderAmountRow(entry.field, focused))
		case rowSubmit:
			content.WriteString(m.renderSubmitRow(focused))
		}
		content.WriteString("\n")
	}

	return content.String()
}

func (m TransactionFormModel) renderProviderRow(focused bool) string {
	label := m.providerLabel()
	providers := m.controller.Providers()

	value := "—"
	if p := m.controller.ActiveProvider(); p != nil {
		value = p.Name
	} else if !m.controller.ProvidersLoaded() {
		value = "loading..."
	}

	hint := ""
	if focused && len(providers) > 1 {
		hint = fmt.Sprintf(" (%d/%d, ←/→)", m.provider+1, len(providers))
	}

	return m.renderChoiceLine(label, value+hint, focused, m.errorFor(engine.ProviderFieldKey(m.controller.ActiveCode())))
}

func (m TransactionFormModel) renderProductRow(focused bool) string {
	products := m.controller.Products()

	value := "—"
	if p := m.controller.ActiveProduct(); p != nil {
		value = p.Name
		if p.Price > 0 {
			value += " " + utils.FormatNairaValue(p.Price)
		}
		if validity := utils.FormatValidity(p.Validity.Duration, p.Validity.DurationType); validity != "" {
			value += " / " + validity
		}
	} else if m.controller.ActiveProvider() != nil && !m.controller.ProductsLoaded() {
		value = "loading..."
	}

	hint := ""
	if focused && len(products) > 1 {
		hint = fmt.Sprintf(" (%d/%d, ←/→)", m.product+1, len(products))
	}

	key := engine.ProductFieldKey(m.controller.ActiveCode())
	return m.renderChoiceLine(m.fieldLabel(key), value+hint, focused, m.errorFor(key))
}

func (m TransactionFormModel) renderFieldRow(field schema.Field, focused bool) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Bold(true).
		Width(18)

	inputStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Width(30)

	value := m.controller.Field(field.Key)
	if field.Kind == schema.InputChoice {
		display := value
		if display == "" {
			display = "—"
		}
		if focused && len(field.Choices) > 0 {
			display += " (←/→)"
		}
		return m.renderChoiceLine(field.Label, display, focused, m.errorFor(field.Key))
	}

	display := value
	if focused {
		display += "█"
	}

	line := labelStyle.Render(field.Label+":") + " " + inputStyle.Render(display)
	return line + m.renderFieldError(field.Key)
}

func (m TransactionFormModel) renderAmountRow(field schema.Field, focused bool) string {
	if m.controller.Mode() == engine.AmountCustom {
		custom := field
		custom.Label = field.Label + " (custom)"
		return m.renderFieldRow(custom, focused)
	}

	value := m.controller.Field("amount")
	display := "—"
	if value != "" {
		display = utils.FormatNaira(value)
	}
	if focused {
		display += fmt.Sprintf(" (%d/%d, ←/→, c: custom)", m.preset+1, len(engine.AmountPresets))
	}

	return m.renderChoiceLine(field.Label, display, focused, m.errorFor("amount"))
}

func (m TransactionFormModel) renderSubmitRow(focused bool) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Padding(0, 1).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1))

	if focused {
		style = style.
			Foreground(lipgloss.Color(utils.Colours.Green)).
			BorderForeground(lipgloss.Color(utils.Colours.Green)).
			Bold(true)
	}

	label := "Pay"
	if m.submitting {
		label = "Submitting..."
	}
	return style.Render(label)
}

func (m TransactionFormModel) renderChoiceLine(label, value string, focused bool, errText string) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Bold(true).
		Width(18)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1)

	if focused {
		valueStyle = valueStyle.Foreground(lipgloss.Color(utils.Colours.Green))
	}

	line := labelStyle.Render(label+":") + " " + valueStyle.Render(value)
	if errText != "" {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Red))
		line += "  " + errorStyle.Render("✗ "+errText)
	}
	return line
}

func (m TransactionFormModel) renderFieldError(key string) string {
	errText := m.errorFor(key)
	if errText == "" {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Red))
	return "  " + errorStyle.Render("✗ " + errText)
}

func (m TransactionFormModel) renderSummary() string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
		Padding(1).
		Width(34)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Bold(true)
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Width(16)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Green))

	var content strings.Builder
	content.WriteString(headerStyle.Render("Summary"))
	content.WriteString("\n\n")

	rows := engine.Project(m.selector, m.controller.Values(), m.controller.ActiveCode())
	for _, row := range rows {
		content.WriteString(keyStyle.Render(row.Label))
		content.WriteString(valueStyle.Render(utils.TruncateString(row.Value, 16)))
		content.WriteString("\n")
	}

	return borderStyle.Render(content.String())
}

func (m TransactionFormModel) renderHelpText() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true)

	return helpStyle.Render("↑/↓: field • ←/→: choose • Ctrl+K: beneficiaries • Ctrl+A: save recipient • Ctrl+R: clear • Enter: pay • Esc: back")
}

func (m *TransactionFormModel) rebuildEntries() {
	m.entries = m.entries[:0]
	code := m.controller.ActiveCode()

	providerKey := engine.ProviderFieldKey(code)
	productKey := engine.ProductFieldKey(code)

	m.entries = append(m.entries, formEntry{row: rowProvider})
	if productKey != "" {
		m.entries = append(m.entries, formEntry{row: rowProduct})
	}

	for _, field := range m.selector.FieldsFor(code) {
		switch field.Key {
		case providerKey, productKey:
			continue
		case "amount":
			m.entries = append(m.entries, formEntry{row: rowAmount, field: field})
		default:
			m.entries = append(m.entries, formEntry{row: rowField, field: field})
		}
	}

	m.entries = append(m.entries, formEntry{row: rowSubmit})
}

func (m *TransactionFormModel) focusedEntry() (formEntry, bool) {
	if m.focus < 0 || m.focus >= len(m.entries) {
		return formEntry{}, false
	}
	return m.entries[m.focus], true
}

func (m *TransactionFormModel) cycleChoice(direction int) tea.Cmd {
	entry, ok := m.focusedEntry()
	if !ok {
		return nil
	}

	switch entry.row {
	case rowProvider:
		providers := m.controller.Providers()
		if len(providers) == 0 {
			return nil
		}
		m.provider = wrapIndex(m.provider+direction, len(providers))
		token := m.controller.SelectProvider(providers[m.provider])
		m.product = 0
		if engine.HasProducts(m.controller.ActiveCode()) {
			m.loadingMessage = "Loading products"
			return m.fetchProducts(token)
		}

	case rowProduct:
		products := m.controller.Products()
		if len(products) == 0 {
			return nil
		}
		m.product = wrapIndex(m.product+direction, len(products))
		m.controller.SelectProduct(products[m.product])

	case rowAmount:
		if m.controller.Mode() != engine.AmountPreset {
			return nil
		}
		m.preset = wrapIndex(m.preset+direction, len(engine.AmountPresets))
		m.controller.SetAmountMode(engine.AmountPreset, engine.AmountPresets[m.preset])

	case rowField:
		if entry.field.Kind != schema.InputChoice || len(entry.field.Choices) == 0 {
			return nil
		}
		current := 0
		value := m.controller.Field(entry.field.Key)
		for i, choice := range entry.field.Choices {
			if choice == value {
				current = i
				break
			}
		}
		next := wrapIndex(current+direction, len(entry.field.Choices))
		m.controller.SetField(entry.field.Key, entry.field.Choices[next])
	}

	return nil
}

func (m *TransactionFormModel) handleEnterKey() tea.Cmd {
	entry, ok := m.focusedEntry()
	if !ok {
		return nil
	}

	if entry.row != rowSubmit {
		if m.focus < len(m.entries)-1 {
			m.focus++
		}
		return nil
	}

	m.validation = m.controller.Validate()
	m.validated = true
	if !m.validation.IsValid {
		return m.showFeedback(FeedbackWarning, "Fix the highlighted fields", 5*time.Second)
	}

	return m.submitPurchase()
}

func (m *TransactionFormModel) handleBackspace() {
	entry, ok := m.focusedEntry()
	if !ok {
		return
	}

	editable := entry.row == rowField ||
		(entry.row == rowAmount && m.controller.Mode() == engine.AmountCustom)
	if !editable {
		return
	}

	value := m.controller.Field(entry.field.Key)
	if len(value) > 0 {
		m.controller.SetField(entry.field.Key, value[:len(value)-1])
	}
}

func (m *TransactionFormModel) handleTextInput(input string) {
	entry, ok := m.focusedEntry()
	if !ok {
		return
	}

	if entry.row == rowAmount {
		if m.controller.Mode() == engine.AmountPreset {
			if input == "c" {
				m.controller.SetAmountMode(engine.AmountCustom, "")
			}
			return
		}
		if input >= "0" && input <= "9" {
			m.controller.SetField("amount", m.controller.Field("amount")+input)
		}
		return
	}

	if entry.row != rowField || entry.field.Kind == schema.InputChoice {
		return
	}
	if len(input) != 1 || input < " " {
		return
	}

	switch entry.field.Kind {
	case schema.InputPhone, schema.InputNumeric:
		if input < "0" || input > "9" {
			return
		}
	}

	m.controller.SetField(entry.field.Key, m.controller.Field(entry.field.Key)+input)
}

func (m *TransactionFormModel) errorFor(key string) string {
	if !m.validated || key == "" {
		return ""
	}
	if err, ok := m.validation.ErrorFor(key); ok {
		return err.Message
	}
	return ""
}

func (m *TransactionFormModel) providerLabel() string {
	return m.fieldLabel(engine.ProviderFieldKey(m.controller.ActiveCode()))
}

func (m *TransactionFormModel) fieldLabel(key string) string {
	for _, field := range m.selector.FieldsFor(m.controller.ActiveCode()) {
		if field.Key == key {
			return field.Label
		}
	}
	return key
}

func (m *TransactionFormModel) fetchProviders(token uint64, categoryID string) tea.Cmd {
	client := m.catalogClient
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		providers, err := client.ListProviders(ctx, categoryID)
		return ProvidersLoadedMsg{Token: token, Providers: providers, Error: err}
	}
}

func (m *TransactionFormModel) fetchProducts(token uint64) tea.Cmd {
	category := m.controller.ActiveCategory()
	provider := m.controller.ActiveProvider()
	if category == nil || provider == nil {
		return nil
	}

	client := m.catalogClient
	categoryID := category.ID
	providerID := provider.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		products, err := client.ListProducts(ctx, categoryID, providerID)
		return ProductsLoadedMsg{Token: token, Products: products, Error: err}
	}
}

func (m *TransactionFormModel) submitPurchase() tea.Cmd {
	category := m.controller.ActiveCategory()
	if category == nil {
		return nil
	}

	request := payment.PurchaseRequest{
		Reference:  uuid.NewString(),
		CategoryID: category.ID,
		Amount:     m.controller.Field("amount"),
		Fields:     engine.ProjectValues(m.selector, m.controller.Values(), m.controller.ActiveCode()),
	}
	if provider := m.controller.ActiveProvider(); provider != nil {
		request.ProviderID = provider.ID
	}
	if product := m.controller.ActiveProduct(); product != nil {
		request.ProductID = product.ID
		if request.Amount == "" {
			request.Amount = fmt.Sprintf("%.2f", product.Price)
		}
	}

	m.submitting = true
	client := m.paymentClient
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		receipt, err := client.SubmitPurchase(ctx, request)
		return PurchaseSubmittedMsg{Receipt: receipt, Error: err}
	}
}

func (m *TransactionFormModel) completedPurchase(receipt *payment.PurchaseReceipt) PurchaseCompletedMsg {
	completed := PurchaseCompletedMsg{
		Receipt:    receipt,
		Category:   m.controller.ActiveCode(),
		Identifier: m.controller.Field(identifierFieldKey(m.controller.ActiveCode())),
		Amount:     m.controller.Field("amount"),
	}
	if provider := m.controller.ActiveProvider(); provider != nil {
		completed.ProviderName = provider.Name
	}
	if product := m.controller.ActiveProduct(); product != nil {
		completed.ProductName = product.Name
	}
	return completed
}

// saveBeneficiary stores the identifier currently in the form as a saved
// recipient, named after the operator when one is selected.
func (m *TransactionFormModel) saveBeneficiary() tea.Cmd {
	code := m.controller.ActiveCode()
	key := identifierFieldKey(code)
	if key == "" {
		return nil
	}

	identifier := m.controller.Field(key)
	if identifier == "" {
		return m.showFeedback(FeedbackWarning, "Nothing to save yet", 3*time.Second)
	}

	name := identifier
	if provider := m.controller.ActiveProvider(); provider != nil {
		name = fmt.Sprintf("%s %s", provider.Name, identifier)
	}

	m.beneficiaries.Add(models.NewBeneficiary(name, identifier, code))
	return m.showFeedback(FeedbackSuccess, "Beneficiary saved", 3*time.Second)
}

// Beneficiary selector callbacks
func (m *TransactionFormModel) onBeneficiarySelected(beneficiary *models.Beneficiary) tea.Cmd {
	key := identifierFieldKey(m.controller.ActiveCode())
	if key != "" {
		m.controller.SetField(key, beneficiary.Identifier)
	}
	return m.showFeedback(FeedbackSuccess, fmt.Sprintf("Using %s", beneficiary.Name), 3*time.Second)
}

func (m *TransactionFormModel) onBeneficiaryCancel() tea.Cmd {
	return nil
}

func (m *TransactionFormModel) showFeedback(feedbackType FeedbackType, message string, duration time.Duration) tea.Cmd {
	m.feedbackMessage = &FeedbackMessage{
		Type:     feedbackType,
		Message:  message,
		Duration: duration,
		ShowTime: time.Now(),
	}
	return feedbackTimeout(duration)
}

// identifierFieldKey maps a category to the field naming the recipient of
// the purchase, which is what beneficiaries store.
func identifierFieldKey(code schema.CategoryCode) string {
	switch code {
	case schema.CategoryAirtime, schema.CategoryData:
		return "phone"
	case schema.CategoryCable:
		return "smartCardNumber"
	case schema.CategoryElectricity:
		return "meterNumber"
	case schema.CategoryBetting:
		return "userId"
	case schema.CategoryInternet:
		return "accountNumber"
	case schema.CategoryOthers:
		return "referenceId"
	default:
		return ""
	}
}

func wrapIndex(i, length int) int {
	if length == 0 {
		return 0
	}
	return ((i % length) + length) % length
}

func userMessageFor(err error) string {
	if catalogErr, ok := err.(*catalog.CatalogError); ok {
		return catalogErr.UserMessage()
	}
	if paymentErr, ok := err.(*payment.PaymentError); ok {
		return paymentErr.UserMessage()
	}
	return err.Error()
}
