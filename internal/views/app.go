package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"adaeze/payTerm/internal/catalog"
	"adaeze/payTerm/internal/config"
	"adaeze/payTerm/internal/drafts"
	"adaeze/payTerm/internal/engine"
	"adaeze/payTerm/internal/models"
	"adaeze/payTerm/internal/payment"
	"adaeze/payTerm/internal/schema"
	"adaeze/payTerm/internal/storage"
	"adaeze/payTerm/internal/utils"
)

type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewTransactionForm
	ViewFundWallet
	ViewReceipt
	ViewUnlock
)

type AppModel struct {
	state  ViewState
	width  int
	height int

	storage       *storage.Storage
	catalogClient *catalog.Client
	paymentClient *payment.Client
	logger        *zap.Logger

	draftStore    *drafts.Store
	beneficiaries *models.BeneficiaryList
	recents       *models.RecentPurchaseManager

	dashboard       *DashboardModel
	transactionForm *TransactionFormModel
	fundWallet      *FundWalletModel
	receipt         *ReceiptModel
	unlock          *UnlockModel

	err error
}

type NavigateMsg struct {
	State ViewState
	Data  interface{}
}

type ErrorMsg struct {
	Err error
}

func NewAppModel(cfg *config.AppConfig, logger *zap.Logger) (*AppModel, error) {
	store, err := storage.NewStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	catalogClient, err := catalog.NewClient(cfg.ToCatalogConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog client: %w", err)
	}

	paymentClient, err := payment.NewClient(cfg.ToPaymentConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment client: %w", err)
	}

	selector, err := schema.NewSelector()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize field selector: %w", err)
	}

	draftStore := drafts.NewStore()
	if persisted, err := store.LoadDrafts(); err == nil {
		draftStore.Import(persisted)
	} else {
		logger.Warn("failed to load drafts", zap.Error(err))
	}

	beneficiaries, err := store.LoadBeneficiaries()
	if err != nil {
		logger.Warn("failed to load beneficiaries", zap.Error(err))
		beneficiaries = &models.BeneficiaryList{}
	}

	recents := models.NewRecentPurchaseManager(25)
	if persisted, err := store.LoadRecentPurchases(); err == nil {
		recents.Import(persisted)
	} else {
		logger.Warn("failed to load recent purchases", zap.Error(err))
	}

	controller := engine.NewController(selector, draftStore)

	app := &AppModel{
		state:         ViewDashboard,
		storage:       store,
		catalogClient: catalogClient,
		paymentClient: paymentClient,
		logger:        logger,
		draftStore:    draftStore,
		beneficiaries: beneficiaries,
		recents:       recents,
	}

	app.dashboard = NewDashboardModel(catalogClient, paymentClient, recents)
	app.transactionForm = NewTransactionFormModel(controller, selector, catalogClient, paymentClient, beneficiaries)
	app.fundWallet = NewFundWalletModel(paymentClient)

	// A sealed profile on disk takes precedence over whatever token the
	// plaintext config carries. A config token with no profile yet offers
	// enrollment so the next session can drop the plaintext copy.
	switch {
	case store.HasProfile():
		app.state = ViewUnlock
		app.unlock = NewUnlockModel(store)
	case cfg.APIToken != "":
		app.state = ViewUnlock
		app.unlock = NewEnrollModel(store, cfg.APIToken, cfg.Environment)
	}

	return app, nil
}

func (m AppModel) Init() tea.Cmd {
	if m.state == ViewUnlock {
		return nil
	}
	return m.dashboard.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.shutdown()
			return m, tea.Quit
		case "q":
			if m.state == ViewDashboard {
				m.shutdown()
				return m, tea.Quit
			}
		}

	case NavigateMsg:
		return m.navigateTo(msg.State, msg.Data)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case PurchaseCompletedMsg:
		m.recordPurchase(msg)
		m.receipt = NewReceiptModel(msg)
		m.state = ViewReceipt
		m.err = nil
		return m, nil

	case ProfileUnlockedMsg:
		m.catalogClient.SetAPIToken(msg.Token)
		m.paymentClient.SetAPIToken(msg.Token)
		m.state = ViewDashboard
		return m, m.dashboard.Init()

	case ProfileSkippedMsg:
		m.state = ViewDashboard
		return m, m.dashboard.Init()
	}

	switch m.state {
	case ViewDashboard:
		if m.dashboard != nil {
			*m.dashboard, cmd = m.dashboard.Update(msg)
		}
	case ViewTransactionForm:
		if m.transactionForm != nil {
			*m.transactionForm, cmd = m.transactionForm.Update(msg)
		}
	case ViewFundWallet:
		if m.fundWallet != nil {
			*m.fundWallet, cmd = m.fundWallet.Update(msg)
		}
	case ViewReceipt:
		if m.receipt != nil {
			*m.receipt, cmd = m.receipt.Update(msg)
		}
	case ViewUnlock:
		if m.unlock != nil {
			*m.unlock, cmd = m.unlock.Update(msg)
		}
	}

	return m, cmd
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string

	switch m.state {
	case ViewDashboard:
		if m.dashboard != nil {
			content = m.dashboard.View()
		}
	case ViewTransactionForm:
		if m.transactionForm != nil {
			content = m.transactionForm.View()
		}
	case ViewFundWallet:
		if m.fundWallet != nil {
			content = m.fundWallet.View()
		}
	case ViewReceipt:
		if m.receipt != nil {
			content = m.receipt.View()
		}
	case ViewUnlock:
		if m.unlock != nil {
			content = m.unlock.View()
		}
	default:
		content = "Unknown view"
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red)).
			Bold(true).
			Padding(1)
		content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %s", m.err.Error()))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m AppModel) navigateTo(state ViewState, data interface{}) (tea.Model, tea.Cmd) {
	m.state = state
	m.err = nil

	switch state {
	case ViewDashboard:
		m.persist()
		// Funding or a purchase may have moved the balance.
		return m, m.dashboard.loadBalance()
	case ViewTransactionForm:
		if category, ok := data.(catalog.Category); ok {
			return m, m.transactionForm.Activate(category)
		}
	}

	return m, nil
}

// recordPurchase folds a successful purchase into local history and marks
// the matching beneficiary used.
func (m *AppModel) recordPurchase(purchase PurchaseCompletedMsg) {
	if purchase.Identifier != "" {
		m.recents.Add(models.RecentPurchase{
			Reference:    receiptReference(purchase),
			Category:     purchase.Category,
			ProviderName: purchase.ProviderName,
			ProductName:  purchase.ProductName,
			Identifier:   purchase.Identifier,
			Amount:       purchase.Amount,
		})
		m.beneficiaries.MarkUsed(purchase.Category, purchase.Identifier)
	}

	m.persist()

	m.logger.Info("purchase recorded",
		zap.String("category", string(purchase.Category)),
		zap.String("provider", purchase.ProviderName))
}

func (m *AppModel) shutdown() {
	m.persist()
	m.catalogClient.Close()
}

func (m *AppModel) persist() {
	if err := m.storage.SaveDrafts(m.draftStore.Export()); err != nil {
		m.logger.Warn("failed to persist drafts", zap.Error(err))
	}
	if err := m.storage.SaveBeneficiaries(m.beneficiaries); err != nil {
		m.logger.Warn("failed to persist beneficiaries", zap.Error(err))
	}
	if err := m.storage.SaveRecentPurchases(m.recents.Export()); err != nil {
		m.logger.Warn("failed to persist recent purchases", zap.Error(err))
	}
}

func receiptReference(purchase PurchaseCompletedMsg) string {
	if purchase.Receipt != nil {
		return purchase.Receipt.Reference
	}
	return ""
}

func NavigateTo(state ViewState, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{State: state, Data: data}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
