package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkoval85/aipulse/internal/models"
	"github.com/dkoval85/aipulse/internal/services"
)

// feedLoadedMsg is the completion of a feed or trending fetch. It carries the
// generation and originating view so the update loop can drop results that no
// longer apply.
type feedLoadedMsg struct {
	gen   int
	view  view
	items []models.NewsItem
}

// researchDoneMsg is the completion of a research query.
type researchDoneMsg struct {
	gen    int
	result models.SearchResult
}

// fetchCmd runs one feed fetch for the given view.
func (m *Model) fetchCmd(target view, gen int) tea.Cmd {
	return func() tea.Msg {
		var items []models.NewsItem
		if target == viewTrending {
			items = m.content.FetchTrendingFeed(m.ctx)
		} else {
			items = m.content.FetchPrimaryFeed(m.ctx)
		}
		return feedLoadedMsg{gen: gen, view: target, items: items}
	}
}

func (m *Model) researchCmd(query string, gen int) tea.Cmd {
	return func() tea.Msg {
		return researchDoneMsg{gen: gen, result: m.content.Research(m.ctx, query)}
	}
}

// startRefresh begins a fetch for the active view unless one is already in
// flight. Single-flight is per controller, not per view.
func (m *Model) startRefresh() tea.Cmd {
	if m.refreshing {
		return nil
	}
	if m.view != viewFeed && m.view != viewTrending {
		return nil
	}
	m.refreshing = true
	m.fetchGen++
	if m.view == viewTrending {
		m.hasFetchedTrends = true
	}
	return tea.Batch(m.fetchCmd(m.view, m.fetchGen), m.spin.Tick)
}

// navTo switches the visible view. Leaving research drops any pending
// auto-query trigger; entering trending for the first time fires the one-shot
// automatic fetch.
func (m *Model) navTo(target view) tea.Cmd {
	if m.view == viewResearch && target != viewResearch {
		m.researchTrigger = ""
	}
	m.view = target
	m.cursor = 0

	switch target {
	case viewResearch:
		m.researchInput.Focus()
		if m.researchTrigger != "" {
			return m.submitResearch(m.researchTrigger)
		}
		return textinput.Blink
	case viewTrending:
		if !m.hasFetchedTrends {
			return m.startRefresh()
		}
	}
	return nil
}

// submitResearch starts a query; a newer submission supersedes any earlier
// in-flight one.
func (m *Model) submitResearch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	m.researchInput.SetValue(query)
	m.researchBusy = true
	m.researchGen++
	return tea.Batch(m.researchCmd(query, m.researchGen), m.spin.Tick)
}

// selectArticle marks the item read and jumps to research with a synthesized
// analysis prompt for it.
func (m *Model) selectArticle(item models.NewsItem) tea.Cmd {
	if m.readLog != nil {
		if _, err := m.readLog.MarkRead(m.ctx, item.ID); err != nil {
			m.log.Error(m.ctx, "failed to persist read state", "id", item.ID, "err", err)
		}
	}
	m.researchTrigger = services.AnalysisPrompt(item.Title)
	return m.navTo(viewResearch)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.refreshing && !m.researchBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case feedLoadedMsg:
		// Only the latest generation may complete the in-flight refresh.
		if msg.gen != m.fetchGen {
			return m, nil
		}
		m.refreshing = false
		// The result belongs to the view that initiated it; if the user
		// navigated away it is discarded, never leaked into another view.
		if msg.view != m.view {
			m.log.Debug(m.ctx, "dropping stale fetch result", "for", msg.view.String(), "current", m.view.String())
			return m, nil
		}
		// An empty list means the fetch failed: keep the stale data.
		if len(msg.items) == 0 {
			return m, nil
		}
		if msg.view == viewTrending {
			m.trending = msg.items
		} else {
			m.news = msg.items
		}
		if m.cursor >= len(msg.items) {
			m.cursor = len(msg.items) - 1
		}
		return m, nil

	case researchDoneMsg:
		if msg.gen != m.researchGen {
			return m, nil
		}
		m.researchBusy = false
		if m.view != viewResearch {
			m.log.Debug(m.ctx, "dropping stale research result")
			return m, nil
		}
		result := msg.result
		m.researchResult = &result
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.view == viewAuth {
		return m.handleAuthKey(msg)
	}
	if m.view == viewResearch {
		return m.handleResearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		return m, m.navTo(viewFeed)
	case "2":
		return m, m.navTo(viewTrending)
	case "3":
		return m, m.navTo(viewResearch)
	case "4":
		return m, m.navTo(viewSettings)
	case "r":
		return m, m.startRefresh()
	case "j", "down":
		if list := m.currentList(); len(list) > 0 && m.cursor < len(list)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "enter":
		if list := m.currentList(); m.cursor < len(list) {
			return m, m.selectArticle(list[m.cursor])
		}
		return m, nil
	case "l":
		if m.view == viewSettings {
			return m, m.logout()
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleResearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, m.navTo(viewFeed)
	case tea.KeyEnter:
		return m, m.submitResearch(m.researchInput.Value())
	}
	// Number-key navigation stays available while the input is empty, so a
	// stray keystroke does not trap the user in the terminal.
	if m.researchInput.Value() == "" {
		switch msg.String() {
		case "1":
			return m, m.navTo(viewFeed)
		case "2":
			return m, m.navTo(viewTrending)
		case "4":
			return m, m.navTo(viewSettings)
		}
	}
	var cmd tea.Cmd
	m.researchInput, cmd = m.researchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		m.toggleAuthFocus()
		return m, nil
	case tea.KeyCtrlN:
		if m.authMode == modeLogin {
			m.authMode = modeRegister
		} else {
			m.authMode = modeLogin
		}
		m.authErr = ""
		return m, nil
	case tea.KeyEnter:
		if m.authFocus == 0 {
			m.toggleAuthFocus()
			return m, nil
		}
		return m, m.submitAuth()
	}

	var cmd tea.Cmd
	if m.authFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passInput, cmd = m.passInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleAuthFocus() {
	if m.authFocus == 0 {
		m.authFocus = 1
		m.emailInput.Blur()
		m.passInput.Focus()
	} else {
		m.authFocus = 0
		m.passInput.Blur()
		m.emailInput.Focus()
	}
}

// submitAuth runs login or register against the local stores. Failures show
// as an uppercased inline error; the view stays on the auth screen.
func (m *Model) submitAuth() tea.Cmd {
	email := strings.TrimSpace(m.emailInput.Value())
	secret := m.passInput.Value()
	if email == "" || secret == "" {
		m.authErr = "EMAIL AND PASSWORD REQUIRED"
		return nil
	}

	var (
		account models.Account
		err     error
	)
	if m.authMode == modeRegister {
		account, err = m.auth.Register(m.ctx, email, secret)
	} else {
		account, err = m.auth.Login(m.ctx, email, secret)
	}
	if err != nil {
		m.authErr = strings.ToUpper(err.Error())
		return nil
	}

	m.authErr = ""
	m.passInput.SetValue("")
	m.startSession(account)
	return nil
}

// logout clears the session record only; accounts and read state stay on
// disk.
func (m *Model) logout() tea.Cmd {
	if err := m.auth.Logout(m.ctx); err != nil {
		m.log.Error(m.ctx, "logout failed", "err", err)
	}
	m.user = nil
	m.readLog = nil
	m.researchTrigger = ""
	m.researchResult = nil
	m.researchBusy = false
	m.researchInput.SetValue("")
	m.view = viewAuth
	m.authFocus = 0
	m.authMode = modeLogin
	m.authErr = ""
	m.emailInput.SetValue("")
	m.passInput.SetValue("")
	m.emailInput.Focus()
	m.passInput.Blur()
	return textinput.Blink
}
