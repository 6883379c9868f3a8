// Package tui implements the terminal UI: an auth screen gating four views
// (feed, trending, research, settings) driven by the bubbletea update loop.
// All persistence goes through the injected services; all provider calls run
// as bubbletea commands whose results carry a generation counter so stale
// completions are discarded.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkoval85/aipulse/internal/logging"
	"github.com/dkoval85/aipulse/internal/models"
	"github.com/dkoval85/aipulse/internal/provider"
	"github.com/dkoval85/aipulse/internal/services"
	"github.com/dkoval85/aipulse/internal/storage"
)

// Version is shown on the settings screen.
const Version = "v1.4.0"

type view int

const (
	viewAuth view = iota
	viewFeed
	viewTrending
	viewResearch
	viewSettings
)

func (v view) String() string {
	switch v {
	case viewAuth:
		return "auth"
	case viewFeed:
		return "feed"
	case viewTrending:
		return "trending"
	case viewResearch:
		return "research"
	case viewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// contentAPI is the slice of the content service the TUI needs; tests provide
// a counting fake.
type contentAPI interface {
	FetchPrimaryFeed(ctx context.Context) []models.NewsItem
	FetchTrendingFeed(ctx context.Context) []models.NewsItem
	Research(ctx context.Context, query string) models.SearchResult
}

// Model is the bubbletea model: the whole view state machine plus in-memory
// copies of the lists the screens render.
type Model struct {
	ctx     context.Context
	log     logging.Logger
	auth    services.AuthService
	content contentAPI
	kv      storage.KV

	view    view
	user    *models.Account
	readLog *services.ReadLog

	news             []models.NewsItem
	trending         []models.NewsItem
	refreshing       bool
	hasFetchedTrends bool
	fetchGen         int
	cursor           int

	researchTrigger string
	researchInput   textinput.Model
	researchResult  *models.SearchResult
	researchBusy    bool
	researchGen     int

	emailInput textinput.Model
	passInput  textinput.Model
	authFocus  int
	authMode   authMode
	authErr    string

	spin   spinner.Model
	width  int
	height int
}

// New builds the model and restores a prior session if one exists; with a
// valid session the app starts on the feed, otherwise on the auth screen.
func New(ctx context.Context, auth services.AuthService, content contentAPI, kv storage.KV, log logging.Logger) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 64
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 64
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	query := textinput.New()
	query.Placeholder = "query the global knowledge base..."
	query.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:           ctx,
		log:           log,
		auth:          auth,
		content:       content,
		kv:            kv,
		view:          viewAuth,
		news:          provider.SeedFeed(),
		emailInput:    email,
		passInput:     pass,
		researchInput: query,
		spin:          sp,
	}

	if account, ok, err := auth.CurrentSession(ctx); err == nil && ok {
		m.startSession(account)
	} else if err != nil {
		log.Warn(ctx, "session restore failed", "err", err)
	}

	return m
}

// startSession installs the account, loads its read state and lands on the
// feed.
func (m *Model) startSession(account models.Account) {
	m.user = &account
	m.readLog = services.NewReadLog(m.kv, account.Email, m.log)
	m.readLog.Load(m.ctx)
	m.view = viewFeed
	m.cursor = 0
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// currentList returns the list backing the active view, or nil.
func (m *Model) currentList() []models.NewsItem {
	switch m.view {
	case viewFeed:
		return m.news
	case viewTrending:
		return m.trending
	default:
		return nil
	}
}
