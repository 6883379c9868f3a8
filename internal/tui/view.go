package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoval85/aipulse/internal/models"
)

func (m *Model) View() string {
	if m.view == viewAuth {
		return m.viewAuthScreen()
	}

	var body string
	switch m.view {
	case viewFeed:
		body = m.viewList("LIVE_FEED", m.news, "no articles yet, press r to refresh")
	case viewTrending:
		empty := "No trending data available."
		if m.refreshing {
			empty = "ANALYZING GLOBAL DATA STREAMS..."
		}
		body = m.viewList("VIRAL_TOPICS", m.trending, empty)
	case viewResearch:
		body = m.viewResearchScreen()
	case viewSettings:
		body = m.viewSettingsScreen()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("AI PULSE"),
		m.viewNav(),
		body,
	)
}

func (m *Model) viewNav() string {
	entries := []struct {
		v     view
		label string
	}{
		{viewFeed, "1 FEED"},
		{viewTrending, "2 TRENDING"},
		{viewResearch, "3 RESEARCH"},
		{viewSettings, "4 SETTINGS"},
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.v == m.view {
			parts = append(parts, navActiveStyle.Render(e.label))
		} else {
			parts = append(parts, navInactiveStyle.Render(e.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) viewList(caption string, items []models.NewsItem, empty string) string {
	var b strings.Builder

	head := caption
	if m.refreshing {
		head += " " + m.spin.View()
	}
	b.WriteString(categoryStyle.Render(head))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(metaStyle.Render(empty))
		b.WriteString("\n")
	}

	for i, item := range items {
		b.WriteString(m.viewCard(item, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("j/k move · enter analyze · r refresh · q quit"))
	return b.String()
}

func (m *Model) viewCard(item models.NewsItem, selected bool) string {
	title := titleStyle
	read := ""
	if m.readLog != nil && m.readLog.IsRead(item.ID) {
		title = readTitleStyle
		read = metaStyle.Render(" · read")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		categoryStyle.Render(item.Category)+metaStyle.Render(" · "+item.Timestamp)+read,
		title.Render(item.Title),
		item.Summary,
		metaStyle.Render(item.Source),
	)

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	if m.width > 4 {
		style = style.Width(min(m.width-2, 76))
	}
	return style.Render(content)
}

func (m *Model) viewResearchScreen() string {
	var b strings.Builder

	b.WriteString(categoryStyle.Render("RESEARCH_TERMINAL"))
	b.WriteString("\n")
	b.WriteString(m.researchInput.View())
	b.WriteString("\n")

	if m.researchBusy {
		b.WriteString(m.spin.View() + metaStyle.Render(" querying the global knowledge base..."))
		b.WriteString("\n")
	}

	if m.researchResult != nil && !m.researchBusy {
		b.WriteString(renderMarkdown(m.researchResult.Text, m.width))
		b.WriteString("\n")
		if len(m.researchResult.Sources) > 0 {
			b.WriteString(metaStyle.Render("SOURCES"))
			b.WriteString("\n")
			for i, src := range m.researchResult.Sources {
				b.WriteString(fmt.Sprintf("%s %s\n  %s\n",
					metaStyle.Render(fmt.Sprintf("[%d]", i+1)),
					src.Title,
					sourceStyle.Render(src.URI)))
			}
		}
	}

	b.WriteString(hintStyle.Render("enter run · esc back"))
	return b.String()
}

func (m *Model) viewSettingsScreen() string {
	name, email := "", ""
	if m.user != nil {
		name = m.user.Name
		email = m.user.Email
	}
	read := 0
	if m.readLog != nil {
		read = m.readLog.Size()
	}

	rows := []string{
		titleStyle.Render(name),
		metaStyle.Render(email),
		"",
		labelStyle.Render("APP_VERSION") + Version,
		labelStyle.Render("STATUS") + "ONLINE",
		labelStyle.Render("ARTICLES_READ") + fmt.Sprintf("%d", read),
		"",
		errorStyle.Render("l") + hintStyle.Render(" terminate session · q quit"),
	}
	return cardStyle.Render(strings.Join(rows, "\n"))
}

func (m *Model) viewAuthScreen() string {
	mode := "ACCESS_LOGIN"
	hint := "ctrl+n register instead"
	if m.authMode == modeRegister {
		mode = "ACCESS_REGISTER"
		hint = "ctrl+n login instead"
	}

	rows := []string{
		headerStyle.Render("AI PULSE"),
		categoryStyle.Render(mode),
		"",
		m.emailInput.View(),
		m.passInput.View(),
	}
	if m.authErr != "" {
		rows = append(rows, "", errorStyle.Render(m.authErr))
	}
	rows = append(rows, "", hintStyle.Render("tab switch field · enter submit · "+hint))

	return cardStyle.Render(strings.Join(rows, "\n"))
}

// renderMarkdown pretty-prints the research answer; on any renderer problem
// the raw text is shown instead.
func renderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 76
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-2, 76)),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}
