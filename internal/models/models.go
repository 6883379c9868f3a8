// Package models contains the domain types shared by storage, services and
// the TUI: accounts, news items and research results.
package models

// Account is the public view of a registered user. The stored secret never
// leaves the auth service.
type Account struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// StoredAccount is the credential-store record for one user. The secret is
// kept verbatim; this mirrors the documented (toy) behavior and is not to be
// extended into real credential handling.
type StoredAccount struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// Public strips the secret from a stored record.
func (a StoredAccount) Public() Account {
	return Account{Email: a.Email, Name: a.Name}
}

// NewsItem is one card in the feed or trending list. Items are immutable
// after creation; a refresh replaces the whole list.
type NewsItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Summary   string `json:"summary"`
	Timestamp string `json:"timestamp"`
	ImageURL  string `json:"imageUrl"`
	Source    string `json:"source"`
}

// Source is one grounding citation attached to a research answer.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// SearchResult is the answer to one research query. Superseded by the next
// query, never persisted.
type SearchResult struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}
