package models

import "time"

// StoryListing is the lightweight entry returned when listing stories.
type StoryListing struct {
	ID    int64  `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
}

// Story is the root entity of a branching narrative.
// Pages is filled by the assembler, never by the stories table itself.
type Story struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	StartPage *int64    `json:"start_page" db:"start_page"` // NULL until the start page exists
	CreatedAt time.Time `json:"-" db:"created_at"`
	Pages     []Page    `json:"pages" db:"-"`
}

// Page is a node of the narrative graph.
type Page struct {
	ID      int64    `json:"id" db:"id"`
	StoryID int64    `json:"story_id" db:"story_id"`
	Name    string   `json:"name" db:"name"`
	Body    string   `json:"body" db:"content"`
	Options []Choice `json:"options" db:"-"`
}

// Choice is a labelled edge from one page to a target page.
type Choice struct {
	ID         int64  `json:"id" db:"id"`
	PageID     int64  `json:"page_id" db:"page_id"`
	Text       string `json:"text" db:"text"`
	TargetPage int64  `json:"target_page" db:"target_page_id"`
}

// StartPageName is the name given to the page created together with every story.
const StartPageName = "Start"

// PagePatch is a partial page update. Nil fields are left untouched.
type PagePatch struct {
	ID   int64   `json:"id"`
	Name *string `json:"name,omitempty"`
	Body *string `json:"body,omitempty"`
}

// IsEmpty reports whether the patch carries no field to write.
func (p PagePatch) IsEmpty() bool {
	return p.Name == nil && p.Body == nil
}
