package entity

import "time"

// ArticleEvent is the payload of an article.analysis stream message. The
// ingestion service publishes it and the analyzer consumes it.
type ArticleEvent struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	Feed        string     `json:"feed"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
