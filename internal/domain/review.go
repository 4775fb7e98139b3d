package domain

// CategoryRating is one per-aspect score as supplied by the channel manager.
type CategoryRating struct {
	Category string `json:"category"`
	Rating   int    `json:"rating"`
}

// Review is the canonical post-normalization shape. Rating is nil when the
// upstream record carried neither an overall rating nor any categories.
// PropertyID is resolved once from the listing name at normalization time
// and never re-derived afterwards.
type Review struct {
	ID         int64            `json:"id"`
	Listing    string           `json:"listing"`
	PropertyID string           `json:"propertyId"`
	Guest      string           `json:"guest"`
	Review     string           `json:"review"`
	Rating     *int             `json:"rating"`
	Categories []CategoryRating `json:"categories"`
	Date       string           `json:"date"`
	Channel    string           `json:"channel"`
	Type       string           `json:"type"`
	Status     string           `json:"status,omitempty"`
}
