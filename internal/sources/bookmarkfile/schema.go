package bookmarkfile

// Entry mirrors one bookmark document in the bookmarks.json export.
// Timestamps are RFC3339 strings in the file and parsed by the mapper.
type Entry struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	AISummary   string   `json:"ai_summary"`
	AITags      []string `json:"ai_tags"`
	AICategory  string   `json:"ai_category"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// Export is the root structure of bookmarks.json: a flat array of entries.
type Export []Entry
