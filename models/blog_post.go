package models

// BlogPost is the single entity this service manages. The JSON field names
// match the collection literal consumed by the marketing site, so a post
// round-trips between the API and the backing data file unchanged.
type BlogPost struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Author      string   `json:"author"`
	PublishDate string   `json:"publishDate"`
	ReadTime    string   `json:"readTime"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
	Image       string   `json:"image"`
}

// BlogPostSubmission is the inbound payload for create and update requests.
// Optional fields are pointers (or a nil slice) so the validator can tell
// "absent" apart from an explicit zero value before substituting defaults.
type BlogPostSubmission struct {
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Author   *string  `json:"author,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Featured *bool    `json:"featured,omitempty"`
	Image    *string  `json:"image,omitempty"`
}
