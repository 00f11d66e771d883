package domain

// Document is one entry of the internal documentation corpus.
type Document struct {
	Topic    string   `yaml:"topic" json:"topic"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Content  string   `yaml:"content" json:"content"`
}

// SearchResult is the outcome of a documentation lookup.
type SearchResult struct {
	Found   bool   `json:"found"`
	Topic   string `json:"topic,omitempty"`
	Content string `json:"content,omitempty"`
}
