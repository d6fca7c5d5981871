package catalog

// Document is one catalog entry with the metadata the pipeline exposes to
// callers. Poster is a pointer so an absent poster serializes as an explicit
// JSON null rather than a missing key.
type Document struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Overview string  `json:"overview"`
	Genres   string  `json:"genres"`
	Poster   *string `json:"poster"`
}

// indexEntry is the on-disk shape: document metadata plus its embedding
// vector as produced by the offline build step.
type indexEntry struct {
	Document
	Embedding []float64 `json:"embedding"`
}
