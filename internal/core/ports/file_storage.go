package ports

import "io"

// FileStorage persists uploaded product images outside the database.
type FileStorage interface {
	// Save stores content under a generated name derived from ext and
	// returns that name.
	Save(ext string, content io.Reader) (string, error)
	// Path resolves a stored name to a local filesystem path, or an
	// error when the name is unknown.
	Path(name string) (string, error)
}
