package storage

// ExtractionError represents a corrupt or unreadable archive.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "archive extraction failed: " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// StorageError represents a filesystem failure while placing or removing an
// artifact.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "artifact " + e.Op + " failed: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
