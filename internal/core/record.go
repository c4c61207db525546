package core

import "time"

// TranslationRecord is the persisted history entry for one translated file,
// keyed by the translated file's path.
type TranslationRecord struct {
	Hash       string    `json:"hash" db:"hash"`
	Commit     string    `json:"commit" db:"commit_sha"`
	Timestamp  time.Time `json:"timestamp" db:"updated_at"`
	SourceFile string    `json:"source_file,omitempty" db:"source_file"`
}
