package model

// Summary is one completed summarization: the owner, the uploaded filename,
// the generated text and the key of the stored original file. Rows are
// immutable after creation.
type Summary struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Filename string `json:"filename"`
	Summary  string `json:"summary"`
	FileKey  string `json:"file_key"`
	Ctime    int64  `json:"ctime"`
}
