package domain

// UploadedFile is the validated view of a multipart upload.
type UploadedFile struct {
	Filename string
	MimeType string
	Data     []byte
}

// FileMetadata merges format-specific extraction details with the common
// filename/mimetype/size fields.
type FileMetadata struct {
	Filename   string   `json:"filename"`
	MimeType   string   `json:"mimetype"`
	FileSize   int      `json:"fileSize"`
	WordCount  int      `json:"wordCount"`
	PageCount  int      `json:"pages,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	Messages   []string `json:"messages,omitempty"`
}

// ExtractedFile holds normalized plain text recovered from an upload.
// Text is never empty or whitespace-only on the success path.
type ExtractedFile struct {
	Text     string       `json:"text"`
	Metadata FileMetadata `json:"metadata"`
}
