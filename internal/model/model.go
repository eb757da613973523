package model

// UploadedFile represents a file record returned by Google Drive after upload.
type UploadedFile struct {
	Name         string `json:"name"`
	ID           string `json:"id"`
	ViewLink     string `json:"viewLink"`
	DownloadLink string `json:"downloadLink"`
	Kind         string `json:"kind"` // "file" or "metadata"
}

// FileEntry represents one item of the destination folder listing.
type FileEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MIMEType    string `json:"mimeType"`
	CreatedTime string `json:"createdTime"`
	ViewLink    string `json:"viewLink"`
}

// TextMetadata is the recognized metadata attached to a pasted-text webhook.
// Fields outside this set are dropped before forwarding.
type TextMetadata struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	PublishedDate string   `json:"publishedDate"`
	Tags          []string `json:"tags"`
}

// YouTubePayload is the webhook payload for a forwarded video link.
type YouTubePayload struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
}

// TextPayload is the webhook payload for forwarded pasted text.
type TextPayload struct {
	Type           string        `json:"type"`
	Content        string        `json:"content"`
	WordCount      int           `json:"wordCount"`
	CharacterCount int           `json:"characterCount"`
	Timestamp      string        `json:"timestamp"`
	Metadata       *TextMetadata `json:"metadata,omitempty"`
}
