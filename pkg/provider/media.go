package provider

import "github.com/SweetRetry/seedkit-ai/pkg/api"

// DefaultPDFFilename is sent for inline PDFs without a filename.
const DefaultPDFFilename = "document.pdf"

// MediaKind is the wire category of a user file part.
type MediaKind int

const (
	MediaUnsupported MediaKind = iota
	MediaImage
	MediaVideo
	MediaPDF
)

// ClassifyMedia returns the wire category of mediaType and the concrete
// media type to put in data URIs. Wildcards resolve to image/jpeg and
// video/mp4.
func ClassifyMedia(mediaType string) (MediaKind, string) {
	switch {
	case mediaType == "application/pdf":
		return MediaPDF, mediaType
	case mediaType == "image/*":
		return MediaImage, "image/jpeg"
	case mediaType == "video/*":
		return MediaVideo, "video/mp4"
	}
	switch api.MediaCategory(mediaType) {
	case "image":
		return MediaImage, mediaType
	case "video":
		return MediaVideo, mediaType
	}
	return MediaUnsupported, mediaType
}

// PDFFilename returns name or DefaultPDFFilename when it is empty.
func PDFFilename(name string) string {
	if name == "" {
		return DefaultPDFFilename
	}
	return name
}
