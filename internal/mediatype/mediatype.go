package mediatype

// MediaType identifies the kind of a classified file.
type MediaType string

const (
	// None marks a file that is not part of any media list.
	None MediaType = ""
	// Video is a playable video file.
	Video MediaType = "video"
	// Audio is a playable audio track.
	Audio MediaType = "audio"
	// Image is a gallery image.
	Image MediaType = "image"
	// Document is a downloadable document.
	Document MediaType = "document"
	// Text is a Markdown text file.
	Text MediaType = "text"
)

// All lists the concrete media types in their canonical display order.
var All = []MediaType{Video, Audio, Image, Text, Document}

// videoExtensions, audioExtensions etc. map lowercase extensions (with dot)
// to membership in their media type.
var (
	videoExtensions = map[string]bool{
		".mp4": true,
		".m4v": true,
	}
	audioExtensions = map[string]bool{
		".mp3": true,
		".m4a": true,
	}
	imageExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	}
	documentExtensions = map[string]bool{
		".pdf": true,
	}
	textExtensions = map[string]bool{
		".md": true,
	}
)

// ForExtension returns the media type for a lowercase extension including the
// leading dot. Unknown extensions return None.
func ForExtension(ext string) MediaType {
	switch {
	case videoExtensions[ext]:
		return Video
	case audioExtensions[ext]:
		return Audio
	case imageExtensions[ext]:
		return Image
	case documentExtensions[ext]:
		return Document
	case textExtensions[ext]:
		return Text
	default:
		return None
	}
}

// IsImageExtension reports whether ext (lowercase, with dot) is a supported image.
func IsImageExtension(ext string) bool {
	return imageExtensions[ext]
}

// Valid reports whether t is one of the concrete media types.
func (t MediaType) Valid() bool {
	switch t {
	case Video, Audio, Image, Document, Text:
		return true
	default:
		return false
	}
}

func (t MediaType) String() string {
	if t == None {
		return "none"
	}
	return string(t)
}
