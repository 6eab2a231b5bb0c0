package domain

// VideoSource tells clients how to resolve a video reference.
type VideoSource string

const (
	SourceYouTube VideoSource = "youtube"
	SourceDrive   VideoSource = "drive"
	SourceDirect  VideoSource = "direct"
)

// Video points at the room's currently selected video.
// Reference is a video id for youtube, a file id for drive, a URL for direct.
type Video struct {
	Source    VideoSource `json:"source"`
	Reference string      `json:"reference"`
}
