package thumbnail

// Frame position and width shared by every backend
const (
	OffsetSeconds = 1
	Width         = 320
)
