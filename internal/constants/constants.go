// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "os"

// Application defaults
const (
	DefaultPort        = "8080"
	DefaultDBPath      = "airscore.db"
	DefaultLibrarySub  = "Documents/airscore"
	DefaultMaxUploadMB = 50
)

// Metadata bounds
const (
	RatingMin     = 1
	RatingMax     = 5
	DifficultyMin = 1
	DifficultyMax = 10
)

// File handling
const (
	PDFExtension  = ".pdf"
	FileURIScheme = "file://"

	DirPermissions  os.FileMode = 0o755
	FilePermissions os.FileMode = 0o644
)
