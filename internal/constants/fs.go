package constants

import "os"

const (
	// DefaultFilePermissions sets the permissions for exported tables and audio files: (rw-r--r--).
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the permissions for export and download folders: (rwxr-xr-x).
	DefaultFolderPermissions os.FileMode = 0o755
)

// File extension constants.
const (
	ExtensionMP3  = ".mp3"
	ExtensionFLAC = ".flac"
	ExtensionWAV  = ".wav"
	ExtensionCSV  = ".csv"
	ExtensionJPEG = ".jpg"
	// ExtensionPart marks files that are still being written.
	ExtensionPart = ".part"
)
