package config

// Default paths for databases and data
const (
	// DefaultLibraryPath is the default location of the Calibre metadata.db
	DefaultLibraryPath = "./library/metadata.db"

	// DefaultAnnexPath is the default path for the annex database
	DefaultAnnexPath = "./bookannex.db"

	// DefaultDataDir is the default directory for thumbnails and other
	// generated files
	DefaultDataDir = "./data"
)
