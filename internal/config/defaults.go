package config

// Defaults mirrored from the struct tags, checked by TestConfigConstantsMatch.
const (
	DefaultVersion        = "1"
	DefaultSiteName       = "Folio"
	DefaultServerHost     = "0.0.0.0"
	DefaultServerPort     = "12600"
	DefaultBlogKey        = "blogPosts"
	DefaultRecentCount    = 3
	DefaultStorageBackend = BackendFile
)
