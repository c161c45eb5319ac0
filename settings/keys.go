package settings

const (
	delimiter = "."

	UploadToPrefix = "upload_to"

	UploadToBlacklistedExtensions = UploadToPrefix + delimiter + "black_listed_extensions"
	UploadToMaxFilenameLength     = UploadToPrefix + delimiter + "max_filename_length"
	UploadToFileNameTemplate      = UploadToPrefix + delimiter + "file_name_template"

	CachePrefix = "cache"

	CacheBackend        = CachePrefix + delimiter + "backend"
	CacheDefaultTimeout = CachePrefix + delimiter + "default_timeout"
	CacheMaxEntries     = CachePrefix + delimiter + "max_entries"

	CacheRedisSection   = CachePrefix + delimiter + "redis"
	CacheRedisAddress   = CacheRedisSection + delimiter + "address"
	CacheRedisPassword  = CacheRedisSection + delimiter + "password"
	CacheRedisDB        = CacheRedisSection + delimiter + "db"
	CacheRedisKeyPrefix = CacheRedisSection + delimiter + "key_prefix"

	LogPrefix = "log"

	LogLevel = LogPrefix + delimiter + "level"
)
