package uploadto

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Options controls how upload paths are generated. The yaml keys match the
// upload_to settings section.
type Options struct {
	BlacklistedExtensions []string `yaml:"black_listed_extensions"`
	// MaxFilenameLength caps the slugged file name in runes. Zero means no
	// cap; a negative value is rejected with ErrInvalidOptions.
	MaxFilenameLength int    `yaml:"max_filename_length"`
	FileNameTemplate  string `yaml:"file_name_template"`
}

const (
	DefaultMaxFilenameLength = 40
	DefaultFileNameTemplate  = "{model_name}/%Y/{filename}.{extension}"
)

func DefaultOptions() Options {
	return Options{
		BlacklistedExtensions: []string{"php", "html", "htm", "js", "vbs", "py", "pyc", "asp", "aspx", "pl"},
		MaxFilenameLength:     DefaultMaxFilenameLength,
		FileNameTemplate:      DefaultFileNameTemplate,
	}
}

func (o Options) validate() error {
	if o.MaxFilenameLength < 0 {
		return fmt.Errorf("%w: max_filename_length %d is negative", ErrInvalidOptions, o.MaxFilenameLength)
	}
	return nil
}

type Option func(*UploadTo)

// WithBlacklist replaces the blacklisted extensions.
func WithBlacklist(extensions ...string) Option {
	return func(u *UploadTo) {
		u.options.BlacklistedExtensions = slices.Clone(extensions)
	}
}

func WithMaxFilenameLength(n int) Option {
	return func(u *UploadTo) {
		u.options.MaxFilenameLength = n
	}
}

func WithTemplate(template string) Option {
	return func(u *UploadTo) {
		u.options.FileNameTemplate = template
	}
}

// WithOptions replaces all options at once.
func WithOptions(o Options) Option {
	return func(u *UploadTo) {
		u.options = o
		u.options.BlacklistedExtensions = slices.Clone(o.BlacklistedExtensions)
	}
}

// WithClock replaces time.Now when expanding strftime verbs.
func WithClock(now func() time.Time) Option {
	return func(u *UploadTo) {
		u.now = now
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(u *UploadTo) {
		u.logger = l
	}
}
