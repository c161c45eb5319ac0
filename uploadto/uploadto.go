package uploadto

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gosimple/slug"
	mlog "github.com/on-the-ground/modelhelpers/internal/log"
	"github.com/on-the-ground/modelhelpers/settings"
	"go.uber.org/zap"
)

// UploadTo renders upload paths. It is safe for concurrent use.
type UploadTo struct {
	options Options
	now     func() time.Time
	logger  *zap.Logger
}

// New builds an UploadTo from the default options overridden by opts.
func New(opts ...Option) *UploadTo {
	u := &UploadTo{options: DefaultOptions(), now: time.Now}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// FromSettings layers the upload_to section of s over the defaults, then
// applies opts on top.
func FromSettings(s *settings.Settings, opts ...Option) (*UploadTo, error) {
	options := DefaultOptions()
	if err := s.Decode(settings.UploadToPrefix, &options); err != nil && !errors.Is(err, settings.ErrNoSuchKey) {
		return nil, fmt.Errorf("upload_to settings: %w", err)
	}
	u := New(append([]Option{WithOptions(options)}, opts...)...)
	if err := u.options.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Options returns a copy of the effective options.
func (u *UploadTo) Options() Options {
	o := u.options
	o.BlacklistedExtensions = slices.Clone(o.BlacklistedExtensions)
	return o
}

// FileInfo is a parsed upload file name.
type FileInfo struct {
	// Filename is the lower-cased base name without its extension.
	Filename string
	// Extension is the lower-cased text after the last dot.
	Extension string
	// FullFilename is the name as given.
	FullFilename string
}

// ParseFilename splits the base name of fullFilename on its last dot. Both
// slash and backslash separate directories.
func ParseFilename(fullFilename string) (FileInfo, error) {
	base := strings.ToLower(path.Base(strings.ReplaceAll(fullFilename, `\`, "/")))
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return FileInfo{}, fmt.Errorf("%w: %q has no extension", ErrInvalidFilename, fullFilename)
	}
	return FileInfo{
		Filename:     base[:i],
		Extension:    base[i+1:],
		FullFilename: fullFilename,
	}, nil
}

// Validate rejects blacklisted extensions.
func (u *UploadTo) Validate(info FileInfo) error {
	for _, ext := range u.options.BlacklistedExtensions {
		if strings.EqualFold(ext, info.Extension) {
			return fmt.Errorf("%w: %q", ErrExtensionNotAllowed, info.Extension)
		}
	}
	return nil
}

// Path returns where the file fullFilename uploaded for instance is stored.
func (u *UploadTo) Path(instance any, fullFilename string) (string, error) {
	logger := mlog.Or(u.logger)

	if err := u.options.validate(); err != nil {
		return "", err
	}
	info, err := ParseFilename(fullFilename)
	if err == nil {
		err = u.Validate(info)
	}
	if err != nil {
		logger.Warn("upload rejected", zap.String("filename", fullFilename), zap.Error(err))
		return "", err
	}

	info.Filename = truncate(slug.Make(info.Filename), u.options.MaxFilenameLength)
	p, err := render(u.options.FileNameTemplate, u.now(), instance, info)
	if err != nil {
		logger.Warn("upload path not rendered",
			zap.String("template", u.options.FileNameTemplate), zap.Error(err))
		return "", err
	}
	return p, nil
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var defaultUploadTo atomic.Pointer[UploadTo]

func init() {
	defaultUploadTo.Store(New())
}

// SetDefault replaces the UploadTo behind the package level Path and returns
// the previous one.
func SetDefault(u *UploadTo) *UploadTo {
	return defaultUploadTo.Swap(u)
}

// Path renders fullFilename for instance with the package default UploadTo.
func Path(instance any, fullFilename string) (string, error) {
	return defaultUploadTo.Load().Path(instance, fullFilename)
}
