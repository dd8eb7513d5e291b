package arbor

import (
	"fmt"
	"image"
	_ "image/jpeg" // decoder registration for Assets
	_ "image/png"  // decoder registration for Assets
	"io/fs"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// IconSize is the edge length of square icons. Only the declared sizes are
// supported; any other value panics when it is used.
type IconSize int

const (
	IconXSmall IconSize = 16
	IconSmall  IconSize = 24
	IconMedium IconSize = 32
)

// Pixels returns the edge length in logical pixels.
func (s IconSize) Pixels() float64 {
	s.mustBeValid()
	return float64(s)
}

// Valid reports whether s is one of the declared sizes.
func (s IconSize) Valid() bool {
	switch s {
	case IconXSmall, IconSmall, IconMedium:
		return true
	}
	return false
}

func (s IconSize) String() string {
	switch s {
	case IconXSmall:
		return "xsmall"
	case IconSmall:
		return "small"
	case IconMedium:
		return "medium"
	default:
		return fmt.Sprintf("IconSize(%d)", int(s))
	}
}

func (s IconSize) mustBeValid() {
	if !s.Valid() {
		panic(fmt.Sprintf("arbor: unsupported icon size %d", int(s)))
	}
}

// Icon produces the image shown by an image widget.
type Icon interface {
	// RequestImage returns the image for the given display scale and size.
	// Implementations degrade to a placeholder instead of failing.
	RequestImage(assets *Assets, scale float64, size IconSize) *ebiten.Image
}

// NamedIcon refers to an icon file by name. The file is resolved as
// icons/<name>.<W>x<H>.png, with an @2x suffix on high-density displays.
type NamedIcon string

// Path returns the asset path for the given scale and size.
func (n NamedIcon) Path(scale float64, size IconSize) string {
	size.mustBeValid()
	suffix := ""
	if scale > 1 {
		suffix = "@2x"
	}
	return fmt.Sprintf("icons/%s.%dx%d%s.png", string(n), int(size), int(size), suffix)
}

// RequestImage loads the named icon through assets.
func (n NamedIcon) RequestImage(assets *Assets, scale float64, size IconSize) *ebiten.Image {
	if assets == nil {
		return placeholderImage()
	}
	return assets.Load(n.Path(scale, size))
}

// ImageIcon wraps an already loaded image. It ignores scale and size.
type ImageIcon struct {
	Image *ebiten.Image
}

// RequestImage returns the wrapped image, or the placeholder if it is nil.
func (i ImageIcon) RequestImage(_ *Assets, _ float64, _ IconSize) *ebiten.Image {
	if i.Image == nil {
		return placeholderImage()
	}
	return i.Image
}

// placeholder singleton; arbor is single-threaded
var placeholder *ebiten.Image

// placeholderImage returns a 2x2 magenta/black checker used for icons that
// cannot be resolved.
func placeholderImage() *ebiten.Image {
	if placeholder == nil {
		placeholder = ebiten.NewImage(2, 2)
		magenta := Color{R: 1, B: 1, A: 1}.toRGBA()
		black := Color{A: 1}.toRGBA()
		placeholder.Set(0, 0, magenta)
		placeholder.Set(1, 1, magenta)
		placeholder.Set(1, 0, black)
		placeholder.Set(0, 1, black)
	}
	return placeholder
}

// Assets loads and caches images from a file system. Failures are logged
// once per path and answered with a placeholder image.
type Assets struct {
	fsys   fs.FS
	cache  map[string]*ebiten.Image
	failed map[string]error
	logger *slog.Logger
}

// NewAssets creates an asset cache reading from fsys. A nil logger discards
// warnings.
func NewAssets(fsys fs.FS, logger *slog.Logger) *Assets {
	if logger == nil {
		logger = discardLogger()
	}
	return &Assets{
		fsys:   fsys,
		cache:  make(map[string]*ebiten.Image),
		failed: make(map[string]error),
		logger: logger,
	}
}

// Load returns the image at path, loading it on first use. Unresolvable
// paths yield the placeholder image.
func (a *Assets) Load(path string) *ebiten.Image {
	if img, ok := a.cache[path]; ok {
		return img
	}
	if _, ok := a.failed[path]; ok {
		return placeholderImage()
	}
	img, err := a.decode(path)
	if err != nil {
		a.failed[path] = err
		a.logger.Warn("asset unavailable, using placeholder", slog.String("path", path), slog.Any("error", err))
		return placeholderImage()
	}
	a.cache[path] = img
	return img
}

// Err returns the load error recorded for path, if any.
func (a *Assets) Err(path string) error {
	return a.failed[path]
}

// Forget drops cached state for path so the next Load reads it again.
// Paths are matched by prefix when they end in a slash.
func (a *Assets) Forget(path string) {
	if strings.HasSuffix(path, "/") {
		for p := range a.cache {
			if strings.HasPrefix(p, path) {
				delete(a.cache, p)
			}
		}
		for p := range a.failed {
			if strings.HasPrefix(p, path) {
				delete(a.failed, p)
			}
		}
		return
	}
	delete(a.cache, path)
	delete(a.failed, path)
}

func (a *Assets) decode(path string) (*ebiten.Image, error) {
	if a.fsys == nil {
		return nil, fmt.Errorf("load asset %q: no file system", path)
	}
	f, err := a.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load asset %q: %w", path, err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset %q: %w", path, err)
	}
	return ebiten.NewImageFromImage(src), nil
}
