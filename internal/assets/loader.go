// Package assets loads the portal's images and audio clips concurrently.
// Every request yields a Result; a failed asset never aborts the batch.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io/fs"
	"log/slog"

	// Image codecs registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"golang.org/x/sync/errgroup"
)

// placeholderSize is the edge length of the solid square substituted for a
// missing image.
const placeholderSize = 100

// maxInFlight bounds concurrent file reads.
const maxInFlight = 8

// Kind tells the loader how to decode a file.
type Kind int

const (
	KindImage Kind = iota
	KindAudio
)

func (k Kind) String() string {
	if k == KindAudio {
		return "audio"
	}
	return "image"
}

// Request names one file to load.
type Request struct {
	Key  string
	Path string
	Kind Kind
	// Fallback is the placeholder colour for a missing image. A zero alpha
	// means no placeholder: the image is simply absent.
	Fallback color.RGBA
}

// Result is the outcome of one request. Err is non-nil when the file could
// not be read or decoded; Image may still hold a placeholder in that case.
type Result struct {
	Request
	Image       image.Image
	Audio       []byte
	Placeholder bool
	Err         error
}

// Bundle is the joined set of results, keyed by request key.
type Bundle struct {
	results map[string]Result
	order   []string
}

// Image returns the decoded (or placeholder) image for key, or nil.
func (b *Bundle) Image(key string) image.Image {
	if b == nil {
		return nil
	}
	return b.results[key].Image
}

// Audio returns the raw encoded clip for key, or nil when it failed to load.
func (b *Bundle) Audio(key string) []byte {
	if b == nil {
		return nil
	}
	return b.results[key].Audio
}

// Result returns the full result for key.
func (b *Bundle) Result(key string) (Result, bool) {
	if b == nil {
		return Result{}, false
	}
	r, ok := b.results[key]
	return r, ok
}

// Results returns all results in request order.
func (b *Bundle) Results() []Result {
	out := make([]Result, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.results[k])
	}
	return out
}

// Failed returns the results that carry an error.
func (b *Bundle) Failed() []Result {
	var out []Result
	for _, r := range b.Results() {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Loader reads assets from a filesystem.
type Loader struct {
	fsys fs.FS
	log  *slog.Logger
}

// NewLoader creates a loader over fsys. A nil logger discards output.
func NewLoader(fsys fs.FS, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{fsys: fsys, log: logger}
}

// Load fetches every request concurrently and joins them. The only error it
// returns is context cancellation; per-asset failures live in the Bundle.
func (l *Loader) Load(ctx context.Context, reqs []Request) (*Bundle, error) {
	results := make([]Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = l.loadOne(req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}

	b := &Bundle{results: make(map[string]Result, len(reqs)), order: make([]string, 0, len(reqs))}
	for _, r := range results {
		if _, dup := b.results[r.Key]; !dup {
			b.order = append(b.order, r.Key)
		}
		b.results[r.Key] = r
	}
	return b, nil
}

func (l *Loader) loadOne(req Request) Result {
	res := Result{Request: req}
	data, err := fs.ReadFile(l.fsys, req.Path)
	if err == nil && req.Kind == KindImage {
		res.Image, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			err = fmt.Errorf("decode %s: %w", req.Path, err)
		}
	} else if err == nil {
		res.Audio = data
	}
	if err != nil {
		res.Err = err
		l.log.Warn("asset unavailable", "asset", req.Path, "kind", req.Kind.String(), "err", err)
		if req.Kind == KindImage && req.Fallback.A != 0 {
			res.Image = Placeholder(req.Fallback)
			res.Placeholder = true
		}
	}
	return res
}

// Placeholder returns a solid square of colour c.
func Placeholder(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}
