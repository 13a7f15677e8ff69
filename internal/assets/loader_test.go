package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/Garsondee/Storm-Portal/internal/config"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoad_DecodesImagesAndKeepsAudioBytes(t *testing.T) {
	fsys := fstest.MapFS{
		"icon.png":    {Data: pngBytes(t, 16, 8)},
		"thunder.mp3": {Data: []byte("ID3fake")},
	}
	l := NewLoader(fsys, nil)
	b, err := l.Load(context.Background(), []Request{
		{Key: "icon", Path: "icon.png", Kind: KindImage},
		{Key: "thunder", Path: "thunder.mp3", Kind: KindAudio},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	img := b.Image("icon")
	if img == nil || img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Fatalf("expected 16x8 image, got %v", img)
	}
	if string(b.Audio("thunder")) != "ID3fake" {
		t.Fatalf("audio bytes not preserved: %q", b.Audio("thunder"))
	}
	if len(b.Failed()) != 0 {
		t.Fatalf("expected no failures, got %d", len(b.Failed()))
	}
}

func TestLoad_MissingImageGetsPlaceholder(t *testing.T) {
	glow := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	b, err := NewLoader(fstest.MapFS{}, nil).Load(context.Background(), []Request{
		{Key: "about", Path: "about.png", Kind: KindImage, Fallback: glow},
		{Key: "sidewalk", Path: "sidewalk.png", Kind: KindImage},
	})
	if err != nil {
		t.Fatalf("load must not fail on missing files: %v", err)
	}
	r, ok := b.Result("about")
	if !ok || r.Err == nil || !r.Placeholder {
		t.Fatalf("expected placeholder result with error, got %+v", r)
	}
	if got := color.RGBAModel.Convert(r.Image.At(50, 50)); got != glow {
		t.Fatalf("placeholder colour: want %v got %v", glow, got)
	}
	if r.Image.Bounds().Dx() != placeholderSize {
		t.Fatalf("placeholder size: got %d", r.Image.Bounds().Dx())
	}
	if b.Image("sidewalk") != nil {
		t.Fatal("request without fallback must stay nil")
	}
	if len(b.Failed()) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(b.Failed()))
	}
}

func TestLoad_CorruptImageIsReportedNotFatal(t *testing.T) {
	fsys := fstest.MapFS{"bad.png": {Data: []byte("not a png")}}
	b, err := NewLoader(fsys, nil).Load(context.Background(), []Request{
		{Key: "bad", Path: "bad.png", Kind: KindImage},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r, _ := b.Result("bad"); r.Err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(fstest.MapFS{}, nil).Load(ctx, []Request{{Key: "a", Path: "a.png"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_ResultsKeepRequestOrder(t *testing.T) {
	reqs := []Request{
		{Key: "c", Path: "c.mp3", Kind: KindAudio},
		{Key: "a", Path: "a.mp3", Kind: KindAudio},
		{Key: "b", Path: "b.mp3", Kind: KindAudio},
	}
	b, err := NewLoader(fstest.MapFS{}, nil).Load(context.Background(), reqs)
	if err != nil {
		t.Fatal(err)
	}
	got := b.Results()
	for i, r := range got {
		if r.Key != reqs[i].Key {
			t.Fatalf("result %d: want %s got %s", i, reqs[i].Key, r.Key)
		}
	}
}

func TestManifest_CoversSectionsAndGlitchVariants(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}
	reqs := Manifest(cfg)
	keys := map[string]Request{}
	for _, r := range reqs {
		keys[r.Key] = r
	}
	for _, s := range cfg.Sections {
		r, ok := keys[SectionKey(s.ID)]
		if !ok {
			t.Fatalf("missing icon request for %s", s.ID)
		}
		if r.Fallback.A == 0 {
			t.Errorf("section %s icon must have a placeholder colour", s.ID)
		}
	}
	for i := 0; i < GlitchVariants; i++ {
		if _, ok := keys[GlitchSpriteKey(i)]; !ok {
			t.Errorf("missing glitch sprite %d", i)
		}
		if _, ok := keys[GlitchSoundKey(i)]; !ok {
			t.Errorf("missing glitch sound %d", i)
		}
	}
	if _, ok := keys[SectionMediaKey("portfolio")]; !ok {
		t.Error("portfolio media clip not requested")
	}
	if keys[GlitchSpriteKey(0)].Path != "glitch-1.png" {
		t.Errorf("glitch files are 1-based, got %s", keys[GlitchSpriteKey(0)].Path)
	}
}
