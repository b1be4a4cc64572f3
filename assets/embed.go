package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const sampleRate = 44100

//go:embed *.png *.wav
var assetsFS embed.FS

var (
	audioOnce    sync.Once
	audioContext *audio.Context

	imageMu    sync.Mutex
	imageCache = map[string]*ebiten.Image{}
)

// AudioContext returns the process-wide audio context. Ebiten allows only
// one, so it is created on first use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(sampleRate)
		}
	})
	return audioContext
}

// LoadImage loads an embedded image by assets-relative path. Images are
// cached, so every sprite built from the same file shares one texture.
func LoadImage(path string) (*ebiten.Image, error) {
	clean := cleanAssetPath(path)

	imageMu.Lock()
	defer imageMu.Unlock()
	if img, ok := imageCache[clean]; ok {
		return img, nil
	}

	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	eimg := ebiten.NewImageFromImage(img)
	imageCache[clean] = eimg
	return eimg, nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// LoadAudioPlayer loads an embedded audio asset and creates an audio player.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := AudioContext()
	clean := strings.ToLower(cleanAssetPath(path))
	reader := bytes.NewReader(b)

	if strings.HasSuffix(clean, ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	}

	// Fallback for already-decoded PCM assets in Ebiten's native format.
	return ctx.NewPlayerFromBytes(b), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
