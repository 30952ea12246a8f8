// Package fonts provides the font faces used to rasterize charts.
//
// The Go fonts ship inside golang.org/x/image, so PNG output needs no system
// fonts. SVG output names the same family with a sans-serif fallback.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family for SVG output.
const FontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

var (
	parseOnce     sync.Once
	regular, bold *truetype.Font
	parseErr      error

	facesMu sync.Mutex
	faces   = map[faceKey]font.Face{}
)

type faceKey struct {
	size float64
	bold bool
}

func parse() {
	regular, parseErr = truetype.Parse(goregular.TTF)
	if parseErr != nil {
		return
	}
	bold, parseErr = truetype.Parse(gobold.TTF)
}

// Face returns a cached face of the given point size. A non-positive size
// uses 10.
func Face(size float64, isBold bool) (font.Face, error) {
	parseOnce.Do(parse)
	if parseErr != nil {
		return nil, parseErr
	}
	if size <= 0 {
		size = 10
	}
	key := faceKey{size, isBold}

	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[key]; ok {
		return f, nil
	}
	f := regular
	if isBold {
		f = bold
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
	faces[key] = face
	return face, nil
}
