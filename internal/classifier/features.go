package classifier

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"

	_ "golang.org/x/image/bmp"
)

var (
	ErrDecode     = errors.New("frame could not be decoded")
	ErrDegenerate = errors.New("feature computation produced non-finite values")
)

const canonicalSize = 128

// Extractor turns a raw frame into the LayoutColorShape24 vector plus the
// global saturation scalar the heuristic layer keys on. Stateless, safe for
// concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract decodes the frame, resizes it to 128x128 for the descriptor
// statistics, and computes saturation over the whole original frame. Shape
// values fall back to zero when no contour exists; everything else must be
// finite or the frame is rejected.
func (e *Extractor) Extract(frame []byte) (FeatureVector, float64, error) {
	if len(frame) == 0 {
		return nil, 0, ErrDecode
	}

	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	saturation := meanSaturation(img)

	canonical := resize.Resize(canonicalSize, canonicalSize, img, resize.Bilinear)
	red, green, blue := splitRGB(canonical)

	features := make(FeatureVector, 0, FeatureCount)
	for _, channel := range [][]float64{red, green, blue} {
		features = append(features, channelStats(channel)...)
	}

	hue := make([]float64, len(red))
	sat := make([]float64, len(red))
	val := make([]float64, len(red))
	for i := range red {
		hue[i], sat[i], val[i] = rgbToHSV(red[i], green[i], blue[i])
	}

	for _, channel := range [][]float64{hue, sat, val} {
		features = append(features, channelStats(channel)...)
	}

	gray := grayscale(red, green, blue)
	features = append(features, shapeFeatures(gray, canonicalSize, canonicalSize)...)

	for _, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, 0, ErrDegenerate
		}
	}

	if math.IsNaN(saturation) || math.IsInf(saturation, 0) {
		return nil, 0, ErrDegenerate
	}

	return features, saturation, nil
}

func splitRGB(img image.Image) (red, green, blue []float64) {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	red = make([]float64, 0, n)
	green = make([]float64, 0, n)
	blue = make([]float64, 0, n)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			red = append(red, float64(r>>8))
			green = append(green, float64(g>>8))
			blue = append(blue, float64(b>>8))
		}
	}

	return red, green, blue
}

// rgbToHSV uses the 8-bit convention of the original training data: hue in
// [0,180), saturation and value in [0,255].
func rgbToHSV(r, g, b float64) (h, s, v float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v = max

	if max > 0 {
		s = (max - min) / max * 255
	}

	if max == min {
		return 0, s, v
	}

	delta := max - min
	var degrees float64
	switch max {
	case r:
		degrees = 60 * (g - b) / delta
	case g:
		degrees = 120 + 60*(b-r)/delta
	default:
		degrees = 240 + 60*(r-g)/delta
	}

	if degrees < 0 {
		degrees += 360
	}

	return degrees / 2, s, v
}

func grayscale(red, green, blue []float64) []uint8 {
	gray := make([]uint8, len(red))
	for i := range red {
		gray[i] = uint8(math.Round(0.299*red[i] + 0.587*green[i] + 0.114*blue[i]))
	}

	return gray
}

// channelStats returns mean, population std and median, matching how the
// training exporter summarized each channel.
func channelStats(channel []float64) []float64 {
	if len(channel) == 0 {
		return []float64{0, 0, 0}
	}

	var sum float64
	for _, v := range channel {
		sum += v
	}
	mean := sum / float64(len(channel))

	var variance float64
	for _, v := range channel {
		d := v - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(channel)))

	sorted := make([]float64, len(channel))
	copy(sorted, channel)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return []float64{mean, std, median}
}

func meanSaturation(img image.Image) float64 {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	if n == 0 {
		return 0
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			_, s, _ := rgbToHSV(float64(r>>8), float64(g>>8), float64(b>>8))
			sum += s
		}
	}

	return sum / float64(n)
}
