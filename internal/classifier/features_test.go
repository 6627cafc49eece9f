package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image/color"
)

func TestExtractor_SolidColorStats(t *testing.T) {
	extractor := NewExtractor()
	frame := solidFrame(t, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	features, saturation, err := extractor.Extract(frame)
	require.NoError(t, err)
	require.Len(t, features, FeatureCount)

	// Channel blocks are mean/std/median per channel, red first.
	assert.InDelta(t, 200, features[0], 1e-6)
	assert.InDelta(t, 0, features[1], 1e-6)
	assert.InDelta(t, 200, features[2], 1e-6)
	assert.InDelta(t, 100, features[3], 1e-6)
	assert.InDelta(t, 50, features[6], 1e-6)

	// Hue block: max is red, 60*(100-50)/150 degrees halved.
	assert.InDelta(t, 10, features[9], 1e-6)
	assert.InDelta(t, 0, features[10], 1e-6)

	// Saturation block and the standalone scalar agree on a solid frame.
	assert.InDelta(t, 191.25, features[12], 1e-6)
	assert.InDelta(t, 191.25, saturation, 1e-6)

	// Value block.
	assert.InDelta(t, 200, features[15], 1e-6)
}

func TestExtractor_BlackFrameHasNoContour(t *testing.T) {
	extractor := NewExtractor()
	frame := solidFrame(t, color.RGBA{A: 255})

	features, saturation, err := extractor.Extract(frame)
	require.NoError(t, err)

	assert.InDelta(t, 0, saturation, 1e-6)
	for i := 18; i < 24; i++ {
		assert.Zero(t, features[i])
	}
}

func TestExtractor_WhiteFrameShapeBlock(t *testing.T) {
	extractor := NewExtractor()
	frame := solidFrame(t, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	features, _, err := extractor.Extract(frame)
	require.NoError(t, err)

	// The contour of a full 128x128 frame is the 127x127 border square.
	assert.InDelta(t, 1.6129, features[18], 1e-4)
	assert.InDelta(t, 0.508, features[19], 1e-4)
	assert.InDelta(t, 0.7854, features[20], 1e-3)
	assert.InDelta(t, 1.0, features[21], 1e-6)
	assert.InDelta(t, 1.0, features[22], 1e-6)
	assert.InDelta(t, 1.6129, features[23], 1e-4)
}

func TestExtractor_DecodeFailures(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name  string
		frame []byte
	}{
		{name: "nil frame", frame: nil},
		{name: "empty frame", frame: []byte{}},
		{name: "not an image", frame: []byte("totem says hello")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := extractor.Extract(tt.frame)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{name: "pure red", r: 255, h: 0, s: 255, v: 255},
		{name: "pure green", g: 255, h: 60, s: 255, v: 255},
		{name: "pure blue", b: 255, h: 120, s: 255, v: 255},
		{name: "white has no saturation", r: 255, g: 255, b: 255, h: 0, s: 0, v: 255},
		{name: "black is all zero", h: 0, s: 0, v: 0},
		{name: "mid gray", r: 128, g: 128, b: 128, h: 0, s: 0, v: 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := rgbToHSV(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.h, h, 1e-6)
			assert.InDelta(t, tt.s, s, 1e-6)
			assert.InDelta(t, tt.v, v, 1e-6)
		})
	}
}

func TestChannelStats(t *testing.T) {
	stats := channelStats([]float64{1, 2, 3, 4})

	assert.InDelta(t, 2.5, stats[0], 1e-9)
	assert.InDelta(t, 1.118033988749895, stats[1], 1e-9)
	assert.InDelta(t, 2.5, stats[2], 1e-9)
}

func TestShapeFeatures_CenteredSquare(t *testing.T) {
	const w, h = 128, 128
	gray := make([]uint8, w*h)
	for y := 32; y <= 95; y++ {
		for x := 32; x <= 95; x++ {
			gray[y*w+x] = 255
		}
	}

	shape := shapeFeatures(gray, w, h)

	assert.InDelta(t, 0.3969, shape[0], 1e-4) // 63*63 shoelace area
	assert.InDelta(t, 0.252, shape[1], 1e-4)  // 4*63 perimeter
	assert.InDelta(t, 0.7854, shape[2], 1e-3)
	assert.InDelta(t, 1.0, shape[3], 1e-6)
	assert.InDelta(t, 1.0, shape[4], 1e-6)
	assert.InDelta(t, 0.3969, shape[5], 1e-4)
}

func TestShapeFeatures_PicksLargestComponent(t *testing.T) {
	const w, h = 64, 64
	gray := make([]uint8, w*h)

	// A lone pixel far from a 20x20 block.
	gray[2*w+2] = 255
	for y := 30; y < 50; y++ {
		for x := 30; x < 50; x++ {
			gray[y*w+x] = 255
		}
	}

	shape := shapeFeatures(gray, w, h)

	// 19*19 shoelace area of the block, not the lone pixel.
	assert.InDelta(t, 19*19/10000.0, shape[0], 1e-6)
	assert.InDelta(t, 1.0, shape[3], 1e-6)
}

func TestShapeFeatures_SinglePixel(t *testing.T) {
	const w, h = 8, 8
	gray := make([]uint8, w*h)
	gray[3*w+3] = 255

	shape := shapeFeatures(gray, w, h)

	assert.Zero(t, shape[0])
	assert.Zero(t, shape[1])
	assert.Zero(t, shape[2])
	assert.InDelta(t, 1.0, shape[3], 1e-6)
	assert.Zero(t, shape[4])
	assert.Zero(t, shape[5])
}

func TestShapeFeatures_EmptyMask(t *testing.T) {
	shape := shapeFeatures(make([]uint8, 16*16), 16, 16)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, shape)
}
