package render

import (
	"github.com/stretchr/testify/assert"
	"github.com/swdee/go-poseoverlay/topology"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {

	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "green", want: color.RGBA{R: 0, G: 128, B: 0, A: 255}},
		{in: " Lime ", want: color.RGBA{R: 0, G: 255, B: 0, A: 255}},
		{in: "#00ff00", want: color.RGBA{R: 0, G: 255, B: 0, A: 255}},
		{in: "#f80", want: color.RGBA{R: 255, G: 136, B: 0, A: 255}},
		{in: "#ffffff80", want: color.RGBA{R: 128, G: 128, B: 128, A: 128}},
		{in: "notacolor", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseColor(tc.in)

		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}

		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestCOCOPalettes(t *testing.T) {
	assert.Len(t, KeyPointColors(), topology.COCOKeyPoints)
	assert.Len(t, LimbColors(), topology.COCO17().Len())
}
