package imagepkg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#37bac2", want: Opaque(0x37, 0xba, 0xc2)},
		{in: "37BAC2", want: Opaque(0x37, 0xba, 0xc2)},
		{in: "#fff", want: Opaque(0xff, 0xff, 0xff)},
		{in: "#0000001a", want: Color{A: 0x1a}},
		{in: " #d98c49 ", want: Opaque(0xd9, 0x8c, 0x49)},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#37bac2", Opaque(0x37, 0xba, 0xc2).Hex())
	assert.Equal(t, "#ffffff66", Opaque(255, 255, 255).WithAlpha(0.4).Hex())
}

func TestColorJSON(t *testing.T) {
	var v struct {
		C Color `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"c":"#d98c49"}`), &v))
	assert.Equal(t, Opaque(0xd9, 0x8c, 0x49), v.C)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"#d98c49"}`, string(b))
}

func TestColorRGBAIsPremultiplied(t *testing.T) {
	r, g, b, a := Color{R: 255, A: 128}.RGBA()
	assert.Equal(t, uint32(0x8080), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(0x8080), a)
}

func TestLerp(t *testing.T) {
	a, b := Opaque(0, 100, 200), Opaque(100, 0, 200)
	assert.Equal(t, a, lerp(a, b, -1))
	assert.Equal(t, b, lerp(a, b, 2))
	assert.Equal(t, Opaque(50, 50, 200), lerp(a, b, 0.5))
}
