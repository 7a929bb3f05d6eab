package floorplan

import (
	"testing"

	"layout-maker/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func TestTwoPointScale(t *testing.T) {
	scale, err := TwoPointScale(pt(100, 100), pt(100, 600), 5)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, scale, 1e-9)

	_, err = TwoPointScale(pt(0, 0), pt(0, 0), 5)
	assert.Error(t, err)

	_, err = TwoPointScale(pt(0, 0), pt(10, 0), 0)
	assert.Error(t, err)
}

func TestFitCalibrationExact(t *testing.T) {
	// pixel = 50*real + (100, 200)
	pairs := []ReferencePair{
		{Pixel: pt(100, 200), Real: pt(0, 0)},
		{Pixel: pt(600, 200), Real: pt(10, 0)},
		{Pixel: pt(100, 450), Real: pt(0, 5)},
	}

	res, err := FitCalibration(pairs)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, res.PixelsPerMeter, 1e-9)
	assert.InDelta(t, 0.0, res.ResidualMeters, 1e-9)
}

func TestFitCalibrationNoisy(t *testing.T) {
	pairs := []ReferencePair{
		{Pixel: pt(102, 198), Real: pt(0, 0)},
		{Pixel: pt(598, 203), Real: pt(10, 0)},
		{Pixel: pt(99, 452), Real: pt(0, 5)},
		{Pixel: pt(603, 449), Real: pt(10, 5)},
	}

	res, err := FitCalibration(pairs)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, res.PixelsPerMeter, 1.0)
	assert.Greater(t, res.ResidualMeters, 0.0)
	assert.Less(t, res.ResidualMeters, 0.2)
}

func TestFitCalibrationTooFewPairs(t *testing.T) {
	_, err := FitCalibration([]ReferencePair{{Pixel: pt(0, 0), Real: pt(0, 0)}})
	assert.Error(t, err)
}

func TestOutlineToMeters(t *testing.T) {
	outline := []geometry.Point2D{pt(100, 100), pt(500, 100), pt(500, 400), pt(100, 400)}

	room := OutlineToMeters(outline, 100)
	require.Len(t, room, 4)
	assert.Equal(t, pt(0, 0), room[0])
	assert.Equal(t, pt(4, 0), room[1])
	assert.Equal(t, pt(4, 3), room[2])

	assert.Nil(t, OutlineToMeters(outline, 0))
	assert.Nil(t, OutlineToMeters(nil, 100))
}

func TestParseDimensionText(t *testing.T) {
	labels := ParseDimensionText("HALL A  12.5 m x 8m\nceiling 450 cm, door 900mm")
	require.Len(t, labels, 4)

	assert.Equal(t, "12.5 m", labels[0].Text)
	assert.InDelta(t, 12.5, labels[0].Meters, 1e-9)
	assert.InDelta(t, 8.0, labels[1].Meters, 1e-9)
	assert.InDelta(t, 4.5, labels[2].Meters, 1e-9)
	assert.InDelta(t, 0.9, labels[3].Meters, 1e-9)
}

func TestParseDimensionTextCommaDecimal(t *testing.T) {
	labels := ParseDimensionText("breedte 7,25 m")
	require.Len(t, labels, 1)
	assert.InDelta(t, 7.25, labels[0].Meters, 1e-9)
}

func TestParseDimensionTextNoMatches(t *testing.T) {
	assert.Empty(t, ParseDimensionText("grand ballroom east wing"))
}

func TestSuggestScale(t *testing.T) {
	scale, err := SuggestScale(DimensionLabel{Text: "10 m", Meters: 10}, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, scale, 1e-9)

	_, err = SuggestScale(DimensionLabel{}, 1000)
	assert.Error(t, err)
	_, err = SuggestScale(DimensionLabel{Meters: 10}, 0)
	assert.Error(t, err)
}
