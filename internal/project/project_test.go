package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"layout-maker/internal/curve"
	"layout-maker/internal/element"
	"layout-maker/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

var rectangle = []geometry.Point2D{pt(0, 0), pt(4, 0), pt(4, 3), pt(0, 3)}

func TestNewShapeStraightPolygon(t *testing.T) {
	s := NewShape("Main Hall", rectangle, make([]curve.Control, 4), true)

	assert.Equal(t, 4.0, s.Width)
	assert.Equal(t, 3.0, s.Height)
	assert.True(t, s.Closed)
	assert.Equal(t, "M 0 0 L 4 0 L 4 3 L 0 3 L 0 0 Z", s.SVGPath)
	assert.Nil(t, s.Curves, "all-straight shapes omit the curve array")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"curves"`)
}

func TestNewShapeKeepsCurvesWhenPresent(t *testing.T) {
	curves := make([]curve.Control, 4)
	curves[1] = curve.Arc(curve.DirectionLeft)

	s := NewShape("Curved Hall", rectangle, curves, true)
	require.Len(t, s.Curves, 4)
	assert.Contains(t, s.SVGPath, " A ")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wedding.layout")

	f := New("Smith Wedding")
	room := NewShape("Ballroom", rectangle, nil, true)
	f.Room = &room
	f.Elements = []element.Placed{
		element.NewPlaced("el-1", element.RoundTable(), pt(2, 1.5)),
	}
	require.NoError(t, f.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, loaded.Version)
	assert.Equal(t, "Smith Wedding", loaded.Name)
	require.NotNil(t, loaded.Room)
	assert.Equal(t, rectangle, loaded.Room.Verts)
	assert.Equal(t, room.SVGPath, loaded.Room.SVGPath)
	require.Len(t, loaded.Elements, 1)
	assert.Equal(t, element.CenterAnchor, loaded.Elements[0].Anchor)
}

func TestLoadNormalizesLegacyCurves(t *testing.T) {
	// A version-1 file stored bezier controls as bare points and had no
	// cached path or width/height.
	legacy := `{
		"version": 1,
		"name": "Old Layout",
		"room": {
			"name": "Hall",
			"closed": true,
			"vertices": [{"x":0,"y":0},{"x":4,"y":0},{"x":4,"y":3},{"x":0,"y":3}],
			"curves": [{"x":2,"y":-1}]
		}
	}`
	dir := t.TempDir()
	path := filepath.Join(dir, "old.layout")
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, f.Room)

	require.Len(t, f.Room.Curves, 4, "curve list padded to one entry per vertex")
	assert.Equal(t, curve.Bezier(pt(2, -1)), f.Room.Curves[0])
	assert.True(t, f.Room.Curves[3].IsNone())

	assert.Equal(t, 4.0, f.Room.Width)
	assert.Equal(t, 3.0, f.Room.Height)
	assert.True(t, strings.HasPrefix(f.Room.SVGPath, "M 0 0 Q 2 -1 4 0"))
}

func TestNormalizeDegenerateShape(t *testing.T) {
	s := Shape{Name: "stub", Closed: true, Verts: rectangle[:2]}
	s.Normalize()

	assert.False(t, s.Closed, "two vertices cannot form a closed shape")
	assert.Nil(t, s.Curves)
	assert.Equal(t, "M 0 0 L 4 0", s.SVGPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.layout"))
	assert.Error(t, err)
}

func TestUnderlayPathHelpers(t *testing.T) {
	f := New("With Scan")
	layoutPath := filepath.Join("/venues", "hall", "plan.layout")

	f.SetUnderlay(layoutPath, filepath.Join("/venues", "hall", "scans", "floor.png"))
	assert.Equal(t, filepath.Join("scans", "floor.png"), f.UnderlayPath)
	assert.Equal(t,
		filepath.Join("/venues", "hall", "scans", "floor.png"),
		f.GetUnderlayPath(layoutPath))

	f.UnderlayPath = ""
	assert.Equal(t, "", f.GetUnderlayPath(layoutPath))
}
