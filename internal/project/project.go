// Package project provides layout file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"layout-maker/internal/curve"
	"layout-maker/internal/dimension"
	"layout-maker/internal/element"
	"layout-maker/pkg/geometry"
)

// CurrentVersion is the layout file format version written by this build.
const CurrentVersion = 2

// Shape is the persisted record of one drawn shape: the room outline or an
// open polyline such as a wall. The SVG path and bounding box are derived
// from the vertices and curves on save and regenerated on every load; they
// are never hand-edited.
type Shape struct {
	Name    string             `json:"name"`
	SVGPath string             `json:"svgPath"`
	Width   float64            `json:"width"`
	Height  float64            `json:"height"`
	Closed  bool               `json:"closed"`
	Verts   []geometry.Point2D `json:"vertices"`

	// Curves is omitted entirely when every edge is straight, keeping the
	// common straight-polygon case compact.
	Curves []curve.Control `json:"curves,omitempty"`
}

// NewShape builds the persisted record from the drawing machine's output.
func NewShape(name string, vertices []geometry.Point2D, curves []curve.Control, closed bool) Shape {
	box := dimension.BoundingBox(vertices)
	s := Shape{
		Name:    name,
		SVGPath: curve.Path(vertices, curves, closed),
		Width:   box.Width,
		Height:  box.Height,
		Closed:  closed,
		Verts:   vertices,
	}
	if closed && !curve.AllNone(curves) {
		s.Curves = curves
	}
	return s
}

// Normalize regenerates the derived fields and repairs the curve list after a
// load: legacy descriptors have already been normalized entry-by-entry, and
// the list is padded or trimmed to one entry per vertex. A shape with fewer
// than three vertices cannot be closed.
func (s *Shape) Normalize() {
	if len(s.Verts) < 3 {
		s.Closed = false
	}
	if s.Closed {
		if !curve.AllNone(s.Curves) {
			s.Curves = curve.NormalizeList(s.Curves, len(s.Verts))
		} else {
			s.Curves = nil
		}
	} else {
		s.Curves = nil
	}

	box := dimension.BoundingBox(s.Verts)
	s.Width = box.Width
	s.Height = box.Height
	s.SVGPath = curve.Path(s.Verts, s.Curves, s.Closed)
}

// Calibration records how an imported plan image maps to meters.
type Calibration struct {
	PixelsPerMeter float64 `json:"pixels_per_meter"`
	// ResidualError is the mean fit error in meters when the calibration came
	// from reference-point matching.
	ResidualError float64 `json:"residual_error,omitempty"`
}

// Settings holds user preferences persisted with the layout.
type Settings struct {
	GridSize       float64 `json:"grid_size,omitempty"`
	AngleIncrement float64 `json:"angle_increment,omitempty"`
	SnapToGrid     bool    `json:"snap_to_grid"`
}

// File represents a layout project file (.layout).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Room is the venue outline.
	Room *Shape `json:"room,omitempty"`

	// Walls are open polylines drawn inside the room.
	Walls []Shape `json:"walls,omitempty"`

	// Elements are the placed tables, stages and similar furniture.
	Elements []element.Placed `json:"elements,omitempty"`

	// UnderlayPath is the scanned plan image, relative to the layout file.
	UnderlayPath string       `json:"underlay,omitempty"`
	Calibration  *Calibration `json:"calibration,omitempty"`

	Settings Settings `json:"settings,omitempty"`
}

// New creates a new layout file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  CurrentVersion,
		Name:     name,
		Created:  now,
		Modified: now,
		Settings: Settings{
			GridSize:       0.5,
			AngleIncrement: 15,
			SnapToGrid:     true,
		},
	}
}

// Load loads a layout from a .layout file and normalizes legacy records.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}

	if f.Room != nil {
		f.Room.Normalize()
	}
	for i := range f.Walls {
		f.Walls[i].Closed = false
		f.Walls[i].Normalize()
	}
	f.Version = CurrentVersion
	return &f, nil
}

// Save saves the layout to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()
	f.Version = CurrentVersion

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SetUnderlay sets the underlay image path, stored relative to the layout
// file when possible.
func (f *File) SetUnderlay(layoutPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(layoutPath), imagePath)
	if err != nil {
		f.UnderlayPath = imagePath
		return
	}
	f.UnderlayPath = rel
}

// GetUnderlayPath returns the absolute path to the underlay image.
func (f *File) GetUnderlayPath(layoutPath string) string {
	if f.UnderlayPath == "" {
		return ""
	}
	if filepath.IsAbs(f.UnderlayPath) {
		return f.UnderlayPath
	}
	return filepath.Join(filepath.Dir(layoutPath), f.UnderlayPath)
}
