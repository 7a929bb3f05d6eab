// Package app provides application state, events, and lifecycle management.
package app

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"layout-maker/internal/curve"
	"layout-maker/internal/draw"
	"layout-maker/internal/element"
	"layout-maker/internal/floorplan"
	"layout-maker/internal/project"
	"layout-maker/internal/snap"
	"layout-maker/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventLayoutLoaded EventType = iota
	EventLayoutSaved
	EventModified
	EventRoomChanged
	EventWallsChanged
	EventElementsChanged
	EventUnderlayLoaded
	EventCalibrationChanged
	EventSelectionChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the open layout, the active drawing
// machine, the snap engine, and the optional scanned underlay.
type State struct {
	mu sync.RWMutex

	LayoutPath string
	Modified   bool

	Layout  *project.File
	Machine *draw.Machine
	Snap    *snap.Engine

	Underlay *floorplan.Underlay

	nextElementID int

	listeners map[EventType][]EventListener
}

// NewState creates a new application state with an empty layout.
func NewState() *State {
	return &State{
		Layout:    project.New("Untitled Layout"),
		Machine:   draw.NewMachine(),
		Snap:      snap.NewEngine(snap.DefaultConfig()),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the layout as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadLayout loads a layout from the specified path, including its underlay
// image when one is referenced and still readable.
func (s *State) LoadLayout(path string) error {
	f, err := project.Load(path)
	if err != nil {
		return err
	}

	var underlay *floorplan.Underlay
	if p := f.GetUnderlayPath(path); p != "" {
		underlay, err = floorplan.LoadUnderlay(p)
		if err != nil {
			// A missing scan should not block opening the layout.
			underlay = nil
		}
		if underlay != nil && f.Calibration != nil {
			underlay.PixelsPerMeter = f.Calibration.PixelsPerMeter
		}
	}

	s.mu.Lock()
	s.LayoutPath = path
	s.Layout = f
	s.Machine.Clear()
	s.Underlay = underlay
	s.Modified = false
	s.nextElementID = highestElementID(f.Elements)
	s.Snap.SetConfig(snapConfigFrom(f.Settings))
	s.mu.Unlock()

	s.Emit(EventLayoutLoaded, path)
	if underlay != nil {
		s.Emit(EventUnderlayLoaded, underlay)
	}
	return nil
}

// Reset discards the open layout and starts a fresh one.
func (s *State) Reset() {
	s.mu.Lock()
	s.LayoutPath = ""
	s.Layout = project.New("Untitled Layout")
	s.Machine.Clear()
	s.Underlay = nil
	s.Modified = false
	s.nextElementID = 0
	s.Snap.SetConfig(snap.DefaultConfig())
	s.mu.Unlock()

	s.Emit(EventLayoutLoaded, "")
}

// highestElementID returns the largest numeric suffix among placed element
// IDs, so that IDs minted after a load never collide with survivors of
// earlier removals.
func highestElementID(els []element.Placed) int {
	max := 0
	for _, el := range els {
		n, err := strconv.Atoi(strings.TrimPrefix(el.ID, "el-"))
		if err == nil && n > max {
			max = n
		}
	}
	return max
}

// snapConfigFrom maps a layout's saved drawing settings onto snap tolerances.
// Unset values fall back to the defaults; SnapToGrid false disables the grid.
func snapConfigFrom(set project.Settings) snap.Config {
	cfg := snap.DefaultConfig()
	if set.GridSize > 0 {
		cfg.GridSize = set.GridSize
	}
	if set.AngleIncrement > 0 {
		cfg.AngleIncrement = set.AngleIncrement
	}
	if !set.SnapToGrid {
		cfg.GridSize = 0
	}
	return cfg
}

// SaveLayout saves the current layout to the specified path.
func (s *State) SaveLayout(path string) error {
	s.mu.RLock()
	f := s.Layout
	s.mu.RUnlock()

	if f == nil {
		return fmt.Errorf("no layout to save")
	}
	if err := f.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.LayoutPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventLayoutSaved, path)
	return nil
}

// CommitRoom converts the drawing machine's closed shape into the layout's
// room record. The machine must pass its can-save predicate first.
func (s *State) CommitRoom(name string) error {
	s.mu.Lock()
	if !s.Machine.CanSaveShape() {
		s.mu.Unlock()
		return fmt.Errorf("shape is not ready to save")
	}
	room := project.NewShape(name, s.Machine.Vertices(), s.Machine.Curves(), true)
	s.Layout.Room = &room
	s.Machine.Clear()
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventRoomChanged, &room)
	return nil
}

// CommitWall converts the machine's open polyline into a wall record.
func (s *State) CommitWall(name string) error {
	s.mu.Lock()
	if !s.Machine.CanSavePolyline() {
		s.mu.Unlock()
		return fmt.Errorf("polyline is not ready to save")
	}
	wall := project.NewShape(name, s.Machine.Vertices(), nil, false)
	s.Layout.Walls = append(s.Layout.Walls, wall)
	s.Machine.Clear()
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventWallsChanged, wall)
	return nil
}

// EditRoom loads the saved room back into the drawing machine so the user
// can continue editing it.
func (s *State) EditRoom() error {
	s.mu.Lock()
	room := s.Layout.Room
	if room == nil {
		s.mu.Unlock()
		return fmt.Errorf("layout has no room shape")
	}
	s.Machine.Load(room.Verts, room.Curves, room.Closed)
	s.mu.Unlock()
	return nil
}

// LoadUnderlayFile loads a scanned plan image and attaches it to the layout.
// A previously saved calibration is applied to the new underlay.
func (s *State) LoadUnderlayFile(path string) error {
	underlay, err := floorplan.LoadUnderlay(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.Layout.Calibration != nil {
		underlay.PixelsPerMeter = s.Layout.Calibration.PixelsPerMeter
	}
	s.Underlay = underlay
	s.Layout.SetUnderlay(s.LayoutPath, path)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventUnderlayLoaded, path)
	return nil
}

// RoomOutlineFromScan runs outline detection over the loaded underlay and
// loads the result into the drawing machine as a closed shape.
func (s *State) RoomOutlineFromScan(opts floorplan.OutlineOptions) error {
	s.mu.RLock()
	underlay := s.Underlay
	s.mu.RUnlock()

	if underlay == nil || underlay.Image == nil {
		return fmt.Errorf("no plan image loaded")
	}
	if underlay.PixelsPerMeter <= 0 {
		return fmt.Errorf("underlay is not calibrated")
	}

	outline, err := floorplan.DetectOutline(underlay.Image, opts)
	if err != nil {
		return err
	}
	room := floorplan.OutlineToMeters(outline, underlay.PixelsPerMeter)

	s.mu.Lock()
	s.Machine.Load(room, nil, len(room) >= draw.MinCloseVertices)
	s.mu.Unlock()
	return nil
}

// SetCalibration records a fitted calibration on the layout and underlay.
func (s *State) SetCalibration(res floorplan.CalibrationResult) {
	s.mu.Lock()
	s.Layout.Calibration = &project.Calibration{
		PixelsPerMeter: res.PixelsPerMeter,
		ResidualError:  res.ResidualMeters,
	}
	if s.Underlay != nil {
		s.Underlay.PixelsPerMeter = res.PixelsPerMeter
	}
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventCalibrationChanged, res)
}

// AddElement places a catalog element into the layout at the given room
// position in meters.
func (s *State) AddElement(typeID string, position geometry.Point2D) (element.Placed, error) {
	def, ok := element.ByID(typeID)
	if !ok {
		return element.Placed{}, fmt.Errorf("unknown element type %q", typeID)
	}

	s.mu.Lock()
	s.nextElementID++
	placed := element.NewPlaced(fmt.Sprintf("el-%d", s.nextElementID), def, position)
	s.Layout.Elements = append(s.Layout.Elements, placed)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventElementsChanged, placed)
	return placed, nil
}

// RemoveElement deletes a placed element by ID. Returns false if not found.
func (s *State) RemoveElement(id string) bool {
	s.mu.Lock()
	found := false
	els := s.Layout.Elements
	for i, el := range els {
		if el.ID == id {
			s.Layout.Elements = append(els[:i], els[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.SetModified(true)
		s.Emit(EventElementsChanged, nil)
	}
	return found
}

// Elements returns a copy of the placed elements.
func (s *State) Elements() []element.Placed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]element.Placed, len(s.Layout.Elements))
	copy(out, s.Layout.Elements)
	return out
}

// Walls returns a copy of the saved wall polylines.
func (s *State) Walls() []project.Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]project.Shape, len(s.Layout.Walls))
	copy(out, s.Layout.Walls)
	return out
}

// Room returns the saved room shape, or nil.
func (s *State) Room() *project.Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Layout.Room
}

// RoomCurves returns the saved room's curve list padded to its vertex count.
func (s *State) RoomCurves() []curve.Control {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Layout.Room == nil {
		return nil
	}
	return curve.NormalizeList(s.Layout.Room.Curves, len(s.Layout.Room.Verts))
}
