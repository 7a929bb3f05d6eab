package app

import (
	"path/filepath"
	"testing"

	"layout-maker/internal/floorplan"
	"layout-maker/internal/interaction"
	"layout-maker/internal/snap"
	"layout-maker/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func drawRoom(t *testing.T, s *State) {
	t.Helper()
	require.True(t, s.Machine.CommitPoint(pt(0, 0), false))
	require.True(t, s.Machine.CommitPoint(pt(4, 0), false))
	require.True(t, s.Machine.CommitPoint(pt(4, 3), false))
	require.True(t, s.Machine.CommitPoint(pt(0, 3), false))
	require.True(t, s.Machine.CommitPoint(pt(0, 0), true))
}

func TestCommitRoom(t *testing.T) {
	s := NewState()

	var roomEvents int
	s.On(EventRoomChanged, func(interface{}) { roomEvents++ })

	require.Error(t, s.CommitRoom("Hall"), "empty machine cannot commit")

	drawRoom(t, s)
	require.NoError(t, s.CommitRoom("Hall"))

	room := s.Room()
	require.NotNil(t, room)
	assert.Equal(t, "Hall", room.Name)
	assert.Equal(t, 4.0, room.Width)
	assert.Equal(t, 3.0, room.Height)
	assert.Equal(t, 1, roomEvents)
	assert.True(t, s.Modified)
	assert.Equal(t, 0, s.Machine.VertexCount(), "machine resets after commit")
}

func TestCommitWall(t *testing.T) {
	s := NewState()
	s.Machine.CommitPoint(pt(0, 0), false)
	require.Error(t, s.CommitWall("Divider"))

	s.Machine.CommitPoint(pt(5, 0), false)
	require.NoError(t, s.CommitWall("Divider"))
	assert.Len(t, s.Layout.Walls, 1)
	assert.False(t, s.Layout.Walls[0].Closed)
}

func TestEditRoomRoundTrip(t *testing.T) {
	s := NewState()
	drawRoom(t, s)
	require.NoError(t, s.CommitRoom("Hall"))

	require.NoError(t, s.EditRoom())
	assert.True(t, s.Machine.Closed())
	assert.Equal(t, 4, s.Machine.VertexCount())
}

func TestAddRemoveElements(t *testing.T) {
	s := NewState()

	placed, err := s.AddElement("table-round", pt(2, 2))
	require.NoError(t, err)
	assert.Equal(t, "el-1", placed.ID)

	_, err = s.AddElement("bad-type", pt(0, 0))
	assert.Error(t, err)

	second, err := s.AddElement("stage", pt(1, 1))
	require.NoError(t, err)
	assert.Equal(t, "el-2", second.ID)
	assert.Len(t, s.Elements(), 2)

	assert.True(t, s.RemoveElement("el-1"))
	assert.False(t, s.RemoveElement("el-1"))
	assert.Len(t, s.Elements(), 1)
}

func TestSaveAndLoadLayout(t *testing.T) {
	s := NewState()
	drawRoom(t, s)
	require.NoError(t, s.CommitRoom("Hall"))
	_, err := s.AddElement("dance-floor", pt(2, 1.5))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "venue.layout")
	require.NoError(t, s.SaveLayout(path))
	assert.False(t, s.Modified)

	loaded := NewState()
	require.NoError(t, loaded.LoadLayout(path))
	require.NotNil(t, loaded.Room())
	assert.Equal(t, "Hall", loaded.Room().Name)
	assert.Len(t, loaded.Elements(), 1)

	// IDs continue past the loaded elements
	next, err := loaded.AddElement("bar", pt(0, 0))
	require.NoError(t, err)
	assert.Equal(t, "el-2", next.ID)
}

func TestSetCalibration(t *testing.T) {
	s := NewState()
	var events int
	s.On(EventCalibrationChanged, func(interface{}) { events++ })

	s.SetCalibration(floorplan.CalibrationResult{PixelsPerMeter: 120, ResidualMeters: 0.02})

	require.NotNil(t, s.Layout.Calibration)
	assert.Equal(t, 120.0, s.Layout.Calibration.PixelsPerMeter)
	assert.Equal(t, 1, events)
}

func TestRoomOutlineFromScanRequiresUnderlay(t *testing.T) {
	s := NewState()
	err := s.RoomOutlineFromScan(floorplan.DefaultOutlineOptions())
	assert.Error(t, err)
}

func TestLoadLayoutAppliesSnapSettings(t *testing.T) {
	s := NewState()
	s.Layout.Settings.GridSize = 0.25
	s.Layout.Settings.AngleIncrement = 45
	s.Layout.Settings.SnapToGrid = false

	path := filepath.Join(t.TempDir(), "venue.layout")
	require.NoError(t, s.SaveLayout(path))

	loaded := NewState()
	require.NoError(t, loaded.LoadLayout(path))

	cfg := loaded.Snap.Config()
	assert.Equal(t, 0.0, cfg.GridSize, "grid snap disabled by settings")
	assert.Equal(t, 45.0, cfg.AngleIncrement)
}

func TestResetClearsLayout(t *testing.T) {
	s := NewState()
	drawRoom(t, s)
	require.NoError(t, s.CommitRoom("Hall"))

	s.Reset()

	assert.Nil(t, s.Room())
	assert.Empty(t, s.LayoutPath)
	assert.False(t, s.Modified)
	assert.Equal(t, snap.DefaultConfig(), s.Snap.Config())
}

func TestLoadLayoutKeepsMachineInstance(t *testing.T) {
	s := NewState()
	drawRoom(t, s)
	require.NoError(t, s.CommitRoom("Hall"))

	path := filepath.Join(t.TempDir(), "venue.layout")
	require.NoError(t, s.SaveLayout(path))

	machine := s.Machine
	session := interaction.NewSession(s.Machine, s.Snap)

	require.NoError(t, s.LoadLayout(path))
	assert.Same(t, machine, s.Machine, "load must not swap the machine out from under the UI")
	assert.Equal(t, 0, s.Machine.VertexCount())

	// Gestures routed through a session built before the load still land
	// in the machine the renderer draws.
	_, committed := session.Tap(pt(1, 1))
	require.True(t, committed)
	assert.Equal(t, 1, s.Machine.VertexCount())

	s.Reset()
	assert.Same(t, machine, s.Machine)
	assert.Equal(t, 0, s.Machine.VertexCount())
}

func TestElementIDsSkipSurvivorsAfterLoad(t *testing.T) {
	s := NewState()
	for i := 0; i < 3; i++ {
		_, err := s.AddElement("table-round", pt(float64(i), 0))
		require.NoError(t, err)
	}
	require.True(t, s.RemoveElement("el-2"))

	path := filepath.Join(t.TempDir(), "venue.layout")
	require.NoError(t, s.SaveLayout(path))

	loaded := NewState()
	require.NoError(t, loaded.LoadLayout(path))
	require.Len(t, loaded.Elements(), 2)

	next, err := loaded.AddElement("bar", pt(0, 0))
	require.NoError(t, err)
	assert.Equal(t, "el-4", next.ID, "minted IDs must clear the highest surviving suffix")
}
