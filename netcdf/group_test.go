package netcdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

func TestAddDimension(t *testing.T) {
	f, _ := createFile(t)

	x, err := f.AddDimension("x", 4)
	require.NoError(t, err)
	assert.Equal(t, Dimension{ID: 0, Name: "x", Size: 4}, x)
	assert.False(t, x.IsUnlimited())

	rec, err := f.AddUnlimitedDimension("time")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ID)
	assert.True(t, rec.IsUnlimited())
	assert.Equal(t, "time = UNLIMITED ; // (0 currently)", rec.String())
	assert.Equal(t, "x = 4 ;", x.String())

	_, err = f.AddDimension("empty", 0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	got, err := f.Dimension("time")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Equal(t, []string{"x", "time"}, f.DimensionNames())
}

func TestFailedDefinitionLeavesGroupUntouched(t *testing.T) {
	f, _ := createFile(t)
	_, err := f.AddDimension("x", 2)
	require.NoError(t, err)
	_, err = f.AddVariable("v", []string{"x"}, TypeInt)
	require.NoError(t, err)
	_, err = f.AddGroup("sub")
	require.NoError(t, err)

	tests := []struct {
		name string
		want nc.Status
		run  func() error
	}{
		{"duplicate dimension", nc.ErrNameInUse, func() error { _, err := f.AddDimension("x", 3); return err }},
		{"bad dimension name", nc.ErrBadName, func() error { _, err := f.AddDimension("a/b", 3); return err }},
		{"duplicate variable", nc.ErrNameInUse, func() error { _, err := f.AddVariable("v", nil, TypeInt); return err }},
		{"string variable", nc.ErrBadType, func() error { _, err := f.AddVariable("s", []string{"x"}, TypeString); return err }},
		{"duplicate group", nc.ErrNameInUse, func() error { _, err := f.AddGroup("sub"); return err }},
		{"bad group name", nc.ErrBadName, func() error { _, err := f.AddGroup(""); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireIOError(t, tt.want, tt.run())
			// The failed definition still hands the file back in data mode.
			assert.Equal(t, ModeData, f.Mode())
		})
	}

	assert.Equal(t, []string{"x"}, f.DimensionNames())
	assert.Equal(t, []string{"v"}, f.VariableNames())
	assert.Equal(t, []string{"sub"}, f.GroupNames())
	d, err := f.Dimension("x")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), d.Size)
	require.NoError(t, Write(f.vars["v"], []int32{1, 2}))
}

func TestAddVariable(t *testing.T) {
	f, _ := createFile(t)
	_, err := f.AddUnlimitedDimension("time")
	require.NoError(t, err)
	_, err = f.AddDimension("lat", 3)
	require.NoError(t, err)

	v, err := f.AddVariable("temp", []string{"time", "lat"}, TypeFloat)
	require.NoError(t, err)
	assert.Equal(t, "temp", v.Name())
	assert.Equal(t, 0, v.ID())
	assert.Equal(t, "/temp", v.Path())
	assert.Equal(t, TypeFloat, v.Type())
	assert.Equal(t, 2, v.Rank())
	assert.Equal(t, "float temp(time, lat) ;", v.String())

	dims := v.Dimensions()
	require.Len(t, dims, 2)
	assert.True(t, dims[0].Unlimited)
	assert.False(t, dims[1].Unlimited)
	dims[0].Name = "changed"
	assert.Equal(t, "time", v.Dimensions()[0].Name)

	shape, err := v.Shape()
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 3}, shape)
	size, err := v.Size()
	require.NoError(t, err)
	assert.Zero(t, size)

	s, err := f.AddVariable("scalar", nil, TypeDouble)
	require.NoError(t, err)
	assert.Equal(t, 1, s.ID())
	assert.Equal(t, "double scalar ;", s.String())
	size, err = s.Size()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), size)
}

func TestAddVariableUndefinedDimension(t *testing.T) {
	f, _ := createFile(t)
	require.NoError(t, f.ModeController().EnterData())

	_, err := f.AddVariable("v", []string{"nope"}, TypeInt)
	assert.ErrorIs(t, err, ErrUndefinedDimension)
	assert.ErrorIs(t, err, ErrNameNotFound)
	// The engine was never asked to change.
	assert.Equal(t, ModeData, f.Mode())
	assert.False(t, f.HasVariable("v"))
}

func TestNameLookup(t *testing.T) {
	f, _ := createFile(t)
	_, err := f.AddDimension("x", 1)
	require.NoError(t, err)
	v, err := f.AddVariable("v", []string{"x"}, TypeByte)
	require.NoError(t, err)
	g, err := f.AddGroup("g")
	require.NoError(t, err)

	assert.True(t, f.HasDimension("x"))
	assert.True(t, f.HasVariable("v"))
	assert.True(t, f.HasGroup("g"))
	assert.False(t, f.HasDimension("v"))
	assert.False(t, f.HasVariable("g"))
	assert.False(t, f.HasGroup("x"))

	gotV, err := f.Variable("v")
	require.NoError(t, err)
	assert.Same(t, v, gotV)
	gotG, err := f.Group("g")
	require.NoError(t, err)
	assert.Same(t, g, gotG)

	for _, err := range []error{
		func() error { _, err := f.Dimension("missing"); return err }(),
		func() error { _, err := f.Variable("missing"); return err }(),
		func() error { _, err := f.Group("missing"); return err }(),
	} {
		assert.ErrorIs(t, err, ErrNameNotFound)
	}
}

func TestNamesAreCopies(t *testing.T) {
	f, _ := createFile(t)
	_, err := f.AddGroup("a")
	require.NoError(t, err)

	names := f.GroupNames()
	names[0] = "mutated"
	assert.Equal(t, []string{"a"}, f.GroupNames())
}

// buildTree creates /, /forecast and /forecast/hourly with dimensions and
// variables spread over the levels.
func buildTree(t *testing.T) string {
	t.Helper()
	f, path := createFile(t)
	_, err := f.AddUnlimitedDimension("time")
	require.NoError(t, err)
	_, err = f.AddDimension("station", 2)
	require.NoError(t, err)
	_, err = f.AddVariable("station_id", []string{"station"}, TypeInt)
	require.NoError(t, err)

	forecast, err := f.AddGroup("forecast")
	require.NoError(t, err)
	_, err = forecast.AddDimension("level", 3)
	require.NoError(t, err)
	_, err = forecast.AddVariable("pressure", []string{"level"}, TypeFloat)
	require.NoError(t, err)

	hourly, err := forecast.AddGroup("hourly")
	require.NoError(t, err)
	wind, err := hourly.AddVariable("wind", []string{"time", "station", "level"}, TypeDouble)
	require.NoError(t, err)
	require.NoError(t, WriteSlab(wind, []uint64{1, 0, 0}, []uint64{1, 2, 3},
		[]float64{1, 2, 3, 4, 5, 6}))

	_, err = f.AddGroup("analysis")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return path
}

func TestNestedGroupsSurviveReopen(t *testing.T) {
	path := buildTree(t)
	f := reopen(t, path, ReadOnly)

	assert.Equal(t, []string{"forecast", "analysis"}, f.GroupNames())
	assert.Equal(t, []string{"time", "station"}, f.DimensionNames())
	assert.Equal(t, []string{"station_id"}, f.VariableNames())

	forecast, err := f.Group("forecast")
	require.NoError(t, err)
	assert.Equal(t, "forecast", forecast.Name())
	assert.Equal(t, "/forecast", forecast.FullPath())
	assert.Same(t, f.Root(), forecast.Parent())
	assert.Nil(t, f.Parent())
	assert.NotEqual(t, f.ID(), forecast.ID())
	assert.Equal(t, []string{"level"}, forecast.DimensionNames())
	assert.Equal(t, []string{"hourly"}, forecast.GroupNames())

	hourly, err := forecast.Group("hourly")
	require.NoError(t, err)
	assert.Equal(t, "/forecast/hourly", hourly.FullPath())
	assert.Empty(t, hourly.DimensionNames())

	wind, err := hourly.Variable("wind")
	require.NoError(t, err)
	assert.Equal(t, "/forecast/hourly/wind", wind.Path())
	dims := wind.Dimensions()
	require.Len(t, dims, 3)
	assert.Equal(t, "time", dims[0].Name)
	assert.True(t, dims[0].Unlimited)
	assert.Equal(t, "level", dims[2].Name)
	assert.False(t, dims[2].Unlimited)

	shape, err := wind.Shape()
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 2, 3}, shape)
	got := make([]float64, 6)
	require.NoError(t, ReadSlab(wind, []uint64{1, 0, 0}, []uint64{1, 2, 3}, got))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, got)

	// The reloaded time dimension is still flagged unlimited.
	time, err := f.Dimension("time")
	require.NoError(t, err)
	assert.True(t, time.IsUnlimited())
}

func TestPaths(t *testing.T) {
	f := reopen(t, buildTree(t), ReadOnly)

	for _, p := range []string{"forecast/hourly", "/forecast/hourly", "forecast//hourly/"} {
		g, err := f.GroupByPath(p)
		require.NoError(t, err, p)
		assert.Equal(t, "/forecast/hourly", g.FullPath())
	}
	root, err := f.GroupByPath("/")
	require.NoError(t, err)
	assert.Same(t, f.Root(), root)

	v, err := f.VariableByPath("/forecast/hourly/wind")
	require.NoError(t, err)
	assert.Equal(t, TypeDouble, v.Type())

	forecast, err := f.Group("forecast")
	require.NoError(t, err)
	v, err = forecast.VariableByPath("pressure")
	require.NoError(t, err)
	assert.Equal(t, "/forecast/pressure", v.Path())

	_, err = f.VariableByPath("/")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = f.VariableByPath("forecast/missing")
	assert.ErrorIs(t, err, ErrNameNotFound)
	_, err = f.GroupByPath("forecast/nope/hourly")
	assert.ErrorIs(t, err, ErrNameNotFound)
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		path  string
		parts []string
		clean string
	}{
		{"/", []string{}, "/"},
		{"", []string{}, "/"},
		{"/foo", []string{"foo"}, "/foo"},
		{"foo//bar/", []string{"foo", "bar"}, "/foo/bar"},
		{"/a/b/c", []string{"a", "b", "c"}, "/a/b/c"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.parts, SplitPath(tt.path))
			assert.Equal(t, tt.clean, CleanPath(tt.path))
		})
	}
}

func TestWalk(t *testing.T) {
	f := reopen(t, buildTree(t), ReadOnly)

	var visited []string
	err := f.Walk(func(path string, obj any) error {
		switch obj.(type) {
		case *Group:
			visited = append(visited, "G "+path)
		case *Variable:
			visited = append(visited, "V "+path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"G /",
		"V /station_id",
		"G /forecast",
		"V /forecast/pressure",
		"G /forecast/hourly",
		"V /forecast/hourly/wind",
		"G /analysis",
	}, visited)
}

func TestWalkSkipAndStop(t *testing.T) {
	f := reopen(t, buildTree(t), ReadOnly)

	var visited []string
	err := Walk(f.Root(), func(path string, obj any) error {
		visited = append(visited, path)
		if path == "/forecast" {
			return SkipGroup
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/station_id", "/forecast", "/analysis"}, visited)

	visited = nil
	err = f.Walk(func(path string, obj any) error {
		visited = append(visited, path)
		if _, ok := obj.(*Variable); ok {
			return ErrStopWalk
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/station_id"}, visited)

	boom := errors.New("boom")
	err = f.Walk(func(path string, obj any) error {
		if path == "/forecast/pressure" {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
