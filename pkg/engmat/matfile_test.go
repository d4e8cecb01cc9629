package engmat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat"
)

func writeFile(t *testing.T, lib *engmat.Library, path string, vars map[string][][]float64, order ...string) {
	t.Helper()
	f, err := lib.OpenFile(path, engmat.ModeWrite)
	require.NoError(t, err)
	for _, name := range order {
		require.NoError(t, f.PutDense(name, vars[name]))
	}
	require.NoError(t, f.Close())
}

func TestMatFileRoundTrip(t *testing.T) {
	lib, mem := openMemory(t)
	want := [][]float64{{1, 2, 3}, {4, 5, 6}}
	writeFile(t, lib, "rt.mat", map[string][][]float64{"A": want}, "A")

	f, err := lib.OpenFile("rt.mat", engmat.ModeRead)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetDense("A")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	m, err := f.GetMatrix("A")
	require.NoError(t, err)
	defer m.Close()
	assert.Equal(t, 6.0, m.At(1, 2))

	require.NoError(t, m.Close())
	require.NoError(t, f.Close())
	assert.Zero(t, mem.LiveArrays())
}

func TestMatFileModeRules(t *testing.T) {
	lib, mem := openMemory(t)
	writeFile(t, lib, "ro.mat", map[string][][]float64{"a": {{1}}}, "a")

	ro, err := lib.OpenFile("ro.mat", engmat.ModeRead)
	require.NoError(t, err)
	defer ro.Close()

	assert.ErrorIs(t, ro.PutDense("b", [][]float64{{2}}), engmat.ErrModeNotPermitted)
	m, err := lib.NewMatrix(1, 1)
	require.NoError(t, err)
	defer m.Close()
	assert.ErrorIs(t, ro.PutMatrix("b", m), engmat.ErrModeNotPermitted)
	assert.ErrorIs(t, ro.DeleteMatrix("a"), engmat.ErrModeNotPermitted)
	assert.Equal(t, []string{"a"}, mem.FileVariables("ro.mat"))

	wo, err := lib.OpenFile("wo.mat", engmat.ModeWrite)
	require.NoError(t, err)
	defer wo.Close()
	require.NoError(t, wo.PutMatrix("b", m))

	_, err = wo.GetMatrix("b")
	assert.ErrorIs(t, err, engmat.ErrModeNotPermitted)
	_, err = wo.GetDense("b")
	assert.ErrorIs(t, err, engmat.ErrModeNotPermitted)
	_, err = wo.Info("b")
	assert.ErrorIs(t, err, engmat.ErrModeNotPermitted)
	_, err = wo.Variables()
	assert.ErrorIs(t, err, engmat.ErrModeNotPermitted)
	assert.ErrorIs(t, wo.Reopen(), engmat.ErrModeNotPermitted)
	assert.True(t, wo.IsOpen(), "refused reopen must not close the file")
}

func TestMatFileVariablesIsRepeatable(t *testing.T) {
	lib, _ := openMemory(t)
	writeFile(t, lib, "vars.mat", map[string][][]float64{
		"x": {{1, 2, 3}},
		"y": {{1}, {2}},
		"z": {{7}},
	}, "x", "y", "z")

	f, err := lib.OpenFile("vars.mat", engmat.ModeRead)
	require.NoError(t, err)
	defer f.Close()

	first, err := f.Variables()
	require.NoError(t, err)
	second, err := f.Variables()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, first, 3)
	assert.Equal(t, "Matrix x: 1x3 DOUBLE", first[0].String())
	assert.Equal(t, "Matrix y: 2x1 DOUBLE", first[1].String())
	assert.Equal(t, "Matrix z: 1x1 DOUBLE", first[2].String())

	_, err = f.Info("y")
	require.NoError(t, err)
	third, err := f.Variables()
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestMatFileVariablesReopensClosedFile(t *testing.T) {
	lib, _ := openMemory(t)
	writeFile(t, lib, "c.mat", map[string][][]float64{"a": {{1}}}, "a")

	f, err := lib.OpenFile("c.mat", engmat.ModeUpdate)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	vars, err := f.Variables()
	require.NoError(t, err)
	require.Len(t, vars, 1)
	assert.True(t, f.IsOpen())
	require.NoError(t, f.Close())
}

func TestMatFileInfo(t *testing.T) {
	lib, mem := openMemory(t)
	writeFile(t, lib, "info.mat", map[string][][]float64{"w": {{1, 2}, {3, 4}, {5, 6}}}, "w")

	f, err := lib.OpenFile("info.mat", engmat.ModeRead)
	require.NoError(t, err)
	defer f.Close()

	d, err := f.Info("w")
	require.NoError(t, err)
	assert.Equal(t, engmat.MatrixDescription{Name: "w", Rows: 3, Cols: 2, Class: engmat.ClassDouble, Dims: []int{3, 2}}, d)
	assert.Zero(t, mem.LiveArrays())

	_, err = f.Info("missing")
	assert.ErrorIs(t, err, engmat.ErrNotFound)
	_, err = f.GetMatrix("missing")
	assert.ErrorIs(t, err, engmat.ErrNotFound)
}

func TestMatFileOpenMissingRemembersTarget(t *testing.T) {
	lib, _ := openMemory(t)
	f := lib.NewFile()

	err := f.Open("later.mat", engmat.ModeRead)
	assert.ErrorIs(t, err, engmat.ErrOpenFailed)
	assert.False(t, f.IsOpen())
	assert.Equal(t, "later.mat", f.Path())
	assert.Equal(t, engmat.ModeRead, f.Mode())

	writeFile(t, lib, "later.mat", map[string][][]float64{"a": {{1}}}, "a")
	require.NoError(t, f.Reopen())
	assert.True(t, f.IsOpen())
	require.NoError(t, f.Close())
}

func TestMatFileOpenTwice(t *testing.T) {
	lib, _ := openMemory(t)
	f, err := lib.OpenFile("twice.mat", engmat.ModeWrite)
	require.NoError(t, err)
	defer f.Close()

	assert.ErrorIs(t, f.Open("other.mat", engmat.ModeWrite), engmat.ErrAlreadyOpen)
	assert.Equal(t, "twice.mat", f.Path())
}

func TestMatFileOpenInvalidMode(t *testing.T) {
	lib, _ := openMemory(t)
	_, err := lib.OpenFile("bad.mat", engmat.Mode(42))
	assert.ErrorIs(t, err, engmat.ErrModeNotPermitted)
}

func TestMatFileUpdateAndDelete(t *testing.T) {
	lib, mem := openMemory(t)
	writeFile(t, lib, "u.mat", map[string][][]float64{"a": {{1}}, "b": {{2}}}, "a", "b")

	f, err := lib.OpenFile("u.mat", engmat.ModeUpdate)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.PutDense("a", [][]float64{{10, 20}}))
	require.NoError(t, f.DeleteMatrix("b"))
	assert.ErrorIs(t, f.DeleteMatrix("b"), engmat.ErrNativeCall)
	assert.Equal(t, []string{"a"}, mem.FileVariables("u.mat"))

	got, err := f.GetDense("a")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{10, 20}}, got)
}

func TestMatFileWrite4RejectsIntegers(t *testing.T) {
	lib, _ := openMemory(t)
	f, err := lib.OpenFile("v4.mat", engmat.ModeWrite4)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.PutDense("d", [][]float64{{1}}))

	m, err := lib.NewTypedMatrix(1, 1, engmat.ClassInt32)
	require.NoError(t, err)
	defer m.Close()
	assert.ErrorIs(t, f.PutMatrix("i", m), engmat.ErrNativeCall)
}

func TestMatFileGetDenseTypeMismatch(t *testing.T) {
	lib, _ := openMemory(t)
	f, err := lib.OpenFile("typed.mat", engmat.ModeWrite)
	require.NoError(t, err)
	m, err := lib.NewTypedMatrix(2, 2, engmat.ClassUint16)
	require.NoError(t, err)
	defer m.Close()
	require.NoError(t, f.PutMatrix("u", m))
	require.NoError(t, f.Close())

	f, err = lib.OpenFile("typed.mat", engmat.ModeRead)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.GetDense("u")
	assert.ErrorIs(t, err, engmat.ErrTypeMismatch)

	vars, err := f.Variables()
	require.NoError(t, err)
	require.Len(t, vars, 1)
	assert.Equal(t, "UINT16", vars[0].TypeName())
}

func TestMatFileDoubleClose(t *testing.T) {
	lib, mem := openMemory(t)
	f, err := lib.OpenFile("close.mat", engmat.ModeWrite)
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	stats := mem.Stats()
	assert.Equal(t, 1, stats.FilesClosed)
	assert.Zero(t, stats.InvalidFileCloses)

	assert.False(t, f.IsOpen())
	assert.ErrorIs(t, f.PutDense("a", [][]float64{{1}}), engmat.ErrClosed)
	_, err = f.GetMatrix("a")
	assert.ErrorIs(t, err, engmat.ErrClosed)
}

func TestMatFileNilMatrix(t *testing.T) {
	lib, _ := openMemory(t)
	f, err := lib.OpenFile("nil.mat", engmat.ModeWrite)
	require.NoError(t, err)
	defer f.Close()

	assert.ErrorIs(t, f.PutMatrix("a", nil), engmat.ErrNilMatrix)
}

func TestMatFileLegacyTransfer(t *testing.T) {
	lib, mem := openMemoryWith(t, engmat.Config{Transfer: engmat.TransferLegacy})
	writeFile(t, lib, "legacy.mat", map[string][][]float64{"p": {{1, 2}}, "q": {{3}}}, "p", "q")
	assert.Equal(t, []string{"p", "q"}, mem.FileVariables("legacy.mat"))

	f, err := lib.OpenFile("legacy.mat", engmat.ModeUpdate)
	require.NoError(t, err)
	defer f.Close()

	vars, err := f.Variables()
	require.NoError(t, err)
	require.Len(t, vars, 2)
	assert.Equal(t, "p", vars[0].Name)
	assert.Equal(t, "q", vars[1].Name)

	d, err := f.Info("q")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Rows)

	got, err := f.GetDense("p")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}}, got)

	require.NoError(t, f.DeleteMatrix("p"))
	assert.Equal(t, []string{"q"}, mem.FileVariables("legacy.mat"))
}

func TestParseMode(t *testing.T) {
	for _, mode := range []engmat.Mode{engmat.ModeRead, engmat.ModeUpdate, engmat.ModeWrite, engmat.ModeWrite4} {
		got, err := engmat.ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	_, err := engmat.ParseMode("rw")
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", engmat.Mode(9).String())
}
