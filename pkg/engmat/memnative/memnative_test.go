package memnative_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/memnative"
	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

func TestArrayLifecycle(t *testing.T) {
	lib := memnative.New()

	a := lib.CreateDoubleMatrix(2, 3, native.Real)
	require.NotZero(t, a)
	assert.Equal(t, 2, lib.GetM(a))
	assert.Equal(t, 3, lib.GetN(a))
	assert.Equal(t, native.ClassDouble, lib.GetClassID(a))
	assert.Equal(t, 6, lib.GetNumberOfElements(a))
	assert.False(t, lib.IsEmpty(a))

	assert.Equal(t, 6, lib.SetDoubles(a, []float64{1, 2, 3, 4, 5, 6, 7}))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, lib.GetDoubles(a))
	assert.Equal(t, 4.0, lib.GetDoubleAt(a, 3))

	lib.DestroyArray(a)
	lib.DestroyArray(a)

	stats := lib.Stats()
	assert.Equal(t, 1, stats.ArraysCreated)
	assert.Equal(t, 1, stats.ArraysDestroyed)
	assert.Equal(t, 1, stats.InvalidDestroys)
	assert.Zero(t, lib.LiveArrays())
}

func TestCreateRejectsNonNumericClass(t *testing.T) {
	lib := memnative.New()
	assert.Zero(t, lib.CreateNumericMatrix(1, 1, native.ClassUnknown, native.Real))
	assert.Zero(t, lib.CreateNumericArray([]int{1, 1, 3}, native.ClassCell, native.Real))
	assert.Zero(t, lib.CreateDoubleMatrix(-1, 2, native.Real))
}

func TestNumericArrayDims(t *testing.T) {
	lib := memnative.New()

	a := lib.CreateNumericArray([]int{4, 5, 3}, native.ClassUint8, native.Real)
	require.NotZero(t, a)
	defer lib.DestroyArray(a)
	assert.Equal(t, []int{4, 5, 3}, lib.GetDimensions(a))
	assert.Equal(t, 15, lib.GetN(a))
	assert.Len(t, lib.GetBytes(a), 60)
	assert.Nil(t, lib.GetDoubles(a))

	b := lib.CreateNumericArray([]int{4, 5, 1}, native.ClassDouble, native.Real)
	require.NotZero(t, b)
	defer lib.DestroyArray(b)
	assert.Equal(t, []int{4, 5}, lib.GetDimensions(b))
}

func TestMatFileModes(t *testing.T) {
	lib := memnative.New()

	assert.Zero(t, lib.MatOpen("missing.mat", "r"))
	assert.Zero(t, lib.MatOpen("missing.mat", "u"))
	assert.Zero(t, lib.MatOpen("x.mat", "bogus"))

	f := lib.MatOpen("x.mat", "w")
	require.NotZero(t, f)

	a := lib.CreateDoubleMatrix(1, 1, native.Real)
	defer lib.DestroyArray(a)
	lib.SetDoubles(a, []float64{42})

	assert.Zero(t, lib.MatPutVariable(f, "answer", a))
	assert.Zero(t, lib.MatGetVariable(f, "answer"), "write-only handle must not read")
	assert.Zero(t, lib.MatClose(f))
	assert.NotZero(t, lib.MatClose(f))

	r := lib.MatOpen("x.mat", "r")
	require.NotZero(t, r)
	defer lib.MatClose(r)
	assert.NotZero(t, lib.MatPutVariable(r, "other", a))
	assert.NotZero(t, lib.MatDeleteVariable(r, "answer"))

	got := lib.MatGetVariable(r, "answer")
	require.NotZero(t, got)
	defer lib.DestroyArray(got)
	assert.Equal(t, []float64{42}, lib.GetDoubles(got))
	assert.Equal(t, []string{"answer"}, lib.FileVariables("x.mat"))

	stats := lib.Stats()
	assert.Equal(t, 1, stats.InvalidFileCloses)
}

func TestMatV4RejectsIntegerClasses(t *testing.T) {
	lib := memnative.New()
	f := lib.MatOpen("v4.mat", "w4")
	require.NotZero(t, f)
	defer lib.MatClose(f)

	a := lib.CreateNumericMatrix(2, 2, native.ClassInt32, native.Real)
	defer lib.DestroyArray(a)
	assert.NotZero(t, lib.MatPutVariable(f, "ints", a))

	d := lib.CreateDoubleMatrix(2, 2, native.Real)
	defer lib.DestroyArray(d)
	assert.Zero(t, lib.MatPutVariable(f, "dbl", d))
}

func TestNextVariableInfoWalksInFileOrder(t *testing.T) {
	lib := memnative.New()
	f := lib.MatOpen("walk.mat", "w")
	for _, name := range []string{"b", "a", "c"} {
		a := lib.CreateDoubleMatrix(1, 2, native.Real)
		require.Zero(t, lib.MatPutVariable(f, name, a))
		lib.DestroyArray(a)
	}
	require.Zero(t, lib.MatClose(f))

	u := lib.MatOpen("walk.mat", "u")
	require.NotZero(t, u)
	defer lib.MatClose(u)

	var names []string
	for {
		h, name := lib.MatGetNextVariableInfo(u)
		if h == 0 {
			break
		}
		assert.Nil(t, lib.GetDoubles(h), "headers carry no data")
		assert.Equal(t, 2, lib.GetN(h))
		lib.DestroyArray(h)
		names = append(names, name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)

	require.Zero(t, lib.MatDeleteVariable(u, "a"))
	assert.Equal(t, []string{"b", "c"}, lib.FileVariables("walk.mat"))
	assert.Zero(t, lib.LiveArrays())
}

func TestEngineOutputBuffer(t *testing.T) {
	lib := memnative.New()
	e := lib.EngOpen("")
	require.NotZero(t, e)
	defer lib.EngClose(e)

	buf := lib.AllocBuffer(8)
	require.NotZero(t, buf)
	defer lib.FreeBuffer(buf)

	require.Zero(t, lib.EngOutputBuffer(e, buf, 8))
	require.Zero(t, lib.EngEvalString(e, "disp('truncated output')"))
	assert.Equal(t, "truncat", lib.BufferString(buf, 8))

	require.Zero(t, lib.EngOutputBuffer(e, 0, 0))
	require.Zero(t, lib.EngEvalString(e, "disp('ignored')"))
	assert.Equal(t, "truncat", lib.BufferString(buf, 8))
}

func TestEngineVariablesAndKill(t *testing.T) {
	lib := memnative.New()
	e := lib.EngOpen("matlab -nodisplay")
	require.NotZero(t, e)

	require.Zero(t, lib.EngEvalString(e, "m = [1 2; 3 4];"))
	assert.Equal(t, []string{"m"}, lib.EngineVariables(e))

	h := lib.EngGetVariable(e, "m")
	require.NotZero(t, h)
	assert.Equal(t, []float64{1, 3, 2, 4}, lib.GetDoubles(h))
	lib.DestroyArray(h)

	assert.Zero(t, lib.EngGetVariable(e, "nope"))

	lib.Kill(e)
	assert.NotZero(t, lib.EngEvalString(e, "x = 1"))
	assert.Zero(t, lib.EngClose(e))
	assert.NotZero(t, lib.EngClose(e))
	assert.Equal(t, 1, lib.Stats().InvalidEngineCloses)
}

func TestEngineOpenFailure(t *testing.T) {
	lib := memnative.New(memnative.WithEngineOpenFailure())
	assert.Zero(t, lib.EngOpen(""))
}

func TestLegacyTransferUsesArrayName(t *testing.T) {
	lib := memnative.New()
	e := lib.EngOpen("")
	defer lib.EngClose(e)

	a := lib.CreateDoubleMatrix(1, 1, native.Real)
	defer lib.DestroyArray(a)
	assert.NotZero(t, lib.EngPutArray(e, a), "unnamed arrays cannot be transferred")

	require.Zero(t, lib.SetName(a, "v"))
	assert.Equal(t, "v", lib.GetName(a))
	require.Zero(t, lib.EngPutArray(e, a))
	assert.Equal(t, []string{"v"}, lib.EngineVariables(e))
}
