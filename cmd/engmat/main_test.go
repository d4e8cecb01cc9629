package main

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat"
)

func memoryLibrary(t *testing.T) *engmat.Library {
	t.Helper()
	lib, err := openLibrary(options{memory: true}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func seedFile(t *testing.T, lib *engmat.Library, path string) {
	t.Helper()
	f, err := lib.OpenFile(path, engmat.ModeWrite)
	require.NoError(t, err)
	require.NoError(t, f.PutDense("A", [][]float64{{1, 2}, {3, 4.5}}))
	require.NoError(t, f.PutDense("b", [][]float64{{7}}))
	require.NoError(t, f.Close())
}

func TestRunMatList(t *testing.T) {
	lib := memoryLibrary(t)
	seedFile(t, lib, "data.mat")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, options{matPath: "data.mat", list: true}, lib))
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "2x2")
	assert.Contains(t, out.String(), "DOUBLE")
}

func TestRunMatGetAndDelete(t *testing.T) {
	lib := memoryLibrary(t)
	seedFile(t, lib, "data.mat")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, options{matPath: "data.mat", get: "A"}, lib))
	assert.Equal(t, "A =\n\n         1         2\n         3       4.5\n", out.String())

	out.Reset()
	require.NoError(t, run(context.Background(), &out, options{matPath: "data.mat", del: "b"}, lib))
	assert.Equal(t, "deleted b from data.mat\n", out.String())

	out.Reset()
	err := run(context.Background(), &out, options{matPath: "data.mat", get: "b"}, lib)
	assert.ErrorIs(t, err, engmat.ErrNotFound)
}

func TestMemoryLibraryPreloadsDemoFile(t *testing.T) {
	lib := memoryLibrary(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, options{matPath: demoFile, list: true}, lib))
	assert.Contains(t, out.String(), "magic")
	assert.Contains(t, out.String(), "3x3")

	out.Reset()
	require.NoError(t, run(context.Background(), &out, options{matPath: demoFile, get: "v"}, lib))
	assert.Equal(t, "v =\n\n         1         2         3\n", out.String())
}

func TestRunMatMissingFile(t *testing.T) {
	lib := memoryLibrary(t)
	err := run(context.Background(), &bytes.Buffer{}, options{matPath: "none.mat"}, lib)
	assert.ErrorIs(t, err, engmat.ErrOpenFailed)
}

func TestRunEval(t *testing.T) {
	lib := memoryLibrary(t)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, options{eval: "disp('hi')"}, lib))
	assert.Equal(t, "hi\n", out.String())
}

func TestOpenLibraryWithoutMATLAB(t *testing.T) {
	lib, err := openLibrary(options{}, zap.NewNop())
	if err == nil {
		_ = lib.Close()
		t.Skip("MATLAB bindings are linked into this build")
	}
	assert.ErrorIs(t, err, engmat.ErrNotBuilt)
	assert.Contains(t, err.Error(), "-memory")
}

func TestFormatRows(t *testing.T) {
	assert.Equal(t, "     []", formatRows(nil))
	assert.Equal(t, "         1      -2.5\n     1e+06         0", formatRows([][]float64{{1, -2.5}, {1e6, 0}}))
}

func TestDimsString(t *testing.T) {
	assert.Equal(t, "2x3x4", dimsString([]int{2, 3, 4}))
	assert.Equal(t, "", dimsString(nil))
}

func TestConsoleEvaluates(t *testing.T) {
	ctx := context.Background()
	lib := memoryLibrary(t)
	e, err := lib.OpenEngine(ctx)
	require.NoError(t, err)
	defer e.Close()

	m := newConsoleModel(ctx, e)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m.input.SetValue("x = 2")
	_, evalCmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, evalCmd)
	assert.True(t, m.busy)
	assert.Empty(t, m.input.Value())

	m.input.SetValue("y = 3")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "enter is ignored while an evaluation runs")
	m.input.Reset()

	m.Update(evalMsgFrom(t, evalCmd))
	assert.False(t, m.busy)
	require.Len(t, m.transcript, 2)
	assert.Contains(t, m.transcript[1], "x =")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "x = 2", m.input.Value())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, m.input.Value())
}

func TestConsoleQuit(t *testing.T) {
	lib := memoryLibrary(t)
	e, err := lib.OpenEngine(context.Background())
	require.NoError(t, err)
	defer e.Close()

	m := newConsoleModel(context.Background(), e)
	m.input.SetValue("exit")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func evalMsgFrom(t *testing.T, cmd tea.Cmd) evalMsg {
	t.Helper()
	msg, ok := cmd().(evalMsg)
	require.True(t, ok)
	return msg
}
