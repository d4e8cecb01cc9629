package memnative

import (
	"fmt"
	"sort"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

type engine struct {
	startcmd string
	visible  bool
	dead     bool
	out      native.Buffer
	outLen   int
	ws       Workspace
}

// Evaluator runs one expression against an engine workspace and returns what
// MATLAB would print. A non-nil error is printed as an error message; like
// engEvalString, evaluation still reports success to the caller.
//
// Evaluators run with the Library lock held and must not call back into it.
type Evaluator func(ws *Workspace, expr string) (string, error)

// Workspace is the variable table of one in-memory engine.
type Workspace struct {
	vars map[string]*array
}

// Names returns the sorted variable names.
func (w *Workspace) Names() []string {
	names := make([]string, 0, len(w.vars))
	for name := range w.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Doubles returns a copy of a double variable in column-major order.
func (w *Workspace) Doubles(name string) (rows, cols int, data []float64, ok bool) {
	a, ok := w.vars[name]
	if !ok || a.class != native.ClassDouble {
		return 0, 0, nil, false
	}
	return a.dims[0], numel(a.dims[1:]), decodeDoubles(a.data), true
}

// SetDoubles stores a rows x cols double variable from column-major data.
func (w *Workspace) SetDoubles(name string, rows, cols int, data []float64) {
	a := newArray([]int{rows, cols}, native.ClassDouble, native.Real)
	copy(a.data, encodeDoubles(data))
	a.name = name
	w.vars[name] = a
}

// Delete removes a variable and reports whether it existed.
func (w *Workspace) Delete(name string) bool {
	_, ok := w.vars[name]
	delete(w.vars, name)
	return ok
}

// Clear removes every variable.
func (w *Workspace) Clear() {
	clear(w.vars)
}

func (l *Library) EngOpen(startcmd string) native.Engine {
	if l.failEngineOpen {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	e := native.Engine(l.handle())
	l.engines[e] = &engine{
		startcmd: startcmd,
		ws:       Workspace{vars: make(map[string]*array)},
	}
	l.stats.EnginesOpened++
	return e
}

// Kill simulates the MATLAB process going away: later calls on e fail.
func (l *Library) Kill(e native.Engine) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if en, ok := l.engines[e]; ok {
		en.dead = true
	}
}

// live returns the engine for e if it is open and running. Callers hold l.mu.
func (l *Library) live(e native.Engine) *engine {
	en, ok := l.engines[e]
	if !ok || en.dead {
		return nil
	}
	return en
}

func (l *Library) EngClose(e native.Engine) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.engines[e]; !ok {
		if e != 0 {
			l.stats.InvalidEngineCloses++
		}
		return failed
	}
	delete(l.engines, e)
	l.stats.EnginesClosed++
	return 0
}

func (l *Library) EngEvalString(e native.Engine, cmd string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	en := l.live(e)
	if en == nil {
		return failed
	}
	out, err := l.eval(&en.ws, cmd)
	if err != nil {
		out = fmt.Sprintf("Error: %v\n", err)
	}
	if buf, ok := l.buffers[en.out]; ok && en.outLen > 0 {
		n := min(en.outLen, len(buf))
		clear(buf[:n])
		copy(buf[:n-1], out)
	}
	return 0
}

func (l *Library) EngSetVisible(e native.Engine, visible bool) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	en := l.live(e)
	if en == nil {
		return failed
	}
	en.visible = visible
	return 0
}

func (l *Library) EngGetVisible(e native.Engine) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	en := l.live(e)
	if en == nil {
		return false, failed
	}
	return en.visible, 0
}

// EngOutputBuffer redirects output into buf. A zero buf or n turns capture
// off.
func (l *Library) EngOutputBuffer(e native.Engine, buf native.Buffer, n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	en := l.live(e)
	if en == nil {
		return failed
	}
	if buf == 0 || n <= 0 {
		en.out, en.outLen = 0, 0
		return 0
	}
	en.out, en.outLen = buf, n
	return 0
}

func (l *Library) EngPutVariable(e native.Engine, name string, h native.Array) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	en := l.live(e)
	a, ok := l.arrays[h]
	if en == nil || !ok || name == "" {
		return failed
	}
	cp := a.clone()
	cp.name = name
	en.ws.vars[name] = cp
	return 0
}

func (l *Library) EngGetVariable(e native.Engine, name string) native.Array {
	l.mu.Lock()
	defer l.mu.Unlock()
	en := l.live(e)
	if en == nil {
		return 0
	}
	a, ok := en.ws.vars[name]
	if !ok {
		return 0
	}
	return l.adopt(a.clone())
}

func (l *Library) EngPutArray(e native.Engine, h native.Array) int {
	l.mu.Lock()
	a, ok := l.arrays[h]
	l.mu.Unlock()
	if !ok {
		return failed
	}
	return l.EngPutVariable(e, a.name, h)
}

func (l *Library) EngGetArray(e native.Engine, name string) native.Array {
	return l.EngGetVariable(e, name)
}
