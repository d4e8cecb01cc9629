package memnative

import (
	"sort"
	"sync"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

const failed = 1

// Library is an in-memory native.Library. Arrays, engines, open files and
// output buffers live in handle tables; saved MAT files live in a map keyed
// by path that survives close and reopen.
type Library struct {
	mu   sync.Mutex
	next uintptr

	arrays  map[native.Array]*array
	buffers map[native.Buffer][]byte
	engines map[native.Engine]*engine
	files   map[native.File]*openFile
	disk    map[string]*storedFile

	eval           Evaluator
	failEngineOpen bool

	stats Stats
}

var _ native.Library = (*Library)(nil)

// Stats counts acquisitions and releases per handle kind. Invalid* counts
// releases of handles that were already released or never issued.
type Stats struct {
	ArraysCreated   int
	ArraysDestroyed int
	InvalidDestroys int

	EnginesOpened       int
	EnginesClosed       int
	InvalidEngineCloses int

	FilesOpened       int
	FilesClosed       int
	InvalidFileCloses int

	BuffersAllocated   int
	BuffersFreed       int
	InvalidBufferFrees int
}

// Option configures a Library.
type Option func(*Library)

// WithEvaluator replaces the expression evaluator used by EngEvalString.
func WithEvaluator(ev Evaluator) Option {
	return func(l *Library) { l.eval = ev }
}

// WithEngineOpenFailure makes EngOpen return a null handle.
func WithEngineOpenFailure() Option {
	return func(l *Library) { l.failEngineOpen = true }
}

// New returns an empty Library with DefaultEvaluator.
func New(opts ...Option) *Library {
	l := &Library{
		next:    0x1000,
		arrays:  make(map[native.Array]*array),
		buffers: make(map[native.Buffer][]byte),
		engines: make(map[native.Engine]*engine),
		files:   make(map[native.File]*openFile),
		disk:    make(map[string]*storedFile),
		eval:    DefaultEvaluator,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// handle hands out a fresh non-zero handle value. Callers hold l.mu.
func (l *Library) handle() uintptr {
	l.next += 0x10
	return l.next
}

// Stats returns a snapshot of the handle counters.
func (l *Library) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// LiveArrays returns the number of arrays not yet destroyed.
func (l *Library) LiveArrays() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.arrays)
}

// FileExists reports whether a MAT file has been written at path.
func (l *Library) FileExists(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.disk[path]
	return ok
}

// FileVariables returns the variable names stored at path, in file order.
func (l *Library) FileVariables(path string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	sf, ok := l.disk[path]
	if !ok {
		return nil
	}
	names := make([]string, len(sf.vars))
	for i, v := range sf.vars {
		names[i] = v.name
	}
	return names
}

// EngineVariables returns the sorted workspace names of an open engine.
func (l *Library) EngineVariables(e native.Engine) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	en, ok := l.engines[e]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(en.ws.vars))
	for name := range en.ws.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Library) AllocBuffer(n int) native.Buffer {
	if n <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b := native.Buffer(l.handle())
	l.buffers[b] = make([]byte, n)
	l.stats.BuffersAllocated++
	return b
}

func (l *Library) FreeBuffer(b native.Buffer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.buffers[b]; !ok {
		if b != 0 {
			l.stats.InvalidBufferFrees++
		}
		return
	}
	delete(l.buffers, b)
	l.stats.BuffersFreed++
}

func (l *Library) BufferString(b native.Buffer, n int) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	buf, ok := l.buffers[b]
	if !ok || n <= 0 {
		return ""
	}
	if n < len(buf) {
		buf = buf[:n]
	}
	for i, c := range buf {
		if c == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
