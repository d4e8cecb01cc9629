package memnative

import (
	"slices"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat/native"
)

type storedFile struct {
	vars []*array
	v4   bool
}

func (sf *storedFile) index(name string) int {
	return slices.IndexFunc(sf.vars, func(a *array) bool { return a.name == name })
}

type openFile struct {
	path   string
	mode   string
	cursor int
}

func (f *openFile) readable() bool { return f.mode == "r" || f.mode == "u" }

func (f *openFile) writable() bool { return f.mode != "r" }

// MatOpen accepts the modes "r", "u", "w" and "w4". "r" and "u" need an
// existing file; "w" and "w4" create or truncate.
func (l *Library) MatOpen(filename, mode string) native.File {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch mode {
	case "r", "u":
		if _, ok := l.disk[filename]; !ok {
			return 0
		}
	case "w", "w4":
		l.disk[filename] = &storedFile{v4: mode == "w4"}
	default:
		return 0
	}
	f := native.File(l.handle())
	l.files[f] = &openFile{path: filename, mode: mode}
	l.stats.FilesOpened++
	return f
}

func (l *Library) MatClose(f native.File) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.files[f]; !ok {
		if f != 0 {
			l.stats.InvalidFileCloses++
		}
		return failed
	}
	delete(l.files, f)
	l.stats.FilesClosed++
	return 0
}

// file resolves an open handle and its backing store. Callers hold l.mu.
func (l *Library) file(f native.File) (*openFile, *storedFile) {
	of, ok := l.files[f]
	if !ok {
		return nil, nil
	}
	sf, ok := l.disk[of.path]
	if !ok {
		return nil, nil
	}
	return of, sf
}

func (l *Library) MatPutVariable(f native.File, name string, h native.Array) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	of, sf := l.file(f)
	a, ok := l.arrays[h]
	if of == nil || !ok || !of.writable() || name == "" || a.header {
		return failed
	}
	if sf.v4 && a.class != native.ClassDouble && a.class != native.ClassChar {
		return failed
	}
	cp := a.clone()
	cp.name = name
	if i := sf.index(name); i >= 0 {
		sf.vars[i] = cp
	} else {
		sf.vars = append(sf.vars, cp)
	}
	return 0
}

func (l *Library) get(f native.File, name string, header bool) native.Array {
	l.mu.Lock()
	defer l.mu.Unlock()
	of, sf := l.file(f)
	if of == nil || !of.readable() {
		return 0
	}
	i := sf.index(name)
	if i < 0 {
		return 0
	}
	of.cursor = i + 1
	if header {
		return l.adopt(sf.vars[i].headerCopy())
	}
	return l.adopt(sf.vars[i].clone())
}

func (l *Library) MatGetVariable(f native.File, name string) native.Array {
	return l.get(f, name, false)
}

func (l *Library) MatGetVariableInfo(f native.File, name string) native.Array {
	return l.get(f, name, true)
}

func (l *Library) MatGetNextVariableInfo(f native.File) (native.Array, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	of, sf := l.file(f)
	if of == nil || !of.readable() || of.cursor >= len(sf.vars) {
		return 0, ""
	}
	a := sf.vars[of.cursor]
	of.cursor++
	return l.adopt(a.headerCopy()), a.name
}

func (l *Library) MatDeleteVariable(f native.File, name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	of, sf := l.file(f)
	if of == nil || !of.writable() {
		return failed
	}
	i := sf.index(name)
	if i < 0 {
		return failed
	}
	sf.vars = slices.Delete(sf.vars, i, i+1)
	if i < of.cursor {
		of.cursor--
	}
	return 0
}

func (l *Library) MatPutArray(f native.File, h native.Array) int {
	return l.MatPutVariable(f, l.GetName(h), h)
}

func (l *Library) MatGetArray(f native.File, name string) native.Array {
	return l.MatGetVariable(f, name)
}

func (l *Library) MatGetArrayHeader(f native.File, name string) native.Array {
	return l.MatGetVariableInfo(f, name)
}

func (l *Library) MatGetNextArrayHeader(f native.File) native.Array {
	a, _ := l.MatGetNextVariableInfo(f)
	return a
}

func (l *Library) MatDeleteArray(f native.File, name string) int {
	return l.MatDeleteVariable(f, name)
}
