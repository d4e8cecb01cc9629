package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

const (
	modulePath   = "github.com/hsiuhsiu/engmat-go"
	bindingsPath = modulePath + "/internal/bindings"
)

func load(t *testing.T, mode packages.LoadMode, patterns ...string) []*packages.Package {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{Mode: mode, Tests: false}, patterns...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages %v failed to load", patterns)
	}
	return pkgs
}
