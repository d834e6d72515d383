package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLibGeneratorInitWritesBoilerplateOnce(t *testing.T) {
	dir := t.TempDir()
	g := NewLibGenerator(dir, PlainAPI)
	if err := g.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	h, err := os.ReadFile(filepath.Join(dir, "gofuncs.h"))
	if err != nil {
		t.Fatalf("reading gofuncs.h: %v", err)
	}
	if !strings.Contains(string(h), "#pragma once") {
		t.Errorf("gofuncs.h missing #pragma once: %q", h)
	}
	c, err := os.ReadFile(filepath.Join(dir, "gofuncs.c"))
	if err != nil {
		t.Fatalf("reading gofuncs.c: %v", err)
	}
	if !strings.Contains(string(c), "fp64_dis") || !strings.Contains(string(c), `#include "gofuncs.h"`) {
		t.Errorf("gofuncs.c missing expected boilerplate: %q", c)
	}
}

func TestLibGeneratorAppendFunctionPlainAPI(t *testing.T) {
	dir := t.TempDir()
	g := NewLibGenerator(dir, PlainAPI)
	if err := g.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := g.AppendFunction(2, "formula1", FuncSignature("formula1"), FuncSignature("formula1")+"{ return 0; }"); err != nil {
		t.Fatalf("AppendFunction: %v", err)
	}
	api, err := os.ReadFile(filepath.Join(dir, "gofuncs.api"))
	if err != nil {
		t.Fatalf("reading gofuncs.api: %v", err)
	}
	if strings.TrimSpace(string(api)) != "formula1,2" {
		t.Errorf("gofuncs.api = %q, want %q", strings.TrimSpace(string(api)), "formula1,2")
	}
}

func TestLibGeneratorAppendFunctionCppAPI(t *testing.T) {
	dir := t.TempDir()
	g := NewLibGenerator(dir, CppAPI)
	if err := g.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := g.AppendFunction(1, "formula2", FuncSignature("formula2"), FuncSignature("formula2")+"{ return 0; }"); err != nil {
		t.Fatalf("AppendFunction: %v", err)
	}
	api, err := os.ReadFile(filepath.Join(dir, "gofuncs.api"))
	if err != nil {
		t.Fatalf("reading gofuncs.api: %v", err)
	}
	want := `{"formula2", {formula2, 1}}, `
	if strings.TrimSpace(string(api)) != strings.TrimSpace(want) {
		t.Errorf("gofuncs.api = %q, want %q", string(api), want)
	}
}

func TestLibGeneratorSecondInitDoesNotTruncate(t *testing.T) {
	dir := t.TempDir()
	g := NewLibGenerator(dir, PlainAPI)
	if err := g.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := g.AppendFunction(0, "f", FuncSignature("f"), FuncSignature("f")+"{return 0;}"); err != nil {
		t.Fatalf("AppendFunction: %v", err)
	}
	if err := g.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	api, err := os.ReadFile(filepath.Join(dir, "gofuncs.api"))
	if err != nil {
		t.Fatalf("reading gofuncs.api: %v", err)
	}
	if strings.TrimSpace(string(api)) != "f,0" {
		t.Errorf("second Init() should not truncate gofuncs.api, got %q", string(api))
	}
}
