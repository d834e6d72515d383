package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const dumpFileStem = "gofuncs"

// APIMode selects the format of the generated .api manifest entries, per
// §4.5 and §6's "-fmt plain|cpp" flag.
type APIMode int

const (
	// PlainAPI emits "name,argcount" lines for the Plain C dlsym-style
	// loader.
	PlainAPI APIMode = iota
	// CppAPI emits C++ initializer-list entries mapping a function name to
	// its {function pointer, argcount} pair.
	CppAPI
)

const distanceFunc = `double fp64_dis(const double a, const double b) {
    if (a == b || isnan(a) || isnan(b)) {
        return 0;
    }
    const double scale = pow(2, 54);
    uint64_t a_uint = *(const uint64_t *)(&a);
    uint64_t b_uint = *(const uint64_t *)(&b);
    if ((a_uint & 0x8000000000000000) != (b_uint & 0x8000000000000000)) {
        return ((double)((a_uint & 0x7FFFFFFFFFFFFFFF) + (b_uint & 0x7FFFFFFFFFFFFFFF)))/scale;
    }
    b_uint &= 0x7FFFFFFFFFFFFFFF;
    a_uint &= 0x7FFFFFFFFFFFFFFF;
    if (a_uint < b_uint) {
        return ((double)(b_uint - a_uint))/scale;
    }
    return ((double)(a_uint - b_uint))/scale;
}

`

// LibGenerator accumulates the C functions emitted across many -mode cg
// runs into one companion header/source/manifest file triple, rather than
// one file per formula — the library file set described in §4.5.
type LibGenerator struct {
	mode                       APIMode
	headerPath, cPath, apiPath string
}

// NewLibGenerator returns a LibGenerator writing gofuncs.{h,c,api} under
// dir.
func NewLibGenerator(dir string, mode APIMode) *LibGenerator {
	return &LibGenerator{
		mode:       mode,
		headerPath: filepath.Join(dir, dumpFileStem+".h"),
		cPath:      filepath.Join(dir, dumpFileStem+".c"),
		apiPath:    filepath.Join(dir, dumpFileStem+".api"),
	}
}

// FilesExist reports whether all three library files are already present.
func (g *LibGenerator) FilesExist() bool {
	for _, p := range []string{g.headerPath, g.cPath, g.apiPath} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// Init prepares the library files for AppendFunction. If the triple
// already exists it is left untouched (idempotent re-init): a second -mode
// cg run over more formulas appends to the existing library instead of
// overwriting its preamble.
func (g *LibGenerator) Init() error {
	if g.FilesExist() {
		return nil
	}
	header := "/* gofpsat: automatically generated file */\n\n#pragma once\n\n"
	if err := os.WriteFile(g.headerPath, []byte(header), 0o644); err != nil {
		return fmt.Errorf("codegen: init header: %w", err)
	}
	body := fmt.Sprintf(
		"/* gofpsat: automatically generated file */\n\n#include \"%s.h\"\n#include <math.h>\n\n#include <stdint.h>\n\n%s",
		dumpFileStem, distanceFunc)
	if err := os.WriteFile(g.cPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("codegen: init source: %w", err)
	}
	if err := os.WriteFile(g.apiPath, nil, 0o644); err != nil {
		return fmt.Errorf("codegen: init manifest: %w", err)
	}
	return nil
}

// AppendFunction records one generated function's signature, definition,
// and manifest entry. Call Init first.
func (g *LibGenerator) AppendFunction(argCount int, funcName, funcSig, funcDef string) error {
	if err := appendFile(g.headerPath, funcSig+";\n\n"); err != nil {
		return err
	}
	if err := appendFile(g.cPath, funcDef+"\n\n"); err != nil {
		return err
	}
	var entry string
	if g.mode == PlainAPI {
		entry = funcName + "," + strconv.Itoa(argCount) + "\n"
	} else {
		entry = "{\"" + funcName + "\", {" + funcName + ", " + strconv.Itoa(argCount) + "}}, \n"
	}
	return appendFile(g.apiPath, entry)
}

func appendFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("codegen: append %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	_, err = f.WriteString(text)
	return err
}

// FuncNameFromPath derives a legal C identifier from an input formula's
// file path: the basename with its extension stripped and any remaining
// dots turned to underscores.
func FuncNameFromPath(filePath string) string {
	base := filepath.Base(filePath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			out[i] = '_'
		} else {
			out[i] = name[i]
		}
	}
	return string(out)
}
