package compiler

import (
	"strings"
	"testing"

	"github.com/wippyai/nvvm"
	"github.com/wippyai/nvvm/bindings"
	"github.com/wippyai/nvvm/errors"
)

const minimalIR = `target triple = "nvptx64-nvidia-cuda"`

func TestCompile_Success(t *testing.T) {
	f := newFake()
	f.ptxText = "//\n// Generated by NVVM Compiler\n//"
	f.logText = "warning: overriding module target"
	c := newTestCompiler(f)

	prog, err := c.CreateProgram()
	if err != nil {
		t.Fatalf("CreateProgram error: %v", err)
	}
	defer prog.Destroy()

	if err := prog.AddModule("m", []byte(minimalIR)); err != nil {
		t.Fatalf("AddModule error: %v", err)
	}

	ptx, log, err := prog.Compile(nil)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if !strings.Contains(string(ptx), "Generated by NVVM Compiler") {
		t.Errorf("unexpected ptx: %q", ptx)
	}
	if ptx[len(ptx)-1] != 0 {
		t.Error("ptx buffer should keep the trailing NUL sentinel")
	}
	if !strings.Contains(string(log), "overriding module target") {
		t.Errorf("log buffer missing diagnostic text: %q", log)
	}
	if f.compiles != 1 {
		t.Errorf("expected 1 native compile, got %d", f.compiles)
	}
}

func TestCompile_OptionsForwardedInOrder(t *testing.T) {
	f := newFake()
	f.ptxText = "ptx"
	c := newTestCompiler(f)

	prog, err := c.CreateProgram()
	if err != nil {
		t.Fatalf("CreateProgram error: %v", err)
	}
	defer prog.Destroy()

	if err := prog.AddModule("m", []byte(minimalIR)); err != nil {
		t.Fatalf("AddModule error: %v", err)
	}

	opts := []Option{
		Target(nvvm.ComputeCapability{Major: 7, Minor: 5}),
		OptLevel(0),
		NoFMA,
	}
	if _, _, err := prog.Compile(opts); err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	want := []string{"-arch=compute_75", "-opt=0", "-fma=0"}
	if len(f.lastOpts) != len(want) {
		t.Fatalf("native saw %d options, want %d", len(f.lastOpts), len(want))
	}
	for i := range want {
		if f.lastOpts[i] != want[i] {
			t.Errorf("option[%d] = %q, want %q", i, f.lastOpts[i], want[i])
		}
	}
}

func TestCompile_FailureReturnsLog(t *testing.T) {
	f := newFake()
	f.compileSt = bindings.StatusCompilation
	f.logText = "kernel.ll (12, 3): parse error: expected instruction opcode"
	c := newTestCompiler(f)

	prog, err := c.CreateProgram()
	if err != nil {
		t.Fatalf("CreateProgram error: %v", err)
	}
	defer prog.Destroy()

	if err := prog.AddModule("kernel", []byte("definitely not IR")); err != nil {
		t.Fatalf("AddModule error: %v", err)
	}

	ptx, log, err := prog.Compile(nil)
	if ptx != nil {
		t.Error("no payload expected on failed compile")
	}
	if !strings.Contains(string(log), "parse error") {
		t.Errorf("log should carry the diagnostic even on failure: %q", log)
	}
	st, ok := errors.StatusOf(err)
	if !ok || st != bindings.StatusCompilation {
		t.Fatalf("expected compilation status error, got %v", err)
	}
	if !strings.Contains(err.Error(), "parse error: expected instruction opcode") {
		t.Errorf("error should embed the native log text: %v", err)
	}
}

func TestCompile_EmptyProgram(t *testing.T) {
	f := newFake()
	c := newTestCompiler(f)

	prog, err := c.CreateProgram()
	if err != nil {
		t.Fatalf("CreateProgram error: %v", err)
	}
	defer prog.Destroy()

	ptx, log, err := prog.Compile(nil)
	if ptx != nil {
		t.Error("no payload expected from an empty program")
	}
	st, ok := errors.StatusOf(err)
	if !ok || st != bindings.StatusNoModuleInProgram {
		t.Fatalf("expected no-module status error, got %v", err)
	}
	if len(log) == 0 {
		t.Error("expected a well-formed log for the no-module failure")
	}
}

func TestVerify_ReturnsRawStatus(t *testing.T) {
	f := newFake()
	f.verifySt = bindings.StatusInvalidIR
	f.logText = "error: module-level assembly is not allowed"
	c := newTestCompiler(f)

	prog, err := c.CreateProgram()
	if err != nil {
		t.Fatalf("CreateProgram error: %v", err)
	}
	defer prog.Destroy()

	if err := prog.AddModule("m", []byte("bad")); err != nil {
		t.Fatalf("AddModule error: %v", err)
	}

	st, log, err := prog.Verify(nil)
	if err != nil {
		t.Fatalf("Verify should not collapse the status into an error: %v", err)
	}
	if st != bindings.StatusInvalidIR {
		t.Errorf("status = %v, want invalid IR", st)
	}
	if !strings.Contains(string(log), "not allowed") {
		t.Errorf("log missing diagnostic: %q", log)
	}
	if f.verifies != 1 || f.compiles != 0 {
		t.Errorf("expected exactly one native verify, got verify=%d compile=%d", f.verifies, f.compiles)
	}
}

func TestVerify_Clean(t *testing.T) {
	f := newFake()
	c := newTestCompiler(f)

	prog, err := c.CreateProgram()
	if err != nil {
		t.Fatalf("CreateProgram error: %v", err)
	}
	defer prog.Destroy()

	if err := prog.AddModule("m", []byte(minimalIR)); err != nil {
		t.Fatalf("AddModule error: %v", err)
	}

	st, log, err := prog.Verify(nil)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !st.OK() {
		t.Errorf("status = %v, want success", st)
	}
	if len(log) != 0 {
		t.Errorf("expected empty log, got %q", log)
	}
}

func TestCompileModule_Success(t *testing.T) {
	f := newFake()
	f.ptxText = ".version 8.3\n.target sm_75"
	c := newTestCompiler(f)

	res, err := c.CompileModule("m", []byte(minimalIR), []Option{OptLevel(3)})
	if err != nil {
		t.Fatalf("CompileModule error: %v", err)
	}
	if len(res.PTX) == 0 {
		t.Error("expected non-empty PTX payload")
	}
	if f.created != 1 || f.destroyed != 1 {
		t.Errorf("session not balanced: created=%d destroyed=%d", f.created, f.destroyed)
	}
}

func TestCompileModule_FailureStillDestroys(t *testing.T) {
	f := newFake()
	f.compileSt = bindings.StatusCompilation
	f.logText = "error: undefined symbol 'foo'"
	c := newTestCompiler(f)

	_, err := c.CompileModule("m", []byte("bad"), nil)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "undefined symbol 'foo'") {
		t.Errorf("error should embed the native log: %v", err)
	}
	if f.created != 1 || f.destroyed != 1 {
		t.Errorf("session not destroyed on failure: created=%d destroyed=%d", f.created, f.destroyed)
	}
}

func TestCompileModules_AddFailureStillDestroys(t *testing.T) {
	f := newFake()
	f.addSt = bindings.StatusInvalidInput
	c := newTestCompiler(f)

	_, err := c.CompileModules([]nvvm.Module{{Name: "a", IR: []byte("x")}}, nil)
	st, ok := errors.StatusOf(err)
	if !ok || st != bindings.StatusInvalidInput {
		t.Fatalf("expected invalid-input status error, got %v", err)
	}
	if f.created != 1 || f.destroyed != 1 {
		t.Errorf("session not destroyed after add failure: created=%d destroyed=%d", f.created, f.destroyed)
	}
	if f.compiles != 0 {
		t.Errorf("compile must not run after add failure, got %d", f.compiles)
	}
}

func TestCompileModules_OrderPreserved(t *testing.T) {
	f := newFake()
	f.ptxText = "ptx"
	c := newTestCompiler(f)

	mods := []nvvm.Module{
		{Name: "first", IR: []byte("a")},
		{Name: "second", IR: []byte("bb")},
		{Name: "third", IR: []byte("ccc")},
	}
	if _, err := c.CompileModules(mods, nil); err != nil {
		t.Fatalf("CompileModules error: %v", err)
	}
	if len(f.modules) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(f.modules))
	}
	for i, want := range []string{"first", "second", "third"} {
		if f.modules[i].name != want {
			t.Errorf("module[%d] = %q, want %q", i, f.modules[i].name, want)
		}
	}
}

func TestVerifyModules(t *testing.T) {
	f := newFake()
	c := newTestCompiler(f)

	st, _, err := c.VerifyModules([]nvvm.Module{{Name: "m", IR: []byte(minimalIR)}}, nil)
	if err != nil {
		t.Fatalf("VerifyModules error: %v", err)
	}
	if !st.OK() {
		t.Errorf("status = %v, want success", st)
	}
	if f.created != 1 || f.destroyed != 1 {
		t.Errorf("session not balanced: created=%d destroyed=%d", f.created, f.destroyed)
	}
}
