//go:build darwin || linux

package bindings

import "github.com/ebitengine/purego"

func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func lookupSymbol(lib uintptr, name string) (uintptr, error) {
	return purego.Dlsym(lib, name)
}

func registerFunc(fptr any, lib uintptr, name string) {
	purego.RegisterLibFunc(fptr, lib, name)
}
