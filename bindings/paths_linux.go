package bindings

const libSubdir = "lib64"

var libNames = []string{"libnvvm.so", "libnvvm.so.4", "libnvvm.so.3"}

var defaultLibDirs = []string{
	"/usr/local/cuda/nvvm/lib64",
	"/opt/cuda/nvvm/lib64",
}
