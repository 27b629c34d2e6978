package bindings

const libSubdir = "lib"

var libNames = []string{"libnvvm.dylib"}

var defaultLibDirs = []string{
	"/usr/local/cuda/nvvm/lib",
	"/Developer/NVIDIA/CUDA/nvvm/lib",
}
