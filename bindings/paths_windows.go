package bindings

const libSubdir = "bin"

var libNames = []string{"nvvm64_40_0.dll", "nvvm64_33_0.dll", "nvvm64.dll"}

var defaultLibDirs = []string{
	`C:\Program Files\NVIDIA GPU Computing Toolkit\CUDA\nvvm\bin`,
}
