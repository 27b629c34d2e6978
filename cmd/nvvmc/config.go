package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/nvvm"
	"github.com/wippyai/nvvm/compiler"
)

// fileConfig is the optional yaml configuration for nvvmc.
//
//	library: /usr/local/cuda/nvvm/lib64/libnvvm.so
//	options:
//	  opt: 3
//	  arch: "7.5"
//	  ftz: true
type fileConfig struct {
	Library string    `yaml:"library"`
	Options optionSet `yaml:"options"`
}

// optionSet is the flag-level view of compile options, shared by the
// config file and the command line. Pointer fields distinguish "unset"
// from an explicit zero.
type optionSet struct {
	Opt      *int   `yaml:"opt"`
	Arch     string `yaml:"arch"`
	FTZ      bool   `yaml:"ftz"`
	NoFMA    bool   `yaml:"no-fma"`
	FastSqrt bool   `yaml:"fast-sqrt"`
	FastDiv  bool   `yaml:"fast-div"`
	Debug    bool   `yaml:"debug"`
}

func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// merge overlays command-line values onto the config-file set. The
// command line wins wherever it was given.
func (s optionSet) merge(cli optionSet) optionSet {
	out := s
	if cli.Opt != nil {
		out.Opt = cli.Opt
	}
	if cli.Arch != "" {
		out.Arch = cli.Arch
	}
	out.FTZ = out.FTZ || cli.FTZ
	out.NoFMA = out.NoFMA || cli.NoFMA
	out.FastSqrt = out.FastSqrt || cli.FastSqrt
	out.FastDiv = out.FastDiv || cli.FastDiv
	out.Debug = out.Debug || cli.Debug
	return out
}

// toOptions renders the set as ordered compiler options.
func (s optionSet) toOptions() ([]compiler.Option, error) {
	var opts []compiler.Option
	if s.Arch != "" {
		cc, err := parseArch(s.Arch)
		if err != nil {
			return nil, err
		}
		opts = append(opts, compiler.Target(cc))
	}
	if s.Opt != nil {
		opts = append(opts, compiler.OptLevel(*s.Opt))
	}
	if s.FTZ {
		opts = append(opts, compiler.FlushToZero)
	}
	if s.NoFMA {
		opts = append(opts, compiler.NoFMA)
	}
	if s.FastSqrt {
		opts = append(opts, compiler.FastSqrt)
	}
	if s.FastDiv {
		opts = append(opts, compiler.FastDiv)
	}
	if s.Debug {
		opts = append(opts, compiler.DebugInfo)
	}
	return opts, nil
}

// parseArch accepts "major.minor" ("7.5") or bare digits ("75").
func parseArch(s string) (nvvm.ComputeCapability, error) {
	var majStr, minStr string
	if maj, min, ok := strings.Cut(s, "."); ok {
		majStr, minStr = maj, min
	} else if len(s) >= 2 {
		majStr, minStr = s[:len(s)-1], s[len(s)-1:]
	} else {
		return nvvm.ComputeCapability{}, fmt.Errorf("invalid arch %q: want major.minor", s)
	}
	maj, err := strconv.Atoi(majStr)
	if err != nil {
		return nvvm.ComputeCapability{}, fmt.Errorf("invalid arch %q: %w", s, err)
	}
	min, err := strconv.Atoi(minStr)
	if err != nil {
		return nvvm.ComputeCapability{}, fmt.Errorf("invalid arch %q: %w", s, err)
	}
	return nvvm.ComputeCapability{Major: maj, Minor: min}, nil
}
