//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package main

// The oto backend hands the native float32 sample buffer to the device as
// FormatFloat32LE without byte swapping.
var _ = "keysynth requires a little-endian architecture" + 1
