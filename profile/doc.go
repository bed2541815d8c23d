// Package profile provides optional runtime profiling for chirp.
//
// Profiling integrates [github.com/pkg/profile] behind the "pprof" build
// tag. In default builds every operation is a no-op with zero overhead;
// building with -tags pprof enables the --pprof-mode and --pprof-dir CLI
// flags.
//
// Supported modes (pprof builds): allocs, block, clock, cpu, goroutine,
// heap, mem, mutex, thread, trace. Profile files are written to the
// configured output directory (by default the chirp data directory) and
// analyzed with go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
