// Package config provides the Context collaborator spec.md §6.2
// describes: cache and memory sizing, processor count, the
// shared-memory lock, and a BuilderFactory handle. It follows the
// teacher's Config/DefaultConfig shape (gpu.Config/gpu.DefaultConfig)
// rather than a framework-style options struct.
package config

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/klauspost/cpuid/v2"

	"github.com/apflow/bigntt/storage"
)

// Context bundles everything the NTT builder and convolution engine
// treat as external configuration (spec.md §6.2).
type Context struct {
	// CacheL1Size is the per-core L1 data cache size in bytes, used by
	// NTTBuilder to decide when a transform plus w-table fits in half
	// the cache (spec.md §4.3).
	CacheL1Size int
	// MaxMemoryBlockSize bounds how large a transform's working set may
	// grow before the builder falls back to the disk-backed strategy.
	MaxMemoryBlockSize int64
	// NumberOfProcessors bounds the ParallelRunner's worker count.
	NumberOfProcessors int
	// SharedMemoryThreshold is the data-size cutoff above which a
	// convolution must acquire SharedMemoryLock before running
	// (spec.md §5).
	SharedMemoryThreshold int64
	// SharedMemoryLock serializes memory-heavy transforms against each
	// other; acquired at convolution start, released on every exit
	// path.
	SharedMemoryLock *sync.Mutex
	// ScratchDir is where disk-backed DataStorage instances are
	// created.
	ScratchDir string
	// Builders yields a storage.Builder for a given element type.
	Builders storage.BuilderFactory
}

// DefaultContext autodetects the L1 cache size from the running CPU via
// cpuid and takes the processor count from runtime.GOMAXPROCS(0), the
// same "fill in zero-value fields with detected defaults" shape as
// gpu.DefaultConfig.
func DefaultContext() *Context {
	l1 := cpuid.CPU.Cache.L1D
	if l1 <= 0 {
		l1 = 32 * 1024
	}
	return &Context{
		CacheL1Size:           l1,
		MaxMemoryBlockSize:    4 << 30, // 4 GiB
		NumberOfProcessors:    runtime.GOMAXPROCS(0),
		SharedMemoryThreshold: 64 << 20, // 64 MiB
		SharedMemoryLock:      &sync.Mutex{},
		ScratchDir:            os.TempDir(),
		Builders:              storage.NewBuilderFactory(os.TempDir()),
	}
}

// CacheBudget and MemoryBudget satisfy ntt.BuildContext structurally,
// so ntt.NewBuilder can consume a *Context without this package
// importing ntt (spec.md §9's layering keeps L4 downward-only).
func (ctx *Context) CacheBudget() int    { return ctx.CacheL1Size }
func (ctx *Context) MemoryBudget() int64 { return ctx.MaxMemoryBlockSize }

// Parallelism satisfies ntt.BuildContext's worker-count bound, the
// same structural-satisfaction trick as CacheBudget/MemoryBudget.
func (ctx *Context) Parallelism() int { return ctx.NumberOfProcessors }

// Override is a user-supplied subset of Context fields loaded from
// YAML; zero fields are left at DefaultContext's autodetected values.
type Override struct {
	CacheL1Size           int   `yaml:"cacheL1Size"`
	MaxMemoryBlockSize    int64 `yaml:"maxMemoryBlockSize"`
	NumberOfProcessors    int   `yaml:"numberOfProcessors"`
	SharedMemoryThreshold int64 `yaml:"sharedMemoryThreshold"`
	ScratchDir            string `yaml:"scratchDir"`
}

// Apply merges a non-zero Override field into ctx, logging the
// override the way primitives' narrow, non-hot-path log.Printf use
// does (SPEC_FULL.md's AMBIENT STACK section).
func (ctx *Context) Apply(o Override) {
	if o.CacheL1Size != 0 {
		log.Printf("config: overriding cacheL1Size: %d -> %d", ctx.CacheL1Size, o.CacheL1Size)
		ctx.CacheL1Size = o.CacheL1Size
	}
	if o.MaxMemoryBlockSize != 0 {
		log.Printf("config: overriding maxMemoryBlockSize: %d -> %d", ctx.MaxMemoryBlockSize, o.MaxMemoryBlockSize)
		ctx.MaxMemoryBlockSize = o.MaxMemoryBlockSize
	}
	if o.NumberOfProcessors != 0 {
		log.Printf("config: overriding numberOfProcessors: %d -> %d", ctx.NumberOfProcessors, o.NumberOfProcessors)
		ctx.NumberOfProcessors = o.NumberOfProcessors
	}
	if o.SharedMemoryThreshold != 0 {
		log.Printf("config: overriding sharedMemoryThreshold: %d -> %d", ctx.SharedMemoryThreshold, o.SharedMemoryThreshold)
		ctx.SharedMemoryThreshold = o.SharedMemoryThreshold
	}
	if o.ScratchDir != "" {
		ctx.ScratchDir = o.ScratchDir
		ctx.Builders = storage.NewBuilderFactory(o.ScratchDir)
	}
}

// Validate reports a non-nil error if ctx cannot support any
// transform, matching spec.md §7's RESOURCE kind at configuration time
// rather than deep inside a transform.
func (ctx *Context) Validate() error {
	if ctx.CacheL1Size <= 0 {
		return fmt.Errorf("config: cacheL1Size must be positive, got %d", ctx.CacheL1Size)
	}
	if ctx.MaxMemoryBlockSize <= 0 {
		return fmt.Errorf("config: maxMemoryBlockSize must be positive, got %d", ctx.MaxMemoryBlockSize)
	}
	if ctx.NumberOfProcessors <= 0 {
		return fmt.Errorf("config: numberOfProcessors must be positive, got %d", ctx.NumberOfProcessors)
	}
	return nil
}
