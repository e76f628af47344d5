// Package allocator models the allocator-lookup surface the planner
// consumes: a concrete, comparable Info identifying a device allocator, and
// a Registry the planner's caller populates with one Provider per
// execution-provider kind. The package never allocates a single byte --
// real allocation is the executor's job, explicitly out of scope here.
package allocator

// MemType distinguishes a node argument's memory residency.
type MemType int

const (
	// MemTypeDefault is the provider's default allocator for a given argument.
	MemTypeDefault MemType = iota
	// MemTypeCPUInput marks an argument the kernel insists on receiving on CPU,
	// regardless of the node's execution provider.
	MemTypeCPUInput
	// MemTypeCPUOutput marks an output the kernel always produces on CPU.
	MemTypeCPUOutput
)

// ProviderKind identifies an execution provider (CPU, a GPU backend, etc).
// It is an opaque string so this package never needs to know the set of
// providers a given deployment supports.
type ProviderKind string

// CPU is the one provider kind the planner itself knows by name: weights
// the kernel declares OnCpuExplicitly are relocated to this provider's
// default allocator regardless of the owning node's actual provider.
const CPU ProviderKind = "CPU"

// Info identifies a concrete allocator. Two values may share a buffer only
// if their Info values compare equal (==) -- allocators must match
// bit-for-bit for a freed buffer to be handed to a new value.
type Info struct {
	Name       string
	DeviceID   int
	MemoryType MemType
}

// Unset is the sentinel "location not yet bound" value: an explicit variant,
// not a default-constructed Info that might collide with a real CPU
// allocator.
var Unset = Info{Name: "", DeviceID: -1, MemoryType: MemTypeDefault}

// IsUnset reports whether info is the deferred-location sentinel.
func (info Info) IsUnset() bool { return info == Unset }

// IsCPU reports whether info names the fixed CPU allocator. Allocator names
// are the caller's to choose, but the CPU provider's default allocator must
// be named CPU for the planner's "defer CPU location binding" special case
// to recognize it.
func (info Info) IsCPU() bool { return info.Name == string(CPU) }

// Provider supplies the allocators available for one execution provider.
type Provider struct {
	Kind ProviderKind

	// Default is the provider's general-purpose allocator.
	Default Info

	// ByMemType holds allocators keyed by a non-default MemType, for
	// providers that expose more than one (e.g. a pinned-host allocator
	// alongside the device default).
	ByMemType map[MemType]Info
}

// AllocatorInfo returns the allocator for memType, falling back to Default
// when no specific override is registered.
func (p Provider) AllocatorInfo(memType MemType) Info {
	if memType == MemTypeDefault {
		return p.Default
	}
	if info, ok := p.ByMemType[memType]; ok {
		return info
	}
	return p.Default
}

// Registry maps a provider kind to its Provider. It deliberately isn't
// global state -- it's just a value the caller builds and hands to the
// planner.
type Registry struct {
	providers map[ProviderKind]Provider
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[ProviderKind]Provider)}
}

// Register adds or replaces the Provider for a given kind.
func (r *Registry) Register(p Provider) {
	r.providers[p.Kind] = p
}

// Provider looks up the Provider for kind. The second return is false if no
// such provider was registered.
func (r *Registry) Provider(kind ProviderKind) (Provider, bool) {
	p, ok := r.providers[kind]
	return p, ok
}
