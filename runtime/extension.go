package runtime

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wudi/hey/registry"
)

// Extension is an engine extension following the four-phase lifecycle:
// ModuleInit runs once at engine construction, RequestInit/RequestShutdown
// bracket each request, and ModuleShutdown runs at engine teardown.
type Extension interface {
	Name() string
	Version() string
	Dependencies() []string
	ModuleInit(reg *registry.Registry) error
	RequestInit(req *RequestContext) error
	RequestShutdown(req *RequestContext) error
	ModuleShutdown() error
}

// BaseExtension gives concrete extensions no-op defaults for every phase so
// they only need to override the ones they care about.
type BaseExtension struct {
	name         string
	version      string
	dependencies []string
}

// NewBaseExtension constructs a BaseExtension. Embed it in a concrete
// extension type and override whichever lifecycle phases it needs.
func NewBaseExtension(name, version string, dependencies ...string) *BaseExtension {
	return &BaseExtension{name: name, version: version, dependencies: dependencies}
}

func (b *BaseExtension) Name() string          { return b.name }
func (b *BaseExtension) Version() string       { return b.version }
func (b *BaseExtension) Dependencies() []string { return b.dependencies }

func (b *BaseExtension) ModuleInit(*registry.Registry) error  { return nil }
func (b *BaseExtension) RequestInit(*RequestContext) error    { return nil }
func (b *BaseExtension) RequestShutdown(*RequestContext) error { return nil }
func (b *BaseExtension) ModuleShutdown() error                { return nil }

// RequestContext carries per-request extension data, keyed by an
// extension-chosen string, so an extension's RequestInit can stash
// request-scoped state (a connection checkout, a per-request buffer)
// without a global map shared across concurrent requests.
type RequestContext struct {
	mu   sync.RWMutex
	data map[string]interface{}
}

// NewRequestContext returns an empty RequestContext for a new request.
func NewRequestContext() *RequestContext {
	return &RequestContext{data: make(map[string]interface{})}
}

// Set stores a value under key for the lifetime of the request.
func (r *RequestContext) Set(key string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
}

// Get fetches a previously stored value.
func (r *RequestContext) Get(key string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	return v, ok
}

// GetOrInit lazily initializes request-scoped state the first time it is
// requested during a given request.
func (r *RequestContext) GetOrInit(key string, init func() interface{}) interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.data[key]; ok {
		return v
	}
	v := init()
	r.data[key] = v
	return v
}

// ExtensionManager loads extensions in dependency order and drives their
// four lifecycle phases.
type ExtensionManager struct {
	registry   *registry.Registry
	extensions map[string]Extension
	loadOrder  []Extension
}

// NewExtensionManager returns a manager bound to reg.
func NewExtensionManager(reg *registry.Registry) *ExtensionManager {
	return &ExtensionManager{registry: reg, extensions: make(map[string]Extension)}
}

// Register adds ext, failing if its name is already taken or one of its
// declared dependencies has not been registered yet.
func (em *ExtensionManager) Register(ext Extension) error {
	name := ext.Name()
	if _, exists := em.extensions[name]; exists {
		return fmt.Errorf("extension already registered: %s", name)
	}
	for _, dep := range ext.Dependencies() {
		if _, ok := em.extensions[dep]; !ok {
			return fmt.Errorf("extension %s missing dependency %s", name, dep)
		}
	}
	em.extensions[name] = ext
	em.rebuildLoadOrder()
	return nil
}

func (em *ExtensionManager) rebuildLoadOrder() {
	names := make([]string, 0, len(em.extensions))
	for name := range em.extensions {
		names = append(names, name)
	}
	sort.Strings(names)

	visited := make(map[string]bool)
	var order []Extension
	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		ext := em.extensions[name]
		for _, dep := range ext.Dependencies() {
			visit(dep)
		}
		order = append(order, ext)
	}
	for _, name := range names {
		visit(name)
	}
	em.loadOrder = order
}

// ModuleInit runs ModuleInit on every registered extension, in dependency
// order, once at engine construction.
func (em *ExtensionManager) ModuleInit() error {
	for _, ext := range em.loadOrder {
		if err := ext.ModuleInit(em.registry); err != nil {
			return fmt.Errorf("module_init failed for %s: %w", ext.Name(), err)
		}
	}
	return nil
}

// RequestInit runs RequestInit on every extension at the start of a
// request.
func (em *ExtensionManager) RequestInit(req *RequestContext) error {
	for _, ext := range em.loadOrder {
		if err := ext.RequestInit(req); err != nil {
			return fmt.Errorf("request_init failed for %s: %w", ext.Name(), err)
		}
	}
	return nil
}

// RequestShutdown runs RequestShutdown on every extension, in reverse
// load order, at the end of a request. It keeps going on error so one
// extension's failure doesn't strand another's resources, returning the
// first error encountered.
func (em *ExtensionManager) RequestShutdown(req *RequestContext) error {
	var firstErr error
	for i := len(em.loadOrder) - 1; i >= 0; i-- {
		ext := em.loadOrder[i]
		if err := ext.RequestShutdown(req); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("request_shutdown failed for %s: %w", ext.Name(), err)
		}
	}
	return firstErr
}

// ModuleShutdown runs ModuleShutdown on every extension, in reverse load
// order, at engine teardown.
func (em *ExtensionManager) ModuleShutdown() error {
	var firstErr error
	for i := len(em.loadOrder) - 1; i >= 0; i-- {
		ext := em.loadOrder[i]
		if err := ext.ModuleShutdown(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("module_shutdown failed for %s: %w", ext.Name(), err)
		}
	}
	return firstErr
}

// Names returns the registered extension names in sorted order.
func (em *ExtensionManager) Names() []string {
	names := make([]string, 0, len(em.extensions))
	for name := range em.extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
