package chat

// Registry tracks live connection ids and the derived count. It is owned
// exclusively by the hub loop: all mutation happens on that single
// goroutine, so no locking is needed here.
type Registry struct {
	ids map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

// Register adds id. Registering an id twice is a no-op.
func (r *Registry) Register(id string) {
	r.ids[id] = struct{}{}
}

// Unregister removes id if present; unknown ids are benign.
func (r *Registry) Unregister(id string) {
	delete(r.ids, id)
}

func (r *Registry) Contains(id string) bool {
	_, ok := r.ids[id]
	return ok
}

func (r *Registry) Count() int {
	return len(r.ids)
}
