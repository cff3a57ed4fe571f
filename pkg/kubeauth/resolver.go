package kubeauth

// Store looks credentials up by id. ok is false when the id is unknown.
type Store interface {
	FindByID(id string) (cred *Credential, ok bool, err error)
}

// Resolver resolves credential ids into Material.
type Resolver struct {
	Store    Store
	Registry *Registry
}

// NewResolver returns a resolver over store using the default registry.
func NewResolver(store Store) *Resolver {
	return &Resolver{Store: store, Registry: DefaultRegistry()}
}

// Resolve looks up id and converts the credential. Each call returns fresh
// material, so an ImportedKubeconfig can be modified by the caller.
func (r *Resolver) Resolve(id string) (Material, error) {
	cred, ok, err := r.Store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &CredentialNotFoundError{ID: id}
	}
	return r.Registry.Convert(cred)
}
