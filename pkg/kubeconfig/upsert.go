package kubeconfig

// namedEntry is a cluster, context or user entry, keyed by its name.
type namedEntry interface {
	*ClusterConfig | *ContextConfig | *UserConfig
	entryName() string
}

func lookup[E namedEntry](entries []E, name string) (E, bool) {
	for _, e := range entries {
		if e.entryName() == name {
			return e, true
		}
	}
	var zero E
	return zero, false
}

func find[E namedEntry](entries []E, name string) E {
	e, _ := lookup(entries, name)
	return e
}

// upsert returns the entry called name. When there is none, the entry built
// by create is appended, so entries keep their insertion order.
func upsert[E namedEntry](entries *[]E, name string, create func(name string) E) E {
	if e, ok := lookup(*entries, name); ok {
		return e
	}
	e := create(name)
	*entries = append(*entries, e)
	return e
}
