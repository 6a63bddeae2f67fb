package breadcrumb

// Resolve walks from key up through its parents and returns the trail root
// first. An empty key resolves to an empty trail.
func (r *Registry) Resolve(rc RuleContext, key Key) (Trail, error) {
	if key == "" {
		return Trail{}, nil
	}
	var (
		reversed []Link
		path     []Key
		child    Key
	)
	seen := map[Key]struct{}{}
	for key != "" {
		if _, revisited := seen[key]; revisited {
			return nil, &CyclicBreadcrumbError{Path: append(path, key)}
		}
		seen[key] = struct{}{}
		path = append(path, key)

		def, ok := r.Lookup(key)
		if !ok {
			return nil, &UnknownBreadcrumbError{Key: key, Child: child}
		}
		link, err := def.link(rc)
		if err != nil {
			return nil, err
		}
		reversed = append(reversed, link)

		parentKey, parentArgs, err := def.parent(rc)
		if err != nil {
			return nil, err
		}
		child = key
		key = parentKey
		rc = rc.withArgs(parentArgs)
	}

	trail := make(Trail, len(reversed))
	for idx, link := range reversed {
		trail[len(reversed)-1-idx] = link
	}
	return trail, nil
}
