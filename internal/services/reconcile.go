package services

// reconcile applies the minimal diff between an existing child collection and
// a desired one, both keyed by a natural key. Desired items whose key matches
// an existing child update it in place; unmatched desired items are created in
// their given order; existing children absent from desired are removed. When
// the desired list repeats a key, the first occurrence wins.
func reconcile[E, D any, K comparable](
	existing []E,
	desired []D,
	existingKey func(E) K,
	desiredKey func(D) K,
	update func(E, D) error,
	create func(D) error,
	remove func(E) error,
) error {
	byKey := make(map[K]E, len(existing))
	for _, e := range existing {
		byKey[existingKey(e)] = e
	}

	seen := make(map[K]struct{}, len(desired))
	for _, d := range desired {
		k := desiredKey(d)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if e, ok := byKey[k]; ok {
			if err := update(e, d); err != nil {
				return err
			}
		} else {
			if err := create(d); err != nil {
				return err
			}
		}
	}

	for _, e := range existing {
		if _, keep := seen[existingKey(e)]; !keep {
			if err := remove(e); err != nil {
				return err
			}
		}
	}
	return nil
}
