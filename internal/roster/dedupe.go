package roster

// Dedupe collapses records to the first one observed per identity key,
// preserving the original relative order of survivors. The remote roster
// endpoints can return duplicate rows for shared flights, so every crew and
// passenger list is passed through here after a fetch.
func Dedupe[T any](items []T, keyOf func(T) string) []T {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		key := keyOf(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
