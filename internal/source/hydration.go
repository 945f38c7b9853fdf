package source

// looksLikeEvent is the heuristic used when walking hydration payloads from
// client-rendered pages: a node qualifies when it carries both a title-like
// and a date-like field. Keeping the predicate narrow and named makes the
// heuristic auditable in isolation.
func looksLikeEvent(node map[string]any) bool {
	title := stringField(node, "title", "name")
	date := stringField(node, "startDate", "date", "start_date")
	return title != "" && date != ""
}

// walkHydration performs a full recursive visit of a decoded JSON tree,
// invoking visit for every object that looks like an event. Children of
// matched nodes are still visited; providers nest event lists inside event
// groupings.
func walkHydration(node any, visit func(map[string]any)) {
	switch v := node.(type) {
	case map[string]any:
		if looksLikeEvent(v) {
			visit(v)
		}
		for _, child := range v {
			walkHydration(child, visit)
		}
	case []any:
		for _, child := range v {
			walkHydration(child, visit)
		}
	}
}
