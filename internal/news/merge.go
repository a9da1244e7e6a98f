package news

// Merge folds already-categorized candidates into the store and returns the
// number of articles actually added.
//
// One entry per URL across the whole store: a candidate whose URL is already
// present (in any category, or earlier in the same batch) is skipped, first
// occurrence wins. New articles go to the head of their category, so each
// sequence stays newest-first, and after the batch every category is truncated
// to MaxPerCategory from the tail. Re-running Merge with the same candidates
// adds nothing.
func Merge(store *Store, candidates []Article) int {
	if store.Categories == nil {
		store.Categories = NewStore().Categories
	}

	seen := store.URLSet()

	added := 0
	for _, a := range candidates {
		if a.URL == "" {
			continue
		}
		if _, dup := seen[a.URL]; dup {
			continue
		}
		seen[a.URL] = struct{}{}

		cat := a.Category
		if _, known := store.Categories[cat]; !known {
			cat = CategoryGeneral
		}

		store.Categories[cat] = append([]Article{a}, store.Categories[cat]...)
		added++
	}

	for cat, articles := range store.Categories {
		if len(articles) > MaxPerCategory {
			store.Categories[cat] = articles[:MaxPerCategory]
		}
	}

	return added
}
