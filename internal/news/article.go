package news

// Category is one of the fixed topical buckets articles are filed under.
type Category string

const (
	CategoryGeneral Category = "general"
	CategoryImage   Category = "image"
	CategoryVideo   Category = "video"
	CategoryLLM     Category = "llm"
	CategoryAudio   Category = "audio"
)

// CategoryOrder is the persisted order of the category buckets. Walks over
// the whole store (scoring input, stats) must use this order so results stay
// deterministic between runs.
var CategoryOrder = []Category{CategoryGeneral, CategoryImage, CategoryVideo, CategoryLLM, CategoryAudio}

// MaxPerCategory caps every category's history after a merge.
const MaxPerCategory = 15

// DateFormat is the display format of Article.Date.
const DateFormat = "02 January 2006"

// LastUpdateFormat is the display format of Store.LastUpdate.
const LastUpdateFormat = "02 January 2006 - 15:04"

// Article is one bilingual news item. URL is the identity: unique across the
// whole store, not just within a category. Articles are created once during
// merge and never edited afterwards.
type Article struct {
	Title         string `json:"title"`
	TitleEN       string `json:"title_en"`
	Summary       string `json:"summary"`
	SummaryEN     string `json:"summary_en"`
	LongSummary   string `json:"long_summary"`
	LongSummaryEN string `json:"long_summary_en"`
	Image         string `json:"image"`
	Source        string `json:"source"`
	URL           string `json:"url"`
	Date          string `json:"date"`

	// Category routes the article into its bucket at merge time. It is not
	// written to disk: the bucket an article sits in implies it.
	Category Category `json:"-"`
}

// HotEntry is the trimmed projection of an article inside the hotNews list.
type HotEntry struct {
	Title   string `json:"title"`
	TitleEN string `json:"title_en"`
	Source  string `json:"source"`
	URL     string `json:"url"`
	Date    string `json:"date"`
}

// Store is the persisted aggregate: bounded per-category history plus the
// derived hot-news list. It is loaded once at the start of a run and written
// once at the end.
type Store struct {
	LastUpdate string                 `json:"lastUpdate"`
	Categories map[Category][]Article `json:"categories"`
	HotNews    []HotEntry             `json:"hotNews"`
}

// NewStore returns an empty store with all known categories present.
func NewStore() *Store {
	cats := make(map[Category][]Article, len(CategoryOrder))
	for _, c := range CategoryOrder {
		cats[c] = []Article{}
	}
	return &Store{Categories: cats, HotNews: []HotEntry{}}
}

// URLSet returns every article URL currently present in the store.
func (s *Store) URLSet() map[string]struct{} {
	urls := make(map[string]struct{})
	for _, articles := range s.Categories {
		for _, a := range articles {
			if a.URL != "" {
				urls[a.URL] = struct{}{}
			}
		}
	}
	return urls
}

// AllArticles flattens the store in the fixed category order, newest first
// within each category. The hot-news scorer depends on this order for its
// tie-break.
func (s *Store) AllArticles() []Article {
	var all []Article
	for _, c := range CategoryOrder {
		all = append(all, s.Categories[c]...)
	}
	return all
}

// Count returns the total number of stored articles.
func (s *Store) Count() int {
	n := 0
	for _, articles := range s.Categories {
		n += len(articles)
	}
	return n
}
