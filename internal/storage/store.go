// Package storage persists the aggregated news document (news.json).
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ohvali/ainews/internal/logger"
	"github.com/ohvali/ainews/internal/news"
)

// Load reads the persisted store from path. A missing file always means a
// fresh empty store. An unreadable or invalid file is treated the same way
// unless strict is set, in which case the corruption is reported instead of
// silently discarding history.
func Load(path string, strict bool) (*news.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("news store not found, starting fresh", "path", path)
			return news.NewStore(), nil
		}
		if strict {
			return nil, fmt.Errorf("read news store: %w", err)
		}
		logger.Warn("news store unreadable, resetting", "path", path, "error", err)
		return news.NewStore(), nil
	}

	var store news.Store
	if err := json.Unmarshal(data, &store); err != nil {
		if strict {
			return nil, fmt.Errorf("parse news store: %w", err)
		}
		logger.Warn("news store corrupt, resetting", "path", path, "error", err)
		return news.NewStore(), nil
	}

	// Older or hand-edited files may miss categories; the five known buckets
	// must always exist.
	if store.Categories == nil {
		store.Categories = map[news.Category][]news.Article{}
	}
	for _, c := range news.CategoryOrder {
		if store.Categories[c] == nil {
			store.Categories[c] = []news.Article{}
		}
	}
	if store.HotNews == nil {
		store.HotNews = []news.HotEntry{}
	}

	return &store, nil
}

// Save writes the full store to path: two-space indented UTF-8 JSON, non-ASCII
// and HTML characters written literally. The document is written to a temp
// file in the same directory and renamed over the target, so a reader never
// sees a half-written store.
func Save(store *news.Store, path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(store); err != nil {
		return fmt.Errorf("marshal news store: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".news-*.json")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write news store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close news store: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod news store: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace news store: %w", err)
	}

	return nil
}
