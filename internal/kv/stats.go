package kv

import (
	"context"
	"os"
	"sort"
	"strings"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string        `json:"db_path"`
	DBSizeBytes int64         `json:"db_size_bytes"`
	TotalKeys   int           `json:"total_keys"`
	TotalBytes  int64         `json:"total_bytes"`
	Families    []FamilyStats `json:"families"`
}

// FamilyStats holds per key-family counts.
type FamilyStats struct {
	Family string `json:"family"`
	Keys   int    `json:"keys"`
	Bytes  int64  `json:"bytes"`
}

// Stats returns database statistics.
func (s *SQLite) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, length(value) FROM kv`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	byFamily := map[string]*FamilyStats{}
	for rows.Next() {
		var key string
		var size int64
		if err := rows.Scan(&key, &size); err != nil {
			return st, err
		}
		fam := Family(key)
		fs, ok := byFamily[fam]
		if !ok {
			fs = &FamilyStats{Family: fam}
			byFamily[fam] = fs
		}
		fs.Keys++
		fs.Bytes += size
		st.TotalKeys++
		st.TotalBytes += size
	}
	if err := rows.Err(); err != nil {
		return st, err
	}

	for _, fs := range byFamily {
		st.Families = append(st.Families, *fs)
	}
	sort.Slice(st.Families, func(i, j int) bool {
		if st.Families[i].Keys != st.Families[j].Keys {
			return st.Families[i].Keys > st.Families[j].Keys
		}
		return st.Families[i].Family < st.Families[j].Family
	})
	return st, nil
}

// Family groups numbered keys: "program_day_3_fear_main" -> "program_day".
// Keys without a numeric segment are their own family.
func Family(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if i > 0 && p != "" && isDigits(p) {
			return strings.Join(parts[:i], "_")
		}
	}
	return key
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
