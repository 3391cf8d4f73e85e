package services

import "strings"

const defaultPageSize = 20

// pageWindow turns a 1-based page into offset/limit. Out-of-range input is
// tolerated: the offset never goes negative and a non-positive size falls back
// to the default.
func pageWindow(page, pageSize int) (offset, limit int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	offset = (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return offset, pageSize
}

// '!' is the LIKE escape character; backslash behaves differently across dialects
var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// containsPattern builds a LIKE pattern matching s anywhere, lowercased for
// use against LOWER(column)
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// likeClause is the case-insensitive substring predicate for column
func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '!'"
}

// nilIfBlank trims s and returns nil when nothing is left
func nilIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
