/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"errors"
	"fmt"
	"strings"
)

const defaultQueryLimit = 100

// QueryResult is the outcome of running a GTS query expression against a
// store (OP#10).
type QueryResult struct {
	Error   string           `json:"error"`
	Count   int              `json:"count"`
	Limit   int              `json:"limit"`
	Results []map[string]any `json:"results"`
}

// gtsQuery is a parsed query expression: a base ID pattern (exact or
// wildcard) plus an optional bracketed set of "key=value" content filters.
type gtsQuery struct {
	pattern    string
	isWildcard bool
	filters    map[string]string
}

// Query evaluates expr against every registered entity and returns up to
// limit matches. Supported forms:
//
//	gts.x.core.events.event.v1~                     exact type/instance ID
//	gts.x.core.events.*                              wildcard
//	gts.x.core.events.event.v1~a.b.c.d.v1[status=active]  exact instance ID + filters
//	gts.x.core.*[status=active, category=*]          wildcard + filters
//
// Filters are not permitted on type patterns (those ending in '~' or '~*').
func (s *GtsStore) Query(expr string, limit int) *QueryResult {
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	result := &QueryResult{Limit: limit, Results: make([]map[string]any, 0)}

	q, err := parseGtsQuery(expr)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if err := q.validate(); err != nil {
		result.Error = err.Error()
		return result
	}

	for _, entity := range s.byID {
		if len(result.Results) >= limit {
			break
		}
		if len(entity.Content) == 0 || entity.GtsID == nil {
			continue
		}
		if !q.matchesID(entity.GtsID) || !q.matchesFilters(entity.Content) {
			continue
		}
		result.Results = append(result.Results, entity.Content)
	}

	result.Count = len(result.Results)
	return result
}

// parseGtsQuery splits expr into its base pattern and bracketed filter
// clause, if any.
func parseGtsQuery(expr string) (*gtsQuery, error) {
	base, rest, hasFilters := strings.Cut(expr, "[")
	base = strings.TrimSpace(base)

	q := &gtsQuery{
		pattern:    base,
		isWildcard: strings.Contains(base, "*"),
		filters:    map[string]string{},
	}
	if !hasFilters {
		return q, nil
	}

	clause := strings.TrimSpace(rest)
	if !strings.HasSuffix(clause, "]") {
		return nil, errors.New("invalid query: missing closing bracket ']'")
	}
	clause = strings.TrimSuffix(clause, "]")

	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, "~*") {
		return nil, errors.New("invalid query: filters cannot be used with type patterns (ending with ~ or ~*)")
	}

	q.filters = parseFilterClause(clause)
	return q, nil
}

// parseFilterClause turns "k1=v1, k2='v2'" into {"k1":"v1","k2":"v2"},
// stripping surrounding quotes from values.
func parseFilterClause(clause string) map[string]string {
	filters := make(map[string]string)
	if clause == "" {
		return filters
	}
	for _, part := range strings.Split(clause, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		filters[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return filters
}

// validate checks that the query's base pattern is itself well-formed,
// beyond what parsing alone catches.
func (q *gtsQuery) validate() error {
	if q.isWildcard {
		if !strings.HasSuffix(q.pattern, ".*") && !strings.HasSuffix(q.pattern, "~*") {
			return errors.New("invalid query: wildcard patterns must end with .* or ~*")
		}
		if _, err := parseWildcardPattern(q.pattern); err != nil {
			return fmt.Errorf("invalid query: %w", err)
		}
		return nil
	}

	gtsID, err := NewGtsID(q.pattern)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	if len(gtsID.Segments) == 0 {
		return errors.New("invalid query: GTS ID has no valid segments")
	}
	last := gtsID.Segments[len(gtsID.Segments)-1]
	if !last.IsType && last.VerMajor == 0 {
		return errors.New("invalid query: incomplete GTS ID pattern")
	}
	return nil
}

func (q *gtsQuery) matchesID(id *GtsID) bool {
	if id == nil {
		return false
	}
	return MatchIDPattern(id.ID, q.pattern).Match
}

func (q *gtsQuery) matchesFilters(content map[string]any) bool {
	for key, want := range q.filters {
		got := fmt.Sprintf("%v", content[key])
		if want == "*" {
			if got == "" || got == "<nil>" {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}
