/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Grammar constants for the GTS identifier format:
//
//	gts.<segment>[~<segment>]*
//
// where each segment is a dot-path of 5-6 lowercase tokens
// (vendor.package.namespace.type.vMAJOR[.MINOR]), optionally truncated by a
// '*' wildcard, and a segment ending in '~' marks a type reference rather
// than an instance.
const (
	// GtsPrefix is the mandatory leading literal of every GTS identifier.
	GtsPrefix = "gts."
	// GtsURIPrefix wraps a GTS ID for use as a JSON Schema $id URI
	// (e.g. "gts://gts.x.y.z..."). Only used at the schema-serialization
	// boundary, never during GTS ID parsing itself.
	GtsURIPrefix = "gts://"
	// MaxIDLength bounds the total length of a GTS identifier string.
	MaxIDLength = 1024

	minSegmentTokens = 5
	maxSegmentTokens = 6
)

// GtsNamespace is the UUID v5 namespace all GTS UUIDs are derived from:
// uuid5(uuid.NameSpaceURL, "gts").
var GtsNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("gts"))

// tokenPattern matches one lowercase dot-path token: a leading lowercase
// letter or underscore followed by lowercase letters, digits, or underscores.
var tokenPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// InvalidGtsIDError reports why a candidate string failed to parse as a
// top-level GTS identifier (as opposed to a single bad segment within it).
type InvalidGtsIDError struct {
	GtsID string
	Cause string
}

func (e *InvalidGtsIDError) Error() string {
	if e.Cause == "" {
		return fmt.Sprintf("invalid GTS identifier: %s", e.GtsID)
	}
	return fmt.Sprintf("invalid GTS identifier: %s: %s", e.GtsID, e.Cause)
}

func invalidID(id, cause string) error {
	return &InvalidGtsIDError{GtsID: id, Cause: cause}
}

// InvalidSegmentError reports a malformed segment at a known position within
// an otherwise well-formed GTS identifier.
type InvalidSegmentError struct {
	Num     int
	Offset  int
	Segment string
	Cause   string
}

func (e *InvalidSegmentError) Error() string {
	if e.Cause == "" {
		return fmt.Sprintf("invalid GTS segment #%d @ offset %d: '%s'", e.Num, e.Offset, e.Segment)
	}
	return fmt.Sprintf("invalid GTS segment #%d @ offset %d: '%s': %s", e.Num, e.Offset, e.Segment, e.Cause)
}

func segmentError(num, offset int, raw, cause string) error {
	return &InvalidSegmentError{Num: num, Offset: offset, Segment: raw, Cause: cause}
}

// GtsIDSegment is one parsed "vendor.package.namespace.type.vMAJOR[.MINOR]"
// dot-path between '~' delimiters.
type GtsIDSegment struct {
	Num        int
	Offset     int
	Segment    string
	Vendor     string
	Package    string
	Namespace  string
	Type       string
	VerMajor   int
	VerMinor   *int
	IsType     bool
	IsWildcard bool
}

// GtsID is a fully parsed, validated GTS identifier: a '~'-delimited chain
// of one or more segments.
type GtsID struct {
	ID       string
	Segments []*GtsIDSegment
}

// NewGtsID parses and validates id as a GTS identifier, returning every
// structural violation as a typed error (InvalidGtsIDError or
// InvalidSegmentError).
func NewGtsID(id string) (*GtsID, error) {
	raw := strings.TrimSpace(id)

	switch {
	case raw != strings.ToLower(raw):
		return nil, invalidID(id, "must be lower case")
	case strings.Contains(raw, "-"):
		return nil, invalidID(id, "must not contain '-'")
	case !strings.HasPrefix(raw, GtsPrefix):
		return nil, invalidID(id, fmt.Sprintf("does not start with '%s'", GtsPrefix))
	case len(raw) > MaxIDLength:
		return nil, invalidID(id, "exceeds maximum length")
	}

	chain := splitTypeSegments(raw[len(GtsPrefix):])
	gtsID := &GtsID{ID: raw, Segments: make([]*GtsIDSegment, 0, len(chain))}

	offset := len(GtsPrefix)
	for i, raw := range chain {
		if raw == "" {
			return nil, invalidID(id, fmt.Sprintf("segment #%d @ offset %d is empty", i+1, offset))
		}
		segment, err := parseSegment(i+1, offset, raw)
		if err != nil {
			return nil, err
		}
		gtsID.Segments = append(gtsID.Segments, segment)
		offset += len(raw)
	}

	return gtsID, nil
}

// IsValidGtsID reports whether s parses as a well-formed GTS identifier.
func IsValidGtsID(s string) bool {
	if !strings.HasPrefix(s, GtsPrefix) {
		return false
	}
	_, err := NewGtsID(s)
	return err == nil
}

// IsType reports whether the identifier names a type (its final segment ends
// in '~') rather than an instance.
func (g *GtsID) IsType() bool {
	return strings.HasSuffix(g.ID, "~")
}

// ToUUID derives a deterministic v5 UUID from the identifier's full string
// form, namespaced under GtsNamespace.
func (g *GtsID) ToUUID() uuid.UUID {
	return uuid.NewSHA1(GtsNamespace, []byte(g.ID))
}

// splitTypeSegments splits the part of a GTS ID after the "gts." prefix into
// its '~'-delimited segments, keeping each trailing '~' attached to the
// segment it closes. A remainder with no '~' at all is a single segment.
func splitTypeSegments(remainder string) []string {
	if !strings.Contains(remainder, "~") {
		return []string{remainder}
	}

	var segments []string
	start := 0
	for i := 0; i < len(remainder); i++ {
		if remainder[i] != '~' {
			continue
		}
		segments = append(segments, remainder[start:i+1])
		start = i + 1
	}
	if start < len(remainder) {
		segments = append(segments, remainder[start:])
	}
	return segments
}

// parseVersionToken parses a version component. When requireVPrefix is set
// the token must be of the form "vN" (major version); otherwise it is a bare
// integer (minor version). Leading zeros and negative values are rejected.
func parseVersionToken(token string, requireVPrefix bool) (int, bool) {
	digits := token
	if requireVPrefix {
		if !strings.HasPrefix(token, "v") {
			return 0, false
		}
		digits = token[1:]
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || strconv.Itoa(n) != digits {
		return 0, false
	}
	return n, true
}

// parseSegment parses one "vendor.package.namespace.type.vMAJOR[.MINOR]"
// dot-path, stopping early (with IsWildcard set) the moment a '*' token is
// encountered in any position.
func parseSegment(num, offset int, raw string) (*GtsIDSegment, error) {
	seg := &GtsIDSegment{
		Num:     num,
		Offset:  offset,
		Segment: strings.TrimSpace(raw),
	}

	body := seg.Segment
	switch strings.Count(body, "~") {
	case 0:
		// not a type segment
	case 1:
		if !strings.HasSuffix(body, "~") {
			return nil, segmentError(num, offset, raw, "'~' must be at the end")
		}
		seg.IsType = true
		body = body[:len(body)-1]
	default:
		return nil, segmentError(num, offset, raw, "too many '~' characters")
	}

	tokens := strings.Split(body, ".")
	if len(tokens) > maxSegmentTokens {
		return nil, segmentError(num, offset, raw, "too many tokens")
	}
	if !strings.HasSuffix(body, "*") {
		if len(tokens) < minSegmentTokens {
			return nil, segmentError(num, offset, raw, "too few tokens")
		}
		for _, tok := range tokens[:4] {
			if !tokenPattern.MatchString(tok) {
				return nil, segmentError(num, offset, raw, "invalid segment token: "+tok)
			}
		}
	}

	fields := []*string{&seg.Vendor, &seg.Package, &seg.Namespace, &seg.Type}
	for i, field := range fields {
		if i >= len(tokens) {
			return seg, nil
		}
		if tokens[i] == "*" {
			seg.IsWildcard = true
			return seg, nil
		}
		*field = tokens[i]
	}

	if len(tokens) > 4 {
		if tokens[4] == "*" {
			seg.IsWildcard = true
			return seg, nil
		}
		major, ok := parseVersionToken(tokens[4], true)
		if !ok {
			return nil, segmentError(num, offset, raw, "major version must be 'v' followed by a non-negative integer")
		}
		seg.VerMajor = major
	}

	if len(tokens) > 5 {
		if tokens[5] == "*" {
			seg.IsWildcard = true
			return seg, nil
		}
		minor, ok := parseVersionToken(tokens[5], false)
		if !ok {
			return nil, segmentError(num, offset, raw, "minor version must be a non-negative integer")
		}
		seg.VerMinor = &minor
	}

	return seg, nil
}
