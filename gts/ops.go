/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

// This file exposes the identifier-level read operations (OP#1, #3, #5) as
// plain functions over a GTS ID string, independent of any registry/store.

// IDValidationResult is the outcome of validating a candidate GTS identifier.
type IDValidationResult struct {
	ID    string `json:"id"`
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

// ValidateGtsID reports whether gtsID is well-formed, carrying the parse
// failure reason (if any) rather than just a boolean.
func ValidateGtsID(gtsID string) *IDValidationResult {
	if _, err := NewGtsID(gtsID); err != nil {
		return &IDValidationResult{ID: gtsID, Valid: false, Error: err.Error()}
	}
	return &IDValidationResult{ID: gtsID, Valid: true}
}

// ExtractGtsID pulls a GTS identifier out of a decoded JSON document, per cfg.
func ExtractGtsID(content map[string]any, cfg *GtsConfig) *ExtractIDResult {
	return ExtractID(content, cfg)
}

// GtsIDSegmentView is the JSON-facing projection of a parsed GtsIDSegment,
// dropping the Num/Offset/Segment bookkeeping fields that only matter while
// parsing.
type GtsIDSegmentView struct {
	Vendor    string
	Package   string
	Namespace string
	Type      string
	VerMajor  int
	VerMinor  *int
	IsType    bool
}

// ParseIDResult is the outcome of decomposing a GTS identifier into its
// segment chain.
type ParseIDResult struct {
	ID       string
	OK       bool
	Segments []GtsIDSegmentView
	Error    string
}

// ParseGtsID decomposes gtsID into its '~'-delimited segment chain (OP#3).
// On failure, OK is false and Error carries the parse failure reason.
func ParseGtsID(gtsID string) ParseIDResult {
	id, err := NewGtsID(gtsID)
	if err != nil {
		return ParseIDResult{ID: gtsID, OK: false, Error: err.Error()}
	}

	views := make([]GtsIDSegmentView, len(id.Segments))
	for i, seg := range id.Segments {
		views[i] = GtsIDSegmentView{
			Vendor:    seg.Vendor,
			Package:   seg.Package,
			Namespace: seg.Namespace,
			Type:      seg.Type,
			VerMajor:  seg.VerMajor,
			VerMinor:  seg.VerMinor,
			IsType:    seg.IsType,
		}
	}
	return ParseIDResult{ID: gtsID, OK: true, Segments: views}
}

// UUIDResult is the outcome of deriving a UUID from a GTS identifier.
type UUIDResult struct {
	ID    string `json:"id"`
	UUID  string `json:"uuid"`
	Error string `json:"error"`
}

// IDToUUID derives the deterministic v5 UUID for gtsID (OP#5).
func IDToUUID(gtsID string) *UUIDResult {
	id, err := NewGtsID(gtsID)
	if err != nil {
		return &UUIDResult{ID: gtsID, Error: err.Error()}
	}
	return &UUIDResult{ID: gtsID, UUID: id.ToUUID().String()}
}
