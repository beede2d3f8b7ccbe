package admin

import (
	"context"

	"github.com/quarrylabs/dss-go/pkg/dss"
)

// GeneralSettings holds the general settings document of a DSS instance,
// fetched once via Client.GetGeneralSettings and kept in memory until Save
// writes it back wholesale. The in-memory copy and the remote copy may
// diverge between fetch and save; there is no conflict detection, the last
// save wins.
//
// The document is not safe for concurrent use; callers sharing one across
// goroutines must serialize access themselves.
type GeneralSettings struct {
	client   *dss.Client
	settings map[string]any
}

// Save writes the full in-memory document back to the instance,
// overwriting the remote copy. Concurrent external modifications since the
// fetch are silently lost.
func (s *GeneralSettings) Save(ctx context.Context) error {
	return s.client.PerformEmpty(ctx, "PUT", "/admin/general-settings", nil, s.settings)
}

// Raw returns the live mutable document, for direct edits outside the rule
// abstraction. Changes are only persisted by Save.
func (s *GeneralSettings) Raw() map[string]any {
	return s.settings
}

// AddImpersonationRule appends a rule built with UserImpersonationRule or
// GroupImpersonationRule to the matching rule list.
func (s *GeneralSettings) AddImpersonationRule(rule impersonationRuleSource) {
	kind, record := rule.ruleRecord()
	s.AddRawImpersonationRule(record, kind)
}

// AddRawImpersonationRule appends a raw rule record. Any kind other than
// GroupRule appends to the user rules.
func (s *GeneralSettings) AddRawImpersonationRule(record map[string]any, kind RuleKind) {
	key := "userRules"
	if kind == GroupRule {
		key = "groupRules"
	}

	imp := s.impersonation()
	list, _ := imp[key].([]any)
	imp[key] = append(list, record)
}

// ImpersonationRules returns the rules matching the filter: surviving user
// rules first, then surviving group rules, each sublist in document order.
// The returned views share their backing records with the document. An
// empty filter returns every rule.
func (s *GeneralSettings) ImpersonationRules(filter RuleFilter) []ImpersonationRule {
	var matches []ImpersonationRule

	if filter.Kind == AnyRule || filter.Kind == UserRule {
		for _, record := range s.ruleRecords("userRules") {
			if filter.matchesUserRule(record) {
				matches = append(matches, ImpersonationRule{Kind: UserRule, Raw: record})
			}
		}
	}
	if filter.Kind == AnyRule || filter.Kind == GroupRule {
		for _, record := range s.ruleRecords("groupRules") {
			if filter.matchesGroupRule(record) {
				matches = append(matches, ImpersonationRule{Kind: GroupRule, Raw: record})
			}
		}
	}

	return matches
}

// RemoveImpersonationRules deletes every rule matching the filter from the
// document and returns the number of records removed. The match set is
// computed up front and each matched record is then deleted from its list
// by identity, so structurally equal duplicates are only removed when they
// matched themselves. Deletion is in-memory; call Save to persist it.
func (s *GeneralSettings) RemoveImpersonationRules(filter RuleFilter) int {
	matches := s.ImpersonationRules(filter)

	removed := 0
	for _, m := range matches {
		key := "userRules"
		if m.Kind == GroupRule {
			key = "groupRules"
		}
		if s.removeRecord(key, m.Raw) {
			removed++
		}
	}
	return removed
}

// impersonation returns the impersonation subtree, creating it when the
// document has none.
func (s *GeneralSettings) impersonation() map[string]any {
	imp, ok := s.settings["impersonation"].(map[string]any)
	if !ok {
		imp = map[string]any{}
		s.settings["impersonation"] = imp
	}
	return imp
}

// ruleRecords returns the rule records of one list, skipping entries that
// are not mappings.
func (s *GeneralSettings) ruleRecords(key string) []map[string]any {
	imp, ok := s.settings["impersonation"].(map[string]any)
	if !ok {
		return nil
	}
	list, _ := imp[key].([]any)

	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}

// removeRecord deletes the given backing record from a rule list,
// preserving the order of the remaining rules.
func (s *GeneralSettings) removeRecord(key string, record map[string]any) bool {
	imp, ok := s.settings["impersonation"].(map[string]any)
	if !ok {
		return false
	}
	list, _ := imp[key].([]any)

	for i, item := range list {
		raw, ok := item.(map[string]any)
		if ok && sameRecord(raw, record) {
			imp[key] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}
