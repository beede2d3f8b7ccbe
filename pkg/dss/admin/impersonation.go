package admin

import "reflect"

// Rule matching methods.
const (
	RuleTypeIdentity      = "IDENTITY"
	RuleTypeSingleMapping = "SINGLE_MAPPING"
	RuleTypeRegexp        = "REGEXP_RULE"
)

// Rule scopes. Only user-level rules carry a scope; group-level rules have
// no scope concept.
const (
	RuleScopeGlobal  = "GLOBAL"
	RuleScopeProject = "PROJECT"
)

// RuleKind tags an impersonation rule as user-level or group-level. All
// dispatch happens on this tag.
type RuleKind int

const (
	// AnyRule matches both user-level and group-level rules in a filter.
	AnyRule RuleKind = iota
	// UserRule marks a user-level rule.
	UserRule
	// GroupRule marks a group-level rule.
	GroupRule
)

func (k RuleKind) String() string {
	switch k {
	case UserRule:
		return "user"
	case GroupRule:
		return "group"
	default:
		return "any"
	}
}

// ImpersonationRule is a view over one rule record of the settings
// document. Raw is the backing record itself, not a copy: mutating it
// mutates the document in place.
type ImpersonationRule struct {
	Kind RuleKind
	Raw  map[string]any
}

// Type returns the rule's matching method.
func (r ImpersonationRule) Type() string {
	return stringField(r.Raw, "type")
}

// Scope returns the rule's scope. Empty for group-level rules.
func (r ImpersonationRule) Scope() string {
	return stringField(r.Raw, "scope")
}

// ProjectKey returns the project a project-scoped rule applies to.
func (r ImpersonationRule) ProjectKey() string {
	return stringField(r.Raw, "projectKey")
}

// Source returns what the rule matches against: the mapped user or group
// for a single mapping, the pattern for a regexp rule, empty for an
// identity rule.
func (r ImpersonationRule) Source() string {
	switch r.Type() {
	case RuleTypeSingleMapping:
		if r.Kind == GroupRule {
			return stringField(r.Raw, "dssGroup")
		}
		return stringField(r.Raw, "dssUser")
	case RuleTypeRegexp:
		return stringField(r.Raw, "ruleFrom")
	default:
		return ""
	}
}

// TargetUnix returns the target UNIX user.
func (r ImpersonationRule) TargetUnix() string {
	return stringField(r.Raw, "targetUnix")
}

// TargetHadoop returns the target Hadoop user. Empty when the rule leaves
// it unset; consumers fall back to the UNIX target themselves.
func (r ImpersonationRule) TargetHadoop() string {
	return stringField(r.Raw, "targetHadoop")
}

// RuleFilter selects impersonation rules by exact equality on each supplied
// field; empty fields impose no constraint. Kind restricts the search to
// one of the two rule lists. Fields a rule kind does not carry (ProjectKey
// and Scope on group rules, DSSUser on group rules, DSSGroup on user rules)
// never narrow that list.
type RuleFilter struct {
	DSSUser    string
	DSSGroup   string
	UnixUser   string
	HadoopUser string
	ProjectKey string
	Scope      string
	Type       string
	Kind       RuleKind
}

func (f RuleFilter) matchesUserRule(record map[string]any) bool {
	return matchField(record, "dssUser", f.DSSUser) &&
		matchField(record, "targetUnix", f.UnixUser) &&
		matchField(record, "targetHadoop", f.HadoopUser) &&
		matchField(record, "projectKey", f.ProjectKey) &&
		matchField(record, "type", f.Type) &&
		matchField(record, "scope", f.Scope)
}

func (f RuleFilter) matchesGroupRule(record map[string]any) bool {
	return matchField(record, "dssGroup", f.DSSGroup) &&
		matchField(record, "targetUnix", f.UnixUser) &&
		matchField(record, "targetHadoop", f.HadoopUser) &&
		matchField(record, "type", f.Type)
}

func matchField(record map[string]any, key, want string) bool {
	if want == "" {
		return true
	}
	return stringField(record, key) == want
}

func stringField(record map[string]any, key string) string {
	value, _ := record[key].(string)
	return value
}

// sameRecord reports whether two views share the same backing record.
func sameRecord(a, b map[string]any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// impersonationRuleSource is implemented by the rule builders.
type impersonationRuleSource interface {
	ruleRecord() (RuleKind, map[string]any)
}

// UserImpersonationRule builds user-level rule records for the
// impersonation settings. Every mutator returns the builder so calls can be
// chained; the builder never validates, malformed combinations are only
// rejected by the instance on save. Switching the rule type does not clear
// fields set by a previous type.
type UserImpersonationRule struct {
	// Raw is the backing rule record.
	Raw map[string]any
}

// NewUserImpersonationRule creates a fresh user-level rule, defaulting to a
// global identity rule.
func NewUserImpersonationRule() *UserImpersonationRule {
	return &UserImpersonationRule{Raw: map[string]any{
		"scope": RuleScopeGlobal,
		"type":  RuleTypeIdentity,
	}}
}

// WrapUserImpersonationRule wraps an existing rule record for editing.
func WrapUserImpersonationRule(raw map[string]any) *UserImpersonationRule {
	return &UserImpersonationRule{Raw: raw}
}

func (r *UserImpersonationRule) ruleRecord() (RuleKind, map[string]any) {
	return UserRule, r.Raw
}

// ScopeGlobal makes the rule apply to all projects.
func (r *UserImpersonationRule) ScopeGlobal() *UserImpersonationRule {
	r.Raw["scope"] = RuleScopeGlobal
	return r
}

// ScopeProject makes the rule apply to a single project.
func (r *UserImpersonationRule) ScopeProject(projectKey string) *UserImpersonationRule {
	r.Raw["scope"] = RuleScopeProject
	r.Raw["projectKey"] = projectKey
	return r
}

// Identity makes the rule map each user to a UNIX user of the same name.
func (r *UserImpersonationRule) Identity() *UserImpersonationRule {
	r.Raw["type"] = RuleTypeIdentity
	return r
}

// Single makes the rule map one user to one UNIX user. An empty hadoopUser
// leaves the Hadoop target unset.
func (r *UserImpersonationRule) Single(dssUser, unixUser, hadoopUser string) *UserImpersonationRule {
	r.Raw["type"] = RuleTypeSingleMapping
	r.Raw["dssUser"] = dssUser
	setTargets(r.Raw, unixUser, hadoopUser)
	return r
}

// Regexp makes the rule map every user whose name matches the pattern to
// one UNIX user.
func (r *UserImpersonationRule) Regexp(pattern, unixUser, hadoopUser string) *UserImpersonationRule {
	r.Raw["type"] = RuleTypeRegexp
	r.Raw["ruleFrom"] = pattern
	setTargets(r.Raw, unixUser, hadoopUser)
	return r
}

// GroupImpersonationRule builds group-level rule records for the
// impersonation settings. Same contract as UserImpersonationRule; group
// rules have no scope.
type GroupImpersonationRule struct {
	// Raw is the backing rule record.
	Raw map[string]any
}

// NewGroupImpersonationRule creates a fresh group-level rule, defaulting to
// an identity rule.
func NewGroupImpersonationRule() *GroupImpersonationRule {
	return &GroupImpersonationRule{Raw: map[string]any{
		"type": RuleTypeIdentity,
	}}
}

// WrapGroupImpersonationRule wraps an existing rule record for editing.
func WrapGroupImpersonationRule(raw map[string]any) *GroupImpersonationRule {
	return &GroupImpersonationRule{Raw: raw}
}

func (r *GroupImpersonationRule) ruleRecord() (RuleKind, map[string]any) {
	return GroupRule, r.Raw
}

// Identity makes the rule map each group member to a UNIX user of the same
// name.
func (r *GroupImpersonationRule) Identity() *GroupImpersonationRule {
	r.Raw["type"] = RuleTypeIdentity
	return r
}

// Single makes the rule map one group to one UNIX user.
func (r *GroupImpersonationRule) Single(dssGroup, unixUser, hadoopUser string) *GroupImpersonationRule {
	r.Raw["type"] = RuleTypeSingleMapping
	r.Raw["dssGroup"] = dssGroup
	setTargets(r.Raw, unixUser, hadoopUser)
	return r
}

// Regexp makes the rule map every group whose name matches the pattern to
// one UNIX user.
func (r *GroupImpersonationRule) Regexp(pattern, unixUser, hadoopUser string) *GroupImpersonationRule {
	r.Raw["type"] = RuleTypeRegexp
	r.Raw["ruleFrom"] = pattern
	setTargets(r.Raw, unixUser, hadoopUser)
	return r
}

func setTargets(record map[string]any, unixUser, hadoopUser string) {
	record["targetUnix"] = unixUser
	if hadoopUser != "" {
		record["targetHadoop"] = hadoopUser
	} else {
		delete(record, "targetHadoop")
	}
}
