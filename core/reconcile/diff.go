package reconcile

import "fmt"

// TargetState is the live state of the target project used for diffing.
type TargetState struct {
	Fields     []FieldDefinition
	IssueTypes []IssueTypeDefinition
	Statuses   []StatusDefinition
	Boards     []BoardDefinition
}

// Diff classifies every entity of source against target. It never produces
// StatusSkipped; that status belongs to Compare.
func Diff(source *ExportedConfiguration, target TargetState) *ConfigurationDiff {
	return &ConfigurationDiff{
		Fields:     diffFields(source.Fields, target.Fields),
		IssueTypes: diffIssueTypes(source.IssueTypes, target.IssueTypes),
		Workflows:  diffWorkflows(source.Workflows, target.Statuses),
		Boards:     diffBoards(source.Boards, target.Boards),
	}
}

func diffFields(source, target []FieldDefinition) DiffCategory[FieldDefinition] {
	var cat DiffCategory[FieldDefinition]
	m := NewMatcher(target)
	for _, f := range source {
		match, kind := m.Match(f)
		switch kind {
		case MatchNone:
			cat.Add(DiffItem[FieldDefinition]{Item: f, Status: StatusNew, Reason: "will be created"})
		case MatchByName:
			cat.Add(renamedItem(f, match, fieldReason(f, "exists in target with a different id")))
		default:
			if len(f.Options) > 0 {
				cat.Add(DiffItem[FieldDefinition]{Item: f, Status: StatusModified, Reason: fieldReason(f, "exists in target")})
			} else {
				cat.Add(DiffItem[FieldDefinition]{Item: f, Status: StatusUnchanged, Reason: "already exists"})
			}
		}
	}
	return cat
}

func fieldReason(f FieldDefinition, base string) string {
	if len(f.Options) == 0 {
		return base
	}
	return fmt.Sprintf("%s; %d options will be reconciled", base, len(f.Options))
}

func diffIssueTypes(source, target []IssueTypeDefinition) DiffCategory[IssueTypeDefinition] {
	var cat DiffCategory[IssueTypeDefinition]
	m := NewMatcher(target)
	for _, t := range source {
		match, kind := m.Match(t)
		switch kind {
		case MatchNone:
			cat.Add(DiffItem[IssueTypeDefinition]{Item: t, Status: StatusNew, Reason: "will be created"})
		case MatchByName:
			cat.Add(renamedItem(t, match, "exists in target with a different id"))
		default:
			cat.Add(DiffItem[IssueTypeDefinition]{Item: t, Status: StatusUnchanged, Reason: "already exists"})
		}
	}
	return cat
}

// diffWorkflows only looks at status membership; transitions are never diffed.
func diffWorkflows(source []WorkflowDefinition, targetStatuses []StatusDefinition) DiffCategory[WorkflowDefinition] {
	var cat DiffCategory[WorkflowDefinition]
	m := NewMatcher(targetStatuses)
	for _, w := range source {
		missing := MissingStatuses(w, m)
		if len(missing) == 0 {
			cat.Add(DiffItem[WorkflowDefinition]{Item: w, Status: StatusUnchanged, Reason: "all statuses exist"})
			continue
		}
		cat.Add(DiffItem[WorkflowDefinition]{
			Item:   w,
			Status: StatusModified,
			Reason: fmt.Sprintf("%d statuses will be created", len(missing)),
		})
	}
	return cat
}

// MissingStatuses returns the statuses of w that the target does not have by
// id or name.
func MissingStatuses(w WorkflowDefinition, target *Matcher[StatusDefinition]) []StatusDefinition {
	var missing []StatusDefinition
	for _, s := range w.Statuses {
		if !target.Contains(s) {
			missing = append(missing, s)
		}
	}
	return missing
}

func diffBoards(source, target []BoardDefinition) DiffCategory[BoardDefinition] {
	var cat DiffCategory[BoardDefinition]
	m := NewMatcher(target)
	for _, b := range source {
		match, kind := m.Match(b)
		switch kind {
		case MatchNone:
			cat.Add(DiffItem[BoardDefinition]{Item: b, Status: StatusNew, Reason: "will be created"})
		case MatchByName:
			cat.Add(renamedItem(b, match, "exists in target with a different id"))
		default:
			cat.Add(DiffItem[BoardDefinition]{Item: b, Status: StatusUnchanged, Reason: "already exists"})
		}
	}
	return cat
}

// renamedItem reports a name-fallback match. It is always Modified so callers
// can see the identifier differs between projects.
func renamedItem[T Identity](source, target T, reason string) DiffItem[T] {
	return DiffItem[T]{
		Item:        source,
		Status:      StatusModified,
		Reason:      reason,
		BeforeValue: source.EntityID(),
		AfterValue:  target.EntityID(),
	}
}
