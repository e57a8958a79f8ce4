package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"schema-sync/core/utils"
)

// ComparisonResult is a symmetric comparison of two projects. New holds
// entities only in Left, Skipped entities only in Right.
type ComparisonResult struct {
	Left       ProjectRef                        `json:"left"`
	Right      ProjectRef                        `json:"right"`
	Fields     DiffCategory[FieldDefinition]     `json:"fields"`
	IssueTypes DiffCategory[IssueTypeDefinition] `json:"issueTypes"`
	Statuses   DiffCategory[StatusDefinition]    `json:"statuses"`
	Boards     DiffCategory[BoardDefinition]     `json:"boards"`
}

// ComparisonSummary holds per-category counts.
type ComparisonSummary struct {
	Fields     Counts `json:"fields"`
	IssueTypes Counts `json:"issueTypes"`
	Statuses   Counts `json:"statuses"`
	Boards     Counts `json:"boards"`
}

// Summary returns per-category counts.
func (r *ComparisonResult) Summary() ComparisonSummary {
	return ComparisonSummary{
		Fields:     r.Fields.Counts(),
		IssueTypes: r.IssueTypes.Counts(),
		Statuses:   r.Statuses.Counts(),
		Boards:     r.Boards.Counts(),
	}
}

// Compare classifies every entity of two unrelated projects.
func Compare(left, right *ExportedConfiguration) *ComparisonResult {
	rightLabel := "only in " + right.Meta.SourceProject.Key

	return &ComparisonResult{
		Left:  left.Meta.SourceProject,
		Right: right.Meta.SourceProject,
		Fields: compareCollections(left.Fields, right.Fields,
			identityLocator(right.Fields), fieldDifferences, rightLabel),
		IssueTypes: compareCollections(left.IssueTypes, right.IssueTypes,
			identityLocator(right.IssueTypes), issueTypeDifferences, rightLabel),
		Statuses: compareCollections(left.Statuses(), right.Statuses(),
			nameLocator(right.Statuses()), statusDifferences, rightLabel),
		Boards: compareCollections(left.Boards, right.Boards,
			nameLocator(right.Boards), boardDifferences, rightLabel),
	}
}

// locator returns the index of the right-hand entity matching a left one, or -1.
type locator[T Identity] func(T) int

func identityLocator[T Identity](right []T) locator[T] {
	m := NewMatcher(right)
	return func(item T) int {
		idx, _ := m.locate(item)
		return idx
	}
}

// nameLocator matches by normalized name only; ids of the same status or board
// are unrelated across projects.
func nameLocator[T Identity](right []T) locator[T] {
	byName := make(map[string]int, len(right))
	for i, r := range right {
		n := utils.NormalizeName(r.EntityName())
		if _, ok := byName[n]; !ok {
			byName[n] = i
		}
	}
	return func(item T) int {
		if idx, ok := byName[utils.NormalizeName(item.EntityName())]; ok {
			return idx
		}
		return -1
	}
}

func compareCollections[T Identity](left, right []T, locate locator[T], differences func(l, r T) []string, rightLabel string) DiffCategory[T] {
	var cat DiffCategory[T]
	matched := make(map[int]struct{}, len(right))

	for _, l := range left {
		idx := locate(l)
		if idx < 0 {
			cat.Add(DiffItem[T]{Item: l, Status: StatusNew, Reason: "only in left"})
			continue
		}
		matched[idx] = struct{}{}
		r := right[idx]
		if diffs := differences(l, r); len(diffs) > 0 {
			cat.Add(DiffItem[T]{
				Item:        l,
				Status:      StatusModified,
				Reason:      strings.Join(diffs, "; "),
				BeforeValue: l.EntityID(),
				AfterValue:  r.EntityID(),
			})
			continue
		}
		cat.Add(DiffItem[T]{Item: l, Status: StatusUnchanged})
	}

	for i, r := range right {
		if _, ok := matched[i]; ok {
			continue
		}
		cat.Add(DiffItem[T]{Item: r, Status: StatusSkipped, Reason: rightLabel})
	}
	return cat
}

func fieldDifferences(l, r FieldDefinition) []string {
	var diffs []string
	if l.Type != r.Type {
		diffs = append(diffs, fmt.Sprintf("type: %s vs %s", l.Type, r.Type))
	}
	onlyLeft, onlyRight := optionSetDifference(l.ActiveOptions(), r.ActiveOptions())
	if len(onlyLeft) > 0 {
		diffs = append(diffs, "options only in left: "+strings.Join(onlyLeft, ", "))
	}
	if len(onlyRight) > 0 {
		diffs = append(diffs, "options only in right: "+strings.Join(onlyRight, ", "))
	}
	return diffs
}

func optionSetDifference(left, right []FieldOption) (onlyLeft, onlyRight []string) {
	inRight := make(map[string]struct{}, len(right))
	for _, o := range right {
		inRight[utils.NormalizeName(o.Value)] = struct{}{}
	}
	inLeft := make(map[string]struct{}, len(left))
	for _, o := range left {
		n := utils.NormalizeName(o.Value)
		inLeft[n] = struct{}{}
		if _, ok := inRight[n]; !ok {
			onlyLeft = append(onlyLeft, o.Value)
		}
	}
	for _, o := range right {
		if _, ok := inLeft[utils.NormalizeName(o.Value)]; !ok {
			onlyRight = append(onlyRight, o.Value)
		}
	}
	sort.Strings(onlyLeft)
	sort.Strings(onlyRight)
	return onlyLeft, onlyRight
}

func issueTypeDifferences(l, r IssueTypeDefinition) []string {
	var diffs []string
	if l.IsSubtask != r.IsSubtask {
		diffs = append(diffs, fmt.Sprintf("subtask: %t vs %t", l.IsSubtask, r.IsSubtask))
	}
	if l.HierarchyLevel != r.HierarchyLevel {
		diffs = append(diffs, fmt.Sprintf("hierarchy level: %d vs %d", l.HierarchyLevel, r.HierarchyLevel))
	}
	return diffs
}

func statusDifferences(l, r StatusDefinition) []string {
	if l.Category.Key != r.Category.Key {
		return []string{fmt.Sprintf("category: %s vs %s", l.Category.Key, r.Category.Key)}
	}
	return nil
}

func boardDifferences(l, r BoardDefinition) []string {
	var diffs []string
	if l.Type != r.Type {
		diffs = append(diffs, fmt.Sprintf("type: %s vs %s", l.Type, r.Type))
	}
	lc, rc := l.ColumnNames(), r.ColumnNames()
	if !sameSequence(lc, rc) {
		diffs = append(diffs, fmt.Sprintf("columns: [%s] vs [%s]", strings.Join(lc, ", "), strings.Join(rc, ", ")))
	}
	return diffs
}

func sameSequence(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !utils.SameName(a[i], b[i]) {
			return false
		}
	}
	return true
}
