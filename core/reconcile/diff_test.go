package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func status(id, name, category string) StatusDefinition {
	return StatusDefinition{ID: id, Name: name, Category: StatusCategory{Key: category}}
}

func TestDiff_NewFieldWithoutOptions(t *testing.T) {
	source := &ExportedConfiguration{
		Fields: []FieldDefinition{{ID: "cf1", Name: "Story Points", IsCustom: true}},
	}

	d := Diff(source, TargetState{})

	require.Len(t, d.Fields.New, 1)
	assert.Equal(t, "cf1", d.Fields.New[0].Item.ID)
	assert.Equal(t, StatusNew, d.Fields.New[0].Status)
	assert.Equal(t, "will be created", d.Fields.New[0].Reason)
	assert.Empty(t, d.Fields.Modified)
	assert.Empty(t, d.Fields.Unchanged)
}

func TestDiff_FieldsByID(t *testing.T) {
	source := &ExportedConfiguration{
		Fields: []FieldDefinition{
			{ID: "cf1", Name: "Story Points"},
			{ID: "cf2", Name: "Team", Options: []FieldOption{{Value: "Red"}}},
		},
	}
	target := TargetState{Fields: []FieldDefinition{{ID: "cf1", Name: "Story Points"}, {ID: "cf2", Name: "Team"}}}

	d := Diff(source, target)

	require.Len(t, d.Fields.Unchanged, 1)
	assert.Equal(t, "cf1", d.Fields.Unchanged[0].Item.ID)
	require.Len(t, d.Fields.Modified, 1)
	assert.Equal(t, "cf2", d.Fields.Modified[0].Item.ID)
	assert.Empty(t, d.Fields.Modified[0].BeforeValue)
}

func TestDiff_NameFallbackIsAlwaysModified(t *testing.T) {
	source := &ExportedConfiguration{
		Fields:     []FieldDefinition{{ID: "cf1", Name: "Story Points"}},
		IssueTypes: []IssueTypeDefinition{{ID: "1", Name: "Story"}},
		Boards:     []BoardDefinition{{ID: "5", Name: "Team board"}},
	}
	target := TargetState{
		Fields:     []FieldDefinition{{ID: "cf9", Name: "story points"}},
		IssueTypes: []IssueTypeDefinition{{ID: "7", Name: " STORY"}},
		Boards:     []BoardDefinition{{ID: "8", Name: "Team Board"}},
	}

	d := Diff(source, target)

	require.Len(t, d.Fields.Modified, 1)
	assert.Equal(t, "cf1", d.Fields.Modified[0].BeforeValue)
	assert.Equal(t, "cf9", d.Fields.Modified[0].AfterValue)
	assert.Empty(t, d.Fields.New)
	assert.Empty(t, d.Fields.Unchanged)

	require.Len(t, d.IssueTypes.Modified, 1)
	assert.Equal(t, "1", d.IssueTypes.Modified[0].BeforeValue)
	assert.Equal(t, "7", d.IssueTypes.Modified[0].AfterValue)

	require.Len(t, d.Boards.Modified, 1)
	assert.Equal(t, "8", d.Boards.Modified[0].AfterValue)
}

func TestDiff_Workflows(t *testing.T) {
	source := &ExportedConfiguration{
		Workflows: []WorkflowDefinition{
			{ID: "w1", Name: "Story workflow", Statuses: []StatusDefinition{
				status("1", "To Do", CategoryNew), status("3", "Done", CategoryDone),
			}},
			{ID: "w2", Name: "Bug workflow", Statuses: []StatusDefinition{
				status("1", "To Do", CategoryNew), status("20", "Triage", CategoryNew), status("21", "Verified", CategoryDone),
			}},
		},
	}
	// "Done" exists under another id: still counts as present.
	target := TargetState{Statuses: []StatusDefinition{status("1", "To Do", CategoryNew), status("300", "done", CategoryDone)}}

	d := Diff(source, target)

	require.Len(t, d.Workflows.Unchanged, 1)
	assert.Equal(t, "w1", d.Workflows.Unchanged[0].Item.ID)
	require.Len(t, d.Workflows.Modified, 1)
	assert.Equal(t, "w2", d.Workflows.Modified[0].Item.ID)
	assert.Equal(t, "2 statuses will be created", d.Workflows.Modified[0].Reason)
}

func TestDiff_NeverSkips(t *testing.T) {
	source := &ExportedConfiguration{
		Fields: []FieldDefinition{{ID: "a", Name: "A"}},
	}
	target := TargetState{Fields: []FieldDefinition{{ID: "b", Name: "B"}}}

	d := Diff(source, target)
	assert.Empty(t, d.Fields.Skipped)
	assert.True(t, d.HasChanges())
}

func TestMissingStatuses(t *testing.T) {
	w := WorkflowDefinition{Statuses: []StatusDefinition{status("1", "Open", CategoryNew), status("2", "Closed", CategoryDone)}}
	m := NewMatcher([]StatusDefinition{status("1", "Open", CategoryNew)})

	missing := MissingStatuses(w, m)
	require.Len(t, missing, 1)
	assert.Equal(t, "Closed", missing[0].Name)
}
