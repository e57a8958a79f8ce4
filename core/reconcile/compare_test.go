package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	left := &ExportedConfiguration{
		Meta: ExportMeta{SourceProject: ProjectRef{Key: "AAA"}},
		Fields: []FieldDefinition{
			{ID: "cf1", Name: "Team", Type: "option", Options: []FieldOption{{Value: "Red"}, {Value: "Blue"}}},
			{ID: "cf2", Name: "Story Points", Type: "number"},
			{ID: "cf3", Name: "Only Left", Type: "string"},
		},
		IssueTypes: []IssueTypeDefinition{{ID: "1", Name: "Story"}, {ID: "2", Name: "Sub-task", IsSubtask: true, HierarchyLevel: -1}},
		Workflows: []WorkflowDefinition{{ID: "w1", Statuses: []StatusDefinition{
			status("1", "To Do", CategoryNew), status("2", "In Review", CategoryIndeterminate),
		}}},
		Boards: []BoardDefinition{{ID: "1", Name: "Main", Type: BoardKanban, Columns: []BoardColumn{{Name: "To Do"}, {Name: "Done"}}}},
	}
	right := &ExportedConfiguration{
		Meta: ExportMeta{SourceProject: ProjectRef{Key: "BBB"}},
		Fields: []FieldDefinition{
			{ID: "cf1", Name: "Team", Type: "option", Options: []FieldOption{{Value: "red"}, {Value: "Green"}}},
			{ID: "cf2", Name: "Story Points", Type: "number"},
			{ID: "cf4", Name: "Only Right", Type: "string"},
		},
		IssueTypes: []IssueTypeDefinition{{ID: "1", Name: "Story"}, {ID: "9", Name: "sub-task", IsSubtask: true, HierarchyLevel: -1}},
		Workflows: []WorkflowDefinition{{ID: "w9", Statuses: []StatusDefinition{
			status("100", "to do", CategoryNew), status("200", "In Review", CategoryDone), status("300", "Blocked", CategoryIndeterminate),
		}}},
		Boards: []BoardDefinition{{ID: "7", Name: "main", Type: BoardKanban, Columns: []BoardColumn{{Name: "To Do"}, {Name: "Doing"}, {Name: "Done"}}}},
	}

	r := Compare(left, right)

	assert.Equal(t, "AAA", r.Left.Key)
	assert.Equal(t, "BBB", r.Right.Key)

	require.Len(t, r.Fields.Modified, 1)
	assert.Equal(t, "cf1", r.Fields.Modified[0].Item.ID)
	assert.Contains(t, r.Fields.Modified[0].Reason, "options only in left: Blue")
	assert.Contains(t, r.Fields.Modified[0].Reason, "options only in right: Green")
	require.Len(t, r.Fields.New, 1)
	assert.Equal(t, "Only Left", r.Fields.New[0].Item.Name)
	require.Len(t, r.Fields.Skipped, 1)
	assert.Equal(t, "Only Right", r.Fields.Skipped[0].Item.Name)
	assert.Equal(t, "only in BBB", r.Fields.Skipped[0].Reason)
	assert.Len(t, r.Fields.Unchanged, 1)

	// Sub-task matched by name with another id and no attribute difference.
	assert.Len(t, r.IssueTypes.Unchanged, 2)

	// Statuses are matched by name, not id.
	assert.Len(t, r.Statuses.Unchanged, 1)
	require.Len(t, r.Statuses.Modified, 1)
	assert.Equal(t, "In Review", r.Statuses.Modified[0].Item.Name)
	require.Len(t, r.Statuses.Skipped, 1)
	assert.Equal(t, "Blocked", r.Statuses.Skipped[0].Item.Name)

	require.Len(t, r.Boards.Modified, 1)
	assert.Contains(t, r.Boards.Modified[0].Reason, "columns")

	s := r.Summary()
	assert.Equal(t, Counts{New: 1, Modified: 1, Skipped: 1, Unchanged: 1}, s.Fields)
}
