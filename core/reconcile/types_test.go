package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStepStatus(t *testing.T) {
	ok := ApplyItemResult{Status: ItemSuccess}
	skip := ApplyItemResult{Status: ItemSkipped}
	fail := ApplyItemResult{Status: ItemError}

	tests := []struct {
		name  string
		items []ApplyItemResult
		want  StepStatus
	}{
		{"Empty", nil, StepSkipped},
		{"AllSuccess", []ApplyItemResult{ok, ok}, StepSuccess},
		{"AllSkipped", []ApplyItemResult{skip, skip}, StepSkipped},
		{"Mixed", []ApplyItemResult{ok, skip}, StepPartial},
		{"AnyError", []ApplyItemResult{ok, skip, fail}, StepError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStepStatus(tt.items))
		})
	}
}

func TestRunSucceeded(t *testing.T) {
	good := NewStepResult("fields", []ApplyItemResult{{Status: ItemSuccess}})
	skipped := NewStepResult("boards", nil)
	bad := NewStepResult("issueTypes", []ApplyItemResult{{Status: ItemError}})

	assert.True(t, RunSucceeded([]ApplyStepResult{good, skipped}))
	assert.False(t, RunSucceeded([]ApplyStepResult{good, bad}))

	// Flagged error without a hard error item is not fatal.
	flagged := ApplyStepResult{Step: "statuses", Status: StepError, Results: []ApplyItemResult{{Status: ItemSkipped}}}
	assert.True(t, RunSucceeded([]ApplyStepResult{flagged}))
	assert.NotNil(t, skipped.Results)
}

func TestBoundedDetails(t *testing.T) {
	assert.Nil(t, BoundedDetails(nil))
	assert.Equal(t, []string{"a", "b"}, BoundedDetails([]string{"a", "b"}))

	in := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	got := BoundedDetails(in)
	require.Len(t, got, MaxDetails+1)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, got[:MaxDetails])
	assert.Equal(t, "...and 3 more", got[MaxDetails])
}

func TestDiffCategory_AddAndItems(t *testing.T) {
	var c DiffCategory[StatusDefinition]
	c.Add(DiffItem[StatusDefinition]{Item: status("1", "A", CategoryNew), Status: StatusUnchanged})
	c.Add(DiffItem[StatusDefinition]{Item: status("2", "B", CategoryNew), Status: StatusNew})
	c.Add(DiffItem[StatusDefinition]{Item: status("3", "C", CategoryNew), Status: StatusSkipped})

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "B", items[0].Item.Name)
	assert.Equal(t, "C", items[1].Item.Name)
	assert.Equal(t, "A", items[2].Item.Name)
	assert.Equal(t, 3, c.Len())
}

func TestWorkflowDefinition_Validate(t *testing.T) {
	from := "1"
	bad := "9"
	w := WorkflowDefinition{
		Name:        "wf",
		Statuses:    []StatusDefinition{status("1", "Open", CategoryNew), status("2", "Done", CategoryDone)},
		Transitions: []Transition{{Name: "create", To: "1"}, {Name: "finish", From: &from, To: "2"}},
	}
	assert.NoError(t, w.Validate())

	w.Transitions = append(w.Transitions, Transition{Name: "broken", From: &bad, To: "2"})
	assert.Error(t, w.Validate())
}

func TestExportedConfiguration_Validate(t *testing.T) {
	cfg := &ExportedConfiguration{Meta: ExportMeta{SchemaVersion: SchemaVersion, SourceProject: ProjectRef{Key: "SRC"}}}
	assert.NoError(t, cfg.Validate())

	cfg.Meta.SchemaVersion = "0.1"
	assert.Error(t, cfg.Validate())

	var nilCfg *ExportedConfiguration
	assert.Error(t, nilCfg.Validate())
}

func TestUnionStatuses(t *testing.T) {
	ws := []WorkflowDefinition{
		{Statuses: []StatusDefinition{status("1", "Open", CategoryNew), status("2", "Done", CategoryDone)}},
		{Statuses: []StatusDefinition{status("2", "Done", CategoryDone), status("3", "Review", CategoryIndeterminate)}},
	}
	got := UnionStatuses(ws)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{got[0].ID, got[1].ID, got[2].ID})
}
