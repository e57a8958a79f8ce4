package validation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"
	"schema-sync/core/tracker/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func status(id, name, category string) reconcile.StatusDefinition {
	return reconcile.StatusDefinition{ID: id, Name: name, Category: reconcile.StatusCategory{Key: category}}
}

func sourceConfig(projectType string) *reconcile.ExportedConfiguration {
	return &reconcile.ExportedConfiguration{
		Meta: reconcile.ExportMeta{
			SchemaVersion: reconcile.SchemaVersion,
			SourceProject: reconcile.ProjectRef{ID: "100", Key: "SRC", ProjectType: projectType},
		},
		Fields: []reconcile.FieldDefinition{
			{ID: "cf1", Name: "Story Points", IsCustom: true},
			{ID: "cf2", Name: "Team", IsCustom: true, Options: []reconcile.FieldOption{{Value: "Red"}}},
		},
		IssueTypes: []reconcile.IssueTypeDefinition{{ID: "1", Name: "Story"}},
		Workflows: []reconcile.WorkflowDefinition{{
			ID: "1", Name: "Story workflow",
			Statuses: []reconcile.StatusDefinition{status("10", "To Do", "new"), status("12", "Review", "indeterminate")},
		}},
	}
}

func mockTarget(client *mocks.Client, projectType string) {
	client.On("GetProject", mock.Anything, "TGT").
		Return(&reconcile.ProjectRef{ID: "200", Key: "TGT", ProjectType: projectType}, nil)
	client.On("GetProjectFields", mock.Anything, "200").
		Return([]reconcile.FieldDefinition{{ID: "cf9", Name: "team", IsCustom: true}}, nil)
	client.On("GetIssueTypesForProject", mock.Anything, "200").
		Return([]reconcile.IssueTypeDefinition{{ID: "1", Name: "Story"}}, nil)
	client.On("GetProjectStatuses", mock.Anything, "TGT").Return([]tracker.IssueTypeStatuses{
		{Statuses: []reconcile.StatusDefinition{status("10", "To Do", "new")}},
		{Statuses: []reconcile.StatusDefinition{status("10", "To Do", "new"), status("11", "Done", "done")}},
	}, nil)
	client.On("GetBoardsForProject", mock.Anything, "TGT").Return([]reconcile.BoardDefinition{}, nil)
}

func TestService_Validate_Compatible(t *testing.T) {
	client := new(mocks.Client)
	mockTarget(client, "software")
	svc := NewService(client, zap.NewNop())

	result, err := svc.Validate(context.Background(), sourceConfig("software"), "TGT")
	require.NoError(t, err)

	assert.True(t, result.Compatible)
	assert.Equal(t, reconcile.SeverityInfo, result.Severity)
	require.Len(t, result.Checks, 4)
	assert.Equal(t, []string{CheckProjectType, CheckCustomFields, CheckIssueTypes, CheckWorkflows},
		[]string{result.Checks[0].Name, result.Checks[1].Name, result.Checks[2].Name, result.Checks[3].Name})
	for _, c := range result.Checks {
		assert.Equal(t, reconcile.CheckPass, c.Status, c.Name)
	}

	assert.Equal(t, []string{"Story Points"}, result.Checks[1].Details)
	assert.Nil(t, result.Checks[2].Details)
	assert.Equal(t, []string{"Review"}, result.Checks[3].Details)

	require.NotNil(t, result.Diff)
	require.Len(t, result.Diff.Fields.New, 1)
	assert.Equal(t, "cf1", result.Diff.Fields.New[0].Item.ID)
	require.Len(t, result.Diff.Fields.Modified, 1)
	assert.Equal(t, "cf9", result.Diff.Fields.Modified[0].AfterValue)
	assert.Len(t, result.Diff.Workflows.Modified, 1)
	assert.Equal(t, "TGT", result.TargetProject.Key)
}

func TestService_Validate_ProjectTypeMismatch(t *testing.T) {
	client := new(mocks.Client)
	mockTarget(client, "business")
	svc := NewService(client, zap.NewNop())

	result, err := svc.Validate(context.Background(), sourceConfig("software"), "TGT")
	require.NoError(t, err)

	assert.False(t, result.Compatible)
	assert.Equal(t, reconcile.SeverityError, result.Severity)
	assert.Nil(t, result.Diff)
	assert.Equal(t, reconcile.CheckFail, result.Checks[0].Status)
	assert.Len(t, result.Checks, 4, "later checks still run")
}

func TestService_Validate_TargetUnavailable(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetProject", mock.Anything, "TGT").Return(nil, &tracker.NotFoundError{Message: "no project"})
	svc := NewService(client, zap.NewNop())

	_, err := svc.Validate(context.Background(), sourceConfig("software"), "TGT")
	assert.True(t, tracker.IsNotFound(err))
}

func TestService_Validate_InvalidSource(t *testing.T) {
	svc := NewService(new(mocks.Client), zap.NewNop())
	cfg := sourceConfig("software")
	cfg.Meta.SchemaVersion = "2.0"

	_, err := svc.Validate(context.Background(), cfg, "TGT")
	assert.ErrorContains(t, err, "schema version")
}

func TestService_Validate_FetchError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetProject", mock.Anything, "TGT").
		Return(&reconcile.ProjectRef{ID: "200", Key: "TGT", ProjectType: "software"}, nil)
	client.On("GetProjectFields", mock.Anything, "200").Return(nil, errors.New("timeout"))
	client.On("GetIssueTypesForProject", mock.Anything, "200").Return([]reconcile.IssueTypeDefinition{}, nil)
	client.On("GetProjectStatuses", mock.Anything, "TGT").Return([]tracker.IssueTypeStatuses{}, nil)
	client.On("GetBoardsForProject", mock.Anything, "TGT").Return([]reconcile.BoardDefinition{}, nil)

	_, err := NewService(client, zap.NewNop()).Validate(context.Background(), sourceConfig("software"), "TGT")
	assert.ErrorContains(t, err, "timeout")
}

func TestEvaluate_BoundedDetails(t *testing.T) {
	cfg := sourceConfig("software")
	cfg.Fields = nil
	for i := 0; i < 8; i++ {
		cfg.Fields = append(cfg.Fields, reconcile.FieldDefinition{ID: fmt.Sprintf("cf%d", i), Name: fmt.Sprintf("Field %d", i), IsCustom: true})
	}
	target := &reconcile.ProjectRef{Key: "TGT", ProjectType: "software"}

	result := Evaluate(cfg, target, reconcile.TargetState{})
	details := result.Checks[1].Details
	require.Len(t, details, reconcile.MaxDetails+1)
	assert.Equal(t, "Field 0", details[0])
	assert.Equal(t, "...and 3 more", details[reconcile.MaxDetails])
	assert.Equal(t, reconcile.CheckPass, result.Checks[1].Status, "missing fields never fail")
}
