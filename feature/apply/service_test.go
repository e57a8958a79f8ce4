package apply

import (
	"context"
	"testing"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"
	"schema-sync/core/tracker/mocks"
	"schema-sync/feature/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mockValidationTarget(client *mocks.Client, projectType string) {
	client.On("GetProject", mock.Anything, "TGT").
		Return(&reconcile.ProjectRef{ID: "200", Key: "TGT", ProjectType: projectType}, nil)
	client.On("GetProjectFields", mock.Anything, "200").Return([]reconcile.FieldDefinition{}, nil)
	client.On("GetIssueTypesForProject", mock.Anything, "200").Return([]reconcile.IssueTypeDefinition{}, nil)
	client.On("GetProjectStatuses", mock.Anything, "TGT").Return([]tracker.IssueTypeStatuses{}, nil)
	client.On("GetBoardsForProject", mock.Anything, "TGT").Return([]reconcile.BoardDefinition{}, nil)
	client.On("GetIssueTypeSchemeForProject", mock.Anything, "200").Return(nil, nil)
}

func newService(t *testing.T, client *mocks.Client, history *History) *Service {
	t.Helper()
	engine, _ := newEngine(t, client)
	return NewService(client, engine, validation.NewService(client, zap.NewNop()), history, zap.NewNop())
}

func softwareSource() *reconcile.ExportedConfiguration {
	src := source()
	src.Meta.SourceProject.ProjectType = "software"
	return src
}

func TestService_Apply_Incompatible(t *testing.T) {
	client := new(mocks.Client)
	mockValidationTarget(client, "business")
	svc := newService(t, client, nil)

	result, validated, err := svc.Apply(context.Background(), Request{Source: softwareSource(), TargetKey: "TGT"})
	assert.ErrorIs(t, err, ErrIncompatible)
	assert.Nil(t, result)
	require.NotNil(t, validated)
	assert.False(t, validated.Compatible)
	client.AssertNotCalled(t, "GetIssueTypeSchemeForProject", mock.Anything, mock.Anything)
}

func TestService_Apply_ValidatesAndRecords(t *testing.T) {
	client := new(mocks.Client)
	mockValidationTarget(client, "software")
	history := setupHistory(t)
	svc := newService(t, client, history)
	assert.True(t, svc.HistoryEnabled())

	result, validated, err := svc.Apply(context.Background(), Request{Source: softwareSource(), TargetKey: "TGT"})
	require.NoError(t, err)
	require.NotNil(t, validated)
	assert.True(t, validated.Compatible)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.BackupPath)

	runs, err := svc.History(context.Background(), "SRC", 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "TGT", runs[0].TargetProject)
	assert.Equal(t, result.BackupPath, runs[0].BackupPath)
}

func TestService_Apply_ProvidedDiffSkipsValidation(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetProject", mock.Anything, "TGT").
		Return(&reconcile.ProjectRef{ID: "200", Key: "TGT", ProjectType: "business"}, nil)
	svc := newService(t, client, nil)

	result, validated, err := svc.Apply(context.Background(), Request{
		Source:    softwareSource(),
		TargetKey: "TGT",
		Diff:      &reconcile.ConfigurationDiff{},
		Options:   reconcile.ApplyOptions{DryRun: true},
	})
	require.NoError(t, err)
	assert.Nil(t, validated)
	assert.True(t, result.Success)
	assert.Equal(t, []string{ManualDryRun}, result.ManualSteps)
	client.AssertNotCalled(t, "GetProjectStatuses", mock.Anything, mock.Anything)

	runs, err := svc.History(context.Background(), "", 0)
	assert.NoError(t, err)
	assert.Nil(t, runs)
}

func TestService_Apply_InvalidSource(t *testing.T) {
	svc := newService(t, new(mocks.Client), nil)
	src := source()
	src.Meta.SchemaVersion = "0.1"

	_, _, err := svc.Apply(context.Background(), Request{Source: src, TargetKey: "TGT"})
	assert.ErrorContains(t, err, "unsupported schema version")
}
