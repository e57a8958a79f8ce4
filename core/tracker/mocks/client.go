package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"
)

// Client is a mock implementation of tracker.Client
type Client struct {
	mock.Mock
}

var _ tracker.Client = (*Client)(nil)

func (m *Client) GetProject(ctx context.Context, key string) (*reconcile.ProjectRef, error) {
	args := m.Called(ctx, key)
	if p, ok := args.Get(0).(*reconcile.ProjectRef); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetProjectFields(ctx context.Context, projectID string) ([]reconcile.FieldDefinition, error) {
	args := m.Called(ctx, projectID)
	if f, ok := args.Get(0).([]reconcile.FieldDefinition); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetIssueTypesForProject(ctx context.Context, projectID string) ([]reconcile.IssueTypeDefinition, error) {
	args := m.Called(ctx, projectID)
	if t, ok := args.Get(0).([]reconcile.IssueTypeDefinition); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetProjectStatuses(ctx context.Context, projectKey string) ([]tracker.IssueTypeStatuses, error) {
	args := m.Called(ctx, projectKey)
	if s, ok := args.Get(0).([]tracker.IssueTypeStatuses); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetBoardsForProject(ctx context.Context, projectKey string) ([]reconcile.BoardDefinition, error) {
	args := m.Called(ctx, projectKey)
	if b, ok := args.Get(0).([]reconcile.BoardDefinition); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetBoardConfiguration(ctx context.Context, boardID string) (*tracker.BoardConfiguration, error) {
	args := m.Called(ctx, boardID)
	if c, ok := args.Get(0).(*tracker.BoardConfiguration); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetBoardQuickFilters(ctx context.Context, boardID string) ([]reconcile.QuickFilter, error) {
	args := m.Called(ctx, boardID)
	if q, ok := args.Get(0).([]reconcile.QuickFilter); ok {
		return q, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetFilter(ctx context.Context, filterID string) (*reconcile.BoardFilter, error) {
	args := m.Called(ctx, filterID)
	if f, ok := args.Get(0).(*reconcile.BoardFilter); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetIssueTypeSchemeForProject(ctx context.Context, projectID string) (*tracker.IssueTypeScheme, error) {
	args := m.Called(ctx, projectID)
	if s, ok := args.Get(0).(*tracker.IssueTypeScheme); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetAllIssueTypes(ctx context.Context) ([]reconcile.IssueTypeDefinition, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).([]reconcile.IssueTypeDefinition); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateCustomField(ctx context.Context, in tracker.CustomFieldInput) (*reconcile.FieldDefinition, error) {
	args := m.Called(ctx, in)
	if f, ok := args.Get(0).(*reconcile.FieldDefinition); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateFieldContext(ctx context.Context, fieldID string, in tracker.FieldContextInput) (*reconcile.FieldContext, error) {
	args := m.Called(ctx, fieldID, in)
	if c, ok := args.Get(0).(*reconcile.FieldContext); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetFieldContexts(ctx context.Context, fieldID string) ([]reconcile.FieldContext, error) {
	args := m.Called(ctx, fieldID)
	if c, ok := args.Get(0).([]reconcile.FieldContext); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetFieldOptions(ctx context.Context, fieldID, contextID string) ([]reconcile.FieldOption, error) {
	args := m.Called(ctx, fieldID, contextID)
	if o, ok := args.Get(0).([]reconcile.FieldOption); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) AddFieldOptions(ctx context.Context, fieldID, contextID string, values []string) ([]reconcile.FieldOption, error) {
	args := m.Called(ctx, fieldID, contextID, values)
	if o, ok := args.Get(0).([]reconcile.FieldOption); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateIssueType(ctx context.Context, in tracker.IssueTypeInput) (*reconcile.IssueTypeDefinition, error) {
	args := m.Called(ctx, in)
	if t, ok := args.Get(0).(*reconcile.IssueTypeDefinition); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) AddIssueTypeToScheme(ctx context.Context, schemeID string, issueTypeIDs []string) error {
	args := m.Called(ctx, schemeID, issueTypeIDs)
	return args.Error(0)
}

func (m *Client) CreateStatuses(ctx context.Context, projectID string, statuses []tracker.StatusInput) ([]reconcile.StatusDefinition, error) {
	args := m.Called(ctx, projectID, statuses)
	if s, ok := args.Get(0).([]reconcile.StatusDefinition); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateFilter(ctx context.Context, in tracker.FilterInput) (*reconcile.BoardFilter, error) {
	args := m.Called(ctx, in)
	if f, ok := args.Get(0).(*reconcile.BoardFilter); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateBoard(ctx context.Context, in tracker.BoardInput) (*reconcile.BoardDefinition, error) {
	args := m.Called(ctx, in)
	if b, ok := args.Get(0).(*reconcile.BoardDefinition); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
