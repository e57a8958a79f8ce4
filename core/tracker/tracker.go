package tracker

import (
	"context"

	"schema-sync/core/reconcile"
)

// Client is the set of tracker operations the reconciliation pipeline needs.
// Write operations return *ConflictError when the entity already exists.
type Client interface {
	// GetProject returns the project identified by key.
	GetProject(ctx context.Context, key string) (*reconcile.ProjectRef, error)
	// GetProjectFields returns the custom fields visible in the project.
	GetProjectFields(ctx context.Context, projectID string) ([]reconcile.FieldDefinition, error)
	// GetIssueTypesForProject returns the issue types usable in the project.
	GetIssueTypesForProject(ctx context.Context, projectID string) ([]reconcile.IssueTypeDefinition, error)
	// GetProjectStatuses returns the statuses of the project, grouped by issue type.
	GetProjectStatuses(ctx context.Context, projectKey string) ([]IssueTypeStatuses, error)
	// GetBoardsForProject returns the project's boards (id, name, type only).
	GetBoardsForProject(ctx context.Context, projectKey string) ([]reconcile.BoardDefinition, error)
	// GetBoardConfiguration returns column, estimation and ranking settings of a board.
	GetBoardConfiguration(ctx context.Context, boardID string) (*BoardConfiguration, error)
	// GetBoardQuickFilters returns a board's quick filters.
	GetBoardQuickFilters(ctx context.Context, boardID string) ([]reconcile.QuickFilter, error)
	// GetFilter returns a saved filter.
	GetFilter(ctx context.Context, filterID string) (*reconcile.BoardFilter, error)
	// GetIssueTypeSchemeForProject returns the project's issue type scheme, or
	// nil when the project has none (team-managed projects).
	GetIssueTypeSchemeForProject(ctx context.Context, projectID string) (*IssueTypeScheme, error)
	// GetAllIssueTypes returns every issue type of the instance.
	GetAllIssueTypes(ctx context.Context) ([]reconcile.IssueTypeDefinition, error)

	// CreateCustomField creates a global custom field.
	CreateCustomField(ctx context.Context, in CustomFieldInput) (*reconcile.FieldDefinition, error)
	// CreateFieldContext binds a field to projects and issue types.
	CreateFieldContext(ctx context.Context, fieldID string, in FieldContextInput) (*reconcile.FieldContext, error)
	// GetFieldContexts returns the contexts of a field.
	GetFieldContexts(ctx context.Context, fieldID string) ([]reconcile.FieldContext, error)
	// GetFieldOptions returns the options of a field context.
	GetFieldOptions(ctx context.Context, fieldID, contextID string) ([]reconcile.FieldOption, error)
	// AddFieldOptions appends options to a field context.
	AddFieldOptions(ctx context.Context, fieldID, contextID string, values []string) ([]reconcile.FieldOption, error)
	// CreateIssueType creates an issue type, project-scoped when in.ProjectID is set.
	CreateIssueType(ctx context.Context, in IssueTypeInput) (*reconcile.IssueTypeDefinition, error)
	// AddIssueTypeToScheme adds issue types to an issue type scheme.
	AddIssueTypeToScheme(ctx context.Context, schemeID string, issueTypeIDs []string) error
	// CreateStatuses creates statuses in one all-or-nothing call.
	CreateStatuses(ctx context.Context, projectID string, statuses []StatusInput) ([]reconcile.StatusDefinition, error)
	// CreateFilter creates a saved filter.
	CreateFilter(ctx context.Context, in FilterInput) (*reconcile.BoardFilter, error)
	// CreateBoard creates a board bound to a filter and a project.
	CreateBoard(ctx context.Context, in BoardInput) (*reconcile.BoardDefinition, error)
}

// IssueTypeStatuses is one entry of the project status listing.
type IssueTypeStatuses struct {
	IssueType reconcile.IssueTypeDefinition `json:"issueType"`
	Statuses  []reconcile.StatusDefinition  `json:"statuses"`
}

// BoardConfiguration holds the settings of a board that are not part of the
// board listing.
type BoardConfiguration struct {
	ID             string                     `json:"id"`
	Name           string                     `json:"name"`
	FilterID       string                     `json:"filterId"`
	Columns        []reconcile.BoardColumn    `json:"columns"`
	ConstraintType string                     `json:"constraintType"`
	Estimation     *reconcile.BoardEstimation `json:"estimation,omitempty"`
	Ranking        *reconcile.BoardRanking    `json:"ranking,omitempty"`
}

// IssueTypeScheme is an issue type scheme assigned to a project.
type IssueTypeScheme struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

// CustomFieldInput is the payload for CreateCustomField.
type CustomFieldInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	SearcherKey string `json:"searcherKey,omitempty"`
}

// FieldContextInput is the payload for CreateFieldContext.
type FieldContextInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	ProjectIDs   []string `json:"projectIds"`
	IssueTypeIDs []string `json:"issueTypeIds"`
}

// Issue type kinds accepted by CreateIssueType.
const (
	IssueTypeStandard = "standard"
	IssueTypeSubtask  = "subtask"
)

// IssueTypeInput is the payload for CreateIssueType.
type IssueTypeInput struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Type           string `json:"type"`
	HierarchyLevel int    `json:"hierarchyLevel"`
	// ProjectID scopes the issue type to a team-managed project.
	ProjectID string `json:"projectId,omitempty"`
}

// Status categories accepted by CreateStatuses.
const (
	StatusCategoryTodo       = "TODO"
	StatusCategoryInProgress = "IN_PROGRESS"
	StatusCategoryDone       = "DONE"
)

// StatusInput is one status of a CreateStatuses batch.
type StatusInput struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	StatusCategory string `json:"statusCategory"`
}

// FilterInput is the payload for CreateFilter.
type FilterInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	JQL         string `json:"jql"`
}

// BoardInput is the payload for CreateBoard.
type BoardInput struct {
	Name       string
	Type       string
	FilterID   string
	ProjectKey string
}
