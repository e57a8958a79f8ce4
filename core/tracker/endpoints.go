package tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"schema-sync/core/reconcile"
	"schema-sync/core/utils"
)

var _ Client = (*RESTClient)(nil)

// GetProject returns the project identified by key.
func (c *RESTClient) GetProject(ctx context.Context, key string) (*reconcile.ProjectRef, error) {
	var p projectJSON
	if err := c.do(ctx, http.MethodGet, "/rest/api/3/project/"+url.PathEscape(key), nil, nil, &p); err != nil {
		return nil, fmt.Errorf("get project %s: %w", key, err)
	}
	return p.toRef(), nil
}

// GetProjectFields returns the custom fields of the project.
func (c *RESTClient) GetProjectFields(ctx context.Context, projectID string) ([]reconcile.FieldDefinition, error) {
	query := url.Values{}
	query.Set("type", "custom")
	if projectID != "" {
		query.Set("projectIds", projectID)
	}
	raw, err := getPaged[fieldJSON](ctx, c, "/rest/api/3/field/search", query)
	if err != nil {
		return nil, fmt.Errorf("get fields for project %s: %w", projectID, err)
	}
	fields := make([]reconcile.FieldDefinition, 0, len(raw))
	for _, f := range raw {
		fields = append(fields, f.toDefinition())
	}
	return fields, nil
}

// GetIssueTypesForProject returns the issue types usable in the project.
func (c *RESTClient) GetIssueTypesForProject(ctx context.Context, projectID string) ([]reconcile.IssueTypeDefinition, error) {
	query := url.Values{}
	query.Set("projectId", projectID)
	var raw []issueTypeJSON
	if err := c.do(ctx, http.MethodGet, "/rest/api/3/issuetype/project", query, nil, &raw); err != nil {
		return nil, fmt.Errorf("get issue types for project %s: %w", projectID, err)
	}
	return toIssueTypes(raw), nil
}

// GetAllIssueTypes returns every issue type of the instance.
func (c *RESTClient) GetAllIssueTypes(ctx context.Context) ([]reconcile.IssueTypeDefinition, error) {
	var raw []issueTypeJSON
	if err := c.do(ctx, http.MethodGet, "/rest/api/3/issuetype", nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("get issue types: %w", err)
	}
	return toIssueTypes(raw), nil
}

func toIssueTypes(raw []issueTypeJSON) []reconcile.IssueTypeDefinition {
	out := make([]reconcile.IssueTypeDefinition, 0, len(raw))
	for _, t := range raw {
		out = append(out, t.toDefinition())
	}
	return out
}

// GetProjectStatuses returns the statuses of the project grouped by issue type.
func (c *RESTClient) GetProjectStatuses(ctx context.Context, projectKey string) ([]IssueTypeStatuses, error) {
	var raw []issueTypeStatusesJSON
	path := "/rest/api/3/project/" + url.PathEscape(projectKey) + "/statuses"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("get statuses for project %s: %w", projectKey, err)
	}
	out := make([]IssueTypeStatuses, 0, len(raw))
	for _, entry := range raw {
		item := IssueTypeStatuses{
			IssueType: reconcile.IssueTypeDefinition{ID: entry.ID, Name: entry.Name, IsSubtask: entry.Subtask},
			Statuses:  make([]reconcile.StatusDefinition, 0, len(entry.Statuses)),
		}
		for _, s := range entry.Statuses {
			item.Statuses = append(item.Statuses, s.toDefinition())
		}
		out = append(out, item)
	}
	return out, nil
}

// GetBoardsForProject returns the project's boards.
func (c *RESTClient) GetBoardsForProject(ctx context.Context, projectKey string) ([]reconcile.BoardDefinition, error) {
	query := url.Values{}
	query.Set("projectKeyOrId", projectKey)
	raw, err := getPaged[boardJSON](ctx, c, "/rest/agile/1.0/board", query)
	if err != nil {
		return nil, fmt.Errorf("get boards for project %s: %w", projectKey, err)
	}
	boards := make([]reconcile.BoardDefinition, 0, len(raw))
	for _, b := range raw {
		boards = append(boards, b.toDefinition())
	}
	return boards, nil
}

// GetBoardConfiguration returns a board's column, estimation and ranking settings.
func (c *RESTClient) GetBoardConfiguration(ctx context.Context, boardID string) (*BoardConfiguration, error) {
	var raw boardConfigJSON
	path := "/rest/agile/1.0/board/" + url.PathEscape(boardID) + "/configuration"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("get configuration of board %s: %w", boardID, err)
	}
	return raw.toConfiguration(), nil
}

// GetBoardQuickFilters returns a board's quick filters.
func (c *RESTClient) GetBoardQuickFilters(ctx context.Context, boardID string) ([]reconcile.QuickFilter, error) {
	path := "/rest/agile/1.0/board/" + url.PathEscape(boardID) + "/quickfilter"
	raw, err := getPaged[quickFilterJSON](ctx, c, path, nil)
	if err != nil {
		return nil, fmt.Errorf("get quick filters of board %s: %w", boardID, err)
	}
	filters := make([]reconcile.QuickFilter, 0, len(raw))
	for _, q := range raw {
		filters = append(filters, reconcile.QuickFilter{
			ID:          utils.ToString(q.ID),
			Name:        q.Name,
			Query:       q.JQL,
			Description: q.Description,
		})
	}
	return filters, nil
}

// GetFilter returns a saved filter.
func (c *RESTClient) GetFilter(ctx context.Context, filterID string) (*reconcile.BoardFilter, error) {
	var raw filterJSON
	if err := c.do(ctx, http.MethodGet, "/rest/api/3/filter/"+url.PathEscape(filterID), nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("get filter %s: %w", filterID, err)
	}
	return raw.toFilter(), nil
}

// GetIssueTypeSchemeForProject returns the project's issue type scheme or nil.
func (c *RESTClient) GetIssueTypeSchemeForProject(ctx context.Context, projectID string) (*IssueTypeScheme, error) {
	query := url.Values{}
	query.Set("projectId", projectID)
	raw, err := getPaged[schemeMappingJSON](ctx, c, "/rest/api/3/issuetypescheme/project", query)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issue type scheme for project %s: %w", projectID, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	s := raw[0].IssueTypeScheme
	return &IssueTypeScheme{ID: s.ID, Name: s.Name, IsDefault: s.IsDefault}, nil
}

// CreateCustomField creates a global custom field.
func (c *RESTClient) CreateCustomField(ctx context.Context, in CustomFieldInput) (*reconcile.FieldDefinition, error) {
	var raw fieldJSON
	if err := c.do(ctx, http.MethodPost, "/rest/api/3/field", nil, in, &raw); err != nil {
		return nil, fmt.Errorf("create field %q: %w", in.Name, err)
	}
	f := raw.toDefinition()
	f.IsCustom = true
	return &f, nil
}

// CreateFieldContext binds a field to projects and issue types.
func (c *RESTClient) CreateFieldContext(ctx context.Context, fieldID string, in FieldContextInput) (*reconcile.FieldContext, error) {
	if in.ProjectIDs == nil {
		in.ProjectIDs = []string{}
	}
	if in.IssueTypeIDs == nil {
		in.IssueTypeIDs = []string{}
	}
	var raw contextJSON
	path := "/rest/api/3/field/" + url.PathEscape(fieldID) + "/context"
	if err := c.do(ctx, http.MethodPost, path, nil, in, &raw); err != nil {
		return nil, fmt.Errorf("create context for field %s: %w", fieldID, err)
	}
	fc := raw.toContext()
	return &fc, nil
}

// GetFieldContexts returns the contexts of a field.
func (c *RESTClient) GetFieldContexts(ctx context.Context, fieldID string) ([]reconcile.FieldContext, error) {
	path := "/rest/api/3/field/" + url.PathEscape(fieldID) + "/context"
	raw, err := getPaged[contextJSON](ctx, c, path, nil)
	if err != nil {
		return nil, fmt.Errorf("get contexts of field %s: %w", fieldID, err)
	}
	out := make([]reconcile.FieldContext, 0, len(raw))
	for _, fc := range raw {
		out = append(out, fc.toContext())
	}
	return out, nil
}

// GetFieldOptions returns the options of a field context.
func (c *RESTClient) GetFieldOptions(ctx context.Context, fieldID, contextID string) ([]reconcile.FieldOption, error) {
	raw, err := getPaged[optionJSON](ctx, c, optionPath(fieldID, contextID), nil)
	if err != nil {
		return nil, fmt.Errorf("get options of field %s context %s: %w", fieldID, contextID, err)
	}
	return toOptions(raw), nil
}

// AddFieldOptions appends options to a field context.
func (c *RESTClient) AddFieldOptions(ctx context.Context, fieldID, contextID string, values []string) ([]reconcile.FieldOption, error) {
	type optionInput struct {
		Value    string `json:"value"`
		Disabled bool   `json:"disabled"`
	}
	body := struct {
		Options []optionInput `json:"options"`
	}{Options: make([]optionInput, 0, len(values))}
	for _, v := range values {
		body.Options = append(body.Options, optionInput{Value: v})
	}

	var resp struct {
		Options []optionJSON `json:"options"`
	}
	if err := c.do(ctx, http.MethodPost, optionPath(fieldID, contextID), nil, body, &resp); err != nil {
		return nil, fmt.Errorf("add options to field %s context %s: %w", fieldID, contextID, err)
	}
	return toOptions(resp.Options), nil
}

func optionPath(fieldID, contextID string) string {
	return "/rest/api/3/field/" + url.PathEscape(fieldID) + "/context/" + url.PathEscape(contextID) + "/option"
}

func toOptions(raw []optionJSON) []reconcile.FieldOption {
	out := make([]reconcile.FieldOption, 0, len(raw))
	for _, o := range raw {
		out = append(out, o.toOption())
	}
	return out
}

// CreateIssueType creates an issue type.
func (c *RESTClient) CreateIssueType(ctx context.Context, in IssueTypeInput) (*reconcile.IssueTypeDefinition, error) {
	if in.Type == "" {
		in.Type = IssueTypeStandard
	}
	var raw issueTypeJSON
	if err := c.do(ctx, http.MethodPost, "/rest/api/3/issuetype", nil, in, &raw); err != nil {
		return nil, fmt.Errorf("create issue type %q: %w", in.Name, err)
	}
	t := raw.toDefinition()
	return &t, nil
}

// AddIssueTypeToScheme adds issue types to an issue type scheme.
func (c *RESTClient) AddIssueTypeToScheme(ctx context.Context, schemeID string, issueTypeIDs []string) error {
	body := struct {
		IssueTypeIDs []string `json:"issueTypeIds"`
	}{IssueTypeIDs: issueTypeIDs}
	path := "/rest/api/3/issuetypescheme/" + url.PathEscape(schemeID) + "/issuetype"
	if err := c.do(ctx, http.MethodPut, path, nil, body, nil); err != nil {
		return fmt.Errorf("add issue types to scheme %s: %w", schemeID, err)
	}
	return nil
}

// CreateStatuses creates statuses scoped to a project in one call.
func (c *RESTClient) CreateStatuses(ctx context.Context, projectID string, statuses []StatusInput) ([]reconcile.StatusDefinition, error) {
	type projectScope struct {
		ID string `json:"id"`
	}
	type scope struct {
		Type    string       `json:"type"`
		Project projectScope `json:"project"`
	}
	body := struct {
		Scope    scope         `json:"scope"`
		Statuses []StatusInput `json:"statuses"`
	}{
		Scope:    scope{Type: "PROJECT", Project: projectScope{ID: projectID}},
		Statuses: statuses,
	}

	var raw []createdStatusJSON
	if err := c.do(ctx, http.MethodPost, "/rest/api/3/statuses", nil, body, &raw); err != nil {
		return nil, fmt.Errorf("create %d statuses: %w", len(statuses), err)
	}
	out := make([]reconcile.StatusDefinition, 0, len(raw))
	for _, s := range raw {
		out = append(out, s.toDefinition())
	}
	return out, nil
}

// CreateFilter creates a saved filter.
func (c *RESTClient) CreateFilter(ctx context.Context, in FilterInput) (*reconcile.BoardFilter, error) {
	var raw filterJSON
	if err := c.do(ctx, http.MethodPost, "/rest/api/3/filter", nil, in, &raw); err != nil {
		return nil, fmt.Errorf("create filter %q: %w", in.Name, err)
	}
	return raw.toFilter(), nil
}

// CreateBoard creates a board located in a project.
func (c *RESTClient) CreateBoard(ctx context.Context, in BoardInput) (*reconcile.BoardDefinition, error) {
	type location struct {
		Type           string `json:"type"`
		ProjectKeyOrID string `json:"projectKeyOrId"`
	}
	body := struct {
		Name     string   `json:"name"`
		Type     string   `json:"type"`
		FilterID int      `json:"filterId"`
		Location location `json:"location"`
	}{
		Name:     in.Name,
		Type:     in.Type,
		FilterID: utils.ToInt(in.FilterID),
		Location: location{Type: "project", ProjectKeyOrID: in.ProjectKey},
	}

	var raw boardJSON
	if err := c.do(ctx, http.MethodPost, "/rest/agile/1.0/board", nil, body, &raw); err != nil {
		return nil, fmt.Errorf("create board %q: %w", in.Name, err)
	}
	b := raw.toDefinition()
	if b.Type == "" {
		b.Type = in.Type
	}
	return &b, nil
}
