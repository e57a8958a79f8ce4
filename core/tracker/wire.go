package tracker

import (
	"schema-sync/core/reconcile"
	"schema-sync/core/utils"
)

// Wire shapes of the tracker API. Agile endpoints return numeric ids, REST
// endpoints mostly quoted ones, so ids that vary are decoded as any.

type projectJSON struct {
	ID             string `json:"id"`
	Key            string `json:"key"`
	Name           string `json:"name"`
	ProjectTypeKey string `json:"projectTypeKey"`
	Style          string `json:"style"`
	Simplified     bool   `json:"simplified"`
}

func (p projectJSON) toRef() *reconcile.ProjectRef {
	style := p.Style
	if style == "" {
		style = reconcile.ProjectStyleClassic
		if p.Simplified {
			style = reconcile.ProjectStyleNextGen
		}
	}
	return &reconcile.ProjectRef{
		ID:          p.ID,
		Key:         p.Key,
		Name:        p.Name,
		ProjectType: p.ProjectTypeKey,
		Style:       style,
	}
}

type fieldJSON struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Name   string `json:"name"`
	Custom *bool  `json:"custom"`
	Schema struct {
		Type     string `json:"type"`
		Items    string `json:"items"`
		Custom   string `json:"custom"`
		CustomID int    `json:"customId"`
	} `json:"schema"`
}

func (f fieldJSON) toDefinition() reconcile.FieldDefinition {
	key := f.Key
	if key == "" {
		key = f.ID
	}
	// The field search endpoint omits "custom"; custom fields carry a custom schema.
	custom := f.Schema.Custom != ""
	if f.Custom != nil {
		custom = *f.Custom
	}
	return reconcile.FieldDefinition{
		ID:       f.ID,
		Key:      key,
		Name:     f.Name,
		Type:     f.Schema.Type,
		IsCustom: custom,
		Schema: reconcile.FieldSchema{
			Type:     f.Schema.Type,
			Items:    f.Schema.Items,
			Custom:   f.Schema.Custom,
			CustomID: f.Schema.CustomID,
		},
	}
}

type issueTypeJSON struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	IconURL        string `json:"iconUrl"`
	Subtask        bool   `json:"subtask"`
	HierarchyLevel int    `json:"hierarchyLevel"`
}

func (t issueTypeJSON) toDefinition() reconcile.IssueTypeDefinition {
	level := t.HierarchyLevel
	if t.Subtask && level == 0 {
		level = -1
	}
	return reconcile.IssueTypeDefinition{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		IconURL:        t.IconURL,
		IsSubtask:      t.Subtask,
		HierarchyLevel: level,
	}
}

type statusJSON struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StatusCategory struct {
		ID   int    `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"statusCategory"`
}

func (s statusJSON) toDefinition() reconcile.StatusDefinition {
	return reconcile.StatusDefinition{
		ID:   s.ID,
		Name: s.Name,
		Category: reconcile.StatusCategory{
			ID:   s.StatusCategory.ID,
			Key:  s.StatusCategory.Key,
			Name: s.StatusCategory.Name,
		},
	}
}

// createdStatusJSON is the bulk status endpoint's response item, which
// reports the category as an enum string.
type createdStatusJSON struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StatusCategory string `json:"statusCategory"`
}

var categoryKeys = map[string]string{
	StatusCategoryTodo:       reconcile.CategoryNew,
	StatusCategoryInProgress: reconcile.CategoryIndeterminate,
	StatusCategoryDone:       reconcile.CategoryDone,
}

func (s createdStatusJSON) toDefinition() reconcile.StatusDefinition {
	return reconcile.StatusDefinition{
		ID:       s.ID,
		Name:     s.Name,
		Category: reconcile.StatusCategory{Key: categoryKeys[s.StatusCategory]},
	}
}

type issueTypeStatusesJSON struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Subtask  bool         `json:"subtask"`
	Statuses []statusJSON `json:"statuses"`
}

type boardJSON struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (b boardJSON) toDefinition() reconcile.BoardDefinition {
	return reconcile.BoardDefinition{
		ID:   utils.ToString(b.ID),
		Name: b.Name,
		Type: b.Type,
	}
}

type boardConfigJSON struct {
	ID     any    `json:"id"`
	Name   string `json:"name"`
	Filter struct {
		ID any `json:"id"`
	} `json:"filter"`
	ColumnConfig struct {
		Columns []struct {
			Name     string `json:"name"`
			Statuses []struct {
				ID any `json:"id"`
			} `json:"statuses"`
			Min any `json:"min"`
			Max any `json:"max"`
		} `json:"columns"`
		ConstraintType string `json:"constraintType"`
	} `json:"columnConfig"`
	Estimation *struct {
		Type  string `json:"type"`
		Field struct {
			FieldID     string `json:"fieldId"`
			DisplayName string `json:"displayName"`
		} `json:"field"`
	} `json:"estimation"`
	Ranking *struct {
		RankCustomFieldID any `json:"rankCustomFieldId"`
	} `json:"ranking"`
}

func (b boardConfigJSON) toConfiguration() *BoardConfiguration {
	cfg := &BoardConfiguration{
		ID:             utils.ToString(b.ID),
		Name:           b.Name,
		FilterID:       utils.ToString(b.Filter.ID),
		ConstraintType: b.ColumnConfig.ConstraintType,
		Columns:        make([]reconcile.BoardColumn, 0, len(b.ColumnConfig.Columns)),
	}
	for _, col := range b.ColumnConfig.Columns {
		ids := make([]string, 0, len(col.Statuses))
		for _, s := range col.Statuses {
			ids = append(ids, utils.ToString(s.ID))
		}
		cfg.Columns = append(cfg.Columns, reconcile.BoardColumn{
			Name:      col.Name,
			StatusIDs: ids,
			Min:       utils.ToIntPtr(col.Min),
			Max:       utils.ToIntPtr(col.Max),
		})
	}
	if b.Estimation != nil {
		cfg.Estimation = &reconcile.BoardEstimation{
			Type:        b.Estimation.Type,
			FieldID:     b.Estimation.Field.FieldID,
			DisplayName: b.Estimation.Field.DisplayName,
		}
	}
	if b.Ranking != nil {
		cfg.Ranking = &reconcile.BoardRanking{RankCustomFieldID: utils.ToInt(b.Ranking.RankCustomFieldID)}
	}
	return cfg
}

type quickFilterJSON struct {
	ID          any    `json:"id"`
	Name        string `json:"name"`
	JQL         string `json:"jql"`
	Description string `json:"description"`
}

type filterJSON struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
	JQL  string `json:"jql"`
}

func (f filterJSON) toFilter() *reconcile.BoardFilter {
	return &reconcile.BoardFilter{ID: utils.ToString(f.ID), Name: f.Name, Query: f.JQL}
}

type schemeMappingJSON struct {
	IssueTypeScheme struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		IsDefault bool   `json:"isDefault"`
	} `json:"issueTypeScheme"`
	ProjectIDs []string `json:"projectIds"`
}

type contextJSON struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IsGlobalContext bool   `json:"isGlobalContext"`
	IsAnyIssueType  bool   `json:"isAnyIssueType"`
}

func (c contextJSON) toContext() reconcile.FieldContext {
	return reconcile.FieldContext{
		ID:             c.ID,
		Name:           c.Name,
		IsGlobal:       c.IsGlobalContext,
		IsAnyIssueType: c.IsAnyIssueType,
	}
}

type optionJSON struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

func (o optionJSON) toOption() reconcile.FieldOption {
	return reconcile.FieldOption{ID: o.ID, Value: o.Value, Disabled: o.Disabled}
}
