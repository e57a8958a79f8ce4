package reconcile

import (
	"fmt"
	"time"

	"schema-sync/core/utils"
)

// SchemaVersion is the version written into every exported configuration.
const SchemaVersion = "1.0"

// Project styles reported by the tracker.
const (
	ProjectStyleClassic = "classic"
	ProjectStyleNextGen = "next-gen"
)

// ProjectRef identifies a tracker project.
type ProjectRef struct {
	// ID is the tracker-assigned numeric id (as a string).
	ID string `json:"id"`
	// Key is the short project key, e.g. "PROJ".
	Key string `json:"key"`
	// Name is the display name.
	Name string `json:"name,omitempty"`
	// ProjectType is the project type key, e.g. "software" or "business".
	ProjectType string `json:"projectType"`
	// Style is "classic" (company-managed) or "next-gen" (team-managed).
	Style string `json:"style,omitempty"`
}

// TeamManaged reports whether the project is a team-managed (next-gen) project.
func (p ProjectRef) TeamManaged() bool {
	return p.Style == ProjectStyleNextGen
}

// Identity is implemented by every entity that takes part in matching.
type Identity interface {
	EntityID() string
	EntityName() string
}

// FieldSchema describes the value shape of a field.
type FieldSchema struct {
	Type     string `json:"type"`
	Items    string `json:"items,omitempty"`
	Custom   string `json:"custom,omitempty"`
	CustomID int    `json:"customId,omitempty"`
}

// FieldContext is a scope within which a field's option list applies.
type FieldContext struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	IsGlobal       bool     `json:"isGlobalContext"`
	IsAnyIssueType bool     `json:"isAnyIssueType"`
	IssueTypeIDs   []string `json:"issueTypeIds,omitempty"`
}

// FieldOption is a single selectable value of a field.
type FieldOption struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

// FieldDefinition is an exported field.
type FieldDefinition struct {
	ID       string         `json:"id"`
	Key      string         `json:"key"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	IsCustom bool           `json:"isCustom"`
	Schema   FieldSchema    `json:"schema"`
	Contexts []FieldContext `json:"contexts"`
	Options  []FieldOption  `json:"options"`
}

func (f FieldDefinition) EntityID() string   { return f.ID }
func (f FieldDefinition) EntityName() string { return f.Name }

// ActiveOptions returns the options that are not disabled, in order.
func (f FieldDefinition) ActiveOptions() []FieldOption {
	var active []FieldOption
	for _, o := range f.Options {
		if !o.Disabled {
			active = append(active, o)
		}
	}
	return active
}

// IssueTypeDefinition is an exported issue type.
type IssueTypeDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
	IsSubtask   bool   `json:"isSubtask"`
	// HierarchyLevel is negative for sub-tasks, 0 for standard types and
	// positive for epic-like tiers.
	HierarchyLevel int `json:"hierarchyLevel"`
}

func (t IssueTypeDefinition) EntityID() string   { return t.ID }
func (t IssueTypeDefinition) EntityName() string { return t.Name }

// Status category keys.
const (
	CategoryNew           = "new"
	CategoryIndeterminate = "indeterminate"
	CategoryDone          = "done"
)

// StatusCategory groups statuses into To Do / In Progress / Done.
type StatusCategory struct {
	ID   int    `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// StatusDefinition is an exported workflow status.
type StatusDefinition struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category StatusCategory `json:"category"`
}

func (s StatusDefinition) EntityID() string   { return s.ID }
func (s StatusDefinition) EntityName() string { return s.Name }

// Transition is an edge of a workflow. A nil From means the transition is
// available from any status (global transition).
type Transition struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	From *string `json:"from"`
	To   string  `json:"to"`
}

// WorkflowDefinition is an exported workflow.
type WorkflowDefinition struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Statuses     []StatusDefinition `json:"statuses"`
	Transitions  []Transition       `json:"transitions"`
	IssueTypeIDs []string           `json:"issueTypeIds"`
}

func (w WorkflowDefinition) EntityID() string   { return w.ID }
func (w WorkflowDefinition) EntityName() string { return w.Name }

// Validate checks that every transition endpoint references one of the
// workflow's statuses.
func (w WorkflowDefinition) Validate() error {
	known := make(map[string]struct{}, len(w.Statuses))
	for _, s := range w.Statuses {
		known[s.ID] = struct{}{}
	}
	for _, t := range w.Transitions {
		if _, ok := known[t.To]; !ok {
			return fmt.Errorf("workflow %q: transition %q targets unknown status %s", w.Name, t.Name, t.To)
		}
		if t.From != nil {
			if _, ok := known[*t.From]; !ok {
				return fmt.Errorf("workflow %q: transition %q starts from unknown status %s", w.Name, t.Name, *t.From)
			}
		}
	}
	return nil
}

// Board types.
const (
	BoardScrum  = "scrum"
	BoardKanban = "kanban"
	BoardSimple = "simple"
)

// BoardFilter is the saved filter backing a board.
type BoardFilter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query"`
}

// BoardColumn is a board column and the statuses mapped to it.
type BoardColumn struct {
	Name      string   `json:"name"`
	StatusIDs []string `json:"statusIds"`
	Min       *int     `json:"min,omitempty"`
	Max       *int     `json:"max,omitempty"`
}

// BoardEstimation describes how a board estimates issues.
type BoardEstimation struct {
	Type        string `json:"type"`
	FieldID     string `json:"fieldId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// BoardRanking describes the field used for ranking.
type BoardRanking struct {
	RankCustomFieldID int `json:"rankCustomFieldId"`
}

// QuickFilter is a board quick filter.
type QuickFilter struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Query       string `json:"query"`
	Description string `json:"description,omitempty"`
}

// BoardDefinition is an exported board.
type BoardDefinition struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	Filter         BoardFilter      `json:"filter"`
	Columns        []BoardColumn    `json:"columns"`
	ConstraintType string           `json:"constraintType,omitempty"`
	Estimation     *BoardEstimation `json:"estimation,omitempty"`
	Ranking        *BoardRanking    `json:"ranking,omitempty"`
	QuickFilters   []QuickFilter    `json:"quickFilters"`
}

func (b BoardDefinition) EntityID() string   { return b.ID }
func (b BoardDefinition) EntityName() string { return b.Name }

// ColumnNames returns the board's column names in order.
func (b BoardDefinition) ColumnNames() []string {
	names := make([]string, 0, len(b.Columns))
	for _, c := range b.Columns {
		names = append(names, c.Name)
	}
	return names
}

// ExportMeta describes where and when a configuration was exported.
type ExportMeta struct {
	SchemaVersion  string     `json:"schemaVersion"`
	ExportedAt     time.Time  `json:"exportedAt"`
	SourceProject  ProjectRef `json:"sourceProject"`
	SourceInstance string     `json:"sourceInstance"`
	IssueTypeIDs   []string   `json:"issueTypeIds"`
}

// ExportedConfiguration is an immutable snapshot of a project's schema.
// Consumers must treat it as read-only.
type ExportedConfiguration struct {
	Meta       ExportMeta            `json:"meta"`
	Fields     []FieldDefinition     `json:"fields"`
	IssueTypes []IssueTypeDefinition `json:"issueTypes"`
	Workflows  []WorkflowDefinition  `json:"workflows"`
	Boards     []BoardDefinition     `json:"boards"`
}

// Validate checks the schema version and every workflow invariant.
func (c *ExportedConfiguration) Validate() error {
	if c == nil {
		return fmt.Errorf("configuration is nil")
	}
	if c.Meta.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported schema version %q (expected %q)", c.Meta.SchemaVersion, SchemaVersion)
	}
	if c.Meta.SourceProject.Key == "" {
		return fmt.Errorf("configuration has no source project")
	}
	for _, w := range c.Workflows {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Statuses returns the union of all workflow statuses, deduplicated by id,
// in first-seen order.
func (c *ExportedConfiguration) Statuses() []StatusDefinition {
	return UnionStatuses(c.Workflows)
}

// CustomFields returns only the custom fields of the configuration.
func (c *ExportedConfiguration) CustomFields() []FieldDefinition {
	var custom []FieldDefinition
	for _, f := range c.Fields {
		if f.IsCustom {
			custom = append(custom, f)
		}
	}
	return custom
}

// UnionStatuses returns the statuses of the given workflows deduplicated by id.
func UnionStatuses(workflows []WorkflowDefinition) []StatusDefinition {
	seen := make(map[string]struct{})
	var out []StatusDefinition
	for _, w := range workflows {
		for _, s := range w.Statuses {
			key := s.ID
			if key == "" {
				key = "name:" + utils.NormalizeName(s.Name)
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
