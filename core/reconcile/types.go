package reconcile

import "fmt"

// DiffStatus classifies a single diff item.
type DiffStatus string

const (
	// StatusNew means the entity is absent from the target and will be created.
	StatusNew DiffStatus = "new"
	// StatusModified means the entity exists in the target but differs, or
	// exists under a different identifier.
	StatusModified DiffStatus = "modified"
	// StatusUnchanged means the entity already exists as-is.
	StatusUnchanged DiffStatus = "unchanged"
	// StatusSkipped is only produced by Compare: the entity exists only on the
	// right-hand side.
	StatusSkipped DiffStatus = "skipped"
)

// DiffItem is one classified entity.
type DiffItem[T any] struct {
	Item   T          `json:"item"`
	Status DiffStatus `json:"status"`
	Reason string     `json:"reason,omitempty"`
	// BeforeValue and AfterValue carry the two differing values, e.g. the
	// source and target identifiers of a name-matched entity.
	BeforeValue string `json:"beforeValue,omitempty"`
	AfterValue  string `json:"afterValue,omitempty"`
}

// DiffCategory groups the items of one entity type by status.
type DiffCategory[T any] struct {
	New       []DiffItem[T] `json:"new"`
	Modified  []DiffItem[T] `json:"modified"`
	Skipped   []DiffItem[T] `json:"skipped"`
	Unchanged []DiffItem[T] `json:"unchanged"`
}

// Add appends item to the list matching its status.
func (c *DiffCategory[T]) Add(item DiffItem[T]) {
	switch item.Status {
	case StatusNew:
		c.New = append(c.New, item)
	case StatusModified:
		c.Modified = append(c.Modified, item)
	case StatusSkipped:
		c.Skipped = append(c.Skipped, item)
	default:
		c.Unchanged = append(c.Unchanged, item)
	}
}

// Items returns every item in new, modified, skipped, unchanged order.
func (c DiffCategory[T]) Items() []DiffItem[T] {
	out := make([]DiffItem[T], 0, c.Len())
	out = append(out, c.New...)
	out = append(out, c.Modified...)
	out = append(out, c.Skipped...)
	out = append(out, c.Unchanged...)
	return out
}

// Len returns the total number of items.
func (c DiffCategory[T]) Len() int {
	return len(c.New) + len(c.Modified) + len(c.Skipped) + len(c.Unchanged)
}

// Counts summarizes a category.
type Counts struct {
	New       int `json:"new"`
	Modified  int `json:"modified"`
	Skipped   int `json:"skipped"`
	Unchanged int `json:"unchanged"`
}

// Counts returns the number of items per status.
func (c DiffCategory[T]) Counts() Counts {
	return Counts{
		New:       len(c.New),
		Modified:  len(c.Modified),
		Skipped:   len(c.Skipped),
		Unchanged: len(c.Unchanged),
	}
}

// ConfigurationDiff is the result of diffing a snapshot against a target.
type ConfigurationDiff struct {
	Fields     DiffCategory[FieldDefinition]     `json:"fields"`
	IssueTypes DiffCategory[IssueTypeDefinition] `json:"issueTypes"`
	Workflows  DiffCategory[WorkflowDefinition]  `json:"workflows"`
	Boards     DiffCategory[BoardDefinition]     `json:"boards"`
}

// HasChanges reports whether anything is new or modified.
func (d *ConfigurationDiff) HasChanges() bool {
	return len(d.Fields.New)+len(d.Fields.Modified)+
		len(d.IssueTypes.New)+len(d.IssueTypes.Modified)+
		len(d.Workflows.Modified)+len(d.Boards.New) > 0
}

// CheckStatus is the outcome of one validation check.
type CheckStatus string

const (
	CheckPass    CheckStatus = "pass"
	CheckFail    CheckStatus = "fail"
	CheckWarning CheckStatus = "warning"
)

// Severity is the overall severity of a validation run.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ValidationCheck is one compatibility check.
type ValidationCheck struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
	Details []string    `json:"details"`
}

// ValidationResult is the outcome of validating a snapshot against a target.
// Diff is nil whenever Compatible is false.
type ValidationResult struct {
	Compatible    bool               `json:"compatible"`
	Severity      Severity           `json:"severity"`
	Checks        []ValidationCheck  `json:"checks"`
	Diff          *ConfigurationDiff `json:"diff"`
	SourceProject ProjectRef         `json:"sourceProject"`
	TargetProject ProjectRef         `json:"targetProject"`
}

// MaxDetails is the number of concrete entries kept in a check's details.
const MaxDetails = 5

// BoundedDetails keeps the first MaxDetails entries of items and appends an
// elision marker for the rest. It returns nil for an empty input.
func BoundedDetails(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	if len(items) <= MaxDetails {
		out := make([]string, len(items))
		copy(out, items)
		return out
	}
	out := make([]string, 0, MaxDetails+1)
	out = append(out, items[:MaxDetails]...)
	out = append(out, fmt.Sprintf("...and %d more", len(items)-MaxDetails))
	return out
}

// ApplyOptions controls what the apply engine may change.
type ApplyOptions struct {
	// UpdateContexts binds newly created fields into the target project's context.
	UpdateContexts bool `json:"updateContexts"`
	// UpdateOptions pushes select-field options into the target context.
	UpdateOptions bool `json:"updateOptions"`
	// DryRun reports what would happen without touching the target.
	DryRun bool `json:"dryRun"`
}

// ItemStatus is the outcome of applying one entity.
type ItemStatus string

const (
	ItemSuccess ItemStatus = "success"
	ItemSkipped ItemStatus = "skipped"
	ItemError   ItemStatus = "error"
)

// ApplyItemResult is the outcome for one entity.
type ApplyItemResult struct {
	Name   string     `json:"name"`
	Status ItemStatus `json:"status"`
	Reason string     `json:"reason,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// StepStatus is the aggregate outcome of one apply step.
type StepStatus string

const (
	StepSuccess StepStatus = "success"
	StepPartial StepStatus = "partial"
	StepError   StepStatus = "error"
	StepSkipped StepStatus = "skipped"
)

// ApplyStepResult is the outcome of one apply step.
type ApplyStepResult struct {
	Step         string            `json:"step"`
	Status       StepStatus        `json:"status"`
	Results      []ApplyItemResult `json:"results"`
	ArtifactPath string            `json:"artifactPath,omitempty"`
}

// ApplyResult is the outcome of a whole apply run.
type ApplyResult struct {
	Success     bool              `json:"success"`
	BackupPath  string            `json:"backupPath"`
	Results     []ApplyStepResult `json:"results"`
	ManualSteps []string          `json:"manualSteps"`
}

// DeriveStepStatus computes a step's aggregate status from its items:
// error if any item is a hard error, skipped when there is nothing or every
// item was skipped, partial for a mix of success and skip, success otherwise.
func DeriveStepStatus(items []ApplyItemResult) StepStatus {
	if len(items) == 0 {
		return StepSkipped
	}
	var succeeded, skipped int
	for _, it := range items {
		switch it.Status {
		case ItemError:
			return StepError
		case ItemSkipped:
			skipped++
		default:
			succeeded++
		}
	}
	if succeeded == 0 {
		return StepSkipped
	}
	if skipped > 0 {
		return StepPartial
	}
	return StepSuccess
}

// NewStepResult builds a step result with its derived status.
func NewStepResult(step string, items []ApplyItemResult) ApplyStepResult {
	if items == nil {
		items = []ApplyItemResult{}
	}
	return ApplyStepResult{
		Step:    step,
		Status:  DeriveStepStatus(items),
		Results: items,
	}
}

// Failed reports whether the step is fatal: flagged error and carrying at
// least one hard error item.
func (s ApplyStepResult) Failed() bool {
	if s.Status != StepError {
		return false
	}
	for _, it := range s.Results {
		if it.Status == ItemError {
			return true
		}
	}
	return false
}

// RunSucceeded is false iff at least one step failed.
func RunSucceeded(steps []ApplyStepResult) bool {
	for _, s := range steps {
		if s.Failed() {
			return false
		}
	}
	return true
}
