package apply

import (
	"context"
	"fmt"
	"strings"

	"schema-sync/core/reconcile"
	"schema-sync/core/tracker"
	"schema-sync/core/utils"

	"go.uber.org/zap"
)

const customFieldTypePrefix = "com.atlassian.jira.plugin.system.customfieldtypes:"

// searchers maps a custom field type to its search strategy. Single and
// multi selects share multiselectsearcher: it is the only searcher the
// tracker accepts for the select type.
var searchers = map[string]string{
	"select":          "multiselectsearcher",
	"multiselect":     "multiselectsearcher",
	"multicheckboxes": "multiselectsearcher",
	"radiobuttons":    "multiselectsearcher",
	"textfield":       "textsearcher",
	"textarea":        "textsearcher",
	"float":           "exactnumber",
	"datepicker":      "daterange",
	"datetime":        "datetimerange",
	"userpicker":      "userpickergroupsearcher",
	"labels":          "labelsearcher",
	"url":             "exacttextsearcher",
	"cascadingselect": "cascadingselectsearcher",
}

// SearcherKey returns the searcher for a custom field type, or "" when the
// type has no known searcher.
func SearcherKey(fieldType string) string {
	short := strings.TrimPrefix(fieldType, customFieldTypePrefix)
	s, ok := searchers[short]
	if !ok {
		return ""
	}
	return customFieldTypePrefix + s
}

func (e *Engine) applyFields(ctx context.Context, r *run) []reconcile.ApplyItemResult {
	if r.fieldsErr != nil {
		names := make([]string, 0, len(r.diff.Fields.New)+len(r.diff.Fields.Modified))
		for _, it := range r.diff.Fields.New {
			names = append(names, it.Item.Name)
		}
		for _, it := range r.diff.Fields.Modified {
			names = append(names, it.Item.Name)
		}
		return unreadable(names, "Could not read target fields", r.fieldsErr)
	}

	var results []reconcile.ApplyItemResult
	for _, it := range r.diff.Fields.New {
		results = append(results, e.createField(ctx, r, it.Item))
	}
	for _, it := range r.diff.Fields.Modified {
		targetID := it.Item.ID
		if it.AfterValue != "" {
			targetID = it.AfterValue
		}
		results = append(results, e.updateOptions(ctx, r, it.Item, targetID))
	}
	return results
}

func (e *Engine) createField(ctx context.Context, r *run, f reconcile.FieldDefinition) reconcile.ApplyItemResult {
	fieldType := f.Schema.Custom
	if fieldType == "" {
		fieldType = f.Type
	}

	created, err := e.client.CreateCustomField(ctx, tracker.CustomFieldInput{
		Name:        f.Name,
		Type:        fieldType,
		SearcherKey: SearcherKey(fieldType),
	})
	if err != nil {
		if tracker.IsConflict(err) {
			r.logger.Warn("Field already exists, binding existing field", zap.String("field", f.Name), zap.Error(err))
			return e.bindExisting(ctx, r, f)
		}
		r.logger.Error("Failed to create field", zap.String("field", f.Name), zap.Error(err))
		return failed(f.Name, "Failed to create field", err)
	}

	if !r.opts.UpdateContexts {
		return success(f.Name, "Created field")
	}

	fc, err := e.client.CreateFieldContext(ctx, created.ID, contextInput(r, f))
	if err != nil {
		if tracker.IsConflict(err) {
			r.logger.Warn("Context already exists for new field", zap.String("field", f.Name), zap.Error(err))
			return success(f.Name, "Created field; context already exists")
		}
		r.logger.Error("Failed to bind new field to project", zap.String("field", f.Name), zap.Error(err))
		return failed(f.Name, "Created field but could not bind it to the project", err)
	}

	values := optionValues(f.ActiveOptions())
	if !r.opts.UpdateOptions || len(values) == 0 {
		return success(f.Name, "Created field and bound it to the project")
	}
	if _, err := e.client.AddFieldOptions(ctx, created.ID, fc.ID, values); err != nil {
		if tracker.IsConflict(err) {
			return success(f.Name, "Created field; options already exist")
		}
		r.logger.Error("Failed to add options to new field", zap.String("field", f.Name), zap.Error(err))
		return failed(f.Name, "Created field but could not add its options", err)
	}
	return success(f.Name, fmt.Sprintf("Created field with %d options", len(values)))
}

// bindExisting adds an already existing field to the target project and
// pushes the options it is missing.
func (e *Engine) bindExisting(ctx context.Context, r *run, f reconcile.FieldDefinition) reconcile.ApplyItemResult {
	fieldID := f.ID
	if match, ok := reconcile.NewMatcher(r.fields).FindByName(f.Name); ok {
		fieldID = match.ID
	}

	fc, err := e.client.CreateFieldContext(ctx, fieldID, contextInput(r, f))
	if err != nil {
		if tracker.IsConflict(err) {
			return skipped(f.Name, "Context already exists")
		}
		r.logger.Error("Failed to bind existing field", zap.String("field", f.Name), zap.Error(err))
		return failed(f.Name, "Failed to add existing field to project", err)
	}

	values := optionValues(f.ActiveOptions())
	if !r.opts.UpdateOptions || len(values) == 0 {
		return success(f.Name, "Added existing field to project")
	}

	added, err := e.addMissingOptions(ctx, fieldID, fc.ID, values)
	if err != nil {
		if tracker.IsConflict(err) {
			return success(f.Name, "Added existing field to project")
		}
		r.logger.Error("Failed to add options to existing field", zap.String("field", f.Name), zap.Error(err))
		return failed(f.Name, "Added existing field to project but could not add its options", err)
	}
	if added == 0 {
		return success(f.Name, "Added existing field to project")
	}
	return success(f.Name, fmt.Sprintf("Added existing field to project with %d new options", added))
}

// updateOptions adds the options a matched field lacks in the target.
func (e *Engine) updateOptions(ctx context.Context, r *run, f reconcile.FieldDefinition, targetID string) reconcile.ApplyItemResult {
	values := optionValues(f.ActiveOptions())
	if len(values) == 0 {
		return skipped(f.Name, "Field has no options to reconcile")
	}
	if !r.opts.UpdateOptions {
		return skipped(f.Name, "Option updates are disabled")
	}

	contexts, err := e.client.GetFieldContexts(ctx, targetID)
	if err != nil {
		r.logger.Error("Failed to read field contexts", zap.String("field", f.Name), zap.Error(err))
		return failed(f.Name, "Failed to read field contexts", err)
	}

	var contextID string
	if fc, ok := pickContext(contexts); ok {
		contextID = fc.ID
	} else if r.opts.UpdateContexts {
		fc, err := e.client.CreateFieldContext(ctx, targetID, contextInput(r, f))
		if err != nil {
			if tracker.IsConflict(err) {
				return skipped(f.Name, "Context already exists")
			}
			return failed(f.Name, "Failed to create field context", err)
		}
		contextID = fc.ID
	} else {
		return skipped(f.Name, "Field has no context in the target project")
	}

	added, err := e.addMissingOptions(ctx, targetID, contextID, values)
	if err != nil {
		if tracker.IsConflict(err) {
			return skipped(f.Name, "Options already exist")
		}
		r.logger.Error("Failed to add field options", zap.String("field", f.Name), zap.Error(err))
		return failed(f.Name, "Failed to add options", err)
	}
	if added == 0 {
		return skipped(f.Name, "All options already exist")
	}
	return success(f.Name, fmt.Sprintf("Added %d options", added))
}

// addMissingOptions adds the values the context lacks, compared
// case-insensitively, and returns how many were added.
func (e *Engine) addMissingOptions(ctx context.Context, fieldID, contextID string, values []string) (int, error) {
	existing, err := e.client.GetFieldOptions(ctx, fieldID, contextID)
	if err != nil {
		return 0, err
	}
	missing := MissingOptions(existing, values)
	if len(missing) == 0 {
		return 0, nil
	}
	if _, err := e.client.AddFieldOptions(ctx, fieldID, contextID, missing); err != nil {
		return 0, err
	}
	return len(missing), nil
}

// MissingOptions returns the values not present in existing, ignoring case
// and surrounding whitespace, without duplicates.
func MissingOptions(existing []reconcile.FieldOption, values []string) []string {
	have := make(map[string]struct{}, len(existing))
	for _, o := range existing {
		have[utils.NormalizeName(o.Value)] = struct{}{}
	}
	var missing []string
	for _, v := range values {
		key := utils.NormalizeName(v)
		if _, ok := have[key]; ok {
			continue
		}
		have[key] = struct{}{}
		missing = append(missing, v)
	}
	return missing
}

// pickContext prefers a global context, falling back to the first one.
func pickContext(contexts []reconcile.FieldContext) (reconcile.FieldContext, bool) {
	for _, c := range contexts {
		if c.IsGlobal {
			return c, true
		}
	}
	if len(contexts) > 0 {
		return contexts[0], true
	}
	return reconcile.FieldContext{}, false
}

func contextInput(r *run, f reconcile.FieldDefinition) tracker.FieldContextInput {
	return tracker.FieldContextInput{
		Name:         fmt.Sprintf("%s context for %s", f.Name, r.target.Key),
		ProjectIDs:   []string{r.target.ID},
		IssueTypeIDs: []string{},
	}
}

func optionValues(options []reconcile.FieldOption) []string {
	values := make([]string, 0, len(options))
	for _, o := range options {
		values = append(values, o.Value)
	}
	return values
}
