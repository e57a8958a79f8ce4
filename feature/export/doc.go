// Package export builds configuration snapshots of a live project.
//
// Service.Export reads the project's custom fields (with the options of their
// first context), issue types, per-issue-type statuses and boards (with
// columns, filter and quick filters) and assembles an
// reconcile.ExportedConfiguration. The reads are issued concurrently.
//
// Store persists snapshots to object storage; LoadFile and WriteFile handle
// local JSON files. Every decoded snapshot is validated before use.
package export
