// Package content defines the shared data model of a pipeline run (Article,
// Draft, CategoryCount) and the pre-classification processing step: HTML
// stripping and near-duplicate removal.
package content
