// Package cmd implements the command-line interface for linkedin-engine.
//
// This package provides the following commands:
//   - run: Execute the daily content pipeline (the default command)
//   - auth: Run the one-time Google OAuth consent flow and save a token
//   - test-email: Send a fixture digest to verify Gmail send access
//   - version: Display version information
//
// The run command accepts --dry-run, --email-only, --no-email and
// --feeds-only flags to narrow the pipeline to a subset of its steps.
package cmd
