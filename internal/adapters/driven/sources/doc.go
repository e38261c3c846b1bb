// Package sources groups the DataSource adapters. Each subpackage
// implements the driven.DataSource port for one content provider:
//
//   - slack: Slack message search via the Slack Web API
//   - github: issue and pull request search via the GitHub API
//   - googledrive: file search via the Google Drive API
//   - filesystem: keyword search over a local directory
//
// Sources declare relevance for a query through keyword heuristics;
// the orchestrator falls back to searching all of them when none match.
package sources
