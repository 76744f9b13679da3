// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker supplies candidates for the @-mention workflow.
//
// A Picker aggregates candidate sources (workspace files, git refs, recent
// terminal commands, URLs), fuzzy-matches them against the live mention
// query, and returns ranked candidates ready to be inserted as tokens.
//
// # Sources
//
//   - FileSource: walks the workspace for files and directories, caching
//     the listing and invalidating it through an fsnotify watcher
//   - StaticSource: app-fed lists (git refs, recent commands)
//   - URLSource: recognizes URL-shaped queries and offers them verbatim
//
// # Concurrency
//
// Query is safe to call from the UI loop while the file watcher refreshes
// the cache in the background; sources guard their state with mutexes.
package picker
