// Package app and its subpackages implement the goal achievement dashboard
// backend.
//
// Layering, outermost first:
//
//   - httpapi: the REST surface. Decodes requests, resolves the caller from
//     the bearer token, delegates to a service, and renders the shared error
//     taxonomy.
//   - services/*: one package per module (timeaudit, goals, pomodoro,
//     metrics, accountability, relationships, planning, insights, voice).
//     Services validate input, enforce ownership, and orchestrate stores and
//     collaborators. They never touch SQL.
//   - aggregate: pure derivations over loaded records (summaries, progress,
//     series, suggestions). No I/O.
//   - storage: the persistence interfaces with postgres and memory
//     implementations. The memory store backs tests and database-less
//     deployments.
//   - system: the lifecycle manager the runtime starts and stops services
//     through.
//
// External collaborators (text generation, blob storage, transcription) sit
// behind narrow interfaces owned by the consuming service; deployments
// without them get disabled implementations that fail with a clear error.
package app
