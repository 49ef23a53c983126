// Package api defines the provider-agnostic content model shared by every
// part of the seedkit Ark adapter.
//
// The package has zero external dependencies beyond ID generation and
// performs no I/O. It describes what flows into a provider (messages and
// their parts) and what flows out (stream events, generate results, usage,
// finish reasons, warnings, errors).
//
// Core types:
//   - [Message]: role-tagged conversation entry (system, user, assistant, tool)
//   - [StreamEvent]: one normalized streaming event (spans, tool inputs, finish)
//   - [GenerateResult]: normalized non-streaming result
//   - [Usage]: token accounting with derived no-cache/text splits
//   - [APIError]: structured error with type, code, param, and message
//
// Every tagged union ([Message], [UserPart], [AssistantPart], [FileData],
// [ToolResultOutput], [StreamEvent], [ContentBlock]) is a sealed interface:
// only this package can add variants, and consumers switch over them with a
// default arm that reports the unexpected variant.
package api
