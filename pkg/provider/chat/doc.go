// Package chat implements the Ark chat-completions protocol: request
// translation, response parsing and the chunk transformer for
// POST /chat/completions.
//
// Tool call fragments are buffered by their index within the delta and
// completed when the stream ends. Reasoning arrives in reasoning_content
// alongside the regular content.
package chat
