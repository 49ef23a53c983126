// Package responses implements the Ark responses protocol (POST /responses):
// request translation with instructions and input items, output item
// parsing and the lifecycle-event stream transformer.
//
// Unlike chat-completions, every stream event names its type in the
// payload, and function calls are announced and completed by explicit
// output_item.added and output_item.done events keyed by item id.
package responses
