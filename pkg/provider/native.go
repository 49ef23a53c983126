package provider

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
)

// NativeToolSpec describes one vendor-executed tool: the argument schema it
// accepts and the wire shape it is sent as. Adding a native tool is a
// registry entry, not new control flow.
type NativeToolSpec struct {
	// ID is the caller-facing id, e.g. "ark.web_search".
	ID string
	// WireType is the "type" value on the wire.
	WireType string
	// Schema validates NativeTool.Args.
	Schema *jsonschema.Schema

	resolved *jsonschema.Resolved
}

// WebSearchToolID is the registry id of Ark's built-in web search.
const WebSearchToolID = "ark.web_search"

var nativeTools = map[string]*NativeToolSpec{
	WebSearchToolID: mustResolve(&NativeToolSpec{
		ID:       WebSearchToolID,
		WireType: "web_search",
		Schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"limit": {
					Type:        "integer",
					Description: "Maximum number of results per search.",
					Minimum:     ptr(1.0),
					Maximum:     ptr(50.0),
				},
				"max_keyword": {
					Type:        "integer",
					Description: "Maximum number of keywords searched per round.",
					Minimum:     ptr(1.0),
					Maximum:     ptr(50.0),
				},
				"sources": {
					Type: "array",
					Items: &jsonschema.Schema{
						Type: "string",
						Enum: []any{"douyin", "moji", "toutiao"},
					},
				},
				"user_location": {
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"type":    {Type: "string", Enum: []any{"approximate"}},
						"country": {Type: "string"},
						"region":  {Type: "string"},
						"city":    {Type: "string"},
					},
					AdditionalProperties: falseSchema(),
				},
			},
			AdditionalProperties: falseSchema(),
		},
	}),
}

func mustResolve(s *NativeToolSpec) *NativeToolSpec {
	r, err := s.Schema.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("native tool %s: invalid schema: %v", s.ID, err))
	}
	s.resolved = r
	return s
}

func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

func ptr[T any](v T) *T { return &v }

// LookupNativeTool returns the registry entry for id.
func LookupNativeTool(id string) (*NativeToolSpec, bool) {
	s, ok := nativeTools[id]
	return s, ok
}

// NativeToolIDs returns the registered native tool ids in sorted order.
func NativeToolIDs() []string {
	ids := make([]string, 0, len(nativeTools))
	for id := range nativeTools {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// WireTool validates args against the schema and returns the wire object
// {"type": WireType, ...args}.
func (s *NativeToolSpec) WireTool(args map[string]any) (map[string]any, error) {
	// Validate the JSON form so numbers are float64 regardless of how the
	// caller built the map.
	instance := map[string]any{}
	if len(args) > 0 {
		data, err := json.Marshal(args)
		if err != nil {
			return nil, api.NewInvalidArgumentError("tools", fmt.Sprintf("%s: encoding args: %s", s.ID, err))
		}
		if err := json.Unmarshal(data, &instance); err != nil {
			return nil, api.NewInvalidArgumentError("tools", fmt.Sprintf("%s: decoding args: %s", s.ID, err))
		}
	}
	if err := s.resolved.Validate(instance); err != nil {
		return nil, &api.APIError{
			Type:    api.ErrorTypeInvalidArgument,
			Param:   "tools",
			Message: fmt.Sprintf("%s: invalid args: %s", s.ID, err),
			Cause:   err,
		}
	}

	wire := make(map[string]any, len(instance)+1)
	for k, v := range instance {
		wire[k] = v
	}
	wire["type"] = s.WireType
	return wire, nil
}
