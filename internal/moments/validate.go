package moments

import (
	"encoding/json"

	jsonschema "github.com/google/jsonschema-go/jsonschema"

	"github.com/sghansard/hansardkb/internal/types"
)

// candidateSchema validates the shape of one LLM-proposed candidate
// object before it's unmarshaled into types.MomentCandidate, so a
// malformed individual element can be dropped without discarding the
// rest of the array (§4.2: "invalid individual candidates are dropped;
// the rest proceed").
var candidateSchema = mustResolveSchema()

func mustResolveSchema() *jsonschema.Resolved {
	schema, err := jsonschema.For[types.MomentCandidate](nil)
	if err != nil {
		panic("moments: build candidate schema: " + err.Error())
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		panic("moments: resolve candidate schema: " + err.Error())
	}
	return resolved
}

// validCandidate reports whether raw decodes and validates as a
// MomentCandidate.
func validCandidate(raw json.RawMessage) (types.MomentCandidate, bool) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return types.MomentCandidate{}, false
	}
	if err := candidateSchema.Validate(generic); err != nil {
		return types.MomentCandidate{}, false
	}
	var candidate types.MomentCandidate
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return types.MomentCandidate{}, false
	}
	if candidate.Quote == "" {
		return types.MomentCandidate{}, false
	}
	return candidate, true
}
