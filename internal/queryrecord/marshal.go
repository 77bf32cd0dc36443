package queryrecord

import "encoding/json"

// queryAlias avoids infinite recursion into Query's own
// Marshal/UnmarshalJSON when the custom methods below delegate to the
// encoding/json default behavior for the declared fields.
type queryAlias Query

// MarshalJSON flattens PassThrough's keys alongside Query's declared
// fields, matching spec.md §6's "arbitrary pass-through keys" sitting at
// the same level as origin_vertex/destination_vertex/etc in the wire
// Query record.
func (q Query) MarshalJSON() ([]byte, error) {
	declared, err := json.Marshal(queryAlias(q))
	if err != nil {
		return nil, err
	}
	if len(q.PassThrough) == 0 {
		return declared, nil
	}

	merged := make(map[string]json.RawMessage, len(q.PassThrough)+8)
	if err := json.Unmarshal(declared, &merged); err != nil {
		return nil, err
	}
	for k, v := range q.PassThrough {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}
	return json.Marshal(merged)
}

// declaredQueryKeys lists every field name queryAlias marshals under, so
// UnmarshalJSON can route everything else into PassThrough.
var declaredQueryKeys = map[string]bool{
	"origin_vertex": true, "origin_x": true, "origin_y": true,
	"destination_vertex": true, "destination_x": true, "destination_y": true,
	"model_name": true, "weights": true, "road_classes": true,
	"algorithm": true, "k": true, "vias": true,
}

// UnmarshalJSON reverses MarshalJSON: declared fields populate their
// struct fields as usual, and every other top-level key collects into
// PassThrough.
func (q *Query) UnmarshalJSON(data []byte) error {
	var alias queryAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*q = Query(alias)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if declaredQueryKeys[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		if q.PassThrough == nil {
			q.PassThrough = make(map[string]any)
		}
		q.PassThrough[k] = val
	}
	return nil
}
