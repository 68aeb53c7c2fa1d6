package pins

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/leapstack-labs/pins/internal/ui/features/common"
	"github.com/leapstack-labs/pins/pkg/core"
)

// PinRequest is the validated body of a pin call.
type PinRequest struct {
	ItemType       core.ItemType
	OriginDatabase string
	OriginTable    *string
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", core.ErrMalformedInput, fmt.Sprintf(format, args...))
}

// decodeObject reads exactly one JSON object. Numbers are kept as json.Number
// so integers can be told apart from floats.
func decodeObject(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed("request body is empty")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", common.ErrBodyTooLarge, tooLarge.Limit)
		}
		return nil, malformed("invalid JSON: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("unexpected data after JSON body")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, malformed("request body must be a JSON object")
	}
	return obj, nil
}

// integerField accepts only JSON integers. Booleans, floats, strings and null are rejected.
func integerField(v any, name string) (int64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, malformed("%s must be an integer", name)
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, malformed("%s must be an integer", name)
	}
	return i, nil
}

func requiredString(obj map[string]any, name string) (string, error) {
	s, ok := obj[name].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", malformed("%s is required", name)
	}
	return s, nil
}

// ParsePin validates a pin request body.
func ParsePin(r io.Reader) (PinRequest, error) {
	obj, err := decodeObject(r)
	if err != nil {
		return PinRequest{}, err
	}

	itemType, err := requiredString(obj, "item_type")
	if err != nil {
		return PinRequest{}, err
	}
	database, err := requiredString(obj, "origin_database")
	if err != nil {
		return PinRequest{}, err
	}

	req := PinRequest{ItemType: core.ItemType(itemType), OriginDatabase: database}

	switch v := obj["origin_table"].(type) {
	case nil:
	case string:
		if v != "" {
			req.OriginTable = &v
		}
	default:
		return PinRequest{}, malformed("origin_table must be a string or null")
	}

	if err := core.CheckTable(req.ItemType, req.OriginTable); err != nil {
		return PinRequest{}, err
	}
	return req, nil
}

// ParseUnpin validates an unpin request body and returns the pin id.
func ParseUnpin(r io.Reader) (int64, error) {
	obj, err := decodeObject(r)
	if err != nil {
		return 0, err
	}
	return integerField(obj["item_id"], "item_id")
}

// ParseReorder validates a reorder request body.
func ParseReorder(r io.Reader) ([]core.OrderAssignment, error) {
	obj, err := decodeObject(r)
	if err != nil {
		return nil, err
	}

	raw, ok := obj["new_order"].([]any)
	if !ok {
		return nil, malformed("new_order must be an array")
	}

	out := make([]core.OrderAssignment, 0, len(raw))
	for i, entry := range raw {
		item, ok := entry.(map[string]any)
		if !ok {
			return nil, malformed("new_order[%d] must be an object", i)
		}
		id, err := integerField(item["id"], fmt.Sprintf("new_order[%d].id", i))
		if err != nil {
			return nil, err
		}
		idx, err := integerField(item["order_idx"], fmt.Sprintf("new_order[%d].order_idx", i))
		if err != nil {
			return nil, err
		}
		out = append(out, core.OrderAssignment{ID: id, OrderIdx: idx})
	}
	return out, nil
}
