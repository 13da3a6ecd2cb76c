package usecase

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"hotel-ops/services/notification/internal/entity"
)

// FanoutRequest is the caller-facing fan-out request before validation.
// TargetID keeps its raw JSON form because its shape depends on Target.
type FanoutRequest struct {
	Message  string
	Target   string
	TargetID json.RawMessage
	Priority string
	HotelID  *int64
}

// ParsePriority validates a priority label. An empty label means medium.
func ParsePriority(raw string) (entity.Priority, error) {
	if raw == "" {
		return entity.PriorityMedium, nil
	}
	p := entity.Priority(raw)
	if !p.Valid() {
		return "", invalid("priority", "invalid priority %q, must be one of: low, medium, high", raw)
	}
	return p, nil
}

// ParseTarget builds the typed target for kind from its raw selector.
func ParseTarget(kind string, raw json.RawMessage) (entity.Target, error) {
	if kind == "" {
		return nil, invalid("target", "target is required")
	}

	switch entity.TargetKind(kind) {
	case entity.TargetAll:
		return entity.AllRooms{}, nil

	case entity.TargetRoom:
		id, err := parseID(raw, kind)
		if err != nil {
			return nil, err
		}
		return entity.SingleRoom{RoomID: id}, nil

	case entity.TargetGuest:
		id, err := parseID(raw, kind)
		if err != nil {
			return nil, err
		}
		return entity.GuestRoom{GuestID: id}, nil

	case entity.TargetFloor:
		value, err := decodeSelector(raw, kind)
		if err != nil {
			return nil, err
		}
		number, ok := toInt64(value)
		if !ok {
			return nil, invalid("targetId", "floor must be an integer")
		}
		return entity.Floor{Number: int(number)}, nil

	case entity.TargetMultipleRooms:
		value, err := decodeSelector(raw, kind)
		if err != nil {
			return nil, err
		}
		items, ok := value.([]interface{})
		if !ok {
			return nil, invalid("targetId", "targetId must be an array when target is multipleRooms")
		}
		if len(items) == 0 {
			return nil, invalid("targetId", "targetId must list at least one room")
		}
		// Unknown ids, including zero or negative ones, fail per room at write time.
		ids := make([]int64, 0, len(items))
		for i, item := range items {
			id, ok := toInt64(item)
			if !ok {
				return nil, invalid("targetId", "element %d is not an integer room id", i)
			}
			ids = append(ids, id)
		}
		return entity.RoomList{RoomIDs: ids}, nil
	}

	kinds := make([]string, len(entity.TargetKinds))
	for i, k := range entity.TargetKinds {
		kinds[i] = string(k)
	}
	return nil, invalid("target", "invalid target %q, must be one of: %s", kind, strings.Join(kinds, ", "))
}

func decodeSelector(raw json.RawMessage, kind string) (interface{}, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, invalid("targetId", "targetId is required for target type: %s", kind)
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, invalid("targetId", "malformed targetId: %v", err)
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil, invalid("targetId", "targetId is required for target type: %s", kind)
	}
	return value, nil
}

func parseID(raw json.RawMessage, kind string) (int64, error) {
	value, err := decodeSelector(raw, kind)
	if err != nil {
		return 0, err
	}
	id, ok := toInt64(value)
	if !ok || id <= 0 {
		return 0, invalid("targetId", "targetId must be a positive integer for target type: %s", kind)
	}
	return id, nil
}

// toInt64 accepts JSON integers and numeric strings.
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	}
	return 0, false
}
