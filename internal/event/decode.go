package event

import "encoding/json"

// DecodePayload decodes an event payload into T via type assertion then JSON fallback.
// Payloads published through the in-process MemoryBus are already the right struct;
// payloads replayed from a dead-letter file arrive as generic maps and take the
// JSON round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
