package event

import "encoding/json"

// DecodePayload decodes an event payload into T.
// Payloads published on the in-process bus are already the typed struct; payloads that
// went through a transport or the dead-letter file arrive as maps and are re-decoded via JSON.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	if v, ok := input.(*T); ok && v != nil {
		return *v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
