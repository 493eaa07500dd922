package api

import "testing"

func TestPayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload Validator
		wantErr bool
	}{
		{"position inside grid", PositionPayload{X: 0, Y: 63}, false},
		{"position outside grid", PositionPayload{X: 64, Y: 0}, true},
		{"negative cell", SpicePayload{X: -1, Y: 5}, true},
		{"init default", InitPayload{}, false},
		{"init bad scale", InitPayload{Scale: "huge"}, true},
		{"unveil negative radius", UnveilPayload{X: 5, Y: 5, Radius: -1}, true},
		{"concrete bad size", ConcretePayload{X: 5, Y: 5, Size: 3}, true},
		{"concrete bad owner", ConcretePayload{X: 5, Y: 5, Owner: 8}, true},
		{"concrete 2x2", ConcretePayload{X: 5, Y: 5, Size: 2}, false},
		{"spawn unknown kind", SpawnPayload{Kind: "tree"}, true},
		{"spawn unit", SpawnPayload{Kind: "unit", X: 3, Y: 3}, false},
		{"remove zero handle", RemovePayload{}, true},
		{"evaluate bad orientation", EvaluatePayload{Handle: 1, Orientation: 8}, true},
		{"evaluate ok", EvaluatePayload{Handle: 1, X: 10, Y: 10, Orientation: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
