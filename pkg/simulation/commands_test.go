package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestCommand_ProtoRoundTrip(t *testing.T) {
	for _, cmd := range []Command{
		AddEntity(),
		AddPredator(),
		AddFlock(3, 45),
		AddFlockFromControls(),
		Set(ParamCohesion, 0.7),
		ToggleCollisions(),
	} {
		t.Run(cmd.String(), func(t *testing.T) {
			msg, err := cmd.Proto()
			require.NoError(t, err)
			got, err := DecodeCommand(msg)
			require.NoError(t, err)
			assert.Equal(t, cmd, got)
		})
	}
}

func TestDecodeCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   error
	}{
		{"missing kind", map[string]any{}, ErrUnknownCommand},
		{"unknown kind", map[string]any{"kind": "remove-entity"}, ErrUnknownCommand},
		{"fractional flock size", map[string]any{"kind": "add-flock", "size": 2.5}, ErrInvalidCommand},
		{"negative flock size", map[string]any{"kind": "add-flock", "size": -1}, ErrInvalidCommand},
		{"text flock size", map[string]any{"kind": "add-flock", "size": "two"}, ErrInvalidCommand},
		{"set without param", map[string]any{"kind": "set", "value": 1}, ErrInvalidCommand},
		{"set without value", map[string]any{"kind": "set", "param": "speed"}, ErrInvalidCommand},
		{"set NaN", map[string]any{"kind": "set", "param": "cohesion", "value": math.NaN()}, ErrInvalidCommand},
		{"set +Inf", map[string]any{"kind": "set", "param": "speed", "value": math.Inf(1)}, ErrInvalidCommand},
		{"set -Inf", map[string]any{"kind": "set", "param": "speed", "value": math.Inf(-1)}, ErrInvalidCommand},
		{"flock NaN angle", map[string]any{"kind": "add-flock", "size": 2, "angle": math.NaN()}, ErrInvalidCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := structpb.NewStruct(tt.fields)
			require.NoError(t, err)
			_, err = DecodeCommand(msg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeCommand_Nil(t *testing.T) {
	_, err := DecodeCommand(nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
