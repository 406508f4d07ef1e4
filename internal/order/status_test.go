package order

import (
	"testing"

	"github.com/nortia/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestEffectFor(t *testing.T) {
	cases := []struct {
		name string
		prev model.OrderStatus
		next model.OrderStatus
		want StockEffect
	}{
		{"received to in progress", model.StatusReceived, model.StatusInProgress, EffectNone},
		{"received to completed", model.StatusReceived, model.StatusCompleted, EffectDecrement},
		{"in progress to completed", model.StatusInProgress, model.StatusCompleted, EffectDecrement},
		{"completed to cancelled", model.StatusCompleted, model.StatusCancelled, EffectIncrement},
		{"completed to received", model.StatusCompleted, model.StatusReceived, EffectIncrement},
		{"completed to completed", model.StatusCompleted, model.StatusCompleted, EffectNone},
		{"received to received", model.StatusReceived, model.StatusReceived, EffectNone},
		{"cancelled to refused", model.StatusCancelled, model.StatusRefused, EffectNone},
		{"refused to in progress", model.StatusRefused, model.StatusInProgress, EffectNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EffectFor(tc.prev, tc.next))
		})
	}
}

func TestEffectForRoundTrip(t *testing.T) {
	// A complete/uncomplete cycle must net out to zero stock movement.
	down := EffectFor(model.StatusInProgress, model.StatusCompleted)
	up := EffectFor(model.StatusCompleted, model.StatusInProgress)
	assert.Equal(t, EffectDecrement, down)
	assert.Equal(t, EffectIncrement, up)
}
