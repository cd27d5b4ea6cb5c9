package state

import (
	"testing"
	"time"

	"github.com/karyx/edge-firmware/internal/pkg/sensor"
	"github.com/stretchr/testify/assert"
)

func TestSlot_ReadsLatestWrite(t *testing.T) {
	slot := NewSlot()
	assert.Zero(t, slot.Last())

	first := sensor.Reading{Temperature: 22.5, Humidity: 41.0, SampledAt: time.Now()}
	slot.Set(first)
	assert.Equal(t, first, slot.Last())

	second := sensor.Reading{Temperature: 29.1, Humidity: 58.2, SampledAt: time.Now()}
	slot.Set(second)
	assert.Equal(t, second, slot.Last(), "only the latest reading is kept")
}
