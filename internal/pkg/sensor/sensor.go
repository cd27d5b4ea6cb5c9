// Package sensor defines the reading source the reporting loop samples from.
package sensor

import (
	"math/rand"
	"time"
)

// Reading is one temperature/humidity sample. Readings are created fresh each
// report cycle; no history is kept.
type Reading struct {
	Temperature float64
	Humidity    float64
	SampledAt   time.Time
}

// Source produces readings. A real driver (DHT22, DS18B20) would implement
// this; the firmware ships with the bench simulation below.
type Source interface {
	Sample() Reading
}

// Simulated returns values in the same ranges the bench rig produces:
// 22-30°C and 40-60% relative humidity.
type Simulated struct {
	rng *rand.Rand
	now func() time.Time
}

func NewSimulated(seed int64) *Simulated {
	return &Simulated{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

func (s *Simulated) Sample() Reading {
	return Reading{
		Temperature: 22.0 + s.rng.Float64()*8.0,
		Humidity:    40.0 + s.rng.Float64()*20.0,
		SampledAt:   s.now(),
	}
}
