// Package domain defines the actuator controller types and contracts
package domain

import (
	"context"
	"time"
)

// InternalToken is the reserved token for the perception loop's own automated
// reactions; it bypasses session-token verification but nothing else
const InternalToken = "internal"

// LEDState is the cached device state, singular and process-wide
type LEDState struct {
	Red    bool `json:"red"`
	Yellow bool `json:"yellow"`
}

// Reading is an environment sample from the device
type Reading struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

// Status is the controller's externally visible condition
type Status struct {
	Connected bool     `json:"connected"`
	LED       LEDState `json:"led_state"`
}

// DevicePort is the physical device seam (implemented by adapters/esp)
type DevicePort interface {
	SetLED(ctx context.Context, red, yellow bool) error
	ReadSensor(ctx context.Context) (Reading, error)
}

// ControllerPort is the token-gated control surface
type ControllerPort interface {
	// SetLED is a no-op success when the requested state equals the cache;
	// otherwise the token must be InternalToken or a currently valid
	// session-issued actuator token. A failed device write leaves the cache
	// unchanged and marks the device disconnected
	SetLED(ctx context.Context, red, yellow bool, token string) error

	// TempHumidity performs a bounded read; failures mark the device
	// disconnected and never return stale data
	TempHumidity(ctx context.Context) (Reading, error)

	// PulseWarning asserts the red warning for d using the internal token,
	// then reverts via a cancellable one-shot; a newer assertion supersedes
	PulseWarning(d time.Duration)

	// Status returns the cached state and connectivity
	Status() Status
}
