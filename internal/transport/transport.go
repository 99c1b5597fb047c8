// Package transport delivers rendered command payloads to the smart
// bulb. The controller only depends on the Sender contract; the wire
// protocol (Kasa TCP framing or an MQTT bridge) lives here.
package transport

// Sender delivers a single command payload to the bulb.
type Sender interface {
	// Send delivers the payload. The controller does not retry on
	// failure.
	Send(payload string) error
	// Ready reports whether the network path to the bulb is usable.
	// Polled during startup before the control loop is entered.
	Ready() bool
	// Close releases the underlying connection.
	Close() error
}
