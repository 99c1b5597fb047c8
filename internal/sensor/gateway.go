// Package sensor defines the gateway contract through which the
// control loop acquires raw readings. Register-level sensor
// configuration lives behind this seam.
package sensor

import "github.com/mayannaise/intellilight/internal/colour"

// Gateway provides the latest sampled values from the sensor boards.
// All reads are non-blocking and assumed to succeed once the gateway
// is constructed. Access is single-owner: only the control loop
// goroutine may call these.
type Gateway interface {
	// ReadInterruptFlag returns the proximity sensor's interrupt
	// status register. The first read of each cycle.
	ReadInterruptFlag() int
	// ReadColour returns the latest RGB sample from the colour sensor.
	ReadColour() colour.RGB
	// ReadProximity returns the raw proximity count.
	ReadProximity() int
	// ReadAmbientLight returns the raw ambient light level.
	ReadAmbientLight() int
}
