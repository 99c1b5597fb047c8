// Package kasa renders TP-Link Kasa smart-bulb command payloads.
// It performs no I/O; encrypting and delivering the payload is the
// transport's job.
package kasa

import "fmt"

// Command payload templates for the bulb's lighting service.
const (
	powerTemplate      = `{"smartlife.iot.smartbulb.lightingservice":{"transition_light_state":{"on_off":%d}}}`
	brightnessTemplate = `{"smartlife.iot.smartbulb.lightingservice":{"transition_light_state":{"brightness":%d}}}`
	colourTemplate     = `{"smartlife.iot.smartbulb.lightingservice":{"transition_light_state":{"hue":%d,"saturation":%d}}}`
)

// Power renders an on/off command. The flag is expressed as 0/1 on
// the wire.
func Power(on bool) string {
	flag := 0
	if on {
		flag = 1
	}
	return fmt.Sprintf(powerTemplate, flag)
}

// Brightness renders a brightness command for a percentage in [0,100].
func Brightness(percent int) string {
	return fmt.Sprintf(brightnessTemplate, percent)
}

// Colour renders a hue/saturation command. Hue is in degrees [0,359],
// saturation in percent.
func Colour(hue, saturation int) string {
	return fmt.Sprintf(colourTemplate, hue, saturation)
}
