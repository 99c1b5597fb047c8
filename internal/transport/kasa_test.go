package transport

import (
	"encoding/binary"
	"testing"
)

func TestEncryptFraming(t *testing.T) {
	payload := `{"smartlife.iot.smartbulb.lightingservice":{"transition_light_state":{"on_off":1}}}`
	buf := encrypt(payload)

	if len(buf) != 4+len(payload) {
		t.Fatalf("encrypt() length = %d, want %d", len(buf), 4+len(payload))
	}
	if got := binary.BigEndian.Uint32(buf); got != uint32(len(payload)) {
		t.Errorf("length header = %d, want %d", got, len(payload))
	}

	// First byte of the ciphertext is the seed XORed with the first
	// plaintext byte.
	if want := byte(initialKey) ^ payload[0]; buf[4] != want {
		t.Errorf("first cipher byte = %#x, want %#x", buf[4], want)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "power_on", payload: `{"system":{"set_relay_state":{"state":1}}}`},
		{name: "empty", payload: ""},
		{name: "single_byte", payload: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := encrypt(tt.payload)
			if got := decrypt(buf[4:]); got != tt.payload {
				t.Errorf("decrypt(encrypt(%q)) = %q", tt.payload, got)
			}
		})
	}
}
