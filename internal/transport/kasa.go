package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
)

const kasaPort = 9999

// initialKey is the seed for the Kasa autokey XOR cipher.
const initialKey = 0xab

// Kasa sends commands to a TP-Link Kasa bulb over its TCP port using
// the autokey XOR obfuscation with a 4-byte big-endian length header.
type Kasa struct {
	host    string
	timeout time.Duration
}

// NewKasa creates a Kasa transport for the given bulb host.
func NewKasa(host string, timeout time.Duration) (*Kasa, error) {
	if host == "" {
		return nil, errors.New("kasa transport requires a bulb host")
	}
	return &Kasa{host: host, timeout: timeout}, nil
}

// Send encrypts the payload and delivers it to the bulb. A fresh
// connection is used per command; the bulb closes idle connections
// aggressively.
func (k *Kasa) Send(payload string) error {
	conn, err := net.DialTimeout("tcp", k.addr(), k.timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to bulb: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(k.timeout)); err != nil {
		return err
	}

	if _, err := conn.Write(encrypt(payload)); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}

	// The bulb echoes a status object back; drain it so the socket
	// closes cleanly, but the content does not affect the controller.
	reply := make([]byte, 1024)
	if _, err := conn.Read(reply); err != nil {
		log.Debug().Err(err).Msg("No reply from bulb")
	}

	return nil
}

// Ready reports whether the bulb accepts TCP connections.
func (k *Kasa) Ready() bool {
	conn, err := net.DialTimeout("tcp", k.addr(), k.timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Close is a no-op; connections are per-command.
func (k *Kasa) Close() error {
	return nil
}

func (k *Kasa) addr() string {
	return fmt.Sprintf("%s:%d", k.host, kasaPort)
}

// encrypt applies the Kasa autokey XOR cipher and prefixes the
// 4-byte big-endian length header.
func encrypt(payload string) []byte {
	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))

	key := byte(initialKey)
	for i := 0; i < len(payload); i++ {
		key ^= payload[i]
		buf[4+i] = key
	}
	return buf
}

// decrypt reverses the autokey cipher on a length-stripped message.
// Kept alongside encrypt so the framing stays in one place.
func decrypt(data []byte) string {
	out := make([]byte, len(data))
	key := byte(initialKey)
	for i, b := range data {
		out[i] = key ^ b
		key = b
	}
	return string(out)
}
