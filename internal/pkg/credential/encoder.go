// Package credential serializes a gate pass approval into a scannable
// QR credential. The payload is deterministic in its inputs; the timestamp
// is set to encoding time, so each approval mints a distinct image.
package credential

import (
	"encoding/json"
	"fmt"
	"image/color"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// Payload is the structured content embedded in the credential. Field names
// match what the gate scanner expects to decode.
type Payload struct {
	PassID     string    `json:"passId"`
	StudentID  string    `json:"studentId"`
	Timestamp  time.Time `json:"timestamp"`
	Department string    `json:"department"`
}

// Encoder rasterizes credential payloads with a fixed visual configuration.
type Encoder struct {
	size       int
	foreground color.Color
	background color.Color
}

// Default visual configuration: 300px square, campus blue on white.
var (
	defaultForeground = color.RGBA{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF}
	defaultBackground = color.White
)

const defaultSize = 300

// NewEncoder creates an encoder with the standard gate credential palette.
func NewEncoder() *Encoder {
	return &Encoder{
		size:       defaultSize,
		foreground: defaultForeground,
		background: defaultBackground,
	}
}

// Encode serializes the payload as JSON and rasterizes it into a PNG QR
// image. The module border stays at the library default so hand scanners
// keep their quiet zone.
func (e *Encoder) Encode(payload Payload) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize credential payload: %w", err)
	}

	qr, err := qrcode.New(string(data), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}

	qr.ForegroundColor = e.foreground
	qr.BackgroundColor = e.background

	png, err := qr.PNG(e.size)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize QR code: %w", err)
	}

	return png, nil
}
