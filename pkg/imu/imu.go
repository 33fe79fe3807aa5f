// Package imu reads orientation quaternions from a line-oriented stream,
// typically a serial-attached IMU, and converts them into the view
// rotation angles the renderer understands. The wire format is one
// `i,j,k,real` CSV line per sample.
package imu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"go.bug.st/serial"
)

// Quaternion is an orientation sample with i, j, k, real components.
type Quaternion struct {
	I    float64 `json:"i"`
	J    float64 `json:"j"`
	K    float64 `json:"k"`
	Real float64 `json:"real"`
}

// Parse parses one wire line in the format "i,j,k,real".
func Parse(line string) (Quaternion, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 4 {
		return Quaternion{}, fmt.Errorf("expected 4 values, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Quaternion{}, fmt.Errorf("value %d: %v", i+1, err)
		}
		vals[i] = v
	}
	return Quaternion{I: vals[0], J: vals[1], K: vals[2], Real: vals[3]}, nil
}

// ViewAngles extracts the rotation about the X axis (roll) and the Y
// axis (pitch) from the quaternion, in radians. The yaw component has no
// effect on the two-angle view and is discarded.
func (q Quaternion) ViewAngles() (rotX, rotY float64) {
	rotX = math.Atan2(2*(q.Real*q.I+q.J*q.K), 1-2*(q.I*q.I+q.J*q.J))

	sinp := 2 * (q.Real*q.J - q.K*q.I)
	sinp = math.Max(-1, math.Min(1, sinp))
	rotY = math.Asin(sinp)
	return rotX, rotY
}

// Stream reads quaternion lines from r and sends each valid sample on
// out. Malformed lines are logged and skipped, matching the tolerance a
// noisy serial link needs. Stream returns when r is exhausted or fails;
// it never closes out.
func Stream(r io.Reader, out chan<- Quaternion) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		q, err := Parse(line)
		if err != nil {
			log.Printf("imu: skipping line %q: %v", line, err)
			continue
		}
		out <- q
	}
	return sc.Err()
}

// Open opens the named serial port at the given baud rate for streaming.
func Open(port string, baud int) (io.ReadCloser, error) {
	p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("imu: open %s: %w", port, err)
	}
	return p, nil
}
