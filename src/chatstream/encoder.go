package chatstream

import (
	"bufio"
	"encoding/json"
	"io"
)

// Flusher is the subset of http.Flusher the encoder needs. A nil
// flusher is fine for non-HTTP writers.
type Flusher interface {
	Flush()
}

// Encoder writes events as newline-delimited JSON and flushes after
// every event so clients see deltas as they happen.
type Encoder struct {
	w       io.Writer
	enc     *json.Encoder
	flusher Flusher
}

// NewEncoder creates an encoder over w. If w implements Flusher (as
// http.ResponseWriter streaming does) each event is flushed through.
func NewEncoder(w io.Writer) *Encoder {
	e := &Encoder{w: w, enc: json.NewEncoder(w)}
	if f, ok := w.(Flusher); ok {
		e.flusher = f
	}
	return e
}

// Encode writes one event followed by a newline.
func (e *Encoder) Encode(event Event) error {
	// json.Encoder terminates each value with a newline.
	if err := e.enc.Encode(event); err != nil {
		return err
	}
	if e.flusher != nil {
		e.flusher.Flush()
	}
	return nil
}

// Decoder reads newline-delimited events.
type Decoder struct {
	scanner *bufio.Scanner
}

// NewDecoder creates a decoder over r.
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Decoder{scanner: scanner}
}

// Decode reads the next event, or io.EOF when the stream ends. Blank
// lines are skipped.
func (d *Decoder) Decode() (Event, error) {
	for d.scanner.Scan() {
		line := d.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return Event{}, err
		}
		return event, nil
	}
	if err := d.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}
