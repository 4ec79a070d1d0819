//go:build js && wasm

package canvas

import (
	"bytes"
	"syscall/js"
)

// Console is a diagnostic sink that buffers bytes and writes complete lines
// to console.log on Flush.
type Console struct {
	buf bytes.Buffer
}

// NewConsole creates an empty console sink.
func NewConsole() *Console {
	return &Console{}
}

func (c *Console) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

// Flush logs every complete line. A trailing partial line stays buffered.
func (c *Console) Flush() error {
	console := js.Global().Get("console")
	for {
		line, err := c.buf.ReadString('\n')
		if err != nil {
			// no newline yet, put the partial line back
			c.buf.WriteString(line)
			return nil
		}
		console.Call("log", line[:len(line)-1])
	}
}
