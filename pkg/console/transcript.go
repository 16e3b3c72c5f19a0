package console

import (
	"bytes"
	"io"
	"sync"
)

// NewTranscript creates a Transcript which keeps the last maxLines lines.
// Lines longer than maxLineLength are split.
func NewTranscript(maxLines, maxLineLength int) *Transcript {
	return &Transcript{
		lines:         make([][]byte, maxLines),
		maxLineLength: maxLineLength,
	}
}

// Transcript records everything written to it line by line. Once full the
// oldest lines are dropped.
type Transcript struct {
	lines         [][]byte
	offset        int
	length        int
	pending       []byte
	maxLineLength int

	mutex sync.RWMutex
}

func (this *Transcript) Write(p []byte) (n int, err error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	n = len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			this.pending = append(this.pending, p...)
			p = nil
		} else {
			this.pending = append(this.pending, p[:i]...)
			p = p[i+1:]
		}

		for this.maxLineLength > 0 && len(this.pending) > this.maxLineLength {
			this.add(this.pending[:this.maxLineLength])
			this.pending = this.pending[this.maxLineLength:]
		}
		if i >= 0 {
			this.add(this.pending)
			this.pending = this.pending[:0]
		}
	}

	return n, nil
}

func (this *Transcript) add(line []byte) {
	capacity := len(this.lines)
	if capacity == 0 {
		return
	}

	i := (this.offset + this.length) % capacity
	this.lines[i] = bytes.Clone(line)
	if this.length < capacity {
		this.length++
	} else {
		this.offset = (this.offset + 1) % capacity
	}
}

// Len returns the number of complete lines.
func (this *Transcript) Len() int {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	return this.length
}

// Lines returns all complete lines, the oldest first.
func (this *Transcript) Lines() []string {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	result := make([]string, this.length)
	for i := range result {
		result[i] = string(this.lines[(this.offset+i)%len(this.lines)])
	}
	return result
}

func (this *Transcript) WriteTo(w io.Writer) (n int64, err error) {
	for _, line := range this.Lines() {
		wn, wErr := io.WriteString(w, line+"\n")
		n += int64(wn)
		if wErr != nil {
			return n, wErr
		}
	}
	return n, nil
}
