// Package signal provides the pull-based sample source consumed by the
// classifier. A Signal yields raw sample windows on demand: the classifier
// calls back into it with an offset and a window length, and the signal
// copies samples into the supplied buffer.
package signal

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBuffer is returned when constructing a signal from an empty
	// buffer.
	ErrEmptyBuffer = errors.New("buffer must not be empty")
)

// ErrOutOfRange indicates a window request outside the signal's bounds.
type ErrOutOfRange struct {
	Offset int
	Length int
	Total  int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("window [%d, %d) out of range for signal of length %d",
		e.Offset, e.Offset+e.Length, e.Total)
}

// Signal yields raw sample windows to the classifier on demand.
//
// Implementations must tolerate repeated and overlapping window requests;
// the classifier may re-read any region while sliding its window.
type Signal interface {
	// TotalLength returns the number of samples the signal holds.
	TotalLength() int

	// GetData copies length samples starting at offset into out. out must
	// have room for length samples.
	GetData(offset, length int, out []float32) error
}

// Func adapts a window-read function into a Signal.
type Func struct {
	Length int
	Read   func(offset, length int, out []float32) error
}

// TotalLength implements Signal.
func (f *Func) TotalLength() int { return f.Length }

// GetData implements Signal.
func (f *Func) GetData(offset, length int, out []float32) error {
	return f.Read(offset, length, out)
}

// Buffer is a Signal backed by an in-memory float buffer.
type Buffer struct {
	data []float32
}

// FromBuffer constructs a signal from an in-memory float buffer of known
// length. The signal aliases data; the caller must keep the buffer alive
// and unmodified for as long as the signal is in use.
func FromBuffer(data []float32) (*Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyBuffer
	}
	return &Buffer{data: data}, nil
}

// TotalLength implements Signal.
func (b *Buffer) TotalLength() int { return len(b.data) }

// GetData implements Signal.
func (b *Buffer) GetData(offset, length int, out []float32) error {
	if offset < 0 || length < 0 || offset+length > len(b.data) {
		return &ErrOutOfRange{Offset: offset, Length: length, Total: len(b.data)}
	}
	copy(out, b.data[offset:offset+length])
	return nil
}

// ReadAll copies the signal's full contents into a new slice. It is a
// convenience for engines and tests that consume signals whole.
func ReadAll(s Signal) ([]float32, error) {
	n := s.TotalLength()
	out := make([]float32, n)
	if n == 0 {
		return out, nil
	}
	if err := s.GetData(0, n, out); err != nil {
		return nil, err
	}
	return out, nil
}
