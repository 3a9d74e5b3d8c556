// Package clipboard abstracts the system clipboard behind a small writer
// interface so wiki operations can report copy failures without depending on
// a display server being present.
package clipboard

import (
	atotto "github.com/atotto/clipboard"
)

// Writer delivers text to a clipboard sink.
type Writer interface {
	WriteText(text string) error
}

// System writes to the OS clipboard.
type System struct{}

func (System) WriteText(text string) error {
	return atotto.WriteAll(text)
}

// Memory is an in-process clipboard for tests and headless environments.
type Memory struct {
	writes []string
	// Err, when set, is returned from every write.
	Err error
}

func (m *Memory) WriteText(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.writes = append(m.writes, text)
	return nil
}

// Last returns the most recent write, or "" if nothing was written.
func (m *Memory) Last() string {
	if len(m.writes) == 0 {
		return ""
	}
	return m.writes[len(m.writes)-1]
}

// Writes returns all writes in order.
func (m *Memory) Writes() []string {
	return m.writes
}
