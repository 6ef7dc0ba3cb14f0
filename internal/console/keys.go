// Package console reads single-key commands from the terminal.
package console

import (
	"fmt"

	"github.com/eiannone/keyboard"
)

// Keys reads one keypress at a time with no echo and no enter required.
type Keys struct{}

// Open puts the terminal into single-key mode.
func Open() (*Keys, error) {
	if err := keyboard.Open(); err != nil {
		return nil, fmt.Errorf("opening keyboard: %w", err)
	}
	return &Keys{}, nil
}

// Close restores the terminal.
func (k *Keys) Close() {
	_ = keyboard.Close()
}

// ReadKey blocks for one keypress. An interrupt aborts the run; nothing is
// persisted in that case.
func (k *Keys) ReadKey() (rune, error) {
	ch, key, err := keyboard.GetKey()
	if err != nil {
		return 0, err
	}
	if key == keyboard.KeyCtrlC || key == keyboard.KeyEsc {
		return 0, fmt.Errorf("interrupted")
	}
	return ch, nil
}
