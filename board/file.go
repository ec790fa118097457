package board

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode reads a YAML board and validates it.
func Decode(r io.Reader) (*Board, error) {
	var b Board
	if err := yaml.NewDecoder(r).Decode(&b); err != nil && err != io.EOF {
		return nil, fmt.Errorf("error parsing board: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid board: %w", err)
	}
	return &b, nil
}

// Encode writes the board as YAML.
func (b *Board) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("error encoding board: %w", err)
	}
	return enc.Close()
}

// Load reads a board from a YAML file.
func Load(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening board file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes the board to a YAML file.
func (b *Board) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating board file: %w", err)
	}
	if err := b.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
