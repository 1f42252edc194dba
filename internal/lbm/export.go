package lbm

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
)

// SaveVelocity writes the velocity magnitude of the current lattice, one text
// line per row and one value per column.
func SaveVelocity(w io.Writer, s *Simulation) error {
	return saveField(w, s, func(f *Populations) (float64, error) {
		_, ux, uy, err := Macroscopic(f)
		if err != nil {
			return 0, err
		}
		return math.Sqrt(ux*ux + uy*uy), nil
	})
}

// SavePopulation writes population i of the current lattice in the same
// layout as SaveVelocity.
func SavePopulation(w io.Writer, s *Simulation, i int) error {
	if i < 0 || i >= Q {
		return fmt.Errorf("%w: population index %d", ErrInvalidConfig, i)
	}
	return saveField(w, s, func(f *Populations) (float64, error) {
		return f[i], nil
	})
}

// SaveVelocityFile truncates path and writes the velocity field to it.
func SaveVelocityFile(path string, s *Simulation) error {
	return saveFile(path, func(w io.Writer) error { return SaveVelocity(w, s) })
}

// SavePopulationFile truncates path and writes population i to it.
func SavePopulationFile(path string, s *Simulation, i int) error {
	return saveFile(path, func(w io.Writer) error { return SavePopulation(w, s, i) })
}

func saveField(w io.Writer, s *Simulation, value func(f *Populations) (float64, error)) error {
	bw := bufio.NewWriter(w)
	lat := s.Lattice()
	lx, ly := s.Size()
	for y := 1; y <= ly; y++ {
		for x := 1; x <= lx; x++ {
			v, err := value(&lat.At(x, y).F)
			if err != nil {
				return &StepError{X: x, Y: y, Step: s.step, Err: err}
			}
			if _, err := fmt.Fprintf(bw, "%f ", v); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func saveFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
