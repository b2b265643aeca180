package main

import "fmt"

const (
	// SurfaceSize is the side of the square drawing surface, in pixels.
	SurfaceSize = 280
	// BitmapSize is the side of the bitmap sent to the classifier.
	BitmapSize = 28
)

// AlphaGrid holds per-pixel opacity samples (0-255), indexed [y][x].
type AlphaGrid [][]uint8

// BitGrid holds binary samples (0 or 1), indexed [row][col].
// Cells are ints so the grid encodes as a nested JSON array of integers.
type BitGrid [][]int

// NewAlphaGrid returns a zeroed grid of the given dimensions.
func NewAlphaGrid(rows, cols int) AlphaGrid {
	g := make(AlphaGrid, rows)
	for i := range g {
		g[i] = make([]uint8, cols)
	}
	return g
}

// NewBitGrid returns a zeroed grid of the given dimensions.
func NewBitGrid(rows, cols int) BitGrid {
	g := make(BitGrid, rows)
	for i := range g {
		g[i] = make([]int, cols)
	}
	return g
}

// checkDims reports an error unless every row of a grid has the expected length.
func checkDims(name string, rows int, rowLen func(int) int, wantRows, wantCols int) error {
	if rows != wantRows {
		return fmt.Errorf("%s: got %d rows, want %d", name, rows, wantRows)
	}
	for i := range rows {
		if n := rowLen(i); n != wantCols {
			return fmt.Errorf("%s: row %d has %d columns, want %d", name, i, n, wantCols)
		}
	}
	return nil
}

// CheckAlphaGrid reports whether g is a well-formed SurfaceSize x SurfaceSize grid.
func CheckAlphaGrid(g AlphaGrid) error {
	return checkDims("alpha grid", len(g), func(i int) int { return len(g[i]) }, SurfaceSize, SurfaceSize)
}

// CheckBitGrid reports whether g has the given dimensions and only 0/1 cells.
func CheckBitGrid(g BitGrid, rows, cols int) error {
	if err := checkDims("bit grid", len(g), func(i int) int { return len(g[i]) }, rows, cols); err != nil {
		return err
	}
	for y, row := range g {
		for x, v := range row {
			if v != 0 && v != 1 {
				return fmt.Errorf("bit grid: cell (%d,%d) = %d, want 0 or 1", y, x, v)
			}
		}
	}
	return nil
}

// InkCount returns the number of cells set to 1.
func InkCount(g BitGrid) int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			n += v
		}
	}
	return n
}
