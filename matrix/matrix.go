package matrix

// Matrix is a two-dimensional mutable array of float64 values. Each method
// enforces bounds checking and returns a sentinel error on misuse.
type Matrix interface {
	// Rows returns the number of rows. Complexity: O(1).
	Rows() int

	// Cols returns the number of columns. Complexity: O(1).
	Cols() int

	// At retrieves the element at (i, j), or ErrOutOfRange. Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns v at (i, j), or ErrOutOfRange. Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep, independent copy. Complexity: O(rows*cols).
	Clone() Matrix
}
