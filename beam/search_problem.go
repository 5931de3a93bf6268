package beam

// SearchProblem bundles the tunable parameters of one beam search run.
type SearchProblem struct {
	BeamSize               int
	Alpha                  float32
	GlobalThresh           *float32
	LocalThresh            *float32
	NumToSearch            int
	NumEpochs              int
	MaxRepeatedPriorScores int
	Verbose                bool
}
