package domain

// Hint describes the next forced move a deduction sweep would make.
type Hint struct {
	Cell   int    `json:"cell"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Value  uint8  `json:"value"`
	Reason string `json:"reason"`
}

// Puzzle is a persisted Sudoku with metadata.
type Puzzle struct {
	ID        string `json:"id,omitempty"`
	Givens    Grid   `json:"givens"`
	CreatedAt int64  `json:"createdAt,omitempty"`
	// Optional user metadata
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Clues     int    `json:"clues"`
	CreatedAt int64  `json:"createdAt"`
}

// SolveTrace is a recorded solve: the givens, the outcome and the full
// ordered step list.
type SolveTrace struct {
	ID          string `json:"id"`
	Givens      Grid   `json:"givens"`
	Solution    Grid   `json:"solution"`
	Solved      bool   `json:"solved"`
	ErrorCode   string `json:"errorCode,omitempty"`
	Conflicts   []int  `json:"conflicts,omitempty"`
	Steps       []Step `json:"steps"`
	Assignments int    `json:"assignments"`
	Guesses     int    `json:"guesses"`
	Backtracks  int    `json:"backtracks"`
	DurationMs  int64  `json:"durationMs"`
	CreatedAt   int64  `json:"createdAt"`
}

// TraceMeta is a lightweight trace listing entry.
type TraceMeta struct {
	ID        string `json:"id"`
	Solved    bool   `json:"solved"`
	Steps     int    `json:"steps"`
	Guesses   int    `json:"guesses"`
	CreatedAt int64  `json:"createdAt"`
}
