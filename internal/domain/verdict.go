package domain

// Verdict is the grade for one habit quiz answer.
type Verdict struct {
	Correct bool
	Message string
}
