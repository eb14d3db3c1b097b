package align

// Default edit costs. A match is always free; substitution is atomic at
// cost 1 rather than a delete+insert pair, so a one-character mismatch
// against a literal pattern costs exactly the classical Levenshtein unit.
// Setting Substitute to DefaultDeleteCost+DefaultInsertCost recovers the
// composed model.
const (
	MatchCost             = 0
	DefaultSubstituteCost = 1
	DefaultDeleteCost     = 1
	DefaultInsertCost     = 1
)

// Costs configures the edit-cost model used by the aligner.
type Costs struct {
	// Substitute is the cost of aligning one pattern character with one
	// text character the pattern's predicate rejects.
	Substitute int

	// Delete is the cost of a pattern character with no text counterpart.
	Delete int

	// Insert is the cost of a text character the pattern does not account
	// for.
	Insert int
}

// DefaultCosts returns the default cost model: unit cost for every
// non-match operation, with atomic substitution.
func DefaultCosts() Costs {
	return Costs{
		Substitute: DefaultSubstituteCost,
		Delete:     DefaultDeleteCost,
		Insert:     DefaultInsertCost,
	}
}

// Validate checks that the cost model is usable by the shortest-path
// search: every operation cost must be positive (a free insert or delete
// would make "best alignment" meaningless) and substitution must not be
// cheaper than free.
func (c Costs) Validate() error {
	if c.Substitute < 1 {
		return &CostError{Field: "Substitute", Message: "must be at least 1"}
	}
	if c.Delete < 1 {
		return &CostError{Field: "Delete", Message: "must be at least 1"}
	}
	if c.Insert < 1 {
		return &CostError{Field: "Insert", Message: "must be at least 1"}
	}
	return nil
}

// CostError represents an invalid cost-model parameter.
type CostError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *CostError) Error() string {
	return "align: invalid cost model: " + e.Field + ": " + e.Message
}
