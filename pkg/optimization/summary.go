// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a payoff-target search for a single loan.
type Summary struct {
	TargetName    string   `json:"targetName"`
	TargetMonths  int      `json:"targetMonths"`
	Original      float64  `json:"original"`
	Value         float64  `json:"value"`
	PayoffMonths  int      `json:"payoffMonths"`
	InterestSaved float64  `json:"interestSaved"`
	Iterations    int      `json:"iterations"`
	Converged     bool     `json:"converged"`
	Notes         []string `json:"notes,omitempty"`
}
