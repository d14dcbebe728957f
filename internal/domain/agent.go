package domain

// Agent files reports.
type Agent struct {
	ID       int64
	CallSign string
}

// NewAgent creates a new Agent with the given call sign.
func NewAgent(callSign string) Agent {
	return Agent{
		CallSign: callSign,
	}
}

// IsValid checks if the agent has valid data.
func (a Agent) IsValid() bool {
	return a.CallSign != ""
}

// String returns the call sign for display purposes.
func (a Agent) String() string {
	return a.CallSign
}
