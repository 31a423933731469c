package grammar

type Rule struct {
	Number    int    `json:"number"`
	Name      string `json:"name"`
	Text      string `json:"text"`
	Synthetic bool   `json:"synthetic"`
}

type Transition struct {
	Symbol   string `json:"symbol"`
	Terminal bool   `json:"terminal"`
	State    int    `json:"state"`
}

type Conflict struct {
	Kind      string   `json:"kind"`
	State     int      `json:"state"`
	Rules     []int    `json:"rules"`
	Terminals []string `json:"terminals"`
}

type State struct {
	Number int           `json:"number"`
	Kernel []string      `json:"kernel"`
	Items  []string      `json:"items"`
	Shift  []*Transition `json:"shift"`
	GoTo   []*Transition `json:"goto"`
	Reduce *int          `json:"reduce"`
}

// Report is a readable description of a parsing table.
type Report struct {
	Name      string      `json:"name"`
	Rules     []*Rule     `json:"rules"`
	States    []*State    `json:"states"`
	Conflicts []*Conflict `json:"conflicts"`
}
