package metrics

// Outcome classifies how a session ended.
type Outcome int

const (
	Completed Outcome = iota // result delivered
	Rejected                 // handshake refused
	Failed                   // anything else
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Rejected:
		return "rejected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
