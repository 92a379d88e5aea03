package solver

// Progress reporting. The engine calls the injected ProgressFunc on every
// subproblem entry and completion; any rate limiting belongs to the
// receiver, never to the engine.

type EventKind int

const (
	// EventEnter is emitted when the engine starts working on a candidate
	// set, before any guess of that set has been evaluated.
	EventEnter EventKind = iota
	// EventDone is emitted when a candidate set has been fully evaluated;
	// Best holds the winning guess and its exact expected value.
	EventDone
)

// Frame describes one level of the recursion stack: the size of the
// candidate set being searched, and which of its guesses is currently
// being expanded.
type Frame struct {
	Candidates int
	GuessIndex int
	Guess      string
}

type Event struct {
	Kind EventKind
	// Path is the recursion stack leading to this subproblem, outermost
	// frame first. It is safe to retain.
	Path []Frame
	// Candidates is the size of the subproblem's candidate set.
	Candidates int
	// Best is only valid for EventDone.
	Best Evaluation
}

// ProgressFunc may be called concurrently when the solver runs with more
// than one thread.
type ProgressFunc func(Event)

func (s *Solver) emitEnter(path []Frame, nCandidates int) {
	if s.progress == nil {
		return
	}
	s.progress(Event{Kind: EventEnter, Path: clonePath(path), Candidates: nCandidates})
}

func (s *Solver) emitDone(path []Frame, nCandidates int, best Evaluation) {
	if s.progress == nil {
		return
	}
	s.progress(Event{Kind: EventDone, Path: clonePath(path), Candidates: nCandidates, Best: best})
}

func clonePath(path []Frame) []Frame {
	if path == nil {
		return nil
	}
	cloned := make([]Frame, len(path))
	copy(cloned, path)
	return cloned
}
