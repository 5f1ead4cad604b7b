package tetris

import "math/rand/v2"

// Picker chooses the kind of each spawned piece.
type Picker interface {
	Next() Kind
}

// RandomPicker draws kinds uniformly at random.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker creates a picker with a deterministic PCG stream for seed.
func NewRandomPicker(seed uint64) *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *RandomPicker) Next() Kind {
	return Kinds[p.rng.IntN(len(Kinds))]
}

// SequencePicker returns the given kinds in order, starting over at the end.
type SequencePicker struct {
	kinds []Kind
	next  int
}

func NewSequencePicker(kinds ...Kind) *SequencePicker {
	return &SequencePicker{kinds: append([]Kind(nil), kinds...)}
}

func (p *SequencePicker) Next() Kind {
	if len(p.kinds) == 0 {
		return Kinds[0]
	}
	k := p.kinds[p.next]
	p.next = (p.next + 1) % len(p.kinds)
	return k
}
