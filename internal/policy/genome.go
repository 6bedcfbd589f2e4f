package policy

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/obelisk/internal/game/core"
)

// Gene is one step of a genome.
type Gene byte

const (
	GeneWall     Gene = 'W'
	GeneRecruit  Gene = 'S'
	GeneBarracks Gene = 'B'
	GeneObelisk  Gene = 'O'
	GeneAttack   Gene = 'A'
	GeneDefend   Gene = 'D'
	GeneSkip     Gene = 'N'
)

// Genes lists every gene in display order.
var Genes = []Gene{GeneWall, GeneRecruit, GeneBarracks, GeneObelisk, GeneAttack, GeneDefend, GeneSkip}

func (g Gene) valid() bool {
	for _, known := range Genes {
		if g == known {
			return true
		}
	}
	return false
}

// action converts a non-attack gene.
func (g Gene) action() core.Action {
	switch g {
	case GeneWall:
		return core.Wall()
	case GeneRecruit:
		return core.Recruit()
	case GeneBarracks:
		return core.Barracks()
	case GeneObelisk:
		return core.Obelisk()
	case GeneDefend:
		return core.Defend()
	default:
		return core.Skip()
	}
}

// Genome is a fixed script of one gene per round. Rounds past its end Skip.
type Genome struct {
	genes []Gene
}

// NewGenome copies genes into a genome.
func NewGenome(genes []Gene) (*Genome, error) {
	for i, g := range genes {
		if !g.valid() {
			return nil, fmt.Errorf("gene %d %q: %w", i, rune(g), ErrInvalidGenome)
		}
	}
	return &Genome{genes: append([]Gene(nil), genes...)}, nil
}

// ParseGenome reads a genome written as "W→S→B", "W,S,B" or "WSB". A trailing
// gene count, as printed by String, is ignored.
func ParseGenome(s string) (*Genome, error) {
	if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	var genes []Gene
	for _, r := range s {
		switch {
		case r == '→' || r == ',' || r == '-' || r == '>' || r == ' ' || r == '\t':
			continue
		case r > 0x7f:
			return nil, fmt.Errorf("unexpected %q: %w", r, ErrInvalidGenome)
		}
		genes = append(genes, Gene(strings.ToUpper(string(r))[0]))
	}
	if len(genes) == 0 {
		return nil, fmt.Errorf("no genes in %q: %w", s, ErrInvalidGenome)
	}
	return NewGenome(genes)
}

// RandomGenome draws n genes uniformly.
func RandomGenome(n int, rng *rand.Rand) *Genome {
	genes := make([]Gene, n)
	for i := range genes {
		genes[i] = Genes[rng.Intn(len(Genes))]
	}
	return &Genome{genes: genes}
}

// Len returns the number of genes.
func (g *Genome) Len() int { return len(g.genes) }

// Gene returns the gene for round i.
func (g *Genome) Gene(i int) Gene { return g.genes[i] }

// ChooseAction plays the gene of the given round. An Attack gene targets a random
// player that can play and is weaker than our soldiers, or Skips when there is none.
// A gene that is not legal in the current state Skips.
func (g *Genome) ChooseAction(players []core.Player, index, round int, _ []core.Action, rng *rand.Rand) core.Action {
	self := players[index]
	if !self.CanPlay() {
		return core.None()
	}
	if round < 0 || round >= len(g.genes) {
		return core.Skip()
	}

	gene := g.genes[round]
	if gene == GeneAttack {
		var targets []int
		for n, p := range core.Others(players, index) {
			if p.CanPlay() && p.Strength() < self.Soldiers {
				targets = append(targets, n)
			}
		}
		if len(targets) == 0 {
			return core.Skip()
		}
		return core.Attack(targets[rng.Intn(len(targets))])
	}

	a := gene.action()
	switch {
	case a.Type == core.ActionWall && self.Walls >= core.MaxWalls,
		a.Type == core.ActionBarracks && self.Barracks >= core.MaxBarracks,
		a.Type == core.ActionObelisk && self.Obelisks >= core.MaxObelisks,
		a.Type == core.ActionDefend && self.Walls == 0:
		return core.Skip()
	}
	return a
}

// String renders the genome as "W→S→B (W: 1, S: 1, B: 1, O: 0, A: 0, D: 0, N: 0)".
func (g *Genome) String() string {
	var sb strings.Builder
	counts := make(map[Gene]int, len(Genes))
	for i, gene := range g.genes {
		if i > 0 {
			sb.WriteString("→")
		}
		sb.WriteByte(byte(gene))
		counts[gene]++
	}

	sb.WriteString(" (")
	for i, gene := range Genes {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%c: %d", gene, counts[gene])
	}
	sb.WriteString(")")
	return sb.String()
}
