package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/obelisk/internal/config"
)

// FromConfig builds the rollout policy described by cfg. rng is only used to draw
// random genomes when none are configured.
//
//   - uniform: Uniform
//   - genome: the first configured genome, or one random genome of cfg.GenomeLength
//   - mixture: every configured genome, or cfg.PopulationSize random genomes
func FromConfig(cfg config.PolicyConfig, rng *rand.Rand) (Policy, error) {
	switch cfg.Kind {
	case "uniform":
		return Uniform{}, nil
	case "genome":
		if len(cfg.Genomes) > 0 {
			g, err := ParseGenome(cfg.Genomes[0])
			if err != nil {
				return nil, fmt.Errorf("policy.genomes[0]: %w", err)
			}
			return g, nil
		}
		return RandomGenome(cfg.GenomeLength, rng), nil
	case "mixture":
		members := make([]Policy, 0, max(len(cfg.Genomes), cfg.PopulationSize))
		for i, s := range cfg.Genomes {
			g, err := ParseGenome(s)
			if err != nil {
				return nil, fmt.Errorf("policy.genomes[%d]: %w", i, err)
			}
			members = append(members, g)
		}
		if len(members) == 0 {
			for range cfg.PopulationSize {
				members = append(members, RandomGenome(cfg.GenomeLength, rng))
			}
		}
		m, err := NewMixture(members...)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Kind, ErrUnknownPolicy)
	}
}

// Describe returns a one-line description of the policy for reports.
func Describe(p Policy) string {
	switch p := p.(type) {
	case Uniform:
		return "uniform random legal action"
	case *Genome:
		return "genome " + p.String()
	case *Mixture:
		return fmt.Sprintf("random member among %d policies", p.Len())
	default:
		return fmt.Sprintf("%T", p)
	}
}

// LossFromConfig returns the loss function named by cfg.Kind.
func LossFromConfig(cfg config.LossConfig) (Loss, error) {
	switch cfg.Kind {
	case "distance":
		return DistanceLoss{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Kind, ErrUnknownLoss)
	}
}
