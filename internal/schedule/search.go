package schedule

import (
	"strings"

	"confsched/internal/models"
)

// Search returns the proposals whose abstract contains term, preserving the
// input collection's order. Matching is a case-sensitive substring test
// against the abstract only; titles and presenter names do not participate.
// The empty term matches every proposal.
func Search(term string, proposals []models.Proposal) []models.Proposal {
	out := make([]models.Proposal, 0, len(proposals))
	for _, p := range proposals {
		if strings.Contains(p.Abstract, term) {
			out = append(out, p)
		}
	}
	return out
}
