package scoring

import (
	"log/slog"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/domain"
)

// ApplyFeatures merges the catalog deltas for every selected feature.
// Unknown feature ids are logged and skipped, never fatal: a stale client
// feature list must not sink the whole request. The ledger's feature-stage
// budget bounds the combined contribution per candidate.
func ApplyFeatures(state *domain.ScoreState, selected []domain.FeatureID, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	for _, id := range selected {
		feature, ok := domain.FeatureByID(id)
		if !ok {
			logger.Warn("skipping unknown selected feature", "feature", id)
			continue
		}
		// Catalog order keeps budget clamping deterministic.
		for _, cid := range domain.CandidateIDs() {
			if boost, ok := feature.Boosts[cid]; ok {
				state.Apply(domain.StageFeatures, cid, boost, "selected: "+feature.Title)
			}
			if penalty, ok := feature.Penalties[cid]; ok {
				state.Apply(domain.StageFeatures, cid, -penalty, "lacks fit: "+feature.Title)
			}
		}
	}
}
