package pipeline

import (
	"sort"

	"github.com/riskline/riskline/internal/model"
)

// Partition sorts scored records by fraud probability descending and splits
// out the suspicious subset. The sort is stable: records with equal
// probabilities keep their original batch order, so identical inputs always
// produce identical output files regardless of how the batch was processed
// internally.
func Partition(scored []model.ScoredRecord, threshold float64) model.ResultSet {
	all := append([]model.ScoredRecord(nil), scored...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Probability > all[j].Probability
	})

	suspicious := make([]model.ScoredRecord, 0)
	for _, rec := range all {
		if rec.Probability >= threshold {
			suspicious = append(suspicious, rec)
		}
	}

	return model.ResultSet{
		All:        all,
		Suspicious: suspicious,
	}
}
