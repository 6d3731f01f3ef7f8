package scoring

import "github.com/Brunilda90/judging26-app/models"

// DenseRank assigns ranks in place to entries already sorted by average score
// descending. Tied averages share a rank and the next distinct average
// increments the rank by exactly one, so averages 90,90,80 rank 1,1,2.
func DenseRank(entries []models.LeaderboardEntry) {
	rank := 0
	var prev float64
	for i := range entries {
		if i == 0 || entries[i].AvgScore != prev {
			rank++
			prev = entries[i].AvgScore
		}
		entries[i].Rank = rank
	}
}
