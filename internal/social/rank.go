package social

import (
	"math"
	"sort"

	"github.com/your-org/vibecheck/internal/models"
)

const peerListSize = 5

// Weights shared by both peer metrics: tag overlap dominates, score closeness
// is the secondary component.
const (
	tagWeight   = 0.7
	scoreWeight = 0.3
)

// Jaccard returns |A∩B| / |A∪B| over two tag lists (treated as sets).
// Two empty sets score 0.0: no shared interest signal, not perfect similarity.
func Jaccard(a, b []string) float64 {
	sa := make(map[string]struct{}, len(a))
	for _, t := range a {
		sa[t] = struct{}{}
	}
	sb := make(map[string]struct{}, len(b))
	for _, t := range b {
		sb[t] = struct{}{}
	}
	if len(sa) == 0 && len(sb) == 0 {
		return 0.0
	}
	inter := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}

// similarity scores how alike a candidate's vibe is to the requester's: tag
// overlap plus score closeness scaled across the full 0-100 range.
func similarity(myScore int, myTags []string, u models.PeerMatch) float64 {
	gap := math.Abs(float64(myScore - u.Score))
	return tagWeight*Jaccard(myTags, u.Tags) + scoreWeight*math.Max(0, 1-gap/100)
}

// complementarity rewards candidates with different tags but a close score
// (tight ±20 band); without the band "complementary" would degenerate into
// "just different quality".
func complementarity(myScore int, myTags []string, u models.PeerMatch) float64 {
	gap := math.Abs(float64(myScore - u.Score))
	return tagWeight*(1-Jaccard(myTags, u.Tags)) + scoreWeight*math.Max(0, 1-gap/20)
}

// RankPeers returns the top-5 similar and top-5 complementary candidates,
// each list sorted descending by its metric. Ties keep candidate input order.
// Inputs are not mutated.
func RankPeers(myScore int, myTags []string, candidates []models.PeerMatch) (similar, complementary []models.PeerMatch) {
	similar = topBy(candidates, func(u models.PeerMatch) float64 {
		return similarity(myScore, myTags, u)
	})
	complementary = topBy(candidates, func(u models.PeerMatch) float64 {
		return complementarity(myScore, myTags, u)
	})
	return similar, complementary
}

func topBy(candidates []models.PeerMatch, metric func(models.PeerMatch) float64) []models.PeerMatch {
	ranked := make([]models.PeerMatch, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return metric(ranked[i]) > metric(ranked[j])
	})
	if len(ranked) > peerListSize {
		ranked = ranked[:peerListSize]
	}
	return ranked
}
