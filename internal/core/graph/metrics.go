package graph

import (
	"math"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
)

const (
	importanceDamping = 0.85
	importanceTol     = 1e-6
	importanceMaxIter = 100
)

// computeMetrics 在 Build 結尾一次算完所有節點的中心性指標
func computeMetrics(st *graphState) {
	n := len(st.ids)
	if n == 0 {
		return
	}

	betweenness := network.BetweennessWeighted(st.main, path.DijkstraAllPaths(st.main))
	importance := importanceScores(st)

	for name, id := range st.ids {
		degree := 0.0
		if n > 1 {
			degree = float64(st.main.From(id).Len()) / float64(n-1)
		}
		st.centrality[name] = Centrality{
			Degree:      degree,
			Betweenness: betweenness[id],
			Importance:  importance[id],
		}
	}
}

// importanceScores 以帶權 power iteration 計算全域重要度
//
// 每輪把節點分數按邊權重比例散佈給相鄰節點，配合 0.85 阻尼係數，
// 收斂後所有分數總和為 1。孤立節點的分數平均散佈給全體。
func importanceScores(st *graphState) map[int64]float64 {
	n := len(st.ids)
	scores := make(map[int64]float64, n)
	if n == 0 {
		return scores
	}

	strength := make(map[int64]float64, n)
	for id := range st.names {
		total := 0.0
		nodes := st.main.From(id)
		for nodes.Next() {
			w, _ := st.main.Weight(id, nodes.Node().ID())
			total += w
		}
		strength[id] = total
		scores[id] = 1.0 / float64(n)
	}

	base := (1.0 - importanceDamping) / float64(n)
	for iter := 0; iter < importanceMaxIter; iter++ {
		next := make(map[int64]float64, n)
		dangling := 0.0
		for id, score := range scores {
			if strength[id] == 0 {
				dangling += score
				continue
			}
			nodes := st.main.From(id)
			for nodes.Next() {
				bid := nodes.Node().ID()
				w, _ := st.main.Weight(id, bid)
				next[bid] += score * w / strength[id]
			}
		}

		diff := 0.0
		for id := range scores {
			updated := base + importanceDamping*(next[id]+dangling/float64(n))
			diff += math.Abs(updated - scores[id])
			scores[id] = updated
		}
		if diff < importanceTol {
			break
		}
	}
	return scores
}
