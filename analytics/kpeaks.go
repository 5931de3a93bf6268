package analytics

import (
	"sort"
	"strconv"

	"github.com/katalvlaran/dachshund/row"
)

// MountainAssignment is one node's k-peak result: its peak number (the
// coreness shell it was peeled from), the mountain it was assigned to, and
// — for the output row — its coreness in the ORIGINAL, unpeeled graph.
type MountainAssignment struct {
	NodeID       string
	PeakNumber   int
	MountainID   int
	FullCoreness int
}

// KPeaks assigns every node to a "mountain": repeatedly peeling off the
// current maximum-coreness shell of the shrinking induced subgraph,
// recording each node's largest single-step coreness drop (or its
// degeneracy at removal, whichever is larger) as the signal that
// distinguishes one mountain from the next. Grounded on k_peaks.rs's
// `get_k_peak_mountain_assignment`.
func KPeaks(rows []row.SimpleEdgeRow) ([]MountainAssignment, error) {
	adj, err := adjacency(rows)
	if err != nil {
		return nil, err
	}
	fullCoreness := coreness(adj)

	type assignment struct {
		maxDrop    int
		mountainID int
	}
	assignments := make(map[string]*assignment, len(adj))
	hNodes := make(map[string]bool, len(adj))
	for id := range adj {
		assignments[id] = &assignment{maxDrop: 0, mountainID: 0}
		hNodes[id] = true
	}

	currCore := make(map[string]int, len(fullCoreness))
	for id, c := range fullCoreness {
		currCore[id] = c
	}

	peakNumbers := make(map[string]int, len(adj))
	mountainID := 0

	for len(hNodes) > 0 {
		kValue := 0
		for id := range hNodes {
			if currCore[id] > kValue {
				kValue = currCore[id]
			}
		}

		var degeneracyNodes []string
		for id := range hNodes {
			if currCore[id] == kValue {
				degeneracyNodes = append(degeneracyNodes, id)
			}
		}
		sortNodeKeys(degeneracyNodes)

		for _, id := range degeneracyNodes {
			delete(hNodes, id)
			if _, ok := peakNumbers[id]; !ok {
				peakNumbers[id] = currCore[id]
			}
			if currCore[id] > assignments[id].maxDrop {
				assignments[id] = &assignment{maxDrop: currCore[id], mountainID: mountainID}
			}
		}

		newCore := inducedCoreness(adj, hNodes)
		for id, c := range newCore {
			a := assignments[id]
			if drop := currCore[id] - c; drop > a.maxDrop {
				assignments[id] = &assignment{maxDrop: drop, mountainID: mountainID}
			}
		}

		mountainID++
		currCore = newCore
	}

	out := make([]MountainAssignment, 0, len(adj))
	for id, c := range fullCoreness {
		a := assignments[id]
		out = append(out, MountainAssignment{
			NodeID:       id,
			PeakNumber:   peakNumbers[id],
			MountainID:   a.mountainID,
			FullCoreness: c,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MountainID != out[j].MountainID {
			return out[i].MountainID < out[j].MountainID
		}
		ki, _ := strconv.ParseInt(out[i].NodeID, 10, 64)
		kj, _ := strconv.ParseInt(out[j].NodeID, 10, 64)
		return ki < kj
	})
	return out, nil
}

// inducedCoreness computes coreness over the subgraph induced by the
// still-live node set, assigning coreness 0 to any live node left isolated
// by the induction — grounded on k_peaks.rs's `get_new_coreness_values`.
func inducedCoreness(adj map[string]map[string]struct{}, live map[string]bool) map[string]int {
	induced := make(map[string]map[string]struct{}, len(live))
	for id := range live {
		induced[id] = make(map[string]struct{})
	}
	for id := range live {
		for nb := range adj[id] {
			if live[nb] {
				induced[id][nb] = struct{}{}
			}
		}
	}
	result := coreness(induced)
	for id := range live {
		if _, ok := result[id]; !ok {
			result[id] = 0
		}
	}
	return result
}

// KPeaksOutputRows renders KPeaks results as the
// "graph_key\tnode_id\tcoreness\tk_peak\tmountain_id" lines the external
// interface specifies, where coreness is each node's coreness in the full,
// unpeeled graph — grounded on kpeak_transformer.rs's process_batch.
func KPeaksOutputRows(graphKey string, assignments []MountainAssignment) []string {
	out := make([]string, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, graphKey+"\t"+a.NodeID+"\t"+
			strconv.Itoa(a.FullCoreness)+"\t"+
			strconv.Itoa(a.PeakNumber)+"\t"+
			strconv.Itoa(a.MountainID))
	}
	return out
}
