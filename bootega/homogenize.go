// SPDX-License-Identifier: MIT
// Package: itemnet/bootega
//
// homogenize.go — mapping replicate labels onto empirical labels.

package bootega

// Homogenize relabels a replicate partition so that its communities carry
// the empirical labels they overlap most.
//
// Matching is greedy and one-to-one: the (replicate, empirical) pair with the
// largest overlap is fixed first; ties go to the smaller replicate label,
// then the smaller empirical label. Replicate communities left unmatched
// receive labels k+1, k+2, … (k = number of empirical labels) in ascending
// order of their replicate label.
//
// Both inputs hold 1-based labels for the same items.
//
// Complexity: O(n + kr·ke·min(kr,ke)).
func Homogenize(replicate, empirical []int) []int {
	kr, ke := maxLabel(replicate), maxLabel(empirical)
	overlap := make([][]int, kr+1)
	for i := range overlap {
		overlap[i] = make([]int, ke+1)
	}
	for j := range replicate {
		overlap[replicate[j]][empirical[j]]++
	}

	mapTo := make([]int, kr+1)
	usedE := make([]bool, ke+1)
	for {
		br, be, best := 0, 0, 0
		for r := 1; r <= kr; r++ {
			if mapTo[r] != 0 {
				continue
			}
			for e := 1; e <= ke; e++ {
				if usedE[e] {
					continue
				}
				if overlap[r][e] > best {
					br, be, best = r, e, overlap[r][e]
				}
			}
		}
		if best == 0 {
			break
		}
		mapTo[br] = be
		usedE[be] = true
	}

	next := ke + 1
	for r := 1; r <= kr; r++ {
		if mapTo[r] == 0 {
			mapTo[r] = next
			next++
		}
	}

	out := make([]int, len(replicate))
	for j, r := range replicate {
		out[j] = mapTo[r]
	}
	return out
}

func maxLabel(labels []int) int {
	k := 0
	for _, l := range labels {
		if l > k {
			k = l
		}
	}
	return k
}
