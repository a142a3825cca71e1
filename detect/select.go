/*
DESCRIPTION
  select.go implements the stratified field-selection algorithm: fields
  are split into row-segments, the best-contrast fields are taken from
  each segment up to a per-segment quota, and any remaining budget is
  topped up from the global contrast ranking. Grounded on
  original_source/src/motiondetect.c's selectfields.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detect

import "sort"

// contrastIdx pairs a field index with its measured contrast.
type contrastIdx struct {
	index    int
	contrast float64
}

// selectFields scores every field's contrast, zeroes out those below
// threshold, and returns up to maxFields indices chosen by the
// row-segment-quota-plus-leftover-top-up strategy.
func selectFields(data []byte, ls int, fields []Field, rows int, threshold float64, maxFields int) []int {
	n := len(fields)
	ci := make([]contrastIdx, n)
	for i, f := range fields {
		c := contrast(data, ls, f)
		if c < threshold {
			c = 0
		}
		ci[i] = contrastIdx{index: i, contrast: c}
	}

	numSegments := rows + 1
	segLen := n/numSegments + 1

	// ciSegms is a scratch copy mutated (contrast zeroed) as fields are
	// claimed, so later passes don't reselect them.
	ciSegms := append([]contrastIdx(nil), ci...)

	selected := make([]int, 0, maxFields)
	perSegment := maxFields / numSegments

	for s := 0; s < numSegments; s++ {
		start := segLen * s
		end := segLen * (s + 1)
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		segment := ciSegms[start:end]
		sort.Slice(segment, func(a, b int) bool { return segment[a].contrast > segment[b].contrast })
		for j := 0; j < perSegment && start+j < end; j++ {
			if segment[j].contrast > 0 {
				selected = append(selected, segment[j].index)
				segment[j].contrast = 0
			}
		}
	}

	remaining := maxFields - len(selected)
	if remaining > 0 {
		leftover := append([]contrastIdx(nil), ciSegms...)
		sort.Slice(leftover, func(a, b int) bool { return leftover[a].contrast > leftover[b].contrast })
		for j := 0; j < remaining && j < len(leftover); j++ {
			if leftover[j].contrast > 0 {
				selected = append(selected, leftover[j].index)
			}
		}
	}
	return selected
}
