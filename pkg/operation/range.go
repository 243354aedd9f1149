package operation

// applyRange returns the inclusive [start..end] slice of ids. An end of -1
// means through the last note, and an end past the last index is clamped.
// The result is empty when start points past the input.
func applyRange(ids []int64, start, end int) []int64 {
	if len(ids) == 0 {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if end == -1 || end > len(ids)-1 {
		end = len(ids) - 1
	}
	if start > end {
		return nil
	}
	return ids[start : end+1]
}

// chunk splits ids into contiguous pages of at most size elements,
// preserving order. The final page may be shorter.
func chunk(ids []int64, size int) [][]int64 {
	if len(ids) == 0 {
		return nil
	}
	if size < 1 {
		size = len(ids)
	}
	pages := make([][]int64, 0, (len(ids)+size-1)/size)
	for lo := 0; lo < len(ids); lo += size {
		hi := lo + size
		if hi > len(ids) {
			hi = len(ids)
		}
		pages = append(pages, ids[lo:hi])
	}
	return pages
}
