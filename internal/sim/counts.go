package sim

import "sort"

// Counts maps a classical outcome bitstring to the number of shots that
// produced it. Bitstrings have fixed width (the classical register size)
// with classical bit 0 leftmost; the counts always sum to the requested
// shot count.
type Counts map[string]int

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Bitstrings returns the outcome keys in lexicographic order.
func (c Counts) Bitstrings() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// bitstring renders the classical outcome value as a fixed-width string,
// classical bit 0 leftmost.
func bitstring(value, width int) string {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		if value&(1<<i) != 0 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}
