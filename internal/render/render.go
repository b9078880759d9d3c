// Package render turns outcome mappings into terminal tables and bar
// charts. It works on one or two Counts over the same bitstring domain,
// so a simulated run and a remote run can be laid out side by side.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/sim"
)

const barWidth = 40

// domain merges the bitstring keys of the two mappings into one sorted
// list, so every outcome appears in every column even when one leg never
// observed it.
func domain(a, b sim.Counts) []string {
	seen := make(map[string]struct{})
	for bits := range a {
		seen[bits] = struct{}{}
	}
	for bits := range b {
		seen[bits] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for bits := range seen {
		keys = append(keys, bits)
	}
	sort.Strings(keys)
	return keys
}

// CountsTable renders a single outcome mapping as a bordered-off table
// with outcome, count and frequency columns.
func CountsTable(counts sim.Counts) string {
	var buf strings.Builder

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Outcome", "Count", "Frequency"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	total := counts.Total()
	for _, bits := range counts.Bitstrings() {
		n := counts[bits]
		table.Append([]string{bits, fmt.Sprintf("%d", n), formatFreq(n, total)})
	}
	table.SetFooter([]string{"Total", fmt.Sprintf("%d", total), ""})
	table.Render()

	return buf.String()
}

// ComparisonTable renders two outcome mappings over a shared domain, one
// row per outcome, with per-leg counts and frequencies.
func ComparisonTable(simulated, remote sim.Counts) string {
	var buf strings.Builder

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Outcome", "Simulated", "Freq", "Remote", "Freq"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	simTotal := simulated.Total()
	remTotal := remote.Total()
	for _, bits := range domain(simulated, remote) {
		s, r := simulated[bits], remote[bits]
		table.Append([]string{
			bits,
			fmt.Sprintf("%d", s), formatFreq(s, simTotal),
			fmt.Sprintf("%d", r), formatFreq(r, remTotal),
		})
	}
	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d", simTotal), "",
		fmt.Sprintf("%d", remTotal), "",
	})
	table.Render()

	return buf.String()
}

// BarChart renders each outcome as a proportional horizontal bar.
func BarChart(counts sim.Counts) string {
	total := counts.Total()
	if total == 0 {
		return dimStyle.Render("(no outcomes)") + "\n"
	}

	var buf strings.Builder
	for _, bits := range counts.Bitstrings() {
		n := counts[bits]
		filled := (n*barWidth + total/2) / total
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		fmt.Fprintf(&buf, "%s %s %s\n",
			outcomeStyle.Render(bits),
			barStyle.Render(bar),
			formatFreq(n, total))
	}
	return buf.String()
}

// TotalVariation reports the total variation distance between the
// frequency distributions of the two mappings, in [0, 1]. An empty mapping
// contributes zero frequency to every outcome, so it sits at distance 0.5
// from any distribution; callers comparing against a failed leg should
// suppress the comparison instead.
func TotalVariation(a, b sim.Counts) float64 {
	aTotal, bTotal := a.Total(), b.Total()
	if aTotal == 0 && bTotal == 0 {
		return 0
	}
	var dist float64
	for _, bits := range domain(a, b) {
		var fa, fb float64
		if aTotal > 0 {
			fa = float64(a[bits]) / float64(aTotal)
		}
		if bTotal > 0 {
			fb = float64(b[bits]) / float64(bTotal)
		}
		if fa > fb {
			dist += fa - fb
		} else {
			dist += fb - fa
		}
	}
	return dist / 2
}

func formatFreq(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}
