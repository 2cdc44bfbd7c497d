package modelselection

import (
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/neighfit/dataset"
	"github.com/YuminosukeSato/neighfit/pkg/errors"
)

// Fold is one fit/holdout pair of disjoint row-index sets.
type Fold struct {
	Fit     []int
	Holdout []int
}

// FoldPlan is the v folds of a single repeat. Its holdout sets partition the
// full index set: every row is held out exactly once per repeat.
type FoldPlan []Fold

// CVPlan is an ordered sequence of FoldPlans, one per repeat, each built
// from an independently seeded shuffle.
type CVPlan []FoldPlan

// Folds returns all folds across repeats in plan order.
func (p CVPlan) Folds() []Fold {
	var out []Fold
	for _, fp := range p {
		out = append(out, fp...)
	}
	return out
}

// CVOptions configures Plan.
type CVOptions struct {
	// StratifyColumn, when set, distributes each group's rows across the
	// folds so every fold's class balance tracks the full table's.
	StratifyColumn string

	// Seed drives the per-repeat shuffles. Repeat i uses the pair
	// (Seed, i), so repeats are independent but reproducible.
	Seed uint64
}

// Plan builds a repeated k-fold cross-validation plan over the table's row
// indices. Holdout group sizes within a repeat differ by at most one row.
func Plan(t *dataset.Table, v, repeats int, opts CVOptions) (CVPlan, error) {
	n := t.Len()
	if v < 2 || v > n {
		return nil, errors.NewFoldCountError(v, n)
	}
	if repeats < 1 {
		return nil, errors.NewValueError("CrossValidator.Plan", "repeats must be at least 1")
	}

	plan := make(CVPlan, repeats)
	for rep := 0; rep < repeats; rep++ {
		r := rand.New(rand.NewPCG(opts.Seed, uint64(rep)))

		var fp FoldPlan
		var err error
		if opts.StratifyColumn == "" {
			fp = foldPlan(r.Perm(n), v)
		} else {
			fp, err = stratifiedFoldPlan(t, v, opts.StratifyColumn, r)
			if err != nil {
				return nil, err
			}
		}
		plan[rep] = fp
	}
	return plan, nil
}

// foldPlan carves shuffled indices into v contiguous holdout groups and
// pairs each with the complement as fit set.
func foldPlan(shuffled []int, v int) FoldPlan {
	n := len(shuffled)
	base := n / v
	remainder := n % v

	fp := make(FoldPlan, v)
	start := 0
	for f := 0; f < v; f++ {
		size := base
		if f < remainder {
			size++
		}
		holdout := make([]int, size)
		copy(holdout, shuffled[start:start+size])
		fp[f] = Fold{Holdout: holdout}
		start += size
	}
	fillFitSets(fp, n)
	return fp
}

// stratifiedFoldPlan deals each group's shuffled rows across the folds in
// round-robin chunks so per-fold class proportions track the table's. The
// fold receiving a group's first extra row rotates from group to group, so
// total holdout sizes stay within one row of each other even when no group
// divides evenly by v.
func stratifiedFoldPlan(t *dataset.Table, v int, col string, r *rand.Rand) (FoldPlan, error) {
	groups, order, err := groupByColumn(t, col)
	if err != nil {
		return nil, err
	}

	fp := make(FoldPlan, v)
	offset := 0
	for _, key := range order {
		indices := groups[key]
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		base := len(indices) / v
		remainder := len(indices) % v
		start := 0
		for f := 0; f < v; f++ {
			size := base
			if (f-offset+v)%v < remainder {
				size++
			}
			fp[f].Holdout = append(fp[f].Holdout, indices[start:start+size]...)
			start += size
		}
		offset = (offset + remainder) % v
	}
	fillFitSets(fp, t.Len())
	return fp, nil
}

// fillFitSets completes each fold with the ascending complement of its
// holdout set.
func fillFitSets(fp FoldPlan, n int) {
	for f := range fp {
		held := make(map[int]bool, len(fp[f].Holdout))
		for _, idx := range fp[f].Holdout {
			held[idx] = true
		}
		fit := make([]int, 0, n-len(fp[f].Holdout))
		for i := 0; i < n; i++ {
			if !held[i] {
				fit = append(fit, i)
			}
		}
		fp[f].Fit = fit
		sort.Ints(fp[f].Holdout)
	}
}
