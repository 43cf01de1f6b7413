package diff

import "slices"

type role uint8

const (
	roleDeleted role = iota
	roleAnchor
	roleMove
	roleReplace
)

type pair struct {
	i, j int
}

// build returns the shorter of two replayable scripts: one built around the
// heaviest alignment and one that overwrites rows in place by position. On
// equal length the script with fewer deletes and inserts wins, then the
// aligned one.
func build[T any](a, b []T, eq func(i, j int) bool) []Edit[T] {
	script := plan(a, b, eq, align(len(a), len(b), eq))
	positional := plan(a, b, eq, diagonal(len(a), len(b)))
	switch {
	case len(positional) < len(script):
		return positional
	case len(positional) == len(script) && churn(positional) < churn(script):
		return positional
	}
	return script
}

func churn[T any](script []Edit[T]) int {
	n := 0
	for _, edit := range script {
		if edit.Op == OpDelete || edit.Op == OpInsert {
			n++
		}
	}
	return n
}

// plan classifies every old element as anchor, move, replace or delete and
// every new element as matched or inserted, then emits a replayable script.
//
//   - stationary pairs stay in place as anchors, or as replaces when the
//     elements differ
//   - moves: each unmatched new element, in ascending order, takes the
//     leftmost unmatched equal old element
//   - replaces: leftover old and new elements inside the same gap between
//     two stationary pairs, paired by rank
//   - everything else is deleted or inserted
func plan[T any](a, b []T, eq func(i, j int) bool, stationary []pair) []Edit[T] {
	n, m := len(a), len(b)
	roles := make([]role, n)
	targets := make([]int, n)
	matched := make([]bool, m)

	for _, p := range stationary {
		roles[p.i] = roleAnchor
		if !eq(p.i, p.j) {
			roles[p.i] = roleReplace
		}
		targets[p.i] = p.j
		matched[p.j] = true
	}

	for j := 0; j < m; j++ {
		if matched[j] {
			continue
		}
		for i := 0; i < n; i++ {
			if roles[i] == roleDeleted && eq(i, j) {
				roles[i] = roleMove
				targets[i] = j
				matched[j] = true
				break
			}
		}
	}

	bounds := make([]pair, 0, len(stationary)+2)
	bounds = append(bounds, pair{-1, -1})
	bounds = append(bounds, stationary...)
	bounds = append(bounds, pair{n, m})
	for k := 1; k < len(bounds); k++ {
		lo, hi := bounds[k-1], bounds[k]
		var olds, news []int
		for i := lo.i + 1; i < hi.i; i++ {
			if roles[i] == roleDeleted {
				olds = append(olds, i)
			}
		}
		for j := lo.j + 1; j < hi.j; j++ {
			if !matched[j] {
				news = append(news, j)
			}
		}
		for r := 0; r < len(olds) && r < len(news); r++ {
			roles[olds[r]] = roleReplace
			targets[olds[r]] = news[r]
			matched[news[r]] = true
		}
	}

	var script []Edit[T]

	for i := n - 1; i >= 0; i-- {
		if roles[i] == roleDeleted {
			script = append(script, Edit[T]{Op: OpDelete, Index: i, Item: a[i]})
		}
	}

	// work holds the target index of every surviving element in its current
	// position. Anchors and replaces are already in target order; moves are
	// placed right after their predecessor in target order.
	work := make([]int, 0, n)
	var moves []pair
	for i := 0; i < n; i++ {
		if roles[i] == roleDeleted {
			continue
		}
		work = append(work, targets[i])
		if roles[i] == roleMove {
			moves = append(moves, pair{i, targets[i]})
		}
	}
	slices.SortFunc(moves, func(x, y pair) int { return x.j - y.j })
	for _, mv := range moves {
		from := slices.Index(work, mv.j)
		work = slices.Delete(work, from, from+1)
		to, best := 0, -1
		for pos, target := range work {
			if target < mv.j && target > best {
				best = target
				to = pos + 1
			}
		}
		work = slices.Insert(work, to, mv.j)
		if from != to {
			script = append(script, Edit[T]{Op: OpMove, From: from, To: to, Item: a[mv.i]})
		}
	}

	for j := 0; j < m; j++ {
		if !matched[j] {
			script = append(script, Edit[T]{Op: OpInsert, Index: j, Item: b[j]})
		}
	}

	for i := 0; i < n; i++ {
		if roles[i] == roleReplace {
			script = append(script, Edit[T]{Op: OpReplace, Index: targets[i], Item: b[targets[i]]})
		}
	}

	return script
}

func diagonal(n, m int) []pair {
	out := make([]pair, min(n, m))
	for i := range out {
		out[i] = pair{i, i}
	}
	return out
}

// align returns the stationary pairs in ascending order. A pair is either
// equal or an orphan pair, where neither element equals anything on the
// other side. The alignment maximises the pair count, then the number of
// equal pairs.
func align(n, m int, eq func(i, j int) bool) []pair {
	if n == 0 || m == 0 {
		return nil
	}
	same := make([]bool, n*m)
	oldMatches := make([]bool, n)
	newMatches := make([]bool, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if eq(i, j) {
				same[i*m+j] = true
				oldMatches[i] = true
				newMatches[j] = true
			}
		}
	}
	unit := min(n, m) + 1
	weight := func(i, j int) int {
		switch {
		case same[i*m+j]:
			return unit + 1
		case !oldMatches[i] && !newMatches[j]:
			return unit
		default:
			return 0
		}
	}

	width := m + 1
	score := make([]int, (n+1)*width)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			best := max(score[(i+1)*width+j], score[i*width+j+1])
			if w := weight(i, j); w > 0 {
				best = max(best, w+score[(i+1)*width+j+1])
			}
			score[i*width+j] = best
		}
	}

	var out []pair
	i, j := 0, 0
	for i < n && j < m {
		w := weight(i, j)
		switch {
		case w > 0 && score[i*width+j] == w+score[(i+1)*width+j+1]:
			out = append(out, pair{i, j})
			i++
			j++
		case score[(i+1)*width+j] >= score[i*width+j+1]:
			i++
		default:
			j++
		}
	}
	return out
}
