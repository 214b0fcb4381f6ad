package compose

import "fmt"

// EditKind is the type of a single edit step.
type EditKind uint8

// Edit steps. Keep leaves an item in place.
const (
	Keep EditKind = iota
	Insert
	Delete
)

func (k EditKind) String() string {
	switch k {
	case Keep:
		return "keep"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	}
	return "<invalid edit>"
}

// Edit is a step of an edit script. For Keep and Delete, Item is taken from
// the current list, for Insert from the target list.
type Edit[T comparable] struct {
	Kind EditKind
	Item T
}

func (e Edit[T]) String() string {
	return fmt.Sprintf("%s(%v)", e.Kind, e.Item)
}

// Diff computes a minimal edit script transforming current into target,
// using insertions and deletions only. Applying the script in order yields
// target; the Keep steps form a longest common subsequence of both lists.
//
// Items are expected to be unique within each list.
func Diff[T comparable](current, target []T) []Edit[T] {
	prefix := sharedPrefix(current, target)
	suffix := sharedSuffix(current[prefix:], target[prefix:])
	edits := make([]Edit[T], 0, len(current)+len(target)-prefix-suffix)
	for _, item := range current[:prefix] {
		edits = append(edits, Edit[T]{Keep, item})
	}
	from := current[prefix : len(current)-suffix]
	to := target[prefix : len(target)-suffix]
	edits = append(edits, editScript(from, to)...)
	for _, item := range current[len(current)-suffix:] {
		edits = append(edits, Edit[T]{Keep, item})
	}
	tracer().Debugf("diff: prefix=%d, suffix=%d, core=%d×%d", prefix, suffix, len(from), len(to))
	return edits
}

func sharedPrefix[T comparable](a, b []T) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func sharedSuffix[T comparable](a, b []T) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[len(a)-1-i] != b[len(b)-1-i] {
			return i
		}
	}
	return n
}

// editScript is the core algorithm. dist[i][j] is the edit distance between
// from[:i] and to[:j]. Equal items are free (diagonal step), everything else
// costs one insertion or one deletion.
func editScript[T comparable](from, to []T) []Edit[T] {
	if len(from) == 0 && len(to) == 0 {
		return nil
	}
	dist := make([][]int, len(from)+1)
	for i := range dist {
		dist[i] = make([]int, len(to)+1)
		dist[i][0] = i
	}
	for j := 0; j <= len(to); j++ {
		dist[0][j] = j
	}
	for i := 1; i <= len(from); i++ {
		for j := 1; j <= len(to); j++ {
			if from[i-1] == to[j-1] {
				dist[i][j] = dist[i-1][j-1]
				continue
			}
			north, west := dist[i-1][j], dist[i][j-1]
			if north < west {
				dist[i][j] = north + 1
			} else {
				dist[i][j] = west + 1
			}
		}
	}
	// walk back from the lower right corner
	script := make([]Edit[T], 0, dist[len(from)][len(to)]+len(from))
	i, j := len(from), len(to)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && from[i-1] == to[j-1]:
			script = append(script, Edit[T]{Keep, from[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || dist[i][j-1] <= dist[i-1][j]):
			script = append(script, Edit[T]{Insert, to[j-1]})
			j--
		default:
			script = append(script, Edit[T]{Delete, from[i-1]})
			i--
		}
	}
	for l, r := 0, len(script)-1; l < r; l, r = l+1, r-1 {
		script[l], script[r] = script[r], script[l]
	}
	return script
}

// --- Splices ---------------------------------------------------------------

// Splice describes a contiguous change: at position Index of the target
// list, the items in Removed have been replaced by AddedCount new items.
type Splice[T comparable] struct {
	Index      int
	Removed    []T
	AddedCount int
}

func (s Splice[T]) String() string {
	return fmt.Sprintf("splice@%d(-%v +%d)", s.Index, s.Removed, s.AddedCount)
}

// Splices groups the edit script between current and target into splices.
func Splices[T comparable](current, target []T) []Splice[T] {
	var splices []Splice[T]
	var open *Splice[T]
	t := 0 // position in target
	for _, e := range Diff(current, target) {
		if e.Kind == Keep {
			if open != nil {
				splices = append(splices, *open)
				open = nil
			}
			t++
			continue
		}
		if open == nil {
			open = &Splice[T]{Index: t}
		}
		if e.Kind == Delete {
			open.Removed = append(open.Removed, e.Item)
		} else {
			open.AddedCount++
			t++
		}
	}
	if open != nil {
		splices = append(splices, *open)
	}
	return splices
}
