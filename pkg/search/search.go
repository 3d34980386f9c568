// Package search implements the best-first probabilistic search over a
// weighted trie that powers autocomplete. A query is aligned against the
// trie one byte at a time; at every step the searcher may accept the byte
// as-is, or pay one of four edit-error probabilities (insertion,
// substitution, deletion, transposition) to keep exploring. Candidates are
// kept in a priority frontier ordered by the probability of the alignment
// so far times an admissible bound on the best word still reachable from
// that point, giving an A*-style search that reaches the likely completions
// first and prunes everything else once a floor relative to the best
// suggestion found is established.
package search

import (
	"container/heap"
	"strings"

	"github.com/inetis-oss/autocomplete/pkg/errormodel"
	"github.com/inetis-oss/autocomplete/pkg/keyboard"
	"github.com/inetis-oss/autocomplete/pkg/trie"
)

// DefaultMaxResults is used by callers that don't have an opinion of their
// own on how many suggestions to request.
const DefaultMaxResults = 5

// maxIterationsBeforeFirstGoal bounds how long the search may run before it
// has found even a single suggestion. The reference implementation's
// comment claims 1000; the code it ships uses 10000. We keep 10000.
const maxIterationsBeforeFirstGoal = 10000

// minSuggestionProbDivisor sets the pruning floor once a first suggestion is
// found: any candidate whose priority is more than two orders of magnitude
// below the best suggestion cannot itself be a better suggestion.
const minSuggestionProbDivisor = 100.0

// operation identifies one of the five ways a candidate can try to advance:
// advance one trie edge without consuming a query byte (insert), consume
// both in lockstep with no error (no_correction), consume both while
// charging a substitution, consume only the query byte (delete), or swap
// two adjacent bytes (transpose). Order matters: it is the iteration order
// fixed by spec over a node's successor actions.
type operation int

const (
	opInsert operation = iota
	opNoCorrection
	opSubstitute
	opDelete
	opTranspose
	opEnd
)

// action is a cursor into one node's successor-generation sequence: for
// insert/no_correction/substitute it addresses the childIdx'th child of the
// node; delete and transpose are single-shot operations with no child
// addressing of their own (childAt reports 0 for them, mirroring the
// reference implementation's cursor, which always resets to the first
// child position whenever it rolls onto a new operation and is simply never
// read for the single-shot operations).
type action struct {
	op       operation
	childIdx int
}

func firstAction() action { return action{op: opInsert} }
func endAction() action   { return action{op: opEnd} }

func (a action) childAt() int {
	switch a.op {
	case opInsert, opNoCorrection, opSubstitute:
		return a.childIdx
	default:
		return 0
	}
}

// next advances the cursor by one slot, rolling from operation to operation
// once its children (or single slot) are exhausted. nChildren is the child
// count of the node this action addresses.
func (a action) next(nChildren int) action {
	switch a.op {
	case opInsert, opNoCorrection, opSubstitute:
		if a.childIdx+1 < nChildren {
			return action{op: a.op, childIdx: a.childIdx + 1}
		}
		return action{op: a.op + 1}
	case opDelete, opTranspose:
		return action{op: a.op + 1}
	default:
		return a
	}
}

// candidate is one element of the search frontier: an alignment of some
// prefix of the query against a path through the trie, plus the window of
// not-yet-expanded successor actions still owed to that node.
type candidate struct {
	node       int     // trie arena index this candidate currently sits at
	queryPos   int     // byte offset into the query already consumed
	suggestion string  // prefix built so far, including a trailing terminator byte once at a leaf
	queryProb  float64 // P(query | this alignment) - non-increasing along any path
	priority   float64 // queryProb * an admissible upper bound on the best word below node
	nErrors    int
	begin, end action // half-open window of successor actions not yet expanded
}

// frontier is a max-heap of candidates ordered by priority, implementing
// container/heap.Interface.
type frontier []candidate

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].priority > f[j].priority }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(candidate)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// Engine ties a finalized Trie to a Keyboard and answers Autocomplete
// queries against them. Both dependencies are read-only for the lifetime of
// the Engine and may be shared across concurrently-querying Engines.
type Engine struct {
	trie *trie.Trie
	kb   *keyboard.Keyboard
}

// New returns an Engine that searches t using kb's error geometry. t must
// already be finalized.
func New(t *trie.Trie, kb *keyboard.Keyboard) *Engine {
	return &Engine{trie: t, kb: kb}
}

// freshCandidate builds a candidate that has just moved to nodeIdx, with a
// brand new action window spanning all of that node's successor actions.
func (e *Engine) freshCandidate(nodeIdx, queryPos int, suggestion string, queryProb float64, nErrors int) candidate {
	return candidate{
		node:       nodeIdx,
		queryPos:   queryPos,
		suggestion: suggestion,
		queryProb:  queryProb,
		priority:   queryProb * e.trie.Node(nodeIdx).Prob,
		nErrors:    nErrors,
		begin:      firstAction(),
		end:        endAction(),
	}
}

// sameWindowCandidate builds a candidate that stays at nodeIdx, inheriting
// the caller's action window verbatim rather than starting a fresh one
// (used only by delete, which does not move in the trie).
func (e *Engine) sameWindowCandidate(nodeIdx int, begin, end action, queryPos int, suggestion string, queryProb float64, nErrors int) candidate {
	return candidate{
		node:       nodeIdx,
		queryPos:   queryPos,
		suggestion: suggestion,
		queryProb:  queryProb,
		priority:   queryProb * e.trie.Node(nodeIdx).Prob,
		nErrors:    nErrors,
		begin:      begin,
		end:        end,
	}
}

// explicitCandidate builds a candidate whose priority is an externally
// supplied admissible bound rather than queryProb*node.Prob - used for the
// left/right action-window placeholders pushed by split.
func explicitCandidate(nodeIdx int, begin, end action, queryPos int, suggestion string, queryProb, priority float64, nErrors int) candidate {
	return candidate{
		node:       nodeIdx,
		queryPos:   queryPos,
		suggestion: suggestion,
		queryProb:  queryProb,
		priority:   priority,
		nErrors:    nErrors,
		begin:      begin,
		end:        end,
	}
}

// nextChar returns the query-cursor position following pos (the byte just
// consumed), collapsing a run of interior spaces down to its last member.
// A lone interior space is therefore left in place rather than deleted: it
// is still a real byte a multi-word dictionary entry (e.g. "new york") may
// need to match via an ordinary trie edge.
func nextChar(query string, pos int) int {
	n := len(query)
	if pos >= n {
		return pos
	}
	pos++
	if pos >= n || query[pos] != ' ' {
		return pos
	}
	next := pos + 1
	for next < n && query[next] == ' ' {
		pos = next
		next++
	}
	if next >= n {
		return next
	}
	return pos
}

// Autocomplete returns up to maxResults distinct completions of query drawn
// from the engine's trie, ranked by descending alignment probability.
// Leading spaces are trimmed; an empty or all-space query yields no
// results. maxResults <= 0 is treated as DefaultMaxResults.
func (e *Engine) Autocomplete(query string, maxResults int) []string {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	pos := 0
	for pos < len(query) && query[pos] == ' ' {
		pos++
	}
	if pos >= len(query) {
		return nil
	}

	return e.search(query, pos, maxResults)
}

func (e *Engine) search(query string, startPos, maxResults int) []string {
	pq := &frontier{e.freshCandidate(e.trie.Root(), startPos, "", 1.0, 0)}
	heap.Init(pq)

	var suggestions []string
	seen := make(map[string]bool)
	minProb := 0.0
	iterations := 0

	for pq.Len() > 0 && len(suggestions) < maxResults {
		c := heap.Pop(pq).(candidate)

		if c.priority < minProb {
			break
		}
		if minProb == 0 {
			iterations++
			if iterations > maxIterationsBeforeFirstGoal {
				break
			}
		}

		node := e.trie.Node(c.node)
		if len(node.Children) == 0 {
			// A terminator is only a goal if the query has been fully
			// consumed; otherwise it is discarded - not a goal, not
			// expanded (a trie leaf has nowhere further to go).
			if c.queryPos == len(query) {
				word := c.suggestion[:len(c.suggestion)-1]
				if !seen[word] {
					if len(suggestions) == 0 {
						minProb = c.priority / minSuggestionProbDivisor
					}
					seen[word] = true
					suggestions = append(suggestions, word)
				}
			}
			continue
		}

		if c.queryPos == len(query) {
			e.expandMatchedQuery(c, pq)
		} else {
			left, best, right, bestAction := e.split(c, query)
			e.addCandidates(pq, c, minProb, left, best, right, bestAction)
		}
	}

	return suggestions
}

// expandMatchedQuery handles a candidate whose query is already fully
// consumed but whose trie node still has children (the query matched a
// strict prefix of a longer word). It walks the node's children in their
// already-best-first order, pushing at most two candidates per call: the
// descent into the current child, and - only if doing so doesn't roll the action
// cursor into a different operation - a placeholder that continues the
// scan from the next child. That operation-crossing guard mirrors the
// reference implementation's own cursor check exactly; whether it is a
// deliberate restriction or an artifact of the cursor's design is an open
// question the reference leaves unresolved, so the behavior is preserved
// rather than "fixed".
func (e *Engine) expandMatchedQuery(c candidate, pq *frontier) {
	if c.begin == c.end {
		return
	}

	node := e.trie.Node(c.node)
	nChildren := len(node.Children)

	childIdx := c.begin.childAt()
	firstChildIdx := node.Children[childIdx]
	first := e.trie.Node(firstChildIdx)
	heap.Push(pq, e.freshCandidate(firstChildIdx, c.queryPos, c.suggestion+string(first.Char), c.queryProb, c.nErrors))

	nextAct := c.begin.next(nChildren)
	if nextAct != c.end && nextAct.op == c.begin.op {
		contPriority := c.queryProb * e.trie.Node(node.Children[nextAct.childAt()]).Prob
		heap.Push(pq, explicitCandidate(c.node, nextAct, c.end, c.queryPos, c.suggestion, c.queryProb, contPriority, c.nErrors))
	}
}

// split evaluates every action in candidate's window, returning the single
// highest-priority successor together with admissible upper bounds on
// anything reachable through the actions to its left and to its right in
// the window. The bounds reuse the considered candidates' own priorities,
// which is always a safe (if loose) bound since nothing still unexpanded in
// those slices can exceed the best priority already observed there.
func (e *Engine) split(c candidate, query string) (left float64, best *candidate, right float64, bestAction action) {
	node := e.trie.Node(c.node)
	nChildren := len(node.Children)
	queryByte := query[c.queryPos]
	atBegin := c.queryPos == 0
	atSecond := c.queryPos == 1

	probs := errormodel.Compute(e.kb, atBegin, atSecond, node.Char, queryByte)

	sumNoCorrection := e.noCorrectionSum(node.Children, queryByte, probs.Hit)
	sumInsert := e.transitionSum(node.Children, queryByte, atBegin, probs.BeginInsertionPenalty, true)
	sumSubstitute := e.transitionSum(node.Children, queryByte, atBegin, probs.BeginSubstitutionPenalty, false)

	bestAction = c.begin
	bestPriority := 0.0

	for act := c.begin; act != c.end; act = act.next(nChildren) {
		var (
			cand candidate
			ok   bool
		)

		switch act.op {
		case opInsert:
			cand, ok = e.expandSubstitute(c, queryByte, true, probs.Insertion, probs.BeginInsertionPenalty, sumInsert, atBegin, query, act)
		case opNoCorrection:
			cand, ok = e.expandNoCorrection(c, queryByte, probs.Hit, sumNoCorrection, query, act)
		case opSubstitute:
			cand, ok = e.expandSubstitute(c, queryByte, false, probs.Substitution, probs.BeginSubstitutionPenalty, sumSubstitute, atBegin, query, act)
		case opDelete:
			cand, ok = e.expandDelete(c, probs.Deletion, query), true
		case opTranspose:
			cand, ok = e.expandTranspose(c, probs.Transposition, query)
		}

		if !ok {
			continue
		}

		if cand.priority > bestPriority {
			left = bestPriority
			bestPriority = cand.priority
			cp := cand
			best = &cp
			right = 0
			bestAction = act
		} else if cand.priority > right {
			right = cand.priority
		}
	}

	return left, best, right, bestAction
}

// addCandidates pushes the outcome of split onto the frontier: the best
// successor at its full priority, and - only if they still clear the
// pruning floor - placeholders covering the left and right remainders of
// the action window at their admissible bound priorities.
func (e *Engine) addCandidates(pq *frontier, c candidate, minProb float64, left float64, best *candidate, right float64, bestAction action) {
	if best == nil || best.priority <= minProb {
		return
	}
	heap.Push(pq, *best)

	nChildren := len(e.trie.Node(c.node).Children)

	if left > minProb {
		heap.Push(pq, explicitCandidate(c.node, c.begin, bestAction, c.queryPos, c.suggestion, c.queryProb, left, c.nErrors))
	}
	if right > minProb {
		heap.Push(pq, explicitCandidate(c.node, bestAction.next(nChildren), c.end, c.queryPos, c.suggestion, c.queryProb, right, c.nErrors))
	}
}

// noCorrectionSum normalizes an exact keystroke hit across every sibling
// that could also have produced it (keys sharing a physical position, such
// as a letter and its shifted form, both count).
func (e *Engine) noCorrectionSum(children []int, queryByte byte, hitProb float64) float64 {
	sum := 0.0
	for _, childIdx := range children {
		if e.kb.Distance(e.trie.Node(childIdx).Char, queryByte) == 0 {
			sum += hitProb
		}
	}
	return sum
}

// transitionSum normalizes an insertion or substitution across every
// sibling edge it could plausibly have meant, excluding terminators (which
// cannot be substituted or inserted into) and, for substitution only,
// excluding exact matches (already handled by no_correction).
func (e *Engine) transitionSum(children []int, queryByte byte, atBegin bool, beginPenalty float64, insertChar bool) float64 {
	sum := 0.0
	for _, childIdx := range children {
		child := e.trie.Node(childIdx)
		if isTerminatorChar(child.Char) {
			continue
		}
		prob, exact := errormodel.TransitionProbability(e.kb, child.Char, queryByte, atBegin, beginPenalty)
		if insertChar || !exact {
			sum += prob
		}
	}
	return sum
}

func isTerminatorChar(c byte) bool { return c == 0 }

// expandNoCorrection advances to the child exactly matching the current
// query byte (keyboard distance 0), consuming one query byte.
func (e *Engine) expandNoCorrection(c candidate, queryByte byte, hitProb, sum float64, query string, act action) (candidate, bool) {
	if sum <= 0 {
		return candidate{}, false
	}

	node := e.trie.Node(c.node)
	childIdx := node.Children[act.childAt()]
	child := e.trie.Node(childIdx)
	if e.kb.Distance(child.Char, queryByte) != 0 {
		return candidate{}, false
	}

	newQueryProb := c.queryProb * hitProb * hitProb / sum
	return e.freshCandidate(childIdx, nextChar(query, c.queryPos), c.suggestion+string(child.Char), newQueryProb, c.nErrors), true
}

// expandSubstitute handles both the insert and substitute operations, which
// share the same edge-transition computation: insert treats the query byte
// as spurious (the trie advances but the query cursor does not), substitute
// consumes it as a typo for childChar.
func (e *Engine) expandSubstitute(c candidate, queryByte byte, insertChar bool, baseProb, beginPenalty, sum float64, atBegin bool, query string, act action) (candidate, bool) {
	if sum <= 0 {
		return candidate{}, false
	}

	node := e.trie.Node(c.node)
	childIdx := node.Children[act.childAt()]
	child := e.trie.Node(childIdx)
	if isTerminatorChar(child.Char) {
		return candidate{}, false
	}

	prob, exact := errormodel.TransitionProbability(e.kb, child.Char, queryByte, atBegin, beginPenalty)
	if !insertChar && exact {
		return candidate{}, false // exact matches are no_correction's job
	}

	newQueryProb := c.queryProb * baseProb * prob / sum
	nextPos := c.queryPos
	if !insertChar {
		nextPos = nextChar(query, c.queryPos)
	}
	return e.freshCandidate(childIdx, nextPos, c.suggestion+string(child.Char), newQueryProb, c.nErrors+1), true
}

// expandDelete treats the current query byte as a spurious/missed
// keystroke: the query advances but the trie node does not, so the action
// window carries forward unchanged rather than resetting.
func (e *Engine) expandDelete(c candidate, deletionProb float64, query string) candidate {
	newQueryProb := c.queryProb * deletionProb
	return e.sameWindowCandidate(c.node, c.begin, c.end, nextChar(query, c.queryPos), c.suggestion, newQueryProb, c.nErrors+1)
}

// expandTranspose advances past two adjacent query bytes at once if they
// can be matched, in swapped order, against two successive trie edges.
func (e *Engine) expandTranspose(c candidate, transpositionProb float64, query string) (candidate, bool) {
	suffix, endIdx, ok := e.transpose(query, c.queryPos, c.node)
	if !ok {
		return candidate{}, false
	}

	newQueryProb := c.queryProb * transpositionProb
	nextPos := nextChar(query, c.queryPos+1)
	return e.freshCandidate(endIdx, nextPos, c.suggestion+suffix, newQueryProb, c.nErrors+1), true
}

// transpose reports whether query[pos] and query[pos+1] can be matched, in
// swapped order, against a child of nodeIdx and then a grandchild of that
// child. It only ever considers the first child matching query[pos+1]: if
// that child has no matching grandchild, transposition fails outright
// rather than trying a different child (mirroring the reference
// implementation, which does not backtrack here).
func (e *Engine) transpose(query string, pos, nodeIdx int) (suffix string, endIdx int, ok bool) {
	if pos+1 >= len(query) {
		return "", 0, false
	}

	secondQueryByte := query[pos+1]
	node := e.trie.Node(nodeIdx)
	for _, childIdx := range node.Children {
		child := e.trie.Node(childIdx)
		if e.kb.Distance(secondQueryByte, child.Char) != 0 {
			continue
		}

		for _, grandchildIdx := range child.Children {
			grandchild := e.trie.Node(grandchildIdx)
			if e.kb.Distance(query[pos], grandchild.Char) == 0 {
				var b strings.Builder
				b.WriteByte(child.Char)
				b.WriteByte(grandchild.Char)
				return b.String(), grandchildIdx, true
			}
		}
		return "", 0, false
	}

	return "", 0, false
}
