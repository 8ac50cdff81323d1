package plan

import (
	"github.com/plexmo/plexmo/pkg/models"
)

// Plan is an immutable, validated plan: grounded actions plus their
// dependency relation. Built once by the adapter, then referenced by the
// dispatcher for the duration of one dispatch run.
type Plan struct {
	Name    string
	Type    models.PlanType
	Actions []*models.PlanAction

	index map[string]*models.PlanAction
	preds map[string][]string
	succs map[string][]string
}

// Action returns the grounded action with the given plan-local id.
func (p *Plan) Action(id string) *models.PlanAction {
	return p.index[id]
}

// Size returns the number of actions in the plan.
func (p *Plan) Size() int {
	return len(p.Actions)
}

// Predecessors returns the ids of the actions that must reach a terminal
// state before the given action may start.
func (p *Plan) Predecessors(id string) []string {
	return p.preds[id]
}

// Successors returns the ids of the actions directly depending on the given
// action.
func (p *Plan) Successors(id string) []string {
	return p.succs[id]
}

// Descendants returns the ids of all actions transitively depending on the
// given action.
func (p *Plan) Descendants(id string) []string {
	seen := make(map[string]bool)

	var out []string

	queue := append([]string(nil), p.succs[id]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if seen[next] {
			continue
		}

		seen[next] = true
		out = append(out, next)
		queue = append(queue, p.succs[next]...)
	}

	return out
}
