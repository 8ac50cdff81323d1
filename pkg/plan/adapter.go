package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/registry"
)

// Document is the decoded form of an external plan document.
type Document struct {
	Name    string              `json:"name"    validate:"required"`
	Type    models.PlanType     `json:"type"    validate:"required,oneof=sequential partial-order"`
	Actions []models.PlanAction `json:"actions" validate:"required,min=1,dive"`
}

// Adapter validates external plan documents and turns them into executable
// plans. Every plan action must resolve to a registered action definition
// before dispatch begins; an unresolved action is a configuration error.
type Adapter struct {
	registry *registry.Registry
	validate *validator.Validate
	schema   gojsonschema.JSONLoader
	logger   *slog.Logger
}

func NewAdapter(reg *registry.Registry, logger *slog.Logger) *Adapter {
	return &Adapter{
		registry: reg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		schema:   gojsonschema.NewStringLoader(documentSchema),
		logger:   logger,
	}
}

// LoadFile reads and builds a plan from a JSON document on disk.
func (a *Adapter) LoadFile(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file %s: %w", path, err)
	}

	return a.Build(raw)
}

// Build validates a raw plan document and constructs the executable plan.
func (a *Adapter) Build(raw []byte) (*Plan, error) {
	result, err := gojsonschema.Validate(a.schema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to check plan document against schema: %w", err)
	}

	if !result.Valid() {
		descriptions := make([]string, 0, len(result.Errors()))
		for _, schemaErr := range result.Errors() {
			descriptions = append(descriptions, schemaErr.String())
		}

		return nil, &ValidationError{Message: "document does not match the plan schema: " + strings.Join(descriptions, "; ")}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode plan document: %w", err)
	}

	return a.BuildDocument(&doc)
}

// BuildDocument constructs the executable plan from an already decoded
// document.
func (a *Adapter) BuildDocument(doc *Document) (*Plan, error) {
	if err := a.validate.Struct(doc); err != nil {
		return nil, &ValidationError{Plan: doc.Name, Message: "document failed validation", Err: err}
	}

	actions := make([]*models.PlanAction, 0, len(doc.Actions))
	index := make(map[string]*models.PlanAction, len(doc.Actions))

	for i := range doc.Actions {
		action := doc.Actions[i]
		if _, exists := index[action.ID]; exists {
			return nil, &ValidationError{Plan: doc.Name, ActionID: action.ID, Message: "duplicate action id"}
		}

		if err := a.checkArguments(doc.Name, &action); err != nil {
			return nil, err
		}

		actions = append(actions, &action)
		index[action.ID] = &action
	}

	preds, succs, err := a.buildOrdering(doc, index)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Built plan", "plan", doc.Name, "type", doc.Type, "actions", len(actions))

	return &Plan{
		Name:    doc.Name,
		Type:    doc.Type,
		Actions: actions,
		index:   index,
		preds:   preds,
		succs:   succs,
	}, nil
}

// checkArguments resolves the action against the registry and validates the
// bound arguments against the declared signature.
func (a *Adapter) checkArguments(planName string, action *models.PlanAction) error {
	def, err := a.registry.Resolve(action.Action)
	if err != nil {
		return &ValidationError{Plan: planName, ActionID: action.ID, Err: err}
	}

	for _, param := range def.Parameters {
		value, bound := action.Arguments[param.Name]
		if !bound {
			return &ValidationError{
				Plan:      planName,
				ActionID:  action.ID,
				Parameter: param.Name,
				Message:   "argument is not bound",
			}
		}

		if !param.Type.Accepts(value) {
			return &ValidationError{
				Plan:      planName,
				ActionID:  action.ID,
				Parameter: param.Name,
				Message:   fmt.Sprintf("argument %v does not match declared type %s", value, param.Type),
			}
		}
	}

	for name := range action.Arguments {
		if _, declared := def.Parameter(name); !declared {
			return &ValidationError{
				Plan:      planName,
				ActionID:  action.ID,
				Parameter: name,
				Message:   fmt.Sprintf("argument is not declared by action %q", def.ID),
			}
		}
	}

	return nil
}

// buildOrdering constructs the dependency DAG and derives the predecessor
// and successor relations. Cycles are rejected at edge insertion.
func (a *Adapter) buildOrdering(doc *Document, index map[string]*models.PlanAction) (map[string][]string, map[string][]string, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	for id := range index {
		if err := g.AddVertex(id); err != nil {
			return nil, nil, fmt.Errorf("failed to add plan action %q to dependency graph: %w", id, err)
		}
	}

	addEdge := func(from, to string) error {
		err := g.AddEdge(from, to)
		if errors.Is(err, graph.ErrEdgeCreatesCycle) {
			return &ValidationError{Plan: doc.Name, ActionID: to, Message: fmt.Sprintf("ordering dependency on %q creates a cycle", from)}
		}

		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return fmt.Errorf("failed to add ordering edge %s -> %s: %w", from, to, err)
		}

		return nil
	}

	switch doc.Type {
	case models.PlanSequential:
		for i := 1; i < len(doc.Actions); i++ {
			if err := addEdge(doc.Actions[i-1].ID, doc.Actions[i].ID); err != nil {
				return nil, nil, err
			}
		}
	case models.PlanPartialOrder:
		for _, action := range doc.Actions {
			for _, dep := range action.DependsOn {
				if _, ok := index[dep]; !ok {
					return nil, nil, &ValidationError{
						Plan:     doc.Name,
						ActionID: action.ID,
						Message:  fmt.Sprintf("depends on unknown action %q", dep),
					}
				}

				if err := addEdge(dep, action.ID); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	predecessorMap, err := g.PredecessorMap()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive predecessor relation: %w", err)
	}

	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive successor relation: %w", err)
	}

	return flattenRelation(predecessorMap), flattenRelation(adjacencyMap), nil
}

func flattenRelation[E any](relation map[string]map[string]E) map[string][]string {
	out := make(map[string][]string, len(relation))

	for id, neighbors := range relation {
		ids := make([]string, 0, len(neighbors))
		for neighbor := range neighbors {
			ids = append(ids, neighbor)
		}

		sort.Strings(ids)
		out[id] = ids
	}

	return out
}
