package models

// PlanType distinguishes how ordering constraints are expressed in a plan
// document.
type PlanType string

const (
	// PlanSequential orders actions strictly by their position in the
	// document.
	PlanSequential PlanType = "sequential"
	// PlanPartialOrder orders actions only by their explicit depends_on
	// edges; independent branches may run concurrently.
	PlanPartialOrder PlanType = "partial-order"
)

// PlanAction is a grounded instance of a registered action: concrete
// argument values bound from planning output, plus the conditions the
// monitor checks around its execution. Consumed once by the dispatcher.
type PlanAction struct {
	ID             string         `json:"id"                       validate:"required"`
	Action         string         `json:"action"                   validate:"required"`
	Arguments      map[string]any `json:"arguments,omitempty"`
	DependsOn      []string       `json:"depends_on,omitempty"`
	Preconditions  []Condition    `json:"preconditions,omitempty"  validate:"dive"`
	Postconditions []Condition    `json:"postconditions,omitempty" validate:"dive"`
}
