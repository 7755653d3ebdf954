package service

// StatusField is the form field every policy table is keyed on.
const StatusField = "status"

// FieldPolicy lists the conditional fields shown and required for a status.
type FieldPolicy struct {
	Visible  []string
	Required []string
	// Advisory is a read-only note the view shows for this status.
	Advisory string
}

// PolicyTable maps a status value to its field policy. Statuses missing from
// the table show no conditional fields.
type PolicyTable map[string]FieldPolicy

// For returns the policy of status.
func (t PolicyTable) For(status string) FieldPolicy {
	return t[status]
}

// Conditional lists every field the table ever governs.
func (t PolicyTable) Conditional() map[string]struct{} {
	out := map[string]struct{}{}
	for _, p := range t {
		for _, f := range p.Visible {
			out[f] = struct{}{}
		}
		for _, f := range p.Required {
			out[f] = struct{}{}
		}
	}
	return out
}

// Die cuts are mounted on a press only while ACTIVE.
var dieCutPolicy = PolicyTable{
	"ACTIVE": {Visible: []string{"machine"}, Required: []string{"machine"}},
}

// Raw material rolls sit in the warehouse while AVAILABLE and are bound to a
// press while READY or IN_USE.
var rawMaterialPolicy = PolicyTable{
	"AVAILABLE": {Visible: []string{"warehouseLocation"}, Required: []string{"warehouseLocation"}},
	"READY":     {Visible: []string{"assignedMachine"}, Required: []string{"assignedMachine"}},
	"IN_USE":    {Visible: []string{"assignedMachine"}, Required: []string{"assignedMachine"}},
	"COMPLAINT": {Advisory: "Materials under complaint are excluded from production planning."},
}

var inkPolicy = PolicyTable{
	"ACTIVE": {Visible: []string{"machine"}, Required: []string{"machine"}},
}
