// internal/entitlement/plans.go
package entitlement

// Plan is a purchasable credit pack.
type Plan struct {
	Key     string
	Name    string
	Credits int
}

var planCatalog = []Plan{
	{Key: "spark", Name: "Creative Spark", Credits: 10},
	{Key: "enthusiast", Name: "Style Enthusiast", Credits: 50},
	{Key: "pro", Name: "Boutique Pro", Credits: 200},
}

// Plans returns the purchasable plans in display order.
func Plans() []Plan {
	out := make([]Plan, len(planCatalog))
	copy(out, planCatalog)
	return out
}

// PlanByKey looks up a plan by its key.
func PlanByKey(key string) (Plan, bool) {
	for _, p := range planCatalog {
		if p.Key == key {
			return p, true
		}
	}
	return Plan{}, false
}
