package domain

import (
	"fmt"
	"strings"
)

type Plan string

const (
	PlanDemo     Plan = "demo"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

// PlanLimits holds the daily caps a plan grants.
type PlanLimits struct {
	MaxCards    int `json:"maxCards"`
	MaxChatTime int `json:"maxChatTime"`
}

type PlanInfo struct {
	Plan        Plan       `json:"plan"`
	Name        string     `json:"name"`
	Price       string     `json:"price"`
	Description string     `json:"description"`
	Limits      PlanLimits `json:"limits"`
}

var planCatalog = []PlanInfo{
	{
		Plan:        PlanDemo,
		Name:        "Demonstração",
		Price:       "Grátis",
		Description: "Experimente o poder da cartomancia",
		Limits:      PlanLimits{MaxCards: 1, MaxChatTime: 10},
	},
	{
		Plan:        PlanStandard,
		Name:        "Standard",
		Price:       "R$ 19,90/mês",
		Description: "Para quem busca orientação regular",
		Limits:      PlanLimits{MaxCards: 3, MaxChatTime: 30},
	},
	{
		Plan:        PlanPremium,
		Name:        "Premium",
		Price:       "R$ 39,90/mês",
		Description: "Experiência mística completa",
		Limits:      PlanLimits{MaxCards: 5, MaxChatTime: 60},
	},
}

func (p Plan) Valid() bool {
	switch p {
	case PlanDemo, PlanStandard, PlanPremium:
		return true
	default:
		return false
	}
}

// Limits returns the caps for p. Unknown plans get the demo caps.
func (p Plan) Limits() PlanLimits {
	return p.Info().Limits
}

func (p Plan) Info() PlanInfo {
	for _, info := range planCatalog {
		if info.Plan == p {
			return info
		}
	}
	return planCatalog[0]
}

// Plans returns the catalog in display order. The slice is a copy.
func Plans() []PlanInfo {
	plans := make([]PlanInfo, len(planCatalog))
	copy(plans, planCatalog)
	return plans
}

func ParsePlan(raw string) (Plan, error) {
	plan := Plan(strings.ToLower(strings.TrimSpace(raw)))
	if !plan.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlan, raw)
	}
	return plan, nil
}
