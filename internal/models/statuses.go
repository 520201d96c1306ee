package models

type UserRole string
type JobStatus string
type SubscriptionPlan string
type Category string

const (
	UserRoleClient       UserRole = "CLIENT"
	UserRoleProfessional UserRole = "PROFESSIONAL"

	JobStatusPending   JobStatus = "PENDING"
	JobStatusAccepted  JobStatus = "ACCEPTED"
	JobStatusConfirmed JobStatus = "CONFIRMED"
	JobStatusCompleted JobStatus = "COMPLETED"

	PlanBase    SubscriptionPlan = "BASE"
	PlanTrial   SubscriptionPlan = "TRIAL"
	PlanMonthly SubscriptionPlan = "MONTHLY"
	PlanAnnual  SubscriptionPlan = "ANNUAL"

	CategoryPlumber     Category = "Idraulico"
	CategoryElectrician Category = "Elettricista"
	CategoryMason       Category = "Muratore"
	CategoryPainter     Category = "Imbianchino"
	CategoryGardener    Category = "Giardiniere"
)

// DefaultRanking is the rating shown for a party with no confirmed history.
const DefaultRanking = 5.0

func (r UserRole) Valid() bool {
	return r == UserRoleClient || r == UserRoleProfessional
}

func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanBase, PlanTrial, PlanMonthly, PlanAnnual:
		return true
	}
	return false
}

func (c Category) Valid() bool {
	switch c {
	case CategoryPlumber, CategoryElectrician, CategoryMason, CategoryPainter, CategoryGardener:
		return true
	}
	return false
}
