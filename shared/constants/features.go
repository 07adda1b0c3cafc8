package constants

type FeatureEnum string

const (
	FeatureAge                  FeatureEnum = "Age"
	FeatureIncome               FeatureEnum = "Income"
	FeatureSocialMediaSpent     FeatureEnum = "SocialMediaSpent"
	FeatureEntertainmentSpend   FeatureEnum = "EntertainmentSpend"
	FeatureStressLevel          FeatureEnum = "StressLevel"
	FeatureUsageDurationMinutes FeatureEnum = "UsageDurationMinutes"
)

// TargetHealthIndex is the column the regressors predict.
const TargetHealthIndex = "HealthIndex"

// Features is the required input set, in form display order.
var Features = []FeatureEnum{
	FeatureAge,
	FeatureIncome,
	FeatureSocialMediaSpent,
	FeatureEntertainmentSpend,
	FeatureStressLevel,
	FeatureUsageDurationMinutes,
}

var featureLabels = map[FeatureEnum]string{
	FeatureAge:                  "Age",
	FeatureIncome:               "Income",
	FeatureSocialMediaSpent:     "Social Media Spent",
	FeatureEntertainmentSpend:   "Entertainment Spend",
	FeatureStressLevel:          "Stress Level",
	FeatureUsageDurationMinutes: "Usage Duration (Minutes)",
}

// Label returns the human readable name of a feature column.
func Label(name string) string {
	if l, ok := featureLabels[FeatureEnum(name)]; ok {
		return l
	}
	return name
}
