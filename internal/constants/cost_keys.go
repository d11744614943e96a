package constants

// Cost attribute keys an organization can classify as hard or soft dollars.
const (
	LaborCosts    = "laborCosts"
	TurnoverCosts = "turnoverCosts"
	APILicensing  = "apiLicensing"
	SLAPenalties  = "slaPenalties"

	// Labor & Workforce
	TrainingOnboardingCosts = "trainingOnboardingCosts"
	OvertimePremiums        = "overtimePremiums"
	ShadowSystemsCosts      = "shadowSystemsCosts"

	// IT & Operations
	SoftwareLicensing    = "softwareLicensing"
	InfrastructureCosts  = "infrastructureCosts"
	ITSupportMaintenance = "itSupportMaintenance"

	// Compliance & Risk
	ErrorRemediationCosts = "errorRemediationCosts"
	AuditComplianceCosts  = "auditComplianceCosts"
	DowntimeCosts         = "downtimeCosts"

	// Opportunity Costs
	DecisionDelayCosts     = "decisionDelayCosts"
	CustomerImpactCosts    = "customerImpactCosts"
	MissedOpportunityCosts = "missedOpportunityCosts"
)

// Internal cost groups.
const (
	GroupLaborWorkforce   = "laborWorkforce"
	GroupITOperations     = "itOperations"
	GroupComplianceRisk   = "complianceRisk"
	GroupOpportunityCosts = "opportunityCosts"
)

var (
	// CostKeys lists every classifiable key in a stable order.
	CostKeys = []string{
		LaborCosts,
		TrainingOnboardingCosts,
		OvertimePremiums,
		ShadowSystemsCosts,
		TurnoverCosts,
		SoftwareLicensing,
		InfrastructureCosts,
		ITSupportMaintenance,
		APILicensing,
		ErrorRemediationCosts,
		AuditComplianceCosts,
		DowntimeCosts,
		SLAPenalties,
		DecisionDelayCosts,
		CustomerImpactCosts,
		MissedOpportunityCosts,
	}

	KnownCostKeys = map[string]bool{
		LaborCosts:              true,
		TrainingOnboardingCosts: true,
		OvertimePremiums:        true,
		ShadowSystemsCosts:      true,
		TurnoverCosts:           true,
		SoftwareLicensing:       true,
		InfrastructureCosts:     true,
		ITSupportMaintenance:    true,
		APILicensing:            true,
		ErrorRemediationCosts:   true,
		AuditComplianceCosts:    true,
		DowntimeCosts:           true,
		SLAPenalties:            true,
		DecisionDelayCosts:      true,
		CustomerImpactCosts:     true,
		MissedOpportunityCosts:  true,
	}

	// BaseCostKeys describe base costs rather than separate savings categories.
	// They carry no internal-cost savings of their own.
	BaseCostKeys = map[string]bool{
		LaborCosts:    true,
		TurnoverCosts: true,
		APILicensing:  true,
		SLAPenalties:  true,
	}

	// InternalCostGroup maps each of the twelve internal categories to its group.
	InternalCostGroup = map[string]string{
		TrainingOnboardingCosts: GroupLaborWorkforce,
		OvertimePremiums:        GroupLaborWorkforce,
		ShadowSystemsCosts:      GroupLaborWorkforce,

		SoftwareLicensing:    GroupITOperations,
		InfrastructureCosts:  GroupITOperations,
		ITSupportMaintenance: GroupITOperations,

		ErrorRemediationCosts: GroupComplianceRisk,
		AuditComplianceCosts:  GroupComplianceRisk,
		DowntimeCosts:         GroupComplianceRisk,

		DecisionDelayCosts:     GroupOpportunityCosts,
		CustomerImpactCosts:    GroupOpportunityCosts,
		MissedOpportunityCosts: GroupOpportunityCosts,
	}
)
