package schema

// Facets are the derived display properties every consumer (table renderers,
// the billing preview, the assistant snapshot) reads instead of poking at the
// raw attribute bag.
type Facets struct {
	FrozenOrHazmat  bool `json:"frozen_or_hazmat"`
	SpecialHandling bool `json:"special_handling"`

	rules BehaviorRules
}

// Describe computes display facets from a raw attribute bag. Unlike
// Normalize it never fails: absent or malformed fields resolve to the same
// defaults Normalize would apply, via the same field table.
func Describe(attrs map[string]interface{}) Facets {
	flat := flatten("", attrs)

	r := Defaults()
	for _, f := range fields {
		v, ok := flat[f.path]
		if !ok {
			continue
		}
		if checked, err := checkValue(f, v); err == nil {
			f.set(&r, checked)
		}
	}

	return Facets{
		FrozenOrHazmat:  r.StorageCondition == string(StorageFrozen) || r.HazmatClass != string(HazmatNone),
		SpecialHandling: r.ReceivingWorkflow.GiurProcess || r.ReceivingWorkflow.RequiresQualityCheck || r.ReceivingWorkflow.VASLabeling != string(VASNone),
		rules:           r,
	}
}

// Rules returns the leniently normalized record the facets were derived from.
func (f Facets) Rules() BehaviorRules {
	return f.rules
}

// Tags lists the short handling badges shown next to a product.
func (f Facets) Tags() []string {
	var tags []string
	r := f.rules
	if r.TrackingType != string(TrackingNone) {
		tags = append(tags, r.TrackingType)
	}
	if r.StorageCondition != string(StorageAmbient) {
		tags = append(tags, r.StorageCondition)
	}
	if r.HazmatClass != string(HazmatNone) {
		tags = append(tags, "HAZMAT_"+r.HazmatClass)
	}
	if r.ReceivingWorkflow.GiurProcess {
		tags = append(tags, "GIUR")
	}
	if r.ReceivingWorkflow.RequiresQualityCheck {
		tags = append(tags, "QC")
	}
	if r.ReceivingWorkflow.VASLabeling != string(VASNone) {
		tags = append(tags, "VAS_"+r.ReceivingWorkflow.VASLabeling)
	}
	return tags
}
