package schema

// BehaviorRules is the normalized shape of a product's custom attribute bag.
// The backing store is schema-less, so this record is re-derived from the raw
// map every time it is read back; it is never trusted as already normalized.
type BehaviorRules struct {
	TrackingType      string            `json:"tracking_type"`
	StorageCondition  string            `json:"storage_condition"`
	HazmatClass       string            `json:"hazmat_class"`
	CaptureWeight     bool              `json:"capture_weight"`
	ReceivingWorkflow ReceivingWorkflow `json:"receiving_workflow"`

	// Extra holds unrecognized keys verbatim, addressed by dotted path.
	// The schema is additive: foreign producers may write keys we do not
	// know about, and they must round-trip untouched.
	Extra map[string]interface{} `json:"-"`
}

// ReceivingWorkflow groups the inbound-handling flags of a product.
type ReceivingWorkflow struct {
	RequiresQualityCheck bool   `json:"requires_quality_check"`
	VASLabeling          string `json:"vas_labeling"`
	GiurProcess          bool   `json:"giur_process"`
}

// TrackingType governs whether inventory rows require a serial number or a
// batch/expiry pair.
type TrackingType string

const (
	TrackingNone   TrackingType = "NONE"
	TrackingSerial TrackingType = "SERIAL"
	TrackingBatch  TrackingType = "BATCH"
)

// StorageCondition is the temperature regime a product must be held at.
type StorageCondition string

const (
	StorageAmbient StorageCondition = "AMBIENT"
	StorageCooled  StorageCondition = "COOLED"
	StorageFrozen  StorageCondition = "FROZEN"
)

// HazmatClass flags dangerous-goods handling.
type HazmatClass string

const (
	HazmatNone      HazmatClass = "NONE"
	HazmatFlammable HazmatClass = "FLAMMABLE"
	HazmatCorrosive HazmatClass = "CORROSIVE"
)

// VASLabeling is the value-added labeling step applied at receiving.
type VASLabeling string

const (
	VASNone            VASLabeling = "NONE"
	VASImporterSticker VASLabeling = "IMPORTER_STICKER"
	VASPriceTag        VASLabeling = "PRICE_TAG"
	VASWarranty        VASLabeling = "WARRANTY"
)

type fieldKind int

const (
	kindEnum fieldKind = iota
	kindBool
)

// fieldDef declares one recognized attribute: its dotted path, type, allowed
// values, default, and typed accessors into BehaviorRules. This table is the
// single source of truth for defaults shared by the write path (Normalize,
// Set) and the read path (Describe); nothing else may hard-code a default.
type fieldDef struct {
	path    string
	kind    fieldKind
	allowed []string
	def     interface{}
	get     func(*BehaviorRules) interface{}
	set     func(*BehaviorRules, interface{})
}

var fields = []fieldDef{
	{
		path:    "tracking_type",
		kind:    kindEnum,
		allowed: []string{"NONE", "SERIAL", "BATCH"},
		def:     "NONE",
		get:     func(r *BehaviorRules) interface{} { return r.TrackingType },
		set:     func(r *BehaviorRules, v interface{}) { r.TrackingType = v.(string) },
	},
	{
		path:    "storage_condition",
		kind:    kindEnum,
		allowed: []string{"AMBIENT", "COOLED", "FROZEN"},
		def:     "AMBIENT",
		get:     func(r *BehaviorRules) interface{} { return r.StorageCondition },
		set:     func(r *BehaviorRules, v interface{}) { r.StorageCondition = v.(string) },
	},
	{
		path:    "hazmat_class",
		kind:    kindEnum,
		allowed: []string{"NONE", "FLAMMABLE", "CORROSIVE"},
		def:     "NONE",
		get:     func(r *BehaviorRules) interface{} { return r.HazmatClass },
		set:     func(r *BehaviorRules, v interface{}) { r.HazmatClass = v.(string) },
	},
	{
		path: "capture_weight",
		kind: kindBool,
		def:  false,
		get:  func(r *BehaviorRules) interface{} { return r.CaptureWeight },
		set:  func(r *BehaviorRules, v interface{}) { r.CaptureWeight = v.(bool) },
	},
	{
		path: "receiving_workflow.requires_quality_check",
		kind: kindBool,
		def:  false,
		get:  func(r *BehaviorRules) interface{} { return r.ReceivingWorkflow.RequiresQualityCheck },
		set:  func(r *BehaviorRules, v interface{}) { r.ReceivingWorkflow.RequiresQualityCheck = v.(bool) },
	},
	{
		path:    "receiving_workflow.vas_labeling",
		kind:    kindEnum,
		allowed: []string{"NONE", "IMPORTER_STICKER", "PRICE_TAG", "WARRANTY"},
		def:     "NONE",
		get:     func(r *BehaviorRules) interface{} { return r.ReceivingWorkflow.VASLabeling },
		set:     func(r *BehaviorRules, v interface{}) { r.ReceivingWorkflow.VASLabeling = v.(string) },
	},
	{
		path: "receiving_workflow.giur_process",
		kind: kindBool,
		def:  false,
		get:  func(r *BehaviorRules) interface{} { return r.ReceivingWorkflow.GiurProcess },
		set:  func(r *BehaviorRules, v interface{}) { r.ReceivingWorkflow.GiurProcess = v.(bool) },
	},
}

func fieldByPath(path string) (fieldDef, bool) {
	for _, f := range fields {
		if f.path == path {
			return f, true
		}
	}
	return fieldDef{}, false
}

// Defaults returns a fully populated record with every recognized field at
// its declared default.
func Defaults() BehaviorRules {
	var r BehaviorRules
	for _, f := range fields {
		f.set(&r, f.def)
	}
	return r
}
