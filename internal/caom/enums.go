package caom

// CalibrationLevel follows the archive convention of 1 (raw) through 4
// (analysis product).
type CalibrationLevel int

const (
	CalibrationUnset CalibrationLevel = iota
	CalibrationRawStandard
	CalibrationCalibrated
	CalibrationProduct
	CalibrationAnalysisProduct
)

func (l CalibrationLevel) String() string {
	switch l {
	case CalibrationRawStandard:
		return "RAW_STANDARD"
	case CalibrationCalibrated:
		return "CALIBRATED"
	case CalibrationProduct:
		return "PRODUCT"
	case CalibrationAnalysisProduct:
		return "ANALYSIS_PRODUCT"
	default:
		return "UNSET"
	}
}

// Upgrade returns the higher of l and to. Calibration levels never go down.
func (l CalibrationLevel) Upgrade(to CalibrationLevel) CalibrationLevel {
	if to > l {
		return to
	}
	return l
}

// DataProductType classifies the shape of a plane's data.
type DataProductType string

const (
	DataProductCube  DataProductType = "cube"
	DataProductImage DataProductType = "image"
)

// ProductType classifies an artifact within its plane.
type ProductType string

const (
	ProductScience     ProductType = "science"
	ProductNoise       ProductType = "noise"
	ProductCalibration ProductType = "calibration"
)

// ObservationType distinguishes simple from derived observations.
type ObservationType string

const (
	ObservationSimple  ObservationType = "SimpleObservation"
	ObservationDerived ObservationType = "DerivedObservation"
)
