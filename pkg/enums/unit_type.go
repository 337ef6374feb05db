package enums

import "fmt"

// UnitType classifies how a product's stock is measured.
type UnitType string

const (
	UnitTypeWeight UnitType = "WEIGHT"
	UnitTypeLiquid UnitType = "LIQUID"
	UnitTypeCount  UnitType = "COUNT"
)

var validUnitTypes = []UnitType{
	UnitTypeWeight,
	UnitTypeLiquid,
	UnitTypeCount,
}

// String implements fmt.Stringer.
func (u UnitType) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UnitType.
func (u UnitType) IsValid() bool {
	for _, candidate := range validUnitTypes {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUnitType converts raw input into a UnitType.
func ParseUnitType(value string) (UnitType, error) {
	for _, candidate := range validUnitTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unit type %q", value)
}

var baseUnitsByType = map[UnitType][]string{
	UnitTypeWeight: {"g", "kg"},
	UnitTypeLiquid: {"ml", "l"},
	UnitTypeCount:  {"pcs", "unit"},
}

// AllowsBaseUnit reports whether the base unit is valid for this unit type.
func (u UnitType) AllowsBaseUnit(baseUnit string) bool {
	for _, candidate := range baseUnitsByType[u] {
		if candidate == baseUnit {
			return true
		}
	}
	return false
}

// BaseUnits lists the base units accepted for this unit type.
func (u UnitType) BaseUnits() []string {
	return append([]string(nil), baseUnitsByType[u]...)
}
