// Package nodefmt renders single process values (as read from an OPC UA node)
// for display, using the node's data type and engineering unit.
package nodefmt

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Data type tags understood by Format. Any other tag passes the value through.
const (
	TypeDouble  = "Double"
	TypeFloat   = "Float"
	TypeInt32   = "Int32"
	TypeInt16   = "Int16"
	TypeUInt32  = "UInt32"
	TypeUInt16  = "UInt16"
	TypeBoolean = "Boolean"
	TypeString  = "String"
)

// Units rendered with one decimal: temperature, pressure and flow rate.
var oneDecimalUnits = map[string]struct{}{
	"°C": {}, "°F": {}, "K": {}, "bar": {}, "psi": {}, "Pa": {},
	"L/min": {}, "m³/h": {}, "gpm": {},
}

var errNotFinite = errors.New("value is not finite")

// Request is a single formatting request.
type Request struct {
	NodeID   string
	Value    string
	DataType string
	Unit     string
}

// Result is the JSON shape printed for a Request.
type Result struct {
	NodeID    string `json:"nodeId"`
	Value     string `json:"value"`
	DataType  string `json:"dataType"`
	Formatted string `json:"formatted"`
}

// Do formats r.
func (r Request) Do() Result {
	return Result{
		NodeID:    r.NodeID,
		Value:     r.Value,
		DataType:  r.DataType,
		Formatted: Format(r.Value, r.DataType, r.Unit),
	}
}

// Format renders raw according to dataType and appends unit when non-empty.
// If a numeric value cannot be parsed the raw value is returned as-is,
// without the unit.
func Format(raw, dataType, unit string) string {
	body, err := formatBody(raw, dataType, unit)
	if err != nil {
		return raw
	}
	return body + unit
}

func formatBody(raw, dataType, unit string) (string, error) {
	switch dataType {
	case TypeDouble, TypeFloat:
		f, err := parseFloat(raw)
		if err != nil {
			return "", err
		}
		if _, ok := oneDecimalUnits[unit]; ok {
			return fixed(f, 1), nil
		}
		if unit == "%" {
			return truncate(f)
		}
		return fixed(f, 2), nil
	case TypeInt32, TypeInt16, TypeUInt32, TypeUInt16:
		f, err := parseFloat(raw)
		if err != nil {
			return "", err
		}
		return truncate(f)
	case TypeBoolean:
		switch strings.ToLower(raw) {
		case "true", "1", "yes":
			return "True", nil
		}
		return "False", nil
	default:
		return raw, nil
	}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// truncate drops the fractional part without rounding.
func truncate(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errNotFinite
	}
	t := math.Trunc(f)
	if t == 0 {
		t = 0 // no "-0"
	}
	return strconv.FormatFloat(t, 'f', 0, 64), nil
}

func fixed(f float64, prec int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', prec, 64)
}
