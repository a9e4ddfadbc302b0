package nodefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		raw, dataType, unit string
		want                string
	}{
		{"87.34", TypeDouble, "°C", "87.3°C"},
		{"87.36", TypeFloat, "°F", "87.4°F"},
		{"300", TypeDouble, "K", "300.0K"},
		{"1.26", TypeDouble, "bar", "1.3bar"},
		{"14.7", TypeDouble, "psi", "14.7psi"},
		{"101325", TypeDouble, "Pa", "101325.0Pa"},
		{"12.345", TypeDouble, "L/min", "12.3L/min"},
		{"3", TypeDouble, "m³/h", "3.0m³/h"},
		{"7.77", TypeDouble, "gpm", "7.8gpm"},
		{"87.6", TypeDouble, "%", "87%"},
		{"-3.9", TypeDouble, "%", "-3%"},
		{"-0.5", TypeDouble, "%", "0%"},
		{"3.14159", TypeDouble, "", "3.14"},
		{"2", TypeDouble, "rpm", "2.00rpm"},
		{" 1.5 ", TypeDouble, "", "1.50"},
		{"inf", TypeDouble, "", "inf"},
		{"42.9", TypeInt32, "", "42"},
		{"-42.9", TypeInt16, "", "-42"},
		{"7", TypeUInt32, "rpm", "7rpm"},
		{"1e3", TypeUInt16, "", "1000"},
		{"TRUE", TypeBoolean, "", "True"},
		{"1", TypeBoolean, "", "True"},
		{"Yes", TypeBoolean, "", "True"},
		{"no", TypeBoolean, "", "False"},
		{"on", TypeBoolean, "", "False"},
		{"false", TypeBoolean, "flag", "Falseflag"},
		{"running", TypeString, "", "running"},
		{"running", TypeString, "!", "running!"},
		{"0x1F", "ByteString", "", "0x1F"},
		{"abc", "DateTime", "h", "abch"},
	}
	for _, tt := range tests {
		got := Format(tt.raw, tt.dataType, tt.unit)
		assert.Equal(t, tt.want, got, "Format(%q, %q, %q)", tt.raw, tt.dataType, tt.unit)
	}
}

func TestFormatOneDecimalForEveryNumericType(t *testing.T) {
	for _, dt := range []string{TypeDouble, TypeFloat} {
		for _, unit := range []string{"°C", "°F", "K", "bar", "psi", "Pa"} {
			assert.Equal(t, "21.5"+unit, Format("21.54", dt, unit))
		}
	}
}

func TestFormatFallsBackWithoutUnit(t *testing.T) {
	assert.Equal(t, "n/a", Format("n/a", TypeDouble, "°C"))
	assert.Equal(t, "", Format("", TypeInt32, "rpm"))
	assert.Equal(t, "nan", Format("nan", TypeDouble, "%"), "truncating NaN fails")
	assert.Equal(t, "inf", Format("inf", TypeInt16, "A"))
}

func TestRequestDo(t *testing.T) {
	res := Request{NodeID: "ns=2;i=101", Value: "87.3", DataType: TypeDouble, Unit: "°C"}.Do()
	assert.Equal(t, Result{NodeID: "ns=2;i=101", Value: "87.3", DataType: TypeDouble, Formatted: "87.3°C"}, res)
}
