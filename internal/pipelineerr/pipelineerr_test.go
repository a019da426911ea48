package pipelineerr

import (
	"errors"
	"testing"
)

func TestWrappedErrorsMatchSentinelsViaErrorsIs(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"InputShape", InputShape("c1", "fewer than three vertices"), ErrInputShape},
		{"UnknownReference", UnknownReference("layer", "AX_Bogus"), ErrUnknownReference},
		{"Numeric", Numeric("base polygon p1"), ErrNumeric},
		{"Adapter", Adapter("reproject", errors.New("proj4: unknown datum")), ErrAdapter},
		{"UnsupportedGeometry", UnsupportedGeometry("obj-9"), ErrUnsupportedGeometry},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.want) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tc.err, tc.want)
			}
		})
	}
}
