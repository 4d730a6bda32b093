package errors

import (
	stderrors "errors"
	"testing"

	"senscalc/domain/core"
)

func TestFromDomain_MapsKindsToCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"geometry", core.NewGeometryError("elevation", -5, "below horizon"), CodeInvalidGeometry},
		{"efficiency", core.NewEfficiencyError("eta_ill", 0), CodeInvalidEfficiency},
		{"mode", core.NewModeError("nodding"), CodeUnsupportedMode},
		{"domain", core.NewDomainError("transmission", 0, "transmission > 0"), CodeDomainError},
		{"not found", core.ErrNotFound, CodeNotFound},
		{"non-convergence", core.ErrNonConvergence, CodeNonConvergence},
		{"unknown", stderrors.New("boom"), CodeInternalError},
	}
	for _, tc := range cases {
		appErr := FromDomain(tc.err)
		if appErr.Code != tc.code {
			t.Errorf("%s: code = %s, want %s", tc.name, appErr.Code, tc.code)
		}
		// The cause is relayed verbatim, never masked.
		if !stderrors.Is(appErr, tc.err) {
			t.Errorf("%s: wrapped error lost its cause", tc.name)
		}
	}
}

func TestFromDomain_Nil(t *testing.T) {
	if FromDomain(nil) != nil {
		t.Error("FromDomain(nil) must be nil")
	}
}

type fieldErr struct{ field string }

func (e *fieldErr) Error() string     { return "bad " + e.field }
func (e *fieldErr) FieldName() string { return e.field }

func TestGetField_ReadsFieldCarriers(t *testing.T) {
	err := &fieldErr{field: "bandwidth"}
	if got := GetField(err); got != "bandwidth" {
		t.Errorf("GetField = %q, want bandwidth", got)
	}
	// The field survives FromDomain wrapping.
	appErr := FromDomain(err)
	if appErr.Field != "bandwidth" {
		t.Errorf("FromDomain lost the field: %q", appErr.Field)
	}
}

func TestGetCode_NonAppError(t *testing.T) {
	if got := GetCode(stderrors.New("boom")); got != "UNKNOWN" {
		t.Errorf("GetCode = %q, want UNKNOWN", got)
	}
}

func TestWrap_PreservesCode(t *testing.T) {
	inner := New(CodeDatabaseError, "insert failed")
	wrapped := Wrap(inner, "saving calculation")
	if GetCode(wrapped) != CodeDatabaseError {
		t.Errorf("Wrap changed the code to %s", GetCode(wrapped))
	}
	if wrapped.Error() != "saving calculation: insert failed" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}
