package rerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsKindMatchesDirectError(t *testing.T) {
	err := Validationf("comp", "bad value %d", 7)
	if !IsKind(err, KindValidation) {
		t.Error("expected KindValidation match")
	}
	if IsKind(err, KindInstantiation) {
		t.Error("did not expect KindInstantiation match")
	}
}

func TestIsKindMatchesWrappedError(t *testing.T) {
	inner := ConfigurationNotFound("registry", "missing")
	wrapped := fmt.Errorf("loading config: %w", inner)
	if !IsKind(wrapped, KindConfigurationNotFound) {
		t.Error("expected wrapped error to still match its kind")
	}
}

func TestRecoverMatchedKind(t *testing.T) {
	err := UserCallback("event", errors.New("consumer exploded"))
	matched, rest := Recover(err, KindValidation, KindUserCallback)
	if !matched {
		t.Error("expected Recover to match KindUserCallback")
	}
	if rest != nil {
		t.Errorf("expected nil rest on match, got %v", rest)
	}
}

func TestRecoverUnmatchedKindRethrows(t *testing.T) {
	err := Instantiation("factory", errors.New("boom"))
	matched, rest := Recover(err, KindValidation)
	if matched {
		t.Error("did not expect a match")
	}
	if rest != err {
		t.Errorf("expected rest to be the original error, got %v", rest)
	}
}

func TestRecoverNilError(t *testing.T) {
	matched, rest := Recover(nil, KindValidation)
	if matched || rest != nil {
		t.Errorf("Recover(nil) = (%v, %v), want (false, nil)", matched, rest)
	}
}

func TestCoreErrorIsIgnoresComponentAndCause(t *testing.T) {
	a := Validationf("compA", "x")
	b := Validationf("compB", "y")
	if !errors.Is(a, b) {
		t.Error("expected two validation errors to satisfy errors.Is regardless of component/message")
	}
}
