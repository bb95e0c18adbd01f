package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseAccess,
				Kind:   KindTypeMismatch,
				Path:   []string{"slots", "3"},
				Have:   "string",
				Want:   "uint64",
				Detail: "typed access failed",
			},
			contains: []string{"[access]", "type_mismatch", "slots.3", "holds string", "want uint64", " - typed access failed"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseBind,
				Kind:  KindUnsupported,
			},
			contains: []string{"[bind]", "unsupported"},
		},
		{
			name: "only wanted type",
			err: &Error{
				Phase: PhaseAccess,
				Kind:  KindEmpty,
				Want:  "int",
			},
			contains: []string{"[access] empty: want int"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseStore,
				Kind:   KindInvalidInput,
				Detail: "open database",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[store]", "invalid_input", ": open database", "caused by", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseStore,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseAccess,
		Kind:  KindTypeMismatch,
		Have:  "string",
	}

	if !err.Is(&Error{Phase: PhaseAccess, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseBind, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseAccess, Kind: KindEmpty}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseAccess, Kind: KindTypeMismatch}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}

	if err.Is(errors.New("other")) {
		t.Error("Is should not match foreign errors")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseAccess, KindTypeMismatch).
		Path("table", "7").
		Have("string").
		Want("uint64").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "uint64", "string").
		Build()

	if err.Phase != PhaseAccess {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseAccess)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "table" || err.Path[1] != "7" {
		t.Errorf("Path = %v, want [table 7]", err.Path)
	}
	if err.Have != "string" {
		t.Errorf("Have = %v, want 'string'", err.Have)
	}
	if err.Want != "uint64" {
		t.Errorf("Want = %v, want 'uint64'", err.Want)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected uint64, got string" {
		t.Errorf("Detail = %v, want 'expected uint64, got string'", err.Detail)
	}

	plain := New(PhaseBench, KindInvalidInput).Detail("100 percent").Build()
	if plain.Detail != "100 percent" {
		t.Errorf("Detail without args = %q, want %q", plain.Detail, "100 percent")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseAccess, "int", "string")
		if err.Kind != KindTypeMismatch || err.Have != "int" || err.Want != "string" {
			t.Errorf("unexpected error: %+v", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		err := Empty(PhaseAccess, "int")
		if err.Kind != KindEmpty || err.Want != "int" {
			t.Errorf("unexpected error: %+v", err)
		}
		if !strings.Contains(err.Error(), "container is empty") {
			t.Errorf("message %q lacks detail", err.Error())
		}
	})

	t.Run("Registration", func(t *testing.T) {
		err := Registration(PhaseRegister, "main.T", "already bound")
		if err.Kind != KindRegistration || err.Have != "main.T" {
			t.Errorf("unexpected error: %+v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseStore, "run", "12")
		if err.Kind != KindNotFound || err.Detail != `run "12" not found` {
			t.Errorf("unexpected error: %+v", err)
		}
	})

	t.Run("Closed", func(t *testing.T) {
		err := Closed(PhaseTable, "table")
		if err.Kind != KindClosed || err.Detail != "table closed" {
			t.Errorf("unexpected error: %+v", err)
		}
	})

	t.Run("NotInitialized", func(t *testing.T) {
		err := NotInitialized(PhaseStore, "store")
		if err.Kind != KindNotInitialized || err.Detail != "store not initialized" {
			t.Errorf("unexpected error: %+v", err)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseReport, "format xml")
		if err.Kind != KindUnsupported || err.Detail != "format xml" {
			t.Errorf("unexpected error: %+v", err)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseBench, "times must be positive")
		if err.Kind != KindInvalidInput {
			t.Errorf("unexpected error: %+v", err)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(PhaseStore, KindInvalidInput, cause, "save run")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep the cause reachable")
		}
	})
}
