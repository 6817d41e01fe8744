package validation

import (
	"errors"
	"fmt"
	"testing"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "non-empty value passes", value: "Alface", wantErr: false},
		{name: "empty value fails", value: "", wantErr: true},
		{name: "whitespace value fails", value: "  \t ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Required("nome", tt.value, "Nome é obrigatório")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Required() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if err.Error() != "Nome é obrigatório" {
				t.Errorf("Error() = %q, want %q", err.Error(), "Nome é obrigatório")
			}
			if FieldOf(err) != "nome" {
				t.Errorf("FieldOf() = %q, want %q", FieldOf(err), "nome")
			}
		})
	}
}

func TestValidationErrorMatchesErrInvalid(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New("quantidade", "Quantidade deve ser maior que zero"))

	if !errors.Is(err, ErrInvalid) {
		t.Errorf("errors.Is(err, ErrInvalid) = false, want true")
	}
	if FieldOf(err) != "quantidade" {
		t.Errorf("FieldOf() = %q, want %q", FieldOf(err), "quantidade")
	}
	if FieldOf(errors.New("other")) != "" {
		t.Errorf("FieldOf() on a plain error should be empty")
	}
}
