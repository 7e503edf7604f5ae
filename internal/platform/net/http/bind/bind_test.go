package bind

import (
	"testing"

	perr "noladash/internal/platform/errors"
)

type sampleQuery struct {
	Metric  string `form:"metric" validate:"required,oneof=faturamento_total ticket_medio"`
	Weekday string `form:"dia_semana" validate:"omitempty,oneof=0 1 2 3 4 5 6"`
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(sampleQuery{Metric: "faturamento_total", Weekday: "3"}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if err := Struct(sampleQuery{Metric: "ticket_medio"}); err != nil {
		t.Fatalf("omitempty field rejected: %v", err)
	}
}

func TestStruct_InvalidUsesFormTagName(t *testing.T) {
	err := Struct(sampleQuery{Metric: "faturamento_total", Weekday: "9"})
	if err == nil {
		t.Fatalf("invalid weekday accepted")
	}
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("code = %v, want validation", perr.CodeOf(err))
	}
	e, ok := perr.As(err)
	if !ok || e.Field() != "dia_semana" {
		t.Fatalf("field = %q, want form tag name dia_semana", e.Field())
	}
}

func TestStruct_MissingRequired(t *testing.T) {
	err := Struct(sampleQuery{})
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("missing required field: err = %v", err)
	}
	e, _ := perr.As(err)
	if e.Field() != "metric" {
		t.Fatalf("field = %q, want metric", e.Field())
	}
}

func TestGet_Singleton(t *testing.T) {
	if Get() != Get() {
		t.Fatalf("Get returned different instances")
	}
}
