// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package validation

import (
	"math"
	"strings"
	"testing"
)

type recommendQuery struct {
	UserID int64 `json:"user_id" validate:"gte=0"`
	K      int   `json:"k,omitempty" validate:"gte=0,lte=100"`
}

type interactionRecord struct {
	UserID    int64   `json:"user_id" validate:"gte=0"`
	ProjectID int64   `json:"project_id" validate:"gte=0"`
	Type      string  `json:"interaction_type" validate:"interaction"`
	Amount    float64 `json:"donation_amount" validate:"finite,gte=0"`
}

type tuning struct {
	Name   string  `validate:"required,min=2,max=8"`
	Rate   float64 `validate:"finite,gt=0"`
	Epochs int     `validate:"max=50"`
	Mode   string  `validate:"oneof=fast exact"`
	Hidden string  `json:"-" validate:"required"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input interface{}
	}{
		{"zero query", &recommendQuery{}},
		{"bounded k", &recommendQuery{UserID: 7, K: 100}},
		{"view", &interactionRecord{UserID: 1, ProjectID: 2, Type: "view"}},
		{"donation", &interactionRecord{UserID: 1, ProjectID: 2, Type: "donate", Amount: 25.5}},
		{"tuning", &tuning{Name: "sgd", Rate: 0.01, Epochs: 20, Mode: "fast", Hidden: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateStruct(tt.input); err != nil {
				t.Errorf("ValidateStruct() error = %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	valid := tuning{Name: "sgd", Rate: 0.01, Mode: "fast", Hidden: "x"}

	tests := []struct {
		name        string
		input       interface{}
		wantField   string
		wantTag     string
		wantMessage string
	}{
		{
			name:        "negative user",
			input:       &recommendQuery{UserID: -1},
			wantField:   "user_id",
			wantTag:     "gte",
			wantMessage: "user_id must be greater than or equal to 0",
		},
		{
			name:        "k too large",
			input:       &recommendQuery{K: 101},
			wantField:   "k",
			wantTag:     "lte",
			wantMessage: "k must be less than or equal to 100",
		},
		{
			name:        "unknown interaction",
			input:       &interactionRecord{Type: "share"},
			wantField:   "interaction_type",
			wantTag:     "interaction",
			wantMessage: "interaction_type must be one of: view like donate",
		},
		{
			name:        "NaN donation",
			input:       &interactionRecord{Type: "donate", Amount: math.NaN()},
			wantField:   "donation_amount",
			wantTag:     "finite",
			wantMessage: "donation_amount must be a finite number",
		},
		{
			name: "infinite rate",
			input: func() *tuning {
				v := valid
				v.Rate = math.Inf(1)
				return &v
			}(),
			wantField:   "Rate",
			wantTag:     "finite",
			wantMessage: "Rate must be a finite number",
		},
		{
			name: "short string",
			input: func() *tuning {
				v := valid
				v.Name = "a"
				return &v
			}(),
			wantField:   "Name",
			wantTag:     "min",
			wantMessage: "Name must be at least 2 characters",
		},
		{
			name: "numeric max",
			input: func() *tuning {
				v := valid
				v.Epochs = 51
				return &v
			}(),
			wantField:   "Epochs",
			wantTag:     "max",
			wantMessage: "Epochs must be at most 50",
		},
		{
			name: "oneof",
			input: func() *tuning {
				v := valid
				v.Mode = "slow"
				return &v
			}(),
			wantField:   "Mode",
			wantTag:     "oneof",
			wantMessage: "Mode must be one of: fast exact",
		},
		{
			name: "json dash keeps go name",
			input: func() *tuning {
				v := valid
				v.Hidden = ""
				return &v
			}(),
			wantField:   "Hidden",
			wantTag:     "required",
			wantMessage: "Hidden is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(tt.input)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors (%v), want 1", len(errs), verr)
			}
			fe := errs[0]
			if fe.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", fe.Field(), tt.wantField)
			}
			if fe.Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", fe.Tag(), tt.wantTag)
			}
			if fe.Error() != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", fe.Error(), tt.wantMessage)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	t.Run("single", func(t *testing.T) {
		t.Parallel()

		verr := ValidateStruct(&recommendQuery{UserID: -3})
		if verr == nil {
			t.Fatal("expected error")
		}
		apiErr := verr.ToAPIError()
		if apiErr.Code != ErrorCode {
			t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
		}
		if apiErr.Details["field"] != "user_id" {
			t.Errorf("Details[field] = %v", apiErr.Details["field"])
		}
		if apiErr.Details["value"] != int64(-3) {
			t.Errorf("Details[value] = %v", apiErr.Details["value"])
		}
	})

	t.Run("multiple", func(t *testing.T) {
		t.Parallel()

		verr := ValidateStruct(&recommendQuery{UserID: -1, K: -1})
		if verr == nil {
			t.Fatal("expected error")
		}
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v", apiErr.Details["fields"])
		}
		if fields[0]["field"] != "user_id" || fields[1]["field"] != "k" {
			t.Errorf("fields = %v", fields)
		}
		if !strings.Contains(apiErr.Message, "; ") {
			t.Errorf("Message = %q, want joined messages", apiErr.Message)
		}
		if verr.Error() != apiErr.Message {
			t.Errorf("Error() = %q, Message = %q", verr.Error(), apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" || apiErr.Details != nil {
			t.Errorf("ToAPIError() = %+v", apiErr)
		}
	})
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(42)
	if verr == nil {
		t.Fatal("ValidateStruct(42) = nil, want error")
	}
	if got := verr.Errors()[0].Field(); got != "unknown" {
		t.Errorf("Field() = %q, want unknown", got)
	}
}
