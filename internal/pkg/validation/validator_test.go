package validation

import (
	"testing"
)

type sample struct {
	ID     string `json:"id" validate:"nationalid"`
	Email  string `json:"email" validate:"looseemail"`
	Type   string `json:"type" validate:"filetype"`
	Status string `json:"status" validate:"filestatus"`
}

func TestDomainTags(t *testing.T) {
	v := New()

	valid := sample{ID: "123456789", Email: "a@b.co", Type: "pdf", Status: "approved"}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("valid sample rejected: %v", err)
	}

	invalid := sample{ID: "12345678a", Email: "a@b", Type: "exe", Status: "done"}
	msgs := Messages(v.Struct(invalid))
	for _, field := range []string{"id", "email", "type", "status"} {
		if msgs[field] == "" {
			t.Errorf("no message for %s in %v", field, msgs)
		}
	}
}

func TestPatterns(t *testing.T) {
	tests := []struct {
		in    string
		id    bool
		email bool
	}{
		{"123456789", true, false},
		{"12345678", false, false},
		{"1234567890", false, false},
		{"x@y.z", false, true},
		{"x y@z.w", false, false},
	}
	for _, tt := range tests {
		if got := CompiledPatterns.NationalID.MatchString(tt.in); got != tt.id {
			t.Errorf("national id %q = %v", tt.in, got)
		}
		if got := CompiledPatterns.Email.MatchString(tt.in); got != tt.email {
			t.Errorf("email %q = %v", tt.in, got)
		}
	}
}

func TestRegisterGinIsIdempotent(t *testing.T) {
	if err := RegisterGin(); err != nil {
		t.Fatal(err)
	}
	if err := RegisterGin(); err != nil {
		t.Fatal(err)
	}
}
