package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ada@columbia.edu", true},
		{"user+tag@barnard.edu", true},
		{"a@b.co", true},
		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@columbia.edu", false},
		{".user@columbia.edu", false},
		{"user..name@columbia.edu", false},
		{"user@.columbia.edu", false},
		{"User Name <user@columbia.edu>", false},
		{"user @columbia.edu", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	type input struct {
		Name  string `validate:"required,max=10" label:"Full name"`
		Email string `validate:"required,email" label:"Email address"`
	}
	tests := []struct {
		name      string
		in        input
		wantFirst string
	}{
		{"valid", input{"John", "john@columbia.edu"}, ""},
		{"missing name", input{"", "john@columbia.edu"}, "Full name is required."},
		{"too long", input{"VeryLongNameThatExceedsLimit", "john@columbia.edu"}, "Full name must be at most 10 characters."},
		{"bad email", input{"John", "not-an-email"}, "Email address must be a valid email address."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in)
			if res.HasErrors() != (tt.wantFirst != "") {
				t.Fatalf("HasErrors = %v, errors %v", res.HasErrors(), res.Errors)
			}
			if res.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", res.First(), tt.wantFirst)
			}
		})
	}
}

func TestValidate_CustomRules(t *testing.T) {
	type content struct {
		Title       string `validate:"notblank" label:"Title"`
		Description string `validate:"richtext" label:"Description"`
		Semester    string `validate:"objectid" label:"Semester"`
		Due         string `validate:"datetime" label:"Due date"`
	}
	ok := content{"T", "<p>D</p>", "507f1f77bcf86cd799439011", "2026-02-01T23:59"}
	if res := Validate(ok); res.HasErrors() {
		t.Fatalf("valid content has errors: %v", res.All())
	}

	tests := []struct {
		name  string
		edit  func(*content)
		field string
	}{
		{"blank title", func(c *content) { c.Title = "   " }, "Title"},
		{"empty paragraph", func(c *content) { c.Description = "<p>&nbsp;</p>" }, "Description"},
		{"no semester", func(c *content) { c.Semester = "" }, "Semester"},
		{"bad date", func(c *content) { c.Due = "soon" }, "Due"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ok
			tt.edit(&c)
			res := Validate(c)
			if !res.Has(tt.field) {
				t.Errorf("expected error on %s, got %v", tt.field, res.Errors)
			}
		})
	}
}

func TestValidate_Timezone(t *testing.T) {
	type in struct {
		Zone string `validate:"timezone" label:"Time zone"`
	}
	if Validate(in{"America/New_York"}).HasErrors() {
		t.Error("America/New_York should be valid")
	}
	res := Validate(in{"Not/AZone"})
	if res.First() != "Time zone must be a valid time zone." {
		t.Errorf("First() = %q", res.First())
	}
}

func TestResult_All(t *testing.T) {
	r := &Result{Errors: []FieldError{{Message: "Error 1"}, {Message: "Error 2"}}}
	if r.All() != "Error 1; Error 2" {
		t.Errorf("All() = %q", r.All())
	}
	var empty *Result
	if empty.All() != "" || empty.First() != "" || empty.HasErrors() {
		t.Error("nil result should be empty")
	}
}
