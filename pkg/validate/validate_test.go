package validate_test

import (
	"testing"

	"github.com/bilemo/api/pkg/validate"
)

type userInput struct {
	Email     string   `json:"email"       validate:"required,email,max=180"`
	FirstName string   `json:"firstName"   validate:"required,max=25"`
	Stock     int      `json:"stock"       validate:"gte=0"`
	Roles     []string `json:"roles"       validate:"omitempty,dive,oneof=ROLE_USER ROLE_ADMIN ROLE_SUPER_ADMIN"`
	Phone     *string  `json:"phoneNumber" validate:"omitnil,max=20"`
	ImageURL  string   `json:"imageUrl"    validate:"omitempty,url"`
}

func strPtr(s string) *string { return &s }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(userInput{
		Email:     "john@example.com",
		FirstName: "John",
		Roles:     []string{"ROLE_ADMIN"},
		Phone:     strPtr("0601020304"),
		ImageURL:  "https://cdn.example.com/p.png",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredUsesJSONNames(t *testing.T) {
	errs := validate.Struct(userInput{})
	if got := errs["email"]; got != "The email field is required." {
		t.Errorf("unexpected email message %q", got)
	}
	if _, ok := errs["firstName"]; !ok {
		t.Error("expected firstName to be required")
	}
	if _, ok := errs["FirstName"]; ok {
		t.Error("errors must be keyed by json name")
	}
}

func TestMaxLength(t *testing.T) {
	errs := validate.Struct(userInput{
		Email:     "john@example.com",
		FirstName: "abcdefghijklmnopqrstuvwxyz",
	})
	if got := errs["firstName"]; got != "The firstName field must not exceed 25 characters." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestNumericBound(t *testing.T) {
	errs := validate.Struct(userInput{Email: "a@b.co", FirstName: "A", Stock: -1})
	if _, ok := errs["stock"]; !ok {
		t.Error("expected negative stock to fail")
	}
}

func TestRoleChoiceReportedOnSliceField(t *testing.T) {
	errs := validate.Struct(userInput{Email: "a@b.co", FirstName: "A", Roles: []string{"ROLE_USER", "ROLE_ROOT"}})
	if got := errs["roles"]; got != "The roles field must be one of: ROLE_USER, ROLE_ADMIN, ROLE_SUPER_ADMIN." {
		t.Errorf("unexpected roles message %q", got)
	}
}

func TestOptionalPointer(t *testing.T) {
	base := userInput{Email: "a@b.co", FirstName: "A"}
	if errs := validate.Struct(base); validate.HasErrors(errs) {
		t.Errorf("nil phone should be skipped, got %v", errs)
	}

	base.Phone = strPtr("012345678901234567890123")
	if errs := validate.Struct(base); errs["phoneNumber"] == "" {
		t.Error("expected long phone number to fail")
	}
}

func TestURLRule(t *testing.T) {
	errs := validate.Struct(userInput{Email: "a@b.co", FirstName: "A", ImageURL: "not a url"})
	if got := errs["imageUrl"]; got != "The imageUrl field must be a valid URL." {
		t.Errorf("unexpected message %q", got)
	}
}
