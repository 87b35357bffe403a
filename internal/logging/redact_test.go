package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestRedactMasksSensitiveKeys(t *testing.T) {
	out := Redact(logrus.Fields{
		"email":    "mia@example.com",
		"password": "hunter2",
		"Token":    "abc",
		"attempt":  3,
	})

	if out["email"] != "mia@example.com" {
		t.Errorf("email = %v, must pass through", out["email"])
	}
	if out["password"] != maskedValue {
		t.Errorf("password = %v, must be masked", out["password"])
	}
	if out["Token"] != maskedValue {
		t.Errorf("Token = %v, matching is case-insensitive", out["Token"])
	}
	if out["attempt"] != 3 {
		t.Errorf("attempt = %v", out["attempt"])
	}
}

func TestRedactRecursesNestedFields(t *testing.T) {
	out := Redact(logrus.Fields{
		"request": logrus.Fields{
			"card_number": "4111111111111111",
			"amount":      25.0,
		},
	})

	nested, ok := out["request"].(logrus.Fields)
	if !ok {
		t.Fatalf("request = %T, want nested fields", out["request"])
	}
	if nested["card_number"] != maskedValue {
		t.Errorf("card_number = %v, must be masked", nested["card_number"])
	}
	if nested["amount"] != 25.0 {
		t.Errorf("amount = %v", nested["amount"])
	}
}

func TestRedactDoesNotMutateInput(t *testing.T) {
	in := logrus.Fields{"secret": "s3cr3t"}
	Redact(in)

	if in["secret"] != "s3cr3t" {
		t.Error("Redact must copy, not mutate")
	}
}
