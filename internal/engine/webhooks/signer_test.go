package webhooks

import (
	"testing"
)

func TestSign(t *testing.T) {
	secret := "secret"
	payload := []byte("payload")

	// Calculated using: echo -n "payload" | openssl dgst -sha256 -hmac "secret"
	expected := "b82fcb791acec57859b989b430a826488ce2e479fdf92326bd0a2e8375a42ba4"

	got := Sign(secret, payload)

	if got != expected {
		t.Errorf("Sign() = %v, want %v", got, expected)
	}
}

func TestVerify(t *testing.T) {
	secret := "secret"
	payload := []byte("payload")
	signature := Sign(secret, payload)

	if !Verify(secret, payload, signature) {
		t.Error("Verify() = false for a valid signature")
	}

	// Altering one byte of the payload must fail closed.
	tampered := []byte("paylOad")
	if Verify(secret, tampered, signature) {
		t.Error("Verify() = true for a tampered payload")
	}

	if Verify("wrong-secret", payload, signature) {
		t.Error("Verify() = true under the wrong secret")
	}

	if Verify(secret, payload, "") {
		t.Error("Verify() = true for an empty signature")
	}

	if Verify(secret, payload, "deadbeef") {
		t.Error("Verify() = true for a bogus signature")
	}
}
