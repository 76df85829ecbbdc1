package crypto

import (
	"bytes"
	"errors"
	"testing"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestCipher_RoundTrip(t *testing.T) {
	c, err := New(testKey)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	plaintext := []byte("ghp_supersecrettoken")
	ciphertext, nonce, err := c.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if bytes.Contains(ciphertext, plaintext) {
		t.Error("ciphertext must not contain plaintext")
	}

	got, err := c.Decrypt(ciphertext, nonce)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("round trip mismatch: got %q", got)
	}
}

func TestCipher_FreshNoncePerEncrypt(t *testing.T) {
	c, _ := New(testKey)

	_, n1, err := c.Encrypt([]byte("same input"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	_, n2, err := c.Encrypt([]byte("same input"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if bytes.Equal(n1, n2) {
		t.Error("nonces must differ between calls")
	}
}

func TestCipher_RejectsTampering(t *testing.T) {
	c, _ := New(testKey)

	ciphertext, nonce, err := c.Encrypt([]byte("payload"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	ciphertext[0] ^= 0xff
	if _, err := c.Decrypt(ciphertext, nonce); err == nil {
		t.Error("expected authentication failure on tampered ciphertext")
	}

	if _, err := c.Decrypt(nil, []byte("short")); err == nil {
		t.Error("expected error on bad nonce size")
	}
}

func TestNew_RejectsBadKeySize(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33} {
		_, err := New(make([]byte, size))
		if !errors.Is(err, ErrInvalidKeySize) {
			t.Errorf("key size %d: expected ErrInvalidKeySize, got %v", size, err)
		}
	}
}
