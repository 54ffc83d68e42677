package store

import "testing"

func TestDefaultPasswordPolicy(t *testing.T) {
	policy := DefaultPasswordPolicy()

	tests := []struct {
		name       string
		password   string
		rejections int
	}{
		{"acceptable", "Abc12345!", 0},
		{"demo seed password", "123Senha!", 0},
		{"too short", "Ab1!", 1},
		{"multi-byte runes still too short", "Áb1!x", 1},
		{"no digit", "Abcdefgh!", 1},
		{"no lowercase", "ABC12345!", 1},
		{"no uppercase", "abc12345!", 1},
		{"no symbol", "Abc123456", 1},
		{"empty", "", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Check(tt.password)
			if len(got) != tt.rejections {
				t.Errorf("Check(%q) returned %d rejections, want %d: %v",
					tt.password, len(got), tt.rejections, got)
			}
		})
	}
}

func TestPolicyRejectionOrderIsStable(t *testing.T) {
	policy := DefaultPasswordPolicy()

	first := policy.Check("")
	second := policy.Check("")
	if len(first) != len(second) {
		t.Fatalf("rejection counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("rejection %d differs between runs: %q vs %q", i, first[i].Description, second[i].Description)
		}
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("Abc12345!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "Abc12345!" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !hasher.Compare("Abc12345!", hash) {
		t.Error("expected matching password to compare true")
	}
	if hasher.Compare("wrong", hash) {
		t.Error("expected non-matching password to compare false")
	}
}
