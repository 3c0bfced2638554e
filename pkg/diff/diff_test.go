package diff

import "testing"

func TestPatchTextRoundTrip(t *testing.T) {
	from := "line one\nline two\nline three\n"
	to := "line one\nline 2\nline three\nline four\n"

	patch := PatchText(from, to)
	if patch == "" {
		t.Fatal("expected non-empty patch")
	}

	result, success, err := Apply(patch, from)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !success {
		t.Fatal("expected all patch hunks to apply")
	}
	if result != to {
		t.Errorf("expected %q, got %q", to, result)
	}
}

func TestPatchTextIdentical(t *testing.T) {
	content := "same content"
	patch := PatchText(content, content)

	result, success, err := Apply(patch, content)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !success || result != content {
		t.Errorf("identical content should apply cleanly, got %q", result)
	}
}
