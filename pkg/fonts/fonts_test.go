package fonts

import "testing"

func TestFace(t *testing.T) {
	f, err := Face(12, false)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	if f.Metrics().Height <= 0 {
		t.Error("face has no height")
	}

	again, _ := Face(12, false)
	if again != f {
		t.Error("Face should cache by size and weight")
	}
	b, _ := Face(12, true)
	if b == f {
		t.Error("bold face should differ from regular")
	}
}

func TestFaceDefaultSize(t *testing.T) {
	a, _ := Face(0, false)
	b, _ := Face(10, false)
	if a != b {
		t.Error("size 0 should fall back to 10")
	}
}
