package vector

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeFloat64s_RoundTrip(t *testing.T) {
	orig := []float64{0.0, 1.5, -2.25, 3.75, 1e300}

	decoded, err := DecodeFloat64s(EncodeFloat64s(orig))
	if err != nil {
		t.Fatalf("DecodeFloat64s failed: %v", err)
	}
	if diff := cmp.Diff(orig, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeFloat32s_RoundTrip(t *testing.T) {
	orig := []float32{0.0, 1.5, -2.25, 3.75}

	decoded, err := DecodeFloat32s(EncodeFloat32s(orig))
	if err != nil {
		t.Fatalf("DecodeFloat32s failed: %v", err)
	}
	if diff := cmp.Diff(orig, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Empty(t *testing.T) {
	if b := EncodeFloat64s(nil); len(b) != 0 {
		t.Fatalf("expected empty blob for nil slice, got len=%d", len(b))
	}
	if vec, err := DecodeFloat64s(nil); err != nil || len(vec) != 0 {
		t.Fatalf("DecodeFloat64s(nil) = %v, %v; want empty, nil", vec, err)
	}
	if vec, err := DecodeFloat32s(nil); err != nil || len(vec) != 0 {
		t.Fatalf("DecodeFloat32s(nil) = %v, %v; want empty, nil", vec, err)
	}
}

func TestDecode_BadLength(t *testing.T) {
	if _, err := DecodeFloat64s(make([]byte, 12)); err == nil {
		t.Fatalf("DecodeFloat64s(12 bytes) succeeded, want error")
	}
	if _, err := DecodeFloat32s(make([]byte, 6)); err == nil {
		t.Fatalf("DecodeFloat32s(6 bytes) succeeded, want error")
	}
}
