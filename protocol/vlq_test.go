package protocol

import (
	"testing"
)

func TestVLQEncodeDecodeInt(t *testing.T) {
	testCases := []int32{
		0,
		1,
		-1,
		127,
		-127,
		128,
		-128,
		255,
		-255,
		1000,
		-1000,
		65535,
		-65535,
		1000000,
		-1000000,
		1 << 30,
		-(1 << 30),
	}

	for _, expected := range testCases {
		output := NewScratchOutput()
		EncodeVLQInt(output, expected)
		encoded := output.Result()

		data := encoded
		decoded, err := DecodeVLQInt(&data)
		if err != nil {
			t.Errorf("Failed to decode VLQ for value %d: %v", expected, err)
			continue
		}

		if decoded != expected {
			t.Errorf("VLQ mismatch: expected %d, got %d (encoded as %v)", expected, decoded, encoded)
		}

		if len(data) != 0 {
			t.Errorf("VLQ decode didn't consume all bytes for value %d: %d bytes remaining", expected, len(data))
		}
	}
}

func TestVLQEncodeDecodeUint(t *testing.T) {
	testCases := []uint32{
		0,
		1,
		127,
		128,
		255,
		1000,
		65535,
		1000000,
	}

	for _, expected := range testCases {
		output := NewScratchOutput()
		EncodeVLQUint(output, expected)
		encoded := output.Result()

		data := encoded
		decoded, err := DecodeVLQUint(&data)
		if err != nil {
			t.Errorf("Failed to decode VLQ for value %d: %v", expected, err)
			continue
		}

		if decoded != expected {
			t.Errorf("VLQ mismatch: expected %d, got %d (encoded as %v)", expected, decoded, encoded)
		}
	}
}

func TestVLQEncodingLength(t *testing.T) {
	testCases := []struct {
		value   int32
		encoded []byte
	}{
		{0, []byte{0x00}},
		{95, []byte{0x5F}},
		{96, []byte{0x80, 0x60}},
		{-32, []byte{0x60}},
		{-33, []byte{0xFF, 0x5F}},
		{-108, []byte{0xFF, 0x14}},
		{3040, []byte{0x97, 0x60}},
		{0x8000, []byte{0x82, 0x80, 0x00}},
	}

	for _, tc := range testCases {
		got := EncodeVLQ(tc.value)
		if string(got) != string(tc.encoded) {
			t.Errorf("EncodeVLQ(%d) = % X, expected % X", tc.value, got, tc.encoded)
		}

		val, n, err := DecodeVLQ(got)
		if err != nil || val != tc.value || n != len(tc.encoded) {
			t.Errorf("DecodeVLQ(% X) = %d, %d, %v", got, val, n, err)
		}
	}
}

func TestVLQUintHighBit(t *testing.T) {
	// Sums near the top of uint32 survive the signed encoding
	output := NewScratchOutput()
	EncodeVLQUint(output, 0xFFFFFFF0)

	data := output.Result()
	got, err := DecodeVLQUint(&data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != 0xFFFFFFF0 {
		t.Errorf("expected 0xFFFFFFF0, got 0x%X", got)
	}
}

func TestVLQBufferTooSmall(t *testing.T) {
	// Test decoding with insufficient data
	data := []byte{0x80} // Continuation byte but no following byte
	_, err := DecodeVLQInt(&data)
	if err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}
}
