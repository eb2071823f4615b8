package bitio

import "testing"

func TestReadBitsLSBFirst(t *testing.T) {
	// Byte 0b1011_0001 = 0xB1. LSB-first reads should yield bits
	// 1,0,0,0,1,1,0,1 in read order.
	c := New([]byte{0xB1})
	want := []uint32{1, 0, 0, 0, 1, 1, 0, 1}
	for i, w := range want {
		got, err := c.ReadBits(1)
		if err != nil {
			t.Fatalf("bit %d: unexpected error %v", i, err)
		}
		if got != w {
			t.Errorf("bit %d: got %d, want %d", i, got, w)
		}
	}
}

func TestReadBitsMultiByte(t *testing.T) {
	// 0x34, 0x12 read 16 bits LSB-first should equal 0x1234.
	c := New([]byte{0x34, 0x12})
	v, err := c.ReadBits(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x1234 {
		t.Errorf("got 0x%x, want 0x1234", v)
	}
}

func TestReadBitsTruncated(t *testing.T) {
	c := New([]byte{0xFF})
	c.SeekTo(4)
	if _, err := c.ReadBits(8); err != ErrTruncated {
		t.Errorf("got %v, want ErrTruncated", err)
	}
}

func TestAlignToByte(t *testing.T) {
	c := New([]byte{0, 0, 0})
	c.SeekTo(3)
	c.AlignToByte()
	if c.Offset() != 8 {
		t.Errorf("Offset() = %d, want 8", c.Offset())
	}
	c.AlignToByte()
	if c.Offset() != 8 {
		t.Errorf("aligning an already-aligned cursor moved it to %d", c.Offset())
	}
}

func TestByteBitDecomposition(t *testing.T) {
	c := New(make([]byte, 4))
	c.SeekTo(13)
	if c.Byte() != 1 || c.Bit() != 5 {
		t.Errorf("Byte()=%d Bit()=%d, want 1,5", c.Byte(), c.Bit())
	}
}

func TestOrdering(t *testing.T) {
	a := New([]byte{0, 0})
	b := New([]byte{0, 0})
	a.SeekTo(3)
	b.SeekTo(5)
	if !a.Before(b) {
		t.Errorf("expected a before b")
	}
	if a.Equal(b) {
		t.Errorf("a and b should not be equal")
	}
	a.SeekTo(5)
	if !a.Equal(b) {
		t.Errorf("expected a equal to b after seek")
	}
}

func TestPeekBitsDoesNotAdvance(t *testing.T) {
	c := New([]byte{0x34, 0x12})
	v, avail := c.PeekBits(16)
	if avail != 16 || v != 0x1234 {
		t.Fatalf("PeekBits = (0x%x, %d), want (0x1234, 16)", v, avail)
	}
	if c.Offset() != 0 {
		t.Errorf("PeekBits advanced the cursor to %d", c.Offset())
	}
}

func TestPeekBitsNearEnd(t *testing.T) {
	c := New([]byte{0xFF})
	c.SeekTo(6)
	_, avail := c.PeekBits(8)
	if avail != 2 {
		t.Errorf("avail = %d, want 2", avail)
	}
}

func TestSkip(t *testing.T) {
	c := New([]byte{0, 0})
	if err := c.Skip(10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Offset() != 10 {
		t.Errorf("Offset() = %d, want 10", c.Offset())
	}
	if err := c.Skip(100); err != ErrTruncated {
		t.Errorf("got %v, want ErrTruncated", err)
	}
}
