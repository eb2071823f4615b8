// Package deflate decodes RFC 1951 DEFLATE streams: stored, static-Huffman,
// and dynamic-Huffman blocks, including the length/distance back-reference
// symbol loop and its sliding-window overlap-copy semantics.
package deflate

import (
	"errors"

	"github.com/MaratShch/lutlib/internal/bitio"
	"github.com/MaratShch/lutlib/internal/huffman"
	"github.com/MaratShch/lutlib/internal/pool"
)

// Errors surfaced by Decode, named per spec §6.
var (
	ErrReservedBType  = errors.New("deflate: reserved block type")
	ErrCorruptStored  = errors.New("deflate: stored block length check failed")
	ErrReservedCode   = errors.New("deflate: reserved length/distance code")
	ErrBadDistance    = errors.New("deflate: back-reference distance out of range")
	ErrRepeatNoPrior  = errors.New("deflate: repeat-length code with no previous length")
	ErrInvalidHeader  = errors.New("deflate: invalid dynamic block header")
	maxWindow         = 32768
)

// BlockType identifies a DEFLATE block's compression method.
type BlockType int

const (
	Stored BlockType = iota
	Fixed
	Dynamic
)

// BlockHeader is the 3-bit block descriptor: BFINAL followed by BTYPE.
type BlockHeader struct {
	Final bool
	Type  BlockType
}

// readBlockHeader reads the 3-bit block descriptor from cur.
func readBlockHeader(cur *bitio.Cursor) (BlockHeader, error) {
	final, err := cur.ReadBits(1)
	if err != nil {
		return BlockHeader{}, err
	}
	btype, err := cur.ReadBits(2)
	if err != nil {
		return BlockHeader{}, err
	}
	var bt BlockType
	switch btype {
	case 0:
		bt = Stored
	case 1:
		bt = Fixed
	case 2:
		bt = Dynamic
	default:
		return BlockHeader{}, ErrReservedBType
	}
	return BlockHeader{Final: final == 1, Type: bt}, nil
}

// Decode reads DEFLATE blocks from cur until one with BFINAL=1 completes,
// returning the concatenated decompressed bytes.
func Decode(cur *bitio.Cursor) ([]byte, error) {
	ob := newOutputBuffer(4096)
	// Returns the working buffer on error paths; after release it is nil
	// and Put is a no-op.
	defer func() { pool.Put(ob.buf) }()
	for {
		hdr, err := readBlockHeader(cur)
		if err != nil {
			return nil, err
		}
		switch hdr.Type {
		case Stored:
			if err := decodeStored(cur, ob); err != nil {
				return nil, err
			}
		case Fixed:
			if err := decodeHuffmanBlock(cur, fixedLitTree, fixedDistTree, ob); err != nil {
				return nil, err
			}
		case Dynamic:
			litTree, distTree, err := readDynamicTrees(cur)
			if err != nil {
				return nil, err
			}
			if err := decodeHuffmanBlock(cur, litTree, distTree, ob); err != nil {
				return nil, err
			}
		}
		if hdr.Final {
			break
		}
	}
	return ob.release(), nil
}

// fixedLitTree and fixedDistTree are the RFC 1951 §3.2.6 fixed Huffman
// trees, built once at package init since their code lengths never change.
var fixedLitTree, fixedDistTree *huffman.Tree

func init() {
	var err error
	fixedLitTree, err = huffman.Build(fixedLitLenLengths(), maxLitLenCodeLength)
	if err != nil {
		panic("deflate: fixed literal/length tree failed to build: " + err.Error())
	}
	fixedDistTree, err = huffman.Build(fixedDistLengths(), maxDistCodeLength)
	if err != nil {
		panic("deflate: fixed distance tree failed to build: " + err.Error())
	}
}

// decodeStored copies a STORED block's payload verbatim. Per RFC 1951, LEN
// is the exact byte count (the reference implementation this library was
// distilled from uses LEN+1, a transcription bug; this follows the RFC).
func decodeStored(cur *bitio.Cursor, ob *outputBuffer) error {
	cur.AlignToByte()
	length, err := cur.ReadBits(16)
	if err != nil {
		return err
	}
	nlen, err := cur.ReadBits(16)
	if err != nil {
		return err
	}
	if nlen != (^length)&0xFFFF {
		return ErrCorruptStored
	}
	for i := uint32(0); i < length; i++ {
		b, err := cur.ReadBits(8)
		if err != nil {
			return err
		}
		ob.appendByte(byte(b))
	}
	return nil
}

// readDynamicTrees reads a DYNAMIC block header (HLIT, HDIST, HCLEN, the
// code-length alphabet, then the literal/length and distance code lengths
// it describes) and builds the two Huffman trees used by the block body.
func readDynamicTrees(cur *bitio.Cursor) (lit, dist *huffman.Tree, err error) {
	hlitRaw, err := cur.ReadBits(5)
	if err != nil {
		return nil, nil, err
	}
	hdistRaw, err := cur.ReadBits(5)
	if err != nil {
		return nil, nil, err
	}
	hclenRaw, err := cur.ReadBits(4)
	if err != nil {
		return nil, nil, err
	}
	hlit := int(hlitRaw) + 257
	hdist := int(hdistRaw) + 1
	hclen := int(hclenRaw) + 4

	var clLens [19]int
	for i := 0; i < hclen; i++ {
		v, err := cur.ReadBits(3)
		if err != nil {
			return nil, nil, err
		}
		clLens[codeLengthOrder[i]] = int(v)
	}
	clTree, err := huffman.Build(clLens[:], maxCLCodeLength)
	if err != nil {
		return nil, nil, err
	}

	total := hlit + hdist
	allLens := make([]int, total)
	prev := -1
	for i := 0; i < total; {
		sym, err := clTree.Decode(cur)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case sym <= 15:
			allLens[i] = int(sym)
			prev = int(sym)
			i++
		case sym == 16:
			if prev < 0 {
				return nil, nil, ErrRepeatNoPrior
			}
			rep, err := cur.ReadBits(2)
			if err != nil {
				return nil, nil, err
			}
			n := int(rep) + 3
			if i+n > total {
				return nil, nil, ErrInvalidHeader
			}
			for j := 0; j < n; j++ {
				allLens[i] = prev
				i++
			}
		case sym == 17:
			rep, err := cur.ReadBits(3)
			if err != nil {
				return nil, nil, err
			}
			n := int(rep) + 3
			if i+n > total {
				return nil, nil, ErrInvalidHeader
			}
			for j := 0; j < n; j++ {
				allLens[i] = 0
				i++
			}
		case sym == 18:
			rep, err := cur.ReadBits(7)
			if err != nil {
				return nil, nil, err
			}
			n := int(rep) + 11
			if i+n > total {
				return nil, nil, ErrInvalidHeader
			}
			for j := 0; j < n; j++ {
				allLens[i] = 0
				i++
			}
		default:
			return nil, nil, ErrInvalidHeader
		}
	}

	lit, err = huffman.Build(allLens[:hlit], maxLitLenCodeLength)
	if err != nil {
		return nil, nil, err
	}
	dist, err = huffman.Build(allLens[hlit:], maxDistCodeLength)
	if err != nil {
		return nil, nil, err
	}
	return lit, dist, nil
}

// readExtra reads n extra bits, tolerating n == 0 (bitio.Cursor.ReadBits
// requires n >= 1).
func readExtra(cur *bitio.Cursor, n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	return cur.ReadBits(n)
}

// decodeHuffmanBlock runs the literal/length symbol loop shared by FIXED
// and DYNAMIC blocks until the end-of-block symbol (256) is reached.
func decodeHuffmanBlock(cur *bitio.Cursor, lit, dist *huffman.Tree, ob *outputBuffer) error {
	for {
		sym, err := lit.Decode(cur)
		if err != nil {
			return err
		}
		switch {
		case sym < endOfBlockSymbol:
			ob.appendByte(byte(sym))
		case sym == endOfBlockSymbol:
			return nil
		case int(sym) <= lastLengthSym:
			idx := int(sym) - firstLengthSym
			extra, err := readExtra(cur, lengthExtra[idx])
			if err != nil {
				return err
			}
			length := lengthBase[idx] + int(extra)

			distSym, err := dist.Decode(cur)
			if err != nil {
				return err
			}
			if int(distSym) >= len(distBase) {
				return ErrReservedCode
			}
			dExtra, err := readExtra(cur, distExtra[distSym])
			if err != nil {
				return err
			}
			distance := distBase[distSym] + int(dExtra)

			limit := maxWindow
			if ob.len() < limit {
				limit = ob.len()
			}
			if distance < 1 || distance > limit {
				return ErrBadDistance
			}
			ob.copyBack(distance, length)
		default: // 286, 287: reserved, must not appear
			return ErrReservedCode
		}
	}
}
