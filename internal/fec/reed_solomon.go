package fec

import (
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Default shard counts for session frame protection: 32 data shards and 8
// parity shards, so Decode can rebuild a block with up to 8 shards named
// as erasures. Corrupted shards that are not named as erasures are not
// corrected; Decode reports them as an error.
const (
	DefaultDataShards   = 32
	DefaultParityShards = 8
)

// Codec wraps a Reed-Solomon encoder/decoder for a fixed shard layout.
type Codec struct {
	enc        reedsolomon.Encoder
	dataShards int
	parShards  int
}

// NewCodec returns a Codec using DefaultDataShards/DefaultParityShards.
func NewCodec() (*Codec, error) {
	return NewCodecShards(DefaultDataShards, DefaultParityShards)
}

// NewCodecShards returns a Codec with a custom shard layout.
func NewCodecShards(dataShards, parityShards int) (*Codec, error) {
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, fmt.Errorf("new reed-solomon codec: %w", err)
	}
	return &Codec{enc: enc, dataShards: dataShards, parShards: parityShards}, nil
}

// DataShards returns the codec's data shard count.
func (c *Codec) DataShards() int { return c.dataShards }

// ParityShards returns the codec's parity shard count.
func (c *Codec) ParityShards() int { return c.parShards }

// Encode splits data into consecutive runs across the codec's data shards
// (zero-padding whatever the data does not fill) and appends computed
// parity shards,
// returning the concatenated data+parity bytes.
func (c *Codec) Encode(data []byte) ([]byte, error) {
	shards, shardSize := c.toShards(data)
	if err := c.enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	out := make([]byte, 0, len(shards)*shardSize)
	for _, s := range shards {
		out = append(out, s...)
	}
	return out, nil
}

// Decode reconstructs and verifies an encoded block, returning the
// original (zero-padded) data shards concatenated.
func (c *Codec) Decode(encoded []byte, erasures []int) ([]byte, error) {
	total := c.dataShards + c.parShards
	if len(encoded)%total != 0 {
		return nil, fmt.Errorf("encoded length %d not divisible by %d shards", len(encoded), total)
	}
	shardSize := len(encoded) / total

	shards := make([][]byte, total)
	for i := 0; i < total; i++ {
		shards[i] = append([]byte(nil), encoded[i*shardSize:(i+1)*shardSize]...)
	}
	for _, idx := range erasures {
		if idx >= 0 && idx < total {
			shards[idx] = nil
		}
	}

	if err := c.enc.Reconstruct(shards); err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}
	ok, err := c.enc.Verify(shards)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("data corrupted beyond repair")
	}

	out := make([]byte, 0, c.dataShards*shardSize)
	for i := 0; i < c.dataShards; i++ {
		out = append(out, shards[i]...)
	}
	return out, nil
}

// toShards splits data into consecutive shardSize-byte runs across
// c.dataShards data shards plus c.parShards empty parity shards, all sized
// to the smallest shard length that fits data.
func (c *Codec) toShards(data []byte) ([][]byte, int) {
	shardSize := (len(data) + c.dataShards - 1) / c.dataShards
	if shardSize == 0 {
		shardSize = 1
	}
	total := c.dataShards + c.parShards
	shards := make([][]byte, total)
	for i := 0; i < total; i++ {
		shards[i] = make([]byte, shardSize)
	}
	for i, b := range data {
		shard := i / shardSize
		off := i % shardSize
		shards[shard][off] = b
	}
	return shards, shardSize
}
