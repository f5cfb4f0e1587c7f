package riff

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChunkWhileChildOpenFails(t *testing.T) {
	buf := &seekBuffer{}
	root, err := Create(buf, Tag("TEST"))
	require.NoError(t, err)

	first, err := root.CreateChunk(Tag("one "))
	require.NoError(t, err)
	assert.True(t, root.IsBusy())

	_, err = root.CreateChunk(Tag("two "))
	assert.ErrorIs(t, err, ErrListBusy)
	_, err = root.CreateList(Tag("sub0"))
	assert.ErrorIs(t, err, ErrListBusy)

	require.NoError(t, first.Close())
	assert.False(t, root.IsBusy())

	second, err := root.CreateChunk(Tag("two "))
	require.NoError(t, err)
	require.NoError(t, second.Close())
	require.NoError(t, root.Close())
}

func TestCloseWhileBusyFails(t *testing.T) {
	buf := &seekBuffer{}
	root, err := Create(buf, Tag("TEST"))
	require.NoError(t, err)

	child, err := root.CreateChunk(Tag("ABCD"))
	require.NoError(t, err)

	assert.ErrorIs(t, root.Close(), ErrListBusy)
	require.NoError(t, child.Close())
	require.NoError(t, root.Close())
}

func TestCreateOnClosedListFails(t *testing.T) {
	buf := &seekBuffer{}
	root, err := Create(buf, Tag("TEST"))
	require.NoError(t, err)
	require.NoError(t, root.Close())

	_, err = root.CreateChunk(Tag("ABCD"))
	assert.ErrorIs(t, err, ErrListNotOpen)
	_, err = root.Scan()
	assert.ErrorIs(t, err, ErrListNotOpen)
}

func TestCreateOnReadListFails(t *testing.T) {
	root, err := Open(bytes.NewReader(riffBytes("TEST")))
	require.NoError(t, err)

	_, err = root.CreateChunk(Tag("ABCD"))
	assert.ErrorIs(t, err, ErrListReadOnly)
	_, err = root.CreateList(Tag("sub0"))
	assert.ErrorIs(t, err, ErrListReadOnly)
}

func TestScanOnWriteListFails(t *testing.T) {
	buf := &seekBuffer{}
	root, err := Create(buf, Tag("TEST"))
	require.NoError(t, err)

	_, err = root.Scan()
	assert.ErrorIs(t, err, ErrListWriteOnly)
	require.NoError(t, root.Close())
}

func TestScanYieldsChildrenInOrder(t *testing.T) {
	raw := riffBytes("TEST",
		chunkBytes("one ", []byte{1}),
		chunkBytes("two ", []byte{2, 2}),
		chunkBytes("tri ", nil),
	)
	root, err := Open(bytes.NewReader(raw))
	require.NoError(t, err)

	sc, err := root.Scan()
	require.NoError(t, err)

	var tags []string
	var lengths []uint32
	for sc.Next() {
		c := sc.Chunk()
		tags = append(tags, c.Tag().String())
		lengths = append(lengths, c.Length())
		assert.Zero(t, c.Offset()&1, "child %q at odd offset %d", c.Tag(), c.Offset())
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []string{"one ", "two ", "tri "}, tags)
	assert.Equal(t, []uint32{1, 2, 0}, lengths)
	assert.False(t, root.IsBusy(), "exhausted scan must release the list")
	assert.False(t, sc.Next(), "scan is single-pass")
}

func TestScanTermination(t *testing.T) {
	t.Run("single empty child", func(t *testing.T) {
		root, err := Open(bytes.NewReader(riffBytes("TEST", chunkBytes("ABCD", nil))))
		require.NoError(t, err)
		sc, err := root.Scan()
		require.NoError(t, err)
		require.True(t, sc.Next())
		assert.Equal(t, Tag("ABCD"), sc.Chunk().Tag())
		assert.Zero(t, sc.Chunk().Length())
		assert.False(t, sc.Next())
		require.NoError(t, sc.Err())
	})

	t.Run("trailing bytes shorter than a header", func(t *testing.T) {
		// Seven stray bytes cannot form another chunk; tolerated.
		raw := riffBytes("TEST", []byte{1, 2, 3, 4, 5, 6, 7})
		root, err := Open(bytes.NewReader(raw))
		require.NoError(t, err)
		sc, err := root.Scan()
		require.NoError(t, err)
		assert.False(t, sc.Next())
		require.NoError(t, sc.Err())
	})

	t.Run("empty list", func(t *testing.T) {
		root, err := Open(bytes.NewReader(riffBytes("TEST")))
		require.NoError(t, err)
		sc, err := root.Scan()
		require.NoError(t, err)
		assert.False(t, sc.Next())
		require.NoError(t, sc.Err())
	})
}

func TestSecondScanWhileActiveFails(t *testing.T) {
	raw := riffBytes("TEST", chunkBytes("ABCD", []byte{1, 2}))
	root, err := Open(bytes.NewReader(raw))
	require.NoError(t, err)

	sc, err := root.Scan()
	require.NoError(t, err)
	_, err = root.Scan()
	assert.ErrorIs(t, err, ErrListBusy)
	assert.ErrorIs(t, root.Close(), ErrListBusy)

	// Abandoning the scan releases the list for a fresh enumeration.
	require.NoError(t, sc.Close())
	assert.False(t, root.IsBusy())

	again, err := root.Scan()
	require.NoError(t, err)
	require.True(t, again.Next())
	assert.Equal(t, Tag("ABCD"), again.Chunk().Tag())
	require.NoError(t, again.Close())
}

func TestScannerAdvancesPastPadByte(t *testing.T) {
	raw := riffBytes("TEST",
		chunkBytes("odd ", []byte{1, 2, 3}),
		chunkBytes("evn ", []byte{4, 4}),
	)
	root, err := Open(bytes.NewReader(raw))
	require.NoError(t, err)
	sc, err := root.Scan()
	require.NoError(t, err)

	require.True(t, sc.Next())
	oddEnd := sc.Chunk().Offset() + headerSize + int64(sc.Chunk().Length())
	assert.EqualValues(t, 1, oddEnd&1, "fixture should end at an odd offset")

	require.True(t, sc.Next())
	assert.Equal(t, Tag("evn "), sc.Chunk().Tag())
	assert.Equal(t, oddEnd+1, sc.Chunk().Offset())
	require.NoError(t, sc.Close())
}

func TestScanRejectsChildOverrunningList(t *testing.T) {
	// Child declares 200 payload bytes inside a list that only holds 3.
	child := chunkBytes("ABCD", []byte{1, 2, 3})
	child[4] = 200 // little-endian length low byte
	raw := riffBytes("TEST", child)

	root, err := Open(bytes.NewReader(raw))
	require.NoError(t, err)
	sc, err := root.Scan()
	require.NoError(t, err)

	assert.False(t, sc.Next())
	assert.ErrorIs(t, sc.Err(), ErrMalformed)
	assert.False(t, root.IsBusy(), "failed scan must release the list")
}

func TestNestedListRoundTrip(t *testing.T) {
	buf := &seekBuffer{}
	root, err := Create(buf, Tag("TEST"))
	require.NoError(t, err)

	sub, err := root.CreateList(Tag("sub0"))
	require.NoError(t, err)
	inner, err := sub.CreateChunk(Tag("aaaa"))
	require.NoError(t, err)
	require.NoError(t, inner.WriteBytes([]byte{7}))
	require.NoError(t, inner.Close())
	require.NoError(t, sub.Close())

	tail, err := root.CreateChunk(Tag("bbbb"))
	require.NoError(t, err)
	require.NoError(t, tail.WriteBytes([]byte{8, 9}))
	require.NoError(t, tail.Close())
	require.NoError(t, root.Close())

	got, err := Open(bytes.NewReader(buf.data))
	require.NoError(t, err)
	assert.Equal(t, Tag("TEST"), got.ListType())

	sc, err := got.Scan()
	require.NoError(t, err)

	require.True(t, sc.Next())
	gotSub, err := sc.Chunk().AsList()
	require.NoError(t, err)
	assert.Equal(t, Tag("sub0"), gotSub.ListType())
	// list type + child header + 1 payload byte + pad
	assert.EqualValues(t, 4+headerSize+1+1, gotSub.Length())

	innerSc, err := gotSub.Scan()
	require.NoError(t, err)
	require.True(t, innerSc.Next())
	assert.Equal(t, Tag("aaaa"), innerSc.Chunk().Tag())
	payload, err := innerSc.Chunk().ReadBytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, payload)
	require.False(t, innerSc.Next())
	require.NoError(t, innerSc.Err())

	require.True(t, sc.Next())
	assert.Equal(t, Tag("bbbb"), sc.Chunk().Tag())
	payload, err = sc.Chunk().ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{8, 9}, payload)
	require.False(t, sc.Next())
	require.NoError(t, sc.Err())
}
