package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryReaderSeesEveryEventOnce(t *testing.T) {
	ch := NewChannel[int]()
	readers := make([]*Reader, 4)
	for i := range readers {
		readers[i] = ch.RegisterReader()
	}

	got := make([][]int, len(readers))
	for ev := 0; ev < 100; ev++ {
		ch.Write(ev)
		// Reader i reads every i+1 writes, so the readers drift apart.
		for i, r := range readers {
			if ev%(i+1) == 0 {
				got[i] = append(got[i], ch.Read(r)...)
			}
		}
	}
	for i, r := range readers {
		got[i] = append(got[i], ch.Read(r)...)
		assert.Len(t, got[i], 100, "reader %d", i)
		for j, v := range got[i] {
			require.Equal(t, j, v, "reader %d out of order", i)
		}
		assert.Empty(t, ch.Read(r))
	}
}

func TestReaderOnlySeesLaterEvents(t *testing.T) {
	ch := NewChannel[string]()
	early := ch.RegisterReader()
	ch.Write("a", "b")
	late := ch.RegisterReader()
	ch.Write("c")

	assert.Equal(t, []string{"a", "b", "c"}, ch.Read(early))
	assert.Equal(t, []string{"c"}, ch.Read(late))
}

func TestSlowReaderDoesNotBlockOthers(t *testing.T) {
	ch := NewChannel[int]()
	slow := ch.RegisterReader()
	fast := ch.RegisterReader()

	for i := 0; i < 1000; i++ {
		ch.Write(i)
		require.Equal(t, []int{i}, ch.Read(fast))
	}
	assert.Equal(t, 1000, ch.Unread(slow))
	assert.Equal(t, 1000, ch.Retained(), "slow reader pins its backlog")

	all := ch.Read(slow)
	require.Len(t, all, 1000)
	assert.Equal(t, 999, all[999])
}

func TestCompactionAfterAllReadersAdvance(t *testing.T) {
	ch := NewChannel[int]()
	r := ch.RegisterReader()
	for i := 0; i < 10; i++ {
		ch.Write(i)
	}
	first := ch.Read(r)
	ch.Write(10)

	assert.Equal(t, 1, ch.Retained())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, first, "compaction never rewrites handed-out events")
	assert.Equal(t, []int{10}, ch.Read(r))
}

func TestCloseReleasesBacklog(t *testing.T) {
	ch := NewChannel[int]()
	gone := ch.RegisterReader()
	live := ch.RegisterReader()
	ch.Write(1, 2, 3)
	ch.Read(live)

	ch.Close(gone)
	assert.Equal(t, 1, ch.Readers())
	assert.Nil(t, ch.Read(gone))
	assert.Equal(t, 0, ch.Unread(gone))

	ch.Write(4)
	assert.Equal(t, 1, ch.Retained())
	assert.Equal(t, []int{4}, ch.Read(live))
}

func TestWritesWithoutReadersAreDropped(t *testing.T) {
	ch := NewChannel[int]()
	ch.Write(1, 2)
	ch.Write(3)
	assert.Equal(t, 1, ch.Retained())
}
