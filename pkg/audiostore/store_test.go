package audiostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPutGet(t *testing.T) {
	assert := assert.New(t)

	store := New(time.Minute)

	id := store.Put([]byte("audio-bytes"))
	assert.NotEmpty(id)

	audio, ok := store.Get(id)
	assert.True(ok)
	assert.Equal([]byte("audio-bytes"), audio)

	_, ok = store.Get("unknown")
	assert.False(ok)
}

func TestExpiry(t *testing.T) {
	assert := assert.New(t)

	store := New(time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	id := store.Put([]byte("audio"))

	current = current.Add(2 * time.Minute)

	_, ok := store.Get(id)
	assert.False(ok)
	assert.Equal(0, store.Len())
}

func TestEvictExpired(t *testing.T) {
	assert := assert.New(t)

	store := New(time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	store.Put([]byte("one"))
	store.Put([]byte("two"))
	assert.Equal(2, store.Len())

	current = current.Add(2 * time.Minute)
	keep := store.Put([]byte("three"))

	store.evictExpired()

	assert.Equal(1, store.Len())
	_, ok := store.Get(keep)
	assert.True(ok)
}
