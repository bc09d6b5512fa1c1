package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string    `cbor:"id"`
	Count int       `cbor:"count"`
	At    time.Time `cbor:"at"`
}

func TestMarshal_IsDeterministic(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 10, 15, 12, 0, 0, 123456789, time.UTC)
	r := record{ID: "abc", Count: 3, At: at}

	first, err := Marshal(r)
	req.NoError(err)
	second, err := Marshal(r)
	req.NoError(err)
	req.Equal(first, second)

	var decoded record
	req.NoError(Unmarshal(first, &decoded))
	req.Equal("abc", decoded.ID)
	req.True(at.Equal(decoded.At), "nanoseconds must survive the round trip")
}

func TestUnmarshal_IgnoresUnknownFields(t *testing.T) {
	req := require.New(t)
	data, err := Marshal(map[string]any{"id": "x", "extra": true})
	req.NoError(err)

	var decoded record
	req.NoError(Unmarshal(data, &decoded))
	req.Equal("x", decoded.ID)
}
