package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestEncodeDecodeEvent(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"instrument": "CETES",
		"cost":       "1.006441",
	})
	require.NoError(t, err)

	data, err := EncodeEvent(7, msg)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 0, 0}, data[:4])

	var got structpb.Struct
	eventType, err := DecodeEvent(data, &got)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), eventType)
	assert.Equal(t, "CETES", got.Fields["instrument"].GetStringValue())
}

func TestDecodeEvent_TooShort(t *testing.T) {
	_, err := DecodeEvent([]byte{1, 2}, &structpb.Struct{})
	assert.Error(t, err)
}

func TestPartitionHashBytes(t *testing.T) {
	key := make([]byte, 32)
	key[7], key[15], key[19], key[27] = 1, 2, 3, 5

	assert.Equal(t, uint32(0), PartitionHashBytes(key, 1))
	assert.Equal(t, uint32(0), PartitionHashBytes(key[:10], 3))
	assert.Equal(t, uint32(1), PartitionHashBytes(key, 4)) // 5 & 3
	want := (uint32(1)<<24 | uint32(2)<<16 | uint32(3)<<8 | 5) % 3
	assert.Equal(t, want, PartitionHashBytes(key, 3))

	for mod := uint32(2); mod < 12; mod++ {
		assert.Less(t, PartitionHashBytes(key, mod), mod)
	}
}
