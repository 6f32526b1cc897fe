package rpc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/proto"
)

func TestCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_AccountReply(t *testing.T) {
	c := jsonCodec{}
	in := &AccountReply{
		ID:          "id-1",
		Email:       "kevin@example.com",
		Token:       "t",
		IsActive:    true,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LastLoginAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Phones:      []Phone{{Number: 1, CityCode: 2, CountryCode: "3"}},
	}

	b, err := c.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"is_active":true`)

	out := &AccountReply{}
	require.NoError(t, c.Unmarshal(b, out))
	assert.Equal(t, in, out)
}

func TestCodec_EmptyPayload(t *testing.T) {
	out := &LoginRequest{}
	assert.NoError(t, jsonCodec{}.Unmarshal(nil, out))
}

func TestCodec_Errors(t *testing.T) {
	_, err := jsonCodec{}.Marshal(make(chan int))
	assert.Error(t, err)

	err = jsonCodec{}.Unmarshal([]byte("{"), &SignUpRequest{})
	assert.Error(t, err)
}

func TestCodec_ProtoMessages(t *testing.T) {
	c := jsonCodec{}
	in := &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}

	b, err := c.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), "SERVING")

	out := &healthpb.HealthCheckResponse{}
	require.NoError(t, c.Unmarshal(b, out))
	assert.True(t, proto.Equal(in, out))
}
