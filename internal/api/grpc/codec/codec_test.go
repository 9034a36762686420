package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/authkeeper/internal/model"
)

func TestJSON_Registered(t *testing.T) {
	c := encoding.GetCodec(Name)
	require.NotNil(t, c)
	assert.Equal(t, Name, c.Name())
}

func TestJSON_PlainStruct(t *testing.T) {
	c := JSON{}

	data, err := c.Marshal(&model.LoginRequest{UsernameOrEmail: "alice", Password: "secret", RememberMe: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username_or_email":"alice","password":"secret","remember_me":true}`, string(data))

	var got model.LoginRequest
	require.NoError(t, c.Unmarshal(data, &got))
	assert.Equal(t, "alice", got.UsernameOrEmail)
	assert.True(t, got.RememberMe)
}

func TestJSON_EmptyBody(t *testing.T) {
	var got model.Empty
	assert.NoError(t, JSON{}.Unmarshal(nil, &got))
}

func TestJSON_InvalidBody(t *testing.T) {
	var got model.LoginRequest
	err := JSON{}.Unmarshal([]byte(`{"username_or_email":`), &got)
	assert.ErrorContains(t, err, "json codec: unmarshal")
}

func TestJSON_ProtoMessage(t *testing.T) {
	c := JSON{}

	data, err := c.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"SERVING"}`, string(data))

	var got healthpb.HealthCheckResponse
	require.NoError(t, c.Unmarshal(data, &got))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, got.Status)
}
